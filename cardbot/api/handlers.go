package api

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/repositories"
)

type cardView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Rarity    string `json:"rarity"`
	Image     string `json:"image"`
	FoilImage string `json:"foil_image,omitempty"`
}

type inventoryEntry struct {
	Card          cardView  `json:"card"`
	Foil          bool      `json:"foil"`
	Count         int       `json:"count"`
	FirstObtained time.Time `json:"first_obtained"`
}

type cooldownView struct {
	Allowed          bool   `json:"allowed"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	Remaining        string `json:"remaining"`
}

type tradeView struct {
	ID         string     `json:"id"`
	SenderID   string     `json:"sender_id"`
	ReceiverID string     `json:"receiver_id"`
	Status     string     `json:"status"`
	Card       *cardView  `json:"card,omitempty"`
	CardID     int64      `json:"card_id"`
	CreatedAt  time.Time  `json:"created_at"`
	SettledAt  *time.Time `json:"settled_at,omitempty"`
}

func newCardView(c *models.Card) cardView {
	return cardView{
		ID:        c.ID,
		Name:      c.Name,
		Rarity:    string(c.Rarity),
		Image:     c.Image,
		FoilImage: c.FoilImage,
	}
}

func newTradeView(t *models.Trade) tradeView {
	v := tradeView{
		ID:         t.ID,
		SenderID:   t.SenderID,
		ReceiverID: t.ReceiverID,
		Status:     string(t.Status),
		CardID:     t.CardID,
		CreatedAt:  t.CreatedAt,
	}
	if t.Card != nil {
		cv := newCardView(t.Card)
		v.Card = &cv
	}
	if !t.SettledAt.IsZero() {
		at := t.SettledAt
		v.SettledAt = &at
	}
	return v
}

func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), config.DefaultQueryTimeout)
}

// parseRarity reads the optional rarity query parameter.
func parseRarity(c *fiber.Ctx) (models.Rarity, bool) {
	raw := c.Query("rarity")
	if raw == "" {
		return "", true
	}
	r, err := models.ParseRarity(raw)
	if err != nil {
		return "", false
	}
	return r, true
}

func (s *Server) health(c *fiber.Ctx) error {
	status := "healthy"
	if s.deps.DB != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := s.deps.DB.Ping(ctx); err != nil {
			slog.Warn("Health check database ping failed",
				slog.String("type", "api"),
				slog.Any("error", err),
			)
			return c.Status(fiber.StatusServiceUnavailable).JSON(Response{
				Success:   false,
				Data:      fiber.Map{"status": "degraded", "version": s.version, "commit": s.commit},
				Error:     &Error{Code: "DATABASE_UNAVAILABLE", Message: "database unreachable"},
				Timestamp: time.Now().UTC(),
			})
		}
	}
	return sendSuccess(c, fiber.Map{
		"status":  status,
		"version": s.version,
		"commit":  s.commit,
	})
}

// listCards returns the catalog of one rarity, or of every rarity when none
// is given.
func (s *Server) listCards(c *fiber.Ctx) error {
	rarity, ok := parseRarity(c)
	if !ok {
		return sendBadRequest(c, "invalid rarity")
	}

	rarities := models.Rarities
	if rarity != "" {
		rarities = []models.Rarity{rarity}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	cards := []cardView{}
	for _, r := range rarities {
		found, err := s.deps.Catalog.FindCardsByRarity(ctx, r)
		if err != nil {
			return err
		}
		for _, card := range found {
			cards = append(cards, newCardView(card))
		}
	}
	return sendSuccess(c, cards)
}

func (s *Server) userInventory(c *fiber.Ctx) error {
	rarity, ok := parseRarity(c)
	if !ok {
		return sendBadRequest(c, "invalid rarity")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	inv, err := s.deps.Inventory.ListInventory(ctx, c.Params("id"), c.QueryInt("page", 1), rarity)
	if err != nil {
		return err
	}

	entries := make([]inventoryEntry, 0, len(inv.Groups))
	for _, g := range inv.Groups {
		entries = append(entries, inventoryEntry{
			Card:          newCardView(g.Card),
			Foil:          g.IsFoil,
			Count:         g.Count,
			FirstObtained: g.FirstObtained,
		})
	}
	return sendPaginated(c, entries, &Pagination{
		Page:       inv.Page,
		Limit:      inv.PageSize,
		Total:      inv.TotalGroups,
		TotalPages: inv.TotalPages,
		HasNext:    inv.Page < inv.TotalPages,
		HasPrev:    inv.Page > 1,
	})
}

func (s *Server) userCooldown(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	d, err := s.deps.Cooldowns.Cooldown(ctx, c.Params("id"))
	if err != nil {
		return err
	}
	return sendSuccess(c, cooldownView{
		Allowed:          d.Allowed,
		RemainingSeconds: int64(d.Remaining / time.Second),
		Remaining:        d.Remaining.String(),
	})
}

func (s *Server) getTrade(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	t, err := s.deps.Trades.GetTrade(ctx, c.Params("id"))
	if repositories.IsNotFound(err) {
		return sendNotFound(c, "trade not found")
	}
	if err != nil {
		return err
	}
	return sendSuccess(c, newTradeView(t))
}
