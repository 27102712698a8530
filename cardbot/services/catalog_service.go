package services

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/errgroup"

	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces"
	"github.com/ellavondegurechaff/cardbot/cardbot/permissions"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// NewCard is an admin request to add a card to the catalog.
type NewCard struct {
	Name        string
	Rarity      string
	ImageURL    string
	ContentType string
}

// CatalogService serves card lookups from an LRU cache and lets admins add
// cards. It satisfies interfaces.CatalogReader for the pack assembler.
type CatalogService struct {
	cards   interfaces.CardStore
	images  interfaces.ImageStore
	fetcher ImageFetcher
	policy  permissions.Policy
	cache   *lru.Cache
	now     func() time.Time
}

func NewCatalogService(cards interfaces.CardStore, images interfaces.ImageStore, fetcher ImageFetcher, policy permissions.Policy) *CatalogService {
	cache, _ := lru.New(config.CatalogCacheSize)
	return &CatalogService{
		cards:   cards,
		images:  images,
		fetcher: fetcher,
		policy:  policy,
		cache:   cache,
		now:     time.Now,
	}
}

func (s *CatalogService) FindCardsByRarity(ctx context.Context, rarity models.Rarity) ([]*models.Card, error) {
	if cached, ok := s.cache.Get(rarity); ok {
		return cached.([]*models.Card), nil
	}

	cards, err := s.cards.FindCardsByRarity(ctx, rarity)
	if err != nil {
		return nil, err
	}
	s.cache.Add(rarity, cards)
	return cards, nil
}

func (s *CatalogService) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	return s.cards.GetCard(ctx, id)
}

func (s *CatalogService) IsAdmin(userID string) bool {
	return s.policy.IsAdmin(userID)
}

// AddCard validates the request, stores the base and foil images and
// inserts the card. Only admins may call it.
func (s *CatalogService) AddCard(ctx context.Context, actorID string, req NewCard) (*models.Card, error) {
	if !s.policy.IsAdmin(actorID) {
		return nil, economy.NewValidationError("You do not have permission to use this command!")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, economy.NewValidationError("Card name cannot be empty!")
	}
	rarity, err := models.ParseRarity(req.Rarity)
	if err != nil {
		return nil, economy.NewValidationError("Invalid rarity! Use one of Common, Uncommon, Rare, Legendary, Mythic.")
	}
	if err := ValidateImageType(req.ContentType); err != nil {
		return nil, err
	}

	data, err := s.fetcher.Fetch(ctx, req.ImageURL)
	if err != nil {
		return nil, err
	}
	base, foil, err := BuildCardImages(data)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%d_%s", strings.ToLower(string(rarity)), s.now().UnixNano(), slug(name))
	card := &models.Card{Name: name, Rarity: rarity}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		url, err := s.images.PutCardImage(gctx, key+".png", base, "image/png")
		card.Image = url
		return err
	})
	g.Go(func() error {
		url, err := s.images.PutCardImage(gctx, key+"_foil.png", foil, "image/png")
		card.FoilImage = url
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to upload card images: %w", err)
	}

	if err := s.cards.CreateCard(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	s.cache.Remove(rarity)

	slog.Info("Card added",
		slog.String("type", "catalog"),
		slog.String("user_id", actorID),
		slog.Int64("card_id", card.ID),
		slog.String("name", card.Name),
		slog.String("rarity", string(card.Rarity)),
	)
	return card, nil
}

func slug(name string) string {
	s := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if s == "" {
		return "card"
	}
	return s
}
