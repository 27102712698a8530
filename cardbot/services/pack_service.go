package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/repositories"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy/cooldown"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy/pack"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces"
)

type PackService struct {
	ledger    interfaces.LedgerStore
	assembler *pack.Assembler
	cooldown  time.Duration
	now       func() time.Time

	emptyOnce sync.Once
}

func NewPackService(ledger interfaces.LedgerStore, assembler *pack.Assembler, cd time.Duration) *PackService {
	if cd <= 0 {
		cd = cooldown.DefaultCooldown
	}
	return &PackService{
		ledger:    ledger,
		assembler: assembler,
		cooldown:  cd,
		now:       time.Now,
	}
}

// Cooldown reports whether userID may open a pack right now. Unknown users
// have never opened one.
func (s *PackService) Cooldown(ctx context.Context, userID string) (cooldown.Decision, error) {
	user, err := s.ledger.GetUser(ctx, userID)
	if repositories.IsNotFound(err) {
		return cooldown.Decision{Allowed: true}, nil
	}
	if err != nil {
		return cooldown.Decision{}, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	return cooldown.CanOpen(user.LastOpened, s.now(), s.cooldown), nil
}

// OpenPack draws a pack for userID and records it. It returns a
// *economy.CooldownError while the user is on cooldown, and nothing is
// written unless the whole pack is.
func (s *PackService) OpenPack(ctx context.Context, userID string) (*pack.Pack, error) {
	if userID == "" {
		return nil, economy.NewValidationError("Unknown user!")
	}

	user, err := s.ledger.CreateUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}

	now := s.now()
	if d := cooldown.CanOpen(user.LastOpened, now, s.cooldown); !d.Allowed {
		return nil, &economy.CooldownError{Remaining: d.Remaining}
	}

	p, err := s.assembler.Open(ctx)
	if err != nil {
		if errors.Is(err, economy.ErrEmptyCatalog) {
			s.emptyOnce.Do(func() {
				slog.Warn("Pack opened against an empty catalog",
					slog.String("type", "sys"),
					slog.Any("error", err),
				)
			})
		}
		return nil, err
	}

	records := make([]*models.Ownership, 0, len(p.Cards))
	for _, c := range p.Cards {
		records = append(records, &models.Ownership{
			UserID:     userID,
			CardID:     c.Card.ID,
			IsFoil:     c.Foil,
			ObtainedAt: now,
		})
	}

	ok, err := s.ledger.CommitPackOpen(ctx, userID, user.LastOpened, now, records)
	if err != nil {
		return nil, fmt.Errorf("failed to record pack for %s: %w", userID, err)
	}
	if !ok {
		// a concurrent open won the swap
		return nil, s.lostRace(ctx, userID, now)
	}

	slog.Info("Pack opened",
		slog.String("type", "pack"),
		slog.String("user_id", userID),
		slog.Int("cards", len(p.Cards)),
		slog.String("chase_rarity", string(p.Chase().Card.Rarity)),
	)
	return p, nil
}

func (s *PackService) lostRace(ctx context.Context, userID string, now time.Time) error {
	user, err := s.ledger.GetUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to reload user %s: %w", userID, err)
	}
	d := cooldown.CanOpen(user.LastOpened, now, s.cooldown)
	if d.Allowed {
		d.Remaining = s.cooldown
	}
	return &economy.CooldownError{Remaining: d.Remaining}
}
