package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces"
)

// InventoryPage is one page of a user's grouped inventory.
type InventoryPage struct {
	UserID      string
	Rarity      models.Rarity
	Groups      []*models.OwnershipGroup
	Page        int
	PageSize    int
	TotalGroups int
	TotalPages  int
}

var _ interfaces.OwnershipChecker = (*CollectionService)(nil)

type CollectionService struct {
	ledger   interfaces.LedgerStore
	pageSize int
	now      func() time.Time
}

func NewCollectionService(ledger interfaces.LedgerStore) *CollectionService {
	return &CollectionService{
		ledger:   ledger,
		pageSize: config.InventoryPageSize,
		now:      time.Now,
	}
}

func (s *CollectionService) PageSize() int {
	return s.pageSize
}

// RecordAcquisition appends one owned copy. The ledger is append-only.
func (s *CollectionService) RecordAcquisition(ctx context.Context, userID string, cardID int64, isFoil bool) error {
	if userID == "" {
		return economy.NewValidationError("Unknown user!")
	}
	err := s.ledger.AppendOwnership(ctx, &models.Ownership{
		UserID:     userID,
		CardID:     cardID,
		IsFoil:     isFoil,
		ObtainedAt: s.now(),
	})
	if err != nil {
		return fmt.Errorf("failed to record card %d for %s: %w", cardID, userID, err)
	}
	return nil
}

// ListInventory returns page (1-based, clamped to 1) of the user's (card,
// foil) groups. An empty inventory is an empty page.
func (s *CollectionService) ListInventory(ctx context.Context, userID string, page int, rarity models.Rarity) (*InventoryPage, error) {
	if page < 1 {
		page = 1
	}

	total, err := s.ledger.CountOwnershipGroups(ctx, userID, rarity)
	if err != nil {
		return nil, fmt.Errorf("failed to count inventory: %w", err)
	}

	result := &InventoryPage{
		UserID:      userID,
		Rarity:      rarity,
		Groups:      []*models.OwnershipGroup{},
		Page:        page,
		PageSize:    s.pageSize,
		TotalGroups: total,
		TotalPages:  max(1, (total+s.pageSize-1)/s.pageSize),
	}
	if total == 0 || (page-1)*s.pageSize >= total {
		return result, nil
	}

	groups, err := s.ledger.ListOwnership(ctx, userID, models.InventoryFilter{
		Page:     page,
		PageSize: s.pageSize,
		Rarity:   rarity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	result.Groups = groups
	return result, nil
}

// HasOwnership reports whether the user holds at least one copy of the card.
// Trades reference records without consuming them.
func (s *CollectionService) HasOwnership(ctx context.Context, userID string, cardID int64) (bool, error) {
	owns, err := s.ledger.HasOwnership(ctx, userID, cardID)
	if err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}
	return owns, nil
}

func (s *CollectionService) OwnedCards(ctx context.Context, userID string) ([]*models.Card, error) {
	cards, err := s.ledger.ListOwnedCards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned cards: %w", err)
	}
	return cards, nil
}

type ownedCards []*models.Card

func (c ownedCards) String(i int) string { return strings.ToLower(c[i].Name) }
func (c ownedCards) Len() int            { return len(c) }

// ResolveOwnedCard turns user input into a card id. Numeric input is taken
// as an id; anything else is fuzzy matched against the cards the user owns.
// Numeric ids are not checked here; ownership is checked when the trade is
// requested.
func (s *CollectionService) ResolveOwnedCard(ctx context.Context, userID, query string) (int64, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, economy.NewValidationError("Invalid card ID!")
	}
	if id, err := strconv.ParseInt(strings.TrimPrefix(query, "#"), 10, 64); err == nil {
		return id, nil
	}

	cards, err := s.OwnedCards(ctx, userID)
	if err != nil {
		return 0, err
	}
	matches := fuzzy.FindFrom(strings.ToLower(query), ownedCards(cards))
	if len(matches) == 0 {
		return 0, economy.NewValidationError("You do not own a card matching %q!", query)
	}
	return cards[matches[0].Index].ID, nil
}
