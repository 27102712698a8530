// Package interfaces declares the storage seams the economy and service
// layers depend on. Mocks live in the mock subpackage.
package interfaces

//go:generate mockgen -destination=mock/repositories.go -package=mock . CardStore,LedgerStore,TradeStore,ImageStore

import (
	"context"
	"time"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
)

type CatalogReader interface {
	FindCardsByRarity(ctx context.Context, rarity models.Rarity) ([]*models.Card, error)
}

type CardLookup interface {
	GetCard(ctx context.Context, id int64) (*models.Card, error)
}

type CardStore interface {
	CatalogReader
	CardLookup
	CreateCard(ctx context.Context, card *models.Card) error
}

type OwnershipChecker interface {
	HasOwnership(ctx context.Context, userID string, cardID int64) (bool, error)
}

type LedgerStore interface {
	OwnershipChecker
	GetUser(ctx context.Context, userID string) (*models.User, error)
	// CreateUser returns the stored user, creating it when missing.
	CreateUser(ctx context.Context, userID string) (*models.User, error)
	AppendOwnership(ctx context.Context, ownership *models.Ownership) error
	// CommitPackOpen moves last_opened from expected to openedAt and inserts
	// records in one transaction. It reports false, writing nothing, when the
	// stored value no longer equals expected.
	CommitPackOpen(ctx context.Context, userID string, expected, openedAt time.Time, records []*models.Ownership) (bool, error)
	ListOwnership(ctx context.Context, userID string, filter models.InventoryFilter) ([]*models.OwnershipGroup, error)
	CountOwnershipGroups(ctx context.Context, userID string, rarity models.Rarity) (int, error)
	ListOwnedCards(ctx context.Context, userID string) ([]*models.Card, error)
}

type TradeStore interface {
	CreateTrade(ctx context.Context, senderID, receiverID string, card *models.Card) (*models.Trade, error)
	GetTrade(ctx context.Context, id string) (*models.Trade, error)
	// SetTradeStatus only updates pending trades.
	SetTradeStatus(ctx context.Context, id string, status models.TradeStatus, at time.Time) error
	ExpirePendingTrades(ctx context.Context, before time.Time) (int64, error)
}

type ImageStore interface {
	// PutCardImage stores data under key and returns its public URL.
	PutCardImage(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
