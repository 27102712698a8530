package repositories

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
)

const maxTradeIDAttempts = 10

type TradeRepository struct {
	*BaseRepository
	now func() time.Time
}

func NewTradeRepository(db *bun.DB) *TradeRepository {
	return &TradeRepository{BaseRepository: NewBaseRepository(db), now: time.Now}
}

// CreateTrade stores a pending trade under a fresh short code such as
// "TDR0421".
func (r *TradeRepository) CreateTrade(ctx context.Context, senderID, receiverID string, card *models.Card) (*models.Trade, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	id, err := r.generateTradeID(ctx, card.Name)
	if err != nil {
		return nil, r.HandleError("create", "trade", err)
	}

	trade := &models.Trade{
		ID:         id,
		SenderID:   senderID,
		ReceiverID: receiverID,
		CardID:     card.ID,
		Status:     models.TradePending,
		CreatedAt:  r.now().Truncate(time.Microsecond),
		Card:       card,
	}
	if _, err := r.db.NewInsert().Model(trade).Exec(ctx); err != nil {
		return nil, r.HandleErrorWithID("create", "trade", id, err)
	}
	return trade, nil
}

func (r *TradeRepository) GetTrade(ctx context.Context, id string) (*models.Trade, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	trade := new(models.Trade)
	err := r.db.NewSelect().
		Model(trade).
		Relation("Card").
		Where("t.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "trade", id, err)
	}
	return trade, nil
}

// SetTradeStatus moves a pending trade to a terminal status. It returns
// ErrTradeNotPending when the trade already settled.
func (r *TradeRepository) SetTradeStatus(ctx context.Context, id string, status models.TradeStatus, at time.Time) error {
	if !status.IsTerminal() {
		return fmt.Errorf("invalid target status %q", status)
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Trade)(nil)).
		Set("status = ?", status).
		Set("settled_at = ?", at.Truncate(time.Microsecond)).
		Where("id = ?", id).
		Where("status = ?", models.TradePending).
		Exec(ctx)
	if err != nil {
		return r.HandleErrorWithID("set_status", "trade", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return r.HandleErrorWithID("set_status", "trade", id, err)
	}
	if n == 1 {
		return nil
	}

	exists, err := r.tradeIDExists(ctx, id)
	if err != nil {
		return r.HandleErrorWithID("set_status", "trade", id, err)
	}
	if !exists {
		return &NotFoundError{Entity: "trade", ID: id}
	}
	return ErrTradeNotPending
}

// ExpirePendingTrades expires every pending trade created before the cutoff.
func (r *TradeRepository) ExpirePendingTrades(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	res, err := r.db.NewUpdate().
		Model((*models.Trade)(nil)).
		Set("status = ?", models.TradeExpired).
		Set("settled_at = ?", r.now().Truncate(time.Microsecond)).
		Where("status = ?", models.TradePending).
		Where("created_at < ?", before).
		Exec(ctx)
	if err != nil {
		return 0, r.HandleError("expire", "trade", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, r.HandleError("expire", "trade", err)
	}
	return n, nil
}

func (r *TradeRepository) tradeIDExists(ctx context.Context, id string) (bool, error) {
	return r.db.NewSelect().
		Model((*models.Trade)(nil)).
		Where("t.id = ?", id).
		Exists(ctx)
}

func (r *TradeRepository) generateTradeID(ctx context.Context, cardName string) (string, error) {
	return newTradeID(ctx, cardName, r.tradeIDExists)
}

// newTradeID draws codes until exists reports one as free. The last lookup
// error is returned if every attempt failed.
func newTradeID(ctx context.Context, cardName string, exists func(context.Context, string) (bool, error)) (string, error) {
	prefix := "T" + tradeIDPrefix(cardName)

	var lastErr error
	for attempt := 0; attempt < maxTradeIDAttempts; attempt++ {
		var randomBytes [4]byte
		if _, err := rand.Read(randomBytes[:]); err != nil {
			return "", fmt.Errorf("failed to generate random bytes: %w", err)
		}

		suffix := fmt.Sprintf("%04d", binary.BigEndian.Uint32(randomBytes[:])%10000)
		tradeID := prefix + suffix

		taken, err := exists(ctx, tradeID)
		if err != nil {
			lastErr = err
			continue
		}
		if !taken {
			return tradeID, nil
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("failed to generate unique trade ID: %w", lastErr)
	}
	return "", fmt.Errorf("failed to generate unique trade ID")
}

// tradeIDPrefix takes the initials of the first two words, or the first two
// letters of a single word, padded with X.
func tradeIDPrefix(name string) string {
	var letters []rune
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				letters = append(letters, r)
				break
			}
		}
	}

	if len(letters) < 2 {
		letters = letters[:0]
		for _, r := range name {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				letters = append(letters, r)
			}
			if len(letters) == 2 {
				break
			}
		}
	}
	for len(letters) < 2 {
		letters = append(letters, 'X')
	}
	return strings.ToUpper(string(letters[:2]))
}
