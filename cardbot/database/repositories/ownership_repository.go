package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
)

type ownershipGroupRow struct {
	CardID        int64     `bun:"card_id"`
	IsFoil        bool      `bun:"is_foil"`
	Count         int       `bun:"count"`
	FirstObtained time.Time `bun:"first_obtained"`
}

// AppendOwnership records one acquisition, creating the user row if needed.
func (r *LedgerRepository) AppendOwnership(ctx context.Context, ownership *models.Ownership) error {
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := ensureUser(ctx, tx, ownership.UserID); err != nil {
			return err
		}
		_, err := tx.NewInsert().
			Model(ownership).
			Returning("id, obtained_at").
			Exec(ctx)
		return err
	})
	return r.HandleError("append", "ownership", err)
}

// CommitPackOpen swaps last_opened and inserts the pack's records in one
// transaction. It reports false, writing nothing, when the swap is lost.
func (r *LedgerRepository) CommitPackOpen(ctx context.Context, userID string, expected, openedAt time.Time, records []*models.Ownership) (bool, error) {
	openedAt = openedAt.Truncate(time.Microsecond)
	var swapped bool

	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := ensureUser(ctx, tx, userID); err != nil {
			return err
		}
		ok, err := swapLastOpened(ctx, tx, userID, expected, openedAt)
		if err != nil || !ok {
			return err
		}

		for _, rec := range records {
			rec.UserID = userID
			if rec.ObtainedAt.IsZero() {
				rec.ObtainedAt = openedAt
			}
		}
		if len(records) > 0 {
			if _, err := tx.NewInsert().Model(&records).Returning("id").Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert pack cards: %w", err)
			}
		}
		swapped = true
		return nil
	})
	if err != nil {
		return false, r.HandleErrorWithID("commit_pack", "user", userID, err)
	}
	return swapped, nil
}

func (r *LedgerRepository) groupQuery(userID string, rarity models.Rarity) *bun.SelectQuery {
	q := r.db.NewSelect().
		TableExpr("inventory AS i").
		Where("i.user_id = ?", userID)
	if rarity != "" {
		q = q.Join("JOIN cards AS c ON c.id = i.card_id").
			Where("c.rarity = ?", rarity)
	}
	return q.GroupExpr("i.card_id, i.is_foil")
}

// ListOwnership returns one page of (card, foil) groups ordered by first
// acquisition, then card id, then foil flag.
func (r *LedgerRepository) ListOwnership(ctx context.Context, userID string, filter models.InventoryFilter) ([]*models.OwnershipGroup, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var rows []ownershipGroupRow
	q := r.groupQuery(userID, filter.Rarity).
		ColumnExpr("i.card_id, i.is_foil, COUNT(*) AS count, MIN(i.obtained_at) AS first_obtained").
		OrderExpr("first_obtained ASC, i.card_id ASC, i.is_foil ASC")
	if filter.PageSize > 0 {
		q = q.Limit(filter.PageSize).Offset(filter.Offset())
	}
	if err := q.Scan(ctx, &rows); err != nil {
		return nil, r.HandleErrorWithID("list", "ownership", userID, err)
	}
	if len(rows) == 0 {
		return []*models.OwnershipGroup{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.CardID)
	}
	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("c.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("list", "ownership", userID, err)
	}
	byID := make(map[int64]*models.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	groups := make([]*models.OwnershipGroup, 0, len(rows))
	for _, row := range rows {
		groups = append(groups, &models.OwnershipGroup{
			Card:          byID[row.CardID],
			IsFoil:        row.IsFoil,
			Count:         row.Count,
			FirstObtained: row.FirstObtained,
		})
	}
	return groups, nil
}

func (r *LedgerRepository) CountOwnershipGroups(ctx context.Context, userID string, rarity models.Rarity) (int, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var n int
	err := r.db.NewSelect().
		ColumnExpr("COUNT(*)").
		TableExpr("(?) AS g", r.groupQuery(userID, rarity).ColumnExpr("1")).
		Scan(ctx, &n)
	if err != nil {
		return 0, r.HandleErrorWithID("count", "ownership", userID, err)
	}
	return n, nil
}

func (r *LedgerRepository) HasOwnership(ctx context.Context, userID string, cardID int64) (bool, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	exists, err := r.db.NewSelect().
		Model((*models.Ownership)(nil)).
		Where("i.user_id = ?", userID).
		Where("i.card_id = ?", cardID).
		Exists(ctx)
	if err != nil {
		return false, r.HandleErrorWithID("exists", "ownership", userID, err)
	}
	return exists, nil
}

// ListOwnedCards returns each distinct card the user holds at least once.
func (r *LedgerRepository) ListOwnedCards(ctx context.Context, userID string) ([]*models.Card, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("c.id IN (SELECT card_id FROM inventory WHERE user_id = ?)", userID).
		Order("c.name ASC", "c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("list_cards", "ownership", userID, err)
	}
	return cards, nil
}
