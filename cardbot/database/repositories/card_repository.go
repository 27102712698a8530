package repositories

import (
	"context"
	"strings"

	"github.com/uptrace/bun"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
)

type CardRepository struct {
	*BaseRepository
}

func NewCardRepository(db *bun.DB) *CardRepository {
	return &CardRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *CardRepository) FindCardsByRarity(ctx context.Context, rarity models.Rarity) ([]*models.Card, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("c.rarity = ?", rarity).
		Order("c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, r.HandleError("find_by_rarity", "card", err)
	}
	return cards, nil
}

func (r *CardRepository) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("c.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "card", id, err)
	}
	return card, nil
}

func (r *CardRepository) CreateCard(ctx context.Context, card *models.Card) error {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	card.Name = strings.TrimSpace(card.Name)
	_, err := r.db.NewInsert().
		Model(card).
		Returning("id, created_at").
		Exec(ctx)
	return r.HandleError("create", "card", err)
}
