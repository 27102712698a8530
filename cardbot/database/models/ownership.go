package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Ownership is one acquired copy of a card. Rows are only ever inserted.
type Ownership struct {
	bun.BaseModel `bun:"table:inventory,alias:i"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     string    `bun:"user_id,notnull"`
	CardID     int64     `bun:"card_id,notnull"`
	IsFoil     bool      `bun:"is_foil,notnull"`
	ObtainedAt time.Time `bun:"obtained_at,notnull,default:current_timestamp"`

	Card *Card `bun:"rel:belongs-to,join:card_id=id"`
}

// OwnershipGroup is the display row of an inventory: every copy of one card
// with the same foil flag.
type OwnershipGroup struct {
	Card          *Card
	IsFoil        bool
	Count         int
	FirstObtained time.Time
}

// InventoryFilter selects one page of grouped ownership. Page is 1-based.
type InventoryFilter struct {
	Page     int
	PageSize int
	Rarity   Rarity
}

func (f InventoryFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}
