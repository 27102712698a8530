package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TradeStatus string

const (
	TradePending  TradeStatus = "pending"
	TradeAccepted TradeStatus = "accepted"
	TradeDeclined TradeStatus = "declined"
	TradeExpired  TradeStatus = "expired"
)

func (s TradeStatus) IsTerminal() bool {
	switch s {
	case TradeAccepted, TradeDeclined, TradeExpired:
		return true
	}
	return false
}

type Trade struct {
	bun.BaseModel `bun:"table:trades,alias:t"`

	ID         string      `bun:"id,pk"`
	SenderID   string      `bun:"sender_id,notnull"`
	ReceiverID string      `bun:"receiver_id,notnull"`
	CardID     int64       `bun:"card_id,notnull"`
	Status     TradeStatus `bun:"status,notnull"`
	CreatedAt  time.Time   `bun:"created_at,notnull,default:current_timestamp"`
	SettledAt  time.Time   `bun:"settled_at,nullzero"`

	Card *Card `bun:"rel:belongs-to,join:card_id=id"`
}
