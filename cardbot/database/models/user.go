package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID string `bun:"id,pk"`
	// LastOpened is zero until the first pack is opened.
	LastOpened time.Time `bun:"last_opened,nullzero"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
