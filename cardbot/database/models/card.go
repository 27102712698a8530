package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Rarity is an ordered card tier. The zero value means "no rarity" and is
// used as the empty filter.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityLegendary Rarity = "Legendary"
	RarityMythic    Rarity = "Mythic"
)

// Rarities lists every tier from lowest to highest.
var Rarities = []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityLegendary, RarityMythic}

// Rank returns the position of r in Rarities, or -1 for unknown values.
func (r Rarity) Rank() int {
	for i, known := range Rarities {
		if known == r {
			return i
		}
	}
	return -1
}

func (r Rarity) Valid() bool {
	return r.Rank() >= 0
}

// ParseRarity matches a rarity name case-insensitively.
func ParseRarity(s string) (Rarity, error) {
	s = strings.TrimSpace(s)
	for _, r := range Rarities {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown rarity %q", s)
}

type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID        int64     `bun:"id,pk,autoincrement"`
	Name      string    `bun:"name,notnull"`
	Rarity    Rarity    `bun:"rarity,notnull"`
	Image     string    `bun:"image,notnull"`
	FoilImage string    `bun:"foil_image,notnull,default:''"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// ImageFor returns the image to render for an owned copy. Foil copies fall
// back to the base image when no foil variant was uploaded.
func (c *Card) ImageFor(foil bool) string {
	if foil && c.FoilImage != "" {
		return c.FoilImage
	}
	return c.Image
}
