package utils

import (
	"fmt"
	"time"

	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
)

// FormatRemaining renders a cooldown as "Xh Ym", rounding down.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	return fmt.Sprintf("%dh %dm", h, m)
}

func RarityColor(r models.Rarity) int {
	switch r {
	case models.RarityCommon:
		return config.RarityCommonColor
	case models.RarityUncommon:
		return config.RarityUncommonColor
	case models.RarityRare:
		return config.RarityRareColor
	case models.RarityLegendary:
		return config.RarityLegendaryColor
	case models.RarityMythic:
		return config.RarityMythicColor
	}
	return config.InfoColor
}

func FoilLabel(foil bool) string {
	if foil {
		return " " + config.FoilFooter
	}
	return ""
}

func Ptr[T any](v T) *T {
	return &v
}
