package pack

import (
	"fmt"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
)

// SlotConfig describes one kind of pack slot. Foil is the fixed finish of
// every card drawn in the slot.
type SlotConfig struct {
	Rarity WeightTable
	Foil   bool
}

// RegularSlots is the number of regular cards in every pack. The chase card
// comes on top.
const RegularSlots = 5

// PackSize is the number of cards in one pack.
const PackSize = RegularSlots + 1

type Config struct {
	Regular SlotConfig
	Chase   SlotConfig
}

func DefaultConfig() Config {
	return Config{
		Regular: SlotConfig{
			Rarity: WeightTable{
				{Label: string(models.RarityCommon), Weight: 65},
				{Label: string(models.RarityUncommon), Weight: 25},
				{Label: string(models.RarityRare), Weight: 10},
			},
		},
		Chase: SlotConfig{
			Rarity: WeightTable{
				{Label: string(models.RarityUncommon), Weight: 50},
				{Label: string(models.RarityRare), Weight: 35},
				{Label: string(models.RarityLegendary), Weight: 12},
				{Label: string(models.RarityMythic), Weight: 3},
			},
			Foil: true,
		},
	}
}

// Validate checks that every slot has weights and that every label is a
// known rarity.
func (c Config) Validate() error {
	for name, slot := range map[string]SlotConfig{"regular": c.Regular, "chase": c.Chase} {
		if len(slot.Rarity) == 0 {
			return fmt.Errorf("%s slot has no rarity weights", name)
		}
		for _, w := range slot.Rarity {
			if !models.Rarity(w.Label).Valid() {
				return fmt.Errorf("%s slot: unknown rarity %q", name, w.Label)
			}
		}
	}
	return nil
}
