package pack

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces/mock"
)

func catalogOf(rarity models.Rarity, n int) []*models.Card {
	cards := make([]*models.Card, n)
	for i := range cards {
		cards[i] = &models.Card{ID: int64(rarity.Rank()*100 + i + 1), Name: string(rarity), Rarity: rarity}
	}
	return cards
}

func expectCatalog(store *mock.MockCardStore, counts map[models.Rarity]int) {
	for _, r := range models.Rarities {
		store.EXPECT().
			FindCardsByRarity(gomock.Any(), r).
			Return(catalogOf(r, counts[r]), nil).
			MaxTimes(1)
	}
}

func TestAssemblerOpen(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockCardStore(ctrl)
	expectCatalog(store, map[models.Rarity]int{
		models.RarityCommon:    5,
		models.RarityUncommon:  4,
		models.RarityRare:      3,
		models.RarityLegendary: 2,
		models.RarityMythic:    1,
	})

	a := NewAssembler(store, NewSource(3), DefaultConfig())
	p, err := a.Open(context.Background())
	require.NoError(t, err)
	require.Len(t, p.Cards, 6)

	require.Len(t, p.Regular(), 5)
	for _, c := range p.Regular() {
		assert.False(t, c.Foil)
		assert.False(t, c.Chase)
		assert.Contains(t, []models.Rarity{models.RarityCommon, models.RarityUncommon, models.RarityRare}, c.Card.Rarity)
	}

	chase := p.Chase()
	assert.True(t, chase.Foil)
	assert.True(t, chase.Chase)
	assert.NotEqual(t, models.RarityCommon, chase.Card.Rarity)
}

func TestAssemblerRedrawsEmptyRarity(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockCardStore(ctrl)
	a := NewAssembler(store, NewSource(11), DefaultConfig())
	for i := 0; i < 20; i++ {
		// each Open memoizes separately, so allow the lookups again
		expectCatalog(store, map[models.Rarity]int{
			models.RarityCommon: 2,
			models.RarityMythic: 1,
		})
		p, err := a.Open(context.Background())
		require.NoError(t, err)
		for _, c := range p.Regular() {
			assert.Equal(t, models.RarityCommon, c.Card.Rarity)
		}
		assert.Equal(t, models.RarityMythic, p.Chase().Card.Rarity)
	}
}

func TestAssemblerEmptyCatalog(t *testing.T) {
	tests := []struct {
		name   string
		counts map[models.Rarity]int
		slot   string
	}{
		{
			name:   "nothing at all",
			counts: map[models.Rarity]int{},
			slot:   "regular slot",
		},
		{
			name:   "only commons",
			counts: map[models.Rarity]int{models.RarityCommon: 3},
			slot:   "chase slot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mock.NewMockCardStore(ctrl)
			expectCatalog(store, tt.counts)

			_, err := NewAssembler(store, NewSource(5), DefaultConfig()).Open(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, economy.ErrEmptyCatalog)
			assert.Contains(t, err.Error(), tt.slot)
		})
	}
}

func TestAssemblerCatalogError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockCardStore(ctrl)
	dbErr := errors.New("connection reset")
	store.EXPECT().FindCardsByRarity(gomock.Any(), gomock.Any()).Return(nil, dbErr)

	_, err := NewAssembler(store, NewSource(5), DefaultConfig()).Open(context.Background())
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, economy.ErrEmptyCatalog)
}

func TestAssemblerZeroWeightFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mock.NewMockCardStore(ctrl)
	expectCatalog(store, map[models.Rarity]int{models.RarityRare: 1})

	cfg := Config{
		Regular: SlotConfig{Rarity: WeightTable{{"Rare", 0}, {"Common", 0}}},
		Chase:   SlotConfig{Rarity: WeightTable{{"Rare", 0}}, Foil: true},
	}
	p, err := NewAssembler(store, NewSource(9), cfg).Open(context.Background())
	require.NoError(t, err)
	require.Len(t, p.Cards, PackSize)
	require.Len(t, p.Regular(), RegularSlots)
	assert.True(t, p.Chase().Chase)
	for _, c := range p.Cards {
		assert.Equal(t, models.RarityRare, c.Card.Rarity)
	}
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	bad := DefaultConfig()
	bad.Chase.Rarity = WeightTable{{"Shiny", 10}}
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Regular.Rarity = nil
	assert.Error(t, bad.Validate())
}

func TestEmptyPackAccessors(t *testing.T) {
	var p Pack
	assert.Empty(t, p.Regular())
	assert.NotPanics(t, func() {
		c := p.Chase()
		assert.Nil(t, c.Card)
		assert.False(t, c.Chase)
	})
}
