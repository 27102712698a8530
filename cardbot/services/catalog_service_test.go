package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces/mock"
	"github.com/ellavondegurechaff/cardbot/cardbot/permissions"
)

type staticFetcher struct {
	data  []byte
	err   error
	calls atomic.Int32
}

func (f *staticFetcher) Fetch(context.Context, string) ([]byte, error) {
	f.calls.Add(1)
	return f.data, f.err
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 120, G: 80, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCatalogCachesRarityLookups(t *testing.T) {
	ctrl := gomock.NewController(t)
	cards := mock.NewMockCardStore(ctrl)
	cards.EXPECT().FindCardsByRarity(gomock.Any(), models.RarityRare).
		Return([]*models.Card{{ID: 1}}, nil).Times(1)

	svc := NewCatalogService(cards, mock.NewMockImageStore(ctrl), &staticFetcher{}, permissions.NewAllowList())
	for i := 0; i < 3; i++ {
		got, err := svc.FindCardsByRarity(context.Background(), models.RarityRare)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}
}

func TestAddCard(t *testing.T) {
	ctrl := gomock.NewController(t)
	cards := mock.NewMockCardStore(ctrl)
	images := mock.NewMockImageStore(ctrl)
	fetcher := &staticFetcher{data: samplePNG(t)}
	svc := NewCatalogService(cards, images, fetcher, permissions.NewAllowList("admin"))

	images.EXPECT().PutCardImage(gomock.Any(), gomock.Any(), gomock.Any(), "image/png").
		DoAndReturn(func(_ context.Context, key string, data []byte, _ string) (string, error) {
			assert.True(t, strings.HasPrefix(key, "legendary/"))
			assert.NotEmpty(t, data)
			return "https://cdn/" + key, nil
		}).Times(2)

	gomock.InOrder(
		cards.EXPECT().FindCardsByRarity(gomock.Any(), models.RarityLegendary).Return(nil, nil),
		cards.EXPECT().CreateCard(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, c *models.Card) error {
			c.ID = 77
			return nil
		}),
		cards.EXPECT().FindCardsByRarity(gomock.Any(), models.RarityLegendary).Return([]*models.Card{{ID: 77}}, nil),
	)

	before, err := svc.FindCardsByRarity(context.Background(), models.RarityLegendary)
	require.NoError(t, err)
	assert.Empty(t, before)

	card, err := svc.AddCard(context.Background(), "admin", NewCard{
		Name:        "Star Whale",
		Rarity:      "legendary",
		ImageURL:    "https://cdn.discordapp.com/x.png",
		ContentType: "image/png",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(77), card.ID)
	assert.Equal(t, models.RarityLegendary, card.Rarity)
	assert.True(t, strings.HasSuffix(card.Image, "_star-whale.png"))
	assert.True(t, strings.HasSuffix(card.FoilImage, "_star-whale_foil.png"))

	after, err := svc.FindCardsByRarity(context.Background(), models.RarityLegendary)
	require.NoError(t, err)
	assert.Len(t, after, 1, "cache is invalidated after adding a card")
}

func TestAddCardRejections(t *testing.T) {
	tests := []struct {
		name  string
		actor string
		req   NewCard
	}{
		{name: "not admin", actor: "someone", req: NewCard{Name: "A", Rarity: "Rare", ContentType: "image/png"}},
		{name: "empty name", actor: "admin", req: NewCard{Name: " ", Rarity: "Rare", ContentType: "image/png"}},
		{name: "bad rarity", actor: "admin", req: NewCard{Name: "A", Rarity: "Epic", ContentType: "image/png"}},
		{name: "bad type", actor: "admin", req: NewCard{Name: "A", Rarity: "Rare", ContentType: "image/webp"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			fetcher := &staticFetcher{}
			svc := NewCatalogService(mock.NewMockCardStore(ctrl), mock.NewMockImageStore(ctrl), fetcher, permissions.NewAllowList("admin"))

			_, err := svc.AddCard(context.Background(), tt.actor, tt.req)
			assert.True(t, economy.IsValidation(err), "got %v", err)
			assert.Zero(t, fetcher.calls.Load())
		})
	}
}

func TestAddCardUploadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	images := mock.NewMockImageStore(ctrl)
	upErr := errors.New("403")
	images.EXPECT().PutCardImage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", upErr).MinTimes(1).MaxTimes(2)

	svc := NewCatalogService(mock.NewMockCardStore(ctrl), images, &staticFetcher{data: samplePNG(t)}, permissions.NewAllowList("admin"))
	_, err := svc.AddCard(context.Background(), "admin", NewCard{Name: "A", Rarity: "Rare", ContentType: "image/png"})
	assert.ErrorIs(t, err, upErr)
}
