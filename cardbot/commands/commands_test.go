package commands

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy/pack"
	"github.com/ellavondegurechaff/cardbot/cardbot/services"
)

func TestTradeIDFromCustomID(t *testing.T) {
	tests := []struct {
		name     string
		customID string
		prefix   string
		want     string
		ok       bool
	}{
		{"accept", "/trade/accept/T1a2b1234", tradeAcceptPrefix, "T1a2b1234", true},
		{"decline", "/trade/decline/T1a2b1234", tradeDeclinePrefix, "T1a2b1234", true},
		{"wrong prefix", "/trade/decline/T1", tradeAcceptPrefix, "", false},
		{"missing id", "/trade/accept/", tradeAcceptPrefix, "", false},
		{"extra segment", "/trade/accept/T1/x", tradeAcceptPrefix, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TradeIDFromCustomID(tt.customID, tt.prefix)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTradeButtonsCarryTradeID(t *testing.T) {
	row, ok := tradeButtons("T9ab1234").(discord.ActionRowComponent)
	require.True(t, ok)
	comps := row.Components()
	require.Len(t, comps, 2)

	accept, ok := comps[0].(discord.ButtonComponent)
	require.True(t, ok)
	decline, ok := comps[1].(discord.ButtonComponent)
	require.True(t, ok)

	id, ok := TradeIDFromCustomID(accept.CustomID, tradeAcceptPrefix)
	require.True(t, ok)
	assert.Equal(t, "T9ab1234", id)

	id, ok = TradeIDFromCustomID(decline.CustomID, tradeDeclinePrefix)
	require.True(t, ok)
	assert.Equal(t, "T9ab1234", id)
}

func TestSettledContent(t *testing.T) {
	assert.Equal(t, "✅ Trade accepted!", SettledContent(models.TradeAccepted))
	assert.Equal(t, "❌ Trade declined!", SettledContent(models.TradeDeclined))
	assert.Equal(t, "⏰ Trade offer expired!", SettledContent(models.TradeExpired))
	assert.Equal(t, "This trade is still pending.", SettledContent(models.TradePending))
}

func TestTradeOfferEmbed(t *testing.T) {
	trade := &models.Trade{
		ID:        "T1aa0001",
		CreatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Card:      &models.Card{ID: 3, Name: "Ember Fox", Rarity: models.RarityRare, Image: "https://cdn/fox.png"},
	}

	embed := TradeOfferEmbed("alice", trade)

	assert.Equal(t, "🤝 Trade Offer", embed.Title)
	assert.Equal(t, "alice wants to trade with you!", embed.Description)
	require.NotNil(t, embed.Image)
	assert.Equal(t, "https://cdn/fox.png", embed.Image.URL)
	require.Len(t, embed.Fields, 3)
	assert.Equal(t, "T1aa0001", embed.Fields[0].Value)
	assert.Equal(t, "Ember Fox", embed.Fields[1].Value)
}

func TestOpenErrorContent(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		expected bool
	}{
		{
			name:     "cooldown",
			err:      fmt.Errorf("open: %w", &economy.CooldownError{Remaining: 5*time.Hour + 3*time.Minute + 59*time.Second}),
			want:     "You need to wait 5h 3m before opening another pack!",
			expected: true,
		},
		{
			name:     "validation",
			err:      economy.NewValidationError("Unknown user!"),
			want:     "Unknown user!",
			expected: true,
		},
		{
			name:     "empty catalog",
			err:      fmt.Errorf("chase slot: %w", economy.ErrEmptyCatalog),
			want:     "There are no cards to open yet. Please try again later.",
			expected: true,
		},
		{
			name:     "storage failure",
			err:      errors.New("connection reset"),
			want:     "There was an error while opening your pack. Please try again later.",
			expected: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, *openErrorContent(tt.err))
			assert.Equal(t, tt.expected, expectedOpenError(tt.err))
		})
	}
}

func TestPackEmbedsKeepSlotOrder(t *testing.T) {
	p := &pack.Pack{Cards: []pack.PackCard{
		{Card: &models.Card{ID: 1, Name: "A", Rarity: models.RarityCommon, Image: "a.png", FoilImage: "a_foil.png"}},
		{Card: &models.Card{ID: 2, Name: "B", Rarity: models.RarityMythic, Image: "b.png", FoilImage: "b_foil.png"}, Foil: true, Chase: true},
	}}

	embeds := PackEmbeds(p)

	require.Len(t, embeds, 2)
	assert.Equal(t, "A", embeds[0].Title)
	assert.Equal(t, "a.png", embeds[0].Image.URL)
	assert.Nil(t, embeds[0].Footer)
	assert.Equal(t, "B", embeds[1].Title)
	assert.Equal(t, "b_foil.png", embeds[1].Image.URL)
	require.NotNil(t, embeds[1].Footer)
	assert.Equal(t, config.FoilFooter, embeds[1].Footer.Text)
}

func TestInventoryDescription(t *testing.T) {
	inv := &services.InventoryPage{
		Rarity: models.RarityRare,
		Groups: []*models.OwnershipGroup{
			{Card: &models.Card{ID: 4, Name: "Tide Whale", Rarity: models.RarityRare}, Count: 2},
			{Card: &models.Card{ID: 4, Name: "Tide Whale", Rarity: models.RarityRare}, IsFoil: true, Count: 1},
		},
		Page:        1,
		TotalGroups: 2,
		TotalPages:  1,
	}

	got := inventoryDescription(inv)

	assert.Equal(t, "Showing Rare cards\n\n"+
		"`#4` **Tide Whale** · Rare · x2\n"+
		"`#4` **Tide Whale** ✨ Foil · Rare · x1\n", got)

	embed := InventoryEmbed("bob", inv)
	assert.Equal(t, "bob's Card Collection", embed.Title)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "Page 1/1 • Total: 2", embed.Footer.Text)
}

func TestInventoryDescriptionPastLastPage(t *testing.T) {
	inv := &services.InventoryPage{Groups: []*models.OwnershipGroup{}, Page: 7, TotalGroups: 3, TotalPages: 1}
	assert.Equal(t, "Nothing on this page.", inventoryDescription(inv))
}

func TestEmptyInventoryContent(t *testing.T) {
	assert.Equal(t, "carol's inventory is empty!", emptyInventoryContent("carol", ""))
	assert.Equal(t, "No legendary cards found in carol's inventory!", emptyInventoryContent("carol", models.RarityLegendary))
}

func TestCommandsRegistered(t *testing.T) {
	names := make([]string, 0, len(Commands))
	for _, c := range Commands {
		names = append(names, c.CommandName())
	}
	assert.ElementsMatch(t, []string{"open", "inventory", "trade", "admin"}, names)
}

func TestAdminSubcommands(t *testing.T) {
	names := make([]string, 0, len(Admin.Options))
	for _, o := range Admin.Options {
		sub, ok := o.(discord.ApplicationCommandOptionSubCommand)
		require.True(t, ok)
		names = append(names, sub.Name)
	}
	assert.Equal(t, []string{"addcard", "givecard"}, names)
}

func TestCardGivenEmbed(t *testing.T) {
	card := &models.Card{ID: 12, Name: "Ember Fox", Rarity: models.RarityLegendary}

	embed := CardGivenEmbed(card, "42", true)
	assert.Equal(t, "✨ Ember Fox (#12) was added to <@42>'s collection.", embed.Description)

	embed = CardGivenEmbed(card, "42", false)
	assert.Equal(t, "Ember Fox (#12) was added to <@42>'s collection.", embed.Description)
}
