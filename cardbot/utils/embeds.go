package utils

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"

	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
)

type messageCreator interface {
	CreateMessage(messageCreate discord.MessageCreate, opts ...rest.RequestOpt) error
}

// CardEmbed shows one card, using the foil image for foil copies.
func CardEmbed(card *models.Card, foil bool) discord.Embed {
	eb := discord.NewEmbedBuilder().
		SetTitle(card.Name).
		SetDescriptionf("**Rarity:** %s", card.Rarity).
		SetColor(RarityColor(card.Rarity))
	if img := card.ImageFor(foil); img != "" {
		eb.SetImage(img)
	}
	if foil {
		eb.SetFooterText(config.FoilFooter)
	}
	return eb.Build()
}

func ErrorEmbed(msg string) discord.Embed {
	return discord.Embed{Description: "❌ " + msg, Color: config.ErrorColor}
}

func SuccessEmbed(msg string) discord.Embed {
	return discord.Embed{Description: "✅ " + msg, Color: config.SuccessColor}
}

// RespondError sends an ephemeral error embed.
func RespondError(e messageCreator, msg string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{ErrorEmbed(msg)},
		Flags:  discord.MessageFlagEphemeral,
	})
}

// RespondEphemeral sends plain ephemeral text.
func RespondEphemeral(e messageCreator, content string) error {
	return e.CreateMessage(discord.MessageCreate{
		Content: content,
		Flags:   discord.MessageFlagEphemeral,
	})
}
