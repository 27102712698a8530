package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/cardbot/cardbot"
	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy/pack"
	"github.com/ellavondegurechaff/cardbot/cardbot/utils"
)

var Open = discord.SlashCommandCreate{
	Name:        "open",
	Description: "Open a card pack",
}

func OpenHandler(b *cardbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if err := e.DeferCreateMessage(false); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		p, err := b.Packs.OpenPack(ctx, e.User().ID.String())
		if err != nil {
			_, updErr := e.UpdateInteractionResponse(discord.MessageUpdate{
				Content: openErrorContent(err),
			})
			if expectedOpenError(err) {
				return updErr
			}
			return errors.Join(err, updErr)
		}

		embeds := PackEmbeds(p)
		_, err = e.UpdateInteractionResponse(discord.MessageUpdate{
			Content: utils.Ptr("🎉 Here are your cards:"),
			Embeds:  &embeds,
		})
		return err
	}
}

// PackEmbeds renders regular cards first and the chase card last.
func PackEmbeds(p *pack.Pack) []discord.Embed {
	embeds := make([]discord.Embed, 0, len(p.Cards))
	for _, c := range p.Cards {
		embeds = append(embeds, utils.CardEmbed(c.Card, c.Foil))
	}
	return embeds
}

func expectedOpenError(err error) bool {
	_, cooldown := economy.AsCooldown(err)
	return cooldown || economy.IsValidation(err) || errors.Is(err, economy.ErrEmptyCatalog)
}

func openErrorContent(err error) *string {
	if cd, ok := economy.AsCooldown(err); ok {
		return utils.Ptr(fmt.Sprintf("You need to wait %s before opening another pack!", utils.FormatRemaining(cd.Remaining)))
	}
	if economy.IsValidation(err) {
		return utils.Ptr(err.Error())
	}
	if errors.Is(err, economy.ErrEmptyCatalog) {
		return utils.Ptr("There are no cards to open yet. Please try again later.")
	}
	return utils.Ptr("There was an error while opening your pack. Please try again later.")
}
