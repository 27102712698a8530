package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/cardbot/cardbot"
	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/repositories"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/services"
	"github.com/ellavondegurechaff/cardbot/cardbot/utils"
)

var Admin = discord.SlashCommandCreate{
	Name:        "admin",
	Description: "Admin commands",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "addcard",
			Description: "Add a new card",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name:        "name",
					Description: "Card name",
					Required:    true,
				},
				discord.ApplicationCommandOptionString{
					Name:        "rarity",
					Description: "Card rarity",
					Required:    true,
					Choices:     rarityChoices(),
				},
				discord.ApplicationCommandOptionAttachment{
					Name:        "image",
					Description: "Card image file",
					Required:    true,
				},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "givecard",
			Description: "Give a card to a user",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{
					Name:        "user",
					Description: "Who receives the card",
					Required:    true,
				},
				discord.ApplicationCommandOptionInt{
					Name:        "card",
					Description: "Card ID",
					Required:    true,
					MinValue:    utils.Ptr(1),
				},
				discord.ApplicationCommandOptionBool{
					Name:        "foil",
					Description: "Give the foil version",
				},
			},
		},
	},
}

func AdminHandler(b *cardbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.Catalog.IsAdmin(e.User().ID.String()) {
			return utils.RespondError(e, "You do not have permission to use admin commands!")
		}

		data := e.SlashCommandInteractionData()
		if data.SubCommandName == nil {
			return utils.RespondError(e, "Unknown admin command.")
		}
		switch *data.SubCommandName {
		case "addcard":
			return addCard(b, e, data)
		case "givecard":
			return giveCard(b, e, data)
		default:
			return utils.RespondError(e, "Unknown admin command.")
		}
	}
}

func giveCard(b *cardbot.Bot, e *handler.CommandEvent, data discord.SlashCommandInteractionData) error {
	target := data.User("user")
	if target.Bot {
		return utils.RespondError(e, "Bots cannot own cards!")
	}
	foil, _ := data.OptBool("foil")

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
	defer cancel()

	card, err := b.Catalog.GetCard(ctx, int64(data.Int("card")))
	if err != nil {
		if repositories.IsNotFound(err) {
			return utils.RespondError(e, "Invalid card ID!")
		}
		return err
	}
	if err := b.Collection.RecordAcquisition(ctx, target.ID.String(), card.ID, foil); err != nil {
		if economy.IsValidation(err) {
			return utils.RespondError(e, err.Error())
		}
		return err
	}

	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{CardGivenEmbed(card, target.ID.String(), foil)},
	})
}

func addCard(b *cardbot.Bot, e *handler.CommandEvent, data discord.SlashCommandInteractionData) error {
	if err := e.DeferCreateMessage(false); err != nil {
		return err
	}

	attachment := data.Attachment("image")
	req := services.NewCard{
		Name:     data.String("name"),
		Rarity:   data.String("rarity"),
		ImageURL: attachment.URL,
	}
	if attachment.ContentType != nil {
		req.ContentType = *attachment.ContentType
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
	defer cancel()

	card, err := b.Catalog.AddCard(ctx, e.User().ID.String(), req)
	if err != nil {
		content := "There was an error while executing the admin command. Please try again later."
		if economy.IsValidation(err) {
			content = err.Error()
		}
		_, updErr := e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{utils.ErrorEmbed(content)},
		})
		if economy.IsValidation(err) {
			return updErr
		}
		return errors.Join(err, updErr)
	}

	embeds := []discord.Embed{CardAddedEmbed(card)}
	_, err = e.UpdateInteractionResponse(discord.MessageUpdate{Embeds: &embeds})
	return err
}

func CardGivenEmbed(card *models.Card, userID string, foil bool) discord.Embed {
	name := card.Name
	if foil {
		name = "✨ " + name
	}
	return discord.NewEmbedBuilder().
		SetTitle("🎁 Card Given").
		SetDescription(fmt.Sprintf("%s (#%d) was added to <@%s>'s collection.", name, card.ID, userID)).
		SetColor(utils.RarityColor(card.Rarity)).
		Build()
}

func CardAddedEmbed(card *models.Card) discord.Embed {
	foil := "No"
	if card.FoilImage != "" {
		foil = "✨ Yes"
	}
	return discord.NewEmbedBuilder().
		SetTitle("✅ Card Added").
		AddField("Name", card.Name, true).
		AddField("Rarity", string(card.Rarity), true).
		AddField("ID", fmt.Sprintf("%d", card.ID), true).
		AddField("Foil variant", foil, true).
		SetImage(card.Image).
		SetColor(utils.RarityColor(card.Rarity)).
		Build()
}
