package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/ellavondegurechaff/cardbot/cardbot"
	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/services"
	"github.com/ellavondegurechaff/cardbot/cardbot/utils"
)

var Inventory = discord.SlashCommandCreate{
	Name:        "inventory",
	Description: "View card collection",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "User whose inventory to view",
			Required:    false,
		},
		discord.ApplicationCommandOptionInt{
			Name:        "page",
			Description: "Page number",
			Required:    false,
			MinValue:    &[]int{1}[0],
		},
		discord.ApplicationCommandOptionString{
			Name:        "rarity",
			Description: "Filter by rarity",
			Required:    false,
			Choices:     rarityChoices(),
		},
	},
}

func rarityChoices() []discord.ApplicationCommandOptionChoiceString {
	choices := make([]discord.ApplicationCommandOptionChoiceString, 0, len(models.Rarities))
	for _, r := range models.Rarities {
		choices = append(choices, discord.ApplicationCommandOptionChoiceString{Name: string(r), Value: string(r)})
	}
	return choices
}

func InventoryHandler(b *cardbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()

		target := e.User()
		if u, ok := data.OptUser("user"); ok {
			target = u
		}

		var rarity models.Rarity
		if s, ok := data.OptString("rarity"); ok {
			r, err := models.ParseRarity(s)
			if err != nil {
				return utils.RespondError(e, "Invalid rarity!")
			}
			rarity = r
		}

		page, explicitPage := data.OptInt("page")
		if !explicitPage {
			page = 1
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		first, err := b.Collection.ListInventory(ctx, target.ID.String(), page, rarity)
		if err != nil {
			_ = utils.RespondError(e, "There was an error while fetching the inventory. Please try again later.")
			return err
		}

		if first.TotalGroups == 0 {
			return e.CreateMessage(discord.MessageCreate{
				Content: emptyInventoryContent(target.Username, rarity),
			})
		}

		if explicitPage || first.TotalPages == 1 {
			return e.CreateMessage(discord.MessageCreate{
				Embeds: []discord.Embed{InventoryEmbed(target.Username, first)},
			})
		}

		userID := target.ID.String()
		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
				defer cancel()

				inv, err := b.Collection.ListInventory(ctx, userID, page+1, rarity)
				if err != nil {
					slog.Error("Failed to load inventory page",
						slog.String("type", "db"),
						slog.String("user_id", userID),
						slog.Int("page", page+1),
						slog.Any("error", err),
					)
					embed.SetDescription("❌ Failed to load this page.").SetColor(config.ErrorColor)
					return
				}
				fillInventoryEmbed(embed, target.Username, inv)
			},
			Pages:      first.TotalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func emptyInventoryContent(username string, rarity models.Rarity) string {
	if rarity != "" {
		return fmt.Sprintf("No %s cards found in %s's inventory!", strings.ToLower(string(rarity)), username)
	}
	return fmt.Sprintf("%s's inventory is empty!", username)
}

func InventoryEmbed(username string, inv *services.InventoryPage) discord.Embed {
	eb := discord.NewEmbedBuilder()
	fillInventoryEmbed(eb, username, inv)
	return eb.Build()
}

func fillInventoryEmbed(eb *discord.EmbedBuilder, username string, inv *services.InventoryPage) {
	color := config.RarityUncommonColor
	if inv.Rarity != "" {
		color = utils.RarityColor(inv.Rarity)
	}
	eb.SetTitle(fmt.Sprintf("%s's Card Collection", username)).
		SetDescription(inventoryDescription(inv)).
		SetColor(color).
		SetFooter(fmt.Sprintf("Page %d/%d • Total: %d", inv.Page, inv.TotalPages, inv.TotalGroups), "")
}

func inventoryDescription(inv *services.InventoryPage) string {
	var sb strings.Builder
	if inv.Rarity != "" {
		sb.WriteString(fmt.Sprintf("Showing %s cards\n\n", inv.Rarity))
	}
	if len(inv.Groups) == 0 {
		sb.WriteString("Nothing on this page.")
		return sb.String()
	}
	for _, g := range inv.Groups {
		sb.WriteString(fmt.Sprintf("`#%d` **%s**%s · %s · x%d\n", g.Card.ID, g.Card.Name, utils.FoilLabel(g.IsFoil), g.Card.Rarity, g.Count))
	}
	return sb.String()
}
