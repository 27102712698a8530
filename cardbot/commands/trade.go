package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/ellavondegurechaff/cardbot/cardbot"
	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy/trade"
	"github.com/ellavondegurechaff/cardbot/cardbot/handlers"
	"github.com/ellavondegurechaff/cardbot/cardbot/utils"
)

const (
	tradeAcceptPrefix  = "/trade/accept/"
	tradeDeclinePrefix = "/trade/decline/"
)

var Trade = discord.SlashCommandCreate{
	Name:        "trade",
	Description: "Initiate a trade with another user",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "User to trade with",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "card",
			Description: "ID or name of the card you want to trade",
			Required:    true,
		},
	},
}

type TradeHandler struct {
	bot *cardbot.Bot
}

func NewTradeHandler(b *cardbot.Bot) *TradeHandler {
	return &TradeHandler{bot: b}
}

func (h *TradeHandler) Register(r handler.Router) {
	r.Command("/trade", handlers.WrapWithLogging("trade", h.HandleTrade))
	r.Component(tradeAcceptPrefix, handlers.WrapComponentWithLogging("trade-accept", h.HandleTradeAccept))
	r.Component(tradeDeclinePrefix, handlers.WrapComponentWithLogging("trade-decline", h.HandleTradeDecline))
}

func (h *TradeHandler) HandleTrade(e *handler.CommandEvent) error {
	data := e.SlashCommandInteractionData()
	target := data.User("user")
	senderID := e.User().ID.String()

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
	defer cancel()

	cardID, err := h.bot.Collection.ResolveOwnedCard(ctx, senderID, data.String("card"))
	if err != nil {
		return respondTradeError(e, err)
	}

	n, err := h.bot.Trades.RequestTrade(ctx, senderID, target.ID.String(), cardID)
	if err != nil {
		return respondTradeError(e, err)
	}

	t := n.Trade()
	err = e.CreateMessage(discord.MessageCreate{
		Content:    fmt.Sprintf("<@%s>, you have a new trade offer!", t.ReceiverID),
		Embeds:     []discord.Embed{TradeOfferEmbed(e.User().Username, &t)},
		Components: []discord.ContainerComponent{tradeButtons(t.ID)},
		AllowedMentions: &discord.AllowedMentions{
			Users: []snowflake.ID{target.ID},
		},
	})
	if err != nil {
		return err
	}

	// Buttons edit the message themselves; only expiry needs the original
	// interaction.
	client, appID, token := e.Client(), e.ApplicationID(), e.Token()
	n.OnSettled(func(s trade.Settlement) {
		if s.Actor != "" {
			return
		}
		expireTradeMessage(client, appID, token, s)
	})
	return nil
}

func expireTradeMessage(client bot.Client, appID snowflake.ID, token string, s trade.Settlement) {
	_, err := client.Rest().UpdateInteractionResponse(appID, token, discord.MessageUpdate{
		Content:    utils.Ptr(SettledContent(s.Status)),
		Components: &[]discord.ContainerComponent{},
	})
	if err != nil {
		slog.Error("Failed to update expired trade message",
			slog.String("type", "trade"),
			slog.String("trade_id", s.TradeID),
			slog.Any("error", err),
		)
	}
}

func (h *TradeHandler) HandleTradeAccept(e *handler.ComponentEvent) error {
	return h.settle(e, tradeAcceptPrefix, h.bot.Trades.Accept)
}

func (h *TradeHandler) HandleTradeDecline(e *handler.ComponentEvent) error {
	return h.settle(e, tradeDeclinePrefix, h.bot.Trades.Decline)
}

type settleFunc func(ctx context.Context, tradeID, actor string) (trade.Result, error)

func (h *TradeHandler) settle(e *handler.ComponentEvent, prefix string, fn settleFunc) error {
	tradeID, ok := TradeIDFromCustomID(e.Data.CustomID(), prefix)
	if !ok {
		return utils.RespondError(e, "Invalid trade interaction.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
	defer cancel()

	res, err := fn(ctx, tradeID, e.User().ID.String())
	if err != nil {
		return respondTradeError(e, err)
	}

	if res.Outcome == trade.OutcomeNotReceiver {
		return utils.RespondEphemeral(e, "This trade is not for you!")
	}
	return e.UpdateMessage(discord.MessageUpdate{
		Content:    utils.Ptr(SettledContent(res.Status)),
		Components: &[]discord.ContainerComponent{},
	})
}

type messageResponder interface {
	CreateMessage(messageCreate discord.MessageCreate, opts ...rest.RequestOpt) error
}

func respondTradeError(e messageResponder, err error) error {
	if economy.IsValidation(err) {
		return utils.RespondError(e, err.Error())
	}
	_ = utils.RespondError(e, "There was an error while processing the trade. Please try again later.")
	return err
}

// TradeIDFromCustomID extracts the trade id from a button custom id such as
// "/trade/accept/T1a2b3c4d1234".
func TradeIDFromCustomID(customID, prefix string) (string, bool) {
	if !strings.HasPrefix(customID, prefix) {
		return "", false
	}
	parts := strings.Split(customID, "/")
	if len(parts) != 4 || parts[3] == "" {
		return "", false
	}
	return parts[3], true
}

// SettledContent is the message shown once a trade left pending.
func SettledContent(status models.TradeStatus) string {
	switch status {
	case models.TradeAccepted:
		return "✅ Trade accepted!"
	case models.TradeDeclined:
		return "❌ Trade declined!"
	case models.TradeExpired:
		return "⏰ Trade offer expired!"
	}
	return "This trade is still pending."
}

func TradeOfferEmbed(senderName string, t *models.Trade) discord.Embed {
	eb := discord.NewEmbedBuilder().
		SetTitle("🤝 Trade Offer").
		SetDescriptionf("%s wants to trade with you!", senderName).
		SetColor(config.RarityRareColor).
		AddField("Trade ID", t.ID, false).
		SetTimestamp(t.CreatedAt)
	if t.Card != nil {
		eb.AddField("Card", t.Card.Name, true).
			AddField("Rarity", string(t.Card.Rarity), true)
		if t.Card.Image != "" {
			eb.SetImage(t.Card.Image)
		}
	}
	return eb.Build()
}

func tradeButtons(tradeID string) discord.ContainerComponent {
	return discord.NewActionRow(
		discord.NewSuccessButton("Accept", tradeAcceptPrefix+tradeID),
		discord.NewDangerButton("Decline", tradeDeclinePrefix+tradeID),
	)
}
