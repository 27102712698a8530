package cardbot

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"

	"github.com/ellavondegurechaff/cardbot/cardbot/database"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy/trade"
	"github.com/ellavondegurechaff/cardbot/cardbot/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg        Config
	Client     bot.Client
	Paginator  *paginator.Manager
	Version    string
	Commit     string
	DB         *database.DB
	Catalog    *services.CatalogService
	Collection *services.CollectionService
	Packs      *services.PackService
	Trades     *trade.Manager
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Card bot is now ready",
		slog.String("type", "sys"),
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithPlayingActivity("/open"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}

// Close stops trade timers and releases the database.
func (b *Bot) Close(ctx context.Context) {
	if b.Trades != nil {
		b.Trades.Shutdown()
	}
	if b.Client != nil {
		b.Client.Close(ctx)
	}
	if b.DB != nil {
		b.DB.Close()
	}
}
