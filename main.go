package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"

	"github.com/ellavondegurechaff/cardbot/cardbot"
	"github.com/ellavondegurechaff/cardbot/cardbot/api"
	"github.com/ellavondegurechaff/cardbot/cardbot/commands"
	"github.com/ellavondegurechaff/cardbot/cardbot/database"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/repositories"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy/pack"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy/trade"
	"github.com/ellavondegurechaff/cardbot/cardbot/handlers"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces"
	"github.com/ellavondegurechaff/cardbot/cardbot/logger"
	"github.com/ellavondegurechaff/cardbot/cardbot/permissions"
	"github.com/ellavondegurechaff/cardbot/cardbot/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := cardbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	logger.Setup(cfg.Log)

	slog.Info("Starting card bot",
		slog.String("type", "sys"),
		slog.String("version", version),
		slog.String("commit", commit))

	b := cardbot.New(*cfg, version, commit)

	dbStartTime := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	b.DB, err = database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("type", "db"),
			slog.Any("error", err),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	slog.Info("Database connected successfully",
		slog.String("type", "db"),
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	if err = b.DB.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("type", "db"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	images, err := newImageStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize image store",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	cardRepo := repositories.NewCardRepository(b.DB.BunDB())
	ledgerRepo := repositories.NewLedgerRepository(b.DB.BunDB())
	tradeRepo := repositories.NewTradeRepository(b.DB.BunDB())

	b.Catalog = services.NewCatalogService(cardRepo, images, services.NewHTTPImageFetcher(),
		permissions.NewAllowList(cfg.Bot.AdminUsers...))
	b.Collection = services.NewCollectionService(ledgerRepo)

	seed := cfg.Pack.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	assembler := pack.NewAssembler(b.Catalog, pack.NewSource(seed), cfg.Pack.Slots())
	b.Packs = services.NewPackService(ledgerRepo, assembler, cfg.Pack.Cooldown.Duration)

	b.Trades = trade.NewManager(b.Catalog, b.Collection, tradeRepo, trade.WithTimeout(cfg.Trade.Timeout.Duration))
	if _, err = b.Trades.ExpireStale(ctx); err != nil {
		slog.Error("Failed to expire stale trades",
			slog.String("type", "db"),
			slog.Any("error", err))
	}

	h := handler.New()
	h.Command("/open", handlers.WrapWithLogging("open", commands.OpenHandler(b)))
	h.Command("/inventory", handlers.WrapWithLogging("inventory", commands.InventoryHandler(b)))
	h.Command("/admin", handlers.WrapWithLogging("admin", commands.AdminHandler(b)))

	tradeHandler := commands.NewTradeHandler(b)
	tradeHandler.Register(h)

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	gatewayCtx, gatewayCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer gatewayCancel()
	if err = b.Client.OpenGateway(gatewayCtx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	if cfg.API.Address != "" {
		server := api.NewServer(api.Deps{
			Catalog:   b.Catalog,
			Inventory: b.Collection,
			Cooldowns: b.Packs,
			Trades:    tradeRepo,
			DB:        b.DB,
		}, version, commit)
		go func() {
			slog.Info("Starting API server",
				slog.String("type", "api"),
				slog.String("address", cfg.API.Address))
			if err := server.Listen(cfg.API.Address); err != nil {
				slog.Error("API server stopped",
					slog.String("type", "api"),
					slog.Any("error", err))
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				slog.Error("API server shutdown error",
					slog.String("type", "api"),
					slog.Any("error", err))
			}
		}()
	}

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")
}

func newImageStore(ctx context.Context, cfg *cardbot.Config) (interfaces.ImageStore, error) {
	if cfg.Spaces.Enabled() {
		return services.NewSpacesService(ctx,
			cfg.Spaces.Key,
			cfg.Spaces.Secret,
			cfg.Spaces.Region,
			cfg.Spaces.Bucket,
			cfg.Spaces.CardRoot,
		)
	}
	slog.Info("Spaces not configured, storing card images locally",
		slog.String("type", "sys"),
		slog.String("dir", cfg.Images.Dir))
	return services.NewLocalImageStore(cfg.Images.Dir, cfg.Images.BaseURL)
}
