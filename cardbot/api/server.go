// Package api serves a read-only JSON view of the card economy for
// operators.
package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy/cooldown"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces"
	"github.com/ellavondegurechaff/cardbot/cardbot/services"
)

type Inventory interface {
	ListInventory(ctx context.Context, userID string, page int, rarity models.Rarity) (*services.InventoryPage, error)
}

type Cooldowns interface {
	Cooldown(ctx context.Context, userID string) (cooldown.Decision, error)
}

type TradeReader interface {
	GetTrade(ctx context.Context, id string) (*models.Trade, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Catalog   interfaces.CatalogReader
	Inventory Inventory
	Cooldowns Cooldowns
	Trades    TradeReader
	DB        Pinger
}

type Server struct {
	app     *fiber.App
	deps    Deps
	version string
	commit  string
}

func NewServer(deps Deps, version, commit string) *Server {
	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:               "cardbot API",
			ErrorHandler:          errorHandler,
			DisableStartupMessage: true,
			ReadTimeout:           10 * time.Second,
			WriteTimeout:          10 * time.Second,
		}),
		deps:    deps,
		version: version,
		commit:  commit,
	}

	s.app.Use(recover.New())
	s.app.Use(loggingMiddleware())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", s.health)

	api := s.app.Group("/api")
	api.Get("/cards", s.listCards)
	api.Get("/users/:id/inventory", s.userInventory)
	api.Get("/users/:id/cooldown", s.userCooldown)
	api.Get("/trades/:id", s.getTrade)
}

// App exposes the fiber app, mostly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
