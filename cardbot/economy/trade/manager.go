package trade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ellavondegurechaff/cardbot/cardbot/config"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/repositories"
	"github.com/ellavondegurechaff/cardbot/cardbot/economy"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces"
)

const (
	msgUnknownUser  = "Unknown user!"
	msgSelfTrade    = "You cannot trade with yourself!"
	msgInvalidCard  = "Invalid card ID!"
	msgNotOwned     = "You do not own this card!"
	msgTradeMissing = "Trade not found!"
)

type Manager struct {
	cards     interfaces.CardLookup
	owners    interfaces.OwnershipChecker
	store     interfaces.TradeStore
	scheduler *Scheduler
	timeout   time.Duration
	now       func() time.Time

	active   sync.Map // trade id -> *Negotiation
	quit     chan struct{}
	quitOnce sync.Once
}

type Option func(*Manager)

func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.timeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func NewManager(cards interfaces.CardLookup, owners interfaces.OwnershipChecker, store interfaces.TradeStore, opts ...Option) *Manager {
	m := &Manager{
		cards:     cards,
		owners:    owners,
		store:     store,
		scheduler: NewScheduler(),
		timeout:   config.TradeTimeout,
		now:       time.Now,
		quit:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Timeout() time.Duration {
	return m.timeout
}

// RequestTrade validates the offer, stores it as pending and starts its
// expiry timer. Rejections are *economy.ValidationError and write nothing.
func (m *Manager) RequestTrade(ctx context.Context, senderID, receiverID string, cardID int64) (*Negotiation, error) {
	senderID = strings.TrimSpace(senderID)
	receiverID = strings.TrimSpace(receiverID)

	if senderID == "" || receiverID == "" {
		return nil, economy.NewValidationError(msgUnknownUser)
	}
	if senderID == receiverID {
		return nil, economy.NewValidationError(msgSelfTrade)
	}
	if cardID <= 0 {
		return nil, economy.NewValidationError(msgInvalidCard)
	}

	card, err := m.cards.GetCard(ctx, cardID)
	if repositories.IsNotFound(err) {
		return nil, economy.NewValidationError(msgInvalidCard)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load card %d: %w", cardID, err)
	}

	owns, err := m.owners.HasOwnership(ctx, senderID, card.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check ownership: %w", err)
	}
	if !owns {
		return nil, economy.NewValidationError(msgNotOwned)
	}

	trade, err := m.store.CreateTrade(ctx, senderID, receiverID, card)
	if err != nil {
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}
	if trade.Card == nil {
		trade.Card = card
	}

	n := newNegotiation(trade, m.store, m.now, m.quit, m.release)
	m.active.Store(trade.ID, n)
	m.scheduler.Schedule(trade.ID, m.timeout, n.expire)

	slog.Info("Trade requested",
		slog.String("type", "trade"),
		slog.String("trade_id", trade.ID),
		slog.String("sender_id", senderID),
		slog.String("receiver_id", receiverID),
		slog.Int64("card_id", card.ID),
	)
	return n, nil
}

func (m *Manager) release(id string) {
	m.scheduler.Cancel(id)
	m.active.Delete(id)
}

func (m *Manager) Lookup(id string) (*Negotiation, bool) {
	v, ok := m.active.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Negotiation), true
}

func (m *Manager) Accept(ctx context.Context, tradeID, actor string) (Result, error) {
	if n, ok := m.Lookup(tradeID); ok {
		return n.Accept(ctx, actor)
	}
	return m.settleStored(ctx, tradeID, actor)
}

func (m *Manager) Decline(ctx context.Context, tradeID, actor string) (Result, error) {
	if n, ok := m.Lookup(tradeID); ok {
		return n.Decline(ctx, actor)
	}
	return m.settleStored(ctx, tradeID, actor)
}

// settleStored answers actions on trades without a live negotiation. A
// stored pending trade has lost its timer, so it is expired here.
func (m *Manager) settleStored(ctx context.Context, tradeID, actor string) (Result, error) {
	trade, err := m.store.GetTrade(ctx, tradeID)
	if repositories.IsNotFound(err) {
		return Result{}, economy.NewValidationError(msgTradeMissing)
	}
	if err != nil {
		return Result{}, fmt.Errorf("failed to load trade %s: %w", tradeID, err)
	}

	if actor != trade.ReceiverID {
		return Result{Outcome: OutcomeNotReceiver, Status: trade.Status}, nil
	}
	if trade.Status.IsTerminal() {
		return Result{Outcome: OutcomeAlreadySettled, Status: trade.Status}, nil
	}

	err = m.store.SetTradeStatus(ctx, tradeID, models.TradeExpired, m.now())
	if err != nil && !errors.Is(err, repositories.ErrTradeNotPending) {
		return Result{}, fmt.Errorf("failed to expire trade %s: %w", tradeID, err)
	}
	if err == nil {
		return Result{Outcome: OutcomeAlreadySettled, Status: models.TradeExpired}, nil
	}

	if trade, err = m.store.GetTrade(ctx, tradeID); err != nil {
		return Result{}, fmt.Errorf("failed to load trade %s: %w", tradeID, err)
	}
	return Result{Outcome: OutcomeAlreadySettled, Status: trade.Status}, nil
}

// ExpireStale expires stored pending trades older than the trade timeout.
// Run it at startup, when no negotiation is live.
func (m *Manager) ExpireStale(ctx context.Context) (int64, error) {
	n, err := m.store.ExpirePendingTrades(ctx, m.now().Add(-m.timeout))
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale trades: %w", err)
	}
	if n > 0 {
		slog.Info("Expired stale trades",
			slog.String("type", "trade"),
			slog.Int64("count", n),
		)
	}
	return n, nil
}

// Shutdown stops every timer and negotiation. Trades still pending stay
// pending in storage.
func (m *Manager) Shutdown() {
	m.quitOnce.Do(func() {
		m.scheduler.Shutdown()
		close(m.quit)
	})
}
