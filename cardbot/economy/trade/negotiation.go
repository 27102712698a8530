// Package trade runs trade offers from creation to a single terminal state.
package trade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ellavondegurechaff/cardbot/cardbot/database/models"
	"github.com/ellavondegurechaff/cardbot/cardbot/database/repositories"
	"github.com/ellavondegurechaff/cardbot/cardbot/interfaces"
)

// ErrShutdown is returned for actions on a negotiation stopped by
// Manager.Shutdown before it settled.
var ErrShutdown = errors.New("trade negotiation stopped")

type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeAlreadySettled
	OutcomeNotReceiver
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeAlreadySettled:
		return "already_settled"
	case OutcomeNotReceiver:
		return "not_receiver"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

type Result struct {
	Outcome Outcome
	Status  models.TradeStatus
}

// Settlement describes the terminal transition of a trade. Actor is empty for
// expiry. Err is set when the expiry could not be persisted.
type Settlement struct {
	TradeID string
	Status  models.TradeStatus
	Actor   string
	At      time.Time
	Err     error
}

type action int

const (
	actionAccept action = iota
	actionDecline
	actionExpire
)

func (a action) target() models.TradeStatus {
	switch a {
	case actionAccept:
		return models.TradeAccepted
	case actionDecline:
		return models.TradeDeclined
	}
	return models.TradeExpired
}

type event struct {
	ctx    context.Context
	action action
	actor  string
	reply  chan reply
}

type reply struct {
	result Result
	err    error
}

// Negotiation is one live trade. All transitions go through a single
// goroutine, so the first accept, decline or expiry wins.
type Negotiation struct {
	trade  models.Trade
	store  interfaces.TradeStore
	now    func() time.Time
	events chan event
	done   chan struct{}
	quit   <-chan struct{}
	onExit func(id string)

	mu         sync.Mutex
	status     models.TradeStatus
	settlement *Settlement
	callbacks  []func(Settlement)
}

func newNegotiation(trade *models.Trade, store interfaces.TradeStore, now func() time.Time, quit <-chan struct{}, onExit func(string)) *Negotiation {
	n := &Negotiation{
		trade:  *trade,
		store:  store,
		now:    now,
		events: make(chan event),
		done:   make(chan struct{}),
		quit:   quit,
		onExit: onExit,
		status: models.TradePending,
	}
	go n.run()
	return n
}

func (n *Negotiation) ID() string {
	return n.trade.ID
}

// Trade returns the trade as it was created.
func (n *Negotiation) Trade() models.Trade {
	return n.trade
}

func (n *Negotiation) Status() models.TradeStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.status
}

// Done is closed once the negotiation settled or was stopped.
func (n *Negotiation) Done() <-chan struct{} {
	return n.done
}

// OnSettled registers fn to run after the terminal transition. fn runs
// immediately when the trade already settled.
func (n *Negotiation) OnSettled(fn func(Settlement)) {
	n.mu.Lock()
	if n.settlement != nil {
		s := *n.settlement
		n.mu.Unlock()
		fn(s)
		return
	}
	n.callbacks = append(n.callbacks, fn)
	n.mu.Unlock()
}

func (n *Negotiation) Accept(ctx context.Context, actor string) (Result, error) {
	return n.act(ctx, actionAccept, actor)
}

func (n *Negotiation) Decline(ctx context.Context, actor string) (Result, error) {
	return n.act(ctx, actionDecline, actor)
}

func (n *Negotiation) expire() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := n.submit(ctx, actionExpire, ""); err != nil && !errors.Is(err, ErrShutdown) {
		slog.Error("Failed to expire trade",
			slog.String("type", "trade"),
			slog.String("trade_id", n.trade.ID),
			slog.Any("error", err),
		)
	}
}

func (n *Negotiation) act(ctx context.Context, a action, actor string) (Result, error) {
	if actor != n.trade.ReceiverID {
		return Result{Outcome: OutcomeNotReceiver, Status: n.Status()}, nil
	}
	return n.submit(ctx, a, actor)
}

func (n *Negotiation) submit(ctx context.Context, a action, actor string) (Result, error) {
	ev := event{ctx: ctx, action: a, actor: actor, reply: make(chan reply, 1)}

	select {
	case n.events <- ev:
	case <-n.done:
		return n.settledResult()
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	r := <-ev.reply
	return r.result, r.err
}

func (n *Negotiation) settledResult() (Result, error) {
	status := n.Status()
	if !status.IsTerminal() {
		return Result{Status: status}, ErrShutdown
	}
	return Result{Outcome: OutcomeAlreadySettled, Status: status}, nil
}

func (n *Negotiation) run() {
	defer func() {
		if n.onExit != nil {
			n.onExit(n.trade.ID)
		}
	}()

	for {
		select {
		case ev := <-n.events:
			r, settled := n.handle(ev)
			ev.reply <- r
			if settled != nil {
				n.finish(*settled)
				return
			}
		case <-n.quit:
			close(n.done)
			return
		}
	}
}

// handle persists the transition. A failed accept or decline leaves the
// trade pending; a failed expiry still settles it in memory.
func (n *Negotiation) handle(ev event) (reply, *Settlement) {
	target := ev.action.target()
	at := n.now()

	err := n.store.SetTradeStatus(ev.ctx, n.trade.ID, target, at)
	switch {
	case err == nil:
		s := &Settlement{TradeID: n.trade.ID, Status: target, Actor: ev.actor, At: at}
		n.settle(s)
		return reply{result: Result{Outcome: OutcomeApplied, Status: target}}, s

	case errors.Is(err, repositories.ErrTradeNotPending):
		final := n.reloadStatus(ev.ctx)
		s := &Settlement{TradeID: n.trade.ID, Status: final, At: at}
		n.settle(s)
		return reply{result: Result{Outcome: OutcomeAlreadySettled, Status: final}}, s

	case ev.action == actionExpire:
		slog.Error("Failed to persist trade expiry",
			slog.String("type", "trade"),
			slog.String("trade_id", n.trade.ID),
			slog.Any("error", err),
		)
		s := &Settlement{TradeID: n.trade.ID, Status: models.TradeExpired, At: at, Err: err}
		n.settle(s)
		return reply{result: Result{Outcome: OutcomeApplied, Status: models.TradeExpired}}, s
	}

	return reply{
		result: Result{Status: models.TradePending},
		err:    fmt.Errorf("failed to %s trade %s: %w", verb(ev.action), n.trade.ID, err),
	}, nil
}

func verb(a action) string {
	switch a {
	case actionAccept:
		return "accept"
	case actionDecline:
		return "decline"
	}
	return "expire"
}

// reloadStatus reads the status another writer stored. Expired is assumed
// when it cannot be read.
func (n *Negotiation) reloadStatus(ctx context.Context) models.TradeStatus {
	stored, err := n.store.GetTrade(ctx, n.trade.ID)
	if err != nil || !stored.Status.IsTerminal() {
		return models.TradeExpired
	}
	return stored.Status
}

func (n *Negotiation) settle(s *Settlement) {
	n.mu.Lock()
	n.status = s.Status
	n.settlement = s
	n.mu.Unlock()
}

func (n *Negotiation) finish(s Settlement) {
	n.mu.Lock()
	callbacks := n.callbacks
	n.callbacks = nil
	n.mu.Unlock()

	close(n.done)
	for _, fn := range callbacks {
		fn(s)
	}
}
