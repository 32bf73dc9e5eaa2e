package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"rpsduel/internal/domain"
	"rpsduel/internal/game"
	"rpsduel/internal/logger"
)

// Ledger is the external balance holder the engine escrows wagers through.
// Transfers are all-or-nothing; a returned error means no funds moved.
type Ledger interface {
	BalanceOf(ctx context.Context, account string) (int64, error)
	Transfer(ctx context.Context, from, to string, amount int64) error
}

// AdminAuthorizer gates policy mutation.
type AdminAuthorizer interface {
	RequireAdmin(account string) error
}

// EventSink receives a notification after every committed transition.
// Emit is called while the engine lock is held and must not block.
type EventSink interface {
	Emit(e domain.Event)
}

// ErrUnauthorized is returned by AdminAuthorizer implementations.
var ErrUnauthorized = errors.New("caller is not an administrator")

// Options configures a new Engine.
type Options struct {
	// Instance binds commitments to this engine so they cannot be replayed
	// against another deployment sharing player addresses.
	Instance string
	// EscrowAccount holds wagers between create and resolution.
	EscrowAccount string
	EntryFee      int64
	// SecondsUntilReveal must lie in [MinRevealWindowSeconds, MaxRevealWindowSeconds].
	SecondsUntilReveal int64
	Ledger             Ledger
	Admin              AdminAuthorizer
	Sink               EventSink
	// Now is read once per operation. Defaults to time.Now.
	Now func() time.Time
}

// Engine runs the commit-reveal duel state machine. Every mutating
// operation executes atomically under one lock; deadline checks read the
// ambient clock exactly once per call. Read-only queries take a shared lock
// and observe consistent snapshots.
type Engine struct {
	mu       sync.RWMutex
	ledger   Ledger
	admin    AdminAuthorizer
	sink     EventSink
	store    *store
	stats    *statsTracker
	policy   Policy
	instance string
	escrow   string
	halted   bool
	now      func() time.Time
}

func New(opts Options) (*Engine, error) {
	if opts.Ledger == nil {
		return nil, errors.New("engine requires a ledger")
	}
	if opts.EscrowAccount == "" {
		return nil, errors.New("engine requires an escrow account")
	}
	e := &Engine{
		ledger:   opts.Ledger,
		admin:    opts.Admin,
		sink:     opts.Sink,
		store:    newStore(),
		stats:    newStatsTracker(),
		instance: opts.Instance,
		escrow:   opts.EscrowAccount,
		now:      opts.Now,
	}
	if e.now == nil {
		e.now = time.Now
	}
	if err := e.policy.setEntryFee(opts.EntryFee); err != nil {
		return nil, fmt.Errorf("entry fee: %w", err)
	}
	if err := e.policy.setSecondsUntilReveal(opts.SecondsUntilReveal); err != nil {
		return nil, fmt.Errorf("reveal window: %w", err)
	}
	return e, nil
}

// Commit computes the commitment ID a creator should submit to CreateGame.
func (e *Engine) Commit(sender string, move domain.Move, secret string) (string, error) {
	return game.CommitID(e.instance, sender, move, secret)
}

// CreateGame books a commitment ID and escrows the creator's wager. The
// deadline is the join deadline until an opponent joins.
func (e *Engine) CreateGame(ctx context.Context, caller, id, opponent string, secondsLeftToJoin, wager int64, useWinnings bool) (domain.Game, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now().Unix()

	if e.halted {
		return domain.Game{}, ErrEngineHalted
	}
	if caller == "" {
		return domain.Game{}, game.ErrInvalidSender
	}
	if opponent == "" || opponent == caller {
		return domain.Game{}, ErrInvalidOpponent
	}
	if !validJoinWindow(secondsLeftToJoin) {
		return domain.Game{}, ErrJoinWindowOutOfRange
	}
	if e.store.used(id) {
		return domain.Game{}, ErrDuplicateGame
	}

	balance, err := e.ledger.BalanceOf(ctx, caller)
	if err != nil {
		return domain.Game{}, err
	}
	if balance < e.policy.EntryFee {
		return domain.Game{}, ErrInsufficientBalance
	}
	amount, err := e.resolveWager(caller, wager, useWinnings, balance)
	if err != nil {
		return domain.Game{}, err
	}
	if err := e.transfer(ctx, caller, e.escrow, amount); err != nil {
		return domain.Game{}, err
	}

	g := &domain.Game{
		ID:           id,
		Creator:      caller,
		Opponent:     opponent,
		CreatorWager: amount,
		Deadline:     now + secondsLeftToJoin,
		Consumed:     true,
	}
	e.store.put(g)

	logger.Info("game created", "id", id, "creator", caller, "opponent", opponent, "wager", amount)
	e.emit(domain.Event{
		Type:     domain.EventGameCreated,
		GameID:   id,
		Actor:    caller,
		Opponent: opponent,
		Wager:    amount,
		Deadline: g.Deadline,
	})
	return *g, nil
}

// JoinGame escrows the designated opponent's wager and discloses their
// move. The deadline flips to the creator's reveal deadline.
func (e *Engine) JoinGame(ctx context.Context, caller, id string, move domain.Move, wager int64, useWinnings bool) (domain.Game, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now().Unix()

	if e.halted {
		return domain.Game{}, ErrEngineHalted
	}
	g := e.store.get(id)
	if g == nil || !g.Consumed {
		return domain.Game{}, ErrGameNotFound
	}
	if !move.Valid() {
		return domain.Game{}, game.ErrInvalidMove
	}
	if g.Cancelled || caller != g.Opponent {
		return domain.Game{}, ErrNotTheDesignatedOpponent
	}
	if g.Joined() {
		return domain.Game{}, ErrAlreadyJoined
	}
	if now > g.Deadline {
		return domain.Game{}, ErrJoinDeadlineExpired
	}

	balance, err := e.ledger.BalanceOf(ctx, caller)
	if err != nil {
		return domain.Game{}, err
	}
	if balance < e.policy.EntryFee {
		return domain.Game{}, ErrInsufficientBalance
	}
	amount, err := e.resolveWager(caller, wager, useWinnings, balance)
	if err != nil {
		return domain.Game{}, err
	}
	if err := e.transfer(ctx, caller, e.escrow, amount); err != nil {
		return domain.Game{}, err
	}

	g.OpponentMove = move
	g.OpponentWager = amount
	g.Deadline = now + e.policy.SecondsUntilReveal

	logger.Info("game joined", "id", id, "opponent", caller, "wager", amount)
	e.emit(domain.Event{
		Type:     domain.EventGameJoined,
		GameID:   id,
		Actor:    caller,
		Move:     move,
		Wager:    amount,
		Deadline: g.Deadline,
	})
	return *g, nil
}

// RevealMove recomputes the caller's commitment from (move, secret) and
// resolves the game it identifies. A wrong move or secret derives an ID
// that maps to nothing, so a mismatch is indistinguishable from a game
// that never existed; that is how the creator is authenticated.
func (e *Engine) RevealMove(ctx context.Context, caller string, move domain.Move, secret string) (domain.Game, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now().Unix()

	id, err := game.CommitID(e.instance, caller, move, secret)
	if err != nil {
		return domain.Game{}, err
	}
	g := e.store.get(id)
	if g == nil || !g.Consumed || g.Creator != caller {
		return domain.Game{}, ErrGameNotFound
	}
	if g.Terminal() {
		return domain.Game{}, ErrGameFinished
	}
	if !g.Joined() {
		return domain.Game{}, ErrOpponentNotJoined
	}
	if now > g.Deadline {
		return domain.Game{}, ErrRevealDeadlineExpired
	}

	payoff := game.Resolve(move, g.OpponentMove)
	total := g.TotalWagered()
	switch payoff {
	case domain.PayoffTie:
		if err := e.transfer(ctx, e.escrow, g.Creator, g.CreatorWager); err != nil {
			return domain.Game{}, err
		}
		if err := e.transfer(ctx, e.escrow, g.Opponent, g.OpponentWager); err != nil {
			return domain.Game{}, err
		}
	case domain.PayoffCreatorWins:
		if err := e.transfer(ctx, e.escrow, g.Creator, total); err != nil {
			return domain.Game{}, err
		}
	case domain.PayoffOpponentWins:
		if err := e.transfer(ctx, e.escrow, g.Opponent, total); err != nil {
			return domain.Game{}, err
		}
	default:
		panic(fmt.Sprintf("unreachable payoff %d", payoff))
	}

	e.stats.recordOutcome(g.Creator, g.Opponent, payoff, total)
	g.Payoff = payoff

	logger.Info("move revealed", "id", id, "creator", caller, "move", move.String(), "payoff", payoff.String())
	e.emit(domain.Event{
		Type:   domain.EventMoveRevealed,
		GameID: id,
		Actor:  caller,
		Move:   move,
		Payoff: payoff,
		Wager:  total,
	})
	return *g, nil
}

// CancelGame refunds an abandoned game nobody joined. Only the creator may
// cancel, and only after the join deadline has elapsed. The record stays
// behind as a tombstone so the commitment ID cannot be reused.
func (e *Engine) CancelGame(ctx context.Context, caller, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now().Unix()

	g := e.store.get(id)
	if g == nil || !g.Consumed {
		return ErrGameNotFound
	}
	if caller != g.Creator {
		return ErrNotCreator
	}
	if g.Cancelled || g.Terminal() {
		return ErrGameFinished
	}
	if g.Joined() {
		return ErrAlreadyJoined
	}
	if now <= g.Deadline {
		return ErrJoinDeadlineNotExpired
	}

	if err := e.transfer(ctx, e.escrow, g.Creator, g.CreatorWager); err != nil {
		return err
	}

	g.Opponent = ""
	g.OpponentMove = domain.MoveNone
	g.CreatorWager = 0
	g.OpponentWager = 0
	g.Deadline = 0
	g.Cancelled = true

	logger.Info("game cancelled", "id", id, "creator", caller)
	e.emit(domain.Event{
		Type:   domain.EventGameCancelled,
		GameID: id,
		Actor:  caller,
	})
	return nil
}

// ClaimTotalWagered forfeits a creator who never revealed: once the reveal
// deadline passes, the combined wager is paid to the opponent. The payment
// is a penalty, not a victory, so no stats counters move.
func (e *Engine) ClaimTotalWagered(ctx context.Context, caller, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now().Unix()

	g := e.store.get(id)
	if g == nil || !g.Consumed || g.Cancelled {
		return ErrGameNotFound
	}
	if g.Terminal() {
		return ErrGameFinished
	}
	if !g.Joined() {
		return ErrOpponentNotJoined
	}
	if now <= g.Deadline {
		return ErrRevealDeadlineNotExpired
	}

	total := g.TotalWagered()
	if err := e.transfer(ctx, e.escrow, g.Opponent, total); err != nil {
		return err
	}
	g.Payoff = domain.PayoffClaimed

	logger.Info("total wagered claimed", "id", id, "caller", caller, "opponent", g.Opponent, "amount", total)
	e.emit(domain.Event{
		Type:   domain.EventTotalWageredClaimed,
		GameID: id,
		Actor:  caller,
		Wager:  total,
	})
	return nil
}

// resolveWager picks the effective wager. With useWinnings set, positive
// accumulated winnings covered by the current balance replace the requested
// amount entirely; otherwise the requested amount is validated against the
// balance. Caller holds the engine lock.
func (e *Engine) resolveWager(caller string, requested int64, useWinnings bool, balance int64) (int64, error) {
	if requested < 0 {
		return 0, ErrOutOfRange
	}
	if useWinnings {
		if w := e.stats.snapshot(caller).Winnings; w > 0 && balance >= w {
			return w, nil
		}
	}
	if requested > balance {
		return 0, ErrInsufficientBalance
	}
	return requested, nil
}

// transfer moves escrow funds, skipping zero amounts so empty wagers do not
// trip ledger amount validation.
func (e *Engine) transfer(ctx context.Context, from, to string, amount int64) error {
	if amount == 0 {
		return nil
	}
	return e.ledger.Transfer(ctx, from, to, amount)
}

func (e *Engine) emit(ev domain.Event) {
	if e.sink == nil {
		return
	}
	ev.At = e.now()
	e.sink.Emit(ev)
}

// Game returns a snapshot of one game.
func (e *Engine) Game(id string) (domain.Game, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	g := e.store.get(id)
	if g == nil || !g.Consumed {
		return domain.Game{}, false
	}
	return *g, true
}

// Stats returns a snapshot of a player's aggregates.
func (e *Engine) Stats(addr string) domain.PlayerStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats.snapshot(addr)
}

// GameCount returns how many commitment IDs have ever been consumed.
func (e *Engine) GameCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.len()
}

// Config returns the current policy and the fixed join-window bounds.
func (e *Engine) Config() PolicySnapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return PolicySnapshot{
		EntryFee:             e.policy.EntryFee,
		SecondsUntilReveal:   e.policy.SecondsUntilReveal,
		MinJoinWindowSeconds: MinJoinWindowSeconds,
		MaxJoinWindowSeconds: MaxJoinWindowSeconds,
	}
}

// SetEntryFee updates the minimum participation balance. Admin only.
func (e *Engine) SetEntryFee(caller string, v int64) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.policy.setEntryFee(v); err != nil {
		return err
	}
	e.emit(domain.Event{Type: domain.EventConfigUpdated, Actor: caller, Setting: "entry_fee", Value: v})
	return nil
}

// SetSecondsUntilReveal updates the reveal window. Admin only, bounds
// checked.
func (e *Engine) SetSecondsUntilReveal(caller string, v int64) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.policy.setSecondsUntilReveal(v); err != nil {
		return err
	}
	e.emit(domain.Event{Type: domain.EventConfigUpdated, Actor: caller, Setting: "seconds_until_reveal", Value: v})
	return nil
}

// Destroy halts the engine. New games and joins are refused, but reveal,
// cancel and claim stay open so escrowed funds can drain. Admin only;
// irreversible for the life of the process.
func (e *Engine) Destroy(caller string) error {
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.halted {
		return nil
	}
	e.halted = true
	logger.Warn("engine halted", "by", caller)
	e.emit(domain.Event{Type: domain.EventEngineHalted, Actor: caller})
	return nil
}

// Halted reports whether Destroy has been called.
func (e *Engine) Halted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.halted
}

func (e *Engine) requireAdmin(caller string) error {
	if e.admin == nil {
		return ErrUnauthorized
	}
	return e.admin.RequireAdmin(caller)
}
