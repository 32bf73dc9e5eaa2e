package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"rpsduel/internal/domain"
	"rpsduel/internal/game"
	"rpsduel/internal/ledger"
)

const (
	alice  = "addr:alice"
	bob    = "addr:bob"
	escrow = "addr:escrow"

	testEntryFee = int64(100)
	testReveal   = int64(600)
	joinWindow   = MinJoinWindowSeconds
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

type adminList map[string]bool

func (a adminList) RequireAdmin(account string) error {
	if !a[account] {
		return ErrUnauthorized
	}
	return nil
}

type captureSink struct {
	events []domain.Event
}

func (s *captureSink) Emit(e domain.Event) {
	s.events = append(s.events, e)
}

func (s *captureSink) last(t *testing.T) domain.Event {
	t.Helper()
	if len(s.events) == 0 {
		t.Fatal("no events emitted")
	}
	return s.events[len(s.events)-1]
}

func newTestEngine(t *testing.T) (*Engine, *ledger.Memory, *fakeClock, *captureSink) {
	t.Helper()
	l := ledger.NewMemory()
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	sink := &captureSink{}

	e, err := New(Options{
		Instance:           "test",
		EscrowAccount:      escrow,
		EntryFee:           testEntryFee,
		SecondsUntilReveal: testReveal,
		Ledger:             l,
		Admin:              adminList{"addr:root": true},
		Sink:               sink,
		Now:                clock.now,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, _ = l.Mint(context.Background(), alice, 1000)
	_, _ = l.Mint(context.Background(), bob, 1000)
	return e, l, clock, sink
}

func balance(t *testing.T, l *ledger.Memory, account string) int64 {
	t.Helper()
	b, err := l.BalanceOf(context.Background(), account)
	if err != nil {
		t.Fatalf("BalanceOf(%s): %v", account, err)
	}
	return b
}

// createGame books a commitment for alice vs bob and returns the ID.
func createGame(t *testing.T, e *Engine, move domain.Move, secret string, wager int64) string {
	t.Helper()
	id, err := e.Commit(alice, move, secret)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if _, err := e.CreateGame(context.Background(), alice, id, bob, joinWindow, wager, false); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	return id
}

func TestCreateGame(t *testing.T) {
	e, l, clock, sink := newTestEngine(t)

	id := createGame(t, e, domain.MoveRock, "s1", 100)

	if got := balance(t, l, alice); got != 900 {
		t.Fatalf("creator balance = %d; want 900", got)
	}
	if got := balance(t, l, escrow); got != 100 {
		t.Fatalf("escrow balance = %d; want 100", got)
	}

	g, ok := e.Game(id)
	if !ok {
		t.Fatal("game not found after create")
	}
	if g.Creator != alice || g.Opponent != bob || g.CreatorWager != 100 {
		t.Fatalf("unexpected game record: %+v", g)
	}
	if g.Deadline != clock.now().Unix()+joinWindow {
		t.Fatalf("deadline = %d; want now+%d", g.Deadline, joinWindow)
	}
	if g.Joined() || g.Terminal() {
		t.Fatalf("fresh game should be neither joined nor terminal: %+v", g)
	}

	ev := sink.last(t)
	if ev.Type != domain.EventGameCreated || ev.GameID != id || ev.Actor != alice || ev.Opponent != bob || ev.Wager != 100 {
		t.Fatalf("unexpected create event: %+v", ev)
	}
}

func TestCreateGameRejections(t *testing.T) {
	e, l, _, _ := newTestEngine(t)
	ctx := context.Background()

	id, _ := e.Commit(alice, domain.MoveRock, "s1")

	cases := []struct {
		name     string
		caller   string
		opponent string
		window   int64
		wager    int64
		want     error
	}{
		{"zero opponent", alice, "", joinWindow, 100, ErrInvalidOpponent},
		{"self opponent", alice, alice, joinWindow, 100, ErrInvalidOpponent},
		{"window below lower bound", alice, bob, MinJoinWindowSeconds - 1, 100, ErrJoinWindowOutOfRange},
		{"window above upper bound", alice, bob, MaxJoinWindowSeconds + 1, 100, ErrJoinWindowOutOfRange},
		{"wager above balance", alice, bob, joinWindow, 5000, ErrInsufficientBalance},
	}
	for _, tc := range cases {
		if _, err := e.CreateGame(ctx, tc.caller, id, tc.opponent, tc.window, tc.wager, false); !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v; want %v", tc.name, err, tc.want)
		}
	}

	// rejections must not move funds
	if got := balance(t, l, alice); got != 1000 {
		t.Fatalf("balance changed on rejected create: %d", got)
	}

	// exact lower bound must pass
	if _, err := e.CreateGame(ctx, alice, id, bob, MinJoinWindowSeconds, 100, false); err != nil {
		t.Fatalf("create at lower bound: %v", err)
	}
	// the id is now consumed forever
	if _, err := e.CreateGame(ctx, alice, id, bob, joinWindow, 100, false); !errors.Is(err, ErrDuplicateGame) {
		t.Fatalf("duplicate id: err = %v; want ErrDuplicateGame", err)
	}
}

func TestCreateGameEntryFee(t *testing.T) {
	e, l, _, _ := newTestEngine(t)
	ctx := context.Background()

	poor := "addr:poor"
	_, _ = l.Mint(ctx, poor, testEntryFee-1)

	id, _ := e.Commit(poor, domain.MoveRock, "s1")
	if _, err := e.CreateGame(ctx, poor, id, bob, joinWindow, 0, false); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v; want ErrInsufficientBalance", err)
	}
}

func TestJoinGame(t *testing.T) {
	e, l, clock, sink := newTestEngine(t)
	ctx := context.Background()

	id := createGame(t, e, domain.MoveRock, "s1", 100)

	g, err := e.JoinGame(ctx, bob, id, domain.MovePaper, 100, false)
	if err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	if got := balance(t, l, escrow); got != 200 {
		t.Fatalf("escrow = %d; want 200", got)
	}
	if g.OpponentMove != domain.MovePaper || g.OpponentWager != 100 {
		t.Fatalf("unexpected joined game: %+v", g)
	}
	if g.Deadline != clock.now().Unix()+testReveal {
		t.Fatalf("reveal deadline = %d; want now+%d", g.Deadline, testReveal)
	}
	if ev := sink.last(t); ev.Type != domain.EventGameJoined || ev.Deadline != g.Deadline {
		t.Fatalf("unexpected join event: %+v", ev)
	}
}

func TestJoinGameRejections(t *testing.T) {
	e, l, clock, _ := newTestEngine(t)
	ctx := context.Background()

	id := createGame(t, e, domain.MoveRock, "s1", 100)

	if _, err := e.JoinGame(ctx, bob, "no-such-id", domain.MovePaper, 100, false); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("unknown id: err = %v", err)
	}
	if _, err := e.JoinGame(ctx, bob, id, domain.MoveNone, 100, false); !errors.Is(err, game.ErrInvalidMove) {
		t.Fatalf("none move: err = %v", err)
	}
	if _, err := e.JoinGame(ctx, "addr:mallory", id, domain.MovePaper, 100, false); !errors.Is(err, ErrNotTheDesignatedOpponent) {
		t.Fatalf("wrong caller: err = %v", err)
	}

	if _, err := e.JoinGame(ctx, bob, id, domain.MovePaper, 100, false); err != nil {
		t.Fatalf("first join: %v", err)
	}
	bobBefore := balance(t, l, bob)
	escrowBefore := balance(t, l, escrow)

	// a second join is rejected and moves no balance
	if _, err := e.JoinGame(ctx, bob, id, domain.MoveScissors, 100, false); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("double join: err = %v; want ErrAlreadyJoined", err)
	}
	if balance(t, l, bob) != bobBefore || balance(t, l, escrow) != escrowBefore {
		t.Fatal("balances moved on rejected double join")
	}

	// join after the deadline on a fresh game
	id2 := createGame(t, e, domain.MoveRock, "s2", 100)
	clock.advance(time.Duration(joinWindow+1) * time.Second)
	if _, err := e.JoinGame(ctx, bob, id2, domain.MovePaper, 100, false); !errors.Is(err, ErrJoinDeadlineExpired) {
		t.Fatalf("late join: err = %v; want ErrJoinDeadlineExpired", err)
	}
}

func TestRevealRockVsPaper(t *testing.T) {
	e, l, _, sink := newTestEngine(t)
	ctx := context.Background()

	id := createGame(t, e, domain.MoveRock, "s1", 100)
	if _, err := e.JoinGame(ctx, bob, id, domain.MovePaper, 100, false); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}

	g, err := e.RevealMove(ctx, alice, domain.MoveRock, "s1")
	if err != nil {
		t.Fatalf("RevealMove: %v", err)
	}
	if g.Payoff != domain.PayoffOpponentWins {
		t.Fatalf("payoff = %s; want opponent_wins", g.Payoff)
	}

	// paper beats rock: bob collects the full 200
	if got := balance(t, l, bob); got != 1100 {
		t.Fatalf("winner balance = %d; want 1100", got)
	}
	if got := balance(t, l, alice); got != 900 {
		t.Fatalf("loser balance = %d; want 900", got)
	}
	if got := balance(t, l, escrow); got != 0 {
		t.Fatalf("escrow = %d; want 0", got)
	}

	as, bs := e.Stats(alice), e.Stats(bob)
	if as.Losses != 1 || as.TotalGames != 1 || as.Winnings != 0 {
		t.Fatalf("creator stats = %+v", as)
	}
	if bs.Wins != 1 || bs.TotalGames != 1 || bs.Winnings != 200 {
		t.Fatalf("opponent stats = %+v", bs)
	}

	if ev := sink.last(t); ev.Type != domain.EventMoveRevealed || ev.Payoff != domain.PayoffOpponentWins {
		t.Fatalf("unexpected reveal event: %+v", ev)
	}

	// resolved games cannot be revealed again
	if _, err := e.RevealMove(ctx, alice, domain.MoveRock, "s1"); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("double reveal: err = %v; want ErrGameFinished", err)
	}
}

func TestRevealTie(t *testing.T) {
	e, l, _, _ := newTestEngine(t)
	ctx := context.Background()

	id := createGame(t, e, domain.MoveRock, "s1", 100)
	if _, err := e.JoinGame(ctx, bob, id, domain.MoveRock, 150, false); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}

	g, err := e.RevealMove(ctx, alice, domain.MoveRock, "s1")
	if err != nil {
		t.Fatalf("RevealMove: %v", err)
	}
	if g.Payoff != domain.PayoffTie {
		t.Fatalf("payoff = %s; want tie", g.Payoff)
	}

	// each wager returns to its own owner
	if balance(t, l, alice) != 1000 || balance(t, l, bob) != 1000 {
		t.Fatalf("tie refund wrong: alice=%d bob=%d", balance(t, l, alice), balance(t, l, bob))
	}

	as, bs := e.Stats(alice), e.Stats(bob)
	if as.Ties != 1 || bs.Ties != 1 {
		t.Fatalf("ties not counted: %+v %+v", as, bs)
	}
	if as.Winnings != 0 || bs.Winnings != 0 {
		t.Fatal("tie must not count toward winnings")
	}
}

func TestRevealWrongSecretIndistinguishable(t *testing.T) {
	e, _, _, _ := newTestEngine(t)
	ctx := context.Background()

	id := createGame(t, e, domain.MoveRock, "s1", 100)
	if _, err := e.JoinGame(ctx, bob, id, domain.MovePaper, 100, false); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}

	// wrong secret and wrong move both land on ErrGameNotFound
	if _, err := e.RevealMove(ctx, alice, domain.MoveRock, "wrong"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("wrong secret: err = %v; want ErrGameNotFound", err)
	}
	if _, err := e.RevealMove(ctx, alice, domain.MoveScissors, "s1"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("wrong move: err = %v; want ErrGameNotFound", err)
	}
}

func TestRevealBeforeJoinAndAfterDeadline(t *testing.T) {
	e, _, clock, _ := newTestEngine(t)
	ctx := context.Background()

	createGame(t, e, domain.MoveRock, "s1", 100)
	if _, err := e.RevealMove(ctx, alice, domain.MoveRock, "s1"); !errors.Is(err, ErrOpponentNotJoined) {
		t.Fatalf("unjoined reveal: err = %v; want ErrOpponentNotJoined", err)
	}

	id := createGame(t, e, domain.MoveRock, "s2", 100)
	if _, err := e.JoinGame(ctx, bob, id, domain.MovePaper, 100, false); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	clock.advance(time.Duration(testReveal+1) * time.Second)
	if _, err := e.RevealMove(ctx, alice, domain.MoveRock, "s2"); !errors.Is(err, ErrRevealDeadlineExpired) {
		t.Fatalf("late reveal: err = %v; want ErrRevealDeadlineExpired", err)
	}
}

func TestCancelRoundTrip(t *testing.T) {
	e, l, clock, sink := newTestEngine(t)
	ctx := context.Background()

	id := createGame(t, e, domain.MoveRock, "s1", 250)

	// too early
	if err := e.CancelGame(ctx, alice, id); !errors.Is(err, ErrJoinDeadlineNotExpired) {
		t.Fatalf("early cancel: err = %v; want ErrJoinDeadlineNotExpired", err)
	}
	// wrong caller
	if err := e.CancelGame(ctx, bob, id); !errors.Is(err, ErrNotCreator) {
		t.Fatalf("foreign cancel: err = %v; want ErrNotCreator", err)
	}

	clock.advance(time.Duration(joinWindow+1) * time.Second)
	if err := e.CancelGame(ctx, alice, id); err != nil {
		t.Fatalf("CancelGame: %v", err)
	}

	// exact refund
	if got := balance(t, l, alice); got != 1000 {
		t.Fatalf("refund wrong: balance = %d; want 1000", got)
	}

	// tombstone: creator kept, everything else cleared
	g, ok := e.Game(id)
	if !ok {
		t.Fatal("tombstone disappeared")
	}
	if g.Creator != alice {
		t.Fatalf("tombstone lost creator: %+v", g)
	}
	if g.Opponent != "" || g.OpponentMove != domain.MoveNone || g.CreatorWager != 0 || g.OpponentWager != 0 || g.Deadline != 0 {
		t.Fatalf("cancel did not clear fields: %+v", g)
	}

	if ev := sink.last(t); ev.Type != domain.EventGameCancelled {
		t.Fatalf("unexpected cancel event: %+v", ev)
	}

	// the id stays consumed forever
	if _, err := e.CreateGame(ctx, alice, id, bob, joinWindow, 100, false); !errors.Is(err, ErrDuplicateGame) {
		t.Fatalf("tombstoned id reused: err = %v; want ErrDuplicateGame", err)
	}
	// and cannot be cancelled twice
	if err := e.CancelGame(ctx, alice, id); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("double cancel: err = %v; want ErrGameFinished", err)
	}
}

func TestCancelAfterJoinRejected(t *testing.T) {
	e, _, clock, _ := newTestEngine(t)
	ctx := context.Background()

	id := createGame(t, e, domain.MoveRock, "s1", 100)
	if _, err := e.JoinGame(ctx, bob, id, domain.MovePaper, 100, false); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	clock.advance(time.Duration(joinWindow+1) * time.Second)
	if err := e.CancelGame(ctx, alice, id); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("cancel joined game: err = %v; want ErrAlreadyJoined", err)
	}
}

func TestClaimTotalWagered(t *testing.T) {
	e, l, clock, sink := newTestEngine(t)
	ctx := context.Background()

	id := createGame(t, e, domain.MoveRock, "s1", 100)

	// nobody joined yet
	if err := e.ClaimTotalWagered(ctx, bob, id); !errors.Is(err, ErrOpponentNotJoined) {
		t.Fatalf("claim unjoined: err = %v; want ErrOpponentNotJoined", err)
	}

	if _, err := e.JoinGame(ctx, bob, id, domain.MovePaper, 100, false); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}

	// reveal window still open
	if err := e.ClaimTotalWagered(ctx, bob, id); !errors.Is(err, ErrRevealDeadlineNotExpired) {
		t.Fatalf("early claim: err = %v; want ErrRevealDeadlineNotExpired", err)
	}

	clock.advance(time.Duration(testReveal+1) * time.Second)
	if err := e.ClaimTotalWagered(ctx, bob, id); err != nil {
		t.Fatalf("ClaimTotalWagered: %v", err)
	}

	// the opponent collects the combined wager as a penalty
	if got := balance(t, l, bob); got != 1100 {
		t.Fatalf("claimant balance = %d; want 1100", got)
	}

	// the game never completed, so no counters move for either player
	as, bs := e.Stats(alice), e.Stats(bob)
	if as.TotalGames != 0 || bs.TotalGames != 0 || bs.Wins != 0 || bs.Winnings != 0 {
		t.Fatalf("claim touched stats: creator=%+v opponent=%+v", as, bs)
	}

	g, _ := e.Game(id)
	if g.Payoff != domain.PayoffClaimed {
		t.Fatalf("payoff = %s; want claimed", g.Payoff)
	}
	if ev := sink.last(t); ev.Type != domain.EventTotalWageredClaimed || ev.Wager != 200 {
		t.Fatalf("unexpected claim event: %+v", ev)
	}

	// the creator cannot reveal a claimed game
	if _, err := e.RevealMove(ctx, alice, domain.MoveRock, "s1"); !errors.Is(err, ErrGameFinished) {
		t.Fatalf("reveal after claim: err = %v; want ErrGameFinished", err)
	}
}

func TestClaimByThirdPartyPaysOpponent(t *testing.T) {
	e, l, clock, _ := newTestEngine(t)
	ctx := context.Background()

	id := createGame(t, e, domain.MoveRock, "s1", 100)
	if _, err := e.JoinGame(ctx, bob, id, domain.MovePaper, 100, false); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	clock.advance(time.Duration(testReveal+1) * time.Second)

	// anyone may trigger the claim, but the payout lands on the opponent
	if err := e.ClaimTotalWagered(ctx, "addr:carol", id); err != nil {
		t.Fatalf("ClaimTotalWagered: %v", err)
	}
	if got := balance(t, l, bob); got != 1100 {
		t.Fatalf("opponent balance = %d; want 1100", got)
	}
	if got := balance(t, l, "addr:carol"); got != 0 {
		t.Fatalf("claimant balance = %d; want 0", got)
	}
	if got := balance(t, l, escrow); got != 0 {
		t.Fatalf("escrow = %d; want 0", got)
	}
}

func TestResolveWagerWinningsOverride(t *testing.T) {
	e, l, _, _ := newTestEngine(t)
	ctx := context.Background()

	// useWinnings with zero winnings: the requested amount stands
	id := createGame(t, e, domain.MoveRock, "s1", 0)
	if _, err := e.JoinGame(ctx, bob, id, domain.MoveScissors, 200, true); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	g, _ := e.Game(id)
	if g.OpponentWager != 200 {
		t.Fatalf("override with zero winnings: wager = %d; want 200", g.OpponentWager)
	}

	// alice wins 200 (rock beats scissors)
	if _, err := e.RevealMove(ctx, alice, domain.MoveRock, "s1"); err != nil {
		t.Fatalf("RevealMove: %v", err)
	}
	if got := e.Stats(alice).Winnings; got != 200 {
		t.Fatalf("winnings = %d; want 200", got)
	}

	// now useWinnings overrides the requested wager with the full winnings
	id2, _ := e.Commit(alice, domain.MoveRock, "s2")
	if _, err := e.CreateGame(ctx, alice, id2, bob, joinWindow, 50, true); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	g2, _ := e.Game(id2)
	if g2.CreatorWager != 200 {
		t.Fatalf("winnings override: wager = %d; want 200", g2.CreatorWager)
	}
	if got := balance(t, l, escrow); got != 200 {
		t.Fatalf("escrow = %d; want 200", got)
	}
}

func TestResolveWagerWinningsExceedBalance(t *testing.T) {
	e, l, _, _ := newTestEngine(t)
	ctx := context.Background()

	// alice wins 800 so winnings > remaining balance after she spends most of it
	id := createGame(t, e, domain.MoveRock, "s1", 400)
	if _, err := e.JoinGame(ctx, bob, id, domain.MoveScissors, 400, false); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}
	if _, err := e.RevealMove(ctx, alice, domain.MoveRock, "s1"); err != nil {
		t.Fatalf("RevealMove: %v", err)
	}
	// alice: balance 1400, winnings 800. Drain her below the winnings mark.
	if err := l.Transfer(ctx, alice, "addr:sink", 900); err != nil {
		t.Fatalf("drain: %v", err)
	}

	// balance 500 < winnings 800: override condition false, requested used
	id2, _ := e.Commit(alice, domain.MoveRock, "s2")
	if _, err := e.CreateGame(ctx, alice, id2, bob, joinWindow, 300, true); err != nil {
		t.Fatalf("CreateGame: %v", err)
	}
	g, _ := e.Game(id2)
	if g.CreatorWager != 300 {
		t.Fatalf("wager = %d; want requested 300", g.CreatorWager)
	}
}

func TestPolicyMutation(t *testing.T) {
	e, _, _, sink := newTestEngine(t)

	if err := e.SetEntryFee(alice, 50); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-admin set: err = %v; want ErrUnauthorized", err)
	}
	if err := e.SetEntryFee("addr:root", 50); err != nil {
		t.Fatalf("SetEntryFee: %v", err)
	}
	if got := e.Config().EntryFee; got != 50 {
		t.Fatalf("entry fee = %d; want 50", got)
	}

	for _, v := range []int64{MinRevealWindowSeconds - 1, MaxRevealWindowSeconds + 1} {
		if err := e.SetSecondsUntilReveal("addr:root", v); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("reveal window %d: err = %v; want ErrOutOfRange", v, err)
		}
	}
	for _, v := range []int64{MinRevealWindowSeconds, MaxRevealWindowSeconds} {
		if err := e.SetSecondsUntilReveal("addr:root", v); err != nil {
			t.Fatalf("reveal window %d: %v", v, err)
		}
	}

	if ev := sink.last(t); ev.Type != domain.EventConfigUpdated || ev.Setting != "seconds_until_reveal" {
		t.Fatalf("unexpected config event: %+v", ev)
	}
}

func TestDestroyDrainsOpenGames(t *testing.T) {
	e, l, _, sink := newTestEngine(t)
	ctx := context.Background()

	id := createGame(t, e, domain.MoveRock, "s1", 100)
	if _, err := e.JoinGame(ctx, bob, id, domain.MovePaper, 100, false); err != nil {
		t.Fatalf("JoinGame: %v", err)
	}

	if err := e.Destroy(alice); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("non-admin destroy: err = %v; want ErrUnauthorized", err)
	}
	if err := e.Destroy("addr:root"); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if !e.Halted() {
		t.Fatal("engine not halted after Destroy")
	}
	if ev := sink.last(t); ev.Type != domain.EventEngineHalted {
		t.Fatalf("unexpected halt event: %+v", ev)
	}

	// no new games or joins once halted
	id2, _ := e.Commit(alice, domain.MoveRock, "s2")
	if _, err := e.CreateGame(ctx, alice, id2, bob, joinWindow, 100, false); !errors.Is(err, ErrEngineHalted) {
		t.Fatalf("create after destroy: err = %v; want ErrEngineHalted", err)
	}
	if _, err := e.JoinGame(ctx, bob, id, domain.MoveScissors, 100, false); !errors.Is(err, ErrEngineHalted) {
		t.Fatalf("join after destroy: err = %v; want ErrEngineHalted", err)
	}

	// but escrowed games still settle
	if _, err := e.RevealMove(ctx, alice, domain.MoveRock, "s1"); err != nil {
		t.Fatalf("reveal after destroy: %v", err)
	}
	if got := balance(t, l, escrow); got != 0 {
		t.Fatalf("escrow not drained: %d", got)
	}

	// a second destroy is a no-op
	if err := e.Destroy("addr:root"); err != nil {
		t.Fatalf("repeat destroy: %v", err)
	}
}

func TestNewValidatesPolicy(t *testing.T) {
	l := ledger.NewMemory()
	_, err := New(Options{
		Instance:           "test",
		EscrowAccount:      escrow,
		SecondsUntilReveal: 10, // below the minimum window
		Ledger:             l,
	})
	if err == nil {
		t.Fatal("expected error for out-of-range reveal window")
	}
}
