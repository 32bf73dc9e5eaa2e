package domain

// Game is one commit-reveal duel, keyed by the creator's commitment ID.
//
// Deadline changes meaning by phase: before the opponent joins it is the
// join deadline, afterwards it is the creator's reveal deadline.
//
// Consumed is set at creation and never cleared. Cancellation wipes the
// wager and opponent fields but keeps Creator and Consumed as a tombstone,
// so a commitment ID can never be replayed.
type Game struct {
	ID            string `json:"id"`
	Creator       string `json:"creator"`
	Opponent      string `json:"opponent,omitempty"`
	OpponentMove  Move   `json:"opponent_move"`
	Payoff        Payoff `json:"payoff"`
	CreatorWager  int64  `json:"creator_wager"`
	OpponentWager int64  `json:"opponent_wager"`
	Deadline      int64  `json:"deadline"` // unix seconds
	Consumed      bool   `json:"-"`
	Cancelled     bool   `json:"cancelled,omitempty"`
}

// Joined reports whether the designated opponent has escrowed a wager and
// disclosed a move.
func (g *Game) Joined() bool {
	return g.OpponentMove != MoveNone
}

// Terminal reports whether the game reached one of its end states.
func (g *Game) Terminal() bool {
	return g.Payoff != PayoffNone
}

// TotalWagered is the combined escrowed amount.
func (g *Game) TotalWagered() int64 {
	return g.CreatorWager + g.OpponentWager
}

// PlayerStats are running per-account aggregates. Counters only ever grow;
// Winnings counts amounts collected from outright wins, ties excluded.
type PlayerStats struct {
	Address    string `json:"address"`
	TotalGames int64  `json:"total_games"`
	Wins       int64  `json:"wins"`
	Losses     int64  `json:"losses"`
	Ties       int64  `json:"ties"`
	Winnings   int64  `json:"winnings"`
}
