package domain

// Move is a player's throw. The zero value means "no move yet" and is
// rejected everywhere a real move is required.
type Move int32

const (
	MoveNone     Move = 0
	MoveRock     Move = 1
	MovePaper    Move = 2
	MoveScissors Move = 3
)

func (m Move) Valid() bool {
	return m >= MoveRock && m <= MoveScissors
}

func (m Move) String() string {
	switch m {
	case MoveRock:
		return "rock"
	case MovePaper:
		return "paper"
	case MoveScissors:
		return "scissors"
	default:
		return "none"
	}
}

// ParseMove maps the wire names back to a Move. Unknown input maps to
// MoveNone, which callers treat as invalid.
func ParseMove(s string) Move {
	switch s {
	case "rock":
		return MoveRock
	case "paper":
		return MovePaper
	case "scissors":
		return MoveScissors
	default:
		return MoveNone
	}
}

// Payoff is the resolved outcome of a game.
type Payoff int32

const (
	PayoffNone         Payoff = 0
	PayoffTie          Payoff = 1
	PayoffCreatorWins  Payoff = 2
	PayoffOpponentWins Payoff = 3
	// PayoffClaimed marks a game the opponent collected after the creator
	// failed to reveal in time. The game never completed, so it is neither
	// a win nor a loss for stats purposes.
	PayoffClaimed Payoff = 4
)

func (p Payoff) String() string {
	switch p {
	case PayoffTie:
		return "tie"
	case PayoffCreatorWins:
		return "creator_wins"
	case PayoffOpponentWins:
		return "opponent_wins"
	case PayoffClaimed:
		return "claimed"
	default:
		return "none"
	}
}
