package game

import (
	"fmt"

	"rpsduel/internal/domain"
)

// Resolve maps a pair of disclosed moves to an outcome. Both moves must be
// real moves; the lifecycle rejects MoveNone before resolution.
//
// With the 1..3 encoding the cyclic rule (3+creator-opponent)%3 gives the
// classic table: rock beats scissors, scissors beats paper, paper beats rock.
func Resolve(creator, opponent domain.Move) domain.Payoff {
	if !creator.Valid() || !opponent.Valid() {
		panic(fmt.Sprintf("resolve called with unplayable moves %d vs %d", creator, opponent))
	}

	switch (3 + creator - opponent) % 3 {
	case 0:
		return domain.PayoffTie
	case 1:
		return domain.PayoffCreatorWins
	case 2:
		return domain.PayoffOpponentWins
	}
	// (3+a-b)%3 is total over 0..2
	panic("unreachable payoff branch")
}
