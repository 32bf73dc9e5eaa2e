package engine

import "rpsduel/internal/domain"

// statsTracker keeps the running per-account aggregates. Records are
// created lazily on first touch and never deleted.
type statsTracker struct {
	players map[string]*domain.PlayerStats
}

func newStatsTracker() *statsTracker {
	return &statsTracker{players: make(map[string]*domain.PlayerStats)}
}

func (t *statsTracker) player(addr string) *domain.PlayerStats {
	p, ok := t.players[addr]
	if !ok {
		p = &domain.PlayerStats{Address: addr}
		t.players[addr] = p
	}
	return p
}

// snapshot returns a copy so callers never see a record mid-update.
func (t *statsTracker) snapshot(addr string) domain.PlayerStats {
	if p, ok := t.players[addr]; ok {
		return *p
	}
	return domain.PlayerStats{Address: addr}
}

// recordOutcome applies the stat changes for a completed reveal. total is
// the combined wager paid to the winner on a non-tie.
func (t *statsTracker) recordOutcome(creator, opponent string, payoff domain.Payoff, total int64) {
	c, o := t.player(creator), t.player(opponent)
	c.TotalGames++
	o.TotalGames++

	switch payoff {
	case domain.PayoffTie:
		c.Ties++
		o.Ties++
	case domain.PayoffCreatorWins:
		c.Wins++
		c.Winnings += total
		o.Losses++
	case domain.PayoffOpponentWins:
		o.Wins++
		o.Winnings += total
		c.Losses++
	}
}
