package engine

import "rpsduel/internal/domain"

// store is the keyed game map. Single-use IDs are enforced by the engine
// via used() before inserting; all transition rules and locking live in the
// engine.
type store struct {
	games map[string]*domain.Game
}

func newStore() *store {
	return &store{games: make(map[string]*domain.Game)}
}

// get returns the live record, or nil if the ID was never consumed.
func (s *store) get(id string) *domain.Game {
	return s.games[id]
}

// used reports whether the ID was ever consumed, tombstones included.
func (s *store) used(id string) bool {
	g := s.games[id]
	return g != nil && g.Consumed
}

func (s *store) put(g *domain.Game) {
	s.games[g.ID] = g
}

func (s *store) len() int {
	return len(s.games)
}
