package engine

// Reveal window bounds and the per-game join window bounds. The join window
// is not runtime-tunable; earlier revisions of the rules allowed it, the
// final design fixes the constants.
const (
	MinRevealWindowSeconds = int64(60)
	MaxRevealWindowSeconds = int64(3600)

	MinJoinWindowSeconds = int64(3600)
	MaxJoinWindowSeconds = int64(432000) // 5 days
)

// Policy holds the owner-tunable engine parameters. It is owned by the
// engine and mutated only under the engine mutex.
type Policy struct {
	// EntryFee is the minimum balance an account needs to create or join.
	EntryFee int64
	// SecondsUntilReveal is the window granted to the creator to reveal
	// once the opponent joins.
	SecondsUntilReveal int64
}

// PolicySnapshot is the read-only view handed out to callers.
type PolicySnapshot struct {
	EntryFee             int64 `json:"entry_fee"`
	SecondsUntilReveal   int64 `json:"seconds_until_reveal"`
	MinJoinWindowSeconds int64 `json:"min_join_window_seconds"`
	MaxJoinWindowSeconds int64 `json:"max_join_window_seconds"`
}

func (p *Policy) setEntryFee(v int64) error {
	if v < 0 {
		return ErrOutOfRange
	}
	p.EntryFee = v
	return nil
}

func (p *Policy) setSecondsUntilReveal(v int64) error {
	if v < MinRevealWindowSeconds || v > MaxRevealWindowSeconds {
		return ErrOutOfRange
	}
	p.SecondsUntilReveal = v
	return nil
}

func validJoinWindow(seconds int64) bool {
	return seconds >= MinJoinWindowSeconds && seconds <= MaxJoinWindowSeconds
}
