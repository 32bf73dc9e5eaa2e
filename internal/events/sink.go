package events

import (
	"rpsduel/internal/domain"
	"rpsduel/internal/logger"
)

// Sink receives engine events. Implementations must not block: the engine
// emits while holding its state lock.
type Sink interface {
	Emit(e domain.Event)
}

// Fanout delivers every event to each sink in order.
type Fanout []Sink

func (f Fanout) Emit(e domain.Event) {
	for _, s := range f {
		s.Emit(e)
	}
}

// LogSink writes one structured log line per event.
type LogSink struct{}

func (LogSink) Emit(e domain.Event) {
	logger.Info("engine event",
		"type", string(e.Type),
		"game_id", e.GameID,
		"actor", e.Actor,
		"payoff", e.Payoff.String(),
		"wager", e.Wager,
	)
}
