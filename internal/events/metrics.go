package events

import (
	"rpsduel/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	engineEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpsduel_engine_events_total",
			Help: "Engine state transitions by event type",
		},
		[]string{"type"},
	)
	wageredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rpsduel_wagered_total",
			Help: "Cumulative amount escrowed into games",
		},
	)
	payoffs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpsduel_payoffs_total",
			Help: "Resolved game outcomes",
		},
		[]string{"payoff"},
	)
)

func init() {
	prometheus.MustRegister(engineEvents, wageredTotal, payoffs)
}

// MetricsSink feeds prometheus counters from engine events.
type MetricsSink struct{}

func (MetricsSink) Emit(e domain.Event) {
	engineEvents.WithLabelValues(string(e.Type)).Inc()

	switch e.Type {
	case domain.EventGameCreated, domain.EventGameJoined:
		wageredTotal.Add(float64(e.Wager))
	case domain.EventMoveRevealed:
		payoffs.WithLabelValues(e.Payoff.String()).Inc()
	case domain.EventTotalWageredClaimed:
		payoffs.WithLabelValues(domain.PayoffClaimed.String()).Inc()
	}
}
