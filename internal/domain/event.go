package domain

import "time"

// EventType names the observable engine notifications.
type EventType string

const (
	EventGameCreated         EventType = "game_created"
	EventGameJoined          EventType = "game_joined"
	EventMoveRevealed        EventType = "move_revealed"
	EventGameCancelled       EventType = "game_cancelled"
	EventTotalWageredClaimed EventType = "total_wagered_claimed"
	EventConfigUpdated       EventType = "config_updated"
	EventEngineHalted        EventType = "engine_halted"
)

// Event is emitted by the engine after every committed state transition.
// Fields not relevant to a given type are left at their zero value.
type Event struct {
	Type     EventType `json:"type"`
	GameID   string    `json:"game_id,omitempty"`
	Actor    string    `json:"actor"`
	Opponent string    `json:"opponent,omitempty"`
	Move     Move      `json:"move,omitempty"`
	Payoff   Payoff    `json:"payoff,omitempty"`
	Wager    int64     `json:"wager,omitempty"`
	Deadline int64     `json:"deadline,omitempty"`
	// Setting and Value carry config changes (EventConfigUpdated).
	Setting string    `json:"setting,omitempty"`
	Value   int64     `json:"value,omitempty"`
	At      time.Time `json:"at"`
}
