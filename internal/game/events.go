package game

type EventKind string

const (
	EventJoin  EventKind = "join"
	EventLeave EventKind = "leave"
	EventEat   EventKind = "eat"
	EventDeath EventKind = "death"
	EventReset EventKind = "reset"
)

type DeathCause string

const (
	CauseObstacle DeathCause = "obstacle"
	CauseSelf     DeathCause = "self"
	CausePlayer   DeathCause = "player"
)

// Event records something that happened to a player. Join and leave events are
// buffered and handed out by the next Advance together with that tick's own
// events.
type Event struct {
	Kind     EventKind  `json:"kind"`
	Tick     uint64     `json:"tick"`
	PlayerId int        `json:"player_id"`
	Name     string     `json:"name"`
	Points   int        `json:"points,omitempty"`
	Food     string     `json:"food,omitempty"`
	Cause    DeathCause `json:"cause,omitempty"`
	Score    int        `json:"score"`
}
