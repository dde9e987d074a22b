package game

import "fmt"

// Mode selects what happens to a snake when it dies.
type Mode int

const (
	// ModeMultiplayer freezes dead snakes in place until their owner re-joins
	// or disconnects.
	ModeMultiplayer Mode = iota
	// ModeSolo puts a dead snake straight back on its spawn cells with a
	// zero score.
	ModeSolo
)

func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "multiplayer", "":
		*m = ModeMultiplayer
	case "solo":
		*m = ModeSolo
	default:
		return fmt.Errorf("unknown mode: %s", text)
	}
	return nil
}

func (m Mode) String() string {
	switch m {
	case ModeSolo:
		return "solo"
	default:
		return "multiplayer"
	}
}
