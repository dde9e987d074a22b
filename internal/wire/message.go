package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

type Type string

const (
	TypeWelcome    Type = "welcome"
	TypeConnection Type = "connection" // legacy alias of welcome, decode only
	TypeJoin       Type = "join"
	TypeDirection  Type = "direction"
	TypeState      Type = "state"
	TypeError      Type = "error"
)

// Message is one of *Welcome, *Join, *Direction, *State or *Error.
type Message interface {
	Type() Type
	message()
}

// Welcome announces the id assigned to a connection.
type Welcome struct {
	ClientID int    `json:"client_id"`
	Message  string `json:"message,omitempty"`
}

// Join registers or renames the sender's player. Body and Direction are
// optional starting values.
type Join struct {
	Name      string  `json:"name"`
	Body      []Point `json:"body,omitempty"`
	Direction *Point  `json:"direction,omitempty"`
}

// Direction changes the heading of the sender's snake for the next tick.
type Direction struct {
	Direction Point `json:"direction"`
}

// State carries a full world snapshot.
type State struct {
	GameState GameState `json:"game_state"`
}

// Error tells a client why the server is about to drop it.
type Error struct {
	Message string `json:"message"`
}

type GameState struct {
	Players   map[string]PlayerState `json:"players"`
	Food1     Point                  `json:"food1"`
	Food2     Point                  `json:"food2"`
	Obstacles []Point                `json:"obstacles"`
	GridSize  int                    `json:"grid_size"`
	Tick      uint64                 `json:"tick"`
	MatchID   string                 `json:"match_id,omitempty"`
}

type PlayerState struct {
	Name      string  `json:"name"`
	Body      []Point `json:"body"`
	Score     int     `json:"score"`
	Alive     bool    `json:"alive"`
	Direction Point   `json:"direction"`
}

func (*Welcome) Type() Type   { return TypeWelcome }
func (*Join) Type() Type      { return TypeJoin }
func (*Direction) Type() Type { return TypeDirection }
func (*State) Type() Type     { return TypeState }
func (*Error) Type() Type     { return TypeError }

func (*Welcome) message()   {}
func (*Join) message()      {}
func (*Direction) message() {}
func (*State) message()     {}
func (*Error) message()     {}

// Marshal returns the JSON payload of m, including its type tag.
func Marshal(m Message) ([]byte, error) {
	switch m := m.(type) {
	case *Welcome:
		return json.Marshal(struct {
			Type Type `json:"type"`
			*Welcome
		}{TypeWelcome, m})
	case *Join:
		return json.Marshal(struct {
			Type Type `json:"type"`
			*Join
		}{TypeJoin, m})
	case *Direction:
		return json.Marshal(struct {
			Type Type `json:"type"`
			*Direction
		}{TypeDirection, m})
	case *State:
		return json.Marshal(struct {
			Type Type `json:"type"`
			*State
		}{TypeState, m})
	case *Error:
		return json.Marshal(struct {
			Type Type `json:"type"`
			*Error
		}{TypeError, m})
	default:
		return nil, fmt.Errorf("unsupported message %T", m)
	}
}

// Encode returns m as a complete length-prefixed frame.
func Encode(m Message) ([]byte, error) {
	payload, err := Marshal(m)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	err = WriteFrame(&buf, payload)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses a single frame payload. Every failure is a *DecodeError.
func Unmarshal(payload []byte) (Message, error) {
	var env struct {
		Type Type `json:"type"`
	}
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, &DecodeError{Err: err}
	}

	fail := func(err error) (Message, error) {
		return nil, &DecodeError{Type: env.Type, Err: err}
	}

	switch env.Type {
	case TypeWelcome, TypeConnection:
		var raw struct {
			ClientID *int   `json:"client_id"`
			Message  string `json:"message"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return fail(err)
		}
		if raw.ClientID == nil {
			return fail(errors.New("client_id is required"))
		}
		return &Welcome{ClientID: *raw.ClientID, Message: raw.Message}, nil

	case TypeJoin:
		var m Join
		if err := json.Unmarshal(payload, &m); err != nil {
			return fail(err)
		}
		return &m, nil

	case TypeDirection:
		var raw struct {
			Direction *Point `json:"direction"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return fail(err)
		}
		if raw.Direction == nil {
			return fail(errors.New("direction is required"))
		}
		return &Direction{Direction: *raw.Direction}, nil

	case TypeState:
		var raw struct {
			GameState *GameState `json:"game_state"`
		}
		if err := json.Unmarshal(payload, &raw); err != nil {
			return fail(err)
		}
		if raw.GameState == nil {
			return fail(errors.New("game_state is required"))
		}
		return &State{GameState: *raw.GameState}, nil

	case TypeError:
		var m Error
		if err := json.Unmarshal(payload, &m); err != nil {
			return fail(err)
		}
		return &m, nil

	case "":
		return fail(errors.New("type is required"))
	default:
		return fail(fmt.Errorf("unknown message type %q", env.Type))
	}
}

// Decode reads one frame from r and parses it. Errors from ReadFrame are
// returned unchanged so callers can tell a broken stream (*FramingError,
// io.EOF, transport errors) from a bad payload (*DecodeError).
func Decode(r io.Reader) (Message, error) {
	payload, err := ReadFrame(r)
	if err != nil {
		return nil, err
	}
	return Unmarshal(payload)
}
