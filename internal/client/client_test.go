package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/pixil98/go-snake/internal/wire"
	"github.com/pixil98/go-testutil"
)

// fakeServer accepts one connection, writes greeting and hands the
// connection to serve.
func fakeServer(t *testing.T, greeting wire.Message, serve func(net.Conn)) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()

		frame, err := wire.Encode(greeting)
		if err != nil {
			return
		}
		if _, err := conn.Write(frame); err != nil {
			return
		}
		if serve != nil {
			serve(conn)
		}
	}()

	return ln.Addr().String()
}

func TestDial(t *testing.T) {
	tests := map[string]struct {
		greeting wire.Message
		expId    int
		expErr   error
	}{
		"welcome": {
			greeting: &wire.Welcome{ClientID: 4, Message: "hi"},
			expId:    4,
		},
		"rejected": {
			greeting: &wire.Error{Message: "server full"},
			expErr:   ErrRejected,
		},
		"no welcome": {
			greeting: &wire.State{},
			expErr:   ErrNoWelcome,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			addr := fakeServer(t, tt.greeting, nil)

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			c, err := Dial(ctx, addr)
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Fatalf("expected %v, got %v", tt.expErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() { _ = c.Close() }()

			testutil.AssertEqual(t, "id", c.Id(), tt.expId)
			testutil.AssertEqual(t, "message", c.Welcome().Message, "hi")
		})
	}
}

func TestClient_SteerAndNextState(t *testing.T) {
	got := make(chan wire.Message, 2)

	addr := fakeServer(t, &wire.Welcome{ClientID: 1}, func(conn net.Conn) {
		for range 2 {
			msg, err := wire.Decode(conn)
			if err != nil {
				return
			}
			got <- msg
		}

		for _, m := range []wire.Message{
			&wire.Welcome{ClientID: 1},
			&wire.State{GameState: wire.GameState{GridSize: 20, Tick: 7}},
		} {
			frame, _ := wire.Encode(m)
			if _, err := conn.Write(frame); err != nil {
				return
			}
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := Dial(ctx, addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer func() { _ = c.Close() }()

	if err := c.Join("Ada"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := c.Steer(0, -1); err != nil {
		t.Fatalf("steer: %v", err)
	}

	join, ok := (<-got).(*wire.Join)
	if !ok {
		t.Fatalf("expected join first")
	}
	testutil.AssertEqual(t, "name", join.Name, "Ada")

	dir, ok := (<-got).(*wire.Direction)
	if !ok {
		t.Fatalf("expected direction second")
	}
	testutil.AssertEqual(t, "direction", dir.Direction, wire.Point{X: 0, Y: -1})

	st, err := c.NextState()
	if err != nil {
		t.Fatalf("next state: %v", err)
	}
	testutil.AssertEqual(t, "grid", st.GameState.GridSize, 20)
	testutil.AssertEqual(t, "tick", st.GameState.Tick, uint64(7))
}
