package listener

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pixil98/go-snake/internal/client"
	"github.com/pixil98/go-snake/internal/driver"
	"github.com/pixil98/go-snake/internal/game"
	"github.com/pixil98/go-snake/internal/player"
	"github.com/pixil98/go-snake/internal/wire"
	"github.com/pixil98/go-testutil"
)

type readyListener interface {
	Start(context.Context) error
	Ready() <-chan struct{}
}

type testServer struct {
	world *game.World
	addr  string
}

// startServer runs a world, a fast driver and one listener built by mk until
// the test ends.
func startServer(t *testing.T, mk func(*ConnectionManager) readyListener, smOpts ...player.SessionManagerOpt) *testServer {
	t.Helper()

	w, err := game.NewWorld(game.WithSeed(1), game.WithObstacles([]game.Point{}))
	if err != nil {
		t.Fatalf("creating world: %v", err)
	}
	sm := player.NewSessionManager(w, smOpts...)
	l := mk(NewConnectionManager(sm))
	d := driver.NewGameDriver(w, sm, driver.WithTickLength(20*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	for _, worker := range []interface{ Start(context.Context) error }{l, d, sm} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := worker.Start(ctx); err != nil {
				t.Errorf("worker stopped: %v", err)
			}
		}()
	}
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})

	select {
	case <-l.Ready():
	case <-time.After(2 * time.Second):
		t.Fatalf("listener did not start")
	}

	ts := &testServer{world: w}
	switch l := l.(type) {
	case *TcpListener:
		ts.addr = l.Addr().String()
	case *WebsocketListener:
		ts.addr = fmt.Sprintf("ws://%s%s", l.Addr().String(), l.path)
	}
	return ts
}

func tcpListener(cm *ConnectionManager) readyListener {
	return NewTcpListener("127.0.0.1", 0, cm)
}

func websocketListener(cm *ConnectionManager) readyListener {
	return NewWebsocketListener("127.0.0.1", 0, "", cm)
}

func dial(t *testing.T, addr string) *client.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := client.Dial(ctx, addr)
	if err != nil {
		t.Fatalf("dialing: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// stateWith reads states until one contains player key and matches cond.
func stateWith(t *testing.T, c *client.Client, key string, cond func(wire.PlayerState) bool) (*wire.State, wire.PlayerState) {
	t.Helper()
	for range 200 {
		st, err := c.NextState()
		if err != nil {
			t.Fatalf("reading state: %v", err)
		}
		p, ok := st.GameState.Players[key]
		if ok && cond(p) {
			return st, p
		}
	}
	t.Fatalf("no matching state for player %s", key)
	return nil, wire.PlayerState{}
}

func anyPlayer(wire.PlayerState) bool { return true }

func TestListener_JoinAndSteer(t *testing.T) {
	for name, mk := range map[string]func(*ConnectionManager) readyListener{
		"tcp":       tcpListener,
		"websocket": websocketListener,
	} {
		t.Run(name, func(t *testing.T) {
			ts := startServer(t, mk)
			c := dial(t, ts.addr)

			testutil.AssertEqual(t, "client id", c.Id(), 0)
			if c.Welcome().Message == "" {
				t.Errorf("expected a welcome message")
			}

			err := c.Join("Ada")
			if err != nil {
				t.Fatalf("joining: %v", err)
			}

			_, p := stateWith(t, c, "0", anyPlayer)
			testutil.AssertEqual(t, "name", p.Name, "Ada")
			testutil.AssertEqual(t, "length", len(p.Body), 3)
			testutil.AssertEqual(t, "alive", p.Alive, true)

			err = c.Steer(0, -1)
			if err != nil {
				t.Fatalf("steering: %v", err)
			}

			// Each tick moves the head by exactly one cell, so once the
			// turn is applied the head sits one row above the row it
			// travelled along.
			row := p.Body[0].Y
			_, p = stateWith(t, c, "0", func(p wire.PlayerState) bool {
				return p.Direction == wire.Point{X: 0, Y: -1}
			})
			testutil.AssertEqual(t, "head row", p.Body[0].Y, row-1)
			testutil.AssertEqual(t, "neck row", p.Body[1].Y, row)
		})
	}
}

func TestListener_EatFood(t *testing.T) {
	ts := startServer(t, tcpListener)
	c := dial(t, ts.addr)

	st, err := c.NextState()
	if err != nil {
		t.Fatalf("reading state: %v", err)
	}
	food := st.GameState.Food1
	size := st.GameState.GridSize
	behind := func(n int) wire.Point {
		return wire.Point{X: ((food.X-n)%size + size) % size, Y: food.Y}
	}

	err = c.Send(&wire.Join{
		Name:      "Bo",
		Body:      []wire.Point{behind(1), behind(2)},
		Direction: &wire.Point{X: 1, Y: 0},
	})
	if err != nil {
		t.Fatalf("joining: %v", err)
	}

	next, p := stateWith(t, c, "0", anyPlayer)
	if next.GameState.Food1 == food {
		t.Errorf("apple was not moved after being eaten")
	}
	testutil.AssertEqual(t, "score", p.Score, 10)
	testutil.AssertEqual(t, "length", len(p.Body), 3)
	testutil.AssertEqual(t, "head", p.Body[0], food)
}

func TestListener_ConcurrentJoins(t *testing.T) {
	const clients = 50
	ts := startServer(t, tcpListener)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		mu   sync.Mutex
		ids  = map[int]bool{}
		full = make(chan struct{})
		once sync.Once
		wg   sync.WaitGroup
	)

	for i := range clients {
		wg.Add(1)
		go func() {
			defer wg.Done()

			c, err := client.Dial(ctx, ts.addr)
			if err != nil {
				t.Errorf("client %d: dialing: %v", i, err)
				return
			}
			defer c.Close()
			go func() {
				<-ctx.Done()
				c.Close()
			}()

			mu.Lock()
			ids[c.Id()] = true
			mu.Unlock()

			err = c.Join(fmt.Sprintf("p%d", i))
			if err != nil {
				t.Errorf("client %d: joining: %v", i, err)
				return
			}
			err = c.Steer(0, 1)
			if err != nil {
				t.Errorf("client %d: steering: %v", i, err)
				return
			}

			for {
				st, err := c.NextState()
				if err != nil {
					return
				}
				if len(st.GameState.Players) == clients {
					once.Do(func() { close(full) })
				}
			}
		}()
	}

	select {
	case <-full:
	case <-ctx.Done():
		t.Fatalf("never saw %d players in one state", clients)
	}
	cancel()
	wg.Wait()

	testutil.AssertEqual(t, "distinct ids", len(ids), clients)
	for id := range clients {
		if !ids[id] {
			t.Errorf("id %d was never handed out", id)
		}
	}
}

func TestListener_ServerFull(t *testing.T) {
	ts := startServer(t, tcpListener, player.WithMaxPlayers(1))
	first := dial(t, ts.addr)
	go func() {
		for {
			if _, err := first.Next(); err != nil {
				return
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := client.Dial(ctx, ts.addr)
	if !errors.Is(err, client.ErrRejected) {
		t.Errorf("expected rejection, got %v", err)
	}
}

func TestListener_DisconnectRemovesPlayer(t *testing.T) {
	ts := startServer(t, tcpListener)
	c := dial(t, ts.addr)

	err := c.Join("Cy")
	if err != nil {
		t.Fatalf("joining: %v", err)
	}
	stateWith(t, c, "0", anyPlayer)

	c.Close()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if ts.world.PlayerCount() == 0 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("player still in world after disconnect")
}
