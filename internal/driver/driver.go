package driver

import (
	"context"
	"log/slog"
	"time"

	"github.com/pixil98/go-snake/internal/game"
	"github.com/pixil98/go-snake/internal/player"
	"github.com/pixil98/go-snake/internal/wire"
)

const (
	DefaultTickLength = 100 * time.Millisecond
)

// Ticker is extra work run once per tick after the broadcast.
type Ticker interface {
	Tick(context.Context) error
}

type Simulation interface {
	Advance() (game.Snapshot, []game.Event)
}

type Broadcaster interface {
	ForEach(func(*player.Session))
}

// Publisher receives every state payload and the events of each tick.
type Publisher interface {
	PublishState(matchId string, payload []byte) error
	PublishEvents(matchId string, events []game.Event) error
}

// GameDriver advances the world on a fixed period and fans the resulting
// state out to every session.
type GameDriver struct {
	tickLength time.Duration
	world      Simulation
	sessions   Broadcaster
	publisher  Publisher
	tickers    []Ticker
	waitFor    []<-chan struct{}
}

func NewGameDriver(world Simulation, sessions Broadcaster, opts ...GameDriverOpt) *GameDriver {
	d := &GameDriver{
		tickLength: DefaultTickLength,
		world:      world,
		sessions:   sessions,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *GameDriver) Start(ctx context.Context) error {
	for _, ch := range d.waitFor {
		select {
		case <-ctx.Done():
			return nil
		case <-ch:
		}
	}

	slog.InfoContext(ctx, "game driver started", "tick", d.tickLength)

	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

// broadcast offers frame to every session. Sessions that cannot take it are
// closed once every session has been offered it.
func (d *GameDriver) broadcast(ctx context.Context, frame []byte) {
	var failed []*player.Session
	d.sessions.ForEach(func(s *player.Session) {
		err := s.Send(frame)
		if err != nil {
			slog.DebugContext(ctx, "dropping client", "client", s.Id(), "error", err)
			failed = append(failed, s)
		}
	})
	for _, s := range failed {
		s.Close()
	}
}

// Tick runs one simulation step and delivers its result. A snapshot that
// cannot be encoded is logged and skipped.
func (d *GameDriver) Tick(ctx context.Context) error {
	snap, events := d.world.Advance()

	frame, err := wire.Encode(StateMessage(snap))
	if err != nil {
		// The world keeps running; clients just miss this frame.
		slog.ErrorContext(ctx, "encoding state", "tick", snap.Tick, "error", err)
	} else {
		d.broadcast(ctx, frame)
	}

	for _, e := range events {
		slog.DebugContext(ctx, "game event", "tick", e.Tick, "kind", e.Kind, "player", e.PlayerId)
	}

	if d.publisher != nil {
		if frame != nil {
			err = d.publisher.PublishState(snap.MatchId, frame[wire.HeaderSize:])
			if err != nil {
				slog.WarnContext(ctx, "publishing state", "tick", snap.Tick, "error", err)
			}
		}
		if len(events) > 0 {
			err = d.publisher.PublishEvents(snap.MatchId, events)
			if err != nil {
				slog.WarnContext(ctx, "publishing events", "tick", snap.Tick, "error", err)
			}
		}
	}

	for _, t := range d.tickers {
		if err := t.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
