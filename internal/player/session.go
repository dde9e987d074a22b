package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/pixil98/go-snake/internal/game"
	"github.com/pixil98/go-snake/internal/wire"
)

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// Session is one connected client. Frames from the client are applied to the
// world as they arrive; frames to the client go through a bounded queue that
// a dedicated writer drains.
type Session struct {
	id      int
	conn    io.ReadWriteCloser
	world   World
	manager *SessionManager

	queue        chan []byte
	done         chan struct{}
	writeTimeout time.Duration
	closeOnce    sync.Once
}

func (s *Session) Id() int {
	return s.id
}

// Run serves the session until the client goes away, the stream breaks or ctx
// is cancelled. The session is torn down before Run returns.
func (s *Session) Run(ctx context.Context) error {
	// Close may run while a join is still being applied. Once the read loop
	// has exited no join can follow, so the player is removed again here.
	defer func() {
		s.Close()
		s.leaveWorld()
	}()

	go s.writePump(ctx)

	// Closing the transport is the only way to unblock the reader.
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-s.done:
		}
	}()

	for {
		msg, err := wire.Decode(s.conn)
		if err != nil {
			var decodeErr *wire.DecodeError
			if errors.As(err, &decodeErr) {
				slog.WarnContext(ctx, "dropping malformed message", "client", s.id, "error", err)
				continue
			}
			if errors.Is(err, io.EOF) || s.closed() {
				return nil
			}
			return fmt.Errorf("reading from client %d: %w", s.id, err)
		}

		s.handle(ctx, msg)
	}
}

func (s *Session) handle(ctx context.Context, msg wire.Message) {
	switch m := msg.(type) {
	case *wire.Join:
		req := game.JoinRequest{
			Name: m.Name,
			Body: pointsFromWire(m.Body),
		}
		if m.Direction != nil {
			d := pointFromWire(*m.Direction)
			req.Direction = &d
		}

		p, err := s.world.Join(s.id, req)
		if err != nil {
			slog.WarnContext(ctx, "joining world", "client", s.id, "error", err)
			return
		}
		slog.InfoContext(ctx, "player joined", "client", s.id, "name", p.Name)

	case *wire.Direction:
		err := s.world.SetDirection(s.id, pointFromWire(m.Direction))
		if err != nil {
			slog.DebugContext(ctx, "ignoring direction", "client", s.id, "error", err)
		}

	default:
		slog.DebugContext(ctx, "ignoring message", "client", s.id, "type", msg.Type())
	}
}

// Send queues an encoded frame without blocking.
func (s *Session) Send(frame []byte) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}

	select {
	case s.queue <- frame:
		return nil
	default:
		return ErrSendQueueFull
	}
}

func (s *Session) writePump(ctx context.Context) {
	for {
		select {
		case <-s.done:
			return
		case frame := <-s.queue:
			if dl, ok := s.conn.(writeDeadliner); ok && s.writeTimeout > 0 {
				_ = dl.SetWriteDeadline(time.Now().Add(s.writeTimeout))
			}
			_, err := s.conn.Write(frame)
			if err != nil {
				if !s.closed() {
					slog.WarnContext(ctx, "writing to client", "client", s.id, "error", err)
				}
				s.Close()
				return
			}
		}
	}
}

// Close tears the session down. It is safe to call more than once and from
// any goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.leaveWorld()
		if s.manager != nil {
			s.manager.Unregister(s.id)
		}
		close(s.done)

		err := s.conn.Close()
		if err != nil {
			slog.Debug("closing connection", "client", s.id, "error", err)
		}
	})
}

func (s *Session) leaveWorld() {
	err := s.world.Remove(s.id)
	if err != nil && !errors.Is(err, game.ErrPlayerNotFound) {
		slog.Warn("removing player", "client", s.id, "error", err)
	}
}

func (s *Session) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func pointFromWire(p wire.Point) game.Point {
	return game.Point{X: p.X, Y: p.Y}
}

func pointsFromWire(ps []wire.Point) []game.Point {
	if len(ps) == 0 {
		return nil
	}
	out := make([]game.Point, len(ps))
	for i, p := range ps {
		out[i] = pointFromWire(p)
	}
	return out
}
