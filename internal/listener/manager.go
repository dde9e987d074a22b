package listener

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/pixil98/go-snake/internal/player"
	"github.com/pixil98/go-snake/internal/wire"
)

// ConnectionManager hands every accepted connection a fresh client id and a
// session. Ids start at 0 and are never reused, even across listeners.
type ConnectionManager struct {
	sm     *player.SessionManager
	nextId atomic.Int64
}

func NewConnectionManager(sm *player.SessionManager) *ConnectionManager {
	return &ConnectionManager{
		sm: sm,
	}
}

// AcceptConnection runs conn until it ends. It owns conn and closes it.
func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriteCloser) {
	id := int(m.nextId.Add(1) - 1)

	s, err := m.sm.NewSession(id, conn)
	if err != nil {
		if errors.Is(err, player.ErrServerFull) {
			slog.InfoContext(ctx, "rejecting client", "client", id, "reason", err)
			reject(conn, "server full")
		} else {
			slog.ErrorContext(ctx, "creating session", "client", id, "error", err)
		}
		_ = conn.Close()
		return
	}

	slog.InfoContext(ctx, "client connected", "client", id)
	err = s.Run(ctx)
	if err != nil {
		slog.WarnContext(ctx, "client session", "client", id, "error", err)
	}
	slog.InfoContext(ctx, "client disconnected", "client", id)
}

func reject(w io.Writer, reason string) {
	frame, err := wire.Encode(&wire.Error{Message: reason})
	if err != nil {
		return
	}
	_, _ = w.Write(frame)
}
