package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-snake/internal/wire"
)

const DefaultWebsocketPath = "/ws"

// WebsocketListener accepts the same framed stream as the TCP listener, carried
// in binary websocket messages.
type WebsocketListener struct {
	host string
	port uint16
	path string
	cm   *ConnectionManager

	upgrader websocket.Upgrader

	addr  net.Addr
	ready chan struct{}
}

func NewWebsocketListener(host string, port uint16, path string, cm *ConnectionManager) *WebsocketListener {
	if path == "" {
		path = DefaultWebsocketPath
	}
	return &WebsocketListener{
		host: host,
		port: port,
		path: path,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		ready: make(chan struct{}),
	}
}

func (l *WebsocketListener) Ready() <-chan struct{} {
	return l.ready
}

func (l *WebsocketListener) Addr() net.Addr {
	return l.addr
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", net.JoinHostPort(l.host, fmt.Sprint(l.port)))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	l.addr = listener.Addr()
	close(l.ready)

	// Upgraded connections are hijacked, so Shutdown does not wait for them.
	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	mux := http.NewServeMux()
	mux.HandleFunc(l.path, func(w http.ResponseWriter, r *http.Request) {
		wg.Add(1)
		defer wg.Done()

		ws, err := l.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.WarnContext(ctx, "upgrading websocket", "remote", r.RemoteAddr, "error", err)
			return
		}

		l.cm.AcceptConnection(connCtx, wire.NewWebsocketStream(ws))
	})

	svr := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	served := make(chan struct{})
	shutdown := make(chan struct{})
	go func() {
		defer close(shutdown)
		select {
		case <-ctx.Done():
		case <-served:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = svr.Shutdown(shutdownCtx)
	}()

	slog.InfoContext(ctx, "listening for websocket", "addr", l.addr.String(), "path", l.path)

	err = svr.Serve(listener)
	close(served)
	// Handlers still upgrading are tracked by Shutdown; wait for it before
	// counting the hijacked ones.
	<-shutdown
	cancelConns()
	wg.Wait()

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
	}
	return nil
}
