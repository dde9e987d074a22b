package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"syscall"
)

type TcpListener struct {
	host string
	port uint16
	cm   *ConnectionManager

	addr  net.Addr
	ready chan struct{}
}

func NewTcpListener(host string, port uint16, cm *ConnectionManager) *TcpListener {
	return &TcpListener{
		host:  host,
		port:  port,
		cm:    cm,
		ready: make(chan struct{}),
	}
}

// Ready is closed once the listener is bound; Addr is valid after that.
func (l *TcpListener) Ready() <-chan struct{} {
	return l.ready
}

func (l *TcpListener) Addr() net.Addr {
	return l.addr
}

func (l *TcpListener) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", net.JoinHostPort(l.host, fmt.Sprint(l.port)))
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", l.port)
		}
		return fmt.Errorf("listening on port %d: %w", l.port, err)
	}
	l.addr = listener.Addr()
	close(l.ready)

	slog.InfoContext(ctx, "listening for tcp", "addr", l.addr.String())

	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	// Close the listener when the parent context is canceled
	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			// Check if shutdown was requested
			select {
			case <-ctx.Done():
				cancelConns()
				wg.Wait()
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				cancelConns()
				wg.Wait()
				return fmt.Errorf("accepting tcp connection: %w", err)
			}
			slog.ErrorContext(ctx, "accepting tcp connection", "error", err)
			continue
		}

		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetNoDelay(true)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			l.cm.AcceptConnection(connCtx, conn)
		}()
	}
}
