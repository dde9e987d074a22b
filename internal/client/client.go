package client

import (
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pixil98/go-snake/internal/wire"
)

// Client is a minimal game client: it reads the welcome on connect and then
// lets the caller send intents and pull messages.
type Client struct {
	conn    io.ReadWriteCloser
	welcome wire.Welcome

	wmu sync.Mutex
}

// Dial connects to addr, which is host:port for TCP or a ws:// URL.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var conn io.ReadWriteCloser

	if strings.HasPrefix(addr, "ws://") || strings.HasPrefix(addr, "wss://") {
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, addr, nil)
		if err != nil {
			return nil, fmt.Errorf("dialing %s: %w", addr, err)
		}
		conn = wire.NewWebsocketStream(ws)
	} else {
		var d net.Dialer
		c, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("dialing %s: %w", addr, err)
		}
		conn = c
	}

	c := &Client{conn: conn}

	msg, err := wire.Decode(conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("reading welcome: %w", err)
	}

	switch m := msg.(type) {
	case *wire.Welcome:
		c.welcome = *m
	case *wire.Error:
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %s", ErrRejected, m.Message)
	default:
		_ = conn.Close()
		return nil, fmt.Errorf("%w: got %s", ErrNoWelcome, msg.Type())
	}

	return c, nil
}

func (c *Client) Welcome() wire.Welcome {
	return c.welcome
}

func (c *Client) Id() int {
	return c.welcome.ClientID
}

func (c *Client) Join(name string) error {
	return c.Send(&wire.Join{Name: name})
}

func (c *Client) Steer(dx, dy int) error {
	return c.Send(&wire.Direction{Direction: wire.Point{X: dx, Y: dy}})
}

func (c *Client) Send(m wire.Message) error {
	frame, err := wire.Encode(m)
	if err != nil {
		return err
	}

	c.wmu.Lock()
	defer c.wmu.Unlock()
	_, err = c.conn.Write(frame)
	return err
}

// Next blocks for the next message from the server.
func (c *Client) Next() (wire.Message, error) {
	return wire.Decode(c.conn)
}

// NextState skips anything that is not a state message.
func (c *Client) NextState() (*wire.State, error) {
	for {
		msg, err := c.Next()
		if err != nil {
			return nil, err
		}
		switch m := msg.(type) {
		case *wire.State:
			return m, nil
		case *wire.Error:
			return nil, fmt.Errorf("%w: %s", ErrRejected, m.Message)
		}
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}
