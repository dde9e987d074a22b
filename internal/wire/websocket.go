package wire

import (
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebsocketStream carries the framed byte stream over binary websocket
// messages. Frame and message boundaries need not line up; text messages are
// skipped.
type WebsocketStream struct {
	ws *websocket.Conn
	r  io.Reader

	wmu sync.Mutex
}

func NewWebsocketStream(ws *websocket.Conn) *WebsocketStream {
	return &WebsocketStream{ws: ws}
}

func (s *WebsocketStream) Read(p []byte) (int, error) {
	for {
		if s.r == nil {
			mt, r, err := s.ws.NextReader()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return 0, io.EOF
				}
				return 0, err
			}
			if mt != websocket.BinaryMessage {
				continue
			}
			s.r = r
		}

		n, err := s.r.Read(p)
		if errors.Is(err, io.EOF) {
			s.r = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (s *WebsocketStream) Write(p []byte) (int, error) {
	s.wmu.Lock()
	defer s.wmu.Unlock()

	err := s.ws.WriteMessage(websocket.BinaryMessage, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *WebsocketStream) SetWriteDeadline(t time.Time) error {
	return s.ws.SetWriteDeadline(t)
}

// Close sends a close frame when it can and then drops the connection.
func (s *WebsocketStream) Close() error {
	s.wmu.Lock()
	_ = s.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	s.wmu.Unlock()

	return s.ws.Close()
}
