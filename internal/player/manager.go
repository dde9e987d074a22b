package player

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/pixil98/go-snake/internal/game"
	"github.com/pixil98/go-snake/internal/wire"
)

const (
	DefaultSendQueue    = 32
	DefaultWriteTimeout = 2 * time.Second
)

// World is the part of the game a session drives.
type World interface {
	Join(id int, req game.JoinRequest) (game.Player, error)
	SetDirection(id int, d game.Point) error
	Remove(id int) error
	GridSize() int
	Mode() game.Mode
}

// SessionManager owns the set of live sessions. It is never locked while the
// world lock is held.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[int]*Session

	world        World
	welcome      *WelcomeTemplate
	maxPlayers   int
	sendQueue    int
	writeTimeout time.Duration
}

func NewSessionManager(world World, opts ...SessionManagerOpt) *SessionManager {
	m := &SessionManager{
		sessions:     map[int]*Session{},
		world:        world,
		welcome:      DefaultWelcome,
		sendQueue:    DefaultSendQueue,
		writeTimeout: DefaultWriteTimeout,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Start blocks until ctx is done and then closes every remaining session.
func (m *SessionManager) Start(ctx context.Context) error {
	<-ctx.Done()

	m.ForEach(func(s *Session) {
		s.Close()
	})
	return nil
}

// NewSession builds a session for a freshly accepted connection, queues its
// welcome frame and registers it. Nothing is written to conn until Run.
func (m *SessionManager) NewSession(id int, conn io.ReadWriteCloser) (*Session, error) {
	text, err := m.welcome.Render(WelcomeData{
		ClientID: id,
		GridSize: m.world.GridSize(),
		Mode:     m.world.Mode().String(),
		Players:  m.Len(),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering welcome: %w", err)
	}

	frame, err := wire.Encode(&wire.Welcome{ClientID: id, Message: text})
	if err != nil {
		return nil, fmt.Errorf("encoding welcome: %w", err)
	}

	s := &Session{
		id:           id,
		conn:         conn,
		world:        m.world,
		manager:      m,
		queue:        make(chan []byte, m.sendQueue),
		done:         make(chan struct{}),
		writeTimeout: m.writeTimeout,
	}
	s.queue <- frame

	err = m.Register(s)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Register adds s, refusing it once max players sessions are live.
func (m *SessionManager) Register(s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxPlayers > 0 && len(m.sessions) >= m.maxPlayers {
		return fmt.Errorf("%w: %d players connected", ErrServerFull, len(m.sessions))
	}
	m.sessions[s.id] = s
	return nil
}

func (m *SessionManager) Unregister(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *SessionManager) Get(id int) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ForEach calls fn for every session registered when it was called, in id
// order. The lock is released before fn runs so fn may unregister sessions.
func (m *SessionManager) ForEach(fn func(*Session)) {
	m.mu.RLock()
	list := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		list = append(list, s)
	}
	m.mu.RUnlock()

	slices.SortFunc(list, func(a, b *Session) int {
		return a.id - b.id
	})
	for _, s := range list {
		fn(s)
	}
}
