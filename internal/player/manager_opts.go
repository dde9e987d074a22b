package player

import "time"

type SessionManagerOpt func(*SessionManager)

// WithMaxPlayers caps concurrent sessions. Zero means no limit.
func WithMaxPlayers(n int) SessionManagerOpt {
	return func(m *SessionManager) {
		m.maxPlayers = n
	}
}

// WithSendQueue sets how many outbound frames a session buffers. The queue
// always holds at least the welcome frame.
func WithSendQueue(n int) SessionManagerOpt {
	return func(m *SessionManager) {
		m.sendQueue = max(n, 1)
	}
}

func WithWriteTimeout(d time.Duration) SessionManagerOpt {
	return func(m *SessionManager) {
		m.writeTimeout = d
	}
}

func WithWelcome(t *WelcomeTemplate) SessionManagerOpt {
	return func(m *SessionManager) {
		m.welcome = t
	}
}
