package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-snake/internal/player"
)

type SessionsConfig struct {
	MaxPlayers     int    `json:"max_players"`
	SendQueue      int    `json:"send_queue"`
	WriteTimeout   string `json:"write_timeout"`
	WelcomeMessage string `json:"welcome_message"`
}

func (c *SessionsConfig) validate() error {
	el := errors.NewErrorList()

	if c.MaxPlayers < 0 {
		el.Add(fmt.Errorf("sessions.max_players must not be negative"))
	}

	if c.SendQueue < 0 {
		el.Add(fmt.Errorf("sessions.send_queue must not be negative"))
	}

	if c.WriteTimeout != "" {
		_, err := time.ParseDuration(c.WriteTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing sessions.write_timeout: %w", err))
		}
	}

	if c.WelcomeMessage != "" {
		_, err := player.NewWelcomeTemplate(c.WelcomeMessage)
		if err != nil {
			el.Add(fmt.Errorf("sessions.welcome_message: %w", err))
		}
	}

	return el.Err()
}

func (c *SessionsConfig) buildSessionManager(world player.World) (*player.SessionManager, error) {
	opts := []player.SessionManagerOpt{player.WithMaxPlayers(c.MaxPlayers)}

	if c.SendQueue > 0 {
		opts = append(opts, player.WithSendQueue(c.SendQueue))
	}
	if c.WriteTimeout != "" {
		d, err := time.ParseDuration(c.WriteTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing write_timeout: %w", err)
		}
		opts = append(opts, player.WithWriteTimeout(d))
	}
	if c.WelcomeMessage != "" {
		t, err := player.NewWelcomeTemplate(c.WelcomeMessage)
		if err != nil {
			return nil, err
		}
		opts = append(opts, player.WithWelcome(t))
	}

	return player.NewSessionManager(world, opts...), nil
}
