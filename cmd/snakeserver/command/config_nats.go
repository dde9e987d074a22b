package command

import (
	"fmt"
	"regexp"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-snake/internal/messaging"
)

var subjectTokenPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+(\.[a-zA-Z0-9_-]+)*$`)

type NatsConfig struct {
	Enabled       bool   `json:"enabled"`
	Host          string `json:"host"`
	Port          int    `json:"port"`
	StartTimeout  string `json:"start_timeout"`
	SubjectPrefix string `json:"subject_prefix"`
	MaxPayload    int32  `json:"max_payload"`
	ServerName    string `json:"server_name"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		_, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing start_timeout: %w", err))
		}
	}

	if n.MaxPayload < 0 {
		el.Add(fmt.Errorf("max_payload must not be negative"))
	}

	if n.SubjectPrefix != "" && !subjectTokenPattern.MatchString(n.SubjectPrefix) {
		el.Add(fmt.Errorf("subject_prefix %q is not a valid nats subject", n.SubjectPrefix))
	}

	return el.Err()
}

func (c *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if c.StartTimeout != "" {
		d, err := time.ParseDuration(c.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	opts = append(opts, messaging.WithListen(c.Host, c.Port))
	if c.MaxPayload > 0 {
		opts = append(opts, messaging.WithMaxPayload(c.MaxPayload))
	}
	if c.ServerName != "" {
		opts = append(opts, messaging.WithServerName(c.ServerName))
	}

	s, err := messaging.NewNatsServer(opts...)
	if err != nil {
		return nil, err
	}

	return s, nil
}
