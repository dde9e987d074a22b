package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

const minTickInterval = 20 * time.Millisecond

// LevelPreset is a named difficulty: tick period and obstacle count.
type LevelPreset struct {
	Name         string
	TickInterval time.Duration
	Obstacles    int
}

var levels = map[int]LevelPreset{
	1: {Name: "beginner", TickInterval: 200 * time.Millisecond, Obstacles: 3},
	2: {Name: "intermediate", TickInterval: 150 * time.Millisecond, Obstacles: 6},
	3: {Name: "expert", TickInterval: 100 * time.Millisecond, Obstacles: 10},
}

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Level        int              `json:"level"`
	World        WorldConfig      `json:"world"`
	Listeners    []ListenerConfig `json:"listeners"`
	Sessions     SessionsConfig   `json:"sessions"`
	Nats         NatsConfig       `json:"nats"`
	Log          LogConfig        `json:"log"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < minTickInterval {
			el.Add(fmt.Errorf("tick_interval must be at least %s", minTickInterval))
		}
		if c.Level != 0 {
			el.Add(fmt.Errorf("set either tick_interval or level, not both"))
		}
	}

	if _, ok := levels[c.Level]; c.Level != 0 && !ok {
		el.Add(fmt.Errorf("level must be 1, 2 or 3"))
	}

	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.World.validate())
	el.Add(c.Sessions.validate())
	el.Add(c.Nats.validate())
	el.Add(c.Log.validate())

	return el.Err()
}

// tickLength resolves the simulation period from tick_interval or the level.
func (c *Config) tickLength() time.Duration {
	if p, ok := levels[c.Level]; ok {
		return p.TickInterval
	}
	if d, err := time.ParseDuration(c.TickInterval); err == nil {
		return d
	}
	return 100 * time.Millisecond
}

// obstacleCount is the level's count unless the world sets one itself.
func (c *Config) obstacleCount() *int {
	if c.World.Obstacles != nil {
		return c.World.Obstacles
	}
	if p, ok := levels[c.Level]; ok {
		n := p.Obstacles
		return &n
	}
	return nil
}
