package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-snake/internal/game"
	"github.com/pixil98/go-snake/internal/storage"
)

type WorldConfig struct {
	GridSize  int       `json:"grid_size"`
	Obstacles *int      `json:"obstacles,omitempty"`
	Mode      game.Mode `json:"mode"`
	Seed      *uint64   `json:"seed,omitempty"`
	ArenaPath string    `json:"arena_path"`
	Arena     string    `json:"arena"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()

	if c.GridSize != 0 && c.GridSize < game.MinGridSize {
		el.Add(fmt.Errorf("world.grid_size must be at least %d", game.MinGridSize))
	}

	if c.Obstacles != nil && *c.Obstacles < 0 {
		el.Add(fmt.Errorf("world.obstacles must not be negative"))
	}

	if (c.ArenaPath == "") != (c.Arena == "") {
		el.Add(fmt.Errorf("world.arena_path and world.arena must be set together"))
	}

	if c.Arena != "" && c.Obstacles != nil {
		el.Add(fmt.Errorf("world.obstacles cannot be combined with an arena"))
	}

	return el.Err()
}

func (c *WorldConfig) buildWorld(obstacles *int) (*game.World, error) {
	opts := []game.WorldOpt{game.WithMode(c.Mode)}

	size := c.GridSize
	if c.Arena != "" {
		arena, err := storage.LoadArena(c.ArenaPath, c.Arena)
		if err != nil {
			return nil, err
		}
		if size != 0 && size != arena.GridSize {
			return nil, fmt.Errorf("arena %q is %d wide but world.grid_size is %d", c.Arena, arena.GridSize, size)
		}
		size = arena.GridSize
		opts = append(opts, game.WithObstacles(arena.Points()))
	} else if obstacles != nil {
		opts = append(opts, game.WithObstacleCount(*obstacles))
	}

	if size != 0 {
		opts = append(opts, game.WithGridSize(size))
	}
	if c.Seed != nil {
		opts = append(opts, game.WithSeed(*c.Seed))
	}

	w, err := game.NewWorld(opts...)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	return w, nil
}
