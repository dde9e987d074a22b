package storage

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-snake/internal/game"
)

// Arena is a hand made obstacle layout.
//
//	{"version": 1, "id": "cross", "spec": {"name": "Cross", "grid_size": 20, "obstacles": [[10, 3], [10, 4]]}}
type Arena struct {
	Name      string   `json:"name"`
	GridSize  int      `json:"grid_size"`
	Obstacles [][2]int `json:"obstacles"`
}

func (a *Arena) Validate() error {
	if a == nil {
		return fmt.Errorf("spec must be set")
	}

	el := errors.NewErrorList()

	if a.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}

	if a.GridSize < game.MinGridSize {
		el.Add(fmt.Errorf("grid_size must be at least %d", game.MinGridSize))
	}

	seen := map[[2]int]struct{}{}
	for _, o := range a.Obstacles {
		if o[0] < 0 || o[0] >= a.GridSize || o[1] < 0 || o[1] >= a.GridSize {
			el.Add(fmt.Errorf("obstacle %v is outside the grid", o))
		}
		if _, ok := seen[o]; ok {
			el.Add(fmt.Errorf("obstacle %v is listed twice", o))
		}
		seen[o] = struct{}{}
	}

	return el.Err()
}

// Points returns the obstacle cells in game coordinates.
func (a *Arena) Points() []game.Point {
	out := make([]game.Point, len(a.Obstacles))
	for i, o := range a.Obstacles {
		out[i] = game.Point{X: o[0], Y: o[1]}
	}
	return out
}

// LoadArena reads every arena below path and returns the one named id.
func LoadArena(path, id string) (*Arena, error) {
	store, err := NewFileStore[*Arena](path)
	if err != nil {
		return nil, fmt.Errorf("loading arenas from %s: %w", path, err)
	}

	a, ok := store.Get(id)
	if !ok {
		return nil, fmt.Errorf("arena %q not found in %s", id, path)
	}
	return a, nil
}
