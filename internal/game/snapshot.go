package game

import "slices"

// Snapshot is a consistent copy of the world taken at the end of a tick.
type Snapshot struct {
	MatchId   string
	Tick      uint64
	GridSize  int
	Players   []Player // ascending id
	Food      [2]Food
	Obstacles []Point // row-major order
}

// Snapshot copies the current state without advancing it.
func (w *World) Snapshot() Snapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *World) snapshotLocked() Snapshot {
	s := Snapshot{
		MatchId:   w.id,
		Tick:      w.tick,
		GridSize:  w.size,
		Players:   make([]Player, 0, len(w.players)),
		Obstacles: make([]Point, 0, len(w.obstacles)),
	}

	for _, id := range w.sortedIds() {
		s.Players = append(s.Players, w.players[id].clone())
	}
	for i, f := range w.food {
		s.Food[i] = *f
	}
	for c := range w.obstacles {
		s.Obstacles = append(s.Obstacles, c)
	}
	slices.SortFunc(s.Obstacles, func(a, b Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})

	return s
}
