package game

import (
	"log/slog"
)

// Advance runs one simulation tick and returns the resulting snapshot along
// with every event recorded since the previous call.
//
// All new heads are computed before any collision is tested, and snake vs
// snake collisions are tested against the bodies as they were before the
// tick, so the outcome does not depend on the order players are visited in.
func (w *World) Advance() (Snapshot, []Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tick++
	w.retryStaleFood()

	ids := w.sortedIds()

	heads := make(map[int]Point, len(ids))
	for _, id := range ids {
		p := w.players[id]
		if !p.Alive {
			continue
		}
		if p.hasPending {
			if p.pending != p.Direction.Opposite() {
				p.Direction = p.pending
			}
			p.hasPending = false
		}
		heads[id] = p.Head().Add(p.Direction).Wrap(w.size)
	}

	before := make(map[int][]Point, len(heads))
	for id := range heads {
		before[id] = append([]Point(nil), w.players[id].Body...)
	}

	for _, id := range ids {
		head, moving := heads[id]
		if !moving {
			continue
		}
		p := w.players[id]
		p.Body = append([]Point{head}, p.Body...)

		if i := w.edibleFoodAt(head); i >= 0 {
			f := w.food[i]
			p.Score += f.Kind.Points()
			w.events = append(w.events, Event{
				Kind: EventEat, Tick: w.tick, PlayerId: id, Name: p.Name,
				Points: f.Kind.Points(), Food: f.Kind.String(), Score: p.Score,
			})
			w.relocateFood(i)
		} else {
			p.Body = p.Body[:len(p.Body)-1]
		}
	}

	causes := map[int]DeathCause{}
	for _, id := range ids {
		if _, moving := heads[id]; !moving {
			continue
		}
		if cause, dead := w.collision(id, before); dead {
			causes[id] = cause
		}
	}

	for _, id := range ids {
		cause, dead := causes[id]
		if !dead {
			continue
		}
		w.kill(w.players[id], cause)
	}

	events := w.events
	w.events = nil
	return w.snapshotLocked(), events
}

// collision tests, in order, obstacles, the snake's own body and the pre-tick
// bodies of every other snake that was alive when the tick started.
func (w *World) collision(id int, before map[int][]Point) (DeathCause, bool) {
	p := w.players[id]
	head := p.Head()

	if _, ok := w.obstacles[head]; ok {
		return CauseObstacle, true
	}
	if contains(p.Body[1:], head) {
		return CauseSelf, true
	}
	for oid, body := range before {
		if oid != id && contains(body, head) {
			return CausePlayer, true
		}
	}
	return "", false
}

func (w *World) kill(p *Player, cause DeathCause) {
	w.events = append(w.events, Event{
		Kind: EventDeath, Tick: w.tick, PlayerId: p.Id, Name: p.Name, Cause: cause, Score: p.Score,
	})

	if w.mode != ModeSolo {
		p.Alive = false
		p.hasPending = false
		return
	}

	body, dir, err := Spawn(p.Id, w.size, w.blockedFor(p.Id))
	if err != nil {
		// Nowhere to respawn; leave the snake dead like in multiplayer.
		slog.Warn("respawning solo player", "player", p.Id, "error", err)
		p.Alive = false
		return
	}
	p.Body, p.Direction = body, dir
	p.Score = 0
	p.hasPending = false
	w.events = append(w.events, Event{Kind: EventReset, Tick: w.tick, PlayerId: p.Id, Name: p.Name})
}

func (w *World) edibleFoodAt(c Point) int {
	for i, f := range w.food {
		if !f.stale && f.Position == c {
			return i
		}
	}
	return -1
}

// relocateFood moves food i to a new free cell. When none can be found the
// item stays where it is, inedible, and the next tick tries again.
func (w *World) relocateFood(i int) {
	f := w.food[i]
	pos, err := PlaceFood(w.rng, w.size, w.players, w.obstacles, w.foodPositions(i))
	if err != nil {
		slog.Warn("relocating food", "food", f.Kind.String(), "tick", w.tick, "error", err)
		f.stale = true
		return
	}
	f.Position = pos
	f.stale = false
}

func (w *World) retryStaleFood() {
	for i, f := range w.food {
		if f.stale {
			w.relocateFood(i)
		}
	}
}
