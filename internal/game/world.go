package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultGridSize      = 20
	DefaultObstacleCount = 8
	MinGridSize          = 8
)

// World is the single source of truth for all mutable game state. Every
// method takes the world lock; nothing outside this package touches a Player
// directly.
type World struct {
	mu sync.Mutex

	id        string
	size      int
	mode      Mode
	rng       *rand.Rand
	tick      uint64
	players   map[int]*Player
	food      [2]*Food
	obstacles map[Point]struct{}
	events    []Event

	obstacleCount  int
	fixedObstacles []Point
}

type WorldOpt func(*World)

func WithGridSize(size int) WorldOpt {
	return func(w *World) {
		w.size = size
	}
}

func WithMode(m Mode) WorldOpt {
	return func(w *World) {
		w.mode = m
	}
}

// WithObstacleCount sets how many random obstacles are generated.
func WithObstacleCount(n int) WorldOpt {
	return func(w *World) {
		w.obstacleCount = n
	}
}

// WithObstacles uses a fixed obstacle layout instead of random generation.
func WithObstacles(cells []Point) WorldOpt {
	return func(w *World) {
		w.fixedObstacles = cells
	}
}

// WithSeed makes obstacle and food placement reproducible.
func WithSeed(seed uint64) WorldOpt {
	return func(w *World) {
		w.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewWorld builds the board, its obstacles and both food items.
func NewWorld(opts ...WorldOpt) (*World, error) {
	w := &World{
		id:            uuid.NewString(),
		size:          DefaultGridSize,
		mode:          ModeMultiplayer,
		players:       map[int]*Player{},
		obstacles:     map[Point]struct{}{},
		obstacleCount: DefaultObstacleCount,
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.size < MinGridSize {
		return nil, fmt.Errorf("grid size %d is smaller than %d", w.size, MinGridSize)
	}
	if w.rng == nil {
		now := uint64(time.Now().UnixNano())
		w.rng = rand.New(rand.NewPCG(now, now>>1))
	}

	reserved := reservedSpawnCells(w.size, ReservedSpawnSlots)
	if w.fixedObstacles != nil {
		for _, c := range w.fixedObstacles {
			if !c.In(w.size) {
				return nil, fmt.Errorf("obstacle %v is outside the %dx%d grid", c, w.size, w.size)
			}
			if _, ok := reserved[c]; ok {
				return nil, fmt.Errorf("obstacle %v overlaps a spawn cell", c)
			}
			w.obstacles[c] = struct{}{}
		}
	} else {
		err := w.generateObstacles(reserved)
		if err != nil {
			return nil, err
		}
	}

	for i, kind := range []FoodKind{Apple, Mushroom} {
		pos, err := PlaceFood(w.rng, w.size, w.players, w.obstacles, w.foodPositions(-1))
		if err != nil {
			return nil, fmt.Errorf("placing %s: %w", kind, err)
		}
		w.food[i] = &Food{Kind: kind, Position: pos}
	}

	return w, nil
}

func (w *World) generateObstacles(reserved map[Point]struct{}) error {
	free := w.size*w.size - len(reserved)
	if w.obstacleCount < 0 || w.obstacleCount > free/2 {
		return fmt.Errorf("obstacle count %d does not fit a %dx%d grid", w.obstacleCount, w.size, w.size)
	}

	for len(w.obstacles) < w.obstacleCount {
		p := Point{X: w.rng.IntN(w.size), Y: w.rng.IntN(w.size)}
		if _, ok := reserved[p]; ok {
			continue
		}
		w.obstacles[p] = struct{}{}
	}
	return nil
}

// Id returns the match identifier generated for this world.
func (w *World) Id() string {
	return w.id
}

// GridSize is immutable and safe to read without the lock.
func (w *World) GridSize() int {
	return w.size
}

func (w *World) Mode() Mode {
	return w.mode
}

// PlayerCount returns how many players have joined.
func (w *World) PlayerCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.players)
}

// JoinRequest carries the optional starting values a client may send.
type JoinRequest struct {
	Name      string
	Body      []Point
	Direction *Point
}

// Join creates or replaces the player record for id. A body that is empty,
// longer than SpawnLength or leaves the grid is ignored and the player is
// spawned normally. A direction pointing back into the neck is ignored too.
func (w *World) Join(id int, req JoinRequest) (Player, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p := &Player{
		Id:    id,
		Name:  NormalizeName(req.Name, id),
		Alive: true,
	}

	if validBody(req.Body, w.size) {
		p.Body = append([]Point(nil), req.Body...)
		p.Direction = Right
		if len(p.Body) > 1 {
			if d := p.Body[0].Sub(p.Body[1]); IsUnit(d) {
				p.Direction = d
			}
		}
	} else {
		body, dir, err := Spawn(id, w.size, w.blockedFor(id))
		if err != nil {
			return Player{}, err
		}
		p.Body, p.Direction = body, dir
	}

	if req.Direction != nil && IsUnit(*req.Direction) && !p.reverses(*req.Direction, w.size) {
		p.Direction = *req.Direction
	}

	_, rejoin := w.players[id]
	w.players[id] = p

	if !rejoin {
		w.events = append(w.events, Event{Kind: EventJoin, Tick: w.tick, PlayerId: id, Name: p.Name})
	}

	return p.clone(), nil
}

func validBody(body []Point, size int) bool {
	if len(body) == 0 || len(body) > SpawnLength {
		return false
	}
	for _, c := range body {
		if !c.In(size) {
			return false
		}
	}
	return true
}

// blockedFor reports cells a new snake for id may not occupy.
func (w *World) blockedFor(id int) func(Point) bool {
	return func(p Point) bool {
		if _, ok := w.obstacles[p]; ok {
			return true
		}
		for oid, o := range w.players {
			if oid != id && contains(o.Body, p) {
				return true
			}
		}
		return false
	}
}

// SetDirection queues d for the next tick. The exact reverse of the direction
// used by the last tick is dropped without error.
func (w *World) SetDirection(id int, d Point) error {
	if !IsUnit(d) {
		return fmt.Errorf("%w: got %v", ErrInvalidDirection, d)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.players[id]
	if !ok {
		return ErrPlayerNotFound
	}

	if d == p.Direction.Opposite() {
		return nil
	}
	p.pending = d
	p.hasPending = true
	return nil
}

// Remove deletes the player record for id.
func (w *World) Remove(id int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.players[id]
	if !ok {
		return ErrPlayerNotFound
	}
	delete(w.players, id)
	w.events = append(w.events, Event{Kind: EventLeave, Tick: w.tick, PlayerId: id, Name: p.Name, Score: p.Score})
	return nil
}

// Player returns a copy of the record for id.
func (w *World) Player(id int) (Player, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.players[id]
	if !ok {
		return Player{}, false
	}
	return p.clone(), true
}

func (w *World) foodPositions(skip int) []Point {
	var out []Point
	for i, f := range w.food {
		if f != nil && i != skip {
			out = append(out, f.Position)
		}
	}
	return out
}

func (w *World) sortedIds() []int {
	ids := make([]int, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
