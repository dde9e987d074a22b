package game

import "fmt"

const (
	// SpawnLength is the body length of a freshly spawned snake.
	SpawnLength = 3

	// ReservedSpawnSlots is how many player ids get their spawn cells kept
	// clear of obstacles when a world is generated.
	ReservedSpawnSlots = 8

	spawnColumn = 6
	spawnRow    = 9
)

// Spawn lays out a starting snake for id on a size x size grid. The first
// candidate head for id is (6, 9+2*id); from there cells are tried in row-major
// order until the whole body fits without wrapping and without touching a cell
// for which blocked returns true. The snake heads away from its nearest wall.
func Spawn(id, size int, blocked func(Point) bool) ([]Point, Point, error) {
	cells := size * size
	start := mod(spawnRow+2*id, size)*size + mod(spawnColumn, size)

	for i := range cells {
		c := mod(start+i, cells)
		head := Point{X: c % size, Y: c / size}
		dir := awayFromNearestWall(head, size)

		body := make([]Point, SpawnLength)
		ok := true
		for j := range body {
			body[j] = head.Sub(dir.Scale(j))
			if !body[j].In(size) || (blocked != nil && blocked(body[j])) {
				ok = false
				break
			}
		}
		if ok {
			return body, dir, nil
		}
	}

	return nil, Point{}, fmt.Errorf("spawning player %d: %w", id, ErrWorldFull)
}

// awayFromNearestWall picks the heading that points away from the closest
// edge. Ties go left, right, top, bottom.
func awayFromNearestWall(p Point, size int) Point {
	best, dir := p.X, Right
	if d := size - 1 - p.X; d < best {
		best, dir = d, Left
	}
	if d := p.Y; d < best {
		best, dir = d, Down
	}
	if d := size - 1 - p.Y; d < best {
		dir = Up
	}
	return dir
}

// reservedSpawnCells returns the cells the first n ids would spawn on in an
// empty world.
func reservedSpawnCells(size, n int) map[Point]struct{} {
	reserved := map[Point]struct{}{}
	blocked := func(p Point) bool {
		_, ok := reserved[p]
		return ok
	}

	for id := range n {
		body, _, err := Spawn(id, size, blocked)
		if err != nil {
			break
		}
		for _, c := range body {
			reserved[c] = struct{}{}
		}
	}
	return reserved
}
