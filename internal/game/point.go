package game

// Point is a grid cell or a unit direction vector.
type Point struct {
	X int
	Y int
}

var (
	Up    = Point{X: 0, Y: -1}
	Down  = Point{X: 0, Y: 1}
	Left  = Point{X: -1, Y: 0}
	Right = Point{X: 1, Y: 0}
)

func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) Sub(d Point) Point {
	return Point{X: p.X - d.X, Y: p.Y - d.Y}
}

func (p Point) Scale(n int) Point {
	return Point{X: p.X * n, Y: p.Y * n}
}

// Opposite returns the reverse vector.
func (p Point) Opposite() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Wrap folds p onto a size x size torus.
func (p Point) Wrap(size int) Point {
	return Point{X: mod(p.X, size), Y: mod(p.Y, size)}
}

// In reports whether p lies inside a size x size grid.
func (p Point) In(size int) bool {
	return p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size
}

// IsUnit reports whether d is one of Up, Down, Left or Right.
func IsUnit(d Point) bool {
	return d == Up || d == Down || d == Left || d == Right
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func contains(cells []Point, p Point) bool {
	for _, c := range cells {
		if c == p {
			return true
		}
	}
	return false
}
