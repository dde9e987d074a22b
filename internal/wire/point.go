package wire

import (
	"encoding/json"
	"fmt"
)

// Point is a grid cell or a unit vector. On the wire it is a two element
// array [x,y].
type Point struct {
	X int
	Y int
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(b []byte) error {
	var xy []int
	if err := json.Unmarshal(b, &xy); err != nil {
		return fmt.Errorf("point must be an [x,y] array: %w", err)
	}
	if len(xy) != 2 {
		return fmt.Errorf("point must have 2 coordinates, got %d", len(xy))
	}
	p.X, p.Y = xy[0], xy[1]
	return nil
}
