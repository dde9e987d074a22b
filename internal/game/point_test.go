package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestPoint_Wrap(t *testing.T) {
	tests := map[string]struct {
		p   Point
		exp Point
	}{
		"inside":       {p: Point{3, 4}, exp: Point{3, 4}},
		"right edge":   {p: Point{20, 4}, exp: Point{0, 4}},
		"left edge":    {p: Point{-1, 4}, exp: Point{19, 4}},
		"top edge":     {p: Point{5, -1}, exp: Point{5, 19}},
		"bottom edge":  {p: Point{5, 20}, exp: Point{5, 0}},
		"far negative": {p: Point{-41, -21}, exp: Point{19, 19}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "wrapped", tt.p.Wrap(20), tt.exp)
		})
	}
}

func TestIsUnit(t *testing.T) {
	tests := map[string]struct {
		d   Point
		exp bool
	}{
		"up":       {d: Up, exp: true},
		"down":     {d: Down, exp: true},
		"left":     {d: Left, exp: true},
		"right":    {d: Right, exp: true},
		"zero":     {d: Point{}, exp: false},
		"diagonal": {d: Point{1, 1}, exp: false},
		"too long": {d: Point{2, 0}, exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "is unit", IsUnit(tt.d), tt.exp)
		})
	}
}
