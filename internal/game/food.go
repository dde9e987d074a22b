package game

import (
	"fmt"
	"math/rand/v2"
)

// MaxPlacementAttempts bounds the rejection sampling in PlaceFood.
const MaxPlacementAttempts = 4096

type FoodKind int

const (
	Apple FoodKind = iota
	Mushroom
)

func (k FoodKind) Points() int {
	switch k {
	case Mushroom:
		return 15
	default:
		return 10
	}
}

func (k FoodKind) String() string {
	switch k {
	case Mushroom:
		return "mushroom"
	default:
		return "apple"
	}
}

// Food is an item on the board. A stale item could not be moved after it was
// eaten; it is not edible until a later tick finds it a new cell.
type Food struct {
	Kind     FoodKind
	Position Point
	stale    bool
}

// PlaceFood samples uniformly random cells until it finds one that is not an
// obstacle, not part of any snake and not holding other food.
func PlaceFood(rng *rand.Rand, size int, players map[int]*Player, obstacles map[Point]struct{}, food []Point) (Point, error) {
	for range MaxPlacementAttempts {
		p := Point{X: rng.IntN(size), Y: rng.IntN(size)}

		if _, ok := obstacles[p]; ok {
			continue
		}
		if contains(food, p) {
			continue
		}
		if occupiedBySnake(players, p) {
			continue
		}
		return p, nil
	}
	return Point{}, fmt.Errorf("placing food after %d attempts: %w", MaxPlacementAttempts, ErrWorldFull)
}

func occupiedBySnake(players map[int]*Player, p Point) bool {
	for _, pl := range players {
		if contains(pl.Body, p) {
			return true
		}
	}
	return false
}
