package game

import "testing"

// newTestWorld returns a world with no obstacles and a fixed seed.
func newTestWorld(t *testing.T, opts ...WorldOpt) *World {
	t.Helper()
	opts = append([]WorldOpt{WithSeed(1), WithObstacles([]Point{})}, opts...)
	w, err := NewWorld(opts...)
	if err != nil {
		t.Fatalf("creating world: %v", err)
	}
	return w
}

// putPlayer places a hand built snake into w.
func putPlayer(w *World, id int, dir Point, body ...Point) *Player {
	p := &Player{Id: id, Name: DefaultName(id), Body: body, Direction: dir, Alive: true}
	w.players[id] = p
	return p
}

// parkFood moves both food items somewhere out of the way.
func parkFood(w *World, apple, mushroom Point) {
	w.food[0].Position = apple
	w.food[1].Position = mushroom
}
