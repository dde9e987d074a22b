package driver

import (
	"strconv"

	"github.com/pixil98/go-snake/internal/game"
	"github.com/pixil98/go-snake/internal/wire"
)

// StateMessage converts a world snapshot into its wire form.
func StateMessage(snap game.Snapshot) *wire.State {
	gs := wire.GameState{
		Players:   make(map[string]wire.PlayerState, len(snap.Players)),
		Food1:     toWire(snap.Food[0].Position),
		Food2:     toWire(snap.Food[1].Position),
		Obstacles: toWireList(snap.Obstacles),
		GridSize:  snap.GridSize,
		Tick:      snap.Tick,
		MatchID:   snap.MatchId,
	}

	for _, p := range snap.Players {
		gs.Players[strconv.Itoa(p.Id)] = wire.PlayerState{
			Name:      p.Name,
			Body:      toWireList(p.Body),
			Score:     p.Score,
			Alive:     p.Alive,
			Direction: toWire(p.Direction),
		}
	}

	return &wire.State{GameState: gs}
}

func toWire(p game.Point) wire.Point {
	return wire.Point{X: p.X, Y: p.Y}
}

func toWireList(ps []game.Point) []wire.Point {
	out := make([]wire.Point, len(ps))
	for i, p := range ps {
		out[i] = toWire(p)
	}
	return out
}
