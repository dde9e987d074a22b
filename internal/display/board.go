package display

import (
	"strconv"
	"strings"

	"github.com/pixil98/go-snake/internal/wire"
)

const (
	cellEmpty    = '.'
	cellObstacle = '#'
	cellApple    = '*'
	cellMushroom = '%'
	cellDead     = 'x'
)

// Board draws the grid one row per line. Heads are the last digit of the
// player id, bodies the matching lowercase letter, dead snakes x.
func Board(gs wire.GameState) string {
	size := gs.GridSize
	if size <= 0 {
		return ""
	}

	grid := make([][]rune, size)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(string(cellEmpty), size))
	}
	set := func(p wire.Point, r rune) {
		if p.X >= 0 && p.X < size && p.Y >= 0 && p.Y < size {
			grid[p.Y][p.X] = r
		}
	}

	for _, o := range gs.Obstacles {
		set(o, cellObstacle)
	}
	set(gs.Food1, cellApple)
	set(gs.Food2, cellMushroom)

	for _, key := range sortedKeys(gs.Players) {
		p := gs.Players[key]
		id, _ := strconv.Atoi(key)
		head, body := rune('0'+id%10), rune('a'+id%26)
		if !p.Alive {
			head, body = cellDead, cellDead
		}
		for i := len(p.Body) - 1; i >= 0; i-- {
			if i == 0 {
				set(p.Body[i], head)
			} else {
				set(p.Body[i], body)
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
