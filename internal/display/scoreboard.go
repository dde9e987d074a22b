package display

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"
	"github.com/pixil98/go-snake/internal/wire"
)

const (
	nameWidth  = 16
	scoreWidth = 6
)

// Scoreboard lists players by score, highest first, ties by id.
func Scoreboard(gs wire.GameState) string {
	keys := sortedKeys(gs.Players)
	slices.SortStableFunc(keys, func(a, b string) int {
		return gs.Players[b].Score - gs.Players[a].Score
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "tick %d\n", gs.Tick)
	for _, key := range keys {
		p := gs.Players[key]
		name := truncate.StringWithTail(p.Name, nameWidth, "~")

		status := "alive"
		if !p.Alive {
			status = "dead"
		}

		fmt.Fprintf(&sb, "%s %s %s %s\n",
			padding.String(key, 3),
			padding.String(name, nameWidth),
			padding.String(strconv.Itoa(p.Score), scoreWidth),
			status,
		)
	}
	return sb.String()
}

// sortedKeys orders player keys numerically.
func sortedKeys(players map[string]wire.PlayerState) []string {
	keys := make([]string, 0, len(players))
	for k := range players {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ai, aerr := strconv.Atoi(a)
		bi, berr := strconv.Atoi(b)
		if aerr != nil || berr != nil {
			return strings.Compare(a, b)
		}
		return ai - bi
	})
	return keys
}
