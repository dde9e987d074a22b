package game

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxNameLength caps display names, in runes.
const MaxNameLength = 24

// Player is one snake and its owner's bookkeeping.
type Player struct {
	Id        int
	Name      string
	Body      []Point // head first
	Direction Point   // vector used by the most recent tick
	Score     int
	Alive     bool

	pending    Point
	hasPending bool
}

// Head returns the first body cell.
func (p *Player) Head() Point {
	return p.Body[0]
}

// reverses reports whether moving along d would put the head on the neck.
func (p *Player) reverses(d Point, size int) bool {
	return len(p.Body) > 1 && p.Head().Add(d).Wrap(size) == p.Body[1]
}

// clone returns a copy that shares no memory with p.
func (p *Player) clone() Player {
	c := *p
	c.Body = append([]Point(nil), p.Body...)
	return c
}

// NormalizeName turns a client supplied name into something safe to display.
// An empty result falls back to "Player <id>".
func NormalizeName(name string, id int) string {
	name = norm.NFKC.String(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || !unicode.IsPrint(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)

	if r := []rune(name); len(r) > MaxNameLength {
		name = strings.TrimSpace(string(r[:MaxNameLength]))
	}
	if name == "" {
		return DefaultName(id)
	}
	return name
}

func DefaultName(id int) string {
	return fmt.Sprintf("Player %d", id)
}
