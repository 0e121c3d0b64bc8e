package main

import (
	"math/rand"

	"dinerline.ai/internal/protocol"
	"dinerline.ai/internal/sim/level"
	"dinerline.ai/internal/sim/logic/mathx"
	"dinerline.ai/internal/sim/model"
)

type step struct {
	dir    string
	dx, dy int
}

var steps = [4]step{{"U", 0, -1}, {"D", 0, 1}, {"L", -1, 0}, {"R", 1, 0}}

// brain fetches the food someone is waiting for and walks it over.
type brain struct{ rng *rand.Rand }

func newBrain(rng *rand.Rand) *brain { return &brain{rng: rng} }

func (b *brain) next(s *protocol.SnapshotMsg) string {
	pos := s.Player.Pos
	if target, ok := b.target(s); ok {
		for _, st := range towards(pos, target) {
			nx, ny := pos[0]+st.dx, pos[1]+st.dy
			if [2]int{nx, ny} == target || walkable(s.Tiles, nx, ny) && !occupied(s, nx, ny) {
				return st.dir
			}
		}
	}
	return steps[b.rng.Intn(len(steps))].dir
}

func (b *brain) target(s *protocol.SnapshotMsg) ([2]int, bool) {
	if model.ParseFoodKind(s.Player.Carrying) != model.FoodNone {
		for _, c := range s.Customers {
			if !c.Fed && c.Wants == s.Player.Carrying {
				return c.Pos, true
			}
		}
	}
	wanted := map[byte]bool{}
	for _, c := range s.Customers {
		if c.Fed {
			continue
		}
		if t, ok := level.FoodTile(model.ParseFoodKind(c.Wants)); ok {
			wanted[byte(t.Rune())] = true
		}
	}
	best, bestDist, found := [2]int{}, 0, false
	for y, row := range s.Tiles {
		for x := 0; x < len(row); x++ {
			if !wanted[row[x]] {
				continue
			}
			d := mathx.AbsInt(x-s.Player.Pos[0]) + mathx.AbsInt(y-s.Player.Pos[1])
			if !found || d < bestDist {
				best, bestDist, found = [2]int{x, y}, d, true
			}
		}
	}
	return best, found
}

func towards(from, to [2]int) []step {
	var out []step
	dx, dy := to[0]-from[0], to[1]-from[1]
	if dx > 0 {
		out = append(out, steps[3])
	} else if dx < 0 {
		out = append(out, steps[2])
	}
	if dy > 0 {
		out = append(out, steps[1])
	} else if dy < 0 {
		out = append(out, steps[0])
	}
	return out
}

func walkable(tiles []string, x, y int) bool {
	if y < 0 || y >= len(tiles) || x < 0 || x >= len(tiles[y]) {
		return false
	}
	g := tiles[y][x]
	return g != '#' && g != 'T'
}

func occupied(s *protocol.SnapshotMsg, x, y int) bool {
	for _, c := range s.Customers {
		if c.Pos == [2]int{x, y} {
			return true
		}
	}
	return false
}

