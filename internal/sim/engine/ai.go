package engine

import (
	"dinerline.ai/internal/sim/level"
	"dinerline.ai/internal/sim/logic/mathx"
	"dinerline.ai/internal/sim/model"
)

// moveCustomer heads for the first free table, or wanders when none is free.
func (e *Engine) moveCustomer(c *model.Customer) {
	if !c.Waiting() {
		return
	}
	seat, ok := e.findSeat(c)
	if !ok {
		e.randomWalk(c)
		return
	}
	if c.Pos == seat {
		c.Seated = true
		return
	}

	// Single-axis greedy step, x before y; a blocked axis is skipped.
	var steps [2]model.Point
	n := 0
	if dx := mathx.Sign(seat.X - c.Pos.X); dx != 0 {
		steps[n] = model.Point{X: c.Pos.X + dx, Y: c.Pos.Y}
		n++
	}
	if dy := mathx.Sign(seat.Y - c.Pos.Y); dy != 0 {
		steps[n] = model.Point{X: c.Pos.X, Y: c.Pos.Y + dy}
		n++
	}
	for _, next := range steps[:n] {
		if e.canStep(c, next) {
			c.Pos = next
			break
		}
	}
	if c.Pos == seat {
		c.Seated = true
	}
}

// findSeat scans tables row-major for one with nobody else beside it and
// returns the walkable cell next to it, preferring the side facing c.
func (e *Engine) findSeat(c *model.Customer) (model.Point, bool) {
	g := e.lv.Grid
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) != level.Table {
				continue
			}
			left := model.Point{X: x - 1, Y: y}
			right := model.Point{X: x + 1, Y: y}
			if e.otherCustomerAt(c, left) || e.otherCustomerAt(c, right) {
				continue
			}
			sides := [2]model.Point{left, right}
			if c.Pos.X > x {
				sides = [2]model.Point{right, left}
			}
			for _, s := range sides {
				if g.AtPoint(s).Walkable() {
					return s, true
				}
			}
		}
	}
	return model.Point{}, false
}

func (e *Engine) randomWalk(c *model.Customer) {
	d := model.Directions[e.rng.Intn(len(model.Directions))]
	next := c.Pos.Add(d.Delta())
	if !e.canStep(c, next) {
		return
	}
	pp := e.player.Pos
	if mathx.TruncDist(next.X, next.Y, pp.X, pp.Y) <= e.cfg.ProximityRadius {
		return
	}
	c.Pos = next
}

// canStep is the customer collision check.
func (e *Engine) canStep(c *model.Customer, p model.Point) bool {
	if !e.lv.Grid.InBounds(p.X, p.Y) || !e.lv.Grid.AtPoint(p).Walkable() {
		return false
	}
	if p == e.player.Pos {
		return false
	}
	return !e.otherCustomerAt(c, p)
}

func (e *Engine) otherCustomerAt(c *model.Customer, p model.Point) bool {
	for _, o := range e.customers {
		if o != nil && o != c && o.Pos == p {
			return true
		}
	}
	return false
}
