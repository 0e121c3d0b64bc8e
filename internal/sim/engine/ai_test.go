package engine

import (
	"testing"

	"dinerline.ai/internal/sim/level"
	"dinerline.ai/internal/sim/model"
)

func TestMoveCustomer_WalksToTableAndSits(t *testing.T) {
	e, _ := startEngine(t, testConfig(5))
	clearTables(e)
	e.lv.Grid.Set(10, 10, level.Table)
	c := &model.Customer{Pos: model.Point{X: 5, Y: 10}, Patience: 100, Wants: model.FoodA}
	setCustomers(e, c)

	for i := 0; i < 3; i++ {
		e.moveCustomer(c)
		if c.Seated {
			t.Fatalf("seated early at %v", c.Pos)
		}
	}
	e.moveCustomer(c)
	if c.Pos != (model.Point{X: 9, Y: 10}) || !c.Seated {
		t.Fatalf("customer=%+v", c)
	}
	e.moveCustomer(c)
	if c.Pos != (model.Point{X: 9, Y: 10}) {
		t.Fatalf("seated customer moved")
	}
}

func TestMoveCustomer_XBeforeYAndSkipsBlockedAxis(t *testing.T) {
	e, _ := startEngine(t, testConfig(5))
	clearTables(e)
	e.lv.Grid.Set(10, 10, level.Table)
	c := &model.Customer{Pos: model.Point{X: 5, Y: 8}, Patience: 100}
	setCustomers(e, c)

	e.moveCustomer(c)
	if c.Pos != (model.Point{X: 6, Y: 8}) {
		t.Fatalf("pos=%v want (6,8)", c.Pos)
	}
	e.lv.Grid.Set(7, 8, level.Wall)
	e.moveCustomer(c)
	if c.Pos != (model.Point{X: 6, Y: 9}) {
		t.Fatalf("pos=%v want (6,9)", c.Pos)
	}
}

func TestMoveCustomer_PrefersNearSideAndSkipsTakenTables(t *testing.T) {
	e, _ := startEngine(t, testConfig(5))
	clearTables(e)
	e.lv.Grid.Set(10, 4, level.Table)
	e.lv.Grid.Set(10, 10, level.Table)
	sitter := &model.Customer{Pos: model.Point{X: 11, Y: 4}, Seated: true}
	c := &model.Customer{Pos: model.Point{X: 20, Y: 10}}
	setCustomers(e, sitter, c)

	seat, ok := e.findSeat(c)
	if !ok || seat != (model.Point{X: 11, Y: 10}) {
		t.Fatalf("seat=%v ok=%v want (11,10)", seat, ok)
	}
}

func TestMoveCustomer_RandomWalkKeepsAwayFromPlayer(t *testing.T) {
	e, _ := startEngine(t, testConfig(5))
	clearTables(e)
	c := &model.Customer{Pos: model.Point{X: 3, Y: 5}}
	setCustomers(e, c)
	for i := 0; i < 30; i++ {
		e.moveCustomer(c)
	}
	if c.Pos != (model.Point{X: 3, Y: 5}) {
		t.Fatalf("customer walked within reach of the player: %v", c.Pos)
	}
}

func TestMoveCustomer_RandomWalkInOpenFloor(t *testing.T) {
	e, _ := startEngine(t, testConfig(5))
	clearTables(e)
	start := model.Point{X: 20, Y: 10}
	c := &model.Customer{Pos: start}
	other := &model.Customer{Pos: model.Point{X: 25, Y: 3}}
	setCustomers(e, c, other)

	prev := c.Pos
	for i := 0; i < 5; i++ {
		e.moveCustomer(c)
		dx, dy := c.Pos.X-prev.X, c.Pos.Y-prev.Y
		if dx*dx+dy*dy != 1 {
			t.Fatalf("step %d: %v -> %v", i, prev, c.Pos)
		}
		if !e.lv.Grid.AtPoint(c.Pos).Walkable() {
			t.Fatalf("customer on %v", e.lv.Grid.AtPoint(c.Pos))
		}
		prev = c.Pos
	}
}

func TestMoveCustomer_FedDoesNotMove(t *testing.T) {
	e, _ := startEngine(t, testConfig(5))
	c := &model.Customer{Pos: model.Point{X: 20, Y: 10}, Fed: true}
	setCustomers(e, c)
	e.moveCustomer(c)
	if c.Pos != (model.Point{X: 20, Y: 10}) {
		t.Fatalf("fed customer moved")
	}
}
