package engine

import (
	"testing"

	"dinerline.ai/internal/sim/catalogs"
	"dinerline.ai/internal/sim/level"
	"dinerline.ai/internal/sim/model"
)

type recorder struct {
	snapshots []Snapshot
	scores    []int
}

func (r *recorder) OnSnapshot(s Snapshot)    { r.snapshots = append(r.snapshots, s) }
func (r *recorder) OnScoreChanged(score int) { r.scores = append(r.scores, score) }

type memTurnLog struct{ entries []TurnLogEntry }

func (m *memTurnLog) WriteTurn(e TurnLogEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

// westDoorRoom is a 35x18 walled room of floor with a door at (0,5).
func westDoorRoom() [][]int {
	const w, h = 35, 18
	rows := make([][]int, h)
	for y := range rows {
		rows[y] = make([]int, w)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				rows[y][x] = level.CodeWall
			} else {
				rows[y][x] = level.CodeFloor
			}
		}
	}
	rows[5][0] = level.CodeDoor
	return rows
}

func testConfig(seed int64) Config {
	c := DefaultConfig()
	c.Seed = seed
	return c
}

func regenConfig(seed int64, every, amount int) Config {
	c := testConfig(seed)
	c.StaminaRegenEveryTurns = every
	c.StaminaRegen = amount
	return c
}

// closedRoom is westDoorRoom with its door walled up.
func closedRoom() [][]int {
	rows := westDoorRoom()
	rows[5][0] = level.CodeWall
	return rows
}

func startEngine(t *testing.T, cfg Config, rows ...[][]int) (*Engine, *recorder) {
	t.Helper()
	if len(rows) == 0 {
		rows = append(rows, westDoorRoom())
	}
	defs := make([]catalogs.TemplateDef, 0, len(rows))
	for i, r := range rows {
		defs = append(defs, catalogs.TemplateDef{ID: string(rune('a' + i)), Rows: r})
	}
	e, err := New(cfg, catalogs.NewTemplateCatalog(defs...))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	rec := &recorder{}
	e.SetPresenter(rec)
	if err := e.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	return e, rec
}

func countTables(g level.Grid) int {
	n := 0
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) == level.Table {
				n++
			}
		}
	}
	return n
}

// clearTables turns every table back into floor.
func clearTables(e *Engine) {
	g := e.lv.Grid
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.At(x, y) == level.Table {
				g.Set(x, y, level.FloorA)
			}
		}
	}
}

func setCustomers(e *Engine, cs ...*model.Customer) {
	for i, c := range cs {
		c.Slot = i
	}
	e.customers = cs
	e.placed = len(cs)
	e.removed = 0
}
