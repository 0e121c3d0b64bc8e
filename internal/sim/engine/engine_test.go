package engine

import (
	"errors"
	"testing"

	"dinerline.ai/internal/sim/catalogs"
	"dinerline.ai/internal/sim/level"
	"dinerline.ai/internal/sim/model"
)

func TestNew_EmptyCatalog(t *testing.T) {
	if _, err := New(Config{}, catalogs.NewTemplateCatalog()); !errors.Is(err, level.ErrEmptyCatalog) {
		t.Fatalf("expected ErrEmptyCatalog, got %v", err)
	}
}

func TestNew_ConfigDefects(t *testing.T) {
	cat := catalogs.NewTemplateCatalog(catalogs.TemplateDef{ID: "a", Rows: westDoorRoom()})
	for _, cfg := range []Config{{Width: -1}, {Height: -18}} {
		if _, err := New(cfg, cat); !errors.Is(err, level.ErrBadDimensions) {
			t.Fatalf("%+v: expected ErrBadDimensions, got %v", cfg, err)
		}
	}
	bad := testConfig(1)
	bad.PatienceDecay = -1
	if _, err := New(bad, cat); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("expected ErrBadConfig, got %v", err)
	}
	bad = testConfig(1)
	bad.TableChancePercent = 101
	if _, err := New(bad, cat); !errors.Is(err, ErrBadConfig) {
		t.Fatalf("expected ErrBadConfig, got %v", err)
	}
}

func TestNew_ZeroKeepsMeaning(t *testing.T) {
	cat := catalogs.NewTemplateCatalog(catalogs.TemplateDef{ID: "a", Rows: westDoorRoom()})
	cfg := testConfig(1)
	cfg.Width, cfg.Height, cfg.CleanupEveryTurns = 0, 0, 0
	cfg.TableChancePercent, cfg.PatienceDecay, cfg.StaminaRegen = 0, 0, 0
	e, err := New(cfg, cat)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	got := e.Config()
	if got.Width != 35 || got.Height != 18 || got.CleanupEveryTurns != 10 {
		t.Fatalf("unset size/cadence not defaulted: %+v", got)
	}
	if got.TableChancePercent != 0 || got.PatienceDecay != 0 || got.StaminaRegen != 0 {
		t.Fatalf("zeros replaced: %+v", got)
	}
}

func TestStart_ZeroTableChancePlacesNoTables(t *testing.T) {
	cfg := testConfig(1)
	cfg.TableChancePercent = 0
	e, _ := startEngine(t, cfg)
	if n := countTables(e.lv.Grid); n != 0 {
		t.Fatalf("tables=%d want 0", n)
	}
}

func TestStart_NoDoorIsConfigDefect(t *testing.T) {
	e, err := New(Config{}, catalogs.NewTemplateCatalog(catalogs.TemplateDef{ID: "closed", Rows: closedRoom()}))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := e.Start(); !errors.Is(err, level.ErrNoDoor) {
		t.Fatalf("expected ErrNoDoor, got %v", err)
	}
	if err := e.AdvanceTurn(); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestStart_PlacesEntitiesAndEmitsOneSnapshot(t *testing.T) {
	e, rec := startEngine(t, testConfig(7))
	if len(rec.snapshots) != 1 {
		t.Fatalf("snapshots=%d want 1", len(rec.snapshots))
	}
	s := rec.snapshots[0]
	if s.Turn != 0 || s.Level != 0 || s.Score != 0 {
		t.Fatalf("unexpected header: %+v", s)
	}
	want := model.Point{X: 1, Y: 5}
	if s.Player.Pos != want || s.Player.Stamina != 100 || s.Player.Carrying != model.FoodNone {
		t.Fatalf("player=%+v", s.Player)
	}
	if len(s.Customers) != level.CustomerCount(0) {
		t.Fatalf("customers=%d want %d", len(s.Customers), level.CustomerCount(0))
	}
	for _, c := range s.Customers {
		if c.Patience != 100 || c.Fed || c.Seated {
			t.Fatalf("customer=%+v", c)
		}
		if !s.Grid.AtPoint(c.Pos).Walkable() {
			t.Fatalf("customer on %v", s.Grid.AtPoint(c.Pos))
		}
	}
	if err := e.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second start: %v", err)
	}
}

func TestMovePlayer_CorridorAndWall(t *testing.T) {
	e, rec := startEngine(t, testConfig(1))
	clearTables(e)
	setCustomers(e)

	base := len(rec.snapshots)
	for i := 0; i < 3; i++ {
		e.MovePlayer(model.Right)
		if len(rec.snapshots) != base+i {
			t.Fatalf("MovePlayer emitted a snapshot")
		}
		if err := e.AdvanceTurn(); err != nil {
			t.Fatalf("advance: %v", err)
		}
		if len(rec.snapshots) != base+i+1 {
			t.Fatalf("snapshots=%d want %d", len(rec.snapshots), base+i+1)
		}
	}
	if got := e.Player().Pos; got != (model.Point{X: 4, Y: 5}) {
		t.Fatalf("pos=%v want (4,5)", got)
	}
	if got := e.Player().Stamina; got != 97 {
		t.Fatalf("stamina=%d want 97", got)
	}

	e.player.Pos = model.Point{X: 4, Y: 1}
	before := len(rec.snapshots)
	e.MovePlayer(model.Up)
	if e.Player().Pos != (model.Point{X: 4, Y: 1}) || e.Player().Stamina != 97 {
		t.Fatalf("walked into wall: %+v", e.Player())
	}
	if len(rec.snapshots) != before {
		t.Fatalf("blocked move emitted a snapshot")
	}
}

func TestMovePlayer_TablesBlock(t *testing.T) {
	e, _ := startEngine(t, testConfig(1))
	clearTables(e)
	setCustomers(e)
	e.lv.Grid.Set(2, 5, level.Table)
	e.MovePlayer(model.Right)
	if e.Player().Pos != (model.Point{X: 1, Y: 5}) {
		t.Fatalf("walked onto table: %v", e.Player().Pos)
	}
}

func TestMovePlayer_PicksUpAndSwapsFood(t *testing.T) {
	rows := westDoorRoom()
	rows[5][3] = level.CodeFoodA
	rows[5][4] = level.CodeFoodC
	e, _ := startEngine(t, testConfig(1), rows)
	clearTables(e)
	setCustomers(e)

	e.MovePlayer(model.Right)
	e.MovePlayer(model.Right)
	if got := e.Player().Carrying; got != model.FoodA {
		t.Fatalf("carrying=%v want FOOD_A", got)
	}
	e.MovePlayer(model.Right)
	if got := e.Player().Carrying; got != model.FoodC {
		t.Fatalf("carrying=%v want FOOD_C", got)
	}
	e.MovePlayer(model.Right)
	if got := e.Player().Carrying; got != model.FoodC {
		t.Fatalf("floor cleared food: %v", got)
	}
}

func TestMovePlayer_NoStamina(t *testing.T) {
	e, _ := startEngine(t, testConfig(1))
	clearTables(e)
	setCustomers(e)
	e.player.Stamina = 0
	e.MovePlayer(model.Right)
	if e.Player().Pos != (model.Point{X: 1, Y: 5}) {
		t.Fatalf("moved without stamina")
	}
}

func TestDeliverFood_ScoresOnceWithPatience(t *testing.T) {
	e, rec := startEngine(t, testConfig(1))
	clearTables(e)
	c := &model.Customer{Pos: model.Point{X: 3, Y: 5}, Patience: 42, Wants: model.FoodA}
	setCustomers(e, c)
	e.player.Pos = model.Point{X: 2, Y: 5}
	e.player.Carrying = model.FoodA

	e.MovePlayer(model.Right)
	if !c.Fed || e.Score() != 42 {
		t.Fatalf("fed=%v score=%d", c.Fed, e.Score())
	}
	if e.Player().Pos != (model.Point{X: 2, Y: 5}) {
		t.Fatalf("player stepped onto customer")
	}
	if e.Player().Carrying != model.FoodNone {
		t.Fatalf("food not consumed")
	}
	if len(rec.scores) != 1 || rec.scores[0] != 42 {
		t.Fatalf("score notifications=%v", rec.scores)
	}

	e.player.Carrying = model.FoodA
	e.MovePlayer(model.Right)
	if e.Score() != 42 || len(rec.scores) != 1 {
		t.Fatalf("second delivery scored: score=%d notes=%v", e.Score(), rec.scores)
	}
	if e.Player().Carrying != model.FoodA {
		t.Fatalf("food consumed by fed customer")
	}
}

func TestDeliverFood_WrongFoodOrEmptyHands(t *testing.T) {
	e, rec := startEngine(t, testConfig(1))
	clearTables(e)
	c := &model.Customer{Pos: model.Point{X: 3, Y: 5}, Patience: 50, Wants: model.FoodB}
	setCustomers(e, c)
	e.player.Pos = model.Point{X: 2, Y: 5}

	e.MovePlayer(model.Right)
	e.player.Carrying = model.FoodA
	e.MovePlayer(model.Right)
	if c.Fed || e.Score() != 0 || len(rec.scores) != 0 {
		t.Fatalf("wrong delivery accepted")
	}
	if e.Player().Carrying != model.FoodA || e.Player().Pos != (model.Point{X: 2, Y: 5}) {
		t.Fatalf("player changed: %+v", e.Player())
	}
}

func TestSnapshot_IsDeepCopy(t *testing.T) {
	e, rec := startEngine(t, testConfig(3))
	s := rec.snapshots[0]
	s.Grid.Set(0, 0, level.FloorA)
	if len(s.Customers) > 0 {
		s.Customers[0].Patience = -5
	}
	if e.lv.Grid.At(0, 0) != level.Wall {
		t.Fatalf("snapshot grid aliases engine grid")
	}
	for _, c := range e.Customers() {
		if c.Patience == -5 {
			t.Fatalf("snapshot customers alias roster")
		}
	}
}
