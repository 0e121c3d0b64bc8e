package engine

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"

	"dinerline.ai/internal/sim/level"
	"dinerline.ai/internal/sim/model"
)

var (
	ErrNotStarted     = errors.New("engine: not started")
	ErrAlreadyStarted = errors.New("engine: already started")
)

// Engine is the authoritative turn simulation. It owns the level, the player
// and the customer roster. It is not safe for concurrent use: one driver makes
// every call and each call finishes before the next begins.
type Engine struct {
	cfg Config
	gen level.Generator
	rng *rand.Rand
	log *log.Logger

	presenter  Presenter
	turnLogger TurnLogger

	started bool
	turn    uint64
	score   int

	lv        *level.Level
	player    model.Player
	customers []*model.Customer // nil slots are served customers

	// Per-level counters.
	placed  int
	removed int

	pendingMoves  []string
	pendingEvents []TurnEvent
}

func New(cfg Config, cat level.TemplateCatalog) (*Engine, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cat == nil || cat.Size() <= 0 {
		return nil, fmt.Errorf("engine: %w", level.ErrEmptyCatalog)
	}
	return &Engine{
		cfg: cfg,
		gen: level.Generator{
			Catalog:            cat,
			Width:              cfg.Width,
			Height:             cfg.Height,
			TableChancePercent: cfg.TableChancePercent,
			TablesPerCustomer:  cfg.TablesPerCustomer,
		},
		rng: rand.New(rand.NewSource(cfg.Seed)),
		log: log.New(io.Discard, "", 0),
	}, nil
}

func (e *Engine) SetPresenter(p Presenter)   { e.presenter = p }
func (e *Engine) SetTurnLogger(l TurnLogger) { e.turnLogger = l }

func (e *Engine) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	e.log = l
}

func (e *Engine) Config() Config { return e.cfg }

// Start generates level 0, places the entities and emits the first snapshot.
func (e *Engine) Start() error {
	if e.started {
		return ErrAlreadyStarted
	}
	lv, p, cs, err := e.buildLevel(0)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	e.installLevel(lv, p, cs)
	e.started = true
	e.emitSnapshot()
	return nil
}

func (e *Engine) buildLevel(n int) (*level.Level, model.Player, []*model.Customer, error) {
	lv, err := e.gen.Generate(n, e.rng)
	if err != nil {
		return nil, model.Player{}, nil, err
	}
	p, err := level.PlacePlayer(lv, e.cfg.PlayerStamina)
	if err != nil {
		return nil, model.Player{}, nil, err
	}
	cs := level.PlaceCustomers(lv, e.rng, e.cfg.CustomerPatience)
	return lv, p, cs, nil
}

func (e *Engine) installLevel(lv *level.Level, p model.Player, cs []*model.Customer) {
	e.lv = lv
	e.player = p
	e.customers = cs
	e.placed = len(cs)
	e.removed = 0
	e.pendingEvents = append(e.pendingEvents, TurnEvent{
		Type:          EventLevelStart,
		Level:         lv.Number,
		TemplateID:    lv.TemplateID,
		Difficulty:    lv.Difficulty,
		CustomerCount: lv.CustomerCount,
		Placed:        len(cs),
	})
	e.log.Printf("level %d: template=%d difficulty=%.3f customers=%d/%d pool=%d",
		lv.Number, lv.TemplateID, lv.Difficulty, len(cs), lv.CustomerCount, lv.SpawnPool.Len())
}

func (e *Engine) Started() bool { return e.started }
func (e *Engine) Turn() uint64  { return e.turn }
func (e *Engine) Score() int    { return e.score }

func (e *Engine) Level() int {
	if e.lv == nil {
		return 0
	}
	return e.lv.Number
}

func (e *Engine) Player() model.Player { return e.player }

// Customers returns copies of the occupied roster slots.
func (e *Engine) Customers() []model.Customer {
	out := make([]model.Customer, 0, len(e.customers))
	for _, c := range e.customers {
		if c != nil {
			out = append(out, *c)
		}
	}
	return out
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Turn:      e.turn,
		Score:     e.score,
		Player:    e.player,
		Customers: e.Customers(),
	}
	if e.lv != nil {
		s.Level = e.lv.Number
		s.Difficulty = e.lv.Difficulty
		s.Grid = e.lv.Grid.Clone()
	}
	return s
}

func (e *Engine) emitSnapshot() {
	if e.presenter != nil {
		e.presenter.OnSnapshot(e.Snapshot())
	}
}

func (e *Engine) customerAt(p model.Point) *model.Customer {
	for _, c := range e.customers {
		if c != nil && c.Pos == p {
			return c
		}
	}
	return nil
}
