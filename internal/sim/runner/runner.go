package runner

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"dinerline.ai/internal/sim/engine"
	"dinerline.ai/internal/sim/model"
)

// Runner is the only goroutine that touches the engine. Input arrives on an
// inbox; turns advance either after every move (interval 0) or on a ticker.
type Runner struct {
	eng      *engine.Engine
	interval time.Duration
	inbox    chan model.Direction
	log      *log.Logger

	status atomic.Value // Status
}

// Status is a copy of the engine counters safe to read from any goroutine.
type Status struct {
	Turn  uint64
	Level int
	Score int
}

func New(eng *engine.Engine, interval time.Duration, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	r := &Runner{
		eng:      eng,
		interval: interval,
		inbox:    make(chan model.Direction, 64),
		log:      logger,
	}
	r.status.Store(Status{})
	return r
}

func (r *Runner) Status() Status { return r.status.Load().(Status) }

func (r *Runner) publish() {
	r.status.Store(Status{Turn: r.eng.Turn(), Level: r.eng.Level(), Score: r.eng.Score()})
}

func (r *Runner) TurnPerInput() bool { return r.interval <= 0 }

// Move queues a direction. It reports false when the inbox is full and the move
// was dropped.
func (r *Runner) Move(dir model.Direction) bool {
	if !dir.Valid() {
		return false
	}
	select {
	case r.inbox <- dir:
		return true
	default:
		return false
	}
}

// Run starts the engine if needed and drives it until ctx is done. A
// configuration defect surfaced by AdvanceTurn stops the loop.
func (r *Runner) Run(ctx context.Context) error {
	if !r.eng.Started() {
		if err := r.eng.Start(); err != nil {
			return err
		}
	}
	r.publish()

	var tick <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case dir := <-r.inbox:
			r.eng.MovePlayer(dir)
			if r.TurnPerInput() {
				if err := r.advance(); err != nil {
					return err
				}
			}
		case <-tick:
			if err := r.advance(); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) advance() error {
	err := r.eng.AdvanceTurn()
	r.publish()
	if err != nil {
		r.log.Printf("turn %d: %v", r.eng.Turn(), err)
		return fmt.Errorf("runner: %w", err)
	}
	return nil
}
