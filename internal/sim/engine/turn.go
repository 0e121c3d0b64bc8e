package engine

import (
	"fmt"

	"dinerline.ai/internal/sim/logic/mathx"
)

// AdvanceTurn runs one tick: cleanup every CleanupEveryTurns, customer AI and
// patience every CustomerEveryTurns, stamina regeneration, then the turn log and
// snapshot. The turn always completes; an error means the next level could not
// be generated and the engine stayed on the current one.
func (e *Engine) AdvanceTurn() error {
	if !e.started {
		return ErrNotStarted
	}
	e.turn++

	var err error
	if e.turn%uint64(e.cfg.CleanupEveryTurns) == 0 {
		err = e.cleanFedCustomers()
	}
	if e.turn%uint64(e.cfg.CustomerEveryTurns) == 0 {
		e.moveAllCustomers()
		e.reduceCustomerPatience()
	}
	e.regenStamina()

	e.writeTurnLog()
	e.emitSnapshot()
	return err
}

func (e *Engine) cleanFedCustomers() error {
	for i, c := range e.customers {
		if c != nil && c.Fed {
			e.customers[i] = nil
			e.removed++
		}
	}
	if e.removed != e.placed {
		return nil
	}
	return e.nextLevel()
}

// nextLevel replaces the level once every placed customer has been served.
func (e *Engine) nextLevel() error {
	done := e.lv.Number
	lv, p, cs, err := e.buildLevel(done + 1)
	if err != nil {
		e.log.Printf("level %d: regenerate failed: %v", done+1, err)
		return fmt.Errorf("advance to level %d: %w", done+1, err)
	}
	e.pendingEvents = append(e.pendingEvents, TurnEvent{Type: EventLevelComplete, Level: done})
	e.log.Printf("level %d complete at turn %d score=%d", done, e.turn, e.score)
	e.installLevel(lv, p, cs)
	return nil
}

func (e *Engine) moveAllCustomers() {
	for _, c := range e.customers {
		if c != nil {
			e.moveCustomer(c)
		}
	}
}

// reduceCustomerPatience wears down everyone still waiting. Patience stops at
// zero; an unserved customer stays until fed.
func (e *Engine) reduceCustomerPatience() {
	for _, c := range e.customers {
		if c == nil || c.Fed {
			continue
		}
		c.Patience -= e.cfg.PatienceDecay
		if c.Patience < 0 {
			c.Patience = 0
		}
	}
}

func (e *Engine) regenStamina() {
	if e.turn%uint64(e.cfg.StaminaRegenEveryTurns) != 0 {
		return
	}
	e.player.Stamina = mathx.ClampInt(e.player.Stamina+e.cfg.StaminaRegen, 0, e.cfg.PlayerStamina)
}

func (e *Engine) writeTurnLog() {
	entry := TurnLogEntry{
		Turn:   e.turn,
		Level:  e.lv.Number,
		Score:  e.score,
		Moves:  e.pendingMoves,
		Events: e.pendingEvents,
		Digest: e.Digest(),
	}
	e.pendingMoves = nil
	e.pendingEvents = nil
	if e.turnLogger == nil {
		return
	}
	if err := e.turnLogger.WriteTurn(entry); err != nil {
		e.log.Printf("turn %d: write log: %v", e.turn, err)
	}
}
