package engine

import (
	"dinerline.ai/internal/sim/logic/mathx"
	"dinerline.ai/internal/sim/model"
)

// MovePlayer resolves one player step. Blocked moves, wrong deliveries and
// moves without stamina are silently ineffective. No snapshot is emitted here.
func (e *Engine) MovePlayer(dir model.Direction) {
	if !e.started || !dir.Valid() {
		return
	}
	e.pendingMoves = append(e.pendingMoves, dir.String())

	if e.player.Stamina <= e.cfg.StaminaFloor {
		return
	}
	target := e.player.Pos.Add(dir.Delta())

	if c := e.customerAt(target); c != nil {
		e.deliverFood(c)
		return
	}

	tile := e.lv.Grid.AtPoint(target)
	if !tile.Walkable() {
		return
	}
	e.player.Pos = target
	e.player.Stamina = mathx.ClampInt(e.player.Stamina-e.cfg.MoveStaminaCost, 0, e.cfg.PlayerStamina)
	if food, ok := tile.Food(); ok {
		e.player.Carrying = food
	}
}

func (e *Engine) deliverFood(c *model.Customer) {
	carried := e.player.Carrying
	if carried == model.FoodNone || c.Fed || c.Wants != carried {
		return
	}
	points := c.Patience
	if points < 0 {
		points = 0
	}
	e.player.Carrying = model.FoodNone
	c.Fed = true
	e.score += points
	e.pendingEvents = append(e.pendingEvents, TurnEvent{
		Type:     EventDelivery,
		Level:    e.lv.Number,
		Slot:     c.Slot,
		Food:     carried.String(),
		Patience: c.Patience,
		Points:   points,
	})
	if e.presenter != nil {
		e.presenter.OnScoreChanged(e.score)
	}
}
