package engine

import (
	"errors"
	"fmt"

	"dinerline.ai/internal/sim/level"
	"dinerline.ai/internal/sim/tuning"
)

var ErrBadConfig = errors.New("invalid config")

type Config struct {
	Width  int
	Height int
	Seed   int64

	CleanupEveryTurns  int
	CustomerEveryTurns int

	TableChancePercent int
	TablesPerCustomer  int

	CustomerPatience int
	PatienceDecay    int
	ProximityRadius  int

	PlayerStamina          int
	MoveStaminaCost        int
	StaminaFloor           int
	StaminaRegenEveryTurns int
	StaminaRegen           int
}

func ConfigFromTuning(t tuning.Tuning) Config {
	return Config{
		Width:                  t.Width,
		Height:                 t.Height,
		Seed:                   t.Seed,
		CleanupEveryTurns:      t.CleanupEveryTurns,
		CustomerEveryTurns:     t.CustomerEveryTurns,
		TableChancePercent:     t.TableChancePercent,
		TablesPerCustomer:      t.TablesPerCustomer,
		CustomerPatience:       t.CustomerPatience,
		PatienceDecay:          t.PatienceDecay,
		ProximityRadius:        t.ProximityRadius,
		PlayerStamina:          t.PlayerStamina,
		MoveStaminaCost:        t.MoveStaminaCost,
		StaminaFloor:           t.StaminaFloor,
		StaminaRegenEveryTurns: t.StaminaRegenEveryTurns,
		StaminaRegen:           t.StaminaRegen,
	}
}

// DefaultConfig is the reference diner: a 35x18 floor, cleanup every 10 turns,
// customers every 3.
func DefaultConfig() Config {
	return Config{
		Width:                  35,
		Height:                 18,
		CleanupEveryTurns:      10,
		CustomerEveryTurns:     3,
		TableChancePercent:     10,
		TablesPerCustomer:      4,
		CustomerPatience:       100,
		PatienceDecay:          1,
		ProximityRadius:        3,
		PlayerStamina:          100,
		MoveStaminaCost:        1,
		StaminaFloor:           0,
		StaminaRegenEveryTurns: 5,
		StaminaRegen:           1,
	}
}

// applyDefaults fills only the fields a simulation cannot run with at zero:
// the floor size and the turn cadences. Every other zero is taken literally,
// so TableChancePercent 0 means no tables and StaminaRegen 0 means none.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.CleanupEveryTurns == 0 {
		c.CleanupEveryTurns = d.CleanupEveryTurns
	}
	if c.CustomerEveryTurns == 0 {
		c.CustomerEveryTurns = d.CustomerEveryTurns
	}
	if c.StaminaRegenEveryTurns == 0 {
		c.StaminaRegenEveryTurns = d.StaminaRegenEveryTurns
	}
}

func (c Config) validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("engine: %w (%dx%d)", level.ErrBadDimensions, c.Width, c.Height)
	}
	if c.CleanupEveryTurns < 0 || c.CustomerEveryTurns < 0 || c.StaminaRegenEveryTurns < 0 {
		return fmt.Errorf("engine: %w: turn cadences must be positive", ErrBadConfig)
	}
	if c.TableChancePercent < 0 || c.TableChancePercent > 100 {
		return fmt.Errorf("engine: %w: table chance %d out of range", ErrBadConfig, c.TableChancePercent)
	}
	for name, v := range map[string]int{
		"tables per customer": c.TablesPerCustomer,
		"customer patience":   c.CustomerPatience,
		"patience decay":      c.PatienceDecay,
		"proximity radius":    c.ProximityRadius,
		"player stamina":      c.PlayerStamina,
		"move stamina cost":   c.MoveStaminaCost,
		"stamina floor":       c.StaminaFloor,
		"stamina regen":       c.StaminaRegen,
	} {
		if v < 0 {
			return fmt.Errorf("engine: %w: %s is negative (%d)", ErrBadConfig, name, v)
		}
	}
	return nil
}
