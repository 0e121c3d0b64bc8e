package engine

import (
	"errors"

	"dinerline.ai/internal/sim/level"
	"dinerline.ai/internal/sim/model"
)

// Presenter receives read-only views of the simulation.
type Presenter interface {
	OnSnapshot(s Snapshot)
	OnScoreChanged(score int)
}

// Snapshot is a deep copy of the engine state after a turn.
type Snapshot struct {
	Turn       uint64
	Level      int
	Score      int
	Difficulty float64

	Grid      level.Grid
	Player    model.Player
	Customers []model.Customer // occupied slots only, in slot order
}

type TurnLogger interface {
	WriteTurn(entry TurnLogEntry) error
}

// TurnLogEntry records the moves fed into one turn and what came out of it.
type TurnLogEntry struct {
	Turn   uint64      `json:"turn"`
	Level  int         `json:"level"`
	Score  int         `json:"score"`
	Moves  []string    `json:"moves,omitempty"`
	Events []TurnEvent `json:"events,omitempty"`
	Digest string      `json:"digest"`
}

const (
	EventLevelStart    = "LEVEL_START"
	EventLevelComplete = "LEVEL_COMPLETE"
	EventDelivery      = "DELIVERY"
)

type TurnEvent struct {
	Type  string `json:"type"`
	Level int    `json:"level"`

	// LEVEL_START
	TemplateID    int     `json:"template_id,omitempty"`
	Difficulty    float64 `json:"difficulty,omitempty"`
	CustomerCount int     `json:"customer_count,omitempty"`
	Placed        int     `json:"placed,omitempty"`

	// DELIVERY
	Slot     int    `json:"slot,omitempty"`
	Food     string `json:"food,omitempty"`
	Patience int    `json:"patience,omitempty"`
	Points   int    `json:"points,omitempty"`
}

// TurnLoggers fans one entry out to several loggers.
type TurnLoggers []TurnLogger

func (ls TurnLoggers) WriteTurn(entry TurnLogEntry) error {
	var errs []error
	for _, l := range ls {
		if l == nil {
			continue
		}
		if err := l.WriteTurn(entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
