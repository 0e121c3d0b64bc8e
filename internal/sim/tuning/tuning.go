package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	Width  int   `yaml:"width" json:"width"`
	Height int   `yaml:"height" json:"height"`
	Seed   int64 `yaml:"seed" json:"seed"`

	TurnIntervalMS int `yaml:"turn_interval_ms" json:"turn_interval_ms"`

	CleanupEveryTurns  int `yaml:"cleanup_every_turns" json:"cleanup_every_turns"`
	CustomerEveryTurns int `yaml:"customer_every_turns" json:"customer_every_turns"`

	TableChancePercent int `yaml:"table_chance_percent" json:"table_chance_percent"`
	TablesPerCustomer  int `yaml:"tables_per_customer" json:"tables_per_customer"`

	CustomerPatience int `yaml:"customer_patience" json:"customer_patience"`
	PatienceDecay    int `yaml:"patience_decay" json:"patience_decay"`
	ProximityRadius  int `yaml:"proximity_radius" json:"proximity_radius"`

	PlayerStamina          int `yaml:"player_stamina" json:"player_stamina"`
	MoveStaminaCost        int `yaml:"move_stamina_cost" json:"move_stamina_cost"`
	StaminaFloor           int `yaml:"stamina_floor" json:"stamina_floor"`
	StaminaRegenEveryTurns int `yaml:"stamina_regen_every_turns" json:"stamina_regen_every_turns"`
	StaminaRegen           int `yaml:"stamina_regen" json:"stamina_regen"`
}

func Defaults() Tuning {
	return Tuning{
		Width:                  35,
		Height:                 18,
		Seed:                   1337,
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

// Load reads path over Defaults, so a partial file keeps the other values.
func Load(path string) (Tuning, error) {
	t := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if err := t.Validate(); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	return t, nil
}

func (t Tuning) Validate() error {
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("width/height must be positive, got %dx%d", t.Width, t.Height)
	}
	if t.CleanupEveryTurns <= 0 || t.CustomerEveryTurns <= 0 || t.StaminaRegenEveryTurns <= 0 {
		return fmt.Errorf("turn intervals must be positive")
	}
	if t.TableChancePercent < 0 || t.TableChancePercent > 100 {
		return fmt.Errorf("table_chance_percent out of range: %d", t.TableChancePercent)
	}
	if t.TurnIntervalMS < 0 {
		return fmt.Errorf("turn_interval_ms must not be negative")
	}
	for _, f := range []struct {
		name string
		v    int
	}{
		{"tables_per_customer", t.TablesPerCustomer},
		{"customer_patience", t.CustomerPatience},
		{"patience_decay", t.PatienceDecay},
		{"proximity_radius", t.ProximityRadius},
		{"player_stamina", t.PlayerStamina},
		{"move_stamina_cost", t.MoveStaminaCost},
		{"stamina_floor", t.StaminaFloor},
		{"stamina_regen", t.StaminaRegen},
	} {
		if f.v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", f.name, f.v)
		}
	}
	return nil
}
