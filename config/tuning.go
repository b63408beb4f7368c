package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// ErrInvalidTuning is returned when a tuning value is outside its valid range.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning is a snapshot of every config section. Engines receive a Tuning (or
// one of its sections) at construction instead of reading the globals.
type Tuning struct {
	Locomotion LocomotionConfig `toml:"locomotion"`
	Dash       DashConfig       `toml:"dash"`
	Melee      MeleeConfig      `toml:"melee"`
	Climb      ClimbConfig      `toml:"climb"`
	Health     HealthConfig     `toml:"health"`
	Desktop    DesktopConfig    `toml:"desktop"`
	Sim        SimConfig        `toml:"sim"`
}

// Current returns a copy of the global configuration.
func Current() Tuning {
	return Tuning{
		Locomotion: Locomotion,
		Dash:       Dash,
		Melee:      Melee,
		Climb:      Climb,
		Health:     Health,
		Desktop:    Desktop,
		Sim:        Sim,
	}
}

// LoadFile decodes a TOML file on top of the current defaults. Keys missing
// from the file keep their default value.
func LoadFile(path string) (Tuning, error) {
	t := Current()
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return Tuning{}, fmt.Errorf("decode tuning %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

// Apply copies the tuning back into the global configuration.
func (t Tuning) Apply() {
	Locomotion = t.Locomotion
	Dash = t.Dash
	Melee = t.Melee
	Climb = t.Climb
	Health = t.Health
	Desktop = t.Desktop
	Sim = t.Sim
}

// Validate checks the ranges the frame loop relies on.
func (t Tuning) Validate() error {
	l := t.Locomotion
	switch {
	case l.VelocityHistorySize < 1:
		return fmt.Errorf("%w: velocity_history_size must be >= 1, got %d", ErrInvalidTuning, l.VelocityHistorySize)
	case l.DefaultPrecision <= 0 || l.DefaultPrecision > 1:
		return fmt.Errorf("%w: default_precision must be in (0,1], got %v", ErrInvalidTuning, l.DefaultPrecision)
	case l.HandRadius <= 0 || l.HeadRadius <= 0 || l.BodyRadius <= 0:
		return fmt.Errorf("%w: probe radii must be positive", ErrInvalidTuning)
	case l.MaxArmLength <= 0:
		return fmt.Errorf("%w: max_arm_length must be positive, got %v", ErrInvalidTuning, l.MaxArmLength)
	case !inUnit(l.DefaultSlideFactor) || !inUnit(l.SingleHandSlideFactor):
		return fmt.Errorf("%w: slide factors must be in [0,1]", ErrInvalidTuning)
	case l.MaxJumpSpeed < 0 || l.JumpMultiplier < 0:
		return fmt.Errorf("%w: launch values must not be negative", ErrInvalidTuning)
	}
	if t.Dash.Duration > t.Dash.Cooldown {
		return fmt.Errorf("%w: dash duration %v exceeds cooldown %v", ErrInvalidTuning, t.Dash.Duration, t.Dash.Cooldown)
	}
	if t.Melee.AttackCooldown < 0 || t.Health.DamageCooldown < 0 {
		return fmt.Errorf("%w: cooldowns must not be negative", ErrInvalidTuning)
	}
	if t.Sim.TickRate < 1 {
		return fmt.Errorf("%w: tick_rate must be >= 1, got %d", ErrInvalidTuning, t.Sim.TickRate)
	}
	if t.Sim.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size must be positive, got %v", ErrInvalidTuning, t.Sim.CellSize)
	}
	return nil
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
