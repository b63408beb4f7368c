package config

import "time"

// LocomotionConfig contains arm-swing locomotion tuning
type LocomotionConfig struct {
	// Velocity history
	VelocityHistorySize int `toml:"velocity_history_size"`

	// Reach
	MaxArmLength    float64    `toml:"max_arm_length"`   // Max hand distance from head
	UnstickDistance float64    `toml:"unstick_distance"` // Drift before a stuck hand lets go
	LeftHandOffset  [3]float64 `toml:"left_hand_offset"` // Socket offset in hand-local space
	RightHandOffset [3]float64 `toml:"right_hand_offset"`

	// Launch
	VelocityLimit  float64 `toml:"velocity_limit"` // Average speed needed to launch
	MaxJumpSpeed   float64 `toml:"max_jump_speed"`
	JumpMultiplier float64 `toml:"jump_multiplier"`

	// Probes
	HandRadius            float64 `toml:"hand_radius"`
	HeadRadius            float64 `toml:"head_radius"`
	BodyRadius            float64 `toml:"body_radius"` // Sphere standing in for the body capsule, resting on the feet
	DefaultPrecision      float64 `toml:"default_precision"`
	DefaultSlideFactor    float64 `toml:"default_slide_factor"`     // Slip with both hands anchored
	SingleHandSlideFactor float64 `toml:"single_hand_slide_factor"` // Slip for a lone hand

	// Downward bias added to a hand sweep, in units of g*dt^2
	SwingGravityBias float64 `toml:"swing_gravity_bias"`
	Gravity          float64 `toml:"gravity"`
}

// DashConfig contains dash attack tuning
type DashConfig struct {
	Cooldown          time.Duration `toml:"cooldown"` // Measured from dash start
	Duration          time.Duration `toml:"duration"` // How long the dash counts as active
	Speed             float64       `toml:"speed"`
	VelocityThreshold float64       `toml:"velocity_threshold"` // Relative hand speed that fires the dash
	HitboxScale       float64       `toml:"hitbox_scale"`       // Hand trigger scale while dashing
	FeedbackDecay     time.Duration `toml:"feedback_decay"`     // Time for scale/tint to settle back

	// Ground pound
	GroundPoundSpeed float64 `toml:"ground_pound_speed"` // Downward speed with both triggers held
}

// MeleeConfig contains hand-to-target combat tuning
type MeleeConfig struct {
	VelocityThreshold float64       `toml:"velocity_threshold"` // Min relative hand speed to land a hit
	AttackCooldown    time.Duration `toml:"attack_cooldown"`

	// Damage
	LightDamage int `toml:"light_damage"`
	DashDamage  int `toml:"dash_damage"`
	BuffBonus   int `toml:"buff_bonus"` // Flat bonus while the high-five buff is active

	// Knockback
	Knockback     float64 `toml:"knockback"`
	DashKnockback float64 `toml:"dash_knockback"` // Dash and ground pound
	DownwardBias  float64 `toml:"downward_bias"`

	// Hand trigger sphere used for contact detection
	HandTriggerRadius float64 `toml:"hand_trigger_radius"`
}

// ClimbConfig contains climbing tuning
type ClimbConfig struct {
	GripThreshold    float64 `toml:"grip_threshold"` // Analog grip value counted as held
	TriggerThreshold float64 `toml:"trigger_threshold"`
	RegionRadius     float64 `toml:"region_radius"`     // Hand proximity radius for climbable regions
	MaxReleaseSpeed  float64 `toml:"max_release_speed"` // Clamp for the release velocity hint
}

// HealthConfig contains actor and target health bookkeeping
type HealthConfig struct {
	StartingHealth int           `toml:"starting_health"`
	DamageCooldown time.Duration `toml:"damage_cooldown"` // Target-side invulnerability after a hit
	RespawnDelay   time.Duration `toml:"respawn_delay"`
}

// DesktopConfig contains the flat-input movement strategy tuning
type DesktopConfig struct {
	MoveSpeed float64 `toml:"move_speed"`
	JumpForce float64 `toml:"jump_force"`
	Drag      float64 `toml:"drag"` // Planar velocity damping per second
}

// SimConfig contains frame loop configuration
type SimConfig struct {
	TickRate    int  `toml:"tick_rate"`
	DesktopMode bool `toml:"desktop_mode"` // Non-tracked input: disables climbing and head-relative velocity

	// Broadphase
	CellSize float64 `toml:"cell_size"` // Meters per resolv cell
}

// Global configuration instances
var Locomotion LocomotionConfig
var Dash DashConfig
var Melee MeleeConfig
var Climb ClimbConfig
var Health HealthConfig
var Desktop DesktopConfig
var Sim SimConfig

func init() {
	// Locomotion Config
	Locomotion = LocomotionConfig{
		VelocityHistorySize: 10,

		MaxArmLength:    1.5,
		UnstickDistance: 1.0,
		LeftHandOffset:  [3]float64{0, 0, 0},
		RightHandOffset: [3]float64{0, 0, 0},

		VelocityLimit:  0.4,
		MaxJumpSpeed:   6.5,
		JumpMultiplier: 1.1,

		HandRadius:            0.05,
		HeadRadius:            0.2,
		BodyRadius:            0.25,
		DefaultPrecision:      0.995,
		DefaultSlideFactor:    0.03,
		SingleHandSlideFactor: 0.001,

		SwingGravityBias: 2.0,
		Gravity:          9.8,
	}

	// Dash Config
	Dash = DashConfig{
		Cooldown:          3 * time.Second,
		Duration:          3 * time.Second, // Dash stays active until the cooldown lapses
		Speed:             10.0,
		VelocityThreshold: 2.5,
		HitboxScale:       2.0,
		FeedbackDecay:     250 * time.Millisecond,
		GroundPoundSpeed:  4.0,
	}

	// Melee Config
	Melee = MeleeConfig{
		VelocityThreshold: 3.5,
		AttackCooldown:    500 * time.Millisecond,

		LightDamage: 1,
		DashDamage:  2,
		BuffBonus:   1,

		Knockback:     5.0,
		DashKnockback: 10.0,
		DownwardBias:  0.1,

		HandTriggerRadius: 0.08,
	}

	// Climb Config
	Climb = ClimbConfig{
		GripThreshold:    0.75,
		TriggerThreshold: 0.75,
		RegionRadius:     0.1,
		MaxReleaseSpeed:  6.5,
	}

	// Health Config
	Health = HealthConfig{
		StartingHealth: 3,
		DamageCooldown: 500 * time.Millisecond,
		RespawnDelay:   3 * time.Second,
	}

	// Desktop Config
	Desktop = DesktopConfig{
		MoveSpeed: 5.0,
		JumpForce: 5.0,
		Drag:      4.0,
	}

	// Sim Config
	Sim = SimConfig{
		TickRate:    90,
		DesktopMode: false,
		CellSize:    1.0,
	}
}
