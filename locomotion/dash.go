package locomotion

import (
	"time"

	"github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// DashState is the phase of the dash attack.
type DashState int

const (
	DashReady DashState = iota
	DashCharging
	DashDashing
	DashCooldown
)

func (s DashState) String() string {
	switch s {
	case DashCharging:
		return "charging"
	case DashDashing:
		return "dashing"
	case DashCooldown:
		return "cooldown"
	}
	return "ready"
}

// Tint is the hand follower feedback colour.
type Tint int

const (
	TintNone     Tint = iota
	TintCharging      // Trigger held, dash armed
	TintSpent         // Dash fired, both hands greyed out
)

// Dash tracks the dash attack. Timers are deadlines compared against the
// frame clock.
type Dash struct {
	cfg config.DashConfig

	state     DashState
	side      rig.Side
	startedAt time.Duration

	hitboxScale [2]float64
	tint        [2]Tint
}

// NewDash creates a dash in the ready state.
func NewDash(cfg config.DashConfig) *Dash {
	d := &Dash{cfg: cfg}
	d.resetFeedback()
	return d
}

// Update advances the dash for one frame. triggers holds the trigger state of
// each hand; velocity the hand velocity relative to the head. When a dash
// fires, impulse is the velocity to add to the body.
func (d *Dash) Update(now time.Duration, triggers [2]bool, velocity [2]mgl64.Vec3) (impulse mgl64.Vec3, events []Event) {
	switch d.state {
	case DashDashing:
		if now-d.startedAt <= d.cfg.Duration {
			return mgl64.Vec3{}, nil
		}
		d.state = DashCooldown
		d.resetFeedback()
		return mgl64.Vec3{}, []Event{DashEnded{Side: d.side}}
	case DashCooldown:
		if now-d.startedAt <= d.cfg.Cooldown {
			return mgl64.Vec3{}, nil
		}
		d.state = DashReady
	}

	charging := false
	for _, side := range rig.Sides {
		if !triggers[side] {
			d.tint[side] = TintNone
			continue
		}
		charging = true
		d.tint[side] = TintCharging
		if velocity[side].Len() > d.cfg.VelocityThreshold {
			return d.fire(now, side, velocity[side])
		}
	}
	if charging {
		d.state = DashCharging
	} else {
		d.state = DashReady
	}
	return mgl64.Vec3{}, nil
}

func (d *Dash) fire(now time.Duration, side rig.Side, velocity mgl64.Vec3) (mgl64.Vec3, []Event) {
	dir := gamemath.SafeNormalize(velocity, mgl64.Vec3{})
	d.state = DashDashing
	d.side = side
	d.startedAt = now
	d.hitboxScale[side] *= d.cfg.HitboxScale
	d.tint = [2]Tint{TintSpent, TintSpent}
	return dir.Mul(d.cfg.Speed), []Event{DashStarted{Side: side, Direction: dir}}
}

// Cancel ends an active dash and clears the feedback. The cooldown keeps
// running from the original start.
func (d *Dash) Cancel() []Event {
	var events []Event
	if d.state == DashDashing {
		d.state = DashCooldown
		events = append(events, DashEnded{Side: d.side})
	} else if d.state == DashCharging {
		d.state = DashReady
	}
	d.resetFeedback()
	return events
}

func (d *Dash) resetFeedback() {
	d.hitboxScale = [2]float64{1, 1}
	d.tint = [2]Tint{}
}

// State returns the current phase.
func (d *Dash) State() DashState {
	return d.state
}

// IsDashing reports whether a dash is in flight.
func (d *Dash) IsDashing() bool {
	return d.state == DashDashing
}

// Side returns the hand that fired the last dash.
func (d *Dash) Side() rig.Side {
	return d.side
}

// CooldownRemaining returns the time left before another dash may fire.
func (d *Dash) CooldownRemaining(now time.Duration) time.Duration {
	if d.state != DashDashing && d.state != DashCooldown {
		return 0
	}
	left := d.cfg.Cooldown - (now - d.startedAt)
	if left < 0 {
		return 0
	}
	return left
}

// HitboxScale returns the hand trigger scale for a side.
func (d *Dash) HitboxScale(side rig.Side) float64 {
	return d.hitboxScale[side]
}

// Tint returns the follower tint for a side.
func (d *Dash) Tint(side rig.Side) Tint {
	return d.tint[side]
}
