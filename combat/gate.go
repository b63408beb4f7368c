package combat

import (
	"time"

	"github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// RejectReason says why a contact did not land.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectCooldown
	RejectTooSlow
	RejectDeadTarget
)

func (r RejectReason) String() string {
	switch r {
	case RejectCooldown:
		return "cooldown"
	case RejectTooSlow:
		return "too_slow"
	case RejectDeadTarget:
		return "dead_target"
	}
	return "none"
}

// Contact is a hand touching a damageable target.
type Contact struct {
	Target   string
	Side     rig.Side
	Velocity mgl64.Vec3 // Relative hand velocity, see HandVelocity

	// Attack flags of the attacker this frame
	Dashing        bool
	GroundPounding bool
	Buffed         bool

	TargetAlive bool
}

// Outcome is the gate's verdict on a contact.
type Outcome struct {
	Hit       bool
	Reason    RejectReason
	Damage    int
	Knockback mgl64.Vec3 // Impulse to apply to the target
}

// Event returns the event describing the outcome.
func (o Outcome) Event(c Contact) Event {
	if o.Hit {
		return HitLanded{Target: c.Target, Side: c.Side, Damage: o.Damage, Knockback: o.Knockback}
	}
	return HitRejected{Target: c.Target, Side: c.Side, Reason: o.Reason}
}

// Gate evaluates one attacker's contacts. The attack cooldown runs from the
// attacker's last successful hit, whichever target it landed on.
type Gate struct {
	cfg     config.MeleeConfig
	lastHit time.Duration
	hasHit  bool
}

// NewGate creates a gate for one attacker.
func NewGate(cfg config.MeleeConfig) *Gate {
	return &Gate{cfg: cfg}
}

// Evaluate decides whether c lands at time now. Rejected contacts leave the
// cooldown untouched.
func (g *Gate) Evaluate(c Contact, now time.Duration) Outcome {
	if g.hasHit && now-g.lastHit < g.cfg.AttackCooldown {
		return Outcome{Reason: RejectCooldown}
	}
	heavy := c.Dashing || c.GroundPounding
	if !heavy && !(c.Velocity.Len() > g.cfg.VelocityThreshold) {
		return Outcome{Reason: RejectTooSlow}
	}
	if !c.TargetAlive {
		return Outcome{Reason: RejectDeadTarget}
	}

	damage := g.cfg.LightDamage
	if c.Dashing {
		damage = g.cfg.DashDamage
	}
	if c.Buffed {
		damage += g.cfg.BuffBonus
	}

	magnitude := g.cfg.Knockback
	if heavy {
		magnitude = g.cfg.DashKnockback
	}

	g.lastHit = now
	g.hasHit = true
	return Outcome{
		Hit:       true,
		Damage:    damage,
		Knockback: KnockbackDirection(c.Velocity, g.cfg.DownwardBias).Mul(magnitude),
	}
}

// Ready reports whether the cooldown has elapsed at now.
func (g *Gate) Ready(now time.Duration) bool {
	return !g.hasHit || now-g.lastHit >= g.cfg.AttackCooldown
}

// Reset clears the cooldown.
func (g *Gate) Reset() {
	g.hasHit = false
	g.lastHit = 0
}

// KnockbackDirection is the swing direction tipped slightly downward. A
// zero swing knocks straight down.
func KnockbackDirection(velocity mgl64.Vec3, downwardBias float64) mgl64.Vec3 {
	dir := gamemath.SafeNormalize(velocity, mgl64.Vec3{})
	return gamemath.SafeNormalize(dir.Add(gamemath.Down.Mul(downwardBias)), gamemath.Down)
}
