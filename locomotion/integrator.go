package locomotion

import (
	"github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// Motion reports what the integrator ran into.
type Motion struct {
	Grounded bool // Landed on something while falling
	Collided bool
}

// Integrator moves a body by its velocity. The body is a sphere resting on
// the body position; horizontal and vertical motion are resolved separately
// so that standing on a floor does not stop walking across it.
type Integrator struct {
	resolver  *Resolver
	gravity   float64
	radius    float64
	precision float64
}

// NewIntegrator creates an integrator that sweeps with resolver.
func NewIntegrator(resolver *Resolver, cfg config.LocomotionConfig) *Integrator {
	return &Integrator{
		resolver:  resolver,
		gravity:   cfg.Gravity,
		radius:    cfg.BodyRadius,
		precision: cfg.DefaultPrecision,
	}
}

// Integrate applies gravity unless suspended, then moves the body by
// velocity*dt. Velocity along a blocked axis is zeroed.
func (in *Integrator) Integrate(body *Body, dt float64, suspended bool) Motion {
	var m Motion
	if !(dt > 0) {
		return m
	}
	if suspended {
		body.Velocity = mgl64.Vec3{}
		return m
	}

	body.Velocity[1] -= in.gravity * dt
	if !gamemath.IsFinite(body.Velocity) {
		body.Velocity = mgl64.Vec3{}
	}
	center := in.Center(body)

	// --- Horizontal ---
	horizontal := mgl64.Vec3{body.Velocity.X() * dt, 0, body.Velocity.Z() * dt}
	if !gamemath.IsZero(horizontal) {
		if end, hit := in.resolver.Resolve(center, in.radius, horizontal, in.precision, false); hit {
			horizontal = end.Sub(center)
			body.Velocity[0], body.Velocity[2] = 0, 0
			m.Collided = true
		}
		body.Position = body.Position.Add(horizontal)
		center = center.Add(horizontal)
	}

	// --- Vertical ---
	falling := body.Velocity.Y() <= 0
	vertical := mgl64.Vec3{0, body.Velocity.Y() * dt, 0}
	if end, hit := in.resolver.Resolve(center, in.radius, vertical, in.precision, false); hit {
		vertical = end.Sub(center)
		body.Velocity[1] = 0
		m.Collided = true
		m.Grounded = falling
	}
	body.Position = body.Position.Add(vertical)
	return m
}

// Center returns the centre of the body sphere.
func (in *Integrator) Center(body *Body) mgl64.Vec3 {
	return body.Position.Add(gamemath.Up.Mul(in.radius))
}
