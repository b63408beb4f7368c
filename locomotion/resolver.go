package locomotion

import (
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// Resolver turns a desired displacement into a collision-safe end position.
type Resolver struct {
	probe *Probe

	// Slip used when the contacted collider carries no surface metadata.
	twoHandSlide    float64
	singleHandSlide float64
}

// NewResolver creates a resolver on top of a probe.
func NewResolver(probe *Probe, twoHandSlide, singleHandSlide float64) *Resolver {
	return &Resolver{
		probe:           probe,
		twoHandSlide:    twoHandSlide,
		singleHandSlide: singleHandSlide,
	}
}

// Probe returns the probe the resolver casts with.
func (r *Resolver) Probe() *Probe {
	return r.probe
}

// Resolve moves a sphere of the given radius from start by delta and reports
// where it ends and whether it touched anything.
//
// A hit on the first sweep keeps a fraction of the remaining motion, projected
// onto the contact plane, as a slide. The slide is swept at full radius; if
// it is clear, a second sweep heads back toward the intended end. When both
// are clear the slide is dropped and the first contact stands. A first sweep
// that misses is retried slightly thinner and longer, since a sphere that
// starts in contact can miss the surface it rests on; a hit there keeps the
// sphere at start.
func (r *Resolver) Resolve(start mgl64.Vec3, radius float64, delta mgl64.Vec3, precision float64, singleHand bool) (mgl64.Vec3, bool) {
	target := start.Add(delta)

	if c, ok := r.probe.Cast(start, radius*precision, delta, precision); ok {
		first := c.End
		slip := c.Hit.Slip(r.defaultSlip(singleHand))
		slide := gamemath.ProjectOnPlane(target.Sub(first), c.Hit.Normal).Mul(slip)

		if c2, ok := r.probe.Cast(first, radius, slide, precision*precision); ok {
			return c2.End, true
		}
		slid := first.Add(slide)
		if c3, ok := r.probe.Cast(slid, radius, target.Sub(slid), precision*precision*precision); ok {
			return c3.End, true
		}
		return first, true
	}

	if !gamemath.IsZero(delta) {
		shrunk := radius * precision * 0.66
		longer := delta.Normalize().Mul(delta.Len() + radius*precision*0.34)
		if _, ok := r.probe.Cast(start, shrunk, longer, precision*0.66); ok {
			return start, true
		}
	}
	return target, false
}

func (r *Resolver) defaultSlip(singleHand bool) float64 {
	if singleHand {
		return r.singleHandSlide
	}
	return r.twoHandSlide
}
