// Package locomotion moves an avatar by the motion of its tracked hands
// against static geometry: hands that touch a surface anchor, and the body is
// pushed or pulled by the difference between where the hands are and where
// they were held.
package locomotion

import (
	"math"

	"github.com/automoto/intheclouds/shared/collision"
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// Geometry is the collision query the probe is built on. *collision.Space
// implements it.
type Geometry interface {
	SphereCast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, layers ...string) (collision.Hit, bool)
}

// Contact is the outcome of a probe that touched something.
type Contact struct {
	End mgl64.Vec3 // Adjusted sphere centre, clear of the surface
	Hit collision.Hit
}

// Probe wraps sphere and ray casts against the locomotion layer.
type Probe struct {
	geometry Geometry
	layers   []string
}

// NewProbe creates a probe. Without explicit layers only the locomotion
// layer is queried. A nil geometry never reports a hit.
func NewProbe(geometry Geometry, layers ...string) *Probe {
	if len(layers) == 0 {
		layers = []string{collision.LayerLocomotion}
	}
	return &Probe{geometry: geometry, layers: layers}
}

// Cast sweeps a sphere from origin along displacement.
//
// The primary cast runs at radius*precision so that a sphere already resting
// on a surface does not report it. On a hit the end is pushed radius away
// from the contact along the normal, then checked twice: a thinner sphere
// cast from origin to that end (pulls the end back if the path is blocked),
// and a ray for thin geometry the sphere slipped past (collapses the end to
// origin). A primary miss is still confirmed with a ray along displacement.
func (p *Probe) Cast(origin mgl64.Vec3, radius float64, displacement mgl64.Vec3, precision float64) (Contact, bool) {
	if !p.usable(origin, displacement) || radius <= 0 || precision <= 0 {
		return Contact{}, false
	}

	length := displacement.Len()
	primary, ok := p.Sphere(origin, radius*precision, displacement, length+radius*(1-precision))
	if !ok {
		if hit, ok := p.Ray(origin, displacement, length+radius*precision*0.999); ok {
			return Contact{End: origin, Hit: hit}, true
		}
		return Contact{}, false
	}

	end := primary.Point.Add(primary.Normal.Mul(radius))
	toEnd := end.Sub(origin)
	p2 := precision * precision

	if inner, ok := p.Sphere(origin, radius*p2, toEnd, toEnd.Len()+radius*(1-p2)); ok {
		pulled := math.Max(0, primary.Distance-radius*(1-p2))
		return Contact{End: origin.Add(toEnd.Normalize().Mul(pulled)), Hit: inner}, true
	}
	if hit, ok := p.Ray(origin, toEnd, toEnd.Len()+radius*p2*0.999); ok {
		return Contact{End: origin, Hit: hit}, true
	}
	return Contact{End: end, Hit: primary}, true
}

// Sphere is a single sphere cast of the given length along dir.
func (p *Probe) Sphere(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, length float64) (collision.Hit, bool) {
	if !p.usable(origin, dir) || radius < 0 || length <= 0 || math.IsNaN(length) {
		return collision.Hit{}, false
	}
	return p.geometry.SphereCast(origin, radius, dir, length, p.layers...)
}

// Ray is a zero-radius cast of the given length along dir.
func (p *Probe) Ray(origin, dir mgl64.Vec3, length float64) (collision.Hit, bool) {
	return p.Sphere(origin, 0, dir, length)
}

func (p *Probe) usable(origin, dir mgl64.Vec3) bool {
	return p != nil && p.geometry != nil &&
		gamemath.IsFinite(origin) && gamemath.IsFinite(dir) && !gamemath.IsZero(dir)
}
