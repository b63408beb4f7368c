// Package collision holds the static geometry the locomotion probes sweep
// against. Shapes are spheres and axis-aligned boxes; queries are filtered by
// layer, and a resolv space buckets collider footprints on the XZ plane so a
// query only tests nearby shapes.
package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// Layer tags. A collider may sit on several layers.
const (
	LayerLocomotion = "locomotion"
	LayerClimbable  = "climbable"
	LayerDamageable = "damageable"
)

// Surface is optional metadata carried by a collider.
type Surface struct {
	// SlipPercentage in [0,1]: how much of the would-be tangential movement
	// a colliding hand keeps.
	SlipPercentage float64
}

// Shape is implemented by Box and Sphere.
type Shape interface {
	// Bounds returns the world AABB of the shape.
	Bounds() (min, max mgl64.Vec3)
	// ClosestPoint returns the point of the shape nearest to p.
	ClosestPoint(p mgl64.Vec3) mgl64.Vec3
	// sweep returns the travel distance t at which a sphere of radius r,
	// starting at origin and moving along the unit direction dir, first
	// touches the shape.
	sweep(origin, dir mgl64.Vec3, r float64) (t float64, normal mgl64.Vec3, ok bool)
}

// Box is an axis-aligned box.
type Box struct {
	Min, Max mgl64.Vec3
}

// NewBox returns a box centred on center with the given full size.
func NewBox(center, size mgl64.Vec3) Box {
	half := size.Mul(0.5)
	return Box{Min: center.Sub(half), Max: center.Add(half)}
}

func (b Box) Bounds() (mgl64.Vec3, mgl64.Vec3) { return b.Min, b.Max }

func (b Box) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(p[0], b.Min[0], b.Max[0]),
		mgl64.Clamp(p[1], b.Min[1], b.Max[1]),
		mgl64.Clamp(p[2], b.Min[2], b.Max[2]),
	}
}

// Sphere is a solid ball.
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

func (s Sphere) Bounds() (mgl64.Vec3, mgl64.Vec3) {
	r := mgl64.Vec3{s.Radius, s.Radius, s.Radius}
	return s.Center.Sub(r), s.Center.Add(r)
}

func (s Sphere) ClosestPoint(p mgl64.Vec3) mgl64.Vec3 {
	d := p.Sub(s.Center)
	l := d.Len()
	if l <= s.Radius {
		return p
	}
	return s.Center.Add(d.Mul(s.Radius / l))
}

// Collider is a shape placed in a Space.
type Collider struct {
	ID      string
	Shape   Shape
	Surface *Surface // nil means the caller's default slip applies
	Data    interface{}

	layers []string
	object *resolv.Object
}

// NewCollider creates a collider on the given layers.
func NewCollider(id string, shape Shape, layers ...string) *Collider {
	return &Collider{ID: id, Shape: shape, layers: layers}
}

// WithSurface attaches surface metadata and returns the collider.
func (c *Collider) WithSurface(slip float64) *Collider {
	c.Surface = &Surface{SlipPercentage: mgl64.Clamp(slip, 0, 1)}
	return c
}

// Layers returns the layers this collider sits on.
func (c *Collider) Layers() []string {
	return c.layers
}

// OnLayer reports whether the collider sits on any of the given layers. An
// empty list matches every collider.
func (c *Collider) OnLayer(layers ...string) bool {
	if len(layers) == 0 {
		return true
	}
	for _, want := range layers {
		for _, have := range c.layers {
			if want == have {
				return true
			}
		}
	}
	return false
}

// Distance returns how far p is from the collider surface (0 when inside).
func (c *Collider) Distance(p mgl64.Vec3) float64 {
	return p.Sub(c.Shape.ClosestPoint(p)).Len()
}

// Hit describes the first contact of a cast.
type Hit struct {
	Point    mgl64.Vec3 // Contact point on the collider surface
	Normal   mgl64.Vec3 // Surface normal at the contact, unit length
	Distance float64    // Travel distance of the cast origin
	Collider *Collider
}

// Slip returns the hit surface's slip percentage, or fallback when the
// collider carries no surface metadata.
func (h Hit) Slip(fallback float64) float64 {
	if h.Collider == nil || h.Collider.Surface == nil {
		return fallback
	}
	return h.Collider.Surface.SlipPercentage
}

var inf = math.Inf(1)
