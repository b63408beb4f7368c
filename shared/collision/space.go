package collision

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/solarlune/resolv"
)

// unitsPerMeter converts meters into resolv's integer cell units.
const unitsPerMeter = 16

const tagQuery = "query"

// Space holds colliders and answers sweep queries against them. The XZ
// footprint of every collider is bucketed in a resolv space; the vertical
// axis is tested exactly per candidate.
type Space struct {
	min, max mgl64.Vec3 // XZ bounds of the broadphase grid
	grid     *resolv.Space
	query    *resolv.Object

	colliders []*Collider
	outside   []*Collider // Colliders whose footprint leaves the grid
	order     map[*Collider]int
	nextOrder int
}

// NewSpace creates a space covering the XZ rectangle between min and max.
// cellSize is the broadphase cell edge in meters.
func NewSpace(min, max mgl64.Vec3, cellSize float64) (*Space, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("cell size must be positive, got %v", cellSize)
	}
	if max.X() <= min.X() || max.Z() <= min.Z() {
		return nil, fmt.Errorf("empty space bounds %v..%v", min, max)
	}
	cell := int(math.Max(1, math.Round(cellSize*unitsPerMeter)))
	w := int(math.Ceil((max.X()-min.X())*unitsPerMeter)) + cell
	h := int(math.Ceil((max.Z()-min.Z())*unitsPerMeter)) + cell

	s := &Space{
		min:   min,
		max:   max,
		grid:  resolv.NewSpace(w, h, cell, cell),
		order: make(map[*Collider]int),
	}
	s.query = resolv.NewObject(0, 0, 1, 1, tagQuery)
	s.grid.Add(s.query)
	return s, nil
}

// Add places colliders in the space. Adding a collider twice is a no-op.
func (s *Space) Add(colliders ...*Collider) {
	for _, c := range colliders {
		if c == nil || c.Shape == nil {
			continue
		}
		if _, ok := s.order[c]; ok {
			continue
		}
		s.order[c] = s.nextOrder
		s.nextOrder++
		s.colliders = append(s.colliders, c)

		lo, hi := c.Shape.Bounds()
		if !s.contains(lo, hi) {
			s.outside = append(s.outside, c)
			continue
		}
		x, y, w, h := s.footprint(lo, hi)
		c.object = resolv.NewObject(x, y, w, h, c.layers...)
		c.object.Data = c
		s.grid.Add(c.object)
	}
}

// Remove takes colliders out of the space.
func (s *Space) Remove(colliders ...*Collider) {
	for _, c := range colliders {
		if _, ok := s.order[c]; !ok {
			continue
		}
		delete(s.order, c)
		s.colliders = removeCollider(s.colliders, c)
		s.outside = removeCollider(s.outside, c)
		if c.object != nil {
			s.grid.Remove(c.object)
			c.object = nil
		}
	}
}

// Colliders returns every collider in insertion order.
func (s *Space) Colliders() []*Collider {
	return s.colliders
}

// SphereCast sweeps a sphere of the given radius from origin along dir for up
// to maxDistance and returns the first collider on any of the given layers.
// Colliders the sphere already overlaps at origin are ignored.
func (s *Space) SphereCast(origin mgl64.Vec3, radius float64, dir mgl64.Vec3, maxDistance float64, layers ...string) (Hit, bool) {
	if radius < 0 || maxDistance <= 0 || dir.LenSqr() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mul(maxDistance))

	var best Hit
	found := false
	bestOrder := 0
	for _, c := range s.candidates(origin, end, radius, layers) {
		t, n, ok := c.Shape.sweep(origin, dir, radius)
		if !ok || t > maxDistance {
			continue
		}
		ord := s.order[c]
		if found && (t > best.Distance || (t == best.Distance && ord > bestOrder)) {
			continue
		}
		center := origin.Add(dir.Mul(t))
		best = Hit{
			Point:    center.Sub(n.Mul(radius)),
			Normal:   n,
			Distance: t,
			Collider: c,
		}
		bestOrder = ord
		found = true
	}
	return best, found
}

// Raycast is a zero-radius SphereCast.
func (s *Space) Raycast(origin, dir mgl64.Vec3, maxDistance float64, layers ...string) (Hit, bool) {
	return s.SphereCast(origin, 0, dir, maxDistance, layers...)
}

// Overlap returns the colliders on the given layers within radius of center,
// in insertion order.
func (s *Space) Overlap(center mgl64.Vec3, radius float64, layers ...string) []*Collider {
	var out []*Collider
	for _, c := range s.candidates(center, center, radius, layers) {
		if c.Distance(center) <= radius {
			out = append(out, c)
		}
	}
	return out
}

// candidates returns the colliders whose XZ footprint may touch the swept
// box from a to b inflated by r, sorted by insertion order.
func (s *Space) candidates(a, b mgl64.Vec3, r float64, layers []string) []*Collider {
	pad := mgl64.Vec3{r, r, r}
	lo := mgl64.Vec3{math.Min(a.X(), b.X()), 0, math.Min(a.Z(), b.Z())}.Sub(pad)
	hi := mgl64.Vec3{math.Max(a.X(), b.X()), 0, math.Max(a.Z(), b.Z())}.Add(pad)

	var out []*Collider
	for _, c := range s.outside {
		if c.OnLayer(layers...) {
			out = append(out, c)
		}
	}

	// Nothing in the grid can be reached from outside it.
	if hi.X() < s.min.X() || lo.X() > s.max.X() || hi.Z() < s.min.Z() || lo.Z() > s.max.Z() {
		return out
	}
	lo = mgl64.Vec3{math.Max(lo.X(), s.min.X()), 0, math.Max(lo.Z(), s.min.Z())}
	hi = mgl64.Vec3{math.Min(hi.X(), s.max.X()), 0, math.Min(hi.Z(), s.max.Z())}

	s.query.X, s.query.Y, s.query.W, s.query.H = s.footprint(lo, hi)
	s.query.Update()

	if check := s.query.Check(0, 0, layers...); check != nil {
		seen := make(map[*Collider]bool, len(check.Objects))
		for _, obj := range check.Objects {
			c, ok := obj.Data.(*Collider)
			if !ok || seen[c] || !c.OnLayer(layers...) {
				continue
			}
			seen[c] = true
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return s.order[out[i]] < s.order[out[j]] })
	return out
}

func (s *Space) contains(lo, hi mgl64.Vec3) bool {
	return lo.X() >= s.min.X() && lo.Z() >= s.min.Z() && hi.X() <= s.max.X() && hi.Z() <= s.max.Z()
}

// footprint maps an XZ rectangle in meters to whole resolv units. resolv
// finds an object's last cell from X+W-1, so the width covers one unit past
// the rounded-up far edge.
func (s *Space) footprint(lo, hi mgl64.Vec3) (x, y, w, h float64) {
	x = math.Floor((lo.X() - s.min.X()) * unitsPerMeter)
	y = math.Floor((lo.Z() - s.min.Z()) * unitsPerMeter)
	w = math.Ceil((hi.X()-s.min.X())*unitsPerMeter) - x + 1
	h = math.Ceil((hi.Z()-s.min.Z())*unitsPerMeter) - y + 1
	return x, y, w, h
}

func removeCollider(list []*Collider, c *Collider) []*Collider {
	for i, have := range list {
		if have == c {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
