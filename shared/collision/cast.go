package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const parallelEpsilon = 1e-12

// sweep for a sphere collider. A cast that starts inside the inflated sphere
// does not report it.
func (s Sphere) sweep(origin, dir mgl64.Vec3, r float64) (float64, mgl64.Vec3, bool) {
	t, ok := raySphere(origin, dir, s.Center, s.Radius+r)
	if !ok {
		return 0, mgl64.Vec3{}, false
	}
	n := origin.Add(dir.Mul(t)).Sub(s.Center)
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	} else {
		n = dir.Mul(-1)
	}
	return t, n, true
}

// sweep for a box collider. The swept volume is the box inflated by r:
// three slabs, twelve edge cylinders and eight corner spheres. The earliest
// entry over all of them is the time of first contact.
func (b Box) sweep(origin, dir mgl64.Vec3, r float64) (float64, mgl64.Vec3, bool) {
	if r <= 0 {
		t, axis, ok := rayBox(origin, dir, b.Min, b.Max)
		if !ok {
			return 0, mgl64.Vec3{}, false
		}
		return t, axisNormal(axis, dir), true
	}
	if origin.Sub(b.ClosestPoint(origin)).LenSqr() <= r*r {
		return 0, mgl64.Vec3{}, false
	}

	best := inf
	bestAxis := -1
	for axis := 0; axis < 3; axis++ {
		lo, hi := b.Min, b.Max
		lo[axis] -= r
		hi[axis] += r
		if t, entry, ok := rayBox(origin, dir, lo, hi); ok && t < best {
			best, bestAxis = t, entry
		}
	}
	for _, t := range b.edgeHits(origin, dir, r) {
		if t < best {
			best, bestAxis = t, -1
		}
	}
	for _, c := range b.corners() {
		if t, ok := raySphere(origin, dir, c, r); ok && t < best {
			best, bestAxis = t, -1
		}
	}
	if math.IsInf(best, 1) {
		return 0, mgl64.Vec3{}, false
	}

	center := origin.Add(dir.Mul(best))
	n := center.Sub(b.ClosestPoint(center))
	if l := n.Len(); l > 1e-9 {
		return best, n.Mul(1 / l), true
	}
	if bestAxis >= 0 {
		return best, axisNormal(bestAxis, dir), true
	}
	return best, dir.Mul(-1), true
}

func (b Box) corners() [8]mgl64.Vec3 {
	var out [8]mgl64.Vec3
	for i := range out {
		p := b.Min
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				p[axis] = b.Max[axis]
			}
		}
		out[i] = p
	}
	return out
}

// edgeHits returns entry times against the cylinders of radius r around each
// of the twelve box edges. Each edge runs along one axis, so the test is a 2D
// ray-circle intersection on the other two axes plus a range check.
func (b Box) edgeHits(origin, dir mgl64.Vec3, r float64) []float64 {
	var out []float64
	for axis := 0; axis < 3; axis++ {
		u, v := (axis+1)%3, (axis+2)%3
		du, dv := dir[u], dir[v]
		a := du*du + dv*dv
		if a < parallelEpsilon {
			continue
		}
		for _, cu := range [2]float64{b.Min[u], b.Max[u]} {
			for _, cv := range [2]float64{b.Min[v], b.Max[v]} {
				mu, mv := origin[u]-cu, origin[v]-cv
				half := mu*du + mv*dv
				c := mu*mu + mv*mv - r*r
				if c <= 0 || half >= 0 {
					continue
				}
				disc := half*half - a*c
				if disc < 0 {
					continue
				}
				t := (-half - math.Sqrt(disc)) / a
				along := origin[axis] + dir[axis]*t
				if t >= 0 && along >= b.Min[axis] && along <= b.Max[axis] {
					out = append(out, t)
				}
			}
		}
	}
	return out
}

// raySphere returns the entry time of a ray with a unit direction into a
// sphere. Rays starting inside miss.
func raySphere(origin, dir, center mgl64.Vec3, radius float64) (float64, bool) {
	m := origin.Sub(center)
	b := m.Dot(dir)
	c := m.Dot(m) - radius*radius
	if c <= 0 || b >= 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	return -b - math.Sqrt(disc), true
}

// rayBox is a slab test. It returns the entry time and the axis crossed on
// entry. Rays starting inside miss.
func rayBox(origin, dir, lo, hi mgl64.Vec3) (float64, int, bool) {
	tMin, tMax := math.Inf(-1), inf
	axis := -1
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < parallelEpsilon {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, -1, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tMin {
			tMin, axis = t1, i
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return 0, -1, false
		}
	}
	if axis < 0 || tMin < 0 {
		return 0, -1, false
	}
	return tMin, axis, true
}

// axisNormal is the outward face normal on the given axis for a ray moving
// along dir.
func axisNormal(axis int, dir mgl64.Vec3) mgl64.Vec3 {
	var n mgl64.Vec3
	if dir[axis] > 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return n
}
