package collision

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSpace(t *testing.T) *Space {
	t.Helper()
	s, err := NewSpace(mgl64.Vec3{-10, 0, -10}, mgl64.Vec3{10, 0, 10}, 1)
	require.NoError(t, err)
	return s
}

func TestNewSpaceRejectsBadArguments(t *testing.T) {
	_, err := NewSpace(mgl64.Vec3{}, mgl64.Vec3{1, 0, 1}, 0)
	assert.Error(t, err)

	_, err = NewSpace(mgl64.Vec3{1, 0, 1}, mgl64.Vec3{1, 0, 1}, 1)
	assert.Error(t, err)
}

func TestSphereCastAgainstFloor(t *testing.T) {
	s := newTestSpace(t)
	floor := NewCollider("floor", NewBox(mgl64.Vec3{0, -0.5, 0}, mgl64.Vec3{10, 1, 10}), LayerLocomotion)
	s.Add(floor)

	hit, ok := s.SphereCast(mgl64.Vec3{0, 1, 0}, 0.1, mgl64.Vec3{0, -1, 0}, 2, LayerLocomotion)
	require.True(t, ok)
	assert.InDelta(t, 0.9, hit.Distance, 1e-9)
	assert.InDelta(t, 1, hit.Normal.Y(), 1e-9)
	assert.InDelta(t, 0, hit.Point.Y(), 1e-9)
	assert.Same(t, floor, hit.Collider)

	t.Run("too short", func(t *testing.T) {
		_, ok := s.SphereCast(mgl64.Vec3{0, 1, 0}, 0.1, mgl64.Vec3{0, -1, 0}, 0.5, LayerLocomotion)
		assert.False(t, ok)
	})

	t.Run("other layer", func(t *testing.T) {
		_, ok := s.SphereCast(mgl64.Vec3{0, 1, 0}, 0.1, mgl64.Vec3{0, -1, 0}, 2, LayerClimbable)
		assert.False(t, ok)
	})

	t.Run("starting inside is ignored", func(t *testing.T) {
		_, ok := s.SphereCast(mgl64.Vec3{0, 0.05, 0}, 0.1, mgl64.Vec3{0, -1, 0}, 2, LayerLocomotion)
		assert.False(t, ok)
	})
}

func TestSphereCastHitsBoxEdge(t *testing.T) {
	s := newTestSpace(t)
	s.Add(NewCollider("crate", NewBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1}), LayerLocomotion))

	// Passes just above the top edge at x=+0.5; only the rounded edge is touched.
	origin := mgl64.Vec3{2, 0.55, 0}
	hit, ok := s.SphereCast(origin, 0.1, mgl64.Vec3{-1, 0, 0}, 4, LayerLocomotion)
	require.True(t, ok)

	center := origin.Add(mgl64.Vec3{-hit.Distance, 0, 0})
	edge := mgl64.Vec3{0.5, 0.5, 0}
	assert.InDelta(t, 0.1, center.Sub(edge).Len(), 1e-6)
	assert.InDelta(t, 1, hit.Normal.Len(), 1e-9)
	assert.Greater(t, hit.Normal.X(), 0.0)
	assert.Greater(t, hit.Normal.Y(), 0.0)
}

func TestSphereCastPicksNearest(t *testing.T) {
	s := newTestSpace(t)
	far := NewCollider("far", NewBox(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{2, 2, 1}), LayerLocomotion)
	near := NewCollider("near", Sphere{Center: mgl64.Vec3{0, 0, 2}, Radius: 0.5}, LayerLocomotion)
	s.Add(far, near)

	hit, ok := s.SphereCast(mgl64.Vec3{}, 0.25, mgl64.Vec3{0, 0, 1}, 10, LayerLocomotion)
	require.True(t, ok)
	assert.Same(t, near, hit.Collider)
	assert.InDelta(t, 1.25, hit.Distance, 1e-9)
	assert.InDelta(t, -1, hit.Normal.Z(), 1e-9)
}

func TestRaycast(t *testing.T) {
	s := newTestSpace(t)
	wall := NewCollider("wall", NewBox(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{0.02, 4, 4}), LayerLocomotion)
	s.Add(wall)

	hit, ok := s.Raycast(mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, 5, LayerLocomotion)
	require.True(t, ok)
	assert.InDelta(t, 2.99, hit.Distance, 1e-9)
	assert.Equal(t, mgl64.Vec3{-1, 0, 0}, hit.Normal)

	_, ok = s.Raycast(mgl64.Vec3{}, mgl64.Vec3{-1, 0, 0}, 5, LayerLocomotion)
	assert.False(t, ok)

	_, ok = s.Raycast(mgl64.Vec3{}, mgl64.Vec3{}, 5, LayerLocomotion)
	assert.False(t, ok, "zero direction")
}

func TestCollidersOutsideGridAreStillFound(t *testing.T) {
	s := newTestSpace(t)
	ground := NewCollider("ground", NewBox(mgl64.Vec3{0, -1, 0}, mgl64.Vec3{100, 1, 100}), LayerLocomotion)
	s.Add(ground)

	_, ok := s.SphereCast(mgl64.Vec3{40, 1, 40}, 0.1, mgl64.Vec3{0, -1, 0}, 3, LayerLocomotion)
	assert.True(t, ok)
}

func TestOverlapAndRemove(t *testing.T) {
	s := newTestSpace(t)
	bar := NewCollider("bar", NewBox(mgl64.Vec3{1, 1, 1}, mgl64.Vec3{0.1, 2, 0.1}), LayerClimbable)
	rock := NewCollider("rock", Sphere{Center: mgl64.Vec3{1, 1, 1.3}, Radius: 0.1}, LayerLocomotion, LayerClimbable)
	s.Add(bar, rock, bar)
	assert.Len(t, s.Colliders(), 2)

	got := s.Overlap(mgl64.Vec3{1, 1, 1.12}, 0.1, LayerClimbable)
	assert.Equal(t, []*Collider{bar, rock}, got)

	got = s.Overlap(mgl64.Vec3{1, 1, 1.12}, 0.1, LayerLocomotion)
	assert.Equal(t, []*Collider{rock}, got)

	s.Remove(bar)
	got = s.Overlap(mgl64.Vec3{1, 1, 1.12}, 0.1, LayerClimbable)
	assert.Equal(t, []*Collider{rock}, got)
	assert.Len(t, s.Colliders(), 1)
}

func TestQueriesFindGeometryJustPastCellEdge(t *testing.T) {
	for _, edge := range []float64{0.01, 0.03, 0.06, 0.5} {
		s := newTestSpace(t)
		// Occupies [-1, edge] in Z: the cell starting at z=0 only by edge.
		wall := NewCollider("wall", Box{Min: mgl64.Vec3{-1, 0, -1}, Max: mgl64.Vec3{1, 2, edge}}, LayerLocomotion)
		s.Add(wall)

		center := mgl64.Vec3{0, 1, edge + 0.07}
		assert.Equal(t, []*Collider{wall}, s.Overlap(center, 0.1, LayerLocomotion), "edge %v", edge)

		hit, ok := s.SphereCast(center, 0.05, mgl64.Vec3{0, 0, -1}, 0.1, LayerLocomotion)
		require.True(t, ok, "edge %v", edge)
		assert.InDelta(t, 0.02, hit.Distance, 1e-9, "edge %v", edge)
	}
}

func TestHitSlip(t *testing.T) {
	plain := NewCollider("plain", Sphere{Radius: 1})
	ice := NewCollider("ice", Sphere{Radius: 1}).WithSurface(1.5)

	assert.Equal(t, 0.03, Hit{Collider: plain}.Slip(0.03))
	assert.Equal(t, 1.0, Hit{Collider: ice}.Slip(0.03))
	assert.Equal(t, 0.03, Hit{}.Slip(0.03))
}
