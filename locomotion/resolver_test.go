package locomotion

import (
	"math/rand"
	"testing"

	"github.com/automoto/intheclouds/shared/collision"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRadius    = 0.05
	testPrecision = 0.995
)

// floorSpace builds a large floor whose top face is y=0.
func floorSpace(t *testing.T, colliders ...*collision.Collider) *collision.Space {
	t.Helper()
	space, err := collision.NewSpace(mgl64.Vec3{-20, 0, -20}, mgl64.Vec3{20, 0, 20}, 1)
	require.NoError(t, err)
	if len(colliders) == 0 {
		colliders = append(colliders, floor())
	}
	space.Add(colliders...)
	return space
}

func floor() *collision.Collider {
	return collision.NewCollider("floor", collision.NewBox(mgl64.Vec3{0, -1, 0}, mgl64.Vec3{30, 2, 30}), collision.LayerLocomotion)
}

func newTestResolver(space *collision.Space) *Resolver {
	return NewResolver(NewProbe(space), 0.03, 0.001)
}

func TestProbeDegenerateQueries(t *testing.T) {
	p := NewProbe(floorSpace(t))

	_, ok := p.Cast(mgl64.Vec3{0, 0.1, 0}, testRadius, mgl64.Vec3{}, testPrecision)
	assert.False(t, ok, "zero displacement")

	_, ok = p.Cast(mgl64.Vec3{0, 0.1, 0}, 0, mgl64.Vec3{0, -1, 0}, testPrecision)
	assert.False(t, ok, "zero radius")

	_, ok = NewProbe(nil).Cast(mgl64.Vec3{0, 0.1, 0}, testRadius, mgl64.Vec3{0, -1, 0}, testPrecision)
	assert.False(t, ok, "no geometry")
}

func TestProbeIgnoresOtherLayers(t *testing.T) {
	prop := collision.NewCollider("prop", collision.NewBox(mgl64.Vec3{0, -1, 0}, mgl64.Vec3{30, 2, 30}), collision.LayerDamageable)
	p := NewProbe(floorSpace(t, prop))

	_, ok := p.Cast(mgl64.Vec3{0, 0.5, 0}, testRadius, mgl64.Vec3{0, -1, 0}, testPrecision)
	assert.False(t, ok)
}

func TestProbeCastStopsOnSurface(t *testing.T) {
	p := NewProbe(floorSpace(t))

	c, ok := p.Cast(mgl64.Vec3{0, 0.5, 0}, testRadius, mgl64.Vec3{0, -1, 0}, testPrecision)
	require.True(t, ok)
	assert.InDelta(t, testRadius, c.End.Y(), 1e-3)
	assert.GreaterOrEqual(t, c.End.Y(), testRadius*testPrecision)
	assert.InDelta(t, 1, c.Hit.Normal.Y(), 1e-9)
	assert.Equal(t, "floor", c.Hit.Collider.ID)
}

func TestResolveFreeMovement(t *testing.T) {
	r := newTestResolver(floorSpace(t))

	start := mgl64.Vec3{0, 1, 0}
	delta := mgl64.Vec3{0.2, 0.1, -0.3}
	end, hit := r.Resolve(start, testRadius, delta, testPrecision, true)
	assert.False(t, hit)
	assert.Equal(t, start.Add(delta), end)

	end, hit = r.Resolve(start, testRadius, mgl64.Vec3{}, testPrecision, true)
	assert.False(t, hit)
	assert.Equal(t, start, end)
}

func TestResolveNeverEmbedsInFloor(t *testing.T) {
	r := newTestResolver(floorSpace(t))
	rng := rand.New(rand.NewSource(7))
	minClearance := testRadius * testPrecision

	for i := 0; i < 200; i++ {
		start := mgl64.Vec3{
			rng.Float64()*4 - 2,
			testRadius + 0.01 + rng.Float64()*0.5,
			rng.Float64()*4 - 2,
		}
		target := mgl64.Vec3{
			start.X() + rng.Float64()*2 - 1,
			-0.01 - rng.Float64()*0.5,
			start.Z() + rng.Float64()*2 - 1,
		}
		end, hit := r.Resolve(start, testRadius, target.Sub(start), testPrecision, i%2 == 0)
		require.True(t, hit, "case %d: %v -> %v", i, start, target)
		assert.GreaterOrEqual(t, end.Y(), minClearance-1e-9, "case %d: %v -> %v", i, start, target)
	}
}

func TestResolveWallFaceNearCellEdge(t *testing.T) {
	// Broadphase cells are 1m; faces just past an edge occupy the next cell
	// by only a few centimetres.
	for _, maxZ := range []float64{0.97, 0.999, 1.001, 1.03, 2.06, -0.98} {
		wall := collision.NewCollider("wall", collision.Box{
			Min: mgl64.Vec3{-2, -1, maxZ - 0.5},
			Max: mgl64.Vec3{2, 3, maxZ},
		}, collision.LayerLocomotion)
		space, err := collision.NewSpace(mgl64.Vec3{-20, 0, -20}, mgl64.Vec3{20, 0, 20}, 1)
		require.NoError(t, err)
		space.Add(wall)
		r := newTestResolver(space)

		start := mgl64.Vec3{0, 1, maxZ + 0.17}
		end, hit := r.Resolve(start, testRadius, mgl64.Vec3{0, 0, -0.14}, testPrecision, true)
		require.True(t, hit, "face at z=%v", maxZ)
		assert.GreaterOrEqual(t, end.Z()-maxZ, testRadius*testPrecision-1e-9, "face at z=%v", maxZ)
	}
}

func TestResolveThinWall(t *testing.T) {
	wall := collision.NewCollider("wall", collision.NewBox(mgl64.Vec3{1, 1, 0}, mgl64.Vec3{0.01, 2, 2}), collision.LayerLocomotion)
	r := newTestResolver(floorSpace(t, wall))

	end, hit := r.Resolve(mgl64.Vec3{0, 1, 0}, testRadius, mgl64.Vec3{2, 0, 0}, testPrecision, true)
	require.True(t, hit)
	assert.LessOrEqual(t, end.X(), 0.995-testRadius*testPrecision+1e-9)
}

func TestResolveSlip(t *testing.T) {
	start := mgl64.Vec3{0, 0.1, 0}
	delta := mgl64.Vec3{1, -0.2, 0}

	t.Run("sticky surface holds", func(t *testing.T) {
		r := newTestResolver(floorSpace(t, floor().WithSurface(0)))
		end, hit := r.Resolve(start, testRadius, delta, testPrecision, false)
		require.True(t, hit)
		assert.Less(t, end.X(), 0.3)
		assert.GreaterOrEqual(t, end.Y(), testRadius*testPrecision-1e-9)
	})

	t.Run("slippery surface slides the whole way", func(t *testing.T) {
		r := newTestResolver(floorSpace(t, floor().WithSurface(1)))
		end, hit := r.Resolve(start, testRadius, delta, testPrecision, false)
		require.True(t, hit)
		assert.InDelta(t, 1.0, end.X(), 0.01)
		assert.InDelta(t, 0, end.Z(), 1e-9)
		assert.GreaterOrEqual(t, end.Y(), testRadius*testPrecision-1e-9)
	})

	t.Run("default slip depends on hand count", func(t *testing.T) {
		r := newTestResolver(floorSpace(t))
		single, _ := r.Resolve(start, testRadius, delta, testPrecision, true)
		double, _ := r.Resolve(start, testRadius, delta, testPrecision, false)
		assert.Greater(t, double.X(), single.X())
	})
}

func TestResolveAlreadyTouching(t *testing.T) {
	r := newTestResolver(floorSpace(t))

	// Resting exactly one radius above the floor, pressing down.
	start := mgl64.Vec3{0, testRadius, 0}
	end, hit := r.Resolve(start, testRadius, mgl64.Vec3{0, -0.01, 0}, testPrecision, true)
	require.True(t, hit)
	assert.GreaterOrEqual(t, end.Y(), testRadius*testPrecision-1e-9)
}
