package locomotion

import (
	"testing"

	"github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/shared/collision"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIntegrator(t *testing.T, colliders ...*collision.Collider) *Integrator {
	t.Helper()
	return NewIntegrator(newTestResolver(floorSpace(t, colliders...)), config.Current().Locomotion)
}

// land drops body until it reports ground contact.
func land(t *testing.T, in *Integrator, body *Body) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if in.Integrate(body, testDT, false).Grounded {
			return
		}
	}
	require.Fail(t, "body never landed", "position %v", body.Position)
}

func TestIntegratorLands(t *testing.T) {
	in := newTestIntegrator(t)
	body := NewBody(mgl64.Vec3{0, 1, 0}, 0)

	land(t, in, body)
	assert.InDelta(t, 0, body.Position.Y(), 0.01)
	assert.Equal(t, 0.0, body.Velocity.Y())

	// Resting contact is re-established at least every other frame.
	grounded := 0
	for i := 0; i < 30; i++ {
		if in.Integrate(body, testDT, false).Grounded {
			grounded++
		}
		assert.InDelta(t, 0, body.Position.Y(), 0.01, "frame %d", i)
	}
	assert.GreaterOrEqual(t, grounded, 15)
}

func TestIntegratorWalksAcrossFloor(t *testing.T) {
	in := newTestIntegrator(t)
	body := NewBody(mgl64.Vec3{0, 0.5, 0}, 0)
	land(t, in, body)
	y := body.Position.Y()

	for i := 0; i < 45; i++ {
		body.Velocity[0] = 2
		in.Integrate(body, testDT, false)
	}
	assert.InDelta(t, 1.0, body.Position.X(), 1e-6)
	assert.InDelta(t, y, body.Position.Y(), 0.01)
}

func TestIntegratorStopsAtWall(t *testing.T) {
	wall := collision.NewCollider("wall", collision.NewBox(mgl64.Vec3{1, 1, 0}, mgl64.Vec3{0.01, 2, 4}), collision.LayerLocomotion)
	in := newTestIntegrator(t, floor(), wall)
	body := NewBody(mgl64.Vec3{0, 0.5, 0}, 0)
	land(t, in, body)

	collided := false
	for i := 0; i < 60; i++ {
		body.Velocity[0] = 5
		m := in.Integrate(body, testDT, false)
		collided = collided || (m.Collided && body.Velocity.X() == 0)
	}
	assert.True(t, collided)
	assert.Less(t, body.Position.X(), 0.995-0.2)
}

func TestIntegratorSuspended(t *testing.T) {
	in := newTestIntegrator(t)
	body := NewBody(mgl64.Vec3{0, 2, 0}, 0)
	body.Velocity = mgl64.Vec3{1, -3, 0}

	m := in.Integrate(body, testDT, true)
	assert.Equal(t, Motion{}, m)
	assert.Equal(t, mgl64.Vec3{0, 2, 0}, body.Position)
	assert.Equal(t, mgl64.Vec3{}, body.Velocity)
}

func TestIntegratorIgnoresBadStep(t *testing.T) {
	in := newTestIntegrator(t)
	body := NewBody(mgl64.Vec3{0, 2, 0}, 0)
	body.Velocity = mgl64.Vec3{1, 0, 0}

	in.Integrate(body, 0, false)
	in.Integrate(body, -1, false)
	assert.Equal(t, mgl64.Vec3{0, 2, 0}, body.Position)
	assert.Equal(t, mgl64.Vec3{1, 0, 0}, body.Velocity)
	assert.Equal(t, mgl64.Vec3{0, 2.25, 0}, in.Center(body))
}
