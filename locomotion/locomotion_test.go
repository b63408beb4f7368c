package locomotion

import (
	"math"
	"testing"
	"time"

	"github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/collision"
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 90

var testHead = mgl64.Vec3{0, 0.5, 0}

func newTestLocomotion(t *testing.T, space *collision.Space) *Locomotion {
	t.Helper()
	return New(config.Current().Locomotion, testDashConfig(), newTestResolver(space), NewBody(mgl64.Vec3{}, 0))
}

// handsAt builds an alive frame with both hands at height y, 0.3m either side
// of the head, in tracking space.
func handsAt(frame int, y float64) Frame {
	return poseFrame(frame, testHead, mgl64.Vec3{-0.3, y, 0}, mgl64.Vec3{0.3, y, 0})
}

func poseFrame(frame int, head, left, right mgl64.Vec3) Frame {
	in := rig.Frame{Head: rig.NewPose(head), HeadValid: true}
	in.Hands[rig.Left] = rig.Hand{Pose: rig.NewPose(left), Valid: true}
	in.Hands[rig.Right] = rig.Hand{Pose: rig.NewPose(right), Valid: true}
	return Frame{
		Now:   time.Duration(frame) * time.Second / 90,
		DT:    testDT,
		Input: in,
		Alive: true,
	}
}

func withTriggers(f Frame, left, right bool) Frame {
	f.Input.Hands[rig.Left].Trigger = rig.ActionState{Pressed: left}
	f.Input.Hands[rig.Right].Trigger = rig.ActionState{Pressed: right}
	return f
}

func hasEvent[T Event](events []Event) bool {
	for _, e := range events {
		if _, ok := e.(T); ok {
			return true
		}
	}
	return false
}

func TestFreeHandsLeaveBodyAlone(t *testing.T) {
	l := newTestLocomotion(t, floorSpace(t))

	for i := 0; i < 5; i++ {
		res := l.ResolveFrame(handsAt(i, 0.3+0.05*float64(i)))
		assert.Equal(t, Idle, res.Mode)
		assert.Equal(t, [2]bool{}, res.Touching)
	}
	assert.Equal(t, mgl64.Vec3{}, l.Body().Position)
	assertVecInDelta(t, mgl64.Vec3{0.3, 0.5, 0}, l.Hand(rig.Right).LastResolved, 1e-12)
}

func TestTwoHandsAnchorAndPush(t *testing.T) {
	l := newTestLocomotion(t, floorSpace(t))

	res := l.ResolveFrame(handsAt(0, 0.06))
	require.Equal(t, Idle, res.Mode)

	// Pressing into the floor: each hand is held one radius above it, so
	// the body rises by the overlap.
	res = l.ResolveFrame(handsAt(1, 0.01))
	require.Equal(t, TwoHandContact, res.Mode)
	assert.InDelta(t, 0.04, l.Body().Position.Y(), 1e-9)
	assert.True(t, l.IsHandTouching(rig.Left))
	assert.True(t, l.IsHandTouching(rig.Right))
	assert.True(t, hasEvent[HandContact](res.Events))

	// Anchored hands keep their grip: the body moves opposite to them.
	launched := false
	y := 0.01
	for i := 2; i < 7; i++ {
		y -= 0.02
		res = l.ResolveFrame(handsAt(i, y))
		require.Equal(t, TwoHandContact, res.Mode, "frame %d", i)
		want := 0.04 + 0.02*float64(i-1)
		assert.InDelta(t, want, l.Body().Position.Y(), 1e-9, "frame %d", i)
		assert.InDelta(t, 0, l.Body().Position.X(), 1e-9)
		assert.InDelta(t, 0, l.Body().Position.Z(), 1e-9)
		assertVecInDelta(t, mgl64.Vec3{0, 0.02, 0}, res.BodyDelta, 1e-9)
		launched = launched || hasEvent[Launched](res.Events)
	}

	assert.True(t, launched)
	v := l.Body().Velocity
	assert.Greater(t, v.Y(), 0.0)
	assert.LessOrEqual(t, v.Len(), config.Locomotion.MaxJumpSpeed+1e-9)
	assertVecInDelta(t, l.History().Average().Mul(config.Locomotion.JumpMultiplier), v, 1e-9)
}

func TestHeadStopsBelowCeilingWhileRising(t *testing.T) {
	cfg := config.Current().Locomotion
	ceilingBottom := testHead.Y() + cfg.HeadRadius + 0.06
	ceiling := collision.NewCollider("ceiling",
		collision.NewBox(mgl64.Vec3{0, ceilingBottom + 0.5, 0}, mgl64.Vec3{30, 1, 30}), collision.LayerLocomotion)
	l := newTestLocomotion(t, floorSpace(t, floor(), ceiling))

	l.ResolveFrame(handsAt(0, 0.06))
	res := l.ResolveFrame(handsAt(1, 0.01))
	require.Equal(t, TwoHandContact, res.Mode)

	// Push the body up again while standing up into the ceiling.
	raised := testHead.Add(mgl64.Vec3{0, 0.05, 0})
	res = l.ResolveFrame(poseFrame(2, raised, mgl64.Vec3{-0.3, -0.01, 0}, mgl64.Vec3{0.3, -0.01, 0}))

	assertVecInDelta(t, l.Body().ToWorld(raised), res.Head, 1e-12)
	assert.GreaterOrEqual(t, ceilingBottom-res.Head.Y(), cfg.HeadRadius*cfg.DefaultPrecision-1e-9)
	assert.Less(t, res.Head.Y(), ceilingBottom)
}

func TestDisabledSkipsDisplacement(t *testing.T) {
	l := newTestLocomotion(t, floorSpace(t))
	l.ResolveFrame(handsAt(0, 0.06))

	f := handsAt(1, 0.01)
	f.Alive = false
	res := l.ResolveFrame(f)

	assert.Equal(t, Disabled, res.Mode)
	assert.Equal(t, mgl64.Vec3{}, l.Body().Position)
	assert.False(t, l.IsHandTouching(rig.Left))
	assertVecInDelta(t, mgl64.Vec3{-0.3, 0.01, 0}, res.Followers[rig.Left], 1e-12)
}

func TestNonFinitePoseIsIgnored(t *testing.T) {
	l := newTestLocomotion(t, floorSpace(t))
	l.ResolveFrame(handsAt(0, 0.3))

	f := poseFrame(1, mgl64.Vec3{math.NaN(), 0, 0}, mgl64.Vec3{math.Inf(1), 0, 0}, mgl64.Vec3{0.3, 0.3, 0})
	res := l.ResolveFrame(f)

	assert.Equal(t, Idle, res.Mode)
	assert.True(t, gamemath.IsFinite(l.Body().Position))
	assert.True(t, gamemath.IsFinite(l.History().Average()))
	assertVecInDelta(t, mgl64.Vec3{-0.3, 0.3, 0}, res.Followers[rig.Left], 1e-12)
	assertVecInDelta(t, testHead, res.Head, 1e-12)
}

func TestDashLaunchesBody(t *testing.T) {
	l := newTestLocomotion(t, floorSpace(t))
	l.ResolveFrame(handsAt(0, 0.3))

	f := withTriggers(handsAt(1, 0.3), true, false)
	f.RelativeVelocity[rig.Left] = mgl64.Vec3{3, 0, 0}
	res := l.ResolveFrame(f)

	assert.True(t, hasEvent[DashStarted](res.Events))
	assertVecInDelta(t, mgl64.Vec3{10, 0, 0}, l.Body().Velocity, 1e-9)
	attack := l.Attack()
	assert.True(t, attack.IsDashing)
	assert.Equal(t, rig.Left, attack.DashSide)
	assert.Equal(t, 2.0, attack.HitboxScale[rig.Left])

	// Dying ends the dash.
	f = handsAt(2, 0.3)
	f.Alive = false
	res = l.ResolveFrame(f)
	assert.True(t, hasEvent[DashEnded](res.Events))
	assert.False(t, l.Attack().IsDashing)
	assert.Equal(t, 1.0, l.Attack().HitboxScale[rig.Left])
}

func TestGroundPound(t *testing.T) {
	l := newTestLocomotion(t, floorSpace(t))
	l.ResolveFrame(handsAt(0, 0.3))

	l.ApplyImpulse(mgl64.Vec3{0, -5, 0})
	res := l.ResolveFrame(withTriggers(handsAt(1, 0.3), true, true))
	assert.True(t, hasEvent[GroundPoundStarted](res.Events))
	assert.True(t, l.Attack().IsGroundPounding)

	res = l.ResolveFrame(withTriggers(handsAt(2, 0.3), true, true))
	assert.False(t, hasEvent[GroundPoundStarted](res.Events), "fires once")
	assert.True(t, l.Attack().IsGroundPounding)

	l.ResolveFrame(withTriggers(handsAt(3, 0.3), true, false))
	assert.False(t, l.Attack().IsGroundPounding)
}

func TestTurnRotatesAboutHead(t *testing.T) {
	l := newTestLocomotion(t, floorSpace(t))
	l.Body().Position = mgl64.Vec3{1, 0, 1}
	head := mgl64.Vec3{0.2, 1.6, 0.1}
	res := l.ResolveFrame(poseFrame(0, head, mgl64.Vec3{-0.3, 1, 0}, mgl64.Vec3{0.3, 1, 0}))
	before := res.Head

	l.History().Record(mgl64.Vec3{0, 0, 2})
	avg := l.History().Average()

	l.Turn(90)
	assert.Equal(t, 90.0, l.Body().Yaw)
	assertVecInDelta(t, before, l.Body().ToWorld(head), 1e-9)
	assertVecInDelta(t, gamemath.YawRotation(90).Rotate(avg), l.History().Average(), 1e-12)
}

func TestRespawnClearsState(t *testing.T) {
	l := newTestLocomotion(t, floorSpace(t))
	l.ResolveFrame(handsAt(0, 0.06))
	l.ResolveFrame(handsAt(1, 0.01))
	require.True(t, l.IsHandTouching(rig.Left))

	spawn := mgl64.Vec3{3, 1, -2}
	l.RespawnTo(spawn)

	assert.Equal(t, spawn, l.Body().Position)
	assert.Equal(t, mgl64.Vec3{}, l.Body().Velocity)
	assert.Equal(t, mgl64.Vec3{}, l.History().Average())
	assert.False(t, l.IsHandTouching(rig.Left))
	assert.False(t, l.IsHandTouching(rig.Right))
}

func TestShouldUnstick(t *testing.T) {
	wall := collision.NewCollider("wall", collision.NewBox(mgl64.Vec3{1, 1.5, 0}, mgl64.Vec3{0.01, 3, 4}), collision.LayerLocomotion)

	setup := func(t *testing.T, space *collision.Space, last mgl64.Vec3) *Locomotion {
		l := newTestLocomotion(t, space)
		h := l.Hand(rig.Left)
		h.Current = mgl64.Vec3{2, 1, 0}
		h.LastResolved = last
		return l
	}
	head := mgl64.Vec3{0, 1.6, 0}

	t.Run("clear line of sight", func(t *testing.T) {
		l := setup(t, floorSpace(t), mgl64.Vec3{0.5, 1, 0})
		assert.True(t, l.shouldUnstick(rig.Left, head))
	})

	t.Run("blocked line of sight", func(t *testing.T) {
		l := setup(t, floorSpace(t, floor(), wall), mgl64.Vec3{0.5, 1, 0})
		assert.False(t, l.shouldUnstick(rig.Left, head))
	})

	t.Run("not far enough", func(t *testing.T) {
		l := setup(t, floorSpace(t), mgl64.Vec3{1.5, 1, 0})
		assert.False(t, l.shouldUnstick(rig.Left, head))
	})
}

func TestContactMode(t *testing.T) {
	assert.Equal(t, Idle, contactMode([2]bool{}))
	assert.Equal(t, OneHandContact, contactMode([2]bool{false, true}))
	assert.Equal(t, TwoHandContact, contactMode([2]bool{true, true}))
	assert.Equal(t, "two_hands", TwoHandContact.String())
}
