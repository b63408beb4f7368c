package systems

import (
	"github.com/automoto/intheclouds/climbing"
	"github.com/automoto/intheclouds/components"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/locomotion"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/automoto/intheclouds/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// coyoteFrames is how many airborne frames still count as grounded. Resting
// contact is not re-detected every frame.
const coyoteFrames = 2

// UpdateAvatars runs one movement frame for every avatar: relative hand
// velocity, the movement strategy, climbing and the ballistic integrator.
func UpdateAvatars(ecs *ecs.ECS) {
	clock := getClock(ecs)
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)

	tags.Avatar.Each(ecs.World, func(e *donburi.Entry) {
		avatar := components.Avatar.Get(e)
		in := components.RigInput.Get(e)
		state := components.State.Get(e)
		health := components.Health.Get(e)

		alive := health.Alive() && !e.HasComponent(components.Death)
		body := avatar.Body()
		dt := clock.DT()

		frame := locomotion.Frame{
			Now:   clock.Now,
			DT:    dt,
			Input: in.Frame,
			Alive: alive,
		}
		head := body.ToWorld(in.Frame.Head.Position)
		for _, side := range rig.Sides {
			hand := body.ToWorld(in.Frame.Hands[side].Pose.Position)
			frame.RelativeVelocity[side] = avatar.Velocity[side].Update(hand, head, dt, avatar.IsDesktop())
		}

		res := avatar.Strategy.ResolveFrame(frame)
		publish(ecs.World, e, avatar.Name, clock.Frame, res.Events...)

		// Climbing
		syncClimbRegions(space.Space, avatar.Climb, res.Followers)
		climbIn := climbing.Input{Allowed: alive && !avatar.IsDesktop()}
		for _, side := range rig.Sides {
			hand := in.Frame.Hands[side]
			climbIn.Hands[side] = climbing.HandInput{
				GripActivated:   hand.Grip.JustPressed,
				GripDeactivated: hand.Grip.JustReleased,
				Delta:           body.DirectionToWorld(in.HandDelta(side)),
			}
		}
		climbOut := avatar.Climb.Update(climbIn)
		if climbOut.Climbing {
			body.Position = body.Position.Add(climbOut.BodyDelta)
		}
		for _, ev := range climbOut.Events {
			if stopped, ok := ev.(climbing.ClimbStopped); ok && !stopped.Canceled {
				body.Velocity = releaseVelocity(stopped.ReleaseDelta, dt, cfg.Climb.MaxReleaseSpeed)
			}
		}
		publish(ecs.World, e, avatar.Name, clock.Frame, climbOut.Events...)

		// Ballistics
		motion := avatar.Integrator.Integrate(body, dt, climbOut.Climbing)
		if motion.Grounded {
			state.AirFrames = 0
		} else {
			state.AirFrames++
		}
		grounded := motion.Grounded ||
			(state.Grounded && state.AirFrames <= coyoteFrames && body.Velocity.Y() <= 0 && !climbOut.Climbing)
		if avatar.Desktop != nil {
			avatar.Desktop.SetGrounded(grounded)
		}

		state.PreviousMode = state.CurrentMode
		state.CurrentMode = res.Mode
		if state.CurrentMode == state.PreviousMode {
			state.ModeTimer++
		} else {
			state.ModeTimer = 0
		}
		state.Touching = res.Touching
		state.Followers = res.Followers
		state.Head = body.ToWorld(in.Frame.Head.Position)
		state.Grounded = grounded
		state.Climbing = climbOut.Climbing
	})
}

// releaseVelocity turns the last climbing hand displacement into a fling:
// the body keeps moving the way the hand pulled it.
func releaseVelocity(releaseDelta mgl64.Vec3, dt, maxSpeed float64) mgl64.Vec3 {
	if !(dt > 0) {
		return mgl64.Vec3{}
	}
	v := releaseDelta.Mul(-1 / dt)
	if !gamemath.IsFinite(v) {
		return mgl64.Vec3{}
	}
	return gamemath.ClampMagnitude(v, maxSpeed)
}
