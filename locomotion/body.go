package locomotion

import (
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// Body is the avatar's rigid transform. Tracked poses are relative to it:
// the world position of a tracked point is Position + Ry(Yaw)*local.
type Body struct {
	Position mgl64.Vec3
	Yaw      float64 // Degrees about world up
	Velocity mgl64.Vec3
	Spawn    mgl64.Vec3 // Captured once at creation, reused on respawn
}

// NewBody creates a body at spawn.
func NewBody(spawn mgl64.Vec3, yaw float64) *Body {
	return &Body{Position: spawn, Yaw: yaw, Spawn: spawn}
}

// Rotation returns the body's yaw as a quaternion.
func (b *Body) Rotation() mgl64.Quat {
	return gamemath.YawRotation(b.Yaw)
}

// ToWorld maps a tracking-space point into the world.
func (b *Body) ToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return b.Position.Add(b.Rotation().Rotate(local))
}

// PoseToWorld maps a tracking-space pose into the world.
func (b *Body) PoseToWorld(p rig.Pose) rig.Pose {
	return rig.Pose{
		Position: b.ToWorld(p.Position),
		Rotation: b.Rotation().Mul(p.Rotation),
	}
}

// DirectionToWorld rotates a tracking-space direction into the world.
func (b *Body) DirectionToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return b.Rotation().Rotate(local)
}

// HandKinematic tracks one hand between frames.
type HandKinematic struct {
	Current      mgl64.Vec3 // Reach-constrained socket this frame, world space
	LastResolved mgl64.Vec3 // Where the hand was held after collision last frame
	Offset       mgl64.Vec3 // Socket offset in hand-local space
	WasTouching  bool
}

// Socket returns the world position of the hand socket for a tracked pose.
func (h *HandKinematic) Socket(world rig.Pose) mgl64.Vec3 {
	return world.Transform(h.Offset)
}
