// Package gamemath holds small vector helpers shared by the locomotion,
// climbing and combat packages. Everything works on mgl64 vectors in meters.
package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-9

// Up is world up.
var Up = mgl64.Vec3{0, 1, 0}

// Down is world down.
var Down = mgl64.Vec3{0, -1, 0}

// IsFinite reports whether every component is a real number.
func IsFinite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// IsZero reports whether v is shorter than Epsilon.
func IsZero(v mgl64.Vec3) bool {
	return v.LenSqr() < Epsilon*Epsilon
}

// SafeNormalize returns v scaled to unit length, or fallback when v is zero
// or not finite.
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if !IsFinite(v) || IsZero(v) {
		return fallback
	}
	return v.Normalize()
}

// ProjectOnPlane removes the component of v along the plane normal n.
func ProjectOnPlane(v, n mgl64.Vec3) mgl64.Vec3 {
	lenSqr := n.LenSqr()
	if lenSqr < Epsilon*Epsilon {
		return v
	}
	return v.Sub(n.Mul(v.Dot(n) / lenSqr))
}

// ClampMagnitude shortens v to max while keeping its direction.
func ClampMagnitude(v mgl64.Vec3, max float64) mgl64.Vec3 {
	l := v.Len()
	if l <= max || l == 0 {
		return v
	}
	return v.Mul(max / l)
}

// YawRotation returns a rotation of degrees about world up.
func YawRotation(degrees float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), Up)
}

// Yaw returns the heading of a rotation in degrees, measured about world up.
func Yaw(q mgl64.Quat) float64 {
	forward := q.Rotate(mgl64.Vec3{0, 0, 1})
	return mgl64.RadToDeg(math.Atan2(forward.X(), forward.Z()))
}

// RotateAround rotates point p about pivot by q.
func RotateAround(p, pivot mgl64.Vec3, q mgl64.Quat) mgl64.Vec3 {
	return pivot.Add(q.Rotate(p.Sub(pivot)))
}

// ApplyDrag reduces the planar (XZ) part of v toward zero by rate*dt.
func ApplyDrag(v mgl64.Vec3, rate, dt float64) mgl64.Vec3 {
	k := 1 - rate*dt
	if k < 0 {
		k = 0
	}
	return mgl64.Vec3{v.X() * k, v.Y(), v.Z() * k}
}
