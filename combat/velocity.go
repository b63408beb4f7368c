// Package combat decides whether a hand striking a target lands a hit, and
// how much damage and knockback the hit carries.
package combat

import (
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// HandVelocity tracks a hand's velocity relative to the head, so that moving
// the whole body does not count as a swing.
type HandVelocity struct {
	lastHand mgl64.Vec3
	lastHead mgl64.Vec3
	primed   bool
	value    mgl64.Vec3
}

// Update samples world hand and head positions. In desktop mode there is no
// independent head tracking and the raw hand velocity is used.
func (v *HandVelocity) Update(hand, head mgl64.Vec3, dt float64, desktop bool) mgl64.Vec3 {
	if !gamemath.IsFinite(hand) || !gamemath.IsFinite(head) {
		return v.value
	}
	if !v.primed || !(dt > 0) {
		v.lastHand, v.lastHead = hand, head
		v.primed = true
		v.value = mgl64.Vec3{}
		return v.value
	}

	handVelocity := hand.Sub(v.lastHand).Mul(1 / dt)
	if desktop {
		v.value = handVelocity
	} else {
		headVelocity := head.Sub(v.lastHead).Mul(1 / dt)
		v.value = handVelocity.Sub(headVelocity)
	}
	v.lastHand, v.lastHead = hand, head
	return v.value
}

// Value returns the last computed velocity.
func (v *HandVelocity) Value() mgl64.Vec3 {
	return v.value
}

// Reset forgets the previous sample; the next Update reads zero.
func (v *HandVelocity) Reset() {
	*v = HandVelocity{}
}
