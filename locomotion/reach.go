package locomotion

import (
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// ConstrainReach keeps a hand socket within maxReach of the head.
func ConstrainReach(socket, head mgl64.Vec3, maxReach float64) mgl64.Vec3 {
	offset := socket.Sub(head)
	if offset.Len() <= maxReach {
		return socket
	}
	if maxReach < 0 {
		maxReach = 0
	}
	return head.Add(gamemath.SafeNormalize(offset, mgl64.Vec3{}).Mul(maxReach))
}
