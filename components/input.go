package components

import (
	"github.com/automoto/intheclouds/rig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// RigInputData stores an avatar's tracked input for the current frame.
type RigInputData struct {
	Reader *rig.Reader
	Frame  rig.Frame

	// Tracking-space hand positions of the previous frame, for climb deltas.
	PreviousHands [2]mgl64.Vec3
	Primed        bool
}

// HandDelta returns how far a hand moved in tracking space since the last
// frame.
func (in *RigInputData) HandDelta(side rig.Side) mgl64.Vec3 {
	if !in.Primed {
		return mgl64.Vec3{}
	}
	return in.Frame.Hands[side].Pose.Position.Sub(in.PreviousHands[side])
}

var RigInput = donburi.NewComponentType[RigInputData]()
