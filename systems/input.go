package systems

import (
	"github.com/automoto/intheclouds/components"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateInput polls every avatar's rig for the current frame.
// Must run BEFORE UpdateAvatars in the system order.
func UpdateInput(ecs *ecs.ECS) {
	clock := getClock(ecs)
	tags.Avatar.Each(ecs.World, func(e *donburi.Entry) {
		in := components.RigInput.Get(e)
		if in.Reader == nil {
			return
		}

		// Swap: current becomes previous before the new read
		if in.Reader.Primed() {
			for _, side := range rig.Sides {
				in.PreviousHands[side] = in.Frame.Hands[side].Pose.Position
			}
			in.Primed = true
		}
		in.Frame = in.Reader.Read(clock.Now)
	})
}
