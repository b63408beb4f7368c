package components

import (
	"github.com/automoto/intheclouds/locomotion"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// StateData is what the avatar systems report after a frame.
type StateData struct {
	CurrentMode  locomotion.Mode
	PreviousMode locomotion.Mode
	ModeTimer    int // Frames spent in CurrentMode

	Touching  [2]bool
	Followers [2]mgl64.Vec3 // World positions the hands are drawn at
	Head      mgl64.Vec3
	Grounded  bool
	Climbing  bool
	AirFrames int // Frames since the integrator last reported ground
}

var State = donburi.NewComponentType[StateData]()
