package locomotion

import (
	"github.com/automoto/intheclouds/rig"
	"github.com/go-gl/mathgl/mgl64"
)

// Event is something a frame step wants the caller to dispatch.
type Event interface {
	EventName() string
}

// DashStarted fires when a dash launches the body.
type DashStarted struct {
	Side      rig.Side
	Direction mgl64.Vec3
}

// DashEnded fires when the dash window closes or the dash is cancelled.
type DashEnded struct {
	Side rig.Side
}

// GroundPoundStarted fires when the body begins a ground pound.
type GroundPoundStarted struct{}

// Launched fires when averaged hand momentum turns into a push-off.
type Launched struct {
	Velocity mgl64.Vec3
}

// HandContact fires when a hand starts or stops touching a surface.
type HandContact struct {
	Side     rig.Side
	Touching bool
}

func (DashStarted) EventName() string        { return "dash_started" }
func (DashEnded) EventName() string          { return "dash_ended" }
func (GroundPoundStarted) EventName() string { return "ground_pound_started" }
func (Launched) EventName() string           { return "launched" }
func (HandContact) EventName() string        { return "hand_contact" }
