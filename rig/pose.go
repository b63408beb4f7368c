// Package rig turns raw tracked poses and analog controller values into the
// per-frame input the locomotion, climbing and combat engines consume.
package rig

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrNonFinitePose is returned when a tracked pose contains NaN or Inf.
var ErrNonFinitePose = errors.New("non-finite pose")

// Side identifies a hand.
type Side int

const (
	Left Side = iota
	Right
)

// Sides lists the hands in processing order.
var Sides = [2]Side{Left, Right}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Other returns the opposite hand.
func (s Side) Other() Side {
	return 1 - s
}

// Pose is a tracked position and orientation in tracking space.
type Pose struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewPose returns a pose at p with identity rotation.
func NewPose(p mgl64.Vec3) Pose {
	return Pose{Position: p, Rotation: mgl64.QuatIdent()}
}

// Validate returns ErrNonFinitePose when any component is NaN or Inf.
func (p Pose) Validate() error {
	if !gamemath.IsFinite(p.Position) {
		return fmt.Errorf("%w: position %v", ErrNonFinitePose, p.Position)
	}
	if !gamemath.IsFinite(p.Rotation.V) || math.IsNaN(p.Rotation.W) || math.IsInf(p.Rotation.W, 0) {
		return fmt.Errorf("%w: rotation %v", ErrNonFinitePose, p.Rotation)
	}
	return nil
}

// Transform maps a local offset through the pose.
func (p Pose) Transform(local mgl64.Vec3) mgl64.Vec3 {
	return p.Position.Add(p.Rotation.Rotate(local))
}

// HandSample is the raw state of one controller.
type HandSample struct {
	Pose    Pose
	Grip    float64 // Analog grip, 0..1
	Trigger float64 // Analog trigger, 0..1
}

// Sample is what a Source reports for one frame.
type Sample struct {
	Head  Pose
	Hands [2]HandSample

	// Flat input used by the desktop strategy.
	Move mgl64.Vec2 // X strafe, Y forward, each -1..1
	Jump bool
}

// Source produces tracked poses. Implementations are polled once per frame.
type Source interface {
	Sample(now time.Duration) Sample
}
