package rig

import (
	"time"

	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// ActionState represents the temporal state of a button.
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

func action(curr, prev bool) ActionState {
	return ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}

// Hand is one controller after thresholding and validation.
type Hand struct {
	Pose    Pose
	Grip    ActionState
	Trigger ActionState
	Valid   bool // False when the source reported a non-finite pose this frame
}

// Frame is the validated per-frame input.
type Frame struct {
	Head      Pose
	HeadValid bool
	Hands     [2]Hand
	Move      mgl64.Vec2
	Jump      ActionState
}

// Reader polls a Source, converts analog grip and trigger values into edges,
// and holds the last finite pose for any tracker that reports NaN or Inf. A
// held pose makes that tracker's frame delta zero.
type Reader struct {
	source           Source
	gripThreshold    float64
	triggerThreshold float64

	primed    bool
	lastHead  Pose
	lastHands [2]Pose
	grip      [2]bool
	trigger   [2]bool
	jump      bool

	// Rejected counts samples replaced by the finite-pose guard.
	Rejected int
}

// NewReader creates a reader. A grip or trigger counts as held once its
// analog value reaches the threshold.
func NewReader(source Source, gripThreshold, triggerThreshold float64) *Reader {
	return &Reader{
		source:           source,
		gripThreshold:    gripThreshold,
		triggerThreshold: triggerThreshold,
		lastHead:         NewPose(mgl64.Vec3{}),
		lastHands:        [2]Pose{NewPose(mgl64.Vec3{}), NewPose(mgl64.Vec3{})},
	}
}

// Read samples the source for the frame at now.
func (r *Reader) Read(now time.Duration) Frame {
	s := r.source.Sample(now)

	var f Frame
	f.Head, f.HeadValid = r.guard(s.Head, &r.lastHead)
	for _, side := range Sides {
		in := s.Hands[side]
		pose, ok := r.guard(in.Pose, &r.lastHands[side])

		grip := in.Grip >= r.gripThreshold
		trigger := in.Trigger >= r.triggerThreshold
		f.Hands[side] = Hand{
			Pose:    pose,
			Grip:    action(grip, r.grip[side]),
			Trigger: action(trigger, r.trigger[side]),
			Valid:   ok,
		}
		r.grip[side] = grip
		r.trigger[side] = trigger
	}

	f.Move = s.Move
	if !gamemath.IsFinite(f.Move.Vec3(0)) {
		f.Move = mgl64.Vec2{}
	}
	f.Jump = action(s.Jump, r.jump)
	r.jump = s.Jump
	r.primed = true
	return f
}

// guard returns p when it is finite and remembers it, otherwise the last
// finite pose.
func (r *Reader) guard(p Pose, last *Pose) (Pose, bool) {
	if err := p.Validate(); err != nil {
		r.Rejected++
		return *last, false
	}
	if p.Rotation.Len() == 0 {
		p.Rotation = mgl64.QuatIdent()
	}
	*last = p
	return p, true
}

// Primed reports whether at least one frame has been read.
func (r *Reader) Primed() bool {
	return r.primed
}
