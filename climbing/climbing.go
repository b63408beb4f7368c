// Package climbing lets a gripping hand drag the body through climbable
// regions. Only one hand owns the climb at a time; grabbing with the other
// hand hands ownership over.
package climbing

import (
	"sort"

	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/gamemath"
	"github.com/go-gl/mathgl/mgl64"
)

// Event is emitted when the climb starts or stops.
type Event interface {
	EventName() string
}

type ClimbStarted struct {
	Side rig.Side
}

type ClimbStopped struct {
	Side         rig.Side
	ReleaseDelta mgl64.Vec3 // Last hand displacement, a release velocity hint
	Canceled     bool       // Stopped by Cancel rather than a grip release
}

func (ClimbStarted) EventName() string { return "climb_started" }
func (ClimbStopped) EventName() string { return "climb_stopped" }

// Hand is the climb state of one hand.
type Hand struct {
	Side          rig.Side
	IsClimbing    bool
	WasClimbing   bool
	ClimbCanceled bool

	regions   map[string]struct{}
	lastDelta mgl64.Vec3
}

func newHand(side rig.Side) *Hand {
	return &Hand{Side: side, regions: make(map[string]struct{})}
}

// InRange reports whether the hand is near at least one climbable region.
func (h *Hand) InRange() bool {
	return len(h.regions) > 0
}

// Regions returns the ids of the regions in range, sorted.
func (h *Hand) Regions() []string {
	ids := make([]string, 0, len(h.regions))
	for id := range h.regions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LastDelta is the displacement the hand applied on its last climbing frame.
func (h *Hand) LastDelta() mgl64.Vec3 {
	return h.lastDelta
}

// HandInput is one hand's contribution to a frame.
type HandInput struct {
	GripActivated   bool
	GripDeactivated bool
	Delta           mgl64.Vec3 // Raw world displacement of the tracked hand since last frame
}

// Input is a frame of climb input.
type Input struct {
	Hands   [2]HandInput
	Allowed bool // False in desktop mode
}

// Output is the result of a climb frame.
type Output struct {
	BodyDelta mgl64.Vec3
	Climbing  bool
	Events    []Event
}

// Pair coordinates the two hands.
type Pair struct {
	hands [2]*Hand
}

// NewPair creates a pair with no regions in range.
func NewPair() *Pair {
	return &Pair{hands: [2]*Hand{newHand(rig.Left), newHand(rig.Right)}}
}

// Hand returns the state of one hand.
func (p *Pair) Hand(side rig.Side) *Hand {
	return p.hands[side]
}

// EnterRegion adds a region to the hand's in-range set. Entering twice is a
// no-op.
func (p *Pair) EnterRegion(side rig.Side, id string) {
	p.hands[side].regions[id] = struct{}{}
}

// ExitRegion removes a region from the hand's in-range set. Leaving a region
// does not end a climb already in progress.
func (p *Pair) ExitRegion(side rig.Side, id string) {
	delete(p.hands[side].regions, id)
}

// SyncRegions replaces the in-range set with ids, issuing the enters and
// exits that differ from the current set.
func (p *Pair) SyncRegions(side rig.Side, ids []string) {
	keep := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
		p.EnterRegion(side, id)
	}
	for id := range p.hands[side].regions {
		if _, ok := keep[id]; !ok {
			p.ExitRegion(side, id)
		}
	}
}

// Owner returns the hand currently applying the climb.
func (p *Pair) Owner() (rig.Side, bool) {
	for _, side := range rig.Sides {
		if p.hands[side].IsClimbing {
			return side, true
		}
	}
	return rig.Left, false
}

// IsClimbing reports whether either hand is climbing.
func (p *Pair) IsClimbing() bool {
	_, ok := p.Owner()
	return ok
}

// Update runs one frame: left hand, then right hand, then the owner's
// displacement.
func (p *Pair) Update(in Input) Output {
	var out Output
	for _, h := range p.hands {
		h.WasClimbing = h.IsClimbing
	}

	if !in.Allowed {
		out.Events = p.Cancel()
		return out
	}

	for _, side := range rig.Sides {
		h := p.hands[side]
		other := p.hands[side.Other()]
		hi := in.Hands[side]

		switch {
		case hi.GripActivated && !h.IsClimbing && h.InRange():
			if other.IsClimbing {
				// Handoff: the other hand lets go silently.
				other.IsClimbing = false
			} else {
				out.Events = append(out.Events, ClimbStarted{Side: side})
			}
			h.IsClimbing = true
			h.ClimbCanceled = false
			h.lastDelta = mgl64.Vec3{}
		case hi.GripDeactivated && h.IsClimbing:
			h.IsClimbing = false
			if !other.IsClimbing {
				out.Events = append(out.Events, ClimbStopped{Side: side, ReleaseDelta: h.lastDelta})
			}
		}
	}

	if side, ok := p.Owner(); ok {
		delta := in.Hands[side].Delta
		if !gamemath.IsFinite(delta) {
			delta = mgl64.Vec3{}
		}
		p.hands[side].lastDelta = delta
		out.BodyDelta = delta.Mul(-1)
		out.Climbing = true
	}
	return out
}

// Cancel stops any climb in progress, for example when the avatar is hit.
func (p *Pair) Cancel() []Event {
	var events []Event
	for _, side := range rig.Sides {
		h := p.hands[side]
		if !h.IsClimbing {
			continue
		}
		h.IsClimbing = false
		h.ClimbCanceled = true
		events = append(events, ClimbStopped{Side: side, ReleaseDelta: h.lastDelta, Canceled: true})
	}
	return events
}
