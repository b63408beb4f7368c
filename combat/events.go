package combat

import (
	"github.com/automoto/intheclouds/rig"
	"github.com/go-gl/mathgl/mgl64"
)

// Event is a combat outcome published to subscribers.
type Event interface {
	EventName() string
}

type HitLanded struct {
	Target    string
	Side      rig.Side
	Damage    int
	Knockback mgl64.Vec3
}

// HitRejected is diagnostic only.
type HitRejected struct {
	Target string
	Side   rig.Side
	Reason RejectReason
}

type Damaged struct {
	Target string
	Amount int
	Died   bool
}

func (HitLanded) EventName() string   { return "hit_landed" }
func (HitRejected) EventName() string { return "hit_rejected" }
func (Damaged) EventName() string     { return "damaged" }
