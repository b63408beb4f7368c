package components

import (
	"github.com/automoto/intheclouds/climbing"
	"github.com/automoto/intheclouds/combat"
	"github.com/automoto/intheclouds/locomotion"
	"github.com/automoto/intheclouds/rig"
	"github.com/yohamta/donburi"
)

// AvatarData is a player body driven by tracked hands (or flat input in
// desktop mode).
type AvatarData struct {
	Name  string
	Index int // Spawn index

	Strategy   locomotion.Strategy
	Locomotion *locomotion.Locomotion // nil in desktop mode
	Desktop    *locomotion.Desktop    // nil in tracked mode
	Integrator *locomotion.Integrator

	Climb    *climbing.Pair
	Velocity [2]combat.HandVelocity
	Gate     *combat.Gate

	Buffed bool // High-five buff: flat melee damage bonus

	// Targets each hand trigger overlapped last frame. A hit is only
	// evaluated when a hand enters a target.
	Contacts [2]map[donburi.Entity]bool
}

// Body returns the body the strategy moves.
func (a *AvatarData) Body() *locomotion.Body {
	return a.Strategy.Body()
}

// IsDesktop reports whether the avatar uses flat input.
func (a *AvatarData) IsDesktop() bool {
	return a.Desktop != nil
}

// HandTouching reports whether a hand is held by geometry.
func (a *AvatarData) HandTouching(side rig.Side) bool {
	return a.Locomotion != nil && a.Locomotion.IsHandTouching(side)
}

var Avatar = donburi.NewComponentType[AvatarData]()
