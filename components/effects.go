package components

import (
	"github.com/automoto/intheclouds/locomotion"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// FeedbackData holds the hand follower feedback. Scale and tint strength
// ease back to rest through tweens instead of snapping.
type FeedbackData struct {
	HitboxScale  [2]float64
	Tint         [2]locomotion.Tint
	TintStrength [2]float64 // 1 while a tint is shown, decaying to 0

	ScaleTween [2]*gween.Tween
	TintTween  [2]*gween.Tween
}

var Feedback = donburi.NewComponentType[FeedbackData]()

// FlashData tracks the hit flash on a target.
type FlashData struct {
	Tween    *gween.Tween
	Strength float64
}

var Flash = donburi.NewComponentType[FlashData]()
