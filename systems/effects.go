package systems

import (
	"github.com/automoto/intheclouds/components"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/locomotion"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/tags"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateFeedback follows each avatar's dash state with the hand follower
// feedback. Growth snaps; shrinking back to rest and tint fading ease out
// over cfg.Dash.FeedbackDecay.
func UpdateFeedback(ecs *ecs.ECS) {
	dt := float32(getClock(ecs).DT())
	decay := float32(cfg.Dash.FeedbackDecay.Seconds())

	tags.Avatar.Each(ecs.World, func(e *donburi.Entry) {
		attack := components.Avatar.Get(e).Strategy.Attack()
		fb := components.Feedback.Get(e)

		for _, side := range rig.Sides {
			// --- Hit-box scale ---
			want := attack.HitboxScale[side]
			switch {
			case want >= fb.HitboxScale[side]:
				fb.HitboxScale[side] = want
				fb.ScaleTween[side] = nil
			case fb.ScaleTween[side] == nil:
				fb.ScaleTween[side] = newDecay(fb.HitboxScale[side], want, decay)
			}
			if tw := fb.ScaleTween[side]; tw != nil {
				v, done := tw.Update(dt)
				fb.HitboxScale[side] = float64(v)
				if done {
					fb.ScaleTween[side] = nil
				}
			}

			// --- Tint ---
			if attack.Tint[side] != locomotion.TintNone {
				fb.Tint[side] = attack.Tint[side]
				fb.TintStrength[side] = 1
				fb.TintTween[side] = nil
				continue
			}
			if fb.Tint[side] == locomotion.TintNone {
				continue
			}
			if fb.TintTween[side] == nil {
				fb.TintTween[side] = newDecay(fb.TintStrength[side], 0, decay)
			}
			v, done := fb.TintTween[side].Update(dt)
			fb.TintStrength[side] = float64(v)
			if done {
				fb.Tint[side] = locomotion.TintNone
				fb.TintStrength[side] = 0
				fb.TintTween[side] = nil
			}
		}
	})

	components.Flash.Each(ecs.World, func(e *donburi.Entry) {
		flash := components.Flash.Get(e)
		if flash.Tween == nil {
			return
		}
		v, done := flash.Tween.Update(dt)
		flash.Strength = float64(v)
		if done {
			flash.Tween = nil
			flash.Strength = 0
		}
	})
}

func newDecay(from, to float64, duration float32) *gween.Tween {
	return gween.New(float32(from), float32(to), duration, ease.OutQuad)
}
