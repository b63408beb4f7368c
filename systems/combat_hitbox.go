package systems

import (
	"github.com/automoto/intheclouds/combat"
	"github.com/automoto/intheclouds/components"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/collision"
	"github.com/automoto/intheclouds/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateMelee checks each hand trigger against damageable colliders. A hit
// is evaluated once per hand when it enters a target; landed hits queue a
// DamageEvent on the target.
func UpdateMelee(ecs *ecs.ECS) {
	clock := getClock(ecs)
	spaceEntry, ok := components.Space.First(ecs.World)
	if !ok {
		return
	}
	space := components.Space.Get(spaceEntry)

	type hit struct {
		target donburi.Entity
		dmg    components.DamageEventData
	}
	var hits []hit

	tags.Avatar.Each(ecs.World, func(e *donburi.Entry) {
		avatar := components.Avatar.Get(e)
		state := components.State.Get(e)
		feedback := components.Feedback.Get(e)

		if e.HasComponent(components.Death) || !components.Health.Get(e).Alive() {
			for _, side := range rig.Sides {
				clear(avatar.Contacts[side])
			}
			return
		}
		attack := avatar.Strategy.Attack()

		for _, side := range rig.Sides {
			radius := cfg.Melee.HandTriggerRadius * feedback.HitboxScale[side]
			touching := make(map[donburi.Entity]bool)

			for _, c := range space.Overlap(state.Followers[side], radius, collision.LayerDamageable) {
				entity, ok := c.Data.(donburi.Entity)
				if !ok || entity == e.Entity() || !ecs.World.Valid(entity) {
					continue
				}
				target := ecs.World.Entry(entity)
				touching[target.Entity()] = true
				if avatar.Contacts[side][target.Entity()] {
					continue
				}

				contact := combat.Contact{
					Target:         c.ID,
					Side:           side,
					Velocity:       avatar.Velocity[side].Value(),
					Dashing:        attack.IsDashing,
					GroundPounding: attack.IsGroundPounding,
					Buffed:         avatar.Buffed,
					TargetAlive:    isAlive(target),
				}
				outcome := avatar.Gate.Evaluate(contact, clock.Now)
				publish(ecs.World, e, avatar.Name, clock.Frame, outcome.Event(contact))
				if outcome.Hit {
					hits = append(hits, hit{target: entity, dmg: components.DamageEventData{
						Amount:    outcome.Damage,
						Knockback: outcome.Knockback,
						Attacker:  avatar.Name,
					}})
				}
			}
			avatar.Contacts[side] = touching
		}
	})

	for _, h := range hits {
		if ecs.World.Valid(h.target) {
			queueDamage(ecs.World.Entry(h.target), h.dmg)
		}
	}
}

func isAlive(e *donburi.Entry) bool {
	if e.HasComponent(components.Death) || !e.HasComponent(components.Health) {
		return false
	}
	return components.Health.Get(e).Alive()
}

// queueDamage adds a DamageEvent, merging with one already queued this frame.
func queueDamage(e *donburi.Entry, dmg components.DamageEventData) {
	if e.HasComponent(components.DamageEvent) {
		queued := components.DamageEvent.Get(e)
		queued.Amount += dmg.Amount
		queued.Knockback = queued.Knockback.Add(dmg.Knockback)
		queued.Attacker = dmg.Attacker
		return
	}
	donburi.Add(e, components.DamageEvent, &dmg)
}
