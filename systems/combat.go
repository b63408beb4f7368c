package systems

import (
	"log"

	"github.com/automoto/intheclouds/combat"
	"github.com/automoto/intheclouds/components"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCombat applies queued damage events: health, knockback, climb
// cancellation and the start of the death sequence.
func UpdateCombat(ecs *ecs.ECS) {
	clock := getClock(ecs)

	// Collect first: removing the event changes the entry's archetype.
	var queued []*donburi.Entry
	for e := range components.DamageEvent.Iter(ecs.World) {
		queued = append(queued, e)
	}

	for _, e := range queued {
		dmg := *components.DamageEvent.Get(e)
		// Remove the damage event component so it is processed only once.
		donburi.Remove[components.DamageEventData](e, components.DamageEvent)

		if !e.HasComponent(components.Health) || e.HasComponent(components.Death) {
			continue
		}
		hp := components.Health.Get(e)
		applied, died := hp.TakeDamage(dmg.Amount, clock.Now)
		if !applied {
			continue
		}

		name := entityName(e)
		publish(ecs.World, e, name, clock.Frame, combat.Damaged{Target: name, Amount: dmg.Amount, Died: died})

		if e.HasComponent(components.Avatar) {
			avatar := components.Avatar.Get(e)
			avatar.Strategy.ApplyImpulse(dmg.Knockback)
			// Being hit knocks the avatar off the wall.
			publish(ecs.World, e, name, clock.Frame, avatar.Climb.Cancel()...)
		}
		if e.HasComponent(components.Target) {
			target := components.Target.Get(e)
			target.Hits++
			target.LastHitBy = dmg.Attacker
		}
		if e.HasComponent(components.Flash) {
			components.Flash.SetValue(e, components.FlashData{
				Tween:    gween.New(1, 0, float32(cfg.Health.DamageCooldown.Seconds()), ease.OutQuad),
				Strength: 1,
			})
		}

		if died {
			startDeathSequence(ecs, e)
		}
	}
}

func startDeathSequence(ecs *ecs.ECS, e *donburi.Entry) {
	clock := getClock(ecs)
	donburi.Add(e, components.Death, &components.DeathData{
		DiedAt:    clock.Now,
		RespawnAt: clock.Now + cfg.Health.RespawnDelay,
	})

	if e.HasComponent(components.Target) {
		components.Target.Get(e).Deaths++
	}
	log.Printf("%s died at %v, respawning in %v", entityName(e), clock.Now, cfg.Health.RespawnDelay)
}

func entityName(e *donburi.Entry) string {
	switch {
	case e.HasComponent(components.Avatar):
		return components.Avatar.Get(e).Name
	case e.HasComponent(components.Target):
		return components.Target.Get(e).Name
	}
	return e.String()
}
