package systems

import (
	"log"

	"github.com/automoto/intheclouds/components"
	"github.com/automoto/intheclouds/rig"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateDeaths restores entities whose respawn deadline has passed.
func UpdateDeaths(ecs *ecs.ECS) {
	clock := getClock(ecs)

	var due []*donburi.Entry
	components.Death.Each(ecs.World, func(e *donburi.Entry) {
		if clock.Now >= components.Death.Get(e).RespawnAt {
			due = append(due, e)
		}
	})

	for _, e := range due {
		donburi.Remove[components.DeathData](e, components.Death)
		if e.HasComponent(components.Avatar) {
			RespawnAvatar(e)
		}
		if e.HasComponent(components.Health) {
			components.Health.Get(e).Restore()
		}
		log.Printf("%s respawned", entityName(e))
	}
}

// RespawnAvatar puts an avatar back on its spawn point with every piece of
// per-life state cleared: velocity history, stuck hands, climb, cooldowns
// and feedback.
func RespawnAvatar(e *donburi.Entry) {
	avatar := components.Avatar.Get(e)
	body := avatar.Body()
	avatar.Strategy.RespawnTo(body.Spawn)
	avatar.Climb.Cancel()
	avatar.Gate.Reset()
	for _, side := range rig.Sides {
		avatar.Velocity[side].Reset()
		clear(avatar.Contacts[side])
	}

	if e.HasComponent(components.State) {
		state := components.State.Get(e)
		*state = components.StateData{Head: body.Position}
	}
	if e.HasComponent(components.Feedback) {
		components.Feedback.SetValue(e, components.FeedbackData{HitboxScale: [2]float64{1, 1}})
	}
}
