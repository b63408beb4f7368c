package archetypes

import (
	"github.com/automoto/intheclouds/components"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Avatar = newArchetype(
		tags.Avatar,
		components.Avatar,
		components.RigInput,
		components.Health,
		components.State,
		components.Feedback,
	)
	Target = newArchetype(
		tags.Target,
		components.Target,
		components.Collider,
		components.Health,
		components.Flash,
	)
	Block = newArchetype(
		tags.Block,
		components.Collider,
	)
	Space = newArchetype(
		components.Space,
	)
	Arena = newArchetype(
		components.Arena,
	)
	Clock = newArchetype(
		components.Clock,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
