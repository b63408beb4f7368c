package factory

import (
	"github.com/automoto/intheclouds/archetypes"
	"github.com/automoto/intheclouds/combat"
	"github.com/automoto/intheclouds/components"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/shared/collision"
	"github.com/automoto/intheclouds/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateTarget places a training dummy. It is solid to hands as well as
// damageable.
func CreateTarget(ecs *ecs.ECS, t leveldata.Target) *donburi.Entry {
	target := archetypes.Target.Spawn(ecs)

	center := mgl64.Vec3{t.X, t.Y, t.Z}
	c := collision.NewCollider(t.Name, collision.Sphere{Center: center, Radius: t.Radius},
		collision.LayerLocomotion, collision.LayerDamageable)
	c.Data = target.Entity()

	components.Collider.SetValue(target, components.ColliderData{Collider: c})
	components.Target.SetValue(target, components.TargetData{
		Name:   t.Name,
		Center: center,
		Radius: t.Radius,
	})
	components.Health.SetValue(target, components.HealthData{
		Vulnerability: combat.NewVulnerability(cfg.Health),
	})

	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(c)
	}

	return target
}
