package factory

import (
	"github.com/automoto/intheclouds/archetypes"
	"github.com/automoto/intheclouds/components"
	"github.com/automoto/intheclouds/shared/collision"
	"github.com/automoto/intheclouds/shared/leveldata"
	"github.com/automoto/intheclouds/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateBlock places a static box. Climbable blocks also sit on the
// climbable layer so a gripping hand can hold them.
func CreateBlock(ecs *ecs.ECS, b leveldata.Block) *donburi.Entry {
	var block *donburi.Entry
	if b.Climbable {
		block = archetypes.Block.Spawn(ecs, tags.Climbable)
	} else {
		block = archetypes.Block.Spawn(ecs)
	}

	layers := []string{collision.LayerLocomotion}
	if b.Climbable {
		layers = append(layers, collision.LayerClimbable)
	}
	box := collision.Box{
		Min: mgl64.Vec3{b.X, b.Bottom, b.Z},
		Max: mgl64.Vec3{b.X + b.W, b.Bottom + b.Height, b.Z + b.D},
	}
	c := collision.NewCollider(b.Name, box, layers...)
	if b.HasSlip {
		c.WithSurface(b.Slip)
	}
	c.Data = block.Entity() // Link for O(1) lookup

	components.Collider.SetValue(block, components.ColliderData{Collider: c})

	// Add to space if it exists
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(c)
	}

	return block
}
