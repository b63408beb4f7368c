package factory

import (
	"time"

	"github.com/automoto/intheclouds/archetypes"
	"github.com/automoto/intheclouds/components"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/shared/collision"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// spaceMargin pads the broadphase grid around the arena so avatars knocked
// off the edge still get cheap queries.
const spaceMargin = 4.0

func CreateSpace(ecs *ecs.ECS, width, depth float64) (*donburi.Entry, error) {
	min := mgl64.Vec3{-spaceMargin, 0, -spaceMargin}
	max := mgl64.Vec3{width + spaceMargin, 0, depth + spaceMargin}
	spaceData, err := collision.NewSpace(min, max, cfg.Sim.CellSize)
	if err != nil {
		return nil, err
	}

	space := archetypes.Space.Spawn(ecs)
	components.Space.SetValue(space, components.SpaceData{Space: spaceData})
	return space, nil
}

func CreateClock(ecs *ecs.ECS, tickRate int) *donburi.Entry {
	clock := archetypes.Clock.Spawn(ecs)
	components.Clock.SetValue(clock, components.ClockData{
		Step: tickDuration(tickRate),
	})
	return clock
}

func tickDuration(tickRate int) time.Duration {
	if tickRate < 1 {
		tickRate = 1
	}
	return time.Second / time.Duration(tickRate)
}
