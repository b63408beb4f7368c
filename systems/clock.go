package systems

import (
	"github.com/automoto/intheclouds/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateClock advances the simulation clock by one step. Runs last so every
// other system sees the same time for a frame.
func UpdateClock(ecs *ecs.ECS) {
	clock, ok := components.Clock.First(ecs.World)
	if !ok {
		return
	}
	c := components.Clock.Get(clock)
	c.Now += c.Step
	c.Frame++
}

func getClock(ecs *ecs.ECS) *components.ClockData {
	clock, ok := components.Clock.First(ecs.World)
	if !ok {
		return &components.ClockData{}
	}
	return components.Clock.Get(clock)
}
