package factory

import (
	"fmt"
	"log"

	"github.com/automoto/intheclouds/archetypes"
	"github.com/automoto/intheclouds/components"
	"github.com/automoto/intheclouds/shared/leveldata"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateArena spawns the arena singleton, the collision space and every
// block and target of data.
func CreateArena(ecs *ecs.ECS, name string, data *leveldata.ArenaData) (*donburi.Entry, error) {
	if data == nil {
		return nil, fmt.Errorf("arena %q: no data", name)
	}
	if len(data.Spawns) == 0 {
		return nil, fmt.Errorf("arena %q: %w", name, leveldata.ErrNoSpawn)
	}

	if _, err := CreateSpace(ecs, data.Width, data.Depth); err != nil {
		return nil, fmt.Errorf("arena %q: %w", name, err)
	}

	arena := archetypes.Arena.Spawn(ecs)
	components.Arena.SetValue(arena, components.ArenaData{
		Name: name,
		Data: data,
	})

	for _, b := range data.Blocks {
		CreateBlock(ecs, b)
	}
	for _, t := range data.Targets {
		CreateTarget(ecs, t)
	}

	log.Printf("Arena %q loaded: %d blocks, %d targets, %d spawns",
		name, len(data.Blocks), len(data.Targets), len(data.Spawns))
	return arena, nil
}
