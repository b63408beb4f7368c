// Package sim assembles an arena, its avatars and the per-frame systems into
// a scene, and drives it at a fixed tick rate.
package sim

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/automoto/intheclouds/components"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/leveldata"
	"github.com/automoto/intheclouds/systems"
	"github.com/automoto/intheclouds/systems/factory"
	"github.com/automoto/intheclouds/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// ErrNoSources is returned when a scene is built without any avatar input.
var ErrNoSources = errors.New("scene needs at least one rig source")

// Options describes a scene.
type Options struct {
	ArenaName string
	Arena     *leveldata.ArenaData

	// One avatar is spawned per source, on the spawn points in order.
	Sources []rig.Source

	// Tuning replaces the global configuration before anything is built.
	// nil keeps the current configuration.
	Tuning *cfg.Tuning
}

type Scene struct {
	ecs   *ecs.ECS
	stats *Stats
}

// NewScene builds the world for opts.
func NewScene(opts Options) (*Scene, error) {
	if len(opts.Sources) == 0 {
		return nil, ErrNoSources
	}
	if opts.Tuning != nil {
		if err := opts.Tuning.Validate(); err != nil {
			return nil, err
		}
		opts.Tuning.Apply()
	}

	ecs := ecs.NewECS(donburi.NewWorld())

	// Input first, then movement, then combat on the moved hands.
	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdateAvatars)
	ecs.AddSystem(systems.UpdateMelee)
	ecs.AddSystem(systems.UpdateCombat)
	ecs.AddSystem(systems.UpdateDeaths)
	ecs.AddSystem(systems.UpdateFeedback)
	ecs.AddSystem(systems.ProcessEvents)
	ecs.AddSystem(systems.UpdateClock) // Must run last

	factory.CreateClock(ecs, cfg.Sim.TickRate)
	if _, err := factory.CreateArena(ecs, opts.ArenaName, opts.Arena); err != nil {
		return nil, err
	}

	for i, source := range opts.Sources {
		spawn := opts.Arena.Spawns[i%len(opts.Arena.Spawns)]
		spawn.Index = i
		factory.CreateAvatar(ecs, spawn, source)
	}

	s := &Scene{ecs: ecs, stats: newStats()}
	systems.GameplayEvents.Subscribe(ecs.World, s.stats.record)

	mode := "tracked"
	if cfg.Sim.DesktopMode {
		mode = "desktop"
	}
	log.Printf("Scene ready: arena %q, %d avatar(s), %s input", opts.ArenaName, len(opts.Sources), mode)
	return s, nil
}

// Update runs one frame.
func (s *Scene) Update() {
	s.ecs.Update()
}

// Run runs frames frames back to back, without waiting for wall time.
func (s *Scene) Run(frames int) {
	for i := 0; i < frames; i++ {
		s.Update()
	}
}

// ECS returns the scene's ECS.
func (s *Scene) ECS() *ecs.ECS {
	return s.ecs
}

// Stats returns the event tallies so far.
func (s *Scene) Stats() *Stats {
	return s.stats
}

// Now returns the simulation time of the next frame.
func (s *Scene) Now() time.Duration {
	return components.Clock.Get(components.Clock.MustFirst(s.ecs.World)).Now
}

// Frame returns how many frames have run.
func (s *Scene) Frame() int {
	return components.Clock.Get(components.Clock.MustFirst(s.ecs.World)).Frame
}

// Avatar returns the i-th avatar in spawn order.
func (s *Scene) Avatar(i int) (*donburi.Entry, error) {
	var found *donburi.Entry
	tags.Avatar.Each(s.ecs.World, func(e *donburi.Entry) {
		if components.Avatar.Get(e).Index == i {
			found = e
		}
	})
	if found == nil {
		return nil, fmt.Errorf("no avatar %d", i)
	}
	return found, nil
}

// Target returns the training dummy called name.
func (s *Scene) Target(name string) (*donburi.Entry, error) {
	var found *donburi.Entry
	tags.Target.Each(s.ecs.World, func(e *donburi.Entry) {
		if components.Target.Get(e).Name == name {
			found = e
		}
	})
	if found == nil {
		return nil, fmt.Errorf("no target %q", name)
	}
	return found, nil
}
