package factory

import (
	"fmt"

	"github.com/automoto/intheclouds/archetypes"
	"github.com/automoto/intheclouds/climbing"
	"github.com/automoto/intheclouds/combat"
	"github.com/automoto/intheclouds/components"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/locomotion"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateAvatar spawns an avatar at spawn, polling source for its input. The
// movement strategy follows cfg.Sim.DesktopMode.
func CreateAvatar(ecs *ecs.ECS, spawn leveldata.SpawnPoint, source rig.Source) *donburi.Entry {
	spaceEntry := components.Space.MustFirst(ecs.World)
	space := components.Space.Get(spaceEntry)

	avatar := archetypes.Avatar.Spawn(ecs)

	body := locomotion.NewBody(mgl64.Vec3{spawn.X, spawn.Y, spawn.Z}, spawn.Yaw)
	resolver := locomotion.NewResolver(
		locomotion.NewProbe(space.Space),
		cfg.Locomotion.DefaultSlideFactor,
		cfg.Locomotion.SingleHandSlideFactor,
	)

	data := components.AvatarData{
		Name:       fmt.Sprintf("avatar_%d", spawn.Index),
		Index:      spawn.Index,
		Integrator: locomotion.NewIntegrator(resolver, cfg.Locomotion),
		Climb:      climbing.NewPair(),
		Gate:       combat.NewGate(cfg.Melee),
		Contacts:   [2]map[donburi.Entity]bool{{}, {}},
	}
	if cfg.Sim.DesktopMode {
		data.Desktop = locomotion.NewDesktop(cfg.Desktop, body)
		data.Strategy = data.Desktop
	} else {
		data.Locomotion = locomotion.New(cfg.Locomotion, cfg.Dash, resolver, body)
		data.Strategy = data.Locomotion
	}
	components.Avatar.SetValue(avatar, data)

	components.RigInput.SetValue(avatar, components.RigInputData{
		Reader: rig.NewReader(source, cfg.Climb.GripThreshold, cfg.Climb.TriggerThreshold),
	})
	components.Health.SetValue(avatar, components.HealthData{
		Vulnerability: combat.NewVulnerability(cfg.Health),
	})
	components.State.SetValue(avatar, components.StateData{
		CurrentMode:  locomotion.Idle,
		PreviousMode: locomotion.Idle,
		Head:         body.Position,
	})
	components.Feedback.SetValue(avatar, components.FeedbackData{
		HitboxScale: [2]float64{1, 1},
	})

	return avatar
}
