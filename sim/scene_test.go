package sim

import (
	"testing"
	"time"

	"github.com/automoto/intheclouds/components"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/leveldata"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHead = mgl64.Vec3{0, 1.6, 0}

// testArena is a 4x4 floor with the avatar spawning in the middle, facing
// +Z.
func testArena(extra ...leveldata.Block) *leveldata.ArenaData {
	return &leveldata.ArenaData{
		Blocks: append([]leveldata.Block{
			{Name: "floor", X: 0, Z: 0, W: 4, D: 4, Bottom: -1, Height: 1},
		}, extra...),
		Spawns: []leveldata.SpawnPoint{{X: 2, Z: 2}},
		Width:  4,
		Depth:  4,
	}
}

func sample(left, right mgl64.Vec3) rig.Sample {
	return rig.Sample{
		Head: rig.NewPose(testHead),
		Hands: [2]rig.HandSample{
			{Pose: rig.NewPose(left)},
			{Pose: rig.NewPose(right)},
		},
	}
}

func at(ms int, s rig.Sample) rig.Keyframe {
	return rig.Keyframe{At: time.Duration(ms) * time.Millisecond, Sample: s}
}

func newTestScene(t *testing.T, tuning cfg.Tuning, arena *leveldata.ArenaData, source rig.Source) *Scene {
	t.Helper()
	saved := cfg.Current()
	t.Cleanup(saved.Apply)

	s, err := NewScene(Options{
		ArenaName: "test",
		Arena:     arena,
		Sources:   []rig.Source{source},
		Tuning:    &tuning,
	})
	require.NoError(t, err)
	return s
}

func TestNewSceneErrors(t *testing.T) {
	_, err := NewScene(Options{Arena: testArena()})
	assert.ErrorIs(t, err, ErrNoSources)

	source := rig.NewScripted()
	_, err = NewScene(Options{Arena: &leveldata.ArenaData{Width: 1, Depth: 1}, Sources: []rig.Source{source}})
	assert.ErrorIs(t, err, leveldata.ErrNoSpawn)

	bad := cfg.Current()
	bad.Sim.TickRate = 0
	_, err = NewScene(Options{Arena: testArena(), Sources: []rig.Source{source}, Tuning: &bad})
	assert.ErrorIs(t, err, cfg.ErrInvalidTuning)
}

func TestAvatarRestsOnFloor(t *testing.T) {
	rest := sample(mgl64.Vec3{-0.2, 1, 0.2}, mgl64.Vec3{0.2, 1, 0.2})
	s := newTestScene(t, cfg.Current(), testArena(), rig.NewScripted(at(0, rest)))

	s.Run(90)
	assert.Equal(t, 90, s.Frame())

	e, err := s.Avatar(0)
	require.NoError(t, err)
	body := components.Avatar.Get(e).Body()
	assert.InDelta(t, 0, body.Position.Y(), 0.01)
	assert.InDelta(t, 2, body.Position.X(), 1e-9)
	assert.InDelta(t, 2, body.Position.Z(), 1e-9)
	assert.True(t, components.State.Get(e).Grounded)
}

func TestPunchKillsAndRespawnsTarget(t *testing.T) {
	tuning := cfg.Current()
	tuning.Health.StartingHealth = 1
	tuning.Health.RespawnDelay = time.Second

	arena := testArena()
	arena.Targets = []leveldata.Target{{Name: "dummy", X: 2, Y: 1.4, Z: 3, Radius: 0.3}}

	left := mgl64.Vec3{-0.2, 1.2, 0.1}
	source := rig.NewScripted(
		at(0, sample(left, mgl64.Vec3{0, 1.4, 0.2})),
		at(500, sample(left, mgl64.Vec3{0, 1.4, 0.2})),
		at(600, sample(left, mgl64.Vec3{0, 1.4, 0.9})),
	)
	s := newTestScene(t, tuning, arena, source)

	s.Run(65)
	assert.Equal(t, 1, s.Stats().Count("hit_landed"))
	assert.Equal(t, 1, s.Stats().Damage())
	assert.Equal(t, 1, s.Stats().Kills())

	target, err := s.Target("dummy")
	require.NoError(t, err)
	assert.True(t, target.HasComponent(components.Death))
	assert.Equal(t, 1, components.Target.Get(target).Deaths)
	assert.Equal(t, "avatar_0", components.Target.Get(target).LastHitBy)
	assert.Greater(t, components.Flash.Get(target).Strength, 0.0)

	// Holding the hand inside the dummy does not hit again.
	s.Run(120)
	assert.Equal(t, 1, s.Stats().Count("hit_landed"))
	assert.False(t, target.HasComponent(components.Death))
	assert.True(t, components.Health.Get(target).Alive())
	assert.Equal(t, 0.0, components.Flash.Get(target).Strength)
}

func TestSlowTouchIsRejected(t *testing.T) {
	arena := testArena()
	arena.Targets = []leveldata.Target{{Name: "dummy", X: 2, Y: 1.4, Z: 3, Radius: 0.3}}

	left := mgl64.Vec3{-0.2, 1.2, 0.1}
	source := rig.NewScripted(
		at(0, sample(left, mgl64.Vec3{0, 1.4, 0.2})),
		at(2000, sample(left, mgl64.Vec3{0, 1.4, 0.9})),
	)
	s := newTestScene(t, cfg.Current(), arena, source)

	s.Run(200)
	assert.Equal(t, 0, s.Stats().Count("hit_landed"))
	assert.Equal(t, 1, s.Stats().Count("hit_rejected"))
}

func TestClimbPullsAvatarUp(t *testing.T) {
	wall := leveldata.Block{Name: "wall", X: 1, Z: 2.5, W: 2, D: 0.5, Height: 3, Climbable: true}

	left := mgl64.Vec3{-0.2, 1, 0.1}
	high := sample(left, mgl64.Vec3{0.2, 1.4, 0.43})
	gripped := high
	gripped.Hands[rig.Right].Grip = 1
	low := sample(left, mgl64.Vec3{0.2, 0.9, 0.43})
	low.Hands[rig.Right].Grip = 1
	released := low
	released.Hands[rig.Right].Grip = 0

	source := rig.NewScripted(
		at(0, high),
		at(100, gripped),
		at(200, gripped),
		at(700, low),
		at(900, low),
		at(901, released),
	)
	s := newTestScene(t, cfg.Current(), testArena(wall), source)
	e, err := s.Avatar(0)
	require.NoError(t, err)
	body := components.Avatar.Get(e).Body()

	s.Run(72) // 0.8s
	assert.True(t, components.State.Get(e).Climbing)
	assert.InDelta(t, 0.5, body.Position.Y(), 0.05)
	assert.Equal(t, 1, s.Stats().Count("climb_started"))

	s.Run(180)
	assert.False(t, components.State.Get(e).Climbing)
	assert.Equal(t, 1, s.Stats().Count("climb_stopped"))
	assert.InDelta(t, 0, body.Position.Y(), 0.01, "falls back to the floor")
}

func TestDesktopWalks(t *testing.T) {
	tuning := cfg.Current()
	tuning.Sim.DesktopMode = true

	walk := sample(mgl64.Vec3{-0.2, 1, 0.2}, mgl64.Vec3{0.2, 1, 0.2})
	walk.Move = mgl64.Vec2{0, 1}
	s := newTestScene(t, tuning, testArena(), rig.NewScripted(at(0, walk)))

	e, err := s.Avatar(0)
	require.NoError(t, err)
	avatar := components.Avatar.Get(e)
	require.True(t, avatar.IsDesktop())

	s.Run(45)
	body := avatar.Body()
	assert.Greater(t, body.Position.Z(), 2.1)
	assert.InDelta(t, 2, body.Position.X(), 1e-9)
	assert.InDelta(t, 0, body.Position.Y(), 0.01)
}

func TestGameLoopRunsFrames(t *testing.T) {
	rest := sample(mgl64.Vec3{-0.2, 1, 0.2}, mgl64.Vec3{0.2, 1, 0.2})
	s := newTestScene(t, cfg.Current(), testArena(), rig.NewScripted(at(0, rest)))

	loop := NewGameLoop(s, 1000)
	loop.Run(5)
	assert.Equal(t, 5, s.Frame())

	loop.Stop()
	loop.Stop()
	loop.Run(0)
	assert.Equal(t, 5, s.Frame())
}
