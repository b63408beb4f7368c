package main

import (
	"flag"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/automoto/intheclouds/assets"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/sim"
	"github.com/automoto/intheclouds/systems"
	"github.com/go-gl/mathgl/mgl64"
)

const appName = "intheclouds"

func main() {
	arena := flag.String("arena", assets.DefaultArena, "Arena to load")
	tuningPath := flag.String("tuning", "", "TOML tuning file (empty = built-in defaults)")
	tickRate := flag.Int("tickrate", 0, "Simulation tick rate (0 = tuning value)")
	frames := flag.Int("frames", 900, "Frames to simulate (0 = until interrupted)")
	avatars := flag.Int("avatars", 1, "Number of scripted avatars")
	desktop := flag.Bool("desktop", false, "Use flat desktop controls instead of arm swinging")
	realtime := flag.Bool("realtime", false, "Pace frames to wall time")
	saveCalibration := flag.Bool("save-calibration", false, "Store the active calibration and exit")
	flag.Parse()

	tuning := cfg.Current()
	if *tuningPath != "" {
		t, err := cfg.LoadFile(*tuningPath)
		if err != nil {
			log.Fatalf("Failed to load tuning: %v", err)
		}
		tuning = t
	}
	if *tickRate > 0 {
		tuning.Sim.TickRate = *tickRate
	}
	if *desktop {
		tuning.Sim.DesktopMode = true
	}

	if err := systems.InitPersistence(appName); err == nil {
		tuning.Apply()
		if *saveCalibration {
			if err := systems.SaveCalibration(systems.CurrentCalibration()); err != nil {
				log.Fatalf("Failed to save calibration: %v", err)
			}
			log.Println("Calibration saved")
			return
		}
		saved, _ := systems.LoadCalibration()
		systems.ApplyCalibration(saved)
		tuning = cfg.Current()
	}

	data, err := assets.LoadArena(*arena)
	if err != nil {
		log.Fatalf("Failed to load arena: %v", err)
	}

	sources := make([]rig.Source, *avatars)
	for i := range sources {
		sources[i] = demoSource(time.Duration(i) * 250 * time.Millisecond)
	}

	scene, err := sim.NewScene(sim.Options{
		ArenaName: *arena,
		Arena:     data,
		Sources:   sources,
		Tuning:    &tuning,
	})
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	if !*realtime {
		if *frames <= 0 {
			log.Fatalf("-frames must be positive unless -realtime is set")
		}
		scene.Run(*frames)
		log.Printf("Simulated %d frames (%v)", scene.Frame(), scene.Now())
		scene.Stats().LogSummary()
		return
	}

	loop := sim.NewGameLoop(scene, tuning.Sim.TickRate)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down...")
		loop.Stop()
	}()

	loop.Run(*frames)
	scene.Stats().LogSummary()
}

// demoSource stands still, swings both arms and throws a right punch every
// punchPeriod. Desktop input walks forward for the first moment.
func demoSource(offset time.Duration) rig.Source {
	const punchPeriod = 1500 * time.Millisecond
	head := mgl64.Vec3{0, 1.6, 0}

	return rig.SourceFunc(func(now time.Duration) rig.Sample {
		t := now + offset
		swing := math.Sin(t.Seconds() * 2 * math.Pi)

		left := mgl64.Vec3{-0.25, 1.1, 0.15 + 0.1*swing}
		right := mgl64.Vec3{0.25, 1.1, 0.15 - 0.1*swing}

		phase := t % punchPeriod
		if punch := punchPeriod - 200*time.Millisecond; phase >= punch {
			k := float64(phase-punch) / float64(100*time.Millisecond)
			if k > 1 {
				k = 1
			}
			right = mgl64.Vec3{0.1, 1.4, 0.2 + 1.1*k}
		}

		s := rig.Sample{
			Head: rig.NewPose(head),
			Hands: [2]rig.HandSample{
				{Pose: rig.NewPose(left)},
				{Pose: rig.NewPose(right)},
			},
		}
		if now < 300*time.Millisecond {
			s.Move = mgl64.Vec2{0, 1}
		}
		return s
	})
}
