package sim

import (
	"log"
	"sync"
	"time"
)

// GameLoop steps a scene on a wall-clock ticker.
type GameLoop struct {
	scene    *Scene
	tickRate int
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewGameLoop(scene *Scene, tickRate int) *GameLoop {
	if tickRate < 1 {
		tickRate = 1
	}
	return &GameLoop{
		scene:    scene,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

// Run ticks until Stop is called or, when frames > 0, until that many
// frames have run.
func (g *GameLoop) Run(frames int) {
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	log.Printf("Game loop started at %d ticks/second", g.tickRate)

	for n := 0; frames <= 0 || n < frames; n++ {
		select {
		case <-g.stopChan:
			log.Println("Game loop stopped")
			return
		case <-ticker.C:
			g.scene.Update()
		}
	}
	log.Printf("Game loop finished after %d frames", frames)
}

// Stop ends Run. It is safe to call more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}
