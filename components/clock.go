package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// ClockData is the fixed-step simulation clock. Systems read it instead of
// the wall clock so a run is reproducible.
type ClockData struct {
	Now   time.Duration
	Step  time.Duration
	Frame int
}

// DT returns the step in seconds.
func (c *ClockData) DT() float64 {
	return c.Step.Seconds()
}

var Clock = donburi.NewComponentType[ClockData]()
