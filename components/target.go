package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// TargetData is a training dummy.
type TargetData struct {
	Name      string
	Center    mgl64.Vec3
	Radius    float64
	Hits      int // Landed hits, for the session summary
	Deaths    int
	LastHitBy string // Attacker of the last landed hit
}

var Target = donburi.NewComponentType[TargetData]()
