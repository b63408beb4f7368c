package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

type DamageEventData struct {
	Amount    int
	Knockback mgl64.Vec3
	Attacker  string // Name of the attacking avatar ("" = environment)
}

var DamageEvent = donburi.NewComponentType[DamageEventData]()
