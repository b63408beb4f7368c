package components

import (
	"github.com/automoto/intheclouds/combat"
	"github.com/yohamta/donburi"
)

type HealthData struct {
	*combat.Vulnerability
}

var Health = donburi.NewComponentType[HealthData]()
