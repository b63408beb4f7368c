package components

import (
	"time"

	"github.com/yohamta/donburi"
)

// DeathData marks an entity whose health reached zero. It is restored once
// the clock passes RespawnAt.
type DeathData struct {
	DiedAt    time.Duration
	RespawnAt time.Duration
}

var Death = donburi.NewComponentType[DeathData]()
