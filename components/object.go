package components

import (
	"github.com/automoto/intheclouds/shared/collision"
	"github.com/yohamta/donburi"
)

type ColliderData struct {
	*collision.Collider
}

var Collider = donburi.NewComponentType[ColliderData]()

type SpaceData struct {
	*collision.Space
}

var Space = donburi.NewComponentType[SpaceData]()
