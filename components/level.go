package components

import (
	"github.com/automoto/intheclouds/shared/leveldata"
	"github.com/yohamta/donburi"
)

type ArenaData struct {
	Name string
	Data *leveldata.ArenaData
}

var Arena = donburi.NewComponentType[ArenaData]()
