package tags

import "github.com/yohamta/donburi"

var (
	Avatar    = donburi.NewTag().SetName("Avatar")
	Target    = donburi.NewTag().SetName("Target")
	Block     = donburi.NewTag().SetName("Block")
	Climbable = donburi.NewTag().SetName("Climbable")
)
