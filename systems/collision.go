package systems

import (
	"github.com/automoto/intheclouds/climbing"
	cfg "github.com/automoto/intheclouds/config"
	"github.com/automoto/intheclouds/rig"
	"github.com/automoto/intheclouds/shared/collision"
	"github.com/go-gl/mathgl/mgl64"
)

// syncClimbRegions refreshes which climbable colliders each hand is near.
func syncClimbRegions(space *collision.Space, pair *climbing.Pair, hands [2]mgl64.Vec3) {
	for _, side := range rig.Sides {
		var ids []string
		for _, c := range space.Overlap(hands[side], cfg.Climb.RegionRadius, collision.LayerClimbable) {
			ids = append(ids, c.ID)
		}
		pair.SyncRegions(side, ids)
	}
}
