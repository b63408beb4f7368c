// Package leveldata parses arena layouts from Tiled TMX files. The map is
// drawn top-down: TMX x is world X, TMX y is world Z, and heights come from
// object and tile properties. It has no dependency on the collision or ECS
// packages; pure data only.
package leveldata

import "errors"

// ErrNoSpawn is returned for an arena without a PlayerSpawn object.
var ErrNoSpawn = errors.New("arena has no spawn points")

// ArenaData holds everything the simulation needs from an arena file.
// Distances are in meters.
type ArenaData struct {
	Blocks  []Block
	Spawns  []SpawnPoint
	Targets []Target

	Width float64 // Extent along X
	Depth float64 // Extent along Z
}

// Block is an axis-aligned box of static geometry.
type Block struct {
	Name      string
	X, Z      float64 // Min corner on the ground plane
	W, D      float64
	Bottom    float64
	Height    float64
	Slip      float64
	HasSlip   bool // Slip was set; otherwise the resolver's default applies
	Climbable bool
}

// SpawnPoint is an avatar spawn location.
type SpawnPoint struct {
	X, Y, Z float64
	Yaw     float64 // Degrees
	Index   int
}

// Target is a damageable training dummy.
type Target struct {
	Name    string
	X, Y, Z float64 // Centre
	Radius  float64
}
