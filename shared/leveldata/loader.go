package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Defaults for properties an arena file leaves out.
const (
	DefaultMetersPerTile = 1.0
	DefaultTileHeight    = 1.0 // Thickness of a floor tile below y=0
	DefaultBlockHeight   = 1.0
	DefaultTargetRadius  = 0.3
	DefaultTargetHeight  = 1.4
)

// LoadArena parses a TMX file. It takes an fs.FS so callers can pass
// embed.FS or os.DirFS.
//
// Recognised content:
//   - tile layer "wg-tiles": every tile is a floor slab with its top at y=0;
//     a tile "height" property raises it into a column
//   - object group "Geometry": rectangles with "bottom", "height", "slip"
//     and "climbable" properties
//   - object group "PlayerSpawn": points with "elevation", "yaw" and
//     "spawnIndex"
//   - object group "Targets": points with "elevation" and "radius"
func LoadArena(fsys fs.FS, tmxPath string) (*ArenaData, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth <= 0 || levelMap.TileHeight <= 0 {
		return nil, fmt.Errorf("load TMX %s: tile size %dx%d", tmxPath, levelMap.TileWidth, levelMap.TileHeight)
	}

	metersPerTile := DefaultMetersPerTile
	if levelMap.Properties != nil {
		if v, ok := floatProp(*levelMap.Properties, "meters_per_tile"); ok && v > 0 {
			metersPerTile = v
		}
	}
	sx := metersPerTile / float64(levelMap.TileWidth)
	sz := metersPerTile / float64(levelMap.TileHeight)

	data := &ArenaData{
		Width: float64(levelMap.Width) * metersPerTile,
		Depth: float64(levelMap.Height) * metersPerTile,
	}

	// Floor tiles
	for _, layer := range levelMap.Layers {
		if layer.Name != "wg-tiles" {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				block := Block{
					Name:   fmt.Sprintf("tile_%d_%d", x, y),
					X:      float64(x) * metersPerTile,
					Z:      float64(y) * metersPerTile,
					W:      metersPerTile,
					D:      metersPerTile,
					Bottom: -DefaultTileHeight,
					Height: DefaultTileHeight,
				}
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					if h, ok := floatProp(tilesetTile.Properties, "height"); ok && h > 0 {
						block.Height += h
					}
					block.Slip, block.HasSlip = floatProp(tilesetTile.Properties, "slip")
					block.Climbable = tilesetTile.Properties.GetBool("climbable")
				}
				data.Blocks = append(data.Blocks, block)
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "Geometry":
			for _, o := range og.Objects {
				block := Block{
					Name:      objectName(o),
					X:         o.X * sx,
					Z:         o.Y * sz,
					W:         o.Width * sx,
					D:         o.Height * sz,
					Height:    DefaultBlockHeight,
					Climbable: o.Properties.GetBool("climbable"),
				}
				block.Bottom, _ = floatProp(o.Properties, "bottom")
				if h, ok := floatProp(o.Properties, "height"); ok && h > 0 {
					block.Height = h
				}
				block.Slip, block.HasSlip = floatProp(o.Properties, "slip")
				if block.W <= 0 || block.D <= 0 {
					return nil, fmt.Errorf("load TMX %s: geometry %q has no area", tmxPath, block.Name)
				}
				data.Blocks = append(data.Blocks, block)
			}

		case "PlayerSpawn":
			for _, o := range og.Objects {
				elevation, _ := floatProp(o.Properties, "elevation")
				yaw, _ := floatProp(o.Properties, "yaw")
				data.Spawns = append(data.Spawns, SpawnPoint{
					X:     o.X * sx,
					Y:     elevation,
					Z:     o.Y * sz,
					Yaw:   yaw,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}

		case "Targets":
			for _, o := range og.Objects {
				target := Target{
					Name:   objectName(o),
					X:      o.X * sx,
					Y:      DefaultTargetHeight,
					Z:      o.Y * sz,
					Radius: DefaultTargetRadius,
				}
				if v, ok := floatProp(o.Properties, "elevation"); ok {
					target.Y = v
				}
				if v, ok := floatProp(o.Properties, "radius"); ok && v > 0 {
					target.Radius = v
				}
				data.Targets = append(data.Targets, target)
			}
		}
	}

	if len(data.Spawns) == 0 {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, ErrNoSpawn)
	}

	// Sort spawns by index, then left-to-right, for consistent assignment
	sort.SliceStable(data.Spawns, func(i, j int) bool {
		if data.Spawns[i].Index != data.Spawns[j].Index {
			return data.Spawns[i].Index < data.Spawns[j].Index
		}
		return data.Spawns[i].X < data.Spawns[j].X
	})

	return data, nil
}

// LoadAllArenas discovers all .tmx files in dir within fsys, loads each, and
// returns a map keyed by stem name plus a sorted list of names.
func LoadAllArenas(fsys fs.FS, dir string) (map[string]*ArenaData, []string, error) {
	pattern := dir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	arenas := make(map[string]*ArenaData, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadArena(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		stem := strings.TrimSuffix(filepath.Base(path), ".tmx")
		arenas[stem] = data
		names = append(names, stem)
	}

	sort.Strings(names)
	return arenas, names, nil
}

// floatProp reads a numeric property whatever type Tiled stored it as.
func floatProp(props tiled.Properties, name string) (float64, bool) {
	for _, p := range props {
		if p.Name != name {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

func objectName(o *tiled.Object) string {
	if o.Name != "" {
		return o.Name
	}
	return fmt.Sprintf("object_%d", o.ID)
}
