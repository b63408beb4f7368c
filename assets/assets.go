package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"github.com/automoto/intheclouds/shared/leveldata"
)

var (
	//go:embed all:arenas
	arenaFS embed.FS
)

// DefaultArena is loaded when no arena is named.
const DefaultArena = "sandbox"

// ArenaFS exposes the embedded arena files.
func ArenaFS() fs.FS {
	return arenaFS
}

// LoadArena parses an embedded arena by stem name.
func LoadArena(name string) (*leveldata.ArenaData, error) {
	if name == "" {
		name = DefaultArena
	}
	data, err := leveldata.LoadArena(arenaFS, path.Join("arenas", name+".tmx"))
	if err != nil {
		return nil, fmt.Errorf("arena %q: %w", name, err)
	}
	return data, nil
}

// MustLoadArenas loads every embedded arena. It panics on a broken file,
// since the files ship with the binary.
func MustLoadArenas() (map[string]*leveldata.ArenaData, []string) {
	arenas, names, err := leveldata.LoadAllArenas(arenaFS, "arenas")
	if err != nil {
		panic(fmt.Sprintf("Failed to load arenas: %v", err))
	}
	return arenas, names
}
