// Package main provides the mapcheck binary: it validates a directory of
// room tile maps, cross-checking exits, entrance anchors, and spawn points
// so broken level wiring fails in CI instead of at a door.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gookit/color"
	"go.uber.org/zap"

	"github.com/cmoritz/blackwood/internal/config"
	"github.com/cmoritz/blackwood/internal/game/engine"
	"github.com/cmoritz/blackwood/internal/game/tilemap"
	"github.com/cmoritz/blackwood/internal/observability"
)

var (
	styleOK   = color.Style{color.FgGreen}
	styleFail = color.Style{color.FgRed, color.OpBold}
)

func main() {
	mapsDir := flag.String("maps", "content/maps", "directory of room tile-map JSON files")
	spawnRequired := flag.String("spawn-room", "", "room that must carry a spawn point; empty = any room may")
	flag.Parse()

	// The built-in default config always validates; a failure here is a bug.
	logger := observability.MustLogger(config.Default().Logging)
	defer logger.Sync()

	maps, err := loadAll(*mapsDir)
	if err != nil {
		logger.Fatal("loading maps", zap.Error(err))
	}
	if len(maps) == 0 {
		logger.Fatal("no tile maps found", zap.String("dir", *mapsDir))
	}

	problems := check(maps, *spawnRequired)

	names := make([]string, 0, len(maps))
	for name := range maps {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		m := maps[name]
		fmt.Printf("%s: %d exits, %d prompts, %d collision boxes\n",
			name, len(m.Exits()), len(m.TransitionPrompts()), len(m.Collisions()))
	}

	if len(problems) > 0 {
		for _, p := range problems {
			styleFail.Println("FAIL " + p)
		}
		os.Exit(1)
	}
	styleOK.Printf("OK: %d maps verified\n", len(maps))
}

// loadAll reads every *.json file in dir, keyed by room name (the file base
// name without extension).
func loadAll(dir string) (map[string]*tilemap.Map, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading maps directory %q: %w", dir, err)
	}
	maps := make(map[string]*tilemap.Map)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		m, err := tilemap.Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		maps[name] = m
	}
	return maps, nil
}

// check cross-validates the room graph the maps encode.
func check(maps map[string]*tilemap.Map, spawnRoom string) []string {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	spawns := 0
	for name, m := range maps {
		geo := engine.NewRoomGeometry(name, m)

		if _, ok := m.SpawnPoint(); ok {
			spawns++
		}

		for _, exit := range m.Exits() {
			dest, ok := findRoom(maps, exit.RoomName)
			if !ok {
				report("%s: exit to %q has no map file", name, exit.RoomName)
				continue
			}
			if _, ok := maps[dest].EntranceFrom(name); !ok {
				report("%s: %q has no ENTER FROM %s anchor", name, dest, name)
			}
			if !exit.Zone.Intersects(m.PixelBounds()) {
				report("%s: exit to %q lies outside the map bounds", name, exit.RoomName)
			}
		}

		// A confirmed prompt resolves to the nearest exit; with no exits on
		// the map it can never complete a transition.
		if len(m.TransitionPrompts()) > 0 && len(m.Exits()) == 0 {
			report("%s: has transition prompts but no exits", name)
		}

		// The engine falls back to the bounds center when a map has no
		// spawn point; either way the placement must be inside the map.
		if !m.PixelBounds().ContainsVect(geo.SpawnPoint()) {
			report("%s: spawn placement lies outside the map bounds", name)
		}
	}

	if spawnRoom != "" {
		m, ok := findRoom(maps, spawnRoom)
		if !ok {
			report("spawn room %q has no map file", spawnRoom)
		} else if _, found := maps[m].SpawnPoint(); !found {
			report("spawn room %q carries no SPAWNPOINT object", spawnRoom)
		}
	}
	if spawns == 0 && spawnRoom == "" {
		report("no map carries a SPAWNPOINT object")
	}

	return problems
}

// findRoom matches a destination name against map file names, ignoring case
// and treating spaces and underscores alike.
func findRoom(maps map[string]*tilemap.Map, name string) (string, bool) {
	want := normalizeRoom(name)
	for candidate := range maps {
		if normalizeRoom(candidate) == want {
			return candidate, true
		}
	}
	return "", false
}

func normalizeRoom(name string) string {
	return strings.ToLower(strings.NewReplacer("_", " ").Replace(strings.TrimSpace(name)))
}
