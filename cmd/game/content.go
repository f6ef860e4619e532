package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cmoritz/blackwood/internal/game/combat"
	"github.com/cmoritz/blackwood/internal/game/item"
	"github.com/cmoritz/blackwood/internal/game/world"
)

// buildWorld loads the room layout, indexes it into a World, validates the
// graph, and places the search spots.
func buildWorld(roomsPath, spotsPath string, reg *item.Registry) (*world.World, error) {
	rooms, err := world.LoadRoomLayout(roomsPath)
	if err != nil {
		return nil, err
	}
	w, err := world.New(rooms)
	if err != nil {
		return nil, err
	}
	if err := w.ValidateNeighbors(); err != nil {
		return nil, fmt.Errorf("validating room graph: %w", err)
	}
	if err := world.LoadSearchSpots(w, spotsPath, reg); err != nil {
		return nil, err
	}
	return w, nil
}

// contentConfig wires locks, the gear mechanism, and enemy placements onto a
// loaded room layout. It lives in its own YAML file next to the layout so
// level design stays out of the binary.
type contentConfig struct {
	Locks    []lockSpec       `yaml:"locks"`
	GearLock *gearLockSpec    `yaml:"gear_lock"`
	Enemies  []enemyPlacement `yaml:"enemies"`
}

type lockSpec struct {
	Name          string `yaml:"name"`
	RoomID        string `yaml:"room_id"`
	SpotName      string `yaml:"spot_name"`
	RequiredItem  string `yaml:"required_item"`
	LockedMessage string `yaml:"locked_message"`
	UnlockMessage string `yaml:"unlock_message"`
	ConsumesItem  bool   `yaml:"consumes_item"`
}

type gearLockSpec struct {
	EntryRoomID  string `yaml:"entry_room_id"`
	TargetRoomID string `yaml:"target_room_id"`
}

type enemyPlacement struct {
	RoomID string `yaml:"room_id"`
	Name   string `yaml:"name"`
	Health int    `yaml:"health"`
	Damage int    `yaml:"damage"`
}

// loadContent parses the content file. A missing path is not an error; the
// world simply runs without locks or enemies.
func loadContent(path string) (*contentConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &contentConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading content %q: %w", path, err)
	}
	var cc contentConfig
	if err := yaml.Unmarshal(data, &cc); err != nil {
		return nil, fmt.Errorf("parsing content %q: %w", path, err)
	}
	return &cc, nil
}

// apply wires the content onto the world.
func (cc *contentConfig) apply(w *world.World) error {
	specs := make([]world.LockSpec, 0, len(cc.Locks))
	for _, l := range cc.Locks {
		specs = append(specs, world.LockSpec{
			Name:          l.Name,
			RoomID:        l.RoomID,
			SpotName:      l.SpotName,
			RequiredItem:  l.RequiredItem,
			LockedMessage: l.LockedMessage,
			UnlockMessage: l.UnlockMessage,
			ConsumesItem:  l.ConsumesItem,
		})
	}
	w.InitializeLocks(specs)

	if g := cc.GearLock; g != nil {
		if g.EntryRoomID == "" || g.TargetRoomID == "" {
			return fmt.Errorf("gear_lock needs both entry_room_id and target_room_id")
		}
		w.InitializeGearLock(g.EntryRoomID, g.TargetRoomID)
	}

	for _, e := range cc.Enemies {
		r, ok := w.Room(e.RoomID)
		if !ok {
			return fmt.Errorf("enemy %q placed in unknown room %q", e.Name, e.RoomID)
		}
		health, damage := e.Health, e.Damage
		if health <= 0 {
			health = 30
		}
		if damage < 0 {
			damage = 0
		}
		r.AddEnemy(combat.NewEnemy(e.Name, health, damage))
	}
	return nil
}
