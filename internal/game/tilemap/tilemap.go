// Package tilemap parses the tile-map JSON documents produced by the map
// editor. The format is an external contract: object groups carry the
// collision rectangles, exits, entrance anchors, and prompt zones the
// real-time engine consumes.
package tilemap

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jakecoffman/cp"
)

// Object-group layer names the engine understands.
const (
	LayerCollisions        = "Collisions"
	LayerGameObjects       = "GameObjects"
	LayerTransitionPrompts = "RoomTransitionPrompts"
	// LayerTransitionPrompt is the singular spelling some maps use.
	LayerTransitionPrompt = "RoomTransitionPrompt"
	LayerHidingSpots      = "HidingSpotPrompt"
)

// Object name prefixes and markers inside GameObjects.
const (
	exitPrefix  = "EXIT TO "
	enterPrefix = "ENTER FROM "
	spawnPoint  = "SPAWNPOINT"
)

// Object is a named rectangle placed on an object-group layer.
type Object struct {
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect returns the object's bounding box. B is the minimum Y edge so overlap
// tests work in screen coordinates.
func (o Object) Rect() cp.BB {
	return cp.BB{L: o.X, B: o.Y, R: o.X + o.Width, T: o.Y + o.Height}
}

// Center returns the rectangle's midpoint.
func (o Object) Center() cp.Vector {
	return cp.Vector{X: o.X + o.Width/2, Y: o.Y + o.Height/2}
}

// Horizontal reports whether the rectangle is wider than tall. Entrance
// anchors use this to decide the offset direction for placement.
func (o Object) Horizontal() bool { return o.Width >= o.Height }

// Layer is one entry of the map's layers array. Only object groups carry
// objects; tile layers are rendering concerns and pass through untouched.
type Layer struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Objects []Object `json:"objects"`
}

// Map is a parsed tile-map document.
type Map struct {
	TileWidth  int     `json:"tilewidth"`
	TileHeight int     `json:"tileheight"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Layers     []Layer `json:"layers"`
}

// Exit is a hard exit zone leading to another room.
type Exit struct {
	// RoomName is the destination room's display name.
	RoomName string
	// Zone is the trigger rectangle.
	Zone cp.BB
}

// Parse decodes a tile-map JSON document.
//
// Postcondition: Returns a Map with positive dimensions or a non-nil error.
func Parse(data []byte) (*Map, error) {
	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing tile map: %w", err)
	}
	if m.Width <= 0 || m.Height <= 0 || m.TileWidth <= 0 || m.TileHeight <= 0 {
		return nil, fmt.Errorf("invalid tile map dimensions: %dx%d tiles of %dx%d", m.Width, m.Height, m.TileWidth, m.TileHeight)
	}
	return &m, nil
}

// Load reads and parses a tile-map file. A missing map file is an error the
// caller treats as fatal for that room load.
func Load(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tile map %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("tile map %s: %w", path, err)
	}
	return m, nil
}

// PixelBounds returns the walkable map bounds in pixels.
func (m *Map) PixelBounds() cp.BB {
	return cp.BB{
		L: 0,
		B: 0,
		R: float64(m.Width * m.TileWidth),
		T: float64(m.Height * m.TileHeight),
	}
}

// ObjectGroup returns the named object-group layer.
//
// Postcondition: Returns (layer, true) if found, or (Layer{}, false).
func (m *Map) ObjectGroup(name string) (Layer, bool) {
	for _, l := range m.Layers {
		if l.Name == name {
			return l, true
		}
	}
	return Layer{}, false
}

// Collisions returns the collision rectangles. Maps without a Collisions
// group degrade to no collision geometry.
func (m *Map) Collisions() []cp.BB {
	group, ok := m.ObjectGroup(LayerCollisions)
	if !ok {
		return nil
	}
	out := make([]cp.BB, 0, len(group.Objects))
	for _, o := range group.Objects {
		out = append(out, o.Rect())
	}
	return out
}

// Exits returns the hard exit zones from the GameObjects group.
func (m *Map) Exits() []Exit {
	group, ok := m.ObjectGroup(LayerGameObjects)
	if !ok {
		return nil
	}
	var out []Exit
	for _, o := range group.Objects {
		if room, ok := cutPrefixFold(o.Name, exitPrefix); ok {
			out = append(out, Exit{RoomName: room, Zone: o.Rect()})
		}
	}
	return out
}

// EntranceFrom returns the anchor marking where the player enters when
// arriving from the named source room.
//
// Postcondition: Returns (anchor, true) if the map has a matching
// "ENTER FROM <SOURCE>" object, or (Object{}, false).
func (m *Map) EntranceFrom(sourceRoom string) (Object, bool) {
	group, ok := m.ObjectGroup(LayerGameObjects)
	if !ok {
		return Object{}, false
	}
	for _, o := range group.Objects {
		if room, ok := cutPrefixFold(o.Name, enterPrefix); ok && strings.EqualFold(room, sourceRoom) {
			return o, true
		}
	}
	return Object{}, false
}

// SpawnPoint returns the map's SPAWNPOINT marker.
//
// Postcondition: Returns (point, true) if present, or (zero, false).
func (m *Map) SpawnPoint() (cp.Vector, bool) {
	group, ok := m.ObjectGroup(LayerGameObjects)
	if !ok {
		return cp.Vector{}, false
	}
	for _, o := range group.Objects {
		if strings.EqualFold(o.Name, spawnPoint) {
			return o.Center(), true
		}
	}
	return cp.Vector{}, false
}

// TransitionPrompts returns the confirmable transition prompt zones,
// accepting both the plural and singular layer spellings.
func (m *Map) TransitionPrompts() []Object {
	group, ok := m.ObjectGroup(LayerTransitionPrompts)
	if !ok {
		group, ok = m.ObjectGroup(LayerTransitionPrompt)
	}
	if !ok {
		return nil
	}
	return group.Objects
}

// HidingSpots returns the hiding-spot prompt zones.
func (m *Map) HidingSpots() []Object {
	group, ok := m.ObjectGroup(LayerHidingSpots)
	if !ok {
		return nil
	}
	return group.Objects
}

// cutPrefixFold is strings.CutPrefix with ASCII case folding on the prefix.
func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(s[len(prefix):]), true
}
