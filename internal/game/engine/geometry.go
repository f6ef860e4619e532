// Package engine drives the real-time mode: per-tick movement integration,
// collision resolution against room geometry, and room-to-room transitions.
package engine

import (
	"github.com/jakecoffman/cp"

	"github.com/cmoritz/blackwood/internal/game/tilemap"
)

// RoomGeometry is the collision and trigger geometry of one room, extracted
// from its tile map.
type RoomGeometry struct {
	// Name is the room's display name, matched against EXIT TO targets.
	Name string

	bounds     cp.BB
	collisions []cp.BB
	exits      []tilemap.Exit
	prompts    []tilemap.Object

	tileMap *tilemap.Map
}

// NewRoomGeometry extracts engine geometry from a parsed tile map.
//
// Precondition: m is non-nil.
func NewRoomGeometry(name string, m *tilemap.Map) *RoomGeometry {
	return &RoomGeometry{
		Name:       name,
		bounds:     m.PixelBounds(),
		collisions: m.Collisions(),
		exits:      m.Exits(),
		prompts:    m.TransitionPrompts(),
		tileMap:    m,
	}
}

// Bounds returns the walkable pixel bounds.
func (g *RoomGeometry) Bounds() cp.BB { return g.bounds }

// Collisions returns the solid rectangles.
func (g *RoomGeometry) Collisions() []cp.BB { return g.collisions }

// Exits returns the hard exit zones.
func (g *RoomGeometry) Exits() []tilemap.Exit { return g.exits }

// EntranceFrom returns the anchor for arrivals from the named room.
func (g *RoomGeometry) EntranceFrom(source string) (tilemap.Object, bool) {
	return g.tileMap.EntranceFrom(source)
}

// SpawnPoint returns the map's spawn marker, or the bounds center when the
// map has none.
func (g *RoomGeometry) SpawnPoint() cp.Vector {
	if p, ok := g.tileMap.SpawnPoint(); ok {
		return p
	}
	return g.bounds.Center()
}

// blocked reports whether a player box centered at pos overlaps any solid
// rectangle.
func (g *RoomGeometry) blocked(pos cp.Vector, halfExtent float64) bool {
	box := playerBox(pos, halfExtent)
	for _, rect := range g.collisions {
		if box.Intersects(rect) {
			return true
		}
	}
	return false
}

// playerBox is the player's axis-aligned collision box centered at pos.
func playerBox(pos cp.Vector, halfExtent float64) cp.BB {
	return cp.BB{
		L: pos.X - halfExtent,
		B: pos.Y - halfExtent,
		R: pos.X + halfExtent,
		T: pos.Y + halfExtent,
	}
}

// clampToBounds keeps the player box inside the walkable bounds with
// half-extent margins. The clamp is final: it overrides collision results.
func clampToBounds(pos cp.Vector, bounds cp.BB, halfExtent float64) cp.Vector {
	return cp.Vector{
		X: clamp(pos.X, bounds.L+halfExtent, bounds.R-halfExtent),
		Y: clamp(pos.Y, bounds.B+halfExtent, bounds.T-halfExtent),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
