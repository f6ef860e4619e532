// Package world provides the game world model: the room graph, room
// contents, search spots, and lock wiring.
package world

import (
	"github.com/cmoritz/blackwood/internal/game/combat"
	"github.com/cmoritz/blackwood/internal/game/item"
	"github.com/cmoritz/blackwood/internal/game/lock"
)

// PlacedItem is an item lying in a room at a world position.
type PlacedItem struct {
	Item *item.Item
	X, Y float64
}

// Room represents a location in the game world.
type Room struct {
	// ID uniquely identifies this room; the turn-based layout uses the
	// stringified line index.
	ID string
	// Name is the display name of the room.
	Name string
	// Neighbors lists reachable room IDs in layout order.
	Neighbors []string

	locked     bool
	accessLock *lock.Lock

	items     []PlacedItem
	enemies   []*combat.Enemy
	spots     []*SearchSpot
	spotLocks map[string]*lock.Lock
}

// NewRoom creates an unlocked room with the given identity and neighbors.
func NewRoom(id, name string, neighbors []string) *Room {
	return &Room{
		ID:        id,
		Name:      name,
		Neighbors: neighbors,
		spotLocks: make(map[string]*lock.Lock),
	}
}

// IsLocked reports whether entry to this room is gated. The flag is the sole
// entry gate; clearing it is permanent.
func (r *Room) IsLocked() bool { return r.locked }

// Unlock permanently clears the room's locked flag.
func (r *Room) Unlock() { r.locked = false }

// SetAccessLock attaches a lock gating entry and marks the room locked.
func (r *Room) SetAccessLock(l *lock.Lock) {
	r.accessLock = l
	r.locked = true
}

// AccessLock returns the entry lock, or nil when the room has none.
func (r *Room) AccessLock() *lock.Lock { return r.accessLock }

// HasNeighbor reports whether targetID is adjacent to this room.
func (r *Room) HasNeighbor(targetID string) bool {
	for _, n := range r.Neighbors {
		if n == targetID {
			return true
		}
	}
	return false
}

// AddItem places an item in the room at the given position.
func (r *Room) AddItem(it *item.Item, x, y float64) {
	r.items = append(r.items, PlacedItem{Item: it, X: x, Y: y})
}

// Items returns a copy of the room's placed items.
func (r *Room) Items() []PlacedItem {
	out := make([]PlacedItem, len(r.items))
	copy(out, r.items)
	return out
}

// TakeItem removes and returns the first room item matching name,
// case-insensitively.
//
// Postcondition: Returns (item, true) on removal, or (nil, false) when absent.
func (r *Room) TakeItem(name string) (*item.Item, bool) {
	for i, placed := range r.items {
		if placed.Item.Matches(name) {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return placed.Item, true
		}
	}
	return nil, false
}

// ClearItems removes every placed item. Used when restoring a saved game.
func (r *Room) ClearItems() { r.items = nil }

// AddEnemy places an enemy in the room.
func (r *Room) AddEnemy(e *combat.Enemy) { r.enemies = append(r.enemies, e) }

// Enemies returns the living enemies in the room.
func (r *Room) Enemies() []*combat.Enemy {
	var alive []*combat.Enemy
	for _, e := range r.enemies {
		if e.IsAlive() {
			alive = append(alive, e)
		}
	}
	return alive
}

// FindEnemy returns the first living enemy matching name, case-insensitively.
func (r *Room) FindEnemy(name string) (*combat.Enemy, bool) {
	for _, e := range r.enemies {
		if e.IsAlive() && e.Matches(name) {
			return e, true
		}
	}
	return nil, false
}

// AddSearchSpot appends a search spot, preserving insertion order.
func (r *Room) AddSearchSpot(s *SearchSpot) { r.spots = append(r.spots, s) }

// SearchSpots returns all spots in insertion order.
func (r *Room) SearchSpots() []*SearchSpot {
	out := make([]*SearchSpot, len(r.spots))
	copy(out, r.spots)
	return out
}

// UnsearchedSpots returns exactly the spots not yet searched, in stable
// insertion order.
func (r *Room) UnsearchedSpots() []*SearchSpot {
	var out []*SearchSpot
	for _, s := range r.spots {
		if !s.Searched() {
			out = append(out, s)
		}
	}
	return out
}

// FindSpot returns the named search spot, case-insensitively.
func (r *Room) FindSpot(name string) (*SearchSpot, bool) {
	for _, s := range r.spots {
		if equalFold(s.Name, name) {
			return s, true
		}
	}
	return nil, false
}

// SetSpotLock attaches a lock that must be satisfied before the named spot
// can be searched.
func (r *Room) SetSpotLock(spotName string, l *lock.Lock) {
	r.spotLocks[spotName] = l
}

// SpotLock returns the lock guarding the named spot, if any.
func (r *Room) SpotLock(spotName string) (*lock.Lock, bool) {
	l, ok := r.spotLocks[spotName]
	return l, ok
}

// TrySearch searches the named spot, first satisfying any lock guarding it.
//
// Postcondition: returns (item, true) when the search ran and yielded loot;
// (nil, true) when it ran and found nothing or the spot was already searched;
// (nil, false) when the spot is unknown or its lock held. A failed unlock
// leaves the spot's searched state untouched.
func (r *Room) TrySearch(spotName string, h lock.Holder, confirm lock.Confirm) (*item.Item, bool) {
	spot, ok := r.FindSpot(spotName)
	if !ok {
		return nil, false
	}
	if l, guarded := r.spotLocks[spot.Name]; guarded && l.IsLocked() {
		if !l.AttemptUnlock(h, confirm) {
			return nil, false
		}
	}
	found, _ := spot.Search()
	return found, true
}
