package world

import (
	"fmt"
	"strings"

	"github.com/cmoritz/blackwood/internal/game/lock"
)

// MoveResult describes the outcome of a turn-based navigation attempt.
type MoveResult int

// Navigation outcomes.
const (
	// Moved means the current room changed.
	Moved MoveResult = iota
	// NoPath means the target is not adjacent; the current room is unchanged.
	NoPath
	// Blocked means the target is adjacent but still locked.
	Blocked
)

// LockSpec wires a named lock onto a room or one of its search spots.
// Lock placement is configuration handed to the world at initialization
// rather than hardcoded room names.
type LockSpec struct {
	// Name is the lock's registry name, used for persistence.
	Name string
	// RoomID is the room the lock belongs to.
	RoomID string
	// SpotName, when non-empty, guards the named search spot instead of
	// gating entry to the room.
	SpotName string
	// RequiredItem is the item name that opens the lock.
	RequiredItem string
	// LockedMessage and UnlockMessage are the player-facing feedback lines.
	LockedMessage string
	UnlockMessage string
	// ConsumesItem removes one unit of the required item on unlock.
	ConsumesItem bool
}

// World owns the room graph, the current-room pointer, the lock registry,
// and the stalker distance. It is not safe for concurrent use; all mutation
// happens on the game's single update pass.
type World struct {
	rooms   map[string]*Room
	order   []string
	current *Room

	locks    map[string]*lock.Lock
	gearLock *lock.GearLock

	stalkerDistance float64
}

// New creates a World from rooms in layout order.
//
// Precondition: rooms must be non-empty; the first room is the spawn room.
// Postcondition: Returns a World with all rooms indexed by ID, or an error on
// duplicate room IDs.
func New(rooms []*Room) (*World, error) {
	if len(rooms) == 0 {
		return nil, fmt.Errorf("world must contain at least one room")
	}
	w := &World{
		rooms: make(map[string]*Room, len(rooms)),
		locks: make(map[string]*lock.Lock),
	}
	for _, r := range rooms {
		if _, exists := w.rooms[r.ID]; exists {
			return nil, fmt.Errorf("duplicate room ID: %q", r.ID)
		}
		w.rooms[r.ID] = r
		w.order = append(w.order, r.ID)
	}
	w.current = rooms[0]
	return w, nil
}

// ValidateNeighbors checks that every neighbor reference resolves to a known
// room. Call after New to catch dangling graph edges.
//
// Postcondition: Returns nil if all edges resolve, or an error naming the
// first dangling target.
func (w *World) ValidateNeighbors() error {
	for _, id := range w.order {
		for _, n := range w.rooms[id].Neighbors {
			if _, ok := w.rooms[n]; !ok {
				return fmt.Errorf("room %q: neighbor %q not found", id, n)
			}
		}
	}
	return nil
}

// CurrentRoom returns the room the player occupies.
func (w *World) CurrentRoom() *Room { return w.current }

// Room returns the room with the given ID.
//
// Postcondition: Returns (room, true) if found, or (nil, false) otherwise.
func (w *World) Room(id string) (*Room, bool) {
	r, ok := w.rooms[id]
	return r, ok
}

// Rooms returns all rooms in layout order.
func (w *World) Rooms() []*Room {
	out := make([]*Room, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.rooms[id])
	}
	return out
}

// MoveToRoom moves the current-room pointer to targetID.
//
// Postcondition: returns Moved and updates the pointer only when targetID is
// adjacent to the current room and not locked. On NoPath or Blocked the
// current room is unchanged.
func (w *World) MoveToRoom(targetID string) MoveResult {
	if !w.current.HasNeighbor(targetID) {
		return NoPath
	}
	target, ok := w.rooms[targetID]
	if !ok {
		return NoPath
	}
	if target.IsLocked() {
		return Blocked
	}
	w.current = target
	return Moved
}

// SetCurrentRoom repositions the player without adjacency checks, used when
// restoring a saved game.
//
// Postcondition: Returns an error when the room does not exist; the current
// room is unchanged in that case.
func (w *World) SetCurrentRoom(id string) error {
	r, ok := w.rooms[id]
	if !ok {
		return fmt.Errorf("room %q not found", id)
	}
	w.current = r
	return nil
}

// FindRoomByName returns the first room whose display name matches,
// case-insensitively.
//
// Postcondition: Returns (room, true) if found, or (nil, false) otherwise.
func (w *World) FindRoomByName(name string) (*Room, bool) {
	for _, id := range w.order {
		if strings.EqualFold(w.rooms[id].Name, strings.TrimSpace(name)) {
			return w.rooms[id], true
		}
	}
	return nil, false
}

// AttemptUnlock tries to open the access lock on an adjacent room.
//
// Postcondition: returns true when the room ends up unlocked (including rooms
// that were never locked); a successful unlock permanently clears the room's
// locked flag.
func (w *World) AttemptUnlock(targetID string, h lock.Holder, confirm lock.Confirm) bool {
	target, ok := w.rooms[targetID]
	if !ok || !w.current.HasNeighbor(targetID) {
		return false
	}
	if !target.IsLocked() {
		return true
	}
	l := target.AccessLock()
	if l == nil {
		return false
	}
	if l.AttemptUnlock(h, confirm) {
		target.Unlock()
		return true
	}
	return false
}

// InitializeLocks wires the given lock specs onto their rooms and spots.
// Specs naming absent rooms or spots are skipped rather than failing, and a
// lock name already registered is left untouched, so the call is idempotent.
func (w *World) InitializeLocks(specs []LockSpec) {
	for _, spec := range specs {
		if _, exists := w.locks[spec.Name]; exists {
			continue
		}
		room, ok := w.rooms[spec.RoomID]
		if !ok {
			continue
		}
		l := lock.New(spec.Name, spec.RequiredItem, spec.LockedMessage, spec.UnlockMessage, spec.ConsumesItem)
		if spec.SpotName != "" {
			if _, ok := room.FindSpot(spec.SpotName); !ok {
				continue
			}
			room.SetSpotLock(spec.SpotName, l)
		} else {
			room.SetAccessLock(l)
		}
		w.locks[spec.Name] = l
	}
}

// InitializeGearLock binds the gear lock to its entry and target rooms.
// Skipped when either room is absent; calling again replaces nothing.
func (w *World) InitializeGearLock(entryRoomID, targetRoomID string) {
	if w.gearLock != nil {
		return
	}
	if _, ok := w.rooms[entryRoomID]; !ok {
		return
	}
	target, ok := w.rooms[targetRoomID]
	if !ok {
		return
	}
	g := lock.NewGearLock(entryRoomID, targetRoomID)
	target.locked = true
	g.OnUnlock(target.Unlock)
	w.gearLock = g
}

// GearLock returns the world's gear lock, or nil when none is wired.
func (w *World) GearLock() *lock.GearLock { return w.gearLock }

// InsertGearPiece delegates to the gear lock, restricted to the lock's entry
// room.
//
// Postcondition: returns false with no state change when no gear lock is
// wired, the player is elsewhere, or the insert itself fails.
func (w *World) InsertGearPiece(gearID string, h lock.Holder) bool {
	if w.gearLock == nil || w.current.ID != w.gearLock.EntryRoomID() {
		return false
	}
	return w.gearLock.InsertGear(gearID, h)
}

// AllLockStates returns a snapshot of every registered lock's name to its
// current locked flag, used for persistence.
func (w *World) AllLockStates() map[string]bool {
	out := make(map[string]bool, len(w.locks))
	for name, l := range w.locks {
		out[name] = l.IsLocked()
	}
	return out
}

// RestoreLockStates reapplies persisted lock flags without running unlock
// side effects. The flags move in either direction so an older save
// re-engages locks opened after it was taken. Unknown lock names are ignored.
func (w *World) RestoreLockStates(states map[string]bool) {
	for name, locked := range states {
		l, ok := w.locks[name]
		if !ok {
			continue
		}
		l.RestoreState(locked)
		for _, room := range w.rooms {
			if room.accessLock == l {
				w.recomputeRoomLock(room)
			}
		}
	}
}

// RestoreGearLock replaces the gear lock's inserted set and reapplies the
// target room's locked flag, without firing the unlock or spawn signals.
func (w *World) RestoreGearLock(gears []string) {
	if w.gearLock == nil {
		return
	}
	w.gearLock.RestoreInserted(gears)
	if target, ok := w.rooms[w.gearLock.TargetRoomID()]; ok {
		w.recomputeRoomLock(target)
	}
}

// recomputeRoomLock rederives a room's locked flag from its gates after a
// restore. A live room opens when any one gate fires, so the restored room
// stays locked only while every gate on it is still closed. Rooms with no
// gates are left alone.
func (w *World) recomputeRoomLock(r *Room) {
	gated := false
	locked := true
	if r.accessLock != nil {
		gated = true
		locked = locked && r.accessLock.IsLocked()
	}
	if w.gearLock != nil && w.gearLock.TargetRoomID() == r.ID {
		gated = true
		locked = locked && !w.gearLock.IsUnlocked()
	}
	if gated {
		r.locked = locked
	}
}

// StalkerDistance returns the tracked distance to the pursuing stalker.
func (w *World) StalkerDistance() float64 { return w.stalkerDistance }

// SetStalkerDistance updates the tracked stalker distance.
func (w *World) SetStalkerDistance(d float64) { w.stalkerDistance = d }
