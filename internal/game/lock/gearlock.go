package lock

import (
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// RequiredGearCount is how many distinct gear pieces the gear lock needs.
const RequiredGearCount = 4

// GearLock is a composite gate: distinct named gear pieces are inserted one
// at a time, and the bound room unlocks when the last piece goes in.
type GearLock struct {
	entryRoomID  string
	targetRoomID string
	required     int
	inserted     mapset.Set[string]

	// onUnlock fires exactly once when the final piece is inserted.
	onUnlock func()
	// onSpawn signals the combat collaborator with the enemy wave size.
	onSpawn func(count int)
	fired   bool
}

// NewGearLock creates a GearLock bound to its entry and target rooms.
//
// Precondition: entryRoomID and targetRoomID must be non-empty.
func NewGearLock(entryRoomID, targetRoomID string) *GearLock {
	return &GearLock{
		entryRoomID:  entryRoomID,
		targetRoomID: targetRoomID,
		required:     RequiredGearCount,
		inserted:     mapset.New[string](),
	}
}

// EntryRoomID returns the room from which gears may be inserted.
func (g *GearLock) EntryRoomID() string { return g.entryRoomID }

// TargetRoomID returns the room this lock opens.
func (g *GearLock) TargetRoomID() string { return g.targetRoomID }

// OnUnlock registers the callback run once when the lock opens.
func (g *GearLock) OnUnlock(fn func()) { g.onUnlock = fn }

// OnSpawn registers the enemy-wave signal fired alongside the unlock.
func (g *GearLock) OnSpawn(fn func(count int)) { g.onSpawn = fn }

// IsUnlocked reports whether every required gear has been inserted.
// Derived purely from the inserted count; the state is terminal.
func (g *GearLock) IsUnlocked() bool {
	return g.inserted.Size() >= g.required
}

// InsertedCount returns how many distinct gears are in place.
func (g *GearLock) InsertedCount() int { return g.inserted.Size() }

// InsertedGears returns the inserted gear identifiers, sorted for stable
// persistence output.
func (g *GearLock) InsertedGears() []string {
	out := make([]string, 0, g.inserted.Size())
	g.inserted.Each(func(id string) { out = append(out, id) })
	sort.Strings(out)
	return out
}

// InsertGear attempts to insert the named gear piece from the holder's
// inventory.
//
// Postcondition: returns false with no state change when the holder lacks a
// matching item or the gear was already inserted. On success the item is
// removed from the holder and the identifier recorded upper-cased; inserting
// the final piece fires the unlock and spawn callbacks exactly once.
func (g *GearLock) InsertGear(gearID string, h Holder) bool {
	if !h.Has(gearID) {
		return false
	}
	key := strings.ToUpper(strings.TrimSpace(gearID))
	if g.inserted.Has(key) {
		return false
	}
	if _, ok := h.RemoveByName(gearID); !ok {
		return false
	}
	g.inserted.Put(key)

	if g.IsUnlocked() && !g.fired {
		g.fired = true
		if g.onUnlock != nil {
			g.onUnlock()
		}
		if g.onSpawn != nil {
			g.onSpawn(g.required)
		}
	}
	return true
}

// RestoreInserted replaces the inserted set with persisted gear identifiers
// without firing the unlock side effects; the caller restores the target
// room's locked flag separately. Loading an older save can shrink the set.
func (g *GearLock) RestoreInserted(gears []string) {
	g.inserted = mapset.New[string]()
	for _, id := range gears {
		g.inserted.Put(strings.ToUpper(strings.TrimSpace(id)))
	}
	g.fired = g.IsUnlocked()
}
