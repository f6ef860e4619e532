package lock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cmoritz/blackwood/internal/game/inventory"
	"github.com/cmoritz/blackwood/internal/game/item"
)

func holderWith(names ...string) *inventory.Inventory {
	inv := inventory.New(10)
	for _, name := range names {
		inv.Add(item.New(&item.Def{ID: name, Name: name, Kind: item.KindKey}))
	}
	return inv
}

func TestAttemptUnlockWithoutItem(t *testing.T) {
	l := New("cellar", "Brass Key", "The cellar door is locked.", "The key turns.", false)
	h := holderWith()

	assert.False(t, l.AttemptUnlock(h, nil))
	assert.True(t, l.IsLocked(), "a failed attempt must not mutate the lock")
}

func TestAttemptUnlockSucceeds(t *testing.T) {
	l := New("cellar", "Brass Key", "locked", "open", false)
	h := holderWith("Brass Key")

	assert.True(t, l.AttemptUnlock(h, nil))
	assert.False(t, l.IsLocked())
	assert.True(t, h.Has("Brass Key"), "non-consuming lock keeps the key")
}

func TestAttemptUnlockConsumesExactlyOneUnit(t *testing.T) {
	l := New("cellar", "Brass Key", "locked", "open", true)
	h := holderWith("Brass Key", "Brass Key")

	require.True(t, l.AttemptUnlock(h, nil))
	assert.Equal(t, 1, h.Size())

	// Re-entrant: already unlocked short-circuits with no further consumption.
	require.True(t, l.AttemptUnlock(h, nil))
	assert.Equal(t, 1, h.Size())
}

func TestAttemptUnlockDeclined(t *testing.T) {
	l := New("cellar", "Brass Key", "locked", "open", true)
	h := holderWith("Brass Key")

	decline := func(string) bool { return false }
	assert.False(t, l.AttemptUnlock(h, decline))
	assert.True(t, l.IsLocked())
	assert.Equal(t, 1, h.Size(), "declining must not consume the key")
}

func TestRestoreStateBothDirections(t *testing.T) {
	l := New("cellar", "Brass Key", "locked", "open", false)
	l.RestoreState(false)
	assert.False(t, l.IsLocked())
	l.RestoreState(true)
	assert.True(t, l.IsLocked(), "an older save re-engages the lock")
}

func TestPropertyUnlockWithoutItemNeverMutates(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		required := rapid.StringMatching(`[A-Z][a-z]{2,8} Key`).Draw(t, "required")
		consumes := rapid.Bool().Draw(t, "consumes")
		l := New("l", required, "locked", "open", consumes)
		h := holderWith()
		attempts := rapid.IntRange(1, 5).Draw(t, "attempts")
		for i := 0; i < attempts; i++ {
			assert.False(t, l.AttemptUnlock(h, nil))
			assert.True(t, l.IsLocked())
		}
	})
}

func gearHolder() *inventory.Inventory {
	inv := inventory.New(10)
	for _, name := range []string{"GEAR_PIECE_1", "GEAR_PIECE_2", "GEAR_PIECE_3", "GEAR_PIECE_4"} {
		inv.Add(item.New(&item.Def{ID: name, Name: name, Kind: item.KindGear}))
	}
	return inv
}

func TestGearLockUnlocksAtThreshold(t *testing.T) {
	g := NewGearLock("generator_room", "vault")
	unlocked := false
	spawned := 0
	g.OnUnlock(func() { unlocked = true })
	g.OnSpawn(func(count int) { spawned = count })

	h := gearHolder()
	for i, gear := range []string{"GEAR_PIECE_1", "GEAR_PIECE_2", "GEAR_PIECE_3"} {
		require.True(t, g.InsertGear(gear, h))
		assert.False(t, g.IsUnlocked(), "not unlocked after %d pieces", i+1)
	}

	require.True(t, g.InsertGear("GEAR_PIECE_4", h))
	assert.True(t, g.IsUnlocked())
	assert.True(t, unlocked)
	assert.Equal(t, RequiredGearCount, spawned)
}

func TestGearLockCaseInsensitiveDedup(t *testing.T) {
	g := NewGearLock("entry", "vault")
	h := holderWith("Gear_Piece_1", "GEAR_PIECE_1")

	require.True(t, g.InsertGear("gear_piece_1", h))
	assert.Equal(t, 1, g.InsertedCount())

	assert.False(t, g.InsertGear("GEAR_PIECE_1", h), "duplicate insert must be rejected")
	assert.Equal(t, 1, g.InsertedCount())
	assert.Equal(t, 1, h.Size(), "rejected insert must not consume the item")
}

func TestGearLockRequiresHeldItem(t *testing.T) {
	g := NewGearLock("entry", "vault")
	h := holderWith()
	assert.False(t, g.InsertGear("GEAR_PIECE_1", h))
	assert.Equal(t, 0, g.InsertedCount())
}

func TestGearLockRestoreDoesNotFireCallbacks(t *testing.T) {
	g := NewGearLock("entry", "vault")
	fired := false
	g.OnUnlock(func() { fired = true })
	g.OnSpawn(func(int) { fired = true })

	g.RestoreInserted([]string{"GEAR_PIECE_1", "GEAR_PIECE_2", "GEAR_PIECE_3", "GEAR_PIECE_4"})
	assert.True(t, g.IsUnlocked())
	assert.False(t, fired, "restore must not re-run unlock side effects")

	// And a later insert attempt cannot re-fire them either.
	h := holderWith("GEAR_PIECE_1")
	assert.False(t, g.InsertGear("GEAR_PIECE_1", h))
}

func TestPropertyDuplicateInsertAddsAtMostOne(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := NewGearLock("entry", "vault")
		gear := rapid.StringMatching(`GEAR_PIECE_[1-4]`).Draw(t, "gear")
		h := holderWith(gear, gear)
		before := g.InsertedCount()
		g.InsertGear(gear, h)
		g.InsertGear(gear, h)
		assert.LessOrEqual(t, g.InsertedCount()-before, 1)
	})
}
