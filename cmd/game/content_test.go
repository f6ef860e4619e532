package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmoritz/blackwood/internal/game/item"
)

func writeFixture(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func fixtureRegistry(t *testing.T) *item.Registry {
	t.Helper()
	reg, err := item.NewRegistry([]*item.Def{
		{ID: "item_brass_key", Name: "Brass Key", Kind: item.KindKey},
		{ID: "item_gear_a", Name: "Gear A", Kind: item.KindGear},
	})
	require.NoError(t, err)
	return reg
}

func TestBuildWorld(t *testing.T) {
	dir := t.TempDir()
	rooms := writeFixture(t, dir, "rooms.txt", "0 Enter_Hall 1\n1 Library 0\n")
	spots := writeFixture(t, dir, "spots.txt", "0 Desk item_brass_key\n1 Shelf Empty\n")

	w, err := buildWorld(rooms, spots, fixtureRegistry(t))
	require.NoError(t, err)

	assert.Len(t, w.Rooms(), 2)
	assert.Equal(t, "0", w.CurrentRoom().ID)

	hall, ok := w.Room("0")
	require.True(t, ok)
	_, ok = hall.FindSpot("Desk")
	assert.True(t, ok)
}

func TestBuildWorldRejectsDanglingNeighbor(t *testing.T) {
	dir := t.TempDir()
	rooms := writeFixture(t, dir, "rooms.txt", "0 Enter_Hall 9\n")
	spots := writeFixture(t, dir, "spots.txt", "")

	_, err := buildWorld(rooms, spots, fixtureRegistry(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neighbor")
}

func TestApplyContentWiring(t *testing.T) {
	dir := t.TempDir()
	rooms := writeFixture(t, dir, "rooms.txt", "0 Enter_Hall 1 2\n1 Library 0\n2 Cellar 0\n")
	spots := writeFixture(t, dir, "spots.txt", "0 Desk item_brass_key\n")
	content := writeFixture(t, dir, "content.yaml", `
locks:
  - name: cellar-door
    room_id: "2"
    required_item: Brass Key
gear_lock:
  entry_room_id: "1"
  target_room_id: "2"
enemies:
  - room_id: "1"
    name: Shambler
    damage: 10
`)

	w, err := buildWorld(rooms, spots, fixtureRegistry(t))
	require.NoError(t, err)
	cc, err := loadContent(content)
	require.NoError(t, err)
	require.NoError(t, cc.apply(w))

	cellar, ok := w.Room("2")
	require.True(t, ok)
	assert.True(t, cellar.IsLocked())

	require.NotNil(t, w.GearLock())
	assert.Equal(t, "1", w.GearLock().EntryRoomID())

	library, ok := w.Room("1")
	require.True(t, ok)
	enemies := library.Enemies()
	require.Len(t, enemies, 1)
	assert.Equal(t, "Shambler", enemies[0].Name)
	assert.Equal(t, 30, enemies[0].Health(), "health falls back to the default when unset")
	assert.Equal(t, 10, enemies[0].Damage())
}

func TestApplyContentRejectsUnknownEnemyRoom(t *testing.T) {
	dir := t.TempDir()
	rooms := writeFixture(t, dir, "rooms.txt", "0 Enter_Hall\n")
	spots := writeFixture(t, dir, "spots.txt", "")

	w, err := buildWorld(rooms, spots, fixtureRegistry(t))
	require.NoError(t, err)

	cc := &contentConfig{Enemies: []enemyPlacement{{RoomID: "9", Name: "Shambler"}}}
	err = cc.apply(w)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown room")
}

func TestLoadContentMissingFileIsEmpty(t *testing.T) {
	cc, err := loadContent(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cc.Locks)
	assert.Nil(t, cc.GearLock)
	assert.Empty(t, cc.Enemies)
}
