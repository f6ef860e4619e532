package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cmoritz/blackwood/internal/game/combat"
	"github.com/cmoritz/blackwood/internal/game/inventory"
	"github.com/cmoritz/blackwood/internal/game/item"
	"github.com/cmoritz/blackwood/internal/game/lock"
	"github.com/cmoritz/blackwood/internal/game/player"
	"github.com/cmoritz/blackwood/internal/game/save"
	"github.com/cmoritz/blackwood/internal/game/world"
)

func testRegistry(t *testing.T) *item.Registry {
	t.Helper()
	reg, err := item.NewRegistry([]*item.Def{
		{ID: "brass-key", Name: "Brass Key", Kind: item.KindKey},
		{ID: "gear-a", Name: "Gear A", Kind: item.KindGear},
		{ID: "gear-b", Name: "Gear B", Kind: item.KindGear},
		{ID: "gear-c", Name: "Gear C", Kind: item.KindGear},
		{ID: "gear-d", Name: "Gear D", Kind: item.KindGear},
		{ID: "bandage", Name: "Bandage", Kind: item.KindConsumable, HealAmount: 25, ConsumedOnUse: true},
		{ID: "pistol", Name: "Pistol", Kind: item.KindWeapon, Damage: 15},
		{ID: "flashlight", Name: "Flashlight", Kind: item.KindLight, MaxBattery: 100},
		{ID: "toolbox", Name: "Toolbox", Kind: item.KindTool},
		{ID: "battery", Name: "Battery", Kind: item.KindMisc},
	})
	require.NoError(t, err)
	return reg
}

func mustItem(t *testing.T, reg *item.Registry, id string) *item.Item {
	t.Helper()
	def, ok := reg.Def(id)
	require.True(t, ok, "definition %q", id)
	return item.New(def)
}

// testWorld wires the standard fixture: hall with a desk, a locked cellar, a
// library holding the gear mechanism guarding the cellar.
func testWorld(t *testing.T, reg *item.Registry) *world.World {
	t.Helper()
	hall := world.NewRoom("0", "Enter_Hall", []string{"1", "2"})
	library := world.NewRoom("1", "Library", []string{"0"})
	cellar := world.NewRoom("2", "Cellar", []string{"0"})

	hall.AddSearchSpot(world.NewSearchSpot("Desk", mustItem(t, reg, "brass-key")))
	library.AddSearchSpot(world.NewSearchSpot("Shelf", mustItem(t, reg, "gear-a")))

	w, err := world.New([]*world.Room{hall, library, cellar})
	require.NoError(t, err)
	require.NoError(t, w.ValidateNeighbors())
	return w
}

func newTestSession(t *testing.T, confirm lock.Confirm) (*Session, *item.Registry) {
	t.Helper()
	reg := testRegistry(t)
	w := testWorld(t, reg)
	p := player.New("Cass", 100, 100, inventory.New(8))
	return New(zaptest.NewLogger(t), w, p, reg, nil, confirm), reg
}

func TestLookDescribesRoom(t *testing.T) {
	sess, _ := newTestSession(t, nil)
	defer sess.Close()

	out := sess.Look()
	assert.Contains(t, out, "Enter Hall")
	assert.Contains(t, out, "Library")
	assert.Contains(t, out, "Desk")
}

func TestGoAdjacencyAndBack(t *testing.T) {
	sess, _ := newTestSession(t, nil)
	defer sess.Close()

	out := sess.Go("Library")
	assert.Contains(t, out, "Library")
	assert.Equal(t, "1", sess.World().CurrentRoom().ID)
	assert.Equal(t, "1", sess.Player().RoomID())

	assert.Equal(t, "You can't get there from here.", sess.Go("Cellar"),
		"cellar is not adjacent to the library")

	sess.Go("Enter Hall")
	assert.Equal(t, "0", sess.World().CurrentRoom().ID)
}

func TestLockedDoorUnlocksWithKey(t *testing.T) {
	prompts := 0
	sess, reg := newTestSession(t, func(string) bool { prompts++; return true })
	defer sess.Close()
	sess.World().InitializeLocks([]world.LockSpec{
		{Name: "cellar-door", RoomID: "2", RequiredItem: "Brass Key",
			LockedMessage: "The cellar door is bolted shut.", ConsumesItem: true},
	})

	assert.Equal(t, "The cellar door is bolted shut.", sess.Go("Cellar"))
	assert.Equal(t, "0", sess.World().CurrentRoom().ID)

	require.True(t, sess.Player().Inventory().Add(mustItem(t, reg, "brass-key")))
	out := sess.Go("Cellar")
	assert.Contains(t, out, "Cellar")
	assert.Equal(t, "2", sess.World().CurrentRoom().ID)
	assert.Equal(t, 1, prompts)
	assert.False(t, sess.Player().Inventory().Has("Brass Key"), "key is consumed")
}

func TestSearchYieldsOnceAndRespectsSpotLock(t *testing.T) {
	sess, _ := newTestSession(t, func(string) bool { return true })
	defer sess.Close()

	out := sess.Search("desk")
	assert.Contains(t, out, "Brass Key")
	assert.True(t, sess.Player().Inventory().Has("Brass Key"))

	assert.Contains(t, sess.Search("desk"), "already")
	assert.Contains(t, sess.Search("mirror"), "no mirror")
}

func TestSearchEmptySpot(t *testing.T) {
	sess, _ := newTestSession(t, nil)
	defer sess.Close()
	sess.World().CurrentRoom().AddSearchSpot(world.NewSearchSpot("Coatrack", nil))

	assert.Equal(t, "The Coatrack is empty.", sess.Search("Coatrack"))
	assert.Contains(t, sess.Search("Coatrack"), "already")
}

func TestSearchLockedSpotWithoutKey(t *testing.T) {
	sess, _ := newTestSession(t, nil)
	defer sess.Close()
	sess.World().InitializeLocks([]world.LockSpec{
		{Name: "desk-drawer", RoomID: "0", SpotName: "Desk", RequiredItem: "Small Key"},
	})

	assert.Contains(t, sess.Search("Desk"), "won't open")
	assert.False(t, sess.Player().Inventory().Has("Brass Key"))
}

func TestGearLockEscape(t *testing.T) {
	sess, reg := newTestSession(t, nil)
	defer sess.Close()
	w := sess.World()
	w.InitializeGearLock("1", "2")

	inv := sess.Player().Inventory()
	for _, id := range []string{"gear-a", "gear-b", "gear-c", "gear-d"} {
		require.True(t, inv.Add(mustItem(t, reg, id)))
	}

	assert.Contains(t, sess.InsertGear("Gear A"), "no mechanism",
		"mechanism lives in the library, not the hall")

	sess.Go("Library")
	assert.Contains(t, sess.InsertGear("Gear A"), "1 of 4")
	assert.Contains(t, sess.InsertGear("Gear B"), "2 of 4")
	assert.Contains(t, sess.InsertGear("Gear C"), "3 of 4")
	assert.Contains(t, sess.InsertGear("Gear D"), "grinds to life")
	assert.Len(t, sess.World().CurrentRoom().Enemies(), 4, "the unlock wave spawns here")

	sess.Go("Enter Hall")
	out := sess.Go("Cellar")
	assert.Contains(t, out, "You made it")
	assert.True(t, sess.Over())
	assert.True(t, sess.Won())
}

func TestAttackRetaliationAndDeath(t *testing.T) {
	sess, reg := newTestSession(t, nil)
	defer sess.Close()
	sess.World().CurrentRoom().AddEnemy(combat.NewEnemy("Zombie", 45, 40))

	require.True(t, sess.Player().Inventory().Add(mustItem(t, reg, "pistol")))
	sess.Equip("Pistol")
	assert.Equal(t, 15, sess.Player().AttackDamage())

	out := sess.Attack("Zombie")
	assert.Contains(t, out, "You hit the Zombie for 15")
	assert.Contains(t, out, "strikes back for 40")
	assert.Equal(t, 60, sess.Player().Health())
	assert.False(t, sess.Over())

	// 45 health takes three hits at 15 damage.

	sess.Attack("Zombie")
	out = sess.Attack("Zombie")
	assert.Contains(t, out, "drops dead")
	assert.Empty(t, sess.World().CurrentRoom().Enemies())
}

func TestAttackDeathEndsRun(t *testing.T) {
	sess, _ := newTestSession(t, nil)
	defer sess.Close()
	sess.World().CurrentRoom().AddEnemy(combat.NewEnemy("Zombie", 500, 200))

	out := sess.Attack("")
	assert.Contains(t, out, "Everything goes dark")
	assert.True(t, sess.Over())
	assert.False(t, sess.Won())
	assert.False(t, sess.Player().IsAlive())
}

func TestCrawlNeedsLight(t *testing.T) {
	sess, _ := newTestSession(t, nil)
	defer sess.Close()

	assert.Contains(t, sess.Crawl("east"), "need a light")
	assert.False(t, sess.InDark())
}

func TestCrawlRepairWave(t *testing.T) {
	sess, reg := newTestSession(t, func(string) bool { return true })
	defer sess.Close()
	inv := sess.Player().Inventory()
	light := mustItem(t, reg, "flashlight")
	require.True(t, inv.Add(light))
	require.True(t, inv.Add(mustItem(t, reg, "toolbox")))

	// A straight sweep to (4,4) that avoids the default hazards.
	for _, dir := range []string{"east", "east", "east", "east"} {
		assert.Contains(t, sess.Crawl(dir), "inch forward")
	}
	assert.True(t, light.InSequence())
	for _, dir := range []string{"south", "south", "south"} {
		assert.Contains(t, sess.Crawl(dir), "inch forward")
	}
	assert.Contains(t, sess.Crawl("south"), "generator")

	out := sess.RepairGenerator()
	assert.Contains(t, out, "lights blaze on")
	assert.False(t, sess.InDark())
	assert.False(t, light.InSequence(), "flashlight hold released after the sequence")
	assert.Len(t, sess.World().CurrentRoom().Enemies(), 3)
}

func TestCrawlHazardDeathReleasesLight(t *testing.T) {
	sess, reg := newTestSession(t, nil)
	defer sess.Close()
	light := mustItem(t, reg, "flashlight")
	require.True(t, sess.Player().Inventory().Add(light))

	// The default hazard grid has a pit at (2,1).
	sess.Crawl("east")
	sess.Crawl("east")
	out := sess.Crawl("south")
	assert.Contains(t, out, "Everything goes dark")
	assert.True(t, sess.Over())
	assert.False(t, light.InSequence())
	assert.False(t, sess.InDark())
}

func TestRetreatLeavesDarkWithoutPenalty(t *testing.T) {
	sess, reg := newTestSession(t, nil)
	defer sess.Close()
	light := mustItem(t, reg, "flashlight")
	require.True(t, sess.Player().Inventory().Add(light))

	sess.Crawl("east")
	require.True(t, sess.InDark())
	assert.Contains(t, sess.Retreat(), "back out")
	assert.False(t, sess.InDark())
	assert.False(t, light.InSequence())
	assert.Equal(t, 100, sess.Player().Health())
}

func TestCloseReleasesActiveSequence(t *testing.T) {
	sess, reg := newTestSession(t, nil)
	light := mustItem(t, reg, "flashlight")
	require.True(t, sess.Player().Inventory().Add(light))
	sess.Crawl("east")
	require.True(t, light.InSequence())

	sess.Close()
	assert.False(t, light.InSequence())
}

func TestSaveAndLoadThroughSession(t *testing.T) {
	reg := testRegistry(t)
	w := testWorld(t, reg)
	p := player.New("Cass", 100, 100, inventory.New(8))
	saves, err := save.NewManager(t.TempDir(), 3, zaptest.NewLogger(t))
	require.NoError(t, err)
	sess := New(zaptest.NewLogger(t), w, p, reg, saves, nil)
	defer sess.Close()

	sess.Search("Desk")
	sess.Player().TakeDamage(20)
	assert.Contains(t, sess.SaveGame(), "Game saved")

	sess.Player().TakeDamage(50)
	out := sess.LoadGame()
	assert.Contains(t, out, "settles back")
	assert.Equal(t, 80, sess.Player().Health())
	assert.True(t, sess.Player().Inventory().Has("Brass Key"))
}

func TestLoadOlderSaveRewindsSearches(t *testing.T) {
	reg := testRegistry(t)
	w := testWorld(t, reg)
	p := player.New("Cass", 100, 100, inventory.New(8))
	saves, err := save.NewManager(t.TempDir(), 3, zaptest.NewLogger(t))
	require.NoError(t, err)
	sess := New(zaptest.NewLogger(t), w, p, reg, saves, nil)
	defer sess.Close()

	require.Contains(t, sess.SaveGame(), "Game saved")
	assert.Contains(t, sess.Search("Desk"), "Brass Key")

	require.Contains(t, sess.LoadGame(), "settles back")
	assert.False(t, sess.Player().Inventory().Has("Brass Key"))
	assert.Contains(t, sess.Search("Desk"), "Brass Key",
		"the rewound desk yields its key again")
}

func TestSavingDisabledWithoutManager(t *testing.T) {
	sess, _ := newTestSession(t, nil)
	defer sess.Close()

	assert.Equal(t, "Saving is disabled.", sess.SaveGame())
	assert.Equal(t, "Saving is disabled.", sess.LoadGame())
}

func TestStatusAndInventoryText(t *testing.T) {
	sess, reg := newTestSession(t, nil)
	defer sess.Close()

	assert.Equal(t, "Your pack is empty.", sess.InventoryText())
	require.True(t, sess.Player().Inventory().Add(mustItem(t, reg, "pistol")))
	sess.Equip("Pistol")
	assert.Contains(t, sess.InventoryText(), "Pistol (equipped)")
	assert.Contains(t, sess.Status(), "Armed with Pistol")
}
