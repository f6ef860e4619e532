package stealth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cmoritz/blackwood/internal/game/inventory"
	"github.com/cmoritz/blackwood/internal/game/item"
	"github.com/cmoritz/blackwood/internal/game/player"
)

func testPlayer(t *testing.T) *player.Player {
	t.Helper()
	return player.New("Cass", 100, 100, inventory.New(10))
}

func flashlight(t *testing.T) *item.Item {
	t.Helper()
	def := &item.Def{ID: "flashlight", Name: "Flashlight", Kind: item.KindLight, MaxBattery: 100}
	require.NoError(t, def.Validate())
	return item.New(def)
}

func batteryItem(t *testing.T) *item.Item {
	t.Helper()
	def := &item.Def{ID: "battery", Name: "Battery", Kind: item.KindMisc}
	require.NoError(t, def.Validate())
	return item.New(def)
}

func toolbox(t *testing.T) *item.Item {
	t.Helper()
	def := &item.Def{ID: "toolbox", Name: "Toolbox", Kind: item.KindTool}
	require.NoError(t, def.Validate())
	return item.New(def)
}

func TestNewHoldsFlashlight(t *testing.T) {
	light := flashlight(t)
	seq := New(testPlayer(t), light, Options{})
	defer seq.Close()

	assert.True(t, light.InSequence())
	assert.Equal(t, Navigating, seq.State())
	assert.Equal(t, FullBattery, seq.Battery())
	assert.Equal(t, Cell{}, seq.Position())
	assert.Equal(t, Cell{X: 4, Y: 4}, seq.Target())
}

func TestCloseReleasesFlashlightOnEveryPath(t *testing.T) {
	run := func(t *testing.T, drive func(seq *Sequence)) {
		t.Helper()
		light := flashlight(t)
		func() {
			seq := New(testPlayer(t), light, Options{})
			defer seq.Close()
			drive(seq)
		}()
		assert.False(t, light.InSequence())
	}

	t.Run("quit", func(t *testing.T) {
		run(t, func(seq *Sequence) { seq.QuitEarly() })
	})
	t.Run("hazard death", func(t *testing.T) {
		run(t, func(seq *Sequence) {
			seq.Move(0, 1)
			seq.Move(0, 1)
			assert.Equal(t, MoveHazard, seq.Move(1, 0))
		})
	})
	t.Run("abandoned mid-run", func(t *testing.T) {
		run(t, func(seq *Sequence) { seq.Move(1, 0) })
	})
}

func TestCloseIsIdempotent(t *testing.T) {
	light := flashlight(t)
	seq := New(testPlayer(t), light, Options{})
	seq.Close()
	seq.Close()
	assert.False(t, light.InSequence())
}

func TestMoveOutOfBoundsChangesNothing(t *testing.T) {
	seq := New(testPlayer(t), nil, Options{})
	defer seq.Close()

	assert.Equal(t, MoveOutOfBounds, seq.Move(-1, 0))
	assert.Equal(t, MoveOutOfBounds, seq.Move(0, -1))
	assert.Equal(t, Cell{}, seq.Position())
	assert.Equal(t, FullBattery, seq.Battery())
	assert.Equal(t, Navigating, seq.State())
}

func TestMoveDrainsBattery(t *testing.T) {
	light := flashlight(t)
	seq := New(testPlayer(t), light, Options{})
	defer seq.Close()

	require.Equal(t, MoveOK, seq.Move(1, 0))
	assert.Equal(t, FullBattery-DrainPerMove, seq.Battery())
	assert.Equal(t, 100-DrainPerMove, light.Battery)
}

func TestHazardKillsPlayer(t *testing.T) {
	p := testPlayer(t)
	seq := New(p, nil, Options{Hazards: []Cell{{X: 1, Y: 0}}})
	defer seq.Close()

	assert.Equal(t, MoveHazard, seq.Move(1, 0))
	assert.Equal(t, Failed, seq.State())
	assert.True(t, seq.Done())
	assert.Equal(t, 0, p.Health())
	assert.Equal(t, MoveRejected, seq.Move(0, 1))
}

func TestBatteryDeathWithoutSpare(t *testing.T) {
	p := testPlayer(t)
	seq := New(p, nil, Options{Hazards: []Cell{}, Target: Cell{X: 4, Y: 4}})
	defer seq.Close()

	// Pace the perimeter until the battery is spent.
	moves := [][2]int{{1, 0}, {-1, 0}}
	for i := 0; seq.Battery() > 0; i++ {
		require.Equal(t, MoveOK, seq.Move(moves[i%2][0], moves[i%2][1]))
	}

	assert.Equal(t, MoveBatteryDead, seq.Move(1, 0))
	assert.Equal(t, Failed, seq.State())
	assert.Equal(t, 0, p.Health())
}

func TestBatteryAutoConsumesSpare(t *testing.T) {
	p := testPlayer(t)
	require.True(t, p.Inventory().Add(batteryItem(t)))
	light := flashlight(t)
	seq := New(p, light, Options{Hazards: []Cell{}})
	defer seq.Close()

	moves := [][2]int{{1, 0}, {-1, 0}}
	for i := 0; seq.Battery() > 0; i++ {
		require.Equal(t, MoveOK, seq.Move(moves[i%2][0], moves[i%2][1]))
	}

	require.Equal(t, MoveOK, seq.Move(1, 0))
	assert.Equal(t, FullBattery-DrainPerMove, seq.Battery())
	assert.Equal(t, 100-DrainPerMove, light.Battery)
	assert.False(t, p.Inventory().Has("Battery"))
	assert.Equal(t, 100, p.Health())
}

func TestReachTargetOffersRepair(t *testing.T) {
	seq := New(testPlayer(t), nil, Options{Hazards: []Cell{}, Target: Cell{X: 1, Y: 1}})
	defer seq.Close()

	require.Equal(t, MoveOK, seq.Move(1, 0))
	assert.Equal(t, MoveReachedTarget, seq.Move(0, 1))
	assert.Equal(t, Repairing, seq.State())
	assert.Equal(t, MoveRejected, seq.Move(1, 0))
}

func TestRepairRequiresTool(t *testing.T) {
	p := testPlayer(t)
	seq := New(p, nil, Options{Hazards: []Cell{}, Target: Cell{X: 1, Y: 0}})
	defer seq.Close()
	require.Equal(t, MoveReachedTarget, seq.Move(1, 0))

	assert.Equal(t, RepairNoTool, seq.Repair(true))
	assert.Equal(t, Repairing, seq.State())

	require.True(t, p.Inventory().Add(toolbox(t)))
	assert.Equal(t, Repaired, seq.Repair(true))
	assert.Equal(t, LightsOn, seq.State())
	require.NotNil(t, seq.Encounter())
	assert.Equal(t, 3, seq.Encounter().Remaining())
}

func TestRepairDeclinedReturnsToNavigation(t *testing.T) {
	seq := New(testPlayer(t), nil, Options{Hazards: []Cell{}, Target: Cell{X: 1, Y: 0}})
	defer seq.Close()
	require.Equal(t, MoveReachedTarget, seq.Move(1, 0))

	assert.Equal(t, RepairDeclined, seq.Repair(false))
	assert.Equal(t, Navigating, seq.State())

	// Stepping off and back on re-offers the repair.
	require.Equal(t, MoveOK, seq.Move(-1, 0))
	assert.Equal(t, MoveReachedTarget, seq.Move(1, 0))
}

func TestRepairRejectedWhileNavigating(t *testing.T) {
	seq := New(testPlayer(t), nil, Options{})
	defer seq.Close()
	assert.Equal(t, RepairRejected, seq.Repair(true))
}

func TestQuitEarlyHasNoPenalty(t *testing.T) {
	p := testPlayer(t)
	seq := New(p, nil, Options{})
	defer seq.Close()
	require.Equal(t, MoveOK, seq.Move(1, 0))

	seq.QuitEarly()
	assert.Equal(t, Quit, seq.State())
	assert.True(t, seq.Done())
	assert.Equal(t, 100, p.Health())
	assert.Equal(t, MoveRejected, seq.Move(1, 0))
}

func TestPositionStaysOnGrid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := player.New("Cass", 100, 100, inventory.New(10))
		seq := New(p, nil, Options{Hazards: []Cell{}, Target: Cell{X: 4, Y: 4}})
		defer seq.Close()

		steps := rapid.SliceOfN(rapid.SampledFrom([][2]int{
			{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		}), 0, 12).Draw(t, "steps")
		for _, s := range steps {
			seq.Move(s[0], s[1])
			pos := seq.Position()
			if pos.X < 0 || pos.X >= GridSize || pos.Y < 0 || pos.Y >= GridSize {
				t.Fatalf("position off grid: %+v", pos)
			}
		}
	})
}
