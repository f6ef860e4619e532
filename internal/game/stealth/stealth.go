// Package stealth implements the discrete-grid hazard sequence: a 5x5 crawl
// through the dark on a draining flashlight battery, ending in a repair and
// a fight, a quiet exit, or death.
package stealth

import (
	"github.com/cmoritz/blackwood/internal/game/combat"
	"github.com/cmoritz/blackwood/internal/game/item"
	"github.com/cmoritz/blackwood/internal/game/player"
)

// GridSize is the side length of the sequence grid.
const GridSize = 5

// FullBattery is the battery resource ceiling.
const FullBattery = 100

// DrainPerMove is the battery cost of each move.
const DrainPerMove = 10

// waveSize is how many enemies spawn when the lights come on.
const waveSize = 3

// Cell is a grid coordinate: X is the column, Y the row.
type Cell struct {
	X, Y int
}

func (c Cell) inBounds() bool {
	return c.X >= 0 && c.X < GridSize && c.Y >= 0 && c.Y < GridSize
}

// State is the sequence state machine.
type State int

// Sequence states.
const (
	// Navigating means the player is crawling the grid.
	Navigating State = iota
	// Repairing means the target cell is reached and the repair is on offer.
	Repairing
	// LightsOn means the repair succeeded; the spawned wave must be fought.
	LightsOn
	// Failed means the player died in the dark.
	Failed
	// Quit means the player backed out, forfeiting progress only.
	Quit
)

// MoveResult describes one move attempt.
type MoveResult int

// Move outcomes.
const (
	// MoveOK means the player advanced one cell.
	MoveOK MoveResult = iota
	// MoveOutOfBounds means the move was rejected with no state change.
	MoveOutOfBounds
	// MoveHazard means the player stepped on a hazard and died.
	MoveHazard
	// MoveBatteryDead means the battery ran out with no spare, and the
	// player died.
	MoveBatteryDead
	// MoveReachedTarget means the player reached the repair cell.
	MoveReachedTarget
	// MoveRejected means the sequence is not in a navigable state.
	MoveRejected
)

// RepairResult describes a repair attempt at the target cell.
type RepairResult int

// Repair outcomes.
const (
	// Repaired means the lights are on and the wave has spawned.
	Repaired RepairResult = iota
	// RepairDeclined returns the player to navigation.
	RepairDeclined
	// RepairNoTool means the required tool is missing; the offer stands.
	RepairNoTool
	// RepairRejected means the sequence is not at the repair offer.
	RepairRejected
)

// Options configures a sequence. The zero value picks the defaults.
type Options struct {
	// Start is the entry cell.
	Start Cell
	// Target is the repair cell.
	Target Cell
	// Hazards are the instant-death cells.
	Hazards []Cell
	// ToolName is the item required to repair.
	ToolName string
	// BatteryItemName is the inventory item auto-consumed when the battery
	// dies.
	BatteryItemName string
}

func (o Options) withDefaults() Options {
	if o.Target == (Cell{}) {
		o.Target = Cell{X: GridSize - 1, Y: GridSize - 1}
	}
	if o.Hazards == nil {
		o.Hazards = []Cell{{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 3, Y: 3}}
	}
	if o.ToolName == "" {
		o.ToolName = "Toolbox"
	}
	if o.BatteryItemName == "" {
		o.BatteryItemName = "Battery"
	}
	return o
}

// Sequence is one run of the stealth mini-game. Create with New, drive with
// Move/Repair/Quit, and always Close: the flashlight's in-sequence flag is
// released no matter how the run ends.
type Sequence struct {
	opts    Options
	player  *player.Player
	light   *item.Item
	pos     Cell
	battery int
	hazards map[Cell]bool
	state   State

	encounter *combat.Encounter
	closed    bool
}

// New starts a sequence for the player, holding the given flashlight for
// its duration. light may be nil when the player carries none.
func New(p *player.Player, light *item.Item, opts Options) *Sequence {
	opts = opts.withDefaults()
	hazards := make(map[Cell]bool, len(opts.Hazards))
	for _, h := range opts.Hazards {
		hazards[h] = true
	}
	if light != nil {
		light.SetInSequence(true)
	}
	return &Sequence{
		opts:    opts,
		player:  p,
		light:   light,
		pos:     opts.Start,
		battery: FullBattery,
		hazards: hazards,
	}
}

// Close releases the flashlight's in-sequence hold. Idempotent; callers
// defer it immediately after New so every exit path releases the light.
func (s *Sequence) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.light != nil {
		s.light.SetInSequence(false)
	}
}

// State returns the sequence state.
func (s *Sequence) State() State { return s.state }

// Position returns the player's grid cell.
func (s *Sequence) Position() Cell { return s.pos }

// Target returns the repair cell.
func (s *Sequence) Target() Cell { return s.opts.Target }

// Battery returns the remaining battery resource.
func (s *Sequence) Battery() int { return s.battery }

// Encounter returns the spawned wave once the lights are on.
func (s *Sequence) Encounter() *combat.Encounter { return s.encounter }

// Done reports whether the sequence has reached a terminal state.
func (s *Sequence) Done() bool {
	return s.state == LightsOn || s.state == Failed || s.state == Quit
}

// Move advances one cell.
//
// Postcondition: out-of-bounds moves change nothing. A dead battery with no
// spare, or a hazard cell, kills the player and fails the sequence; the
// caller surfaces the death as a terminal event. Reaching the target cell
// switches to the repair offer.
func (s *Sequence) Move(dx, dy int) MoveResult {
	if s.state != Navigating {
		return MoveRejected
	}

	// Battery check happens at the start of the turn, before the step.
	if s.battery <= 0 {
		if _, ok := s.player.Inventory().RemoveByName(s.opts.BatteryItemName); ok {
			s.battery = FullBattery
			if s.light != nil {
				s.light.Recharge()
			}
		} else {
			s.fail()
			return MoveBatteryDead
		}
	}

	next := Cell{X: s.pos.X + dx, Y: s.pos.Y + dy}
	if !next.inBounds() {
		return MoveOutOfBounds
	}

	s.battery -= DrainPerMove
	if s.battery < 0 {
		s.battery = 0
	}
	if s.light != nil {
		s.light.DrainBattery(DrainPerMove)
	}

	if s.hazards[next] {
		s.pos = next
		s.fail()
		return MoveHazard
	}

	s.pos = next
	if s.pos == s.opts.Target {
		s.state = Repairing
		return MoveReachedTarget
	}
	return MoveOK
}

// Repair attempts the repair at the target cell.
//
// Postcondition: success flips the lights on and spawns the enemy wave;
// declining returns to navigation; a missing tool leaves the offer open.
func (s *Sequence) Repair(confirm bool) RepairResult {
	if s.state != Repairing {
		return RepairRejected
	}
	if !confirm {
		s.state = Navigating
		return RepairDeclined
	}
	if !s.player.Inventory().Has(s.opts.ToolName) {
		return RepairNoTool
	}
	s.state = LightsOn
	s.encounter = combat.NewWave("Zombie", waveSize, 20, 10)
	return Repaired
}

// QuitEarly exits the sequence with no penalty beyond forfeiting progress.
func (s *Sequence) QuitEarly() {
	if s.Done() {
		return
	}
	s.state = Quit
}

// fail is the single fatal transition: the player's health is forced to
// zero and the sequence ends.
func (s *Sequence) fail() {
	s.player.Kill()
	s.state = Failed
}
