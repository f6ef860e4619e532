// Package save captures and restores the full mutable game state. A State is
// a plain value object serialized as YAML; Snapshot and Restore convert
// between it and the live world and player.
package save

import (
	"fmt"
	"time"

	"github.com/cmoritz/blackwood/internal/game/inventory"
	"github.com/cmoritz/blackwood/internal/game/item"
	"github.com/cmoritz/blackwood/internal/game/player"
	"github.com/cmoritz/blackwood/internal/game/world"
	"github.com/jakecoffman/cp"
)

// ItemState identifies one item instance by its definition plus the mutable
// per-instance counters.
type ItemState struct {
	DefID   string `yaml:"def_id"`
	Rounds  int    `yaml:"rounds,omitempty"`
	Battery int    `yaml:"battery,omitempty"`
}

// PlacedItemState is an item lying in a room at a position.
type PlacedItemState struct {
	Item ItemState `yaml:"item"`
	X    float64   `yaml:"x"`
	Y    float64   `yaml:"y"`
}

// RoomState is the per-room mutable state: which spots have been searched and
// which items lie on the floor.
type RoomState struct {
	SearchedSpots []string          `yaml:"searched_spots,omitempty"`
	Items         []PlacedItemState `yaml:"items,omitempty"`
}

// PlayerState is the player's mutable state, including the capacities needed
// to rebuild the player without outside configuration.
type PlayerState struct {
	Name          string      `yaml:"name"`
	Health        int         `yaml:"health"`
	MaxHealth     int         `yaml:"max_health"`
	Stamina       float64     `yaml:"stamina"`
	MaxStamina    float64     `yaml:"max_stamina"`
	X             float64     `yaml:"x"`
	Y             float64     `yaml:"y"`
	RoomID        string      `yaml:"room_id"`
	Capacity      int         `yaml:"capacity"`
	Inventory     []ItemState `yaml:"inventory,omitempty"`
	EquippedDefID string      `yaml:"equipped_def_id,omitempty"`
}

// State is a complete snapshot of a run.
type State struct {
	SavedAt         time.Time            `yaml:"saved_at"`
	Player          PlayerState          `yaml:"player"`
	Rooms           map[string]RoomState `yaml:"rooms,omitempty"`
	Locks           map[string]bool      `yaml:"locks,omitempty"`
	InsertedGears   []string             `yaml:"inserted_gears,omitempty"`
	StalkerDistance float64              `yaml:"stalker_distance,omitempty"`
}

// Snapshot captures the world and player into a State.
//
// Postcondition: the live objects are not modified.
func Snapshot(w *world.World, p *player.Player) *State {
	st := &State{
		SavedAt: time.Now().UTC(),
		Player: PlayerState{
			Name:       p.Name,
			Health:     p.Health(),
			MaxHealth:  p.MaxHealth(),
			Stamina:    p.Stamina(),
			MaxStamina: p.MaxStamina(),
			X:          p.Position().X,
			Y:          p.Position().Y,
			RoomID:     p.RoomID(),
			Capacity:   p.Inventory().Capacity(),
		},
		Locks:           w.AllLockStates(),
		StalkerDistance: w.StalkerDistance(),
	}

	for _, it := range p.Inventory().Items() {
		st.Player.Inventory = append(st.Player.Inventory, snapshotItem(it))
	}
	if eq := p.EquippedWeapon(); eq != nil {
		st.Player.EquippedDefID = eq.Def().ID
	}

	for _, r := range w.Rooms() {
		rs := RoomState{}
		for _, spot := range r.SearchSpots() {
			if spot.Searched() {
				rs.SearchedSpots = append(rs.SearchedSpots, spot.Name)
			}
		}
		for _, placed := range r.Items() {
			rs.Items = append(rs.Items, PlacedItemState{
				Item: snapshotItem(placed.Item),
				X:    placed.X,
				Y:    placed.Y,
			})
		}
		if len(rs.SearchedSpots) > 0 || len(rs.Items) > 0 {
			if st.Rooms == nil {
				st.Rooms = map[string]RoomState{}
			}
			st.Rooms[r.ID] = rs
		}
	}

	if g := w.GearLock(); g != nil {
		st.InsertedGears = g.InsertedGears()
	}

	return st
}

// Restore applies the State to the world and returns a freshly built player.
// It works against both a freshly constructed world and a live one: every
// room, spot, lock, and the gear mechanism is forced to the snapshot's state
// in either direction.
//
// Postcondition: positions and lock states are restored verbatim, the gear
// target room's locked flag matches the restored gear count, and no lock or
// spot side effect fires. The returned error leaves the world partially
// restored only when the state references definitions missing from reg.
func Restore(st *State, w *world.World, reg *item.Registry) (*player.Player, error) {
	inv := inventory.New(st.Player.Capacity)
	var equipped *item.Item
	for _, is := range st.Player.Inventory {
		it, err := restoreItem(is, reg)
		if err != nil {
			return nil, fmt.Errorf("restoring inventory: %w", err)
		}
		if !inv.Add(it) {
			return nil, fmt.Errorf("restoring inventory: %q does not fit capacity %d", it.Name(), st.Player.Capacity)
		}
		if equipped == nil && st.Player.EquippedDefID != "" && it.Def().ID == st.Player.EquippedDefID {
			equipped = it
		}
	}

	p := player.New(st.Player.Name, st.Player.MaxHealth, st.Player.MaxStamina, inv)
	p.RestoreHealth(st.Player.Health)
	p.SetStamina(st.Player.Stamina)
	p.SetPosition(cp.Vector{X: st.Player.X, Y: st.Player.Y})
	p.SetRoomID(st.Player.RoomID)
	if equipped != nil {
		p.EquipWeapon(equipped)
	}

	for _, r := range w.Rooms() {
		// Rooms absent from the snapshot reset to untouched: no searched
		// spots, empty floor.
		rs := st.Rooms[r.ID]
		searched := make(map[string]bool, len(rs.SearchedSpots))
		for _, name := range rs.SearchedSpots {
			searched[name] = true
		}
		for _, spot := range r.SearchSpots() {
			spot.RestoreSearched(searched[spot.Name])
		}
		r.ClearItems()
		for _, pi := range rs.Items {
			it, err := restoreItem(pi.Item, reg)
			if err != nil {
				return nil, fmt.Errorf("restoring room %s: %w", r.ID, err)
			}
			r.AddItem(it, pi.X, pi.Y)
		}
	}

	w.RestoreLockStates(st.Locks)
	w.RestoreGearLock(st.InsertedGears)
	w.SetStalkerDistance(st.StalkerDistance)
	if st.Player.RoomID != "" {
		if err := w.SetCurrentRoom(st.Player.RoomID); err != nil {
			return nil, fmt.Errorf("restoring current room: %w", err)
		}
	}

	return p, nil
}

func snapshotItem(it *item.Item) ItemState {
	return ItemState{DefID: it.Def().ID, Rounds: it.Rounds, Battery: it.Battery}
}

func restoreItem(is ItemState, reg *item.Registry) (*item.Item, error) {
	def, ok := reg.Def(is.DefID)
	if !ok {
		return nil, fmt.Errorf("unknown item definition %q", is.DefID)
	}
	it := item.New(def)
	it.Rounds = is.Rounds
	it.Battery = is.Battery
	return it, nil
}
