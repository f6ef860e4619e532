// Package inventory provides the bounded item container carried by the player.
package inventory

import (
	"github.com/cmoritz/blackwood/internal/game/item"
)

// EventType distinguishes inventory change notifications.
type EventType int

// Inventory change event types.
const (
	EventAdded EventType = iota
	EventRemoved
)

// Event describes a single inventory mutation, delivered to observers so UI
// layers can stay in sync without polling.
type Event struct {
	Type EventType
	Item *item.Item
}

// Inventory is an ordered, capacity-bounded collection of items.
// It is not safe for concurrent use; all mutation happens on the game's
// single update pass.
type Inventory struct {
	capacity  int
	items     []*item.Item
	observers []func(Event)
}

// New creates an empty Inventory with the given capacity.
//
// Precondition: capacity >= 1.
func New(capacity int) *Inventory {
	return &Inventory{capacity: capacity}
}

// Capacity returns the fixed maximum number of items.
func (inv *Inventory) Capacity() int { return inv.capacity }

// Size returns the current number of items.
func (inv *Inventory) Size() int { return len(inv.items) }

// Items returns a copy of the item list in insertion order.
func (inv *Inventory) Items() []*item.Item {
	out := make([]*item.Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Add appends an item.
//
// Postcondition: returns false and leaves the inventory unchanged when at
// capacity; otherwise the item is appended and observers are notified.
func (inv *Inventory) Add(it *item.Item) bool {
	if it == nil || len(inv.items) >= inv.capacity {
		return false
	}
	inv.items = append(inv.items, it)
	inv.notify(Event{Type: EventAdded, Item: it})
	return true
}

// Remove deletes the given item instance (ammo) or the first item with the
// same name (all other kinds).
//
// Postcondition: returns true iff an item was removed; observers are notified
// on removal.
func (inv *Inventory) Remove(it *item.Item) bool {
	for i, held := range inv.items {
		if held.Same(it) {
			inv.removeAt(i)
			return true
		}
	}
	return false
}

// RemoveByName deletes and returns the first item matching name,
// case-insensitively.
//
// Postcondition: returns (item, true) on removal or (nil, false) when absent.
func (inv *Inventory) RemoveByName(name string) (*item.Item, bool) {
	for i, held := range inv.items {
		if held.Matches(name) {
			inv.removeAt(i)
			return held, true
		}
	}
	return nil, false
}

// Find returns the first item matching name, case-insensitively.
//
// Postcondition: Returns (item, true) if found, or (nil, false) otherwise.
func (inv *Inventory) Find(name string) (*item.Item, bool) {
	for _, held := range inv.items {
		if held.Matches(name) {
			return held, true
		}
	}
	return nil, false
}

// FindKind returns the first item of the given kind.
func (inv *Inventory) FindKind(kind item.Kind) (*item.Item, bool) {
	for _, held := range inv.items {
		if held.Kind() == kind {
			return held, true
		}
	}
	return nil, false
}

// Has reports whether the inventory holds an item matching name.
func (inv *Inventory) Has(name string) bool {
	_, ok := inv.Find(name)
	return ok
}

// Subscribe registers an observer called after every add and remove.
func (inv *Inventory) Subscribe(fn func(Event)) {
	inv.observers = append(inv.observers, fn)
}

func (inv *Inventory) removeAt(i int) {
	removed := inv.items[i]
	inv.items = append(inv.items[:i], inv.items[i+1:]...)
	inv.notify(Event{Type: EventRemoved, Item: removed})
}

func (inv *Inventory) notify(ev Event) {
	for _, fn := range inv.observers {
		fn(ev)
	}
}
