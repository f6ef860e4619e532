package item

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Item is a concrete instance of a definition. Most kinds are interchangeable
// by name; ammo is identified by instance so two magazines never merge.
type Item struct {
	def *Def

	// InstanceID uniquely identifies this instance.
	InstanceID string

	// Rounds is the remaining ammunition for ammo items.
	Rounds int
	// Battery is the remaining charge for light items.
	Battery int

	// inSequence marks a light item as held by a running stealth sequence.
	inSequence bool
}

// New creates an instance of the given definition.
//
// Precondition: def is non-nil and valid.
func New(def *Def) *Item {
	return &Item{
		def:        def,
		InstanceID: uuid.New().String(),
		Rounds:     def.Rounds,
		Battery:    def.MaxBattery,
	}
}

// Def returns the static definition backing this instance.
func (it *Item) Def() *Def { return it.def }

// Name returns the display name.
func (it *Item) Name() string { return it.def.Name }

// Kind returns the item kind.
func (it *Item) Kind() Kind { return it.def.Kind }

// Matches reports whether the item answers to the given name,
// case-insensitively.
func (it *Item) Matches(name string) bool {
	return normalizeName(it.def.Name) == normalizeName(name)
}

// Same reports whether two instances count as the same item for inventory
// lookup. Ammo keeps distinct-instance identity; everything else compares by
// name.
func (it *Item) Same(other *Item) bool {
	if other == nil {
		return false
	}
	if it.def.Kind == KindAmmo || other.def.Kind == KindAmmo {
		return it.InstanceID == other.InstanceID
	}
	return it.Matches(other.def.Name)
}

// IsWeapon reports whether the item can be equipped.
func (it *Item) IsWeapon() bool { return it.def.Kind == KindWeapon }

// Heals returns the heal amount and whether using the item restores health.
func (it *Item) Heals() (int, bool) {
	return it.def.HealAmount, it.def.Kind == KindConsumable && it.def.HealAmount > 0
}

// RechargeTarget reports whether a battery item can recharge this item.
func (it *Item) RechargeTarget() bool { return it.def.Kind == KindLight }

// Recharge restores a light item to full battery.
//
// Postcondition: Battery == def.MaxBattery for light items; no-op otherwise.
func (it *Item) Recharge() {
	if it.def.Kind == KindLight {
		it.Battery = it.def.MaxBattery
	}
}

// DrainBattery removes charge from a light item, clamping at zero, and
// returns the remaining charge.
func (it *Item) DrainBattery(amount int) int {
	if it.def.Kind != KindLight {
		return 0
	}
	it.Battery -= amount
	if it.Battery < 0 {
		it.Battery = 0
	}
	return it.Battery
}

// InSequence reports whether a light item is held by a running stealth
// sequence.
func (it *Item) InSequence() bool { return it.inSequence }

// SetInSequence marks or clears the stealth-sequence hold on a light item.
func (it *Item) SetInSequence(v bool) { it.inSequence = v }

// User is the capability an actor exposes to item use.
type User interface {
	// Heal restores health, clamped to the actor's maximum, and returns the
	// amount actually restored.
	Heal(amount int) int
	// EquipWeapon makes the item the actor's active weapon.
	EquipWeapon(it *Item)
}

// Outcome describes the result of using an item.
type Outcome struct {
	// Message is the player-facing feedback line.
	Message string
	// Consumed reports whether the item should be removed from the inventory.
	Consumed bool
}

// Use applies the item's effect to the user.
//
// Postcondition: returns (outcome, true) when the item did something, or
// (zero, false) when the kind has no use action.
func (it *Item) Use(u User) (Outcome, bool) {
	switch it.def.Kind {
	case KindConsumable:
		if amount, ok := it.Heals(); ok {
			restored := u.Heal(amount)
			return Outcome{
				Message:  fmt.Sprintf("You use the %s and recover %d health.", it.def.Name, restored),
				Consumed: it.def.ConsumedOnUse,
			}, true
		}
		return Outcome{Message: "Nothing happens.", Consumed: it.def.ConsumedOnUse}, true
	case KindWeapon:
		u.EquipWeapon(it)
		return Outcome{Message: "You equip the " + it.def.Name + "."}, true
	default:
		return Outcome{}, false
	}
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
