// Package lock provides the gates on rooms and search spots: single-item key
// locks and the multi-part gear lock.
package lock

import "github.com/cmoritz/blackwood/internal/game/item"

// Holder is the inventory capability a lock needs from an actor.
type Holder interface {
	// Has reports whether an item matching name is held, case-insensitively.
	Has(name string) bool
	// RemoveByName removes and returns the first item matching name.
	RemoveByName(name string) (*item.Item, bool)
}

// Confirm is an interactive yes/no prompt supplied by the calling adapter.
// A nil Confirm means the actor always accepts.
type Confirm func(prompt string) bool

// Lock is a single-condition gate. Once unlocked, it stays unlocked.
type Lock struct {
	name          string
	requiredItem  string
	lockedMessage string
	unlockMessage string
	consumesItem  bool
	locked        bool
}

// New creates a locked Lock.
//
// Precondition: name and requiredItem must be non-empty.
func New(name, requiredItem, lockedMessage, unlockMessage string, consumesItem bool) *Lock {
	return &Lock{
		name:          name,
		requiredItem:  requiredItem,
		lockedMessage: lockedMessage,
		unlockMessage: unlockMessage,
		consumesItem:  consumesItem,
		locked:        true,
	}
}

// Name returns the lock's registry name, used for persistence.
func (l *Lock) Name() string { return l.name }

// IsLocked reports whether the lock is still engaged.
func (l *Lock) IsLocked() bool { return l.locked }

// RequiredItem returns the name of the item needed to unlock.
func (l *Lock) RequiredItem() string { return l.requiredItem }

// LockedMessage returns the feedback shown while the lock is engaged.
func (l *Lock) LockedMessage() string { return l.lockedMessage }

// UnlockMessage returns the feedback shown on a successful unlock.
func (l *Lock) UnlockMessage() string { return l.unlockMessage }

// AttemptUnlock tries to open the lock with the holder's items.
//
// Postcondition: returns true with no mutation when already unlocked; returns
// false with no mutation when the required item is missing or the actor
// declines; on success the lock is permanently unlocked and, if the lock
// consumes its key, exactly one unit of the required item is removed.
func (l *Lock) AttemptUnlock(h Holder, confirm Confirm) bool {
	if !l.locked {
		return true
	}
	if !h.Has(l.requiredItem) {
		return false
	}
	if confirm != nil && !confirm("Use "+l.requiredItem+"?") {
		return false
	}
	if l.consumesItem {
		if _, ok := h.RemoveByName(l.requiredItem); !ok {
			return false
		}
	}
	l.locked = false
	return true
}

// RestoreState reapplies a persisted locked flag without running unlock side
// effects. Restoring moves the flag in either direction: loading an older
// save re-engages locks the player opened after saving.
func (l *Lock) RestoreState(locked bool) {
	l.locked = locked
}
