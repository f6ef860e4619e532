// Package combat provides the enemy model and the sequential wave encounter
// used by gear-lock spawns and the stealth sequence.
package combat

import "strings"

// Enemy is a hostile actor with mutable health.
type Enemy struct {
	// Name is the display name, also used for attack-target lookup.
	Name string

	health int
	damage int
}

// NewEnemy creates an enemy with the given health and per-hit damage.
//
// Precondition: health > 0 and damage >= 0.
func NewEnemy(name string, health, damage int) *Enemy {
	return &Enemy{Name: name, health: health, damage: damage}
}

// Health returns the enemy's remaining health.
func (e *Enemy) Health() int { return e.health }

// Damage returns the enemy's per-hit damage.
func (e *Enemy) Damage() int { return e.damage }

// IsAlive reports whether the enemy is still fighting.
func (e *Enemy) IsAlive() bool { return e.health > 0 }

// Matches reports whether the enemy answers to name, case-insensitively.
func (e *Enemy) Matches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(e.Name), strings.TrimSpace(name))
}

// TakeDamage reduces health, clamping at zero.
//
// Postcondition: health never goes negative; returns true when the hit killed.
func (e *Enemy) TakeDamage(amount int) bool {
	if amount < 0 || !e.IsAlive() {
		return false
	}
	e.health -= amount
	if e.health <= 0 {
		e.health = 0
		return true
	}
	return false
}
