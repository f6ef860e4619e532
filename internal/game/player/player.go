// Package player holds the mutable actor state: health, stamina, continuous
// position, and the movement flags the real-time engine drives.
package player

import (
	"github.com/jakecoffman/cp"

	"github.com/cmoritz/blackwood/internal/game/inventory"
	"github.com/cmoritz/blackwood/internal/game/item"
)

// UnarmedDamage is the per-hit damage with no weapon equipped.
const UnarmedDamage = 5

// Player is the single controllable actor. It is not safe for concurrent
// use; all mutation happens on the game's single update pass.
type Player struct {
	// Name is the player's display name.
	Name string

	health    int
	maxHealth int

	stamina    float64
	maxStamina float64

	pos   cp.Vector
	speed cp.Vector

	roomID   string
	equipped *item.Item
	inv      *inventory.Inventory

	movementEnabled bool
	transitioning   bool
	sprinting       bool
}

// New creates a Player at full health and stamina with movement enabled.
//
// Precondition: maxHealth >= 1, maxStamina > 0, inv non-nil.
func New(name string, maxHealth int, maxStamina float64, inv *inventory.Inventory) *Player {
	return &Player{
		Name:            name,
		health:          maxHealth,
		maxHealth:       maxHealth,
		stamina:         maxStamina,
		maxStamina:      maxStamina,
		inv:             inv,
		movementEnabled: true,
	}
}

// Health returns the current health.
func (p *Player) Health() int { return p.health }

// MaxHealth returns the health ceiling.
func (p *Player) MaxHealth() int { return p.maxHealth }

// IsAlive reports whether the player is still alive.
func (p *Player) IsAlive() bool { return p.health > 0 }

// TakeDamage reduces health, clamping at zero.
//
// Postcondition: health never goes negative; returns true when the damage
// killed the player.
func (p *Player) TakeDamage(amount int) bool {
	if amount < 0 || !p.IsAlive() {
		return false
	}
	p.health -= amount
	if p.health <= 0 {
		p.health = 0
		return true
	}
	return false
}

// Kill forces health to zero, used by instant-death hazards. The caller
// surfaces the death as a terminal event; nothing here touches the process.
func (p *Player) Kill() { p.health = 0 }

// Heal restores health up to the maximum and returns the amount actually
// restored. Implements item.User.
func (p *Player) Heal(amount int) int {
	if amount < 0 {
		return 0
	}
	before := p.health
	p.health += amount
	if p.health > p.maxHealth {
		p.health = p.maxHealth
	}
	return p.health - before
}

// RestoreHealth sets health directly, clamped to [0, max]. Used when
// restoring a saved game.
func (p *Player) RestoreHealth(health int) {
	if health < 0 {
		health = 0
	}
	if health > p.maxHealth {
		health = p.maxHealth
	}
	p.health = health
}

// Stamina returns the current stamina.
func (p *Player) Stamina() float64 { return p.stamina }

// MaxStamina returns the stamina ceiling.
func (p *Player) MaxStamina() float64 { return p.maxStamina }

// SetStamina sets stamina, clamped to [0, max].
func (p *Player) SetStamina(s float64) {
	if s < 0 {
		s = 0
	}
	if s > p.maxStamina {
		s = p.maxStamina
	}
	p.stamina = s
}

// Position returns the continuous 2D position.
func (p *Player) Position() cp.Vector { return p.pos }

// SetPosition moves the player to the given point.
func (p *Player) SetPosition(v cp.Vector) { p.pos = v }

// Speed returns the current speed vector.
func (p *Player) Speed() cp.Vector { return p.speed }

// SetSpeed sets the current speed vector.
func (p *Player) SetSpeed(v cp.Vector) { p.speed = v }

// RoomID returns the ID of the room the player occupies.
func (p *Player) RoomID() string { return p.roomID }

// SetRoomID records the player's current room.
func (p *Player) SetRoomID(id string) { p.roomID = id }

// Inventory returns the player's item container.
func (p *Player) Inventory() *inventory.Inventory { return p.inv }

// EquipWeapon makes the item the active weapon. Implements item.User.
func (p *Player) EquipWeapon(it *item.Item) { p.equipped = it }

// EquippedWeapon returns the active weapon, or nil when unarmed.
func (p *Player) EquippedWeapon() *item.Item { return p.equipped }

// AttackDamage returns the per-hit damage with the current weapon.
func (p *Player) AttackDamage() int {
	if p.equipped != nil {
		return p.equipped.Def().Damage
	}
	return UnarmedDamage
}

// MovementEnabled reports whether movement input is currently honored.
func (p *Player) MovementEnabled() bool { return p.movementEnabled }

// SetMovementEnabled toggles whether movement input is honored.
func (p *Player) SetMovementEnabled(v bool) { p.movementEnabled = v }

// Transitioning reports whether a room transition is in progress. While
// true, movement input is discarded.
func (p *Player) Transitioning() bool { return p.transitioning }

// SetTransitioning marks the start or end of a room transition.
func (p *Player) SetTransitioning(v bool) { p.transitioning = v }

// Sprinting reports whether sprint is held.
func (p *Player) Sprinting() bool { return p.sprinting }

// SetSprinting toggles the sprint flag.
func (p *Player) SetSprinting(v bool) { p.sprinting = v }
