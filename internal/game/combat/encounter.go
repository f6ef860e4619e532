package combat

import "fmt"

// Encounter is a sequential wave fight: enemies are engaged one at a time,
// in spawn order.
type Encounter struct {
	enemies []*Enemy
}

// NewWave creates an encounter of count identical enemies, numbered for
// target lookup.
//
// Precondition: count >= 1.
func NewWave(name string, count, health, damage int) *Encounter {
	enc := &Encounter{}
	for i := 1; i <= count; i++ {
		enc.enemies = append(enc.enemies, NewEnemy(fmt.Sprintf("%s %d", name, i), health, damage))
	}
	return enc
}

// Current returns the enemy currently engaged: the first one still alive.
//
// Postcondition: Returns (enemy, true) while the wave has survivors, or
// (nil, false) when it is defeated.
func (enc *Encounter) Current() (*Enemy, bool) {
	for _, e := range enc.enemies {
		if e.IsAlive() {
			return e, true
		}
	}
	return nil, false
}

// Enemies returns the wave members in spawn order, dead or alive.
func (enc *Encounter) Enemies() []*Enemy {
	out := make([]*Enemy, len(enc.enemies))
	copy(out, enc.enemies)
	return out
}

// Remaining returns how many enemies are still alive.
func (enc *Encounter) Remaining() int {
	n := 0
	for _, e := range enc.enemies {
		if e.IsAlive() {
			n++
		}
	}
	return n
}

// Defeated reports whether every enemy in the wave is dead.
func (enc *Encounter) Defeated() bool {
	_, alive := enc.Current()
	return !alive
}
