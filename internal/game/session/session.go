// Package session owns a single-player run: the world, the player, and the
// turn-based operations the command surface dispatches to. Every operation
// returns the player-facing feedback line; terminal outcomes are surfaced
// through Over and Won rather than by touching the process.
package session

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cmoritz/blackwood/internal/game/combat"
	"github.com/cmoritz/blackwood/internal/game/item"
	"github.com/cmoritz/blackwood/internal/game/lock"
	"github.com/cmoritz/blackwood/internal/game/player"
	"github.com/cmoritz/blackwood/internal/game/save"
	"github.com/cmoritz/blackwood/internal/game/stealth"
	"github.com/cmoritz/blackwood/internal/game/world"
)

// Session drives one run. It is not safe for concurrent use; the command
// loop is the only caller.
type Session struct {
	log     *zap.Logger
	world   *world.World
	player  *player.Player
	items   *item.Registry
	saves   *save.Manager
	confirm lock.Confirm

	// dark is the active stealth sequence, nil outside the dark crawl.
	dark *stealth.Sequence

	over bool
	won  bool
}

// New creates a Session.
//
// Precondition: log, w, p, and items are non-nil. saves may be nil to run
// without persistence; confirm may be nil to auto-accept prompts.
func New(log *zap.Logger, w *world.World, p *player.Player, items *item.Registry, saves *save.Manager, confirm lock.Confirm) *Session {
	p.SetRoomID(w.CurrentRoom().ID)
	return &Session{
		log:     log,
		world:   w,
		player:  p,
		items:   items,
		saves:   saves,
		confirm: confirm,
	}
}

// World returns the session's world.
func (s *Session) World() *world.World { return s.world }

// Player returns the session's player.
func (s *Session) Player() *player.Player { return s.player }

// Over reports whether the run has ended.
func (s *Session) Over() bool { return s.over }

// Won reports whether the run ended in escape rather than death.
func (s *Session) Won() bool { return s.won }

// InDark reports whether a stealth sequence is active.
func (s *Session) InDark() bool { return s.dark != nil }

// Close releases any resources held across commands. With a stealth sequence
// still active this releases its flashlight hold; callers defer it next to
// session creation.
func (s *Session) Close() {
	s.endDark()
}

// Look describes the current room: exits, items on the floor, enemies, and
// unsearched spots.
func (s *Session) Look() string {
	r := s.world.CurrentRoom()
	var b strings.Builder
	fmt.Fprintf(&b, "You are in the %s.", displayName(r.Name))

	var exits []string
	for _, id := range r.Neighbors {
		if n, ok := s.world.Room(id); ok {
			exits = append(exits, displayName(n.Name))
		}
	}
	if len(exits) > 0 {
		fmt.Fprintf(&b, "\nExits: %s.", strings.Join(exits, ", "))
	}
	for _, placed := range r.Items() {
		fmt.Fprintf(&b, "\nA %s lies here.", placed.Item.Name())
	}
	for _, e := range r.Enemies() {
		fmt.Fprintf(&b, "\nA %s blocks your way!", e.Name)
	}
	if spots := r.UnsearchedSpots(); len(spots) > 0 {
		names := make([]string, len(spots))
		for i, spot := range spots {
			names[i] = spot.Name
		}
		fmt.Fprintf(&b, "\nYou could search: %s.", strings.Join(names, ", "))
	}
	return b.String()
}

// Go moves to an adjacent room named by ID or display name. A locked door
// triggers an unlock attempt with the held key before giving up.
func (s *Session) Go(target string) string {
	if target == "" {
		return "Go where?"
	}
	cur := s.world.CurrentRoom()
	destID := ""
	for _, id := range cur.Neighbors {
		n, ok := s.world.Room(id)
		if !ok {
			continue
		}
		if id == target || strings.EqualFold(displayName(n.Name), target) || strings.EqualFold(n.Name, target) {
			destID = id
			break
		}
	}
	if destID == "" {
		return "You can't get there from here."
	}

	switch s.world.MoveToRoom(destID) {
	case world.Moved:
	case world.Blocked:
		if !s.world.AttemptUnlock(destID, s.player.Inventory(), s.confirm) {
			return s.lockedMessage(destID)
		}
		if s.world.MoveToRoom(destID) != world.Moved {
			return s.lockedMessage(destID)
		}
	default:
		return "You can't get there from here."
	}

	s.player.SetRoomID(destID)
	s.log.Debug("room entered", zap.String("room", destID))
	if g := s.world.GearLock(); g != nil && destID == g.TargetRoomID() && g.IsUnlocked() {
		s.over = true
		s.won = true
		return s.Look() + "\nThe way out stands open. You made it."
	}
	return s.Look()
}

func (s *Session) lockedMessage(roomID string) string {
	if r, ok := s.world.Room(roomID); ok {
		if l := r.AccessLock(); l != nil && l.LockedMessage() != "" {
			return l.LockedMessage()
		}
	}
	return "The door is locked."
}

// Take picks up a named item from the floor.
func (s *Session) Take(name string) string {
	if name == "" {
		return "Take what?"
	}
	r := s.world.CurrentRoom()
	it, ok := r.TakeItem(name)
	if !ok {
		return fmt.Sprintf("There is no %s here.", name)
	}
	if !s.player.Inventory().Add(it) {
		r.AddItem(it, s.player.Position().X, s.player.Position().Y)
		return "Your pack is full."
	}
	return fmt.Sprintf("You take the %s.", it.Name())
}

// Drop puts a carried item on the floor at the player's position.
func (s *Session) Drop(name string) string {
	if name == "" {
		return "Drop what?"
	}
	it, ok := s.player.Inventory().RemoveByName(name)
	if !ok {
		return fmt.Sprintf("You are not carrying a %s.", name)
	}
	if it == s.player.EquippedWeapon() {
		s.player.EquipWeapon(nil)
	}
	s.world.CurrentRoom().AddItem(it, s.player.Position().X, s.player.Position().Y)
	return fmt.Sprintf("You drop the %s.", it.Name())
}

// Use applies a carried item's effect: consumables heal, weapons equip.
func (s *Session) Use(name string) string {
	if name == "" {
		return "Use what?"
	}
	it, ok := s.player.Inventory().Find(name)
	if !ok {
		return fmt.Sprintf("You are not carrying a %s.", name)
	}
	outcome, ok := it.Use(s.player)
	if !ok {
		return fmt.Sprintf("You can't think of a way to use the %s.", it.Name())
	}
	if outcome.Consumed {
		s.player.Inventory().Remove(it)
	}
	return outcome.Message
}

// Examine describes a carried item, a floor item, or an enemy.
func (s *Session) Examine(name string) string {
	if name == "" {
		return "Examine what?"
	}
	if it, ok := s.player.Inventory().Find(name); ok {
		return describeItem(it)
	}
	for _, placed := range s.world.CurrentRoom().Items() {
		if placed.Item.Matches(name) {
			return describeItem(placed.Item)
		}
	}
	if e, ok := s.world.CurrentRoom().FindEnemy(name); ok {
		return fmt.Sprintf("The %s has %d health left.", e.Name, e.Health())
	}
	return fmt.Sprintf("You see no %s here.", name)
}

func describeItem(it *item.Item) string {
	desc := it.Def().Description
	if desc == "" {
		desc = fmt.Sprintf("An unremarkable %s.", strings.ToLower(it.Name()))
	}
	switch it.Kind() {
	case item.KindAmmo:
		return fmt.Sprintf("%s %d rounds left.", desc, it.Rounds)
	case item.KindLight:
		return fmt.Sprintf("%s Battery at %d%%.", desc, it.Battery)
	default:
		return desc
	}
}

// Equip makes a carried weapon the active one.
func (s *Session) Equip(name string) string {
	if name == "" {
		return "Equip what?"
	}
	it, ok := s.player.Inventory().Find(name)
	if !ok {
		return fmt.Sprintf("You are not carrying a %s.", name)
	}
	if !it.IsWeapon() {
		return fmt.Sprintf("The %s is not a weapon.", it.Name())
	}
	s.player.EquipWeapon(it)
	return fmt.Sprintf("You equip the %s.", it.Name())
}

// Attack strikes a named enemy in the room. A surviving enemy hits back;
// player death ends the run.
func (s *Session) Attack(target string) string {
	r := s.world.CurrentRoom()
	enemies := r.Enemies()
	if len(enemies) == 0 {
		return "There is nothing to fight here."
	}
	var e *combat.Enemy
	if target == "" {
		e = enemies[0]
	} else if found, ok := r.FindEnemy(target); ok {
		e = found
	} else {
		return fmt.Sprintf("There is no %s here.", target)
	}

	var b strings.Builder
	dmg := s.player.AttackDamage()
	if e.TakeDamage(dmg) {
		fmt.Fprintf(&b, "You hit the %s for %d. It drops dead.", e.Name, dmg)
		if len(r.Enemies()) == 0 {
			b.WriteString("\nThe room falls quiet.")
		}
		return b.String()
	}
	fmt.Fprintf(&b, "You hit the %s for %d.", e.Name, dmg)

	retaliation := e.Damage()
	if s.player.TakeDamage(retaliation) {
		s.over = true
		fmt.Fprintf(&b, "\nThe %s strikes back for %d. Everything goes dark.", e.Name, retaliation)
		s.log.Info("player died", zap.String("killer", e.Name))
		return b.String()
	}
	fmt.Fprintf(&b, "\nThe %s strikes back for %d. You have %d health left.", e.Name, retaliation, s.player.Health())
	return b.String()
}

// Talk addresses whatever shares the room with the player.
func (s *Session) Talk(target string) string {
	if _, ok := s.world.CurrentRoom().FindEnemy(target); ok {
		return "It is past talking."
	}
	if s.world.StalkerDistance() > 0 && s.world.StalkerDistance() < 10 {
		return "Something answers from the dark. You wish it hadn't."
	}
	return "There is no answer."
}

// Search rummages through a named spot, honoring any lock guarding it.
func (s *Session) Search(spotName string) string {
	if spotName == "" {
		return "Search what?"
	}
	r := s.world.CurrentRoom()
	spot, ok := r.FindSpot(spotName)
	if !ok {
		return fmt.Sprintf("There is no %s to search here.", spotName)
	}
	if spot.Searched() {
		return fmt.Sprintf("You already went through the %s.", spot.Name)
	}
	it, searched := r.TrySearch(spotName, s.player.Inventory(), s.confirm)
	if !searched {
		return fmt.Sprintf("The %s won't open.", spot.Name)
	}
	if it == nil {
		return fmt.Sprintf("The %s is empty.", spot.Name)
	}
	if !s.player.Inventory().Add(it) {
		r.AddItem(it, s.player.Position().X, s.player.Position().Y)
		return fmt.Sprintf("You find a %s, but your pack is full. It falls to the floor.", it.Name())
	}
	return fmt.Sprintf("You find a %s.", it.Name())
}

// InsertGear feeds a carried gear piece into the gear lock in this room.
func (s *Session) InsertGear(name string) string {
	if name == "" {
		return "Insert what?"
	}
	g := s.world.GearLock()
	if g == nil || s.world.CurrentRoom().ID != g.EntryRoomID() {
		return "There is no mechanism here."
	}
	if !s.player.Inventory().Has(name) {
		return fmt.Sprintf("You are not carrying a %s.", name)
	}
	g.OnSpawn(s.spawnGearWave)
	if !s.world.InsertGearPiece(name, s.player.Inventory()) {
		return fmt.Sprintf("The %s does not fit.", name)
	}
	if g.IsUnlocked() {
		return fmt.Sprintf("The %s clicks into place. The mechanism grinds to life and somewhere a door unbolts.", name)
	}
	return fmt.Sprintf("The %s clicks into place. %d of %d gears set.", name, g.InsertedCount(), lock.RequiredGearCount)
}

// spawnGearWave drops the unlock wave into the mechanism's room.
func (s *Session) spawnGearWave(count int) {
	g := s.world.GearLock()
	r, ok := s.world.Room(g.EntryRoomID())
	if !ok {
		return
	}
	for _, e := range combat.NewWave("Zombie", count, 30, 10).Enemies() {
		r.AddEnemy(e)
	}
	s.log.Info("gear lock opened", zap.Int("spawned", count))
}

// InventoryText lists the pack contents.
func (s *Session) InventoryText() string {
	items := s.player.Inventory().Items()
	if len(items) == 0 {
		return "Your pack is empty."
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = describeCarried(it, it == s.player.EquippedWeapon())
	}
	sort.Strings(names)
	return fmt.Sprintf("You are carrying: %s. (%d/%d)",
		strings.Join(names, ", "), len(items), s.player.Inventory().Capacity())
}

func describeCarried(it *item.Item, equipped bool) string {
	name := it.Name()
	switch {
	case equipped:
		return name + " (equipped)"
	case it.Kind() == item.KindAmmo:
		return fmt.Sprintf("%s (%d rounds)", name, it.Rounds)
	case it.Kind() == item.KindLight:
		return fmt.Sprintf("%s (%d%%)", name, it.Battery)
	default:
		return name
	}
}

// Status reports the player's condition.
func (s *Session) Status() string {
	weapon := "bare hands"
	if eq := s.player.EquippedWeapon(); eq != nil {
		weapon = eq.Name()
	}
	return fmt.Sprintf("Health %d/%d. Stamina %.0f/%.0f. Armed with %s.",
		s.player.Health(), s.player.MaxHealth(),
		s.player.Stamina(), s.player.MaxStamina(), weapon)
}

// SaveGame writes a snapshot through the save manager.
func (s *Session) SaveGame() string {
	if s.saves == nil {
		return "Saving is disabled."
	}
	st := save.Snapshot(s.world, s.player)
	path, err := s.saves.Save(st)
	if err != nil {
		s.log.Error("saving game", zap.Error(err))
		return "The save failed; your run continues unharmed."
	}
	return fmt.Sprintf("Game saved to %s.", path)
}

// LoadGame restores the most recent save into this session.
func (s *Session) LoadGame() string {
	if s.saves == nil {
		return "Saving is disabled."
	}
	st, found, err := s.saves.LoadLatest()
	if err != nil {
		s.log.Error("loading game", zap.Error(err))
		return "The save could not be read."
	}
	if !found {
		return "There is nothing to load."
	}
	p, err := save.Restore(st, s.world, s.items)
	if err != nil {
		s.log.Error("restoring game", zap.Error(err))
		return "The save could not be restored."
	}
	s.player = p
	s.over = false
	s.won = false
	return "The world settles back into place.\n" + s.Look()
}

// displayName turns a layout name like "Enter_Hall" into "Enter Hall".
func displayName(name string) string {
	return strings.ReplaceAll(name, "_", " ")
}
