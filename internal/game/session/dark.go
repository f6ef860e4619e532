package session

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cmoritz/blackwood/internal/game/item"
	"github.com/cmoritz/blackwood/internal/game/stealth"
)

// crawl directions accepted by the dark sequence.
var crawlOffsets = map[string][2]int{
	"north": {0, -1}, "n": {0, -1}, "up": {0, -1},
	"south": {0, 1}, "s": {0, 1}, "down": {0, 1},
	"west": {-1, 0}, "w": {-1, 0}, "left": {-1, 0},
	"east": {1, 0}, "e": {1, 0}, "right": {1, 0},
}

// Crawl moves one cell through the dark. The first crawl starts the sequence,
// which needs a carried light source.
func (s *Session) Crawl(dir string) string {
	offset, ok := crawlOffsets[strings.ToLower(strings.TrimSpace(dir))]
	if !ok {
		return "Crawl which way? (north, south, east, west)"
	}

	if s.dark == nil {
		light, found := s.player.Inventory().FindKind(item.KindLight)
		if !found {
			return "It is pitch black in there. You need a light."
		}
		s.dark = stealth.New(s.player, light, stealth.Options{})
		s.log.Debug("dark sequence started")
	}

	switch s.dark.Move(offset[0], offset[1]) {
	case stealth.MoveOK:
		return s.darkStatus("You inch forward.")
	case stealth.MoveOutOfBounds:
		return s.darkStatus("A wall. You go no further that way.")
	case stealth.MoveReachedTarget:
		return s.darkStatus("Your hand finds the generator. Try to repair it?")
	case stealth.MoveHazard:
		s.endDark()
		s.over = true
		s.log.Info("player died", zap.String("killer", "the dark"))
		return "The floor gives way beneath you. Everything goes dark."
	case stealth.MoveBatteryDead:
		s.endDark()
		s.over = true
		s.log.Info("player died", zap.String("killer", "the dark"))
		return "The light gutters out, and something finds you."
	default:
		return "You are in no state to crawl."
	}
}

func (s *Session) darkStatus(line string) string {
	return fmt.Sprintf("%s (battery %d%%)", line, s.dark.Battery())
}

// RepairGenerator attempts the repair at the generator cell. Success turns
// the lights on and loses the spawned wave into the room.
func (s *Session) RepairGenerator() string {
	if s.dark == nil {
		return "There is nothing to repair here."
	}
	accept := true
	if s.confirm != nil {
		accept = s.confirm("Attempt the repair?")
	}
	switch s.dark.Repair(accept) {
	case stealth.Repaired:
		wave := s.dark.Encounter()
		s.endDark()
		r := s.world.CurrentRoom()
		for _, e := range wave.Enemies() {
			r.AddEnemy(e)
		}
		return fmt.Sprintf("The generator coughs and the lights blaze on. %d shapes lurch toward you!", wave.Remaining())
	case stealth.RepairDeclined:
		return "You pull your hand back."
	case stealth.RepairNoTool:
		return "You need tools for this."
	default:
		return "You haven't reached the generator."
	}
}

// Retreat abandons the dark sequence with no penalty.
func (s *Session) Retreat() string {
	if s.dark == nil {
		return "You are not in the dark."
	}
	s.dark.QuitEarly()
	s.endDark()
	return "You back out the way you came."
}

// endDark releases the sequence's flashlight hold and clears it.
func (s *Session) endDark() {
	if s.dark == nil {
		return
	}
	s.dark.Close()
	s.dark = nil
}
