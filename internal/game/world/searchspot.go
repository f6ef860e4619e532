package world

import (
	"strings"

	"github.com/cmoritz/blackwood/internal/game/item"
)

// SearchSpot is a fixed location in a room that can yield at most one hidden
// item. Spots are created at room setup and searched at most once.
type SearchSpot struct {
	// Name identifies the spot within its room.
	Name string

	hidden   *item.Item
	searched bool
}

// NewSearchSpot creates an unsearched spot. hidden may be nil for a spot
// that holds nothing.
func NewSearchSpot(name string, hidden *item.Item) *SearchSpot {
	return &SearchSpot{Name: name, hidden: hidden}
}

// Searched reports whether the spot has already been searched.
func (s *SearchSpot) Searched() bool { return s.searched }

// Search yields the hidden item on the first call only.
//
// Postcondition: the first call returns (hidden, true) and marks the spot
// searched; every later call returns (nil, false) regardless of what happened
// to the item afterwards. The hidden item stays with the spot so a restored
// older save can offer it again.
func (s *SearchSpot) Search() (*item.Item, bool) {
	if s.searched {
		return nil, false
	}
	s.searched = true
	if s.hidden == nil {
		return nil, false
	}
	return s.hidden, true
}

// RestoreSearched reapplies a persisted searched flag, in either direction:
// loading an older save un-searches spots rummaged after the save. The loot
// is re-minted from its definition so a copy already handed out and mutated
// does not leak its counters back into the spot.
func (s *SearchSpot) RestoreSearched(searched bool) {
	if !searched && s.searched && s.hidden != nil {
		s.hidden = item.New(s.hidden.Def())
	}
	s.searched = searched
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
