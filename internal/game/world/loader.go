package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cmoritz/blackwood/internal/game/item"
)

// ParseRoomLayout reads a line-oriented room layout.
//
// Each line is `<index> <name> <neighbor-index>*`, whitespace-separated.
// Index 0 is the spawn room. Blank lines are skipped.
//
// Postcondition: Returns rooms in line order with all neighbor edges
// resolvable, or a non-nil error naming the offending line.
func ParseRoomLayout(r io.Reader) ([]*Room, error) {
	var rooms []*Room
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("room layout line %d: want `<index> <name> <neighbors...>`, got %q", lineNo, line)
		}
		idx, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("room layout line %d: bad index %q: %w", lineNo, fields[0], err)
		}
		if idx != len(rooms) {
			return nil, fmt.Errorf("room layout line %d: index %d out of order, want %d", lineNo, idx, len(rooms))
		}
		var neighbors []string
		for _, n := range fields[2:] {
			if _, err := strconv.Atoi(n); err != nil {
				return nil, fmt.Errorf("room layout line %d: bad neighbor index %q: %w", lineNo, n, err)
			}
			neighbors = append(neighbors, n)
		}
		rooms = append(rooms, NewRoom(fields[0], fields[1], neighbors))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading room layout: %w", err)
	}
	if len(rooms) == 0 {
		return nil, fmt.Errorf("room layout is empty")
	}
	return rooms, nil
}

// LoadRoomLayout reads and parses a room layout file.
func LoadRoomLayout(path string) ([]*Room, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening room layout %s: %w", path, err)
	}
	defer f.Close()
	return ParseRoomLayout(f)
}

// EmptySpotMarker is the item token meaning a search spot holds nothing.
const EmptySpotMarker = "Empty"

// ApplySearchSpots reads line-oriented search-spot definitions and attaches
// them to the world's rooms.
//
// Each line is `<room-index> <spot-name> <item-identifier-or-"Empty">`.
// Item identifiers resolve through reg; spots on unknown rooms are an error.
//
// Postcondition: every parsed spot is appended to its room in line order, or
// a non-nil error names the offending line.
func ApplySearchSpots(w *World, r io.Reader, reg *item.Registry) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return fmt.Errorf("search spots line %d: want `<room-index> <spot> <item|%s>`, got %q", lineNo, EmptySpotMarker, line)
		}
		room, ok := w.Room(fields[0])
		if !ok {
			return fmt.Errorf("search spots line %d: room %q not found", lineNo, fields[0])
		}
		var hidden *item.Item
		if !strings.EqualFold(fields[2], EmptySpotMarker) {
			def, ok := reg.Def(fields[2])
			if !ok {
				return fmt.Errorf("search spots line %d: unknown item %q", lineNo, fields[2])
			}
			hidden = item.New(def)
		}
		room.AddSearchSpot(NewSearchSpot(fields[1], hidden))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading search spots: %w", err)
	}
	return nil
}

// LoadSearchSpots reads and applies a search-spot definition file.
func LoadSearchSpots(w *World, path string, reg *item.Registry) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening search spots %s: %w", path, err)
	}
	defer f.Close()
	return ApplySearchSpots(w, f, reg)
}
