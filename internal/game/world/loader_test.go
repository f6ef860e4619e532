package world

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmoritz/blackwood/internal/game/item"
)

const layoutFixture = `
0 Enter_Hall 1
1 Library 0 2
2 Cellar 1
`

func TestParseRoomLayout(t *testing.T) {
	rooms, err := ParseRoomLayout(strings.NewReader(layoutFixture))
	require.NoError(t, err)
	require.Len(t, rooms, 3)

	assert.Equal(t, "0", rooms[0].ID)
	assert.Equal(t, "Enter_Hall", rooms[0].Name)
	assert.Equal(t, []string{"1"}, rooms[0].Neighbors)
	assert.Equal(t, []string{"0", "2"}, rooms[1].Neighbors)
}

func TestParseRoomLayoutRejectsBadLines(t *testing.T) {
	cases := map[string]string{
		"missing name": "0\n",
		"bad index":    "zero Hall\n",
		"out of order": "1 Hall\n",
		"bad neighbor": "0 Hall x\n",
		"empty":        "\n\n",
	}
	for name, input := range cases {
		_, err := ParseRoomLayout(strings.NewReader(input))
		assert.Error(t, err, name)
	}
}

func TestApplySearchSpots(t *testing.T) {
	rooms, err := ParseRoomLayout(strings.NewReader(layoutFixture))
	require.NoError(t, err)
	w, err := New(rooms)
	require.NoError(t, err)

	reg, err := item.NewRegistry([]*item.Def{
		{ID: "bandage", Name: "Bandage", Kind: item.KindConsumable, HealAmount: 25},
	})
	require.NoError(t, err)

	spots := `
0 Desk bandage
1 Shelf Empty
`
	require.NoError(t, ApplySearchSpots(w, strings.NewReader(spots), reg))

	hall, _ := w.Room("0")
	require.Len(t, hall.SearchSpots(), 1)
	found, ok := hall.TrySearch("Desk", nil, nil)
	require.True(t, ok)
	assert.Equal(t, "Bandage", found.Name())

	library, _ := w.Room("1")
	found, ok = library.TrySearch("Shelf", nil, nil)
	assert.True(t, ok)
	assert.Nil(t, found, "Empty marker means the spot holds nothing")
}

func TestApplySearchSpotsErrors(t *testing.T) {
	rooms, _ := ParseRoomLayout(strings.NewReader(layoutFixture))
	w, _ := New(rooms)
	reg, _ := item.NewRegistry(nil)

	assert.Error(t, ApplySearchSpots(w, strings.NewReader("9 Desk Empty\n"), reg), "unknown room")
	assert.Error(t, ApplySearchSpots(w, strings.NewReader("0 Desk ghost_item\n"), reg), "unknown item")
	assert.Error(t, ApplySearchSpots(w, strings.NewReader("0 Desk\n"), reg), "missing item column")
}
