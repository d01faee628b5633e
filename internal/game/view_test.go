package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/sweeper/internal/mines"
)

func TestCellStateString(t *testing.T) {
	testCases := []struct {
		state CellState
		want  string
	}{
		{Unknown, "-"},
		{Flagged, "F"},
		{CorrectlyFlagged, "F"},
		{ExplodedMine, "X"},
		{FalselyFlagged, "x"},
		{UnflaggedMine, "*"},
		{0, "."},
		{1, "1"},
		{8, "8"},
		{9, "!"},
	}
	for _, test := range testCases {
		assert.Equal(t, test.want, test.state.String())
	}
}

func TestPlayerGridInProgress(t *testing.T) {
	// * 1 .
	// 1 1 .
	c := newTestController(t, 2, 3, mines.Point{Row: 0, Col: 0})
	_, err := c.ToggleFlag(0, 0)
	require.NoError(t, err)
	_, err = c.Reveal(1, 1)
	require.NoError(t, err)

	grid := c.PlayerGrid()
	assert.Equal(t, PlayerGrid{Flagged, Unknown, Unknown, Unknown, 1, Unknown}, grid)
	assert.Equal(t, "F - - \n- 1 - \n", grid.ToString(3))
}

func TestPlayerGridJSON(t *testing.T) {
	c := newTestController(t, 1, 2, mines.Point{Row: 0, Col: 1})
	_, err := c.Reveal(0, 0)
	require.NoError(t, err)

	data, err := json.Marshal(struct {
		Grid   PlayerGrid `json:"grid"`
		Status Status     `json:"status"`
	}{c.PlayerGrid(), c.Status()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"grid":[1,67],"status":"won"}`, string(data))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "in_progress", InProgress.String())
	assert.Equal(t, "won", Won.String())
	assert.Equal(t, "lost", Lost.String())
	assert.False(t, InProgress.Over())
	assert.True(t, Won.Over())
	assert.True(t, Lost.Over())

	for _, status := range []Status{InProgress, Won, Lost} {
		text, err := status.MarshalText()
		require.NoError(t, err)
		var back Status
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, status, back)
	}
	var s Status
	assert.Error(t, s.UnmarshalText([]byte("paused")))
}
