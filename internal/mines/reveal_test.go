package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealFromFloodsToBorder(t *testing.T) {
	// 5x5 with a single mine at index 12: the outer ring is empty, the
	// inner ring is all ones.
	g, err := FromLayout(5, 5, Point{2, 2})
	require.NoError(t, err)

	start, _ := g.At(0, 0)
	require.True(t, start.IsEmpty())

	opened, err := RevealFrom(g, 0, 0)
	require.NoError(t, err)
	assert.Len(t, opened, 24)
	assert.Equal(t, 24, g.RevealedCount())

	mine, _ := g.At(2, 2)
	assert.False(t, mine.IsRevealed())

	seen := make(map[Point]bool)
	for _, p := range opened {
		assert.False(t, seen[p], "cell %s opened twice", p)
		seen[p] = true
	}
}

func TestRevealFromStopsAtNumbers(t *testing.T) {
	// . . 1 *
	// . . 1 1
	// . . . .
	g, err := FromLayout(3, 4, Point{0, 3})
	require.NoError(t, err)

	opened, err := RevealFrom(g, 2, 0)
	require.NoError(t, err)
	assert.Len(t, opened, 11)

	mine, _ := g.At(0, 3)
	assert.False(t, mine.IsRevealed())
}

func TestRevealFromNumberedCell(t *testing.T) {
	g, err := FromLayout(3, 3, Point{0, 0})
	require.NoError(t, err)

	opened, err := RevealFrom(g, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 1}}, opened)
	assert.Equal(t, 1, g.RevealedCount())
}

func TestRevealFromMine(t *testing.T) {
	g, err := FromLayout(3, 3, Point{1, 1})
	require.NoError(t, err)

	opened, err := RevealFrom(g, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []Point{{1, 1}}, opened)
	assert.Equal(t, 1, g.RevealedCount())
}

func TestRevealFromRespectsFlags(t *testing.T) {
	g, err := FromLayout(1, 5, Point{0, 4})
	require.NoError(t, err)

	flagged, _ := g.At(0, 1)
	flagged.ToggleFlag()

	opened, err := RevealFrom(g, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, []Point{{0, 0}}, opened)
	assert.True(t, flagged.IsFlagged())
	assert.False(t, flagged.IsRevealed())

	opened, err = RevealFrom(g, 0, 1)
	require.NoError(t, err)
	assert.Empty(t, opened, "flagged start cell must not open")
}

func TestRevealFromIsIdempotent(t *testing.T) {
	g, err := FromLayout(4, 4, Point{3, 3})
	require.NoError(t, err)

	first, err := RevealFrom(g, 0, 0)
	require.NoError(t, err)
	require.NotEmpty(t, first)
	before := g.RevealedCount()

	for _, p := range first {
		again, err := RevealFrom(g, p.Row, p.Col)
		require.NoError(t, err)
		assert.Empty(t, again)
	}
	assert.Equal(t, before, g.RevealedCount())
}

func TestRevealFromOutOfBounds(t *testing.T) {
	g, err := FromLayout(2, 2)
	require.NoError(t, err)

	_, err = RevealFrom(g, 2, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestRevealFromLargeBoard(t *testing.T) {
	g, err := FromLayout(500, 500)
	require.NoError(t, err)

	opened, err := RevealFrom(g, 250, 250)
	require.NoError(t, err)
	assert.Len(t, opened, 500*500)
}
