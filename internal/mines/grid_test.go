package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridAt(t *testing.T) {
	g, err := FromLayout(2, 3)
	require.NoError(t, err)

	c, err := g.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, Point{1, 2}, c.Point())

	for _, p := range []Point{{-1, 0}, {0, -1}, {2, 0}, {0, 3}} {
		_, err := g.At(p.Row, p.Col)
		assert.ErrorIs(t, err, ErrOutOfBounds, "point %s", p)
	}
}

func TestGridNeighbours(t *testing.T) {
	g, err := FromLayout(3, 3)
	require.NoError(t, err)

	count := func(row, col int) (n int) {
		for range g.Neighbours(row, col) {
			n++
		}
		return
	}
	assert.Equal(t, 3, count(0, 0))
	assert.Equal(t, 5, count(0, 1))
	assert.Equal(t, 8, count(1, 1))
	assert.Equal(t, 0, count(3, 3))
}

func TestCellFlagAndReveal(t *testing.T) {
	g, err := FromLayout(1, 2, Point{0, 1})
	require.NoError(t, err)
	c, _ := g.At(0, 0)

	assert.True(t, c.ToggleFlag())
	assert.True(t, c.IsFlagged())
	assert.True(t, c.ToggleFlag())
	assert.False(t, c.IsFlagged())

	c.ToggleFlag()
	assert.True(t, c.Reveal())
	assert.True(t, c.IsRevealed())
	assert.False(t, c.IsFlagged(), "open cells never carry a flag")
	assert.False(t, c.Reveal())
	assert.False(t, c.ToggleFlag())
	assert.False(t, c.IsFlagged())
}

func TestGridRevealAll(t *testing.T) {
	g, err := FromLayout(2, 2, Point{1, 1})
	require.NoError(t, err)
	c, _ := g.At(0, 0)
	c.Reveal()
	f, _ := g.At(1, 1)
	f.ToggleFlag()

	opened := g.RevealAll()
	assert.Len(t, opened, 3)
	assert.Equal(t, 4, g.RevealedCount())
	assert.Zero(t, g.FlaggedCount())
}
