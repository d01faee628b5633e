package main

import (
	"bytes"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sweeper/internal/game"
	"github.com/vancomm/sweeper/internal/mines"
)

func TestPlayLoop(t *testing.T) {
	grid, err := mines.FromLayout(2, 3, mines.Point{Row: 0, Col: 0})
	require.NoError(t, err)
	c := game.NewController(rand.New(rand.NewPCG(1, 2)))
	c.RestartWith(grid)

	var out bytes.Buffer
	in := strings.NewReader("f 0 0\nx\no 1 2\no 1 0\n")
	require.NoError(t, playLoop(in, &out, c))

	text := out.String()
	assert.Contains(t, text, "- - - \n- - - \n2:3:1  flags left: 1  status: in_progress\n")
	assert.Contains(t, text, "F - - \n- - - \n2:3:1  flags left: 0  status: in_progress\n")
	assert.Contains(t, text, "error: unknown command")
	assert.Contains(t, text, "F 1 . \n- 1 . \n2:3:1  flags left: 0  status: in_progress\n")
	assert.Contains(t, text, "F 1 . \n1 1 . \n2:3:1  flags left: 0  status: won\n")
	assert.Contains(t, text, "you won!")
	assert.Equal(t, game.Won, c.Status())
}
