package game

import (
	"strconv"
	"strings"

	"github.com/vancomm/sweeper/internal/mines"
)

// CellState is what a player may know about a cell.
type CellState int8

const (
	Unknown          CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * Values 0 to 8 mean the cell is open and has that many mined
	 * neighbours. The values from 64 up only appear once the game is
	 * over and the board has been disclosed.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "-"
	case s == Flagged, s == CorrectlyFlagged:
		return "F"
	case s == ExplodedMine:
		return "X"
	case s == FalselyFlagged:
		return "x"
	case s == UnflaggedMine:
		return "*"
	case s == 0:
		return "."
	case 0 < s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type PlayerGrid []CellState

func (g PlayerGrid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			b.WriteString(g[y*width+x].String() + " ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// PlayerGrid renders the session the way the player sees it, row by row.
func (c *Controller) PlayerGrid() PlayerGrid {
	if c.grid == nil {
		return nil
	}
	grid := make(PlayerGrid, 0, c.grid.Size())
	for cell := range c.grid.Cells() {
		grid = append(grid, c.cellState(cell))
	}
	return grid
}

func (c *Controller) cellState(cell *mines.Cell) CellState {
	p := cell.Point()
	switch {
	case !cell.IsRevealed() && cell.IsFlagged():
		return Flagged
	case !cell.IsRevealed():
		return Unknown
	case cell.IsMine() && c.exploded != nil && *c.exploded == p:
		return ExplodedMine
	case cell.IsMine() && c.finalFlags[p]:
		return CorrectlyFlagged
	case cell.IsMine():
		return UnflaggedMine
	case c.finalFlags[p]:
		return FalselyFlagged
	default:
		return CellState(cell.AdjacentMines())
	}
}
