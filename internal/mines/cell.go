package mines

import "fmt"

// Point addresses a cell by its row and column.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Cell is a single square of a [Grid]. Position, mine and adjacency are fixed
// when the grid is built; only the player-facing marks change afterwards.
type Cell struct {
	row, col int
	mine     bool
	adjacent int

	revealed bool
	flagged  bool
	clicked  bool
}

func (c *Cell) Row() int           { return c.row }
func (c *Cell) Col() int           { return c.col }
func (c *Cell) Point() Point       { return Point{c.row, c.col} }
func (c *Cell) IsMine() bool       { return c.mine }
func (c *Cell) AdjacentMines() int { return c.adjacent }
func (c *Cell) IsRevealed() bool   { return c.revealed }
func (c *Cell) IsFlagged() bool    { return c.flagged }
func (c *Cell) IsClicked() bool    { return c.clicked }

// IsEmpty reports whether the cell is safe and has no mined neighbours.
// Opening an empty cell floods into its neighbourhood.
func (c *Cell) IsEmpty() bool {
	return c.adjacent == 0 && !c.mine
}

// Reveal opens the cell and drops its flag. It reports whether the cell was
// closed before the call.
func (c *Cell) Reveal() bool {
	if c.revealed {
		return false
	}
	c.revealed = true
	c.flagged = false
	return true
}

// ToggleFlag flips the flag on a closed cell. Open cells are left alone and
// false is returned.
func (c *Cell) ToggleFlag() bool {
	if c.revealed {
		return false
	}
	c.flagged = !c.flagged
	return true
}

func (c *Cell) SetClicked(clicked bool) {
	c.clicked = clicked
}
