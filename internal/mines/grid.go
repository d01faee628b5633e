package mines

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

// Grid is a height x width board of cells stored row by row, so the cell at
// row, col lives at index row*width + col.
type Grid struct {
	height, width int
	cells         []Cell
}

// newGrid lays out cells over a flat mine map and counts every cell's mined
// neighbours once.
func newGrid(height, width int, mines []bool) *Grid {
	g := &Grid{
		height: height,
		width:  width,
		cells:  make([]Cell, height*width),
	}
	for i := range g.cells {
		g.cells[i] = Cell{row: i / width, col: i % width, mine: mines[i]}
	}
	for i := range g.cells {
		n := 0
		for j := range g.neighbours(i) {
			if mines[j] {
				n++
			}
		}
		g.cells[i].adjacent = n
	}
	return g
}

// FromLayout builds a grid with mines at exactly the given points.
func FromLayout(height, width int, mines ...Point) (*Grid, error) {
	p := Params{Height: height, Width: width, MineCount: len(mines)}
	if err := p.Validate(nil); err != nil {
		return nil, err
	}
	layout := make([]bool, height*width)
	for _, m := range mines {
		if !p.InBounds(m.Row, m.Col) {
			return nil, fmt.Errorf("%w: mine at %s", ErrOutOfBounds, m)
		}
		i := m.Row*width + m.Col
		if layout[i] {
			return nil, fmt.Errorf("%w: duplicate mine at %s", ErrInvalidConfiguration, m)
		}
		layout[i] = true
	}
	return newGrid(height, width, layout), nil
}

func (g *Grid) Height() int { return g.height }
func (g *Grid) Width() int  { return g.width }
func (g *Grid) Size() int   { return len(g.cells) }

func (g *Grid) InBounds(row, col int) bool {
	return 0 <= row && row < g.height && 0 <= col && col < g.width
}

// At returns the cell at row, col or an error wrapping [ErrOutOfBounds].
func (g *Grid) At(row, col int) (*Cell, error) {
	if !g.InBounds(row, col) {
		return nil, fmt.Errorf(
			"%w: %d:%d not in %dx%d grid", ErrOutOfBounds, row, col, g.height, g.width,
		)
	}
	return &g.cells[row*g.width+col], nil
}

// Cells yields every cell in row-major order.
func (g *Grid) Cells() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for i := range g.cells {
			if !yield(&g.cells[i]) {
				return
			}
		}
	}
}

// Neighbours yields the up to eight cells surrounding row, col.
func (g *Grid) Neighbours(row, col int) iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		if !g.InBounds(row, col) {
			return
		}
		for j := range g.neighbours(row*g.width + col) {
			if !yield(&g.cells[j]) {
				return
			}
		}
	}
}

func (g *Grid) neighbours(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		row, col := i/g.width, i%g.width
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				r, c := row+dr, col+dc
				if (dr == 0 && dc == 0) || !g.InBounds(r, c) {
					continue
				}
				if !yield(r*g.width + c) {
					return
				}
			}
		}
	}
}

func (g *Grid) MineCount() (count int) {
	for i := range g.cells {
		if g.cells[i].mine {
			count++
		}
	}
	return
}

func (g *Grid) RevealedCount() (count int) {
	for i := range g.cells {
		if g.cells[i].revealed {
			count++
		}
	}
	return
}

func (g *Grid) FlaggedCount() (count int) {
	for i := range g.cells {
		if g.cells[i].flagged {
			count++
		}
	}
	return
}

// RevealAll opens every closed cell, mines included, and returns the points
// that changed.
func (g *Grid) RevealAll() []Point {
	var opened []Point
	for i := range g.cells {
		if g.cells[i].Reveal() {
			opened = append(opened, g.cells[i].Point())
		}
	}
	return opened
}

// String draws the whole board regardless of what the player has opened:
// mines as '*', empty cells as '.', otherwise the neighbour count.
func (g *Grid) String() string {
	var b strings.Builder
	for row := range g.height {
		for col := range g.width {
			c := &g.cells[row*g.width+col]
			switch {
			case c.mine:
				b.WriteString("* ")
			case c.adjacent == 0:
				b.WriteString(". ")
			default:
				b.WriteString(strconv.Itoa(c.adjacent) + " ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Snapshot copies every cell in row-major order.
func (g *Grid) Snapshot() []Cell {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return cells
}
