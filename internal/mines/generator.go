package mines

import (
	"fmt"
	"strings"
)

// Params describes a board: its size and how many mines it holds.
type Params struct {
	Height, Width, MineCount int
}

func (p Params) Unpack() (h int, w int, mc int) {
	return p.Height, p.Width, p.MineCount
}

func (p Params) Size() int {
	return p.Height * p.Width
}

func (p Params) InBounds(row, col int) bool {
	return 0 <= row && row < p.Height && 0 <= col && col < p.Width
}

// Validate checks the board can be generated. When safe is not nil the cell
// it names must be on the board and one cell is kept free of mines for it.
func (p Params) Validate(safe *Point) error {
	height, width, mineCount := p.Unpack()
	switch {
	case height < 1:
		return fmt.Errorf("%w: height %d < 1", ErrInvalidConfiguration, height)
	case width < 1:
		return fmt.Errorf("%w: width %d < 1", ErrInvalidConfiguration, width)
	case mineCount < 0:
		return fmt.Errorf("%w: negative mine count %d", ErrInvalidConfiguration, mineCount)
	}
	available := p.Size()
	if safe != nil {
		if !p.InBounds(safe.Row, safe.Col) {
			return fmt.Errorf("%w: safe cell %s", ErrOutOfBounds, *safe)
		}
		available--
	}
	if mineCount > available {
		return fmt.Errorf(
			"%w: %d mines do not fit in %d free cells",
			ErrInvalidConfiguration, mineCount, available,
		)
	}
	return nil
}

// Seed encodes the params as "height:width:mines".
func (p Params) Seed() string {
	return fmt.Sprintf("%d:%d:%d", p.Height, p.Width, p.MineCount)
}

func ParseSeed(seed string) (*Params, error) {
	p := &Params{}
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(sseed, "%d %d %d", &p.Height, &p.Width, &p.MineCount)
	if n != 3 || err != nil {
		return nil, fmt.Errorf(
			`%w: bad params seed (seed = "%s", n = %d, err = %v)`,
			ErrInvalidConfiguration, seed, n, err,
		)
	}
	return p, nil
}
