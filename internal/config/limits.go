package config

import (
	"errors"
	"fmt"
)

var ErrPolicy = errors.New("board outside allowed limits")

// Limits bounds the boards players may ask for. The engine accepts any
// board it can physically build; these are product rules on top.
type Limits struct {
	MinHeight int `json:"min_height" yaml:"min_height"`
	MaxHeight int `json:"max_height" yaml:"max_height"`
	MinWidth  int `json:"min_width" yaml:"min_width"`
	MaxWidth  int `json:"max_width" yaml:"max_width"`
	MinMines  int `json:"min_mines" yaml:"min_mines"`
	// MineRatio caps the mine count at size/MineRatio.
	MineRatio int `json:"mine_ratio" yaml:"mine_ratio"`
}

func DefaultLimits() Limits {
	return Limits{
		MinHeight: 5,
		MaxHeight: 18,
		MinWidth:  5,
		MaxWidth:  30,
		MinMines:  1,
		MineRatio: 3,
	}
}

func (l Limits) MaxMines(height, width int) int {
	if l.MineRatio <= 0 {
		return height * width
	}
	return height * width / l.MineRatio
}

func (l Limits) Validate(height, width, mineCount int) error {
	switch {
	case height < l.MinHeight || height > l.MaxHeight:
		return fmt.Errorf(
			"%w: height %d not in [%d, %d]", ErrPolicy, height, l.MinHeight, l.MaxHeight,
		)
	case width < l.MinWidth || width > l.MaxWidth:
		return fmt.Errorf(
			"%w: width %d not in [%d, %d]", ErrPolicy, width, l.MinWidth, l.MaxWidth,
		)
	}
	if maxMines := l.MaxMines(height, width); mineCount < l.MinMines || mineCount > maxMines {
		return fmt.Errorf(
			"%w: mine count %d not in [%d, %d]", ErrPolicy, mineCount, l.MinMines, maxMines,
		)
	}
	return nil
}
