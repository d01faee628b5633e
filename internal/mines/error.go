package mines

import "errors"

var (
	// ErrInvalidConfiguration is returned when a board cannot be built from
	// the requested parameters. No grid is produced.
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("cell out of bounds")
)
