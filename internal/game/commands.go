package game

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadArguments   = errors.New("bad command arguments")
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get
	"o": 2, // open row col
	"f": 2, // flag row col
	"c": 2, // chord row col
	"q": 0, // forfeit
	"n": 0, // new game with the same params
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = fmt.Errorf("%w: row must be an int", ErrBadArguments)
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = fmt.Errorf("%w: col must be an int", ErrBadArguments)
		return
	}
	return
}

// Execute runs a single command against c. Blank commands do nothing.
//
//	g          // get, no change
//	o row col  // open a cell
//	f row col  // toggle a flag
//	c row col  // chord around an open cell
//	q          // forfeit
//	n          // restart with the current params
func Execute(c *Controller, command string) (err error) {
	parts := strings.Fields(command)
	if len(parts) == 0 {
		return nil
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return fmt.Errorf(
			"%w: %q takes %d arguments, got %d",
			ErrBadArguments, parts[0], nargs, len(parts)-1,
		)
	}

	switch parts[0] {
	case "g":
		if c.grid == nil {
			return ErrNoSession
		}
	case "o":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		_, err = c.Reveal(row, col)
		return err
	case "f":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		_, err = c.ToggleFlag(row, col)
		return err
	case "c":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return err
		}
		_, err = c.Chord(row, col)
		return err
	case "q":
		_, err = c.Forfeit()
	case "n":
		if c.grid == nil {
			return ErrNoSession
		}
		err = c.Restart(c.params.Unpack())
	}
	return
}

// ExecuteAll runs newline-separated commands in order and stops early once
// the game is over. On failure it returns the zero-based line of the
// offending command.
func ExecuteAll(c *Controller, text string) (line int, err error) {
	for i, command := range byPiece(strings.TrimSpace(text), "\n") {
		if err := Execute(c, command); err != nil {
			return i, err
		}
		if c.status.Over() {
			break
		}
	}
	return -1, nil
}

func byPiece(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}
