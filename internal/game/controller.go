package game

import (
	"errors"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/sweeper/internal/mines"
)

var Log = logrus.New()

var ErrNoSession = errors.New("no game in progress, restart first")

// MoveResult lists the cells a move opened and the status after it.
type MoveResult struct {
	Opened []mines.Point `json:"opened"`
	Status Status        `json:"status"`
}

// FlagResult describes the cell a flag toggle targeted.
type FlagResult struct {
	Cell           mines.Point `json:"cell"`
	Flagged        bool        `json:"flagged"`
	FlagsRemaining int         `json:"flags_remaining"`
}

type Option func(*Controller)

// WithSafeFirstClick makes the first opened cell of every game mine-free.
func WithSafeFirstClick(safe bool) Option {
	return func(c *Controller) {
		c.safeFirstClick = safe
	}
}

// Controller owns a single game session: its grid, the flag counter and the
// status. It is not safe for concurrent use; callers serialize moves.
type Controller struct {
	rnd            *rand.Rand
	safeFirstClick bool

	round          int
	params         mines.Params
	grid           *mines.Grid
	status         Status
	flagsRemaining int
	started        bool
	clicked        *mines.Cell
	exploded       *mines.Point
	finalFlags     map[mines.Point]bool
}

// NewController returns a controller with no session. A nil r is replaced by
// [mines.NewRand].
func NewController(r *rand.Rand, opts ...Option) *Controller {
	if r == nil {
		r = mines.NewRand()
	}
	c := &Controller{rnd: r}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Restart throws the current session away and starts a new one on a freshly
// generated board. On error the current session is left untouched.
func (c *Controller) Restart(height, width, mineCount int) error {
	params := mines.Params{Height: height, Width: width, MineCount: mineCount}
	grid, err := mines.Generate(params, nil, c.rnd)
	if err != nil {
		return err
	}
	c.reset(params, grid)
	return nil
}

// RestartWith starts a new session on a prepared grid.
func (c *Controller) RestartWith(grid *mines.Grid) {
	c.reset(mines.Params{
		Height:    grid.Height(),
		Width:     grid.Width(),
		MineCount: grid.MineCount(),
	}, grid)
}

func (c *Controller) reset(params mines.Params, grid *mines.Grid) {
	c.round++
	c.params = params
	c.grid = grid
	c.status = InProgress
	c.flagsRemaining = params.MineCount
	c.started = false
	c.clicked = nil
	c.exploded = nil
	c.finalFlags = nil

	Log.WithFields(logrus.Fields{
		"params":         params.Seed(),
		"safeFirstClick": c.safeFirstClick,
	}).Debug("new game")
}

// Round counts the games started on c, so it changes on every restart.
func (c *Controller) Round() int { return c.round }

func (c *Controller) Params() mines.Params { return c.params }
func (c *Controller) Status() Status       { return c.status }
func (c *Controller) FlagsRemaining() int  { return c.flagsRemaining }

// Exploded returns the mine that ended the game, if any.
func (c *Controller) Exploded() (mines.Point, bool) {
	if c.exploded == nil {
		return mines.Point{}, false
	}
	return *c.exploded, true
}

func (c *Controller) RevealedCount() int {
	if c.grid == nil {
		return 0
	}
	return c.grid.RevealedCount()
}

// Snapshot copies the full grid, hidden cells included.
func (c *Controller) Snapshot() []mines.Cell {
	if c.grid == nil {
		return nil
	}
	return c.grid.Snapshot()
}

func (c *Controller) cell(row, col int) (*mines.Cell, error) {
	if c.grid == nil {
		return nil, ErrNoSession
	}
	return c.grid.At(row, col)
}

func (c *Controller) click(cell *mines.Cell) {
	if c.clicked != nil {
		c.clicked.SetClicked(false)
	}
	cell.SetClicked(true)
	c.clicked = cell
}

// Reveal opens the cell at row, col. Opening a mine loses the game and
// discloses the whole board; opening the last safe cell wins it. Moves on a
// finished game or on an open or flagged cell change nothing but the click
// marker.
func (c *Controller) Reveal(row, col int) (*MoveResult, error) {
	cell, err := c.cell(row, col)
	if err != nil {
		return nil, err
	}
	if c.status == InProgress && !c.started && c.safeFirstClick && cell.IsMine() {
		cell = c.moveMinesAway(cell.Point())
	}
	c.click(cell)

	res := &MoveResult{Status: c.status}
	if c.status != InProgress || cell.IsRevealed() || cell.IsFlagged() {
		return res, nil
	}
	res.Opened = c.open(cell)
	res.Status = c.status
	return res, nil
}

// open reveals a closed, unflagged cell of a running game and settles the
// status afterwards.
func (c *Controller) open(cell *mines.Cell) []mines.Point {
	c.started = true

	if cell.IsMine() {
		p := cell.Point()
		c.exploded = &p
		return c.finish(Lost)
	}

	opened, _ := mines.RevealFrom(c.grid, cell.Row(), cell.Col())

	if c.grid.RevealedCount() >= c.params.Size()-c.params.MineCount {
		opened = append(opened, c.finish(Won)...)
	}
	return opened
}

func (c *Controller) finish(status Status) []mines.Point {
	c.status = status
	c.finalFlags = make(map[mines.Point]bool)
	for cell := range c.grid.Cells() {
		if cell.IsFlagged() {
			c.finalFlags[cell.Point()] = true
		}
	}

	Log.WithFields(logrus.Fields{
		"params":   c.params.Seed(),
		"status":   status,
		"revealed": c.grid.RevealedCount(),
	}).Debug("game over")

	return c.grid.RevealAll()
}

// moveMinesAway regenerates the board so that p holds no mine, carrying the
// player's flags over. If the board has no room to spare, it is kept as is.
func (c *Controller) moveMinesAway(p mines.Point) *mines.Cell {
	grid, err := mines.Generate(c.params, &p, c.rnd)
	if err != nil {
		Log.WithError(err).Warn("unable to keep first click safe")
		cell, _ := c.grid.At(p.Row, p.Col)
		return cell
	}
	for old := range c.grid.Cells() {
		if old.IsFlagged() {
			cell, _ := grid.At(old.Row(), old.Col())
			cell.ToggleFlag()
		}
	}
	c.grid = grid
	c.clicked = nil
	cell, _ := grid.At(p.Row, p.Col)
	return cell
}

// ToggleFlag flips the flag on a closed cell and moves the flags-remaining
// counter by one. The counter is informational and may go negative.
func (c *Controller) ToggleFlag(row, col int) (*FlagResult, error) {
	cell, err := c.cell(row, col)
	if err != nil {
		return nil, err
	}
	if c.status == InProgress && cell.ToggleFlag() {
		if cell.IsFlagged() {
			c.flagsRemaining--
		} else {
			c.flagsRemaining++
		}
	}
	return &FlagResult{
		Cell:           cell.Point(),
		Flagged:        cell.IsFlagged(),
		FlagsRemaining: c.flagsRemaining,
	}, nil
}

// Chord opens every closed, unflagged neighbour of an open numbered cell once
// the player has flagged as many neighbours as the number says.
func (c *Controller) Chord(row, col int) (*MoveResult, error) {
	cell, err := c.cell(row, col)
	if err != nil {
		return nil, err
	}
	c.click(cell)

	res := &MoveResult{Status: c.status}
	if c.status != InProgress || !cell.IsRevealed() || cell.IsMine() || cell.AdjacentMines() == 0 {
		return res, nil
	}

	var (
		flags   int
		targets []*mines.Cell
	)
	for n := range c.grid.Neighbours(row, col) {
		switch {
		case n.IsFlagged():
			flags++
		case !n.IsRevealed():
			targets = append(targets, n)
		}
	}
	if flags != cell.AdjacentMines() {
		return res, nil
	}

	for _, n := range targets {
		if n.IsRevealed() {
			continue
		}
		res.Opened = append(res.Opened, c.open(n)...)
		if c.status != InProgress {
			break
		}
	}
	res.Status = c.status
	return res, nil
}

// Forfeit gives the game up: a running game is lost and fully disclosed.
func (c *Controller) Forfeit() (*MoveResult, error) {
	if c.grid == nil {
		return nil, ErrNoSession
	}
	res := &MoveResult{Status: c.status}
	if c.status == InProgress {
		c.started = true
		res.Opened = c.finish(Lost)
		res.Status = c.status
	}
	return res, nil
}
