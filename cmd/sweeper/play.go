package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vancomm/sweeper/internal/game"
)

var playFlags struct {
	height, width, mines int
	safe                 bool
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play a game by typing commands, one per line:

  o row col  - open a cell
  f row col  - toggle a flag
  c row col  - chord around an open number
  g          - show the board again
  q          - give up
  n          - new game on the same board size

Rows and columns count from 0. Ctrl+D quits.

Examples:
  sweeper play
  sweeper play --height 16 --width 30 --mines 99 --safe`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playFlags.height, "height", 0, "board height (default from config)")
	playCmd.Flags().IntVar(&playFlags.width, "width", 0, "board width (default from config)")
	playCmd.Flags().IntVar(&playFlags.mines, "mines", 0, "mine count (default from config)")
	playCmd.Flags().BoolVar(&playFlags.safe, "safe", false, "never lose on the first click")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, flagVerbose); err != nil {
		return err
	}

	g := cfg.Game
	flags := cmd.Flags()
	if flags.Changed("height") {
		g.Height = playFlags.height
	}
	if flags.Changed("width") {
		g.Width = playFlags.width
	}
	if flags.Changed("mines") {
		g.MineCount = playFlags.mines
	}
	if flags.Changed("safe") {
		g.SafeFirstClick = playFlags.safe
	}

	c := game.NewController(newRand(), game.WithSafeFirstClick(g.SafeFirstClick))
	if err := c.Restart(g.Height, g.Width, g.MineCount); err != nil {
		return err
	}
	return playLoop(cmd.InOrStdin(), cmd.OutOrStdout(), c)
}

// playLoop reads commands from in until it is exhausted and draws the board
// to out after every one.
func playLoop(in io.Reader, out io.Writer, c *game.Controller) error {
	drawBoard(out, c)
	scanner := bufio.NewScanner(in)
	for fmt.Fprint(out, "> "); scanner.Scan(); fmt.Fprint(out, "> ") {
		if err := game.Execute(c, scanner.Text()); err != nil {
			fmt.Fprintln(out, "error:", err)
			continue
		}
		drawBoard(out, c)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}

func drawBoard(out io.Writer, c *game.Controller) {
	p := c.Params()
	fmt.Fprint(out, c.PlayerGrid().ToString(p.Width))
	fmt.Fprintf(out, "%s  flags left: %d  status: %s\n", p.Seed(), c.FlagsRemaining(), c.Status())
	switch c.Status() {
	case game.Won:
		fmt.Fprintln(out, "you won! n for a new game")
	case game.Lost:
		fmt.Fprintln(out, "boom. n for a new game")
	}
}
