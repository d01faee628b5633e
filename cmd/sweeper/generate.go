package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vancomm/sweeper/internal/mines"
)

var generateFlags struct {
	height, width, mines int
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a generated board",
	Long: `Generate a board and print it in full: mines as '*', empty cells as '.',
everything else as the number of mined neighbours.

Examples:
  sweeper generate
  sweeper generate --height 16 --width 30 --mines 99 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&generateFlags.height, "height", 0, "board height (default from config)")
	generateCmd.Flags().IntVar(&generateFlags.width, "width", 0, "board width (default from config)")
	generateCmd.Flags().IntVar(&generateFlags.mines, "mines", 0, "mine count (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := setupLogging(cfg, flagVerbose); err != nil {
		return err
	}

	p := mines.Params{
		Height:    cfg.Game.Height,
		Width:     cfg.Game.Width,
		MineCount: cfg.Game.MineCount,
	}
	flags := cmd.Flags()
	if flags.Changed("height") {
		p.Height = generateFlags.height
	}
	if flags.Changed("width") {
		p.Width = generateFlags.width
	}
	if flags.Changed("mines") {
		p.MineCount = generateFlags.mines
	}

	grid, err := mines.Generate(p, nil, newRand())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), p.Seed())
	fmt.Fprint(cmd.OutOrStdout(), grid.String())
	return nil
}
