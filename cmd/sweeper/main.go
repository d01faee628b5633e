// sweeper runs minesweeper games.
//
// Usage:
//
//	sweeper serve      - Serve games over HTTP and WebSocket
//	sweeper play       - Play in the terminal
//	sweeper generate   - Print a generated board
//
// Global flags:
//
//	-c, --config <path>  - JSON or YAML config file
//	--seed <value>       - RNG seed for reproducible boards (0 = random)
//	-v, --verbose        - Log engine activity in play and generate
package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vancomm/sweeper/internal/config"
	"github.com/vancomm/sweeper/internal/game"
	"github.com/vancomm/sweeper/internal/mines"
	"github.com/vancomm/sweeper/internal/server"
)

var (
	log = logrus.New()

	flagConfig  string
	flagSeed    uint64
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sweeper",
	Short: "Minesweeper server and terminal game",
	Long: `sweeper generates minesweeper boards and runs games on them, either
for remote players over HTTP/WebSocket or right here in the terminal.

Examples:
  sweeper serve -c /run/config.json
  sweeper play --height 16 --width 30 --mines 99 --safe
  sweeper generate --height 9 --width 9 --mines 10 --seed 42`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log engine activity")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
}

func loggers() []*logrus.Logger {
	return []*logrus.Logger{log, mines.Log, game.Log, server.Log}
}

func loadConfig() (*config.Config, error) {
	return config.Load(flagConfig)
}

// setupLogging applies the config to every logger. Terminal commands stay
// quiet unless asked to be verbose.
func setupLogging(cfg *config.Config, verbose bool) error {
	if verbose {
		return config.SetupLogging(cfg, loggers()...)
	}
	for _, l := range loggers() {
		l.SetLevel(logrus.WarnLevel)
	}
	return nil
}

func newRand() *rand.Rand {
	if flagSeed == 0 {
		return mines.NewRand()
	}
	return rand.New(rand.NewPCG(flagSeed, flagSeed))
}
