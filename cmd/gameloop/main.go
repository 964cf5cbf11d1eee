// gameloop runs the scene demo and works with its save files.
//
// Usage:
//
//	gameloop play               - Open the demo window
//	gameloop inspect <save>     - Print the node tree stored in a save file
//	gameloop new-save <path>    - Build the configured scene headlessly and save it
//
// Global flags:
//
//	--config <path>  - Config file (default: search ~/.gameloop, ./configs, embedded)
//	--debug          - Debug logging and the quadtree overlay
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/gameloop/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gameloop",
	Short: "Scene graph, quadtree collision and save/load demo",
	Long: `gameloop is a small real-time 2D demo: a mouse-facing player, a
scrolling background, walls and patrolling platforms, all bouncing off each
other through a quadtree broad phase.

Examples:
  gameloop play
  gameloop play --config ./my.yaml --debug
  gameloop new-save start.dat --ticks 120
  gameloop inspect savegame.dat`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging and overlay")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(newSaveCmd)
}

// newLogger builds the process logger; debug lowers the level.
func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gameloop",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig applies the global flags on top of the located config.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, src, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDebug {
		cfg.Debug = true
	}
	logger.Debug("config loaded", "source", src)
	return cfg, nil
}
