package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/gameloop"
	"github.com/phanxgames/gameloop/internal/config"
)

var (
	flagSavePath string
	flagScript   string
	flagMute     bool
	flagLoad     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the demo window",
	Long: `Open the demo window and run the configured scene.

Controls:
  W/A/S/D    - Accelerate the player
  Mouse      - Aim the player
  Wheel      - Scroll the background
  P          - Pause
  0 / 1      - Save / load
  F3         - Toggle debug overlay
  F12        - Screenshot

Examples:
  gameloop play
  gameloop play --load --save slot2.dat
  gameloop play --script demo.json --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSavePath, "save", "", "Save file for the 0/1 keys (overrides config)")
	playCmd.Flags().StringVar(&flagScript, "script", "", "JSON input script to replay instead of live input")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable audio")
	playCmd.Flags().BoolVar(&flagLoad, "load", false, "Load the save file before starting")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logger := newLogger(flagDebug)
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	if flagSavePath != "" {
		cfg.Save.Path = flagSavePath
	}

	scene := gameloop.NewScene(cfg.WorldRect())
	scene.SetLogger(logger)
	if err := config.BuildScene(cfg, scene); err != nil {
		return err
	}

	res := gameloop.NewResources(cfg.Assets.Dir, logger)
	scene.SetResources(res)

	if cfg.Audio.Enabled && !flagMute {
		bank := gameloop.NewSoundBank(res, cfg.Audio.Volume)
		if err := bank.Init(); err != nil {
			// Non-fatal, the demo runs without sound.
			logger.Warn("audio disabled", "err", err)
		} else {
			scene.SetSoundPlayer(bank)
			defer bank.Close()
		}
	}

	if flagLoad {
		if err := scene.LoadFile(cfg.Save.Path); err != nil {
			logger.Warn("starting from a fresh scene", "err", err)
		}
	}

	run := cfg.RunConfig()
	if flagScript != "" {
		data, err := os.ReadFile(flagScript)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		script, err := gameloop.LoadInputScript(data)
		if err != nil {
			return err
		}
		run.Script = script
	}
	return gameloop.Run(scene, run)
}
