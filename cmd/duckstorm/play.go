package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/duckstorm/internal/audio"
	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/core"
	"github.com/vovakirdan/duckstorm/internal/platform/tui"
)

var (
	flagMute   bool
	flagVolume float64
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start duckstorm in the current terminal.

Controls:
  Left/A, Right/D  - Aim the cannon
  Space/Up         - Fire
  Enter            - Start a round / leave the scoreboard
  ?                - More keys
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Smaller flocks, slower escalation
  normal - Standard settings
  hard   - Large flocks, faster escalation
  fixed  - No escalation

Examples:
  duckstorm play
  duckstorm play --difficulty hard
  duckstorm play --config ./my-storm.yaml --mute`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
		c.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume 0..1")
	}
}

// terminalConfig sizes the runtime config from stdout.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// openAudio starts the speaker. Without a sound device the game plays silent.
func openAudio(logger *log.Logger) (core.Audio, func()) {
	if flagMute {
		return core.NopAudio{}, func() {}
	}
	synth := audio.NewSynth(flagVolume, logger)
	if err := synth.Init(); err != nil {
		logger.Warn("sound disabled", "err", err)
		return core.NopAudio{}, func() {}
	}
	return synth, synth.Close
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadGame()
	if err != nil {
		return err
	}

	logger, logCloser, err := interactiveLogger()
	if err != nil {
		return err
	}
	defer logCloser.Close()

	st := openStores(logger)
	defer st.Close()

	sound, closeSound := openAudio(logger)
	defer closeSound()

	return playRound(cfg, preset, terminalConfig(), st, sound, logger)
}

func playRound(cfg config.Config, preset config.DifficultyPreset, rt core.RuntimeConfig, st *stores, sound core.Audio, logger *log.Logger) error {
	logger.Info("starting game", "difficulty", preset, "config", cfg.Source)
	err := tui.Run(tui.Options{
		Config:  cfg,
		Mode:    string(preset),
		Runtime: rt,
		Best:    st.bestStore(),
		Runs:    st.runRecorder(),
		Audio:   sound,
		Log:     logger,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
