package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a difficulty, play, and browse high scores",
	Long: `Start duckstorm with a launcher menu.

Use arrow keys or j/k to pick a difficulty and Enter to play.
Tab opens the high score tables. Quitting a game returns to the menu.

Examples:
  duckstorm menu
  duckstorm menu --fps 30
  duckstorm menu --db ./duckstorm.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	_, preset, err := loadGame()
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

	rt := terminalConfig()
	for {
		result, err := tui.RunMenu(rt, preset, st.bestScore())
		if err != nil {
			return err
		}
		rt = result.Config

		if result.Quit {
			return nil
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(st.runLister(), rt.ScreenW, rt.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		// Reload so each preset applies to the file values, not to the
		// previous preset.
		preset = result.Preset
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		config.ApplyPreset(&cfg, preset)

		if err := playRound(cfg, preset, rt, st, sound, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	}
}
