// duckstorm is a terminal arcade shooter: hold off an escalating storm of
// ducks with a turret cannon.
//
// Usage:
//
//	duckstorm play           - Play a round in this terminal
//	duckstorm menu           - Pick a difficulty and browse high scores
//	duckstorm serve          - Start SSH server for remote play
//	duckstorm simulate       - Run the autopilot headless and write telemetry
//	duckstorm scores [mode]  - Show recorded runs
//	duckstorm list           - List enemy kinds
//	duckstorm config         - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.duckstorm/duckstorm.db)
//	--store <backend>      - Best score backend: sqlite, gdata or memory
//	--config <path>        - Custom game config YAML
//	--difficulty <preset>  - easy, normal, hard or fixed
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Register enemy kinds
	_ "github.com/vovakirdan/duckstorm/internal/enemies"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagStore      string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "duckstorm",
	Short: "Duckstorm - defend your turret in the terminal",
	Long: `Duckstorm is a terminal arcade shooter. Ducks and geese dive at your
turret in growing flocks; shoot them down before they ram you.

Available commands:
  play      - Play directly
  menu      - Difficulty picker and high scores
  serve     - Start SSH server for remote play
  simulate  - Headless autopilot run with CSV telemetry
  scores    - View recorded runs
  list      - Show enemy kinds
  config    - Print the effective configuration

Examples:
  duckstorm play
  duckstorm play --difficulty hard
  duckstorm menu
  duckstorm serve --ssh :2222
  duckstorm simulate --duration 10m --out storm.csv
  duckstorm scores hard`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.duckstorm/duckstorm.db", "Path to runs database")
	pf.StringVar(&flagStore, "store", "sqlite", "Best score backend: sqlite, gdata or memory")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Write logs to this file (interactive commands discard logs otherwise)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}
