package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/duckstorm/internal/config"
	"github.com/vovakirdan/duckstorm/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration duckstorm would play with, after the config
search and the --difficulty preset, as YAML. Problems are listed on stderr.

Search order: --config, ~/.duckstorm/config.yaml, ./configs/duckstorm.yaml,
then the built-in defaults.

Examples:
  duckstorm config
  duckstorm config --difficulty hard > ~/.duckstorm/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, preset, err := loadGame()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "# source: %s, difficulty: %s\n", cfg.Source, preset)
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	for _, issue := range configIssues(cfg) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", issue)
	}
	return nil
}

// configIssues adds unknown enemy kinds to the config package's checks.
func configIssues(cfg config.Config) []string {
	issues := config.Validate(cfg)
	for _, e := range cfg.Enemies {
		if !registry.Exists(e.Kind) {
			issues = append(issues, fmt.Sprintf("enemy kind %q is not registered and will be skipped", e.Kind))
		}
	}
	return issues
}
