package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/duckstorm/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List enemy kinds",
	Long:  `Shows every registered enemy kind with its default spawn weight and stats.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	kinds := registry.List()
	if len(kinds) == 0 {
		fmt.Println("No enemy kinds registered.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, k := range kinds {
		if len(k.ID) > maxIDLen {
			maxIDLen = len(k.ID)
		}
	}

	fmt.Println("Enemy kinds:")
	fmt.Println()
	fmt.Printf("  %-*s  %-5s  %-6s  %-6s  %-5s  %-6s  %s\n", maxIDLen, "ID", "Glyph", "Weight", "Health", "Speed", "Damage", "Title")
	fmt.Printf("  %-*s  %-5s  %-6s  %-6s  %-5s  %-6s  %s\n", maxIDLen, "--", "-----", "------", "------", "-----", "------", "-----")
	for _, k := range kinds {
		a, err := registry.Lookup(k.ID)
		if err != nil {
			continue
		}
		fmt.Printf("  %-*s  %-5c  %-6.2f  %-6.0f  %-5.1f  %-6.0f  %s\n",
			maxIDLen, a.ID, a.Glyph, a.Weight, a.Stats.MaxHealth, a.Stats.Speed, a.Stats.DamageGiven, a.Title)
	}

	fmt.Println()
	fmt.Println("Kinds are enabled and weighted in the enemies section of the config.")
}
