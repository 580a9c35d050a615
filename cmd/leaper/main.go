// Package main implements the leaper CLI.
//
// leaper tracks autoclosed bracket pairs per cursor and exposes the leap
// and escape operations. The binary hosts the engine two ways: an
// interactive terminal demo and a Lua scenario runner.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nholm/leaper/internal/config"
)

var (
	profilePath  string
	settingsPath string

	// version information (set via ldflags during build)
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "leaper",
	Short:   "Per-cursor bracket pair tracking with leap and escape",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "", "TOML profile file")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "VS Code-style settings.json")
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
}

// sources resolves the configuration file locations from the persistent
// flags.
func sources() config.Sources {
	return config.Sources{ProfilePath: profilePath, SettingsPath: settingsPath}
}
