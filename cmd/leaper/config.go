package main

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/nholm/leaper/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Assemble the configuration from defaults, the TOML profile, the
settings.json scope, and LEAPER_* environment variables, then print the
result as TOML. A broken layer is reported and defaults are shown.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var setFlag []string

func init() {
	configCmd.Flags().StringArrayVar(&setFlag, "set", nil, "write key=value to settings.json (e.g. leaper.decorateAll=true)")
}

func runConfig(cmd *cobra.Command, args []string) error {
	for _, kv := range setFlag {
		if err := writeSetting(kv); err != nil {
			return err
		}
	}

	cfg, err := config.Load(sources())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, showing defaults\n", err)
	}

	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// writeSetting persists a key=value override into the settings.json layer.
func writeSetting(kv string) error {
	if settingsPath == "" {
		return fmt.Errorf("--set requires --settings")
	}
	key, value, ok := splitKV(kv)
	if !ok {
		return fmt.Errorf("malformed --set %q, want key=value", kv)
	}
	return config.WriteSetting(settingsPath, key, value)
}

func splitKV(kv string) (string, any, bool) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			key, raw := kv[:i], kv[i+1:]
			if key == "" {
				return "", nil, false
			}
			switch raw {
			case "true":
				return key, true, true
			case "false":
				return key, false, true
			}
			return key, raw, true
		}
	}
	return "", nil, false
}
