package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nholm/leaper/internal/app"
	"github.com/nholm/leaper/internal/config"
	"github.com/nholm/leaper/internal/script"
)

var runCmd = &cobra.Command{
	Use:   "run <script.lua>",
	Short: "Run a Lua scenario against the engine",
	Long: `Execute a Lua script driving one or more simulated editors.

The script sees a "leaper" module:

  local ed = leaper.open("main", "initial text")
  ed:type("(")
  assert(ed:in_leaper_mode())
  ed:leap()

Examples:
  leaper run scenario.lua
  leaper run --profile leaper.toml scenario.lua`,
	Args: cobra.ExactArgs(1),
	RunE: runScript,
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(sources())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v, using defaults\n", err)
	}
	log, err := app.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	r := script.NewRunner(cfg, log)
	defer r.Close()
	return r.RunFile(args[0])
}
