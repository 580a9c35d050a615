package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/app"
	"github.com/nholm/leaper/internal/ui"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive terminal demo",
	Long: `Open a single-buffer editor in the terminal. Typing an opener
autocloses it, Tab leaps past the nearest closer, and Esc leaves leaper
mode. The status line mirrors the broadcast context values.

Configuration changes are picked up live while the demo runs.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func runDemo(cmd *cobra.Command, args []string) error {
	demo := ui.New(nil)

	// The terminal belongs to tcell while the demo runs, so logging is
	// discarded.
	a, err := app.New(app.Options{
		Sources: sources(),
		Setter:  demo,
		Logger:  zap.NewNop(),
		Watch:   true,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	return demo.Run(a.Session(), app.SettingsFrom(a.Config()).Pairs)
}
