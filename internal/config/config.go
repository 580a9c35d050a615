// Package config loads and validates leaper's configuration.
//
// Effective values are assembled from four layers, lowest precedence first:
// built-in defaults, a TOML profile file, a VS Code-style settings.json
// scope, and LEAPER_* environment variables. Each layer only overrides the
// values it actually sets.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/nholm/leaper/internal/decoration"
	"github.com/nholm/leaper/internal/engine/pair"
)

// MaxDetectedPairs bounds the detected-pair set. The cap is enforced here,
// at load time; the engine trusts validated configs.
const MaxDetectedPairs = 100

// Validation errors.
var (
	ErrTooManyPairs = errors.New("config: too many detected pairs")
	ErrBadPairEntry = errors.New("config: detected pair must be exactly two characters")
	ErrBadLogLevel  = errors.New("config: unknown log level")
)

// DecorationConfig styles the closing-side decoration.
type DecorationConfig struct {
	Color     string `toml:"color"`
	Bold      bool   `toml:"bold"`
	Underline bool   `toml:"underline"`
}

// Config is the full effective configuration.
type Config struct {
	// DetectedPairs lists recognizable pairs as two-character strings,
	// opener first ("()", "''").
	DetectedPairs []string `toml:"detected-pairs"`

	// DecorateAll decorates every tracked pair instead of only the
	// nearest one.
	DecorateAll bool `toml:"decorate-all"`

	// Decoration styles decorated characters.
	Decoration DecorationConfig `toml:"decoration"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log-level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DetectedPairs: []string{"()", "[]", "{}", "<>", "''", `""`, "``"},
		DecorateAll:   false,
		Decoration:    DecorationConfig{Color: "#767676"},
		LogLevel:      "info",
	}
}

// Validate checks the configuration, returning the first problem found.
func (c Config) Validate() error {
	if len(c.DetectedPairs) > MaxDetectedPairs {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPairs, len(c.DetectedPairs), MaxDetectedPairs)
	}
	for _, entry := range c.DetectedPairs {
		if utf8.RuneCountInString(entry) != 2 {
			return fmt.Errorf("%w: %q", ErrBadPairEntry, entry)
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrBadLogLevel, c.LogLevel)
	}
	return nil
}

// PairSpecs converts the detected-pair entries to engine specs. The config
// must have been validated.
func (c Config) PairSpecs() []pair.Spec {
	specs := make([]pair.Spec, 0, len(c.DetectedPairs))
	for _, entry := range c.DetectedPairs {
		open, size := utf8.DecodeRuneInString(entry)
		close, _ := utf8.DecodeRuneInString(entry[size:])
		specs = append(specs, pair.Spec{Open: open, Close: close})
	}
	return specs
}

// DecorationOptions converts the decoration styling for the engine.
func (c Config) DecorationOptions() decoration.Options {
	return decoration.Options{
		Color:     c.Decoration.Color,
		Bold:      c.Decoration.Bold,
		Underline: c.Decoration.Underline,
	}
}
