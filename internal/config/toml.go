package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// profile mirrors Config with pointer fields so absent keys can be told
// apart from zero values when layering.
type profile struct {
	DetectedPairs *[]string `toml:"detected-pairs"`
	DecorateAll   *bool     `toml:"decorate-all"`
	LogLevel      *string   `toml:"log-level"`
	Decoration    *struct {
		Color     *string `toml:"color"`
		Bold      *bool   `toml:"bold"`
		Underline *bool   `toml:"underline"`
	} `toml:"decoration"`
}

// applyTOML overlays a TOML profile file onto cfg. A missing file is not an
// error; a malformed one is.
func applyTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: reading profile: %w", err)
	}

	var p profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("config: parsing profile %s: %w", path, err)
	}

	if p.DetectedPairs != nil {
		cfg.DetectedPairs = *p.DetectedPairs
	}
	if p.DecorateAll != nil {
		cfg.DecorateAll = *p.DecorateAll
	}
	if p.LogLevel != nil {
		cfg.LogLevel = *p.LogLevel
	}
	if p.Decoration != nil {
		if p.Decoration.Color != nil {
			cfg.Decoration.Color = *p.Decoration.Color
		}
		if p.Decoration.Bold != nil {
			cfg.Decoration.Bold = *p.Decoration.Bold
		}
		if p.Decoration.Underline != nil {
			cfg.Decoration.Underline = *p.Decoration.Underline
		}
	}
	return nil
}
