package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Settings.json keys, scoped under the "leaper" prefix the way host editors
// scope extension settings.
const (
	settingDetectedPairs = "leaper.detectedPairs"
	settingDecorateAll   = "leaper.decorateAll"
	settingDecoColor     = "leaper.decoration.color"
	settingDecoBold      = "leaper.decoration.bold"
	settingDecoUnderline = "leaper.decoration.underline"
	settingLogLevel      = "leaper.logLevel"
)

// applySettingsJSON overlays values from a VS Code-style settings.json onto
// cfg. A missing file is not an error; invalid JSON is.
func applySettingsJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: reading settings: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("config: settings file %s is not valid JSON", path)
	}

	if v := gjson.GetBytes(data, settingDetectedPairs); v.Exists() && v.IsArray() {
		pairs := make([]string, 0, len(v.Array()))
		for _, entry := range v.Array() {
			pairs = append(pairs, entry.String())
		}
		cfg.DetectedPairs = pairs
	}
	if v := gjson.GetBytes(data, settingDecorateAll); v.Exists() {
		cfg.DecorateAll = v.Bool()
	}
	if v := gjson.GetBytes(data, settingDecoColor); v.Exists() {
		cfg.Decoration.Color = v.String()
	}
	if v := gjson.GetBytes(data, settingDecoBold); v.Exists() {
		cfg.Decoration.Bold = v.Bool()
	}
	if v := gjson.GetBytes(data, settingDecoUnderline); v.Exists() {
		cfg.Decoration.Underline = v.Bool()
	}
	if v := gjson.GetBytes(data, settingLogLevel); v.Exists() {
		cfg.LogLevel = v.String()
	}
	return nil
}

// WriteSetting updates one leaper key in a settings.json file, creating the
// file if needed. Other keys in the file are preserved.
func WriteSetting(path, key string, value any) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config: reading settings: %w", err)
	}
	if len(data) == 0 {
		data = []byte("{}")
	}

	updated, err := sjson.SetBytes(data, key, value)
	if err != nil {
		return fmt.Errorf("config: updating %s: %w", key, err)
	}
	if err := os.WriteFile(path, updated, 0o644); err != nil {
		return fmt.Errorf("config: writing settings: %w", err)
	}
	return nil
}
