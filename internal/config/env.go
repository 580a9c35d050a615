package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables recognized as the highest-precedence layer.
const (
	envDetectedPairs = "LEAPER_DETECTED_PAIRS" // comma-separated entries
	envDecorateAll   = "LEAPER_DECORATE_ALL"
	envLogLevel      = "LEAPER_LOG_LEVEL"
)

// applyEnv overlays environment variables onto cfg. Unparseable booleans
// are ignored rather than fatal; validation catches anything structural.
func applyEnv(cfg *Config) {
	if v, ok := os.LookupEnv(envDetectedPairs); ok {
		var pairs []string
		for _, entry := range strings.Split(v, ",") {
			if entry = strings.TrimSpace(entry); entry != "" {
				pairs = append(pairs, entry)
			}
		}
		cfg.DetectedPairs = pairs
	}
	if v, ok := os.LookupEnv(envDecorateAll); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DecorateAll = b
		}
	}
	if v, ok := os.LookupEnv(envLogLevel); ok {
		cfg.LogLevel = v
	}
}
