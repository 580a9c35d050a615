package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/config"
	"github.com/nholm/leaper/internal/engine/tracker"
)

func writeProfile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leaper.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewWithDefaults(t *testing.T) {
	a, err := New(Options{Logger: zap.NewNop()})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, config.Default(), a.Config())
	assert.NotNil(t, a.Session())
}

func TestNewWithProfile(t *testing.T) {
	path := writeProfile(t, "detected-pairs = [\"()\"]\ndecorate-all = true\n")

	a, err := New(Options{
		Sources: config.Sources{ProfilePath: path},
		Logger:  zap.NewNop(),
	})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, []string{"()"}, a.Config().DetectedPairs)
	assert.True(t, a.Config().DecorateAll)
}

func TestNewInvalidProfileFallsBack(t *testing.T) {
	path := writeProfile(t, "detected-pairs = [\"(\"]\n")

	a, err := New(Options{
		Sources: config.Sources{ProfilePath: path},
		Logger:  zap.NewNop(),
	})
	require.NoError(t, err)
	defer a.Close()

	assert.Equal(t, config.Default(), a.Config())
}

func TestSettingsFrom(t *testing.T) {
	cfg := config.Default()
	settings := SettingsFrom(cfg)
	assert.Equal(t, tracker.DecorateNearest, settings.Policy)
	assert.Equal(t, len(cfg.DetectedPairs), settings.Pairs.Len())

	cfg.DecorateAll = true
	assert.Equal(t, tracker.DecorateAll, SettingsFrom(cfg).Policy)
}

func TestBuildLogger(t *testing.T) {
	log, err := NewLogger("debug")
	require.NoError(t, err)
	require.NotNil(t, log)

	_, err = NewLogger("loud")
	assert.Error(t, err)
}
