package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nholm/leaper/internal/config"
)

func TestCountdownFiresOnce(t *testing.T) {
	var fired atomic.Int32
	c := NewCountdown(20*time.Millisecond, func() { fired.Add(1) })

	c.Arm()
	c.Arm()
	c.Arm()

	assert.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "repeated arms coalesce into one firing")
}

func TestCountdownCancel(t *testing.T) {
	var fired atomic.Int32
	c := NewCountdown(20*time.Millisecond, func() { fired.Add(1) })

	c.Arm()
	c.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	c.Cancel() // idle cancel is a no-op
}

func TestCountdownRearmAfterFire(t *testing.T) {
	var fired atomic.Int32
	c := NewCountdown(10*time.Millisecond, func() { fired.Add(1) })

	c.Arm()
	require.Eventually(t, func() bool { return fired.Load() == 1 },
		time.Second, 2*time.Millisecond)

	c.Arm()
	assert.Eventually(t, func() bool { return fired.Load() == 2 },
		time.Second, 2*time.Millisecond)
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leaper.toml")
	require.NoError(t, os.WriteFile(path, []byte(`decorate-all = false`), 0o644))

	w, err := New(config.Sources{ProfilePath: path}, 20*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`decorate-all = true`), 0o644))

	select {
	case cfg := <-w.Configs():
		assert.True(t, cfg.DecorateAll)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload delivered")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leaper.toml")
	require.NoError(t, os.WriteFile(path, []byte(``), 0o644))

	w, err := New(config.Sources{ProfilePath: path}, 10*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-w.Configs():
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcherKeepsPreviousOnBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "leaper.toml")
	require.NoError(t, os.WriteFile(path, []byte(``), 0o644))

	w, err := New(config.Sources{ProfilePath: path}, 10*time.Millisecond, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(`log-level = "loud"`), 0o644))

	select {
	case <-w.Configs():
		t.Fatal("invalid config must not be delivered")
	case <-time.After(100 * time.Millisecond):
	}
}
