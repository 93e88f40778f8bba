package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specsync/internal/config"
	"specsync/internal/formatting"
	"specsync/internal/watch"
)

const componentFile = `apiVersion: specsync.dev/v1alpha1
kind: Component
metadata:
  name: svc1
spec:
  type: worker
`

type recordingNotifier struct {
	mu     sync.Mutex
	states []string
}

func (n *recordingNotifier) Ready() { n.record("ready") }
func (n *recordingNotifier) Stopping() { n.record("stopping") }

func (n *recordingNotifier) record(s string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.states = append(n.states, s)
}

func (n *recordingNotifier) snapshot() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.states...)
}

func testSettings(dir string) *config.Config {
	s := config.Default()
	s.WatchDir = dir
	s.Debounce = 20 * time.Millisecond
	return &s
}

func TestConfig_ResolveAppliesOverrides(t *testing.T) {
	debounce := time.Second
	cfg := &Config{Debug: true, WatchDir: "/srv/objects", Debounce: &debounce, Settings: testSettings("/ignored")}

	settings, err := cfg.resolve()
	require.NoError(t, err)
	assert.Equal(t, "/srv/objects", settings.WatchDir)
	assert.Equal(t, time.Second, settings.Debounce)
	assert.Equal(t, "debug", settings.LogLevel)
}

func TestConfig_ResolveRejectsInvalidOverride(t *testing.T) {
	negative := -time.Second
	cfg := &Config{Debounce: &negative, Settings: testSettings("/srv")}

	_, err := cfg.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "debounce")
}

func TestConfig_ResolveReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watchDir: /from/file\nstopToken: halt\n"), 0644))

	settings, err := NewConfig(false, path).resolve()
	require.NoError(t, err)
	assert.Equal(t, "/from/file", settings.WatchDir)
	assert.Equal(t, "halt", settings.StopToken)
}

func TestNewApplication_MissingDirectoryIsFatal(t *testing.T) {
	cfg := &Config{Settings: testSettings(filepath.Join(t.TempDir(), "absent"))}

	_, err := newApplication(cfg, io.Discard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, watch.ErrWatchSetup))
}

func TestApplication_RunUntilStopMarker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "initial.yaml"), []byte(componentFile), 0644))

	application, err := newApplication(&Config{Settings: testSettings(dir)}, io.Discard)
	require.NoError(t, err)
	n := &recordingNotifier{}
	application.notifier = n

	done := make(chan error, 1)
	go func() { done <- application.run(context.Background()) }()

	require.Eventually(t, func() bool {
		_, ok := application.Catalog().LookupComponent("svc1")
		return ok
	}, 2*time.Second, 10*time.Millisecond, "initial rescan must populate the catalog")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "stop"), nil, 0644))

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop")
	}
	assert.Equal(t, []string{"ready", "stopping"}, n.snapshot())
}

func TestApplication_RunUntilCancelled(t *testing.T) {
	application, err := newApplication(&Config{Settings: testSettings(t.TempDir())}, io.Discard)
	require.NoError(t, err)
	application.notifier = &recordingNotifier{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop on cancel")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(componentFile), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("kind: Component\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0755))

	rows, failed, err := Check(dir)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, failed)

	assert.Equal(t, "a.yaml", rows[0].File)
	assert.Equal(t, formatting.StatusFailed, rows[0].Status)
	assert.Contains(t, rows[0].Error, "load ")

	assert.Equal(t, formatting.Row{File: "b.yaml", Kind: "Component", Name: "svc1", Type: "worker", Status: formatting.StatusOK}, rows[1])
}

func TestCheck_MissingDirectory(t *testing.T) {
	_, _, err := Check(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
}
