package watch

import (
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"specsync/internal/reconciler"
)

// newTestCoalescer returns a coalescer whose timers never fire on their own,
// plus the list of paths that were (re)scheduled.
func newTestCoalescer(t *testing.T) (*coalescer, *[]string) {
	t.Helper()
	var scheduled []string
	c := newCoalescer(time.Hour, "stop", func(path string, _ uint64, d time.Duration) *time.Timer {
		scheduled = append(scheduled, path)
		return time.AfterFunc(d, func() {})
	})
	t.Cleanup(func() { c.drain() })
	return c, &scheduled
}

func raw(op fsnotify.Op, name string) fsnotify.Event {
	return fsnotify.Event{Name: name, Op: op}
}

func TestMergeEvents(t *testing.T) {
	tests := []struct {
		name     string
		prev     reconciler.FileEvent
		next     reconciler.FileEvent
		expected reconciler.FileEvent
	}{
		{"create then write", reconciler.Created("a"), reconciler.Modified("a"), reconciler.Created("a")},
		{"create then remove", reconciler.Created("a"), reconciler.Removed("a"), reconciler.Removed("a")},
		{"write then write", reconciler.Modified("a"), reconciler.Modified("a"), reconciler.Modified("a")},
		{"write then remove", reconciler.Modified("a"), reconciler.Removed("a"), reconciler.Removed("a")},
		{"remove then create", reconciler.Removed("a"), reconciler.Created("a"), reconciler.Modified("a")},
		{"rename then write", reconciler.Renamed("o", "a"), reconciler.Modified("a"), reconciler.Renamed("o", "a")},
		{"rename then remove", reconciler.Renamed("o", "a"), reconciler.Removed("a"), reconciler.Removed("o")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mergeEvents(tt.prev, tt.next))
		})
	}
}

func TestCoalescer_CreateWriteBecomesCreate(t *testing.T) {
	c, scheduled := newTestCoalescer(t)

	assert.Empty(t, c.observe(raw(fsnotify.Create, "/d/a.yaml")))
	assert.Empty(t, c.observe(raw(fsnotify.Write, "/d/a.yaml")))
	assert.Empty(t, c.observe(raw(fsnotify.Write, "/d/a.yaml")))

	assert.Len(t, *scheduled, 3)
	ev, ok := c.take("/d/a.yaml")
	require.True(t, ok)
	assert.Equal(t, reconciler.Created("/d/a.yaml"), ev)

	_, ok = c.take("/d/a.yaml")
	assert.False(t, ok)
}

func TestCoalescer_ChmodIsIgnored(t *testing.T) {
	c, scheduled := newTestCoalescer(t)

	assert.Empty(t, c.observe(raw(fsnotify.Chmod, "/d/a.yaml")))
	assert.Empty(t, *scheduled)
	assert.Empty(t, c.drain())
}

func TestCoalescer_RenamePairing(t *testing.T) {
	c, _ := newTestCoalescer(t)

	c.observe(raw(fsnotify.Rename, "/d/a.yaml"))
	c.observe(raw(fsnotify.Create, "/d/b.yaml"))
	c.observe(raw(fsnotify.Write, "/d/b.yaml"))

	_, ok := c.take("/d/a.yaml")
	assert.False(t, ok, "rename source must be folded into the rename")

	ev, ok := c.take("/d/b.yaml")
	require.True(t, ok)
	assert.Equal(t, reconciler.Renamed("/d/a.yaml", "/d/b.yaml"), ev)
}

func TestCoalescer_RemovedRenameDestinationRetractsSource(t *testing.T) {
	c, _ := newTestCoalescer(t)

	c.observe(raw(fsnotify.Rename, "/d/a.yaml"))
	c.observe(raw(fsnotify.Create, "/d/b.yaml"))
	c.observe(raw(fsnotify.Remove, "/d/b.yaml"))

	assert.Equal(t, []reconciler.FileEvent{reconciler.Removed("/d/a.yaml")}, c.drain())
}

func TestCoalescer_ChainedRenameKeepsOriginalSource(t *testing.T) {
	c, _ := newTestCoalescer(t)

	c.observe(raw(fsnotify.Rename, "/d/a.yaml"))
	c.observe(raw(fsnotify.Create, "/d/b.yaml"))
	c.observe(raw(fsnotify.Rename, "/d/b.yaml"))
	c.observe(raw(fsnotify.Create, "/d/c.yaml"))

	assert.Equal(t, []reconciler.FileEvent{reconciler.Renamed("/d/a.yaml", "/d/c.yaml")}, c.drain())
}

func TestCoalescer_ChainedRenameWithoutDestinationRetractsSource(t *testing.T) {
	c, _ := newTestCoalescer(t)

	c.observe(raw(fsnotify.Rename, "/d/a.yaml"))
	c.observe(raw(fsnotify.Create, "/d/b.yaml"))
	c.observe(raw(fsnotify.Rename, "/d/b.yaml"))

	assert.Equal(t, []reconciler.FileEvent{reconciler.Removed("/d/a.yaml")}, c.drain())
}

func TestCoalescer_RenameBackBecomesWrite(t *testing.T) {
	c, _ := newTestCoalescer(t)

	c.observe(raw(fsnotify.Rename, "/d/a.yaml"))
	c.observe(raw(fsnotify.Create, "/d/b.yaml"))
	c.observe(raw(fsnotify.Rename, "/d/b.yaml"))
	c.observe(raw(fsnotify.Create, "/d/a.yaml"))

	assert.Equal(t, []reconciler.FileEvent{reconciler.Modified("/d/a.yaml")}, c.drain())
}

func TestCoalescer_StaleTickIsIgnored(t *testing.T) {
	var seqs []uint64
	c := newCoalescer(time.Hour, "stop", func(_ string, seq uint64, d time.Duration) *time.Timer {
		seqs = append(seqs, seq)
		return time.AfterFunc(d, func() {})
	})
	t.Cleanup(func() { c.drain() })

	c.observe(raw(fsnotify.Create, "/d/a.yaml"))
	c.observe(raw(fsnotify.Write, "/d/a.yaml"))
	require.Len(t, seqs, 2)

	// The first timer fired before the write re-armed it.
	_, ok := c.fire("/d/a.yaml", seqs[0])
	assert.False(t, ok)

	ev, ok := c.fire("/d/a.yaml", seqs[1])
	require.True(t, ok)
	assert.Equal(t, reconciler.Created("/d/a.yaml"), ev)
}

func TestCoalescer_UnpairedRenameBecomesRemove(t *testing.T) {
	c, _ := newTestCoalescer(t)

	c.observe(raw(fsnotify.Rename, "/d/a.yaml"))

	ev, ok := c.take("/d/a.yaml")
	require.True(t, ok)
	assert.Equal(t, reconciler.Removed("/d/a.yaml"), ev)

	// A later create is no longer paired with the expired rename.
	c.observe(raw(fsnotify.Create, "/d/b.yaml"))
	ev, ok = c.take("/d/b.yaml")
	require.True(t, ok)
	assert.Equal(t, reconciler.Created("/d/b.yaml"), ev)
}

func TestCoalescer_StopMarkerFlushesPendingFirst(t *testing.T) {
	c, _ := newTestCoalescer(t)

	c.observe(raw(fsnotify.Create, "/d/a.yaml"))
	c.observe(raw(fsnotify.Write, "/d/b.yaml"))
	c.observe(raw(fsnotify.Remove, "/d/c.yaml"))

	out := c.observe(raw(fsnotify.Create, "/d/please.stop"))
	assert.Equal(t, []reconciler.FileEvent{
		reconciler.Created("/d/a.yaml"),
		reconciler.Modified("/d/b.yaml"),
		reconciler.Removed("/d/c.yaml"),
		reconciler.StopEvent(),
	}, out)
	assert.Empty(t, c.pending)
}

func TestCoalescer_StopMarkerOnlyOnCreate(t *testing.T) {
	c, _ := newTestCoalescer(t)

	assert.Empty(t, c.observe(raw(fsnotify.Write, "/d/stop")))
	assert.Equal(t, []reconciler.FileEvent{
		reconciler.Modified("/d/stop"),
		reconciler.StopEvent(),
	}, c.observe(raw(fsnotify.Create, "/d/stop")))
}
