package watch

import (
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"specsync/internal/reconciler"
)

// pendingEvent tracks an event waiting for its debounce window to expire.
type pendingEvent struct {
	event reconciler.FileEvent
	timer *time.Timer
	seq   uint64

	// renamedAway marks a Remove synthesized from a Rename that may still be
	// paired with a following Create.
	renamedAway bool
}

// coalescer folds raw fsnotify events into debounced FileEvents. It is
// driven from a single goroutine and carries no locking.
type coalescer struct {
	window    time.Duration
	stopToken string

	pending    map[string]*pendingEvent
	lastRename string
	seq        uint64

	// schedule arms a timer that reports the pending event (path, seq) as
	// due after d.
	schedule func(path string, seq uint64, d time.Duration) *time.Timer
}

func newCoalescer(window time.Duration, stopToken string, schedule func(string, uint64, time.Duration) *time.Timer) *coalescer {
	return &coalescer{
		window:    window,
		stopToken: stopToken,
		pending:   make(map[string]*pendingEvent),
		schedule:  schedule,
	}
}

// observe records a raw event. It returns events that must be delivered
// immediately, in order.
func (c *coalescer) observe(ev fsnotify.Event) []reconciler.FileEvent {
	switch {
	case ev.Has(fsnotify.Create):
		if c.isStopMarker(ev.Name) {
			return append(c.drain(), reconciler.StopEvent())
		}
		if from, ok := c.takeRenameSource(); ok {
			if from == ev.Name {
				c.merge(ev.Name, reconciler.Modified(ev.Name))
				return nil
			}
			c.put(ev.Name, reconciler.Renamed(from, ev.Name), false)
			return nil
		}
		c.merge(ev.Name, reconciler.Created(ev.Name))
	case ev.Has(fsnotify.Write):
		c.merge(ev.Name, reconciler.Modified(ev.Name))
	case ev.Has(fsnotify.Remove):
		c.merge(ev.Name, reconciler.Removed(ev.Name))
	case ev.Has(fsnotify.Rename):
		// Moving a rename destination on keeps the original source.
		source := ev.Name
		if p, ok := c.pending[ev.Name]; ok && p.event.Kind == reconciler.EventRenamed {
			source = p.event.Path
		}
		c.put(ev.Name, reconciler.Removed(source), true)
		c.lastRename = ev.Name
	}
	return nil
}

// fire delivers the pending event for path if seq still identifies it. Ticks
// from timers that were superseded before they could be stopped are ignored.
func (c *coalescer) fire(path string, seq uint64) (reconciler.FileEvent, bool) {
	p, ok := c.pending[path]
	if !ok || p.seq != seq {
		return reconciler.FileEvent{}, false
	}
	return c.take(path)
}

// take removes and returns the pending event for path.
func (c *coalescer) take(path string) (reconciler.FileEvent, bool) {
	p, ok := c.pending[path]
	if !ok {
		return reconciler.FileEvent{}, false
	}
	delete(c.pending, path)
	if c.lastRename == path {
		c.lastRename = ""
	}
	return p.event, true
}

// drain stops every timer and returns all pending events in arrival order.
func (c *coalescer) drain() []reconciler.FileEvent {
	entries := make([]*pendingEvent, 0, len(c.pending))
	for _, p := range c.pending {
		if p.timer != nil {
			p.timer.Stop()
		}
		entries = append(entries, p)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })

	out := make([]reconciler.FileEvent, len(entries))
	for i, p := range entries {
		out[i] = p.event
	}
	c.pending = make(map[string]*pendingEvent)
	c.lastRename = ""
	return out
}

func (c *coalescer) isStopMarker(path string) bool {
	return c.stopToken != "" && strings.HasSuffix(filepath.Base(path), c.stopToken)
}

// takeRenameSource claims the most recent unpaired rename, if any, and
// returns the path the renamed file originally had.
func (c *coalescer) takeRenameSource() (string, bool) {
	from := c.lastRename
	if from == "" {
		return "", false
	}
	c.lastRename = ""
	p, ok := c.pending[from]
	if !ok || !p.renamedAway {
		return "", false
	}
	p.timer.Stop()
	delete(c.pending, from)
	return p.event.Path, true
}

// merge folds next into whatever is pending for path.
func (c *coalescer) merge(path string, next reconciler.FileEvent) {
	if p, ok := c.pending[path]; ok {
		next = mergeEvents(p.event, next)
	}
	c.put(path, next, false)
}

func (c *coalescer) put(path string, event reconciler.FileEvent, renamedAway bool) {
	if p, ok := c.pending[path]; ok {
		p.timer.Stop()
	}
	c.seq++
	c.pending[path] = &pendingEvent{
		event:       event,
		timer:       c.schedule(path, c.seq, c.window),
		seq:         c.seq,
		renamedAway: renamedAway,
	}
}

// mergeEvents merges two events on the same path into a single logical event.
func mergeEvents(prev, next reconciler.FileEvent) reconciler.FileEvent {
	switch prev.Kind {
	case reconciler.EventCreated:
		if next.Kind == reconciler.EventModified {
			// Create + Write = Create
			return prev
		}
	case reconciler.EventRemoved:
		if next.Kind == reconciler.EventCreated {
			// Remove + Create = Write
			return reconciler.Modified(next.Path)
		}
	case reconciler.EventRenamed:
		switch next.Kind {
		case reconciler.EventModified:
			// Writes to a rename destination are covered by the rename.
			return prev
		case reconciler.EventRemoved:
			// The destination is gone again; only the source needs retracting.
			return reconciler.Removed(prev.Path)
		}
	}
	return next
}
