package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"specsync/internal/reconciler"
	"specsync/pkg/logging"
)

const (
	// DefaultDebounce is used when Options.Debounce is zero.
	DefaultDebounce = 250 * time.Millisecond

	// DefaultStopToken is used when Options.StopToken is empty.
	DefaultStopToken = "stop"

	// DefaultQueueSize is used when Options.QueueSize is zero.
	DefaultQueueSize = 128
)

// ErrWatchSetup is wrapped by every failure to establish the watch.
var ErrWatchSetup = errors.New("cannot establish directory watch")

// Options configures a Watcher.
type Options struct {
	// Debounce is how long to wait for further changes to a path.
	Debounce time.Duration

	// StopToken is the file name suffix that requests shutdown.
	StopToken string

	// QueueSize bounds the number of delivered but unconsumed events.
	QueueSize int
}

func (o Options) withDefaults() Options {
	if o.Debounce == 0 {
		o.Debounce = DefaultDebounce
	}
	if o.StopToken == "" {
		o.StopToken = DefaultStopToken
	}
	if o.QueueSize <= 0 {
		o.QueueSize = DefaultQueueSize
	}
	return o
}

// Watcher implements reconciler.EventSource on top of fsnotify.
type Watcher struct {
	dir     string
	opts    Options
	watcher *fsnotify.Watcher

	coalescer *coalescer
	due       chan dueTick
	out       chan reconciler.FileEvent

	done      chan struct{}
	closeOnce sync.Once
}

var _ reconciler.EventSource = (*Watcher)(nil)

// New starts watching dir. The directory is not watched recursively.
func New(dir string, opts Options) (*Watcher, error) {
	opts = opts.withDefaults()

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatchSetup, err)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrWatchSetup, dir, err)
	}

	w := &Watcher{
		dir:     dir,
		opts:    opts,
		watcher: fsw,
		due:     make(chan dueTick, opts.QueueSize),
		out:     make(chan reconciler.FileEvent, opts.QueueSize),
		done:    make(chan struct{}),
	}
	w.coalescer = newCoalescer(opts.Debounce, opts.StopToken, w.schedule)

	logging.Info("Watch", "Watching %s (debounce %v)", dir, opts.Debounce)
	return w, nil
}

// Run pumps fsnotify events through the debouncer until ctx is cancelled or
// the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.coalescer.drain()
			return nil

		case <-w.done:
			w.coalescer.drain()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			logging.Debug("Watch", "raw %s", event)
			for _, fe := range w.coalescer.observe(event) {
				w.emit(ctx, fe)
			}

		case tick := <-w.due:
			if fe, ok := w.coalescer.fire(tick.path, tick.seq); ok {
				w.emit(ctx, fe)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logging.Warn("Watch", "Event queue overflowed, requesting rescan")
				w.emit(ctx, reconciler.RescanEvent())
				continue
			}
			w.emit(ctx, reconciler.WatchError(err.Error()))
		}
	}
}

// Receive blocks until the next debounced event is available.
func (w *Watcher) Receive(ctx context.Context) (reconciler.FileEvent, error) {
	select {
	case ev := <-w.out:
		return ev, nil
	case <-ctx.Done():
		return reconciler.FileEvent{}, ctx.Err()
	case <-w.done:
		select {
		case ev := <-w.out:
			return ev, nil
		default:
			return reconciler.FileEvent{}, reconciler.ErrSourceClosed
		}
	}
}

// Close stops the watcher. Pending debounced events are discarded.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		logging.Info("Watch", "Stopped watching %s", w.dir)
	})
	return err
}

// dueTick reports that the debounce window of one pending event expired.
type dueTick struct {
	path string
	seq  uint64
}

func (w *Watcher) schedule(path string, seq uint64, d time.Duration) *time.Timer {
	return time.AfterFunc(d, func() {
		select {
		case w.due <- dueTick{path: path, seq: seq}:
		case <-w.done:
		}
	})
}

func (w *Watcher) emit(ctx context.Context, ev reconciler.FileEvent) {
	select {
	case w.out <- ev:
		logging.Debug("Watch", "Emitted %s", ev)
	case <-ctx.Done():
	case <-w.done:
	}
}
