package reconciler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"k8s.io/apimachinery/pkg/util/sets"

	"specsync/internal/index"
	"specsync/internal/loader"
	"specsync/pkg/apis/specsync/v1alpha1"
	"specsync/pkg/logging"
)

const (
	labelCreated = "created"
	labelUpdated = "updated"
	labelDeleted = "deleted"
	labelLoad    = "load"
)

// Reconciler keeps the directory index in line with the watched directory
// and forwards the resulting lifecycle transitions to a Sink.
type Reconciler struct {
	dir     string
	index   *index.Directory
	sink    Sink
	metrics *Metrics
}

// New creates a Reconciler for dir that notifies sink.
func New(dir string, sink Sink) *Reconciler {
	return &Reconciler{
		dir:     dir,
		index:   index.New(),
		sink:    sink,
		metrics: NewMetrics(),
	}
}

// Metrics returns the reconciler's counters.
func (r *Reconciler) Metrics() *Metrics {
	return r.metrics
}

// Tracked returns the file keys currently held in the index.
func (r *Reconciler) Tracked() []string {
	return r.index.Keys()
}

// Run processes events from src until a Stop event arrives, the source is
// closed, or ctx is cancelled. Per-event failures are logged and never end
// the loop.
func (r *Reconciler) Run(ctx context.Context, src EventSource) error {
	for {
		event, err := src.Receive(ctx)
		if err != nil {
			if errors.Is(err, ErrSourceClosed) {
				logging.Info("Reconciler", "Event source closed")
				return nil
			}
			return err
		}

		if event.Kind == EventStop {
			logging.Info("Reconciler", "Stop requested")
			return nil
		}

		if err := r.ProcessEvent(event); err != nil {
			logging.Error("Reconciler", err, "%s failed", event)
		}
	}
}

// ProcessEvent runs one event to completion and returns its combined outcome.
func (r *Reconciler) ProcessEvent(event FileEvent) error {
	var err error

	switch event.Kind {
	case EventCreated:
		logging.Info("Reconciler", "create %s", event.Path)
		err = r.handleChanged(event.Path)
	case EventModified:
		logging.Info("Reconciler", "write %s", event.Path)
		err = r.handleChanged(event.Path)
	case EventRemoved:
		logging.Info("Reconciler", "remove %s", event.Path)
		err = r.handleRemoved(event.Path)
	case EventRenamed:
		logging.Info("Reconciler", "rename %s %s", event.Path, event.NewPath)
		err = r.handleRenamed(event.Path, event.NewPath)
	case EventRescan:
		logging.Info("Reconciler", "rescan %s", r.dir)
		err = r.Rescan()
	case EventWatchError:
		err = fmt.Errorf("watch: %s", event.Detail)
	case EventStop:
		return nil
	default:
		err = fmt.Errorf("unknown event kind %q", event.Kind)
	}

	r.metrics.RecordEvent(event.Kind, err)
	return err
}

// Rescan reloads every regular file directly inside the watched directory.
//
// A failure on one file does not stop the others; all failures are returned
// together. Tracked keys whose files are gone are not retracted here.
func (r *Reconciler) Rescan() error {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return fmt.Errorf("rescan %s: %w", r.dir, err)
	}

	seen := sets.New[string]()
	var steps []Step
	for _, entry := range entries {
		path := filepath.Join(r.dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		seen.Insert(loader.Key(path))
		if err := r.handleChanged(path); err != nil {
			steps = append(steps, Attempt(entry.Name(), err))
		}
	}

	stale := sets.New(r.index.Keys()...).Difference(seen)
	for _, key := range sets.List(stale) {
		logging.Warn("Reconciler", "%s is tracked but no longer on disk; keeping it until a remove event arrives", key)
	}

	return Combine(steps...)
}

// handleChanged reloads path and notifies the sink of the transition.
func (r *Reconciler) handleChanged(path string) error {
	if !loader.Eligible(path) {
		return nil
	}

	prev, hadPrev, obj, loadErr := r.reload(path)
	switch {
	case loadErr == nil && !hadPrev:
		return r.created(obj)
	case loadErr == nil:
		return r.updated(prev, obj)
	case hadPrev:
		return Combine(
			Attempt(labelDeleted, r.deleted(prev)),
			Attempt(labelLoad, loadErr),
		)
	default:
		return loadErr
	}
}

// handleRemoved drops the key of path and retracts its object.
func (r *Reconciler) handleRemoved(path string) error {
	if !loader.Eligible(path) {
		return nil
	}
	prev, ok := r.index.Remove(loader.Key(path))
	if !ok {
		return nil
	}
	return r.deleted(prev)
}

// handleRenamed moves the entry of oldPath to newPath.
func (r *Reconciler) handleRenamed(oldPath, newPath string) error {
	var (
		oldObj  v1alpha1.Object
		tracked bool
	)
	if loader.Eligible(oldPath) {
		oldObj, tracked = r.index.Remove(loader.Key(oldPath))
	}
	if !tracked {
		return r.handleChanged(newPath)
	}
	if !loader.Eligible(newPath) {
		return r.deleted(oldObj)
	}

	obsolete, hadObsolete, obj, loadErr := r.reload(newPath)
	switch {
	case loadErr == nil && !hadObsolete:
		return r.updated(oldObj, obj)
	case loadErr == nil:
		return Combine(
			Attempt(labelDeleted, r.deleted(obsolete)),
			Attempt(labelUpdated, r.updated(oldObj, obj)),
		)
	case hadObsolete:
		return Combine(
			Attempt(labelDeleted, r.deleted(oldObj)),
			Attempt(labelDeleted, r.deleted(obsolete)),
			Attempt(labelLoad, loadErr),
		)
	default:
		return Combine(
			Attempt(labelDeleted, r.deleted(oldObj)),
			Attempt(labelLoad, loadErr),
		)
	}
}

// reload decodes path and applies the outcome to the index in one step: a
// successful load replaces the entry, a failed one removes it. The entry
// held before the update is returned alongside the load outcome.
func (r *Reconciler) reload(path string) (prev v1alpha1.Object, hadPrev bool, obj v1alpha1.Object, err error) {
	key := loader.Key(path)

	obj, err = loader.Load(path)
	if err != nil {
		r.metrics.RecordLoadFailure()
		prev, hadPrev = r.index.Remove(key)
		return prev, hadPrev, v1alpha1.Object{}, err
	}

	prev, hadPrev = r.index.Put(key, obj)
	return prev, hadPrev, obj, nil
}

func (r *Reconciler) created(obj v1alpha1.Object) error {
	logging.Debug("Reconciler", "created %s", obj)
	err := r.sink.Created(obj)
	r.metrics.RecordNotification(labelCreated, err)
	return err
}

func (r *Reconciler) updated(oldObj, newObj v1alpha1.Object) error {
	logging.Debug("Reconciler", "updated %s -> %s", oldObj, newObj)
	err := r.sink.Updated(oldObj, newObj)
	r.metrics.RecordNotification(labelUpdated, err)
	return err
}

func (r *Reconciler) deleted(obj v1alpha1.Object) error {
	logging.Debug("Reconciler", "deleted %s", obj)
	err := r.sink.Deleted(obj)
	r.metrics.RecordNotification(labelDeleted, err)
	return err
}
