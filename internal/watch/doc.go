// Package watch supplies debounced filesystem events for a single flat
// directory.
//
// It wraps fsnotify and coalesces the raw notifications of each path within
// a debounce window before handing them to the reconciler:
//
//   - Create followed by Write becomes one Create
//   - Create followed by Remove becomes Remove
//   - Remove followed by Create becomes Write
//   - Rename(old) followed by Create(new) becomes Rename(old, new); an
//     unpaired Rename becomes Remove(old) once its window expires
//   - Chmod is ignored
//
// Creating a file whose name ends with the stop token produces a Stop event
// right away, after any pending events have been flushed. A watcher queue
// overflow produces a Rescan event; any other watcher error is forwarded as
// a non-fatal Error event.
//
// The Watcher implements reconciler.EventSource:
//
//	w, err := watch.New(dir, watch.Options{Debounce: 250 * time.Millisecond})
//	if err != nil {
//	    return err // the directory cannot be watched
//	}
//	defer w.Close()
//	go w.Run(ctx)
//	return r.Run(ctx, w)
package watch
