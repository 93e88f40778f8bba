package reconciler

import (
	"context"
	"errors"
	"fmt"

	"specsync/pkg/apis/specsync/v1alpha1"
)

// EventKind describes what kind of filesystem notification occurred.
type EventKind string

const (
	// EventCreated indicates a file was created.
	EventCreated EventKind = "Create"

	// EventModified indicates a file was written.
	EventModified EventKind = "Write"

	// EventRemoved indicates a file was removed.
	EventRemoved EventKind = "Remove"

	// EventRenamed indicates a file was moved from Path to NewPath.
	EventRenamed EventKind = "Rename"

	// EventRescan asks for the whole directory to be reloaded.
	EventRescan EventKind = "Rescan"

	// EventWatchError carries a non-fatal watcher failure.
	EventWatchError EventKind = "Error"

	// EventStop requests an orderly shutdown of the event loop.
	EventStop EventKind = "Stop"
)

// FileEvent is a debounced filesystem notification.
type FileEvent struct {
	// Kind is the kind of notification.
	Kind EventKind

	// Path is the affected path (the source path for renames).
	Path string

	// NewPath is the destination path of a rename.
	NewPath string

	// Detail describes a watch error.
	Detail string
}

// Created reports a new file at path.
func Created(path string) FileEvent {
	return FileEvent{Kind: EventCreated, Path: path}
}

// Modified reports a content change of the file at path.
func Modified(path string) FileEvent {
	return FileEvent{Kind: EventModified, Path: path}
}

// Removed reports that the file at path is gone.
func Removed(path string) FileEvent {
	return FileEvent{Kind: EventRemoved, Path: path}
}

// Renamed reports that the file at oldPath now lives at newPath.
func Renamed(oldPath, newPath string) FileEvent {
	return FileEvent{Kind: EventRenamed, Path: oldPath, NewPath: newPath}
}

// RescanEvent requests a reload of the whole directory.
func RescanEvent() FileEvent {
	return FileEvent{Kind: EventRescan}
}

// WatchError carries a failure reported by the watch primitive.
func WatchError(detail string) FileEvent {
	return FileEvent{Kind: EventWatchError, Detail: detail}
}

// StopEvent asks the reconcile loop to return.
func StopEvent() FileEvent {
	return FileEvent{Kind: EventStop}
}

// String renders the event for logs.
func (e FileEvent) String() string {
	switch e.Kind {
	case EventRenamed:
		return fmt.Sprintf("%s %s -> %s", e.Kind, e.Path, e.NewPath)
	case EventWatchError:
		return fmt.Sprintf("%s %s", e.Kind, e.Detail)
	case EventRescan, EventStop:
		return string(e.Kind)
	default:
		return fmt.Sprintf("%s %s", e.Kind, e.Path)
	}
}

// ErrSourceClosed is returned by an EventSource once no more events will arrive.
var ErrSourceClosed = errors.New("event source closed")

// EventSource supplies debounced filesystem events in arrival order.
type EventSource interface {
	// Receive blocks until the next event is available, the context is
	// cancelled, or the source is closed (ErrSourceClosed).
	Receive(ctx context.Context) (FileEvent, error)
}

// Sink receives object lifecycle notifications.
//
// A failing call is reported but never retried, and the index change that
// caused it is not rolled back.
type Sink interface {
	// Created is called when a file key starts tracking an object.
	Created(obj v1alpha1.Object) error

	// Updated is called when a tracked object is replaced.
	Updated(oldObj, newObj v1alpha1.Object) error

	// Deleted is called when a tracked object stops being tracked.
	Deleted(obj v1alpha1.Object) error
}
