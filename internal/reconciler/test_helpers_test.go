package reconciler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"specsync/pkg/apis/specsync/v1alpha1"
)

// =============================================================================
// recordingSink - records every lifecycle notification
// =============================================================================

type sinkCall struct {
	Op  string
	Old v1alpha1.Object
	New v1alpha1.Object
}

type recordingSink struct {
	calls []sinkCall

	// failFor returns the error a call should fail with, or nil.
	failFor func(op string, obj v1alpha1.Object) error
}

func newRecordingSink() *recordingSink {
	return &recordingSink{}
}

func (s *recordingSink) fail(op string, obj v1alpha1.Object) error {
	if s.failFor == nil {
		return nil
	}
	return s.failFor(op, obj)
}

func (s *recordingSink) Created(obj v1alpha1.Object) error {
	s.calls = append(s.calls, sinkCall{Op: labelCreated, New: obj})
	return s.fail(labelCreated, obj)
}

func (s *recordingSink) Updated(oldObj, newObj v1alpha1.Object) error {
	s.calls = append(s.calls, sinkCall{Op: labelUpdated, Old: oldObj, New: newObj})
	return s.fail(labelUpdated, oldObj)
}

func (s *recordingSink) Deleted(obj v1alpha1.Object) error {
	s.calls = append(s.calls, sinkCall{Op: labelDeleted, Old: obj})
	return s.fail(labelDeleted, obj)
}

func (s *recordingSink) ops() []string {
	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.Op
	}
	return out
}

func (s *recordingSink) reset() {
	s.calls = nil
}

// =============================================================================
// sliceSource - replays a fixed list of events
// =============================================================================

type sliceSource struct {
	events []FileEvent
}

func (s *sliceSource) Receive(ctx context.Context) (FileEvent, error) {
	if err := ctx.Err(); err != nil {
		return FileEvent{}, err
	}
	if len(s.events) == 0 {
		return FileEvent{}, ErrSourceClosed
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

// =============================================================================
// fixtures
// =============================================================================

func componentYAML(name, typ string) string {
	return fmt.Sprintf(`apiVersion: specsync.dev/v1alpha1
kind: Component
metadata:
  name: %s
spec:
  type: %s
`, name, typ)
}

func writeComponent(t *testing.T, dir, file, name, typ string) string {
	t.Helper()
	return writeRaw(t, dir, file, componentYAML(name, typ))
}

func writeRaw(t *testing.T, dir, file, content string) string {
	t.Helper()
	path := filepath.Join(dir, file)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func component(name, typ string) v1alpha1.Object {
	obj := v1alpha1.Object{Metadata: v1alpha1.ObjectMeta{Name: name}}
	obj.APIVersion = "specsync.dev/v1alpha1"
	obj.Kind = v1alpha1.KindComponent
	return obj.WithType(typ)
}

func newTestReconciler(t *testing.T) (*Reconciler, *recordingSink, string) {
	t.Helper()
	dir := t.TempDir()
	sink := newRecordingSink()
	return New(dir, sink), sink, dir
}
