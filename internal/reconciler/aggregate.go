package reconciler

import (
	"errors"
	"fmt"
	"strings"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
)

// Step is the labeled outcome of one fallible operation.
type Step struct {
	Label string
	Err   error
}

// Attempt records the outcome of an operation that has already run.
func Attempt(label string, err error) Step {
	return Step{Label: label, Err: err}
}

// LabeledError is one failed participant of an aggregated outcome.
type LabeledError struct {
	Label string
	Err   error
}

func (e *LabeledError) Error() string {
	return fmt.Sprintf("%s: %v", e.Label, e.Err)
}

func (e *LabeledError) Unwrap() error {
	return e.Err
}

// AggregateError combines the failures of independent operations performed
// for one event. Unlike utilerrors.NewAggregate it never collapses failures
// that happen to share a message.
type AggregateError struct {
	errs []error
}

var _ utilerrors.Aggregate = (*AggregateError)(nil)

// Combine folds already-attempted steps into a single result. It returns nil
// when every step succeeded.
func Combine(steps ...Step) error {
	var errs []error
	for _, s := range steps {
		if s.Err != nil {
			errs = append(errs, &LabeledError{Label: s.Label, Err: s.Err})
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &AggregateError{errs: errs}
}

func (a *AggregateError) Error() string {
	msgs := make([]string, len(a.errs))
	for i, err := range a.errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, ", ")
}

// Errors returns the labeled failures in the order they were attempted.
func (a *AggregateError) Errors() []error {
	return a.errs
}

// Is reports whether any participant matches target.
func (a *AggregateError) Is(target error) bool {
	for _, err := range a.errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Unwrap exposes the participants to errors.Is and errors.As.
func (a *AggregateError) Unwrap() []error {
	return a.errs
}
