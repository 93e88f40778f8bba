// Package reconciler turns filesystem notifications for a flat directory of
// declarative object files into object lifecycle notifications.
//
// # Overview
//
// A Reconciler owns a directory index (file key -> last successfully loaded
// object) and a Sink. It consumes one FileEvent at a time from an
// EventSource, works out which lifecycle transitions the event implies,
// updates the index and then notifies the sink:
//
//   - Sink.Created when a key goes from absent to present
//   - Sink.Updated when a present key's object is replaced
//   - Sink.Deleted when a present key becomes absent
//
// # Event handling
//
//   - Create / Write: the file is (re)loaded. A failed reload drops the
//     stale entry and retracts it from the sink.
//   - Remove: the entry is dropped and retracted.
//   - Rename: the old key is dropped first, then the destination is loaded
//     and the two outcomes are folded into the smallest set of
//     notifications (a plain move becomes one Updated).
//   - Rescan: every regular file in the directory is reloaded. Entries whose
//     files vanished without a Remove are left in place and only logged.
//   - Error: logged, processing continues.
//   - Stop: Run returns.
//
// # Failures
//
// When an event needs several fallible steps (sink calls and a load), all of
// them are attempted and their failures are combined into one
// *AggregateError. Sink failures never roll back the index: the index
// tracks what is loadable on disk even when the sink falls behind.
//
// # Concurrency
//
// Run processes events strictly sequentially on the calling goroutine. The
// index is never touched from anywhere else, so it carries no locking.
//
// Example usage:
//
//	r := reconciler.New(dir, sink)
//	if err := r.Rescan(); err != nil {
//	    logging.Error("Reconciler", err, "rescan")
//	}
//	return r.Run(ctx, source)
package reconciler
