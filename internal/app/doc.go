// Package app wires the specsync components together and runs them.
//
// An Application is built in two phases. NewApplication loads the
// configuration file, applies command-line overrides, initializes logging,
// creates the catalog and establishes the directory watch. Failing to
// establish the watch aborts construction. Run then performs the initial
// rescan, signals readiness to systemd and drives the reconcile loop until a
// stop marker arrives, the context is cancelled (SIGINT, SIGTERM) or the
// event source closes.
//
// Check implements the one-shot `specsync check` command: it loads every
// eligible file in a directory once, without watching, and reports the
// result per file.
package app
