// Package logging provides subsystem-tagged structured logging for specsync.
//
// The package wraps Go's standard slog package behind a small set of
// package-level functions so every component logs the same way:
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//
//	logging.Info("Reconciler", "create %s", path)
//	logging.Debug("Watch", "debounced %s", path)
//	logging.Warn("Config", "no config.yaml found at %s, using defaults", path)
//	logging.Error("Reconciler", err, "watch error")
//
// Every entry carries a "subsystem" attribute; Error additionally carries the
// error text under "error". Level filtering happens in the slog handler, so
// suppressed messages are never formatted.
//
// Init selects between the text and JSON handlers:
//
//	logging.Init(logging.LevelDebug, os.Stderr, logging.FormatJSON)
//
// The logger is safe for concurrent use.
package logging
