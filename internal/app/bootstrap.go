package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"specsync/internal/catalog"
	"specsync/internal/config"
	"specsync/internal/reconciler"
	"specsync/internal/watch"
	"specsync/pkg/logging"
)

// Application owns the long-running watch of one directory.
//
// Example usage:
//
//	cfg := app.NewConfig(false, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config     *Config
	settings   config.Config
	catalog    *catalog.Catalog
	watcher    *watch.Watcher
	reconciler *reconciler.Reconciler
	notifier   notifier
}

// NewApplication performs the bootstrap sequence:
//
//  1. Initializes CLI logging from the debug flag
//  2. Loads the configuration file and applies overrides
//  3. Re-initializes logging with the configured level and format
//  4. Creates the catalog and the reconciler feeding it
//  5. Establishes the directory watch
//
// An error from step 5 wraps watch.ErrWatchSetup.
func NewApplication(cfg *Config) (*Application, error) {
	return newApplication(cfg, os.Stdout)
}

func newApplication(cfg *Config, logOutput io.Writer) (*Application, error) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	logging.InitForCLI(appLogLevel, logOutput)

	settings, err := cfg.resolve()
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load configuration")
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Settings = &settings

	level, err := logging.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, err
	}
	logging.Init(level, logOutput, logging.Format(strings.ToLower(settings.LogFormat)))

	cat, err := catalog.New()
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to create catalog")
		return nil, err
	}

	w, err := watch.New(settings.WatchDir, watch.Options{
		Debounce:  settings.Debounce,
		StopToken: settings.StopToken,
		QueueSize: settings.QueueSize,
	})
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to watch %s", settings.WatchDir)
		return nil, err
	}

	return &Application{
		config:     cfg,
		settings:   settings,
		catalog:    cat,
		watcher:    w,
		reconciler: reconciler.New(settings.WatchDir, cat),
		notifier:   systemdNotifier{},
	}, nil
}

// Catalog exposes the catalog fed by the reconciler.
func (a *Application) Catalog() *catalog.Catalog {
	return a.catalog
}

// Run executes the application until stopped.
//
// SIGINT and SIGTERM cancel the loop. Cancellation, a stop marker and source
// closure all count as a clean exit; Run returns an error only if the event
// pump itself fails.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

func (a *Application) run(ctx context.Context) error {
	defer a.shutdown()

	logging.Info("Bootstrap", "Watching %s", a.settings.WatchDir)
	if err := a.reconciler.Rescan(); err != nil {
		logging.Error("Bootstrap", err, "rescan")
	}
	a.notifier.Ready()

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, cancel := context.WithCancel(gctx)
	defer cancel()

	g.Go(func() error {
		return a.watcher.Run(loopCtx)
	})
	g.Go(func() error {
		defer cancel()
		err := a.reconciler.Run(loopCtx, a.watcher)
		if errors.Is(err, context.Canceled) {
			logging.Info("Bootstrap", "Shutdown requested")
			return nil
		}
		return err
	})

	return g.Wait()
}

func (a *Application) shutdown() {
	a.notifier.Stopping()
	if err := a.watcher.Close(); err != nil {
		logging.Warn("Bootstrap", "Closing watcher: %v", err)
	}

	summary := a.reconciler.Metrics().Summary()
	logging.Info("Bootstrap", "Processed %d events (%d failed), catalog holds %d configs and %d components",
		summary.TotalEvents(), summary.EventFailures, len(a.catalog.Configs()), len(a.catalog.Components()))
}
