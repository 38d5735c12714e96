package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kbukum/groupchain/config"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/observability"
	"github.com/kbukum/groupchain/storage"
)

// DefaultGracefulTimeout bounds the shutdown hooks.
const DefaultGracefulTimeout = 15 * time.Second

// Task is a finite unit of work run by RunTask.
type Task func(ctx context.Context, app *App) error

// App carries the resources a groupchain run needs: configuration, logger,
// object storage and, when tracing is enabled, telemetry providers.
//
// Example:
//
//	app, err := bootstrap.NewApp(cfg)
//	if err != nil {
//	    return err
//	}
//	return app.RunTask(ctx, func(ctx context.Context, a *bootstrap.App) error {
//	    return process(ctx, a.Storage)
//	})
type App struct {
	Name    string
	Version string
	Cfg     *config.AppConfig
	Logger  *logger.Logger
	Storage storage.Storage
	Metrics *observability.Metrics
	Summary *Summary

	gracefulTimeout time.Duration

	onStart []Hook
	onStop  []Hook
}

// NewApp creates an application from cfg. It applies defaults, validates the
// config and initializes the logger. Storage and telemetry are set up by
// RunTask.
func NewApp(cfg *config.AppConfig, opts ...Option) (*App, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	app := &App{
		Name:            cfg.Name,
		Version:         cfg.Version,
		Cfg:             cfg,
		gracefulTimeout: DefaultGracefulTimeout,
	}

	o := resolveOptions(opts)
	if o.gracefulTimeout != nil {
		app.gracefulTimeout = *o.gracefulTimeout
	}
	app.Storage = o.storage

	if o.logger != nil {
		app.Logger = o.logger
		logger.SetGlobalLogger(o.logger)
	} else {
		logger.Init(&cfg.Logging)
		app.Logger = logger.GetGlobalLogger()
	}
	logger.RegisterDefaults(componentLoggers...)

	app.Summary = NewSummary(cfg.Name, cfg.Version)
	return app, nil
}

// componentLoggers are the named loggers seeded into the registry.
var componentLoggers = []string{"config", "storage", "chain", "runner"}

// RunTask initializes storage and telemetry, runs the start hooks, executes
// task and shuts down. SIGINT and SIGTERM cancel the task's context.
//
// The task's error wins over a shutdown error.
func (a *App) RunTask(ctx context.Context, task Task) error {
	start := time.Now()
	if err := a.startup(ctx); err != nil {
		a.Summary.SetDuration(time.Since(start))
		a.Summary.SetResult(err)
		// Stop hooks registered before the failure, such as telemetry
		// provider shutdowns, still run.
		_ = a.stop()
		return err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case sig := <-sigCh:
			a.Logger.Info("Received signal, canceling task", map[string]interface{}{
				"signal": sig.String(),
			})
			cancel()
		case <-taskCtx.Done():
		}
	}()

	taskErr := task(taskCtx, a)
	a.Summary.SetDuration(time.Since(start))
	a.Summary.SetResult(taskErr)

	if stopErr := a.stop(); stopErr != nil {
		if taskErr != nil {
			return taskErr
		}
		return stopErr
	}
	return taskErr
}

// startup performs initialization before the task runs.
func (a *App) startup(ctx context.Context) error {
	a.Logger.Info("Starting application", map[string]interface{}{
		"name":    a.Name,
		"version": a.Version,
	})

	if err := a.initTelemetry(ctx); err != nil {
		return fmt.Errorf("telemetry initialization failed: %w", err)
	}

	if err := a.initStorage(); err != nil {
		return fmt.Errorf("storage initialization failed: %w", err)
	}

	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	return nil
}

// initStorage creates the configured backend unless one was injected.
func (a *App) initStorage() error {
	if a.Storage != nil {
		a.Summary.TrackInfrastructure("storage", "injected", true)
		return nil
	}
	s, err := storage.New(a.Cfg.Storage, a.Logger)
	if err != nil {
		a.Summary.TrackInfrastructure("storage", a.Cfg.Storage.Provider, false)
		return err
	}
	a.Storage = s
	a.Summary.TrackInfrastructure("storage", describeStorage(a.Cfg.Storage), true)
	return nil
}

func describeStorage(cfg storage.Config) string {
	switch cfg.Provider {
	case storage.ProviderS3:
		return fmt.Sprintf("s3 (bucket %s, region %s)", cfg.Bucket, cfg.Region)
	default:
		return fmt.Sprintf("%s (%s)", cfg.Provider, cfg.BasePath)
	}
}

// Shutdown runs the stop hooks. Use when managing your own lifecycle.
func (a *App) Shutdown(ctx context.Context) error {
	return a.stop()
}

// stop runs the stop hooks within the graceful timeout.
func (a *App) stop() error {
	a.Logger.Debug("Shutting down application", map[string]interface{}{
		"timeout": a.gracefulTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var shutdownErr error
	if err := runHooks(ctx, reversed(a.onStop)); err != nil {
		a.Logger.Error("OnStop hook error", map[string]interface{}{
			"error": err.Error(),
		})
		shutdownErr = err
	}

	a.Logger.Info("Application shutdown complete")
	return shutdownErr
}
