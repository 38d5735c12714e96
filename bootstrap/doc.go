// Package bootstrap runs a groupchain job with a uniform lifecycle.
//
// NewApp validates the configuration and initializes the logger. RunTask
// then creates the storage backend, installs OpenTelemetry providers when
// tracing is enabled, runs start hooks, executes the task with signal-based
// cancellation and finally runs stop hooks within a graceful timeout.
//
//	app, err := bootstrap.NewApp(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = app.RunTask(ctx, runner.Run)
//	app.DisplaySummary(os.Stderr)
package bootstrap
