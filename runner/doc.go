// Package runner executes a configured groupchain job: it reads the input
// CSV from storage, groups it, translates the configured steps into chain
// operations and exports the recombined result as JSON.
//
// Run has the bootstrap.Task signature:
//
//	err := app.RunTask(ctx, runner.Run)
package runner
