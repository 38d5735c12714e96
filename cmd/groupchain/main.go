// groupchain reads a CSV table from storage, groups it by a column, applies
// a configured chain of per-group steps and writes the recombined groups as
// a JSON document.
//
// Configuration is read from cmd/groupchain/config.yml (or the -config
// path), an optional .env file and GROUPCHAIN_* environment variables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/kbukum/groupchain/bootstrap"
	"github.com/kbukum/groupchain/config"
	"github.com/kbukum/groupchain/runner"
	"github.com/kbukum/groupchain/version"

	_ "github.com/kbukum/groupchain/storage/local"
	_ "github.com/kbukum/groupchain/storage/s3"
)

// Flags holds the command line options.
type Flags struct {
	ConfigFile string
	EnvFile    string
	Version    bool
	Summary    bool
}

func initFlags() *Flags {
	var f Flags
	flag.StringVar(&f.ConfigFile, "config", "", "path to the YAML config file (searched for when empty)")
	flag.StringVar(&f.EnvFile, "env", "", "path to a .env file (searched for when empty)")
	flag.BoolVar(&f.Version, "version", false, "print the version and exit")
	flag.BoolVar(&f.Summary, "summary", true, "print a run summary to stderr")
	return &f
}

func main() {
	f := initFlags()
	flag.Parse()

	if f.Version {
		fmt.Println(version.Get().String())
		return
	}
	if err := run(context.Background(), f); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, f *Flags) error {
	var opts []config.LoaderOption
	if f.ConfigFile != "" {
		opts = append(opts, config.WithConfigFile(f.ConfigFile))
	}
	if f.EnvFile != "" {
		opts = append(opts, config.WithEnvFile(f.EnvFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}
	if cfg.Version == "" {
		cfg.Version = version.Get().Short()
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return err
	}
	err = app.RunTask(ctx, runner.Run)
	if f.Summary {
		app.DisplaySummary(os.Stderr)
	}
	return err
}
