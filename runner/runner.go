package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/groupchain/bootstrap"
	"github.com/kbukum/groupchain/chain"
	"github.com/kbukum/groupchain/config"
	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/storage"
	"github.com/kbukum/groupchain/table"
)

// Run loads the input, builds the chain and exports it.
func Run(ctx context.Context, app *bootstrap.App) error {
	cfg := app.Cfg
	log := logger.Get("runner")

	start := time.Now()
	t, err := Load(ctx, app.Storage, cfg.Input)
	if err != nil {
		return err
	}
	app.Summary.TrackStage("load", fmt.Sprintf("%s: %d rows, %d columns", cfg.Input.Path, t.Len(), t.Width()), time.Since(start))

	start = time.Now()
	c, err := Build(t, cfg, chain.WithLogger(app.Logger.WithComponent("chain")), chain.WithMetrics(app.Metrics))
	if err != nil {
		return err
	}
	groups, err := c.Groups()
	if err != nil {
		return err
	}
	app.Summary.TrackStage("build", fmt.Sprintf("%d groups, %d steps", len(groups), c.Steps()), time.Since(start))

	start = time.Now()
	if err := Export(ctx, c, app.Storage, cfg.Output); err != nil {
		return err
	}
	app.Summary.TrackStage("export", cfg.Output.Path, time.Since(start))

	log.Info("job finished", logger.Fields(
		logger.FieldChainID, c.ID(),
		logger.FieldPath, cfg.Output.Path,
		logger.FieldGroups, len(groups),
	))
	return nil
}

// Load downloads and parses the input CSV.
func Load(ctx context.Context, store storage.Storage, in config.InputConfig) (*table.Table, error) {
	rc, err := store.Download(ctx, in.Path)
	if err != nil {
		return nil, errors.Wrap(err).WithDetail(logger.FieldPath, in.Path)
	}
	defer rc.Close()

	opts := table.CSVOptions{IndexColumn: in.IndexColumn, IndexType: in.IndexType}
	if in.Delimiter != "" {
		opts.Delimiter = []rune(in.Delimiter)[0]
	}
	t, err := table.ReadCSV(rc, opts)
	if err != nil {
		return nil, errors.Wrap(err).WithDetail(logger.FieldPath, in.Path)
	}
	return t, nil
}

// Build wraps t, groups it and queues the configured steps.
func Build(t *table.Table, cfg *config.AppConfig, opts ...chain.Option) (*chain.Chain, error) {
	var groupOpts []table.GroupOption
	if cfg.Group.KeepOrder {
		groupOpts = append(groupOpts, table.KeepOrder())
	}
	c := chain.FromTable(t, opts...).GroupBy(table.ByColumn(cfg.Group.Column), groupOpts...)
	groups, err := c.Groups()
	if err != nil {
		return nil, err
	}

	kind := cfg.Input.IndexType
	if cfg.Input.IndexColumn == "" {
		kind = table.IndexNumber
	}
	tr := translator{groups: groups, indexType: kind, log: logger.Get("runner")}
	for i, step := range cfg.Steps {
		if err := tr.queue(c, step); err != nil {
			return nil, errors.Wrap(err).WithDetail("step", i)
		}
	}
	return c, c.Err()
}

// ExportOptions translates the output section into export options.
func ExportOptions(out config.OutputConfig) ([]chain.ExportOption, error) {
	axis, err := table.ParseAxis(out.Axis)
	if err != nil {
		return nil, err
	}
	sep := out.Separator
	if out.Naming == config.NamingNone {
		sep = ""
	}
	return []chain.ExportOption{
		chain.WithIDField(out.IDField),
		chain.WithJoinSeparator(sep),
		chain.WithExportAxis(axis),
	}, nil
}

// Export writes the chain's JSON document to the output path.
func Export(ctx context.Context, c *chain.Chain, store storage.Storage, out config.OutputConfig) error {
	opts, err := ExportOptions(out)
	if err != nil {
		return err
	}
	return c.ToJSON(ctx, store, out.Path, opts...)
}
