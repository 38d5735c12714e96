package chain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/observability"
	"github.com/kbukum/groupchain/storage"
	"github.com/kbukum/groupchain/table"
)

// DefaultIDField is the record field that carries the row label.
const DefaultIDField = "idx_"

type exportOptions struct {
	idField string
	sep     string
	axis    table.Axis
	keep    bool
}

// ExportOption configures WriteJSON and ToJSON.
type ExportOption func(*exportOptions)

// WithIDField names the field that carries each row's label. An empty name
// leaves the label out.
func WithIDField(name string) ExportOption {
	return func(o *exportOptions) { o.idField = name }
}

// WithJoinSeparator sets the separator of the joined column names. An empty
// separator keeps the concatenated names.
func WithJoinSeparator(sep string) ExportOption {
	return func(o *exportOptions) { o.sep = sep }
}

// WithExportAxis sets the concatenation axis. Defaults to table.Columns.
func WithExportAxis(axis table.Axis) ExportOption {
	return func(o *exportOptions) { o.axis = axis }
}

// KeepPipelineOnExport leaves the steps queued after a successful export.
func KeepPipelineOnExport() ExportOption {
	return func(o *exportOptions) { o.keep = true }
}

func (o exportOptions) concatOptions() []ConcatOption {
	naming := NamingJoin
	if o.sep == "" {
		naming = NamingNone
	}
	opts := []ConcatOption{WithNaming(naming), WithSeparator(o.sep), WithAxis(o.axis)}
	if o.keep {
		opts = append(opts, KeepPipeline())
	}
	return opts
}

// WriteJSON concatenates the transformed groups with joined names and writes
// them to w as {"data": [record, ...]}, one record per row.
func (c *Chain) WriteJSON(ctx context.Context, w io.Writer, opts ...ExportOption) error {
	o := exportOptions{idField: DefaultIDField, sep: DefaultSeparator, axis: table.Columns}
	for _, opt := range opts {
		opt(&o)
	}
	t, err := c.Concat(ctx, o.concatOptions()...)
	if err != nil {
		return err
	}
	return encodeJSON(w, t, o.idField)
}

// ToJSON writes the WriteJSON document to path in store.
func (c *Chain) ToJSON(ctx context.Context, store storage.Storage, path string, opts ...ExportOption) error {
	oc := observability.NewOperationContext(c.id, "export", c.metrics)
	ctx, span := oc.Start(ctx, observability.SpanExport)
	observability.SetSpanAttribute(ctx, observability.AttrPath, path)

	err := c.toJSON(ctx, store, path, opts)
	oc.End(ctx, span, errorCode(err), err)
	return err
}

func (c *Chain) toJSON(ctx context.Context, store storage.Storage, path string, opts []ExportOption) error {
	if store == nil {
		return errors.InvalidInput("storage", "nil storage")
	}
	var buf bytes.Buffer
	if err := c.WriteJSON(ctx, &buf, opts...); err != nil {
		return err
	}
	size := buf.Len()
	if err := store.Upload(ctx, path, &buf); err != nil {
		return errors.Wrap(err)
	}
	c.log.Info("groups exported", logger.Fields(logger.FieldPath, path, "bytes", size))
	return nil
}

// exportRecords turns each row into ordered fields. Repeated names keep
// their first position and their last value; the id field is added last.
func exportRecords(t *table.Table, idField string) []table.Record {
	records := t.Records()
	out := make([]table.Record, len(records))
	for r, rec := range records {
		var merged table.Record
		set := func(name string, v any) {
			for i := range merged {
				if merged[i].Name == name {
					merged[i].Value = v
					return
				}
			}
			merged = append(merged, table.Field{Name: name, Value: v})
		}
		for _, f := range rec {
			set(f.Name, f.Value)
		}
		if idField != "" {
			set(idField, rowLabelText(t.RowLabel(r)))
		}
		out[r] = merged
	}
	return out
}

func rowLabelText(l table.Label) string {
	if ts, ok := l.(time.Time); ok {
		return table.ISOFormat(ts)
	}
	return table.FormatLabel(l)
}

func encodeJSON(w io.Writer, t *table.Table, idField string) error {
	enc := jsontext.NewEncoder(w, jsontext.SpaceAfterColon(true), jsontext.SpaceAfterComma(true))
	write := func(tok jsontext.Token) error { return enc.WriteToken(tok) }

	if err := writeAll(write, jsontext.ObjectStart, jsontext.String("data"), jsontext.ArrayStart); err != nil {
		return errors.IO("write json", err)
	}
	for _, rec := range exportRecords(t, idField) {
		if err := write(jsontext.ObjectStart); err != nil {
			return errors.IO("write json", err)
		}
		for _, f := range rec {
			if err := write(jsontext.String(f.Name)); err != nil {
				return errors.IO("write json", err)
			}
			if err := writeCell(enc, f.Value); err != nil {
				return err
			}
		}
		if err := write(jsontext.ObjectEnd); err != nil {
			return errors.IO("write json", err)
		}
	}
	if err := writeAll(write, jsontext.ArrayEnd, jsontext.ObjectEnd); err != nil {
		return errors.IO("write json", err)
	}
	return nil
}

func writeAll(write func(jsontext.Token) error, toks ...jsontext.Token) error {
	for _, tok := range toks {
		if err := write(tok); err != nil {
			return err
		}
	}
	return nil
}

// writeCell encodes one cell. Non-finite floats become the strings "NaN",
// "Infinity" and "-Infinity".
func writeCell(enc *jsontext.Encoder, v any) error {
	var tok jsontext.Token
	switch x := v.(type) {
	case nil:
		tok = jsontext.Null
	case float64:
		switch {
		case math.IsNaN(x):
			tok = jsontext.String("NaN")
		case math.IsInf(x, 1):
			tok = jsontext.String("Infinity")
		case math.IsInf(x, -1):
			tok = jsontext.String("-Infinity")
		default:
			tok = jsontext.Float(x)
		}
	case string:
		tok = jsontext.String(x)
	case bool:
		tok = jsontext.Bool(x)
	case time.Time:
		tok = jsontext.String(table.ISOFormat(x))
	case table.Pair:
		tok = jsontext.String(x.String())
	default:
		raw, err := json.Marshal(x)
		if err != nil {
			return errors.InvalidInput("cell", fmt.Sprintf("cannot encode %T", v)).WithCause(err)
		}
		if err := enc.WriteValue(jsontext.Value(raw)); err != nil {
			return errors.IO("write json", err)
		}
		return nil
	}
	if err := enc.WriteToken(tok); err != nil {
		return errors.IO("write json", err)
	}
	return nil
}
