package chain

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/table"
)

func mustTable(t *testing.T, index []table.Label, cols ...*table.Column) *table.Table {
	t.Helper()
	tbl, err := table.New(index, cols...)
	if err != nil {
		t.Fatalf("table.New: %v", err)
	}
	return tbl
}

// sensorTable has groups A (r1, r3), B (r0, r2) and C (r4).
func sensorTable(t *testing.T) *table.Table {
	t.Helper()
	return mustTable(t,
		[]table.Label{"r0", "r1", "r2", "r3", "r4"},
		table.NewStringColumn("sensor", []string{"B", "A", "B", "A", "C"}),
		table.NewNumericColumn("val", []float64{1, 2, 3, 4, 5}),
	)
}

func newSensorChain(t *testing.T) *Chain {
	t.Helper()
	return FromTable(sensorTable(t), WithLogger(logger.Nop())).GroupBy(table.ByColumn("sensor"))
}

func floatsOf(t *testing.T, tbl *table.Table, label table.Label) []float64 {
	t.Helper()
	col, ok := tbl.ColumnByLabel(label)
	if !ok {
		t.Fatalf("no column %v in %v", label, tbl.ColumnLabels())
	}
	return col.Floats()
}

func labelsOf(groups []Group) []table.Label {
	out := make([]table.Label, len(groups))
	for i, g := range groups {
		out[i] = g.Label
	}
	return out
}

func addConst(n float64) Func {
	return func(t *table.Table) (*table.Table, error) {
		for _, p := range t.NumericColumns() {
			col := t.Column(p)
			for r := 0; r < col.Len(); r++ {
				col.SetFloat(r, col.Float(r)+n)
			}
		}
		return t, nil
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		wantErr bool
	}{
		{"table", sensorTable(t), false},
		{"series", table.NewSeries(nil, []float64{1, 2}), false},
		{"nil table", (*table.Table)(nil), true},
		{"slice", []float64{1, 2}, true},
		{"nil", nil, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := Wrap(tc.in, WithLogger(logger.Nop()))
			if tc.wantErr {
				if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
					t.Fatalf("expected INVALID_INPUT, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.ID() == "" {
				t.Error("expected a chain id")
			}
		})
	}
}

func TestFromSeries_DefaultName(t *testing.T) {
	c := FromSeries(table.NewSeries(nil, []float64{1, 2}), "")
	groups, err := c.GroupBy(table.ByIndex()).Groups()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]table.Label{DefaultSeriesColumn}, groups[0].Table.ColumnLabels()); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFromTable_CopiesSource(t *testing.T) {
	src := sensorTable(t)
	c := FromTable(src).GroupBy(table.ByColumn("sensor"))
	src.Column(1).SetFloat(1, 99)

	groups, err := c.Groups()
	if err != nil {
		t.Fatal(err)
	}
	if got := floatsOf(t, groups[0].Table, "val"); got[0] != 2 {
		t.Errorf("chain should not alias the source table, got %v", got)
	}
}

func TestRename(t *testing.T) {
	t.Run("single column", func(t *testing.T) {
		c := FromSeries(table.NewSeries(nil, []float64{1}), "").Rename("temp").GroupBy(table.ByIndex())
		groups, err := c.Groups()
		if err != nil {
			t.Fatal(err)
		}
		if got := groups[0].Table.ColumnLabels(); !table.Equal(got[0], "temp") {
			t.Errorf("expected column temp, got %v", got)
		}
	})
	t.Run("wider table is unchanged", func(t *testing.T) {
		groups, err := FromTable(sensorTable(t)).Rename("x").GroupBy(table.ByColumn("sensor")).Groups()
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff([]table.Label{"sensor", "val"}, groups[0].Table.ColumnLabels()); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestGroupBy_Twice(t *testing.T) {
	c := newSensorChain(t).GroupBy(table.ByIndex())
	groups, err := c.Groups()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]table.Label{"A", "B", "C"}, labelsOf(groups)); diff != "" {
		t.Errorf("second GroupBy should be a no-op (-want +got):\n%s", diff)
	}
}

func TestGroupBy_ErrorIsSticky(t *testing.T) {
	c := FromTable(sensorTable(t)).GroupBy(table.ByColumn("missing")).Apply(addConst(1))
	if !errors.HasCode(c.Err(), errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", c.Err())
	}
	if _, err := c.Concat(context.Background()); err != c.Err() {
		t.Errorf("expected the recorded error from Concat, got %v", err)
	}
	if c.Steps() != 0 {
		t.Errorf("no steps should be queued after an error, got %d", c.Steps())
	}
}

func TestNotGrouped(t *testing.T) {
	c := FromTable(sensorTable(t)).Apply(addConst(1))
	ctx := context.Background()

	if _, err := c.Groups(); !errors.HasCode(err, errors.ErrCodePipelineNotReady) {
		t.Errorf("Groups: expected PIPELINE_NOT_READY, got %v", err)
	}
	if _, err := c.LabelForGroup(0); !errors.HasCode(err, errors.ErrCodePipelineNotReady) {
		t.Errorf("LabelForGroup: expected PIPELINE_NOT_READY, got %v", err)
	}
	if _, err := c.TransformedGroups(ctx); !errors.HasCode(err, errors.ErrCodePipelineNotReady) {
		t.Errorf("TransformedGroups: expected PIPELINE_NOT_READY, got %v", err)
	}
	if _, err := c.Concat(ctx); !errors.HasCode(err, errors.ErrCodePipelineNotReady) {
		t.Errorf("Concat: expected PIPELINE_NOT_READY, got %v", err)
	}
}

func TestLabelForGroup(t *testing.T) {
	c := newSensorChain(t)
	got, err := c.LabelForGroup(1)
	if err != nil {
		t.Fatal(err)
	}
	if !table.Equal(got, "B") {
		t.Errorf("expected B, got %v", got)
	}
	if _, err := c.LabelForGroup(3); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT out of range, got %v", err)
	}
}
