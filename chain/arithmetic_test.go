package chain

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/table"
)

func readingsTable(t *testing.T) *table.Table {
	t.Helper()
	return mustTable(t,
		[]table.Label{"t0", "t1", "t2"},
		table.NewNumericColumn("a", []float64{10, 15, 20}),
		table.NewStringColumn("name", []string{"x", "y", "z"}),
		table.NewNumericColumn("b", []float64{2, 4, 0}),
	)
}

func TestExecute_RowReference(t *testing.T) {
	tests := []struct {
		name  string
		op    Operation
		ref   Target
		wantA []float64
		wantB []float64
	}{
		{"subtract first row", Subtract, ByPosition(0), []float64{0, 5, 10}, []float64{0, 2, -2}},
		{"add by label", Add, ByLabel("t1"), []float64{25, 30, 35}, []float64{6, 8, 4}},
		{"multiply by ref", Multiply, Ref("t0"), []float64{100, 150, 200}, []float64{4, 8, 0}},
		{"divide by position ref", Divide, Ref(1), []float64{10.0 / 15, 1, 20.0 / 15}, []float64{0.5, 1, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Execute(readingsTable(t), tc.op, tc.ref, nil)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.wantA, floatsOf(t, out, "a"), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("column a (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantB, floatsOf(t, out, "b"), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
				t.Errorf("column b (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExecute_ColumnReference(t *testing.T) {
	out, err := Execute(readingsTable(t), Divide, Target{}, ptr(ByLabel("b")))
	if err != nil {
		t.Fatal(err)
	}
	wantA := []float64{5, 3.75, math.Inf(1)}
	wantB := []float64{1, 1, math.NaN()}
	if diff := cmp.Diff(wantA, floatsOf(t, out, "a")); diff != "" {
		t.Errorf("column a (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantB, floatsOf(t, out, "b"), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("column b (-want +got):\n%s", diff)
	}
}

func TestExecute_ColumnPositionCountsNumericColumnsOnly(t *testing.T) {
	out, err := Execute(readingsTable(t), Subtract, Target{}, ptr(ByPosition(1)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{8, 11, 20}, floatsOf(t, out, "a")); diff != "" {
		t.Errorf("column a (-want +got):\n%s", diff)
	}
}

func TestExecute_DivideByZeroRow(t *testing.T) {
	out, err := Execute(readingsTable(t), Divide, ByPosition(2), nil)
	if err != nil {
		t.Fatalf("division by zero must not fail: %v", err)
	}
	got := floatsOf(t, out, "b")
	if !math.IsInf(got[0], 1) || !math.IsInf(got[1], 1) || !math.IsNaN(got[2]) {
		t.Errorf("expected [+Inf +Inf NaN], got %v", got)
	}
}

func TestExecute_KeepsShapeAndInput(t *testing.T) {
	in := readingsTable(t)
	out, err := Execute(in, Subtract, ByPosition(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in.ColumnLabels(), out.ColumnLabels()); diff != "" {
		t.Errorf("column labels changed (-in +out):\n%s", diff)
	}
	if diff := cmp.Diff(in.Index(), out.Index()); diff != "" {
		t.Errorf("index changed (-in +out):\n%s", diff)
	}
	names, _ := out.ColumnByLabel("name")
	if diff := cmp.Diff([]any{"x", "y", "z"}, names.Values()); diff != "" {
		t.Errorf("object column changed (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{10, 15, 20}, floatsOf(t, in, "a")); diff != "" {
		t.Errorf("input mutated (-want +got):\n%s", diff)
	}
}

func TestExecute_TypeExactTimestampIndex(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()
	tbl := mustTable(t,
		[]table.Label{epoch.Add(5 * time.Second), epoch},
		table.NewNumericColumn("v", []float64{3, 7}),
	)
	out, err := Execute(tbl, Subtract, Ref(0), nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0, 4}, floatsOf(t, out, "v")); diff != "" {
		t.Errorf("0 must resolve as a position, not the epoch label (-want +got):\n%s", diff)
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tbl    *table.Table
		op     Operation
		ref    Target
		column *Target
		code   errors.ErrorCode
	}{
		{"nil table", nil, Subtract, ByPosition(0), nil, errors.ErrCodeInvalidInput},
		{"unknown op", readingsTable(t), Operation(9), ByPosition(0), nil, errors.ErrCodeInvalidInput},
		{"missing row", readingsTable(t), Subtract, ByLabel("t9"), nil, errors.ErrCodeInvalidIdentifier},
		{"object column", readingsTable(t), Subtract, Target{}, ptr(ByLabel("name")), errors.ErrCodeInvalidIdentifier},
		{"column out of range", readingsTable(t), Subtract, Target{}, ptr(ByPosition(2)), errors.ErrCodeInvalidIdentifier},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Execute(tc.tbl, tc.op, tc.ref, tc.column)
			if !errors.HasCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestParseOperation(t *testing.T) {
	for _, op := range []Operation{Subtract, Add, Multiply, Divide} {
		got, err := ParseOperation(op.String())
		if err != nil || got != op {
			t.Errorf("ParseOperation(%q) = %v, %v", op.String(), got, err)
		}
	}
	if _, err := ParseOperation("power"); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	if got := Operation(9).String(); got != "unknown" {
		t.Errorf("unexpected name %q", got)
	}
}

func TestResetIndex(t *testing.T) {
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	epoch := time.Unix(0, 0).UTC()
	tests := []struct {
		name   string
		index  []table.Label
		pos    int
		future bool
		want   []table.Label
	}{
		{
			name:   "timestamps to epoch offsets",
			index:  []table.Label{base, base.Add(time.Minute)},
			future: true,
			want:   []table.Label{epoch, epoch.Add(time.Minute)},
		},
		{
			name:  "timestamps to durations",
			index: []table.Label{base, base.Add(time.Minute)},
			want:  []table.Label{time.Duration(0), time.Minute},
		},
		{
			name:  "later reset position",
			index: []table.Label{base, base.Add(time.Minute)},
			pos:   1,
			want:  []table.Label{-time.Minute, time.Duration(0)},
		},
		{
			name:  "floats",
			index: []table.Label{1.5, 3.0},
			want:  []table.Label{0.0, 1.5},
		},
		{
			name:  "ints",
			index: []table.Label{10, 12},
			pos:   1,
			want:  []table.Label{-2, 0},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vals := make([]float64, len(tc.index))
			out, err := ResetIndex(mustTable(t, tc.index, table.NewNumericColumn("v", vals)), tc.pos, tc.future)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, out.Index()); diff != "" {
				t.Errorf("index (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResetIndex_Errors(t *testing.T) {
	tests := []struct {
		name  string
		index []table.Label
		pos   int
		code  errors.ErrorCode
	}{
		{"strings", []table.Label{"a", "b"}, 0, errors.ErrCodeInvalidInput},
		{"mixed", []table.Label{1, "b"}, 0, errors.ErrCodeInvalidInput},
		{"out of range", []table.Label{1, 2}, 2, errors.ErrCodeInvalidIdentifier},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tbl := mustTable(t, tc.index, table.NewNumericColumn("v", make([]float64, len(tc.index))))
			if _, err := ResetIndex(tbl, tc.pos, true); !errors.HasCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func ptr(t Target) *Target { return &t }
