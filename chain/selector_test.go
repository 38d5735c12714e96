package chain

import (
	"testing"
	"time"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/table"
)

func TestTargetResolve(t *testing.T) {
	epoch := time.Unix(0, 0).UTC()
	later := epoch.Add(5 * time.Second)
	dates := []table.Label{"1970-01-02", "1970-01-01", "1970-01-03"}
	times := []table.Label{later, epoch}
	ints := []table.Label{10, 0, 5}

	tests := []struct {
		name       string
		target     Target
		candidates []table.Label
		want       int
		wantErr    bool
	}{
		{"label match", ByLabel("1970-01-01"), dates, 1, false},
		{"label missing", ByLabel("1970-01-09"), dates, 0, true},
		{"label is type exact", ByLabel(int64(0)), ints, 0, true},
		{"position", ByPosition(2), dates, 2, false},
		{"position out of range", ByPosition(3), dates, 0, true},
		{"negative position", ByPosition(-1), dates, 0, true},
		{"ref prefers label", Ref(0), ints, 1, false},
		{"ref falls back to position", Ref(2), dates, 2, false},
		{"ref zero is not the epoch", Ref(0), times, 0, false},
		{"ref time label", Ref(epoch), times, 1, false},
		{"ref string missing", Ref("x"), dates, 0, true},
		{"ref float is not a position", Ref(1.0), dates, 0, true},
		{"ref integer out of range", Ref(7), dates, 0, true},
		{"zero target", Target{}, dates, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.target.resolve(tc.candidates, axisIndex)
			if tc.wantErr {
				if !errors.HasCode(err, errors.ErrCodeInvalidIdentifier) {
					t.Fatalf("expected INVALID_IDENTIFIER, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("resolve = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTargetString(t *testing.T) {
	tests := map[string]Target{
		"label val":  ByLabel("val"),
		"position 2": ByPosition(2),
		"3":          Ref(3),
	}
	for want, target := range tests {
		if got := target.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}
