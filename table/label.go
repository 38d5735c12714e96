package table

import (
	"fmt"
	"reflect"
	"strconv"
	"time"
)

// Label identifies a row, a column or a group. Labels are opaque values;
// two labels are equal only when their dynamic types match exactly.
type Label = any

// Pair is a two-level hierarchical label.
type Pair struct {
	Outer Label
	Inner Label
}

// String renders the pair as "(outer, inner)".
func (p Pair) String() string {
	return fmt.Sprintf("(%s, %s)", FormatLabel(p.Outer), FormatLabel(p.Inner))
}

// Display formats used when rendering labels as text.
const (
	labelTimeFormat = "2006-01-02 15:04:05"
	isoTimeFormat   = "2006-01-02T15:04:05"
)

// Equal reports whether two labels are the same. An int 0 never equals a
// float64 0 or a time.Time at the epoch; time.Time values compare by instant.
func Equal(a, b Label) bool {
	switch av := a.(type) {
	case time.Time:
		bv, ok := b.(time.Time)
		return ok && av.Equal(bv)
	case Pair:
		bv, ok := b.(Pair)
		return ok && Equal(av.Outer, bv.Outer) && Equal(av.Inner, bv.Inner)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

// IndexOf returns the position of the first label in labels equal to l, or -1.
func IndexOf(labels []Label, l Label) int {
	for i, candidate := range labels {
		if Equal(candidate, l) {
			return i
		}
	}
	return -1
}

// Contains reports whether l is one of labels.
func Contains(labels []Label, l Label) bool {
	return IndexOf(labels, l) >= 0
}

// FormatLabel returns the default text form of a label.
func FormatLabel(l Label) string {
	switch v := l.(type) {
	case nil:
		return ""
	case string:
		return v
	case time.Time:
		if v.Nanosecond() != 0 {
			return v.Format(labelTimeFormat + ".000000")
		}
		return v.Format(labelTimeFormat)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ISOFormat renders a timestamp the way exported row labels are written:
// 2006-01-02T15:04:05 with microseconds only when non-zero, and the offset
// only for non-UTC locations.
func ISOFormat(t time.Time) string {
	layout := isoTimeFormat
	if t.Nanosecond() != 0 {
		layout += ".000000"
	}
	if t.Location() != time.UTC {
		layout += "Z07:00"
	}
	return t.Format(layout)
}

// Less orders two labels of the same kind. ok is false when the labels cannot
// be ordered against each other.
func Less(a, b Label) (less bool, ok bool) {
	switch av := a.(type) {
	case string:
		bv, isStr := b.(string)
		return isStr && av < bv, isStr
	case time.Time:
		bv, isTime := b.(time.Time)
		return isTime && av.Before(bv), isTime
	case time.Duration:
		bv, isDur := b.(time.Duration)
		return isDur && av < bv, isDur
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !ra.IsValid() || !rb.IsValid() || ra.Type() != rb.Type() {
		return false, false
	}
	switch ra.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ra.Int() < rb.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ra.Uint() < rb.Uint(), true
	case reflect.Float32, reflect.Float64:
		return ra.Float() < rb.Float(), true
	}
	return false, false
}

// Orderable reports whether every pair of labels can be compared with Less.
func Orderable(labels []Label) bool {
	for i := 1; i < len(labels); i++ {
		if _, ok := Less(labels[0], labels[i]); !ok {
			return false
		}
	}
	return true
}

// IsInteger reports whether l holds a Go integer value and returns it.
func IsInteger(l Label) (int, bool) {
	rv := reflect.ValueOf(l)
	if !rv.IsValid() {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if _, isDur := l.(time.Duration); isDur {
			return 0, false
		}
		return int(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), true
	}
	return 0, false
}

// RangeIndex returns the labels 0..n-1 as ints.
func RangeIndex(n int) []Label {
	idx := make([]Label, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
