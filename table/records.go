package table

// Field is one named cell of a row record.
type Field struct {
	Name  string
	Value any
}

// Record is a row rendered as ordered fields, one per column.
type Record []Field

// Get returns the value of the first field named name.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Records serializes the table row by row. Field names are the text form of
// the column labels and fields keep the column order.
func (t *Table) Records() []Record {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = FormatLabel(c.label)
	}
	out := make([]Record, t.Len())
	for r := range out {
		rec := make(Record, len(t.cols))
		for i, c := range t.cols {
			rec[i] = Field{Name: names[i], Value: c.Value(r)}
		}
		out[r] = rec
	}
	return out
}
