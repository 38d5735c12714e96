// Package table is the small tabular engine groupchain runs on: labelled
// numeric and object columns sharing a row index, grouping into named
// partitions, concatenation along rows or columns, and row-record
// serialization.
//
// Labels are plain Go values compared by exact dynamic type, so an int 0
// never matches a time.Time at the epoch:
//
//	t, _ := table.New([]table.Label{"a", "b"},
//		table.NewNumericColumn("val", []float64{1, 2}),
//		table.NewStringColumn("site", []string{"x", "y"}))
//	groups, _ := table.GroupBy(t, table.ByColumn("site"))
package table
