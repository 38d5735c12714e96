package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/kbukum/groupchain/errors"
)

// Index label types understood by ReadCSV.
const (
	IndexString   = "string"
	IndexNumber   = "number"
	IndexDatetime = "datetime"
)

// dateParseFormats lists formats tried when parsing datetime labels, in order of preference.
var dateParseFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02 15:04:05.000",
	"2006-01-02",
	"2006/01/02",
}

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	IndexColumn string // Column used as the row index (optional; range index otherwise)
	IndexType   string // string, number or datetime (default: string)
	Delimiter   rune   // Field delimiter (default: ',')
}

// ParseDatetime parses s with the first matching layout, in UTC.
func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateParseFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", s)
}

// ReadCSV loads a table from CSV with a header row. Columns whose non-empty
// cells all parse as numbers become numeric (empty cells are NaN); the rest
// are string object columns.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.InvalidInput("csv", "missing header row").WithCause(err)
	}
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.InvalidInput("csv", "malformed rows").WithCause(err)
	}

	indexCol := -1
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if opts.IndexColumn != "" && header[i] == opts.IndexColumn {
			indexCol = i
		}
	}
	if opts.IndexColumn != "" && indexCol < 0 {
		return nil, errors.InvalidInput("index_column", "no column named "+opts.IndexColumn)
	}

	var index []Label
	if indexCol >= 0 {
		index = make([]Label, len(rows))
		for r, rec := range rows {
			l, err := ParseLabel(rec[indexCol], opts.IndexType)
			if err != nil {
				return nil, errors.InvalidInput("index_column", fmt.Sprintf("row %d", r+1)).WithCause(err)
			}
			index[r] = l
		}
	}

	var cols []*Column
	for c, name := range header {
		if c == indexCol {
			continue
		}
		cells := make([]string, len(rows))
		for r, rec := range rows {
			cells[r] = strings.TrimSpace(rec[c])
		}
		if nums, ok := parseNumbers(cells); ok {
			cols = append(cols, NewNumericColumn(name, nums))
			continue
		}
		cols = append(cols, NewStringColumn(name, cells))
	}
	if index == nil {
		index = RangeIndex(len(rows))
	}
	return New(index, cols...)
}

// ParseLabel converts s to a label of the given index type: a string, an
// int (or float64) for number, a UTC time.Time for datetime.
func ParseLabel(s, kind string) (Label, error) {
	s = strings.TrimSpace(s)
	switch kind {
	case IndexDatetime:
		return ParseDatetime(s)
	case IndexNumber:
		if n, err := strconv.Atoi(s); err == nil {
			return n, nil
		}
		return strconv.ParseFloat(s, 64)
	case "", IndexString:
		return s, nil
	default:
		return nil, fmt.Errorf("unknown index type %q", kind)
	}
}

func parseNumbers(cells []string) ([]float64, bool) {
	nums := make([]float64, len(cells))
	seen := false
	for i, s := range cells {
		if s == "" {
			nums[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		nums[i] = v
		seen = true
	}
	return nums, seen
}
