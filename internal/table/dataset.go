package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"
)

// DateState records whether a dataset's date column was coerced.
type DateState int

const (
	// DateAbsent means the dataset has no date column.
	DateAbsent DateState = iota
	// DateParsed means every non-empty cell parsed as a date.
	DateParsed
	// DateRaw means at least one cell failed to parse; the column keeps its
	// original strings.
	DateRaw
)

func (s DateState) String() string {
	switch s {
	case DateParsed:
		return "parsed"
	case DateRaw:
		return "raw"
	default:
		return "absent"
	}
}

// DateColumn is the two-state result of date coercion.
type DateColumn struct {
	Name  string
	State DateState
	// Parsed holds one value per row when State is DateParsed. Empty cells
	// are the zero time.
	Parsed []time.Time
}

var (
	ErrRaggedRecord = errors.New("record width does not match header")
	ErrNoDates      = errors.New("date column is not parsed")
)

// Dataset is a generic tabular resource: a header and string records, with
// an optional date column.
type Dataset struct {
	name    string
	header  []string
	records [][]string
	date    DateColumn
}

// NewDataset validates record widths and copies its inputs.
func NewDataset(name string, header []string, records [][]string, date DateColumn) (*Dataset, error) {
	ds := &Dataset{
		name:    name,
		header:  slices.Clone(header),
		records: make([][]string, len(records)),
		date:    date,
	}
	for i, rec := range records {
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrRaggedRecord, i+1, len(rec), len(header))
		}
		ds.records[i] = slices.Clone(rec)
	}
	ds.date.Parsed = slices.Clone(date.Parsed)
	if date.State == DateParsed && len(date.Parsed) != len(records) {
		return nil, fmt.Errorf("%w: %d dates for %d rows", ErrColumnLength, len(date.Parsed), len(records))
	}
	return ds, nil
}

// Name returns the resource name.
func (ds *Dataset) Name() string { return ds.name }

// Header returns the column names.
func (ds *Dataset) Header() []string { return slices.Clone(ds.header) }

// Len returns the number of data rows.
func (ds *Dataset) Len() int { return len(ds.records) }

// Dates returns the date column state and a copy of parsed values.
func (ds *Dataset) Dates() DateColumn {
	d := ds.date
	d.Parsed = slices.Clone(ds.date.Parsed)
	return d
}

// Index returns the position of a column, or -1.
func (ds *Dataset) Index(name string) int {
	return slices.Index(ds.header, name)
}

// Has reports whether every named column exists.
func (ds *Dataset) Has(names ...string) bool {
	for _, n := range names {
		if ds.Index(n) < 0 {
			return false
		}
	}
	return true
}

// Column returns a copy of a column's raw strings.
func (ds *Dataset) Column(name string) ([]string, error) {
	idx := ds.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	out := make([]string, len(ds.records))
	for i, rec := range ds.records {
		out[i] = rec[idx]
	}
	return out, nil
}

// Floats parses a column as numbers. Empty cells are null.
func (ds *Dataset) Floats(name string) ([]NullFloat, error) {
	raw, err := ds.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]NullFloat, len(raw))
	for i, s := range raw {
		v, err := ParseNullFloat(s)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", name, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// Row returns row i keyed by column name.
func (ds *Dataset) Row(i int) map[string]string {
	row := make(map[string]string, len(ds.header))
	for j, h := range ds.header {
		row[h] = ds.records[i][j]
	}
	return row
}

// Lookup returns the first row whose column equals value.
func (ds *Dataset) Lookup(column, value string) (map[string]string, bool) {
	idx := ds.Index(column)
	if idx < 0 {
		return nil, false
	}
	for i, rec := range ds.records {
		if rec[idx] == value {
			return ds.Row(i), true
		}
	}
	return nil, false
}

// MissingDates counts rows whose date cell was blank.
func (dc DateColumn) MissingDates() int {
	n := 0
	for _, d := range dc.Parsed {
		if d.IsZero() {
			n++
		}
	}
	return n
}

// TimeSeries converts numeric columns into a TimeSeries indexed by the parsed
// date column, sorted by date. Rows with a blank date are left out; the
// remaining dates must be unique.
func (ds *Dataset) TimeSeries(columns ...string) (*TimeSeries, error) {
	if ds.date.State != DateParsed {
		return nil, fmt.Errorf("%s: %w (%s)", ds.name, ErrNoDates, ds.date.State)
	}

	order := make([]int, 0, len(ds.records))
	for i, d := range ds.date.Parsed {
		if !d.IsZero() {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return ds.date.Parsed[order[a]].Before(ds.date.Parsed[order[b]])
	})

	dates := make([]time.Time, len(order))
	for i, r := range order {
		dates[i] = ds.date.Parsed[r]
	}

	cols := make(map[string][]NullFloat, len(columns))
	for _, name := range columns {
		values, err := ds.Floats(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ds.name, err)
		}
		sorted := make([]NullFloat, len(order))
		for i, r := range order {
			sorted[i] = values[r]
		}
		cols[name] = sorted
	}

	ts, err := NewTimeSeries(dates, columns, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ds.name, err)
	}
	return ts, nil
}

type datasetJSON struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Dates   string     `json:"dates"`
}

// MarshalJSON encodes the raw records. Parsed dates are normalized to
// YYYY-MM-DD.
func (ds *Dataset) MarshalJSON() ([]byte, error) {
	rows := ds.records
	if ds.date.State == DateParsed {
		idx := ds.Index(ds.date.Name)
		rows = make([][]string, len(ds.records))
		for i, rec := range ds.records {
			r := slices.Clone(rec)
			if idx >= 0 && !ds.date.Parsed[i].IsZero() {
				r[idx] = ds.date.Parsed[i].Format(DateLayout)
			}
			rows[i] = r
		}
	}
	return json.Marshal(datasetJSON{
		Name:    ds.name,
		Columns: ds.header,
		Rows:    rows,
		Dates:   ds.date.State.String(),
	})
}
