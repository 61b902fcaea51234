package table

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"
)

// DateLayout is the wire and CSV format of calendar dates.
const DateLayout = "2006-01-02"

var (
	ErrUnsortedIndex  = errors.New("date index is not strictly ascending")
	ErrColumnLength   = errors.New("column length does not match index")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrDuplicateCell  = errors.New("duplicate observation for date and series")
	ErrInvalidWindow  = errors.New("window must be >= 1")
	ErrDuplicateNames = errors.New("duplicate column name")
)

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TimeSeries is a table indexed by calendar date with one numeric column per
// named series. The index is strictly ascending.
type TimeSeries struct {
	dates []time.Time
	names []string
	cols  map[string][]NullFloat
}

// NewTimeSeries validates and copies its inputs. Column order follows names.
func NewTimeSeries(dates []time.Time, names []string, cols map[string][]NullFloat) (*TimeSeries, error) {
	ts := &TimeSeries{
		dates: make([]time.Time, len(dates)),
		names: slices.Clone(names),
		cols:  make(map[string][]NullFloat, len(names)),
	}
	for i, d := range dates {
		ts.dates[i] = Day(d)
		if i > 0 && !ts.dates[i].After(ts.dates[i-1]) {
			return nil, fmt.Errorf("%w: %s follows %s", ErrUnsortedIndex,
				ts.dates[i].Format(DateLayout), ts.dates[i-1].Format(DateLayout))
		}
	}
	for _, name := range names {
		if _, dup := ts.cols[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateNames, name)
		}
		col, ok := cols[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, name)
		}
		if len(col) != len(dates) {
			return nil, fmt.Errorf("%w: %s has %d values, index has %d", ErrColumnLength, name, len(col), len(dates))
		}
		ts.cols[name] = slices.Clone(col)
	}
	return ts, nil
}

// Observation is one long-form row: a value for a series on a date.
type Observation struct {
	Date   time.Time
	Series string
	Value  NullFloat
}

// Pivot reshapes long-form observations into a wide table: one row per date
// (ascending), one column per series (sorted by name). Cells with no
// observation are null.
func Pivot(obs []Observation) (*TimeSeries, error) {
	type cell struct {
		day    time.Time
		series string
	}
	seen := make(map[cell]NullFloat, len(obs))
	daySet := make(map[time.Time]struct{})
	seriesSet := make(map[string]struct{})

	for _, o := range obs {
		c := cell{day: Day(o.Date), series: o.Series}
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: %s %s", ErrDuplicateCell, o.Series, c.day.Format(DateLayout))
		}
		seen[c] = o.Value
		daySet[c.day] = struct{}{}
		seriesSet[o.Series] = struct{}{}
	}

	dates := make([]time.Time, 0, len(daySet))
	for d := range daySet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	names := make([]string, 0, len(seriesSet))
	for s := range seriesSet {
		names = append(names, s)
	}
	sort.Strings(names)

	cols := make(map[string][]NullFloat, len(names))
	for _, name := range names {
		col := make([]NullFloat, len(dates))
		for i, d := range dates {
			col[i] = seen[cell{day: d, series: name}]
		}
		cols[name] = col
	}

	return &TimeSeries{dates: dates, names: names, cols: cols}, nil
}

// Len returns the number of rows.
func (ts *TimeSeries) Len() int { return len(ts.dates) }

// Dates returns a copy of the index.
func (ts *TimeSeries) Dates() []time.Time { return slices.Clone(ts.dates) }

// Columns returns the column names in order.
func (ts *TimeSeries) Columns() []string { return slices.Clone(ts.names) }

// Column returns a copy of the named column.
func (ts *TimeSeries) Column(name string) ([]NullFloat, bool) {
	col, ok := ts.cols[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(col), true
}

// Rename returns a new table with columns renamed per mapping. Names absent
// from mapping are kept.
func (ts *TimeSeries) Rename(mapping map[string]string) (*TimeSeries, error) {
	names := make([]string, len(ts.names))
	cols := make(map[string][]NullFloat, len(ts.names))
	for i, name := range ts.names {
		newName := name
		if m, ok := mapping[name]; ok {
			newName = m
		}
		names[i] = newName
		cols[newName] = ts.cols[name]
	}
	return NewTimeSeries(ts.dates, names, cols)
}

// Select returns a new table with only the named columns, in the given order.
func (ts *TimeSeries) Select(names ...string) (*TimeSeries, error) {
	return NewTimeSeries(ts.dates, names, ts.cols)
}

// Tail returns the last n rows.
func (ts *TimeSeries) Tail(n int) *TimeSeries {
	if n < 0 {
		n = 0
	}
	start := len(ts.dates) - n
	if start < 0 {
		start = 0
	}
	out := &TimeSeries{
		dates: slices.Clone(ts.dates[start:]),
		names: slices.Clone(ts.names),
		cols:  make(map[string][]NullFloat, len(ts.names)),
	}
	for _, name := range ts.names {
		out.cols[name] = slices.Clone(ts.cols[name][start:])
	}
	return out
}

// Rolling returns the trailing mean over window rows. A cell is null until
// window consecutive valid values are available.
func (ts *TimeSeries) Rolling(window int) (*TimeSeries, error) {
	if window < 1 {
		return nil, ErrInvalidWindow
	}
	out := &TimeSeries{
		dates: slices.Clone(ts.dates),
		names: slices.Clone(ts.names),
		cols:  make(map[string][]NullFloat, len(ts.names)),
	}
	for _, name := range ts.names {
		out.cols[name] = rollingMean(ts.cols[name], window)
	}
	return out, nil
}

func rollingMean(col []NullFloat, window int) []NullFloat {
	res := make([]NullFloat, len(col))
	for i := range col {
		if i+1 < window {
			continue
		}
		sum := 0.0
		ok := true
		for _, v := range col[i+1-window : i+1] {
			if !v.Valid {
				ok = false
				break
			}
			sum += v.Float64
		}
		if ok {
			res[i] = Float(sum / float64(window))
		}
	}
	return res
}

// Mean returns the mean of the valid values of a column, or null when there
// are none.
func (ts *TimeSeries) Mean(name string) (NullFloat, error) {
	col, ok := ts.cols[name]
	if !ok {
		return Null(), fmt.Errorf("%w: %s", ErrUnknownColumn, name)
	}
	return meanOf(col), nil
}

func meanOf(col []NullFloat) NullFloat {
	var sum float64
	var n int
	for _, v := range col {
		if v.Valid {
			sum += v.Float64
			n++
		}
	}
	if n == 0 {
		return Null()
	}
	return Float(sum / float64(n))
}

type timeSeriesJSON struct {
	Columns []string               `json:"columns"`
	Index   []string               `json:"index"`
	Data    map[string][]NullFloat `json:"data"`
}

// MarshalJSON encodes the table column-wise with dates as YYYY-MM-DD.
func (ts *TimeSeries) MarshalJSON() ([]byte, error) {
	index := make([]string, len(ts.dates))
	for i, d := range ts.dates {
		index[i] = d.Format(DateLayout)
	}
	return json.Marshal(timeSeriesJSON{Columns: ts.names, Index: index, Data: ts.cols})
}
