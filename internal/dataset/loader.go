package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strings"
	"time"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/table"
)

// Extension is appended to resource names that lack one.
const Extension = ".csv"

// DateLayouts are tried in order when coercing a date column.
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
}

// Loader reads named CSV resources from a directory.
type Loader struct {
	fsys   fs.FS
	logger *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader over fsys.
func NewLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	l := &Loader{
		fsys:   fsys,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open creates a Loader rooted at dir on the local filesystem.
func Open(dir string, opts ...LoaderOption) (*Loader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open data dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open data dir: %s is not a directory", dir)
	}
	return NewLoader(os.DirFS(dir), opts...), nil
}

// Load reads and parses the named resource. A "date" column (any case) is
// coerced to dates when every non-empty cell parses; otherwise it is left raw
// and the failure is only logged.
func (l *Loader) Load(name string) (*table.Dataset, error) {
	file := resourceFile(name)
	if !fs.ValidPath(file) {
		return nil, &UnavailableError{Name: name, Err: fmt.Errorf("invalid resource name %q", name)}
	}

	f, err := l.fsys.Open(file)
	if err != nil {
		return nil, &UnavailableError{Name: name, Err: err}
	}
	defer f.Close()

	header, records, err := readCSV(f)
	if err != nil {
		return nil, &UnavailableError{Name: name, Err: err}
	}

	date := table.DateColumn{State: table.DateAbsent}
	if idx := dateIndex(header); idx >= 0 {
		date = coerceDates(header[idx], idx, records)
		if date.State == table.DateRaw {
			l.logger.Warn("date column left unparsed",
				"dataset", name,
				"column", header[idx],
			)
		}
		if n := date.MissingDates(); n > 0 {
			l.logger.Warn("rows without a date are excluded from time series",
				"dataset", name,
				"rows", n,
			)
		}
	}

	ds, err := table.NewDataset(strings.TrimSuffix(name, Extension), header, records, date)
	if err != nil {
		return nil, &UnavailableError{Name: name, Err: err}
	}

	l.logger.Debug("dataset loaded",
		"dataset", ds.Name(),
		"rows", ds.Len(),
		"dates", date.State,
	)
	return ds, nil
}

func resourceFile(name string) string {
	if path.Ext(name) == "" {
		return name + Extension
	}
	return name
}

func readCSV(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, errors.New("empty resource")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	// ReadAll enforces the header's field count on every record.
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read records: %w", err)
	}
	return header, records, nil
}

func dateIndex(header []string) int {
	for i, h := range header {
		if strings.EqualFold(h, "date") {
			return i
		}
	}
	return -1
}

func coerceDates(name string, idx int, records [][]string) table.DateColumn {
	parsed := make([]time.Time, len(records))
	for i, rec := range records {
		s := strings.TrimSpace(rec[idx])
		if s == "" {
			continue
		}
		t, ok := parseDate(s)
		if !ok {
			return table.DateColumn{Name: name, State: table.DateRaw}
		}
		parsed[i] = t
	}
	return table.DateColumn{Name: name, State: table.DateParsed, Parsed: parsed}
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return table.Day(t), true
		}
	}
	return time.Time{}, false
}
