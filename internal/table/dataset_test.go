package table

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewDataset_Ragged(t *testing.T) {
	_, err := NewDataset("bad", []string{"a", "b"}, [][]string{{"1"}}, DateColumn{})
	if !errors.Is(err, ErrRaggedRecord) {
		t.Errorf("error = %v, want ErrRaggedRecord", err)
	}
}

func TestDataset_TimeSeries(t *testing.T) {
	ds, err := NewDataset("btc_eth_volumes",
		[]string{"date", "btc_daily_tx", "eth_daily_tx"},
		[][]string{
			{"2024-01-02", "300000", "1100000"},
			{"2024-01-01", "310000", ""},
		},
		DateColumn{Name: "date", State: DateParsed, Parsed: []time.Time{day("2024-01-02"), day("2024-01-01")}},
	)
	if err != nil {
		t.Fatalf("NewDataset failed: %v", err)
	}

	ts, err := ds.TimeSeries("btc_daily_tx", "eth_daily_tx")
	if err != nil {
		t.Fatalf("TimeSeries failed: %v", err)
	}
	if got := ts.Dates()[0].Format(DateLayout); got != "2024-01-01" {
		t.Errorf("first date = %s, want 2024-01-01", got)
	}
	btc, _ := ts.Column("btc_daily_tx")
	if btc[0].Float64 != 310000 {
		t.Errorf("btc[0] = %v, want 310000 (rows must follow the sort)", btc[0])
	}
	eth, _ := ts.Column("eth_daily_tx")
	if eth[0].Valid {
		t.Errorf("empty cell should be null, got %v", eth[0])
	}

	t.Run("raw dates", func(t *testing.T) {
		raw, _ := NewDataset("x", []string{"date", "v"}, [][]string{{"soon", "1"}}, DateColumn{Name: "date", State: DateRaw})
		if _, err := raw.TimeSeries("v"); !errors.Is(err, ErrNoDates) {
			t.Errorf("error = %v, want ErrNoDates", err)
		}
	})

	t.Run("unknown column", func(t *testing.T) {
		if _, err := ds.TimeSeries("sol_daily_tx"); !errors.Is(err, ErrUnknownColumn) {
			t.Errorf("error = %v, want ErrUnknownColumn", err)
		}
	})
	t.Run("blank date rows skipped", func(t *testing.T) {
		gappy, err := NewDataset("btc_eth_volumes",
			[]string{"date", "btc_daily_tx"},
			[][]string{
				{"2024-01-02", "300000"},
				{"", "999"},
				{"2024-01-01", "310000"},
			},
			DateColumn{Name: "date", State: DateParsed, Parsed: []time.Time{day("2024-01-02"), {}, day("2024-01-01")}},
		)
		if err != nil {
			t.Fatal(err)
		}
		if n := gappy.Dates().MissingDates(); n != 1 {
			t.Errorf("MissingDates() = %d, want 1", n)
		}
		ts, err := gappy.TimeSeries("btc_daily_tx")
		if err != nil {
			t.Fatalf("TimeSeries failed: %v", err)
		}
		if ts.Len() != 2 {
			t.Fatalf("Len() = %d, want 2", ts.Len())
		}
		btc, _ := ts.Column("btc_daily_tx")
		if btc[0].Float64 != 310000 || btc[1].Float64 != 300000 {
			t.Errorf("btc = %v, want [310000 300000]", btc)
		}
	})
}

func TestDataset_LookupAndJSON(t *testing.T) {
	ds, err := NewDataset("remittance_fees",
		[]string{"corridor", "traditional_fee_pct"},
		[][]string{{"US→MX", "5.5"}, {"UK→NG", "7.9"}},
		DateColumn{},
	)
	if err != nil {
		t.Fatal(err)
	}

	row, ok := ds.Lookup("corridor", "UK→NG")
	if !ok || row["traditional_fee_pct"] != "7.9" {
		t.Errorf("Lookup = %v, %v", row, ok)
	}
	if _, ok := ds.Lookup("corridor", "FR→SN"); ok {
		t.Error("Lookup should miss for unknown corridor")
	}

	b, err := json.Marshal(ds)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"dates":"absent"`) {
		t.Errorf("json missing date state: %s", b)
	}
}
