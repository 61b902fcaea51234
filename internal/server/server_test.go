package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/dashboard"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/dataset"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/live"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/table"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubFetcher struct {
	tx   *table.TimeSeries
	caps *table.Caps
	err  error
}

func (f *stubFetcher) TransactionCounts(ctx context.Context, assets []string) (*table.TimeSeries, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tx, nil
}

func (f *stubFetcher) StablecoinCaps(ctx context.Context, ids []string) (*table.Caps, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.caps, nil
}

func bundled() fstest.MapFS {
	return fstest.MapFS{
		"stablecoin_caps_fallback.csv": {Data: []byte(
			"name,symbol,market_cap\n" +
				"USD Coin,USDC,25000000000\n" +
				"Tether,USDT,80000000000\n")},
		"btc_eth_volumes.csv": {Data: []byte(
			"date,btc_daily_tx,eth_daily_tx\n" +
				"2024-01-01,300000,1000000\n" +
				"2024-01-02,310000,1100000\n")},
		"transactions_comparison.csv": {Data: []byte(
			"date,btc_daily_tx,swift_daily_msgs\n" +
				"2024-01-01,300000,45000000\n" +
				"2024-01-02,320000,46000000\n")},
		"remittance_fees.csv": {Data: []byte(
			"corridor,traditional_fee_pct,blockchain_fee_pct,traditional_speed_hours,crypto_speed_hours\n" +
				"US-MX,6,1,48,0.5\n")},
		"cbdc_projects.csv": {Data: []byte("country,project,status\nChina,e-CNY,Pilot\n")},
	}
}

func newTestServer(t *testing.T, f dashboard.MetricFetcher, fsys fstest.MapFS) *Server {
	t.Helper()
	loader := dataset.NewLoader(fsys, dataset.WithLogger(quietLogger()))
	svc := dashboard.NewService(dashboard.DefaultConfig(), f, loader, quietLogger())
	return New(Config{Addr: "127.0.0.1:0", Version: "test"}, svc, quietLogger())
}

func liveDown() error {
	return &live.FetchError{Op: live.OpStablecoinCaps, Err: errors.New("connection refused")}
}

func get(t *testing.T, s *Server, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

type panelBody struct {
	Source  string          `json:"source"`
	Warning string          `json:"warning"`
	Data    json.RawMessage `json:"data"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, &stubFetcher{err: liveDown()}, bundled())

	rec := get(t, s, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["status"] != "ok" || body["version"] != "test" {
		t.Errorf("body = %v", body)
	}
}

func TestNewLeavesGinMode(t *testing.T) {
	newTestServer(t, &stubFetcher{err: liveDown()}, bundled())
	if gin.Mode() != gin.TestMode {
		t.Errorf("gin.Mode() = %q after New, want %q", gin.Mode(), gin.TestMode)
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, &stubFetcher{err: liveDown()}, bundled())

	t.Run("generated", func(t *testing.T) {
		rec := get(t, s, "/api/health", nil)
		if _, err := uuid.Parse(rec.Header().Get(HeaderRequestID)); err != nil {
			t.Errorf("X-Request-ID = %q, want uuid", rec.Header().Get(HeaderRequestID))
		}
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		rec := get(t, s, "/api/health", http.Header{HeaderRequestID: {id}})
		if got := rec.Header().Get(HeaderRequestID); got != id {
			t.Errorf("X-Request-ID = %q, want %q", got, id)
		}
	})

	t.Run("propagated canonical key", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		req.Header.Set(HeaderRequestID, id)
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)
		if got := rec.Header().Get(HeaderRequestID); got != id {
			t.Errorf("X-Request-ID = %q, want %q", got, id)
		}
	})

	t.Run("garbage replaced", func(t *testing.T) {
		rec := get(t, s, "/api/health", http.Header{HeaderRequestID: {"<script>"}})
		if got := rec.Header().Get(HeaderRequestID); got == "<script>" || got == "" {
			t.Errorf("X-Request-ID = %q, want fresh uuid", got)
		}
	})
}

func TestStablecoins(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		caps := table.NewCaps([]table.CapRow{
			{Name: "Dai", Symbol: "DAI", MarketCap: table.Float(5e9)},
			{Name: "Tether", Symbol: "USDT", MarketCap: table.Null()},
		})
		s := newTestServer(t, &stubFetcher{caps: caps}, bundled())

		rec := get(t, s, "/api/stablecoins", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := decode[panelBody](t, rec)
		if body.Source != "live" || body.Warning != "" {
			t.Errorf("source = %q warning = %q, want live without warning", body.Source, body.Warning)
		}
		var rows []map[string]any
		if err := json.Unmarshal(body.Data, &rows); err != nil {
			t.Fatal(err)
		}
		if len(rows) != 2 {
			t.Fatalf("rows = %d, want 2", len(rows))
		}
		if rows[1]["symbol"] != "USDT" || rows[1]["market_cap"] != nil {
			t.Errorf("rows[1] = %v, want USDT with null market_cap", rows[1])
		}
	})

	t.Run("fallback", func(t *testing.T) {
		s := newTestServer(t, &stubFetcher{err: liveDown()}, bundled())

		rec := get(t, s, "/api/stablecoins", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		body := decode[panelBody](t, rec)
		if body.Source != "fallback" {
			t.Errorf("source = %q, want fallback", body.Source)
		}
		if body.Warning == "" {
			t.Error("warning is empty, want visible substitution notice")
		}
		var rows []table.CapRow
		if err := json.Unmarshal(body.Data, &rows); err != nil {
			t.Fatal(err)
		}
		if len(rows) != 2 || rows[0].Symbol != "USDT" || rows[1].Symbol != "USDC" {
			t.Errorf("rows = %+v, want USDT before USDC", rows)
		}
	})

	t.Run("no data", func(t *testing.T) {
		s := newTestServer(t, &stubFetcher{err: liveDown()}, fstest.MapFS{})

		rec := get(t, s, "/api/stablecoins", nil)
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
		body := decode[errorResponse](t, rec)
		if body.RequestID == "" {
			t.Error("error response missing request_id")
		}
	})
}

func TestLiveTransactions(t *testing.T) {
	day := func(s string) time.Time {
		d, _ := time.Parse(table.DateLayout, s)
		return d
	}
	tx, err := table.NewTimeSeries(
		[]time.Time{day("2024-03-01"), day("2024-03-02")},
		[]string{"BTC", "ETH"},
		map[string][]table.NullFloat{
			"BTC": {table.Float(1), table.Float(2)},
			"ETH": {table.Float(3), table.Float(4)},
		},
	)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		fetcher    *stubFetcher
		target     string
		wantStatus int
		wantSource string
	}{
		{"live", &stubFetcher{tx: tx}, "/api/transactions/live", http.StatusOK, "live"},
		{"live moving average", &stubFetcher{tx: tx}, "/api/transactions/live?ma=true", http.StatusOK, "live"},
		{"fallback", &stubFetcher{err: liveDown()}, "/api/transactions/live", http.StatusOK, "fallback"},
		{"bad ma", &stubFetcher{tx: tx}, "/api/transactions/live?ma=maybe", http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, tt.fetcher, bundled())
			rec := get(t, s, tt.target, nil)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantSource == "" {
				return
			}
			body := decode[panelBody](t, rec)
			if body.Source != tt.wantSource {
				t.Errorf("source = %q, want %q", body.Source, tt.wantSource)
			}
			var data struct {
				Columns []string `json:"columns"`
				Index   []string `json:"index"`
			}
			if err := json.Unmarshal(body.Data, &data); err != nil {
				t.Fatal(err)
			}
			if len(data.Columns) != 2 || data.Columns[0] != "BTC" || data.Columns[1] != "ETH" {
				t.Errorf("columns = %v, want [BTC ETH]", data.Columns)
			}
		})
	}
}

func TestStaticPanels(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		wantStatus int
	}{
		{"comparison", "/api/transactions/comparison", http.StatusOK},
		{"overview", "/api/overview", http.StatusOK},
		{"supply default", "/api/supply", http.StatusOK},
		{"supply not a number", "/api/supply?circulating=lots", http.StatusBadRequest},
		{"supply over cap", "/api/supply?circulating=22000000", http.StatusBadRequest},
		{"remittance", "/api/remittance?corridor=US-MX&amount=500", http.StatusOK},
		{"remittance missing corridor", "/api/remittance", http.StatusBadRequest},
		{"remittance unknown corridor", "/api/remittance?corridor=XX-YY", http.StatusNotFound},
		{"remittance too small", "/api/remittance?corridor=US-MX&amount=5", http.StatusBadRequest},
		{"indexed adoption missing data", "/api/adoption/indexed", http.StatusServiceUnavailable},
		{"dataset", "/api/datasets/cbdc_projects", http.StatusOK},
		{"dataset unknown", "/api/datasets/passwords", http.StatusNotFound},
		{"dataset list", "/api/datasets", http.StatusOK},
	}
	s := newTestServer(t, &stubFetcher{err: liveDown()}, bundled())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target, nil)
			if rec.Code != tt.wantStatus {
				t.Errorf("GET %s status = %d, want %d (%s)", tt.target, rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestSupplyBody(t *testing.T) {
	s := newTestServer(t, &stubFetcher{err: liveDown()}, bundled())

	rec := get(t, s, "/api/supply?circulating=10500000", nil)
	body := decode[panelBody](t, rec)
	if body.Source != "static" {
		t.Errorf("source = %q, want static", body.Source)
	}
	var stats dashboard.SupplyStats
	if err := json.Unmarshal(body.Data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Remaining != 10_500_000 || stats.PctMined != 50 {
		t.Errorf("stats = %+v, want remaining 10500000 and 50%% mined", stats)
	}
}

func TestRunShutdown(t *testing.T) {
	s := newTestServer(t, &stubFetcher{err: liveDown()}, bundled())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
