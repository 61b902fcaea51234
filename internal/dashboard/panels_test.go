package dashboard

import (
	"errors"
	"testing"
	"time"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/table"
)

func TestIndexedAdoption(t *testing.T) {
	svc := newTestService(&fakeFetcher{}, testData())

	points, err := svc.IndexedAdoption()
	if err != nil {
		t.Fatalf("IndexedAdoption failed: %v", err)
	}
	want := []IndexPoint{
		{Series: "Internet", Year: "1995", Index: 100},
		{Series: "Internet", Year: "1996", Index: 200},
		{Series: "Blockchain", Year: "2015", Index: 100},
		{Series: "Blockchain", Year: "2016", Index: 200},
	}
	if len(points) != len(want) {
		t.Fatalf("points = %v", points)
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("points[%d] = %+v, want %+v", i, points[i], want[i])
		}
	}

	t.Run("zero base", func(t *testing.T) {
		data := testData()
		data["adoption_internet.csv"].Data = []byte("year,users_millions_est\n1995,0\n1996,3\n")
		svc := newTestService(&fakeFetcher{}, data)
		if _, err := svc.IndexedAdoption(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestTransactionsComparison(t *testing.T) {
	svc := newTestService(&fakeFetcher{}, testData())

	ts, err := svc.TransactionsComparison()
	if err != nil {
		t.Fatalf("TransactionsComparison failed: %v", err)
	}
	cols := ts.Columns()
	want := []string{"btc_daily_tx", "btc_ma2", "swift_daily_msgs", "swift_ma2"}
	for i := range want {
		if cols[i] != want[i] {
			t.Fatalf("Columns() = %v, want %v", cols, want)
		}
	}
	ma, _ := ts.Column("btc_ma2")
	if ma[0].Valid || ma[1] != table.Float(310000) {
		t.Errorf("btc_ma2 = %v", ma)
	}
}

func TestRemittance(t *testing.T) {
	svc := newTestService(&fakeFetcher{}, testData())

	q, err := svc.Remittance("US-MX", 1000)
	if err != nil {
		t.Fatalf("Remittance failed: %v", err)
	}
	if q.TraditionalCost != 60 || q.BlockchainCost != 10 || q.Saving != 50 {
		t.Errorf("quote = %+v", q)
	}
	if q.TraditionalHours != 48 || q.CryptoHours != 0.5 {
		t.Errorf("speeds = %v, %v", q.TraditionalHours, q.CryptoHours)
	}

	q, err = svc.Remittance("US-MX", 333.33)
	if err != nil {
		t.Fatal(err)
	}
	if q.TraditionalCost != 20 || q.BlockchainCost != 3.33 || q.Saving != 16.67 {
		t.Errorf("rounded quote = %+v, want 20 / 3.33 / 16.67", q)
	}

	if _, err := svc.Remittance("US-MX", 50); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("small amount error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Remittance("XX-YY", 1000); !errors.Is(err, ErrUnknownCorridor) {
		t.Errorf("unknown corridor error = %v, want ErrUnknownCorridor", err)
	}
}

func TestSupply(t *testing.T) {
	s, err := Supply(19_700_000)
	if err != nil {
		t.Fatal(err)
	}
	if s.Remaining != 1_300_000 {
		t.Errorf("Remaining = %d, want 1300000", s.Remaining)
	}
	if s.PctMined < 93.80 || s.PctMined > 93.81 {
		t.Errorf("PctMined = %v, want ~93.81", s.PctMined)
	}

	for _, bad := range []int64{-1, MaxBTCSupply + 1} {
		if _, err := Supply(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("Supply(%d) error = %v, want ErrInvalidInput", bad, err)
		}
	}
}

func TestOverview(t *testing.T) {
	svc := newTestService(&fakeFetcher{}, testData())
	svc.now = func() time.Time { return time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC) }

	o, err := svc.Overview()
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if o.YearsSinceGenesis != 17 {
		t.Errorf("YearsSinceGenesis = %d, want 17", o.YearsSinceGenesis)
	}
	if o.AvgBTCDailyTx30d != 320000 {
		t.Errorf("AvgBTCDailyTx30d = %d, want 320000", o.AvgBTCDailyTx30d)
	}
	if o.CBDCProjects != 3 {
		t.Errorf("CBDCProjects = %d, want 3", o.CBDCProjects)
	}
}
