package dashboard

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/dataset"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/table"
)

// Bitcoin supply constants.
const (
	MaxBTCSupply   = 21_000_000
	GenesisYear    = 2009
	MinRemittance  = 100
	IndexBase      = 100
	overviewWindow = 30
)

var (
	ErrUnknownCorridor = errors.New("unknown corridor")
	ErrInvalidInput    = errors.New("invalid input")
)

// IndexPoint is one year of an adoption curve rebased to IndexBase.
type IndexPoint struct {
	Series string  `json:"series"`
	Year   string  `json:"year"`
	Index  float64 `json:"index"`
}

// IndexedAdoption rebases the Internet and Blockchain user estimates so each
// series starts at 100.
func (s *Service) IndexedAdoption() ([]IndexPoint, error) {
	var out []IndexPoint
	for _, src := range []struct{ name, series string }{
		{dataset.AdoptionInternet, "Internet"},
		{dataset.AdoptionBlockchain, "Blockchain"},
	} {
		ds, err := s.loader.Load(src.name)
		if err != nil {
			return nil, err
		}
		points, err := indexSeries(ds, src.series)
		if err != nil {
			return nil, err
		}
		out = append(out, points...)
	}
	return out, nil
}

func indexSeries(ds *table.Dataset, series string) ([]IndexPoint, error) {
	years, err := ds.Column("year")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ds.Name(), err)
	}
	users, err := ds.Floats("users_millions_est")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ds.Name(), err)
	}
	if len(users) == 0 {
		return nil, nil
	}
	base := users[0]
	if !base.Valid || base.Float64 == 0 {
		return nil, fmt.Errorf("%s: %w: first year has no users to index against", ds.Name(), ErrInvalidInput)
	}

	points := make([]IndexPoint, 0, len(users))
	for i, u := range users {
		if !u.Valid {
			continue
		}
		points = append(points, IndexPoint{
			Series: series,
			Year:   years[i],
			Index:  IndexBase * u.Float64 / base.Float64,
		})
	}
	return points, nil
}

// TransactionsComparison returns daily BTC transactions and SWIFT messages
// with their moving averages (btc_ma7, swift_ma7 for the default window).
func (s *Service) TransactionsComparison() (*table.TimeSeries, error) {
	ds, err := s.loader.Load(dataset.TransactionsComparison)
	if err != nil {
		return nil, err
	}
	base, err := ds.TimeSeries("btc_daily_tx", "swift_daily_msgs")
	if err != nil {
		return nil, err
	}
	ma, err := base.Rolling(s.cfg.MovingAverageWindow)
	if err != nil {
		return nil, err
	}

	suffix := "_ma" + strconv.Itoa(s.cfg.MovingAverageWindow)
	btc, _ := base.Column("btc_daily_tx")
	swift, _ := base.Column("swift_daily_msgs")
	btcMA, _ := ma.Column("btc_daily_tx")
	swiftMA, _ := ma.Column("swift_daily_msgs")

	names := []string{"btc_daily_tx", "btc" + suffix, "swift_daily_msgs", "swift" + suffix}
	return table.NewTimeSeries(base.Dates(), names, map[string][]table.NullFloat{
		names[0]: btc,
		names[1]: btcMA,
		names[2]: swift,
		names[3]: swiftMA,
	})
}

// RemittanceQuote compares sending an amount over traditional rails and a
// crypto rail for one corridor.
type RemittanceQuote struct {
	Corridor         string  `json:"corridor"`
	Amount           float64 `json:"amount"`
	TraditionalCost  float64 `json:"traditional_cost"`
	BlockchainCost   float64 `json:"blockchain_cost"`
	Saving           float64 `json:"saving"`
	TraditionalHours float64 `json:"traditional_speed_hours"`
	CryptoHours      float64 `json:"crypto_speed_hours"`
}

// Remittance quotes amount (USD, at least MinRemittance) on corridor. Costs
// are computed in decimal and rounded to cents.
func (s *Service) Remittance(corridor string, amount float64) (RemittanceQuote, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < MinRemittance {
		return RemittanceQuote{}, fmt.Errorf("%w: amount must be >= %d", ErrInvalidInput, MinRemittance)
	}
	ds, err := s.loader.Load(dataset.RemittanceFees)
	if err != nil {
		return RemittanceQuote{}, err
	}
	row, ok := ds.Lookup("corridor", corridor)
	if !ok {
		return RemittanceQuote{}, fmt.Errorf("%w: %s", ErrUnknownCorridor, corridor)
	}

	var fees [2]decimal.Decimal
	for i, f := range []string{"traditional_fee_pct", "blockchain_fee_pct"} {
		fees[i], err = decimal.NewFromString(strings.TrimSpace(row[f]))
		if err != nil {
			return RemittanceQuote{}, fmt.Errorf("%s: corridor %s: bad %s %q", ds.Name(), corridor, f, row[f])
		}
	}
	var speeds [2]float64
	for i, f := range []string{"traditional_speed_hours", "crypto_speed_hours"} {
		v, err := table.ParseNullFloat(row[f])
		if err != nil || !v.Valid {
			return RemittanceQuote{}, fmt.Errorf("%s: corridor %s: bad %s %q", ds.Name(), corridor, f, row[f])
		}
		speeds[i] = v.Float64
	}

	amt := decimal.NewFromFloat(amount)
	hundred := decimal.NewFromInt(100)
	trad := amt.Mul(fees[0]).Div(hundred).Round(2)
	chain := amt.Mul(fees[1]).Div(hundred).Round(2)
	return RemittanceQuote{
		Corridor:         corridor,
		Amount:           amount,
		TraditionalCost:  trad.InexactFloat64(),
		BlockchainCost:   chain.InexactFloat64(),
		Saving:           trad.Sub(chain).InexactFloat64(),
		TraditionalHours: speeds[0],
		CryptoHours:      speeds[1],
	}, nil
}

// SupplyStats describes mined versus remaining bitcoin.
type SupplyStats struct {
	MaxSupply   int64   `json:"max_supply"`
	Circulating int64   `json:"circulating"`
	Remaining   int64   `json:"remaining"`
	PctMined    float64 `json:"pct_mined"`
}

// Supply computes SupplyStats for a circulating amount in [0, MaxBTCSupply].
func Supply(circulating int64) (SupplyStats, error) {
	if circulating < 0 || circulating > MaxBTCSupply {
		return SupplyStats{}, fmt.Errorf("%w: circulating must be between 0 and %d", ErrInvalidInput, MaxBTCSupply)
	}
	return SupplyStats{
		MaxSupply:   MaxBTCSupply,
		Circulating: circulating,
		Remaining:   MaxBTCSupply - circulating,
		PctMined:    float64(circulating) / MaxBTCSupply * 100,
	}, nil
}

// Overview holds the headline KPIs of the home page.
type Overview struct {
	YearsSinceGenesis int   `json:"years_since_genesis"`
	AvgBTCDailyTx30d  int64 `json:"avg_btc_daily_tx_30d"`
	CBDCProjects      int   `json:"cbdc_projects"`
}

// Overview computes the home page KPIs from the bundled snapshots.
func (s *Service) Overview() (Overview, error) {
	ds, err := s.loader.Load(dataset.TransactionsComparison)
	if err != nil {
		return Overview{}, err
	}
	ts, err := ds.TimeSeries("btc_daily_tx")
	if err != nil {
		return Overview{}, err
	}
	avg, err := ts.Tail(overviewWindow).Mean("btc_daily_tx")
	if err != nil {
		return Overview{}, err
	}

	cbdc, err := s.loader.Load(dataset.CBDCProjects)
	if err != nil {
		return Overview{}, err
	}

	return Overview{
		YearsSinceGenesis: s.now().Year() - GenesisYear,
		AvgBTCDailyTx30d:  int64(avg.Float64),
		CBDCProjects:      cbdc.Len(),
	}, nil
}
