package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/dataset"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/live"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/table"
)

// MetricFetcher provides live metrics.
type MetricFetcher interface {
	TransactionCounts(ctx context.Context, assets []string) (*table.TimeSeries, error)
	StablecoinCaps(ctx context.Context, ids []string) (*table.Caps, error)
}

// DatasetLoader reads bundled resources.
type DatasetLoader interface {
	Load(name string) (*table.Dataset, error)
}

// ErrUnknownDataset is returned for names outside the bundled catalog.
var ErrUnknownDataset = errors.New("unknown dataset")

// Config holds the panel parameters.
type Config struct {
	TxAssets            []string // Coin Metrics asset ids (default: btc, eth)
	StablecoinIDs       []string // CoinGecko coin ids
	MovingAverageWindow int      // Days (default: 7)
}

// DefaultConfig returns the parameters used by the original dashboard.
func DefaultConfig() Config {
	return Config{
		TxAssets:            []string{"btc", "eth"},
		StablecoinIDs:       []string{"tether", "usd-coin", "dai", "true-usd"},
		MovingAverageWindow: 7,
	}
}

// Service builds panel data from live metrics and bundled datasets.
type Service struct {
	cfg     Config
	fetcher MetricFetcher
	loader  DatasetLoader
	logger  *slog.Logger
	now     func() time.Time
}

// NewService creates a Service.
func NewService(cfg Config, fetcher MetricFetcher, loader DatasetLoader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	def := DefaultConfig()
	if len(cfg.TxAssets) == 0 {
		cfg.TxAssets = def.TxAssets
	}
	if len(cfg.StablecoinIDs) == 0 {
		cfg.StablecoinIDs = def.StablecoinIDs
	}
	if cfg.MovingAverageWindow < 1 {
		cfg.MovingAverageWindow = def.MovingAverageWindow
	}
	return &Service{
		cfg:     cfg,
		fetcher: fetcher,
		loader:  loader,
		logger:  logger,
		now:     time.Now,
	}
}

// TransactionCounts returns live daily transaction counts, or the
// btc_eth_volumes snapshot renamed to the same BTC/ETH columns.
func (s *Service) TransactionCounts(ctx context.Context) (Result[*table.TimeSeries], error) {
	res, err := OrElse(
		func() (*table.TimeSeries, error) {
			return s.fetcher.TransactionCounts(ctx, s.cfg.TxAssets)
		},
		func() (*table.TimeSeries, error) {
			ds, err := s.loader.Load(dataset.BTCETHVolumes)
			if err != nil {
				return nil, err
			}
			return dataset.TxCountsFromDataset(ds)
		},
	)
	s.logOutcome("transaction_counts", res.Origin, res.Cause, err)
	return res, err
}

// TransactionCountsMA returns the moving average of TransactionCounts.
func (s *Service) TransactionCountsMA(ctx context.Context) (Result[*table.TimeSeries], error) {
	res, err := s.TransactionCounts(ctx)
	if err != nil {
		return Result[*table.TimeSeries]{}, err
	}
	return Map(res, func(ts *table.TimeSeries) (*table.TimeSeries, error) {
		return ts.Rolling(s.cfg.MovingAverageWindow)
	})
}

// StablecoinCaps returns live market caps, or the stablecoin_caps_fallback
// snapshot, sorted by market cap descending.
func (s *Service) StablecoinCaps(ctx context.Context) (Result[*table.Caps], error) {
	res, err := OrElse(
		func() (*table.Caps, error) {
			return s.fetcher.StablecoinCaps(ctx, s.cfg.StablecoinIDs)
		},
		func() (*table.Caps, error) {
			ds, err := s.loader.Load(dataset.StablecoinCapsFallback)
			if err != nil {
				return nil, err
			}
			return dataset.CapsFromDataset(ds)
		},
	)
	s.logOutcome("stablecoin_caps", res.Origin, res.Cause, err)
	if err != nil {
		return Result[*table.Caps]{}, err
	}
	return Map(res, func(c *table.Caps) (*table.Caps, error) {
		return c.SortByMarketCapDesc(), nil
	})
}

// Dataset returns a bundled resource by name.
func (s *Service) Dataset(name string) (*table.Dataset, error) {
	if !dataset.Known(name) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
	}
	return s.loader.Load(name)
}

func (s *Service) logOutcome(panel string, origin Origin, cause, err error) {
	switch {
	case err != nil:
		s.logger.Error("panel unavailable", "panel", panel, "rate_limited", rateLimited(err), "error", err)
	case origin == OriginFallback:
		s.logger.Warn("live fetch failed, serving fallback snapshot",
			"panel", panel,
			"rate_limited", rateLimited(cause),
			"cause", cause,
		)
	default:
		s.logger.Debug("panel served", "panel", panel, "origin", origin)
	}
}

// rateLimited reports whether a live failure was the provider throttling us.
func rateLimited(err error) bool {
	var se *live.StatusError
	return errors.As(err, &se) && se.RateLimited()
}
