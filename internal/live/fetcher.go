package live

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/cache"
	"github.com/Nidhonkar/blockchain-adoption-pro/internal/table"
)

// Default cache lifetimes. Market caps move faster than daily counts.
const (
	DefaultTxCountsTTL       = time.Hour
	DefaultStablecoinCapsTTL = 30 * time.Minute
)

// Fetcher serves live metrics through a TTL cache keyed by operation and
// parameter set. A failed fetch never extends or replaces a cached entry.
type Fetcher struct {
	client *Client
	logger *slog.Logger

	txTTL   time.Duration
	capsTTL time.Duration

	txCache   *cache.Cache[*table.TimeSeries]
	capsCache *cache.Cache[*table.Caps]
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherOptions)

type fetcherOptions struct {
	clock   cache.Clock
	logger  *slog.Logger
	txTTL   time.Duration
	capsTTL time.Duration
}

// WithClock sets the clock used to stamp and expire entries.
func WithClock(clock cache.Clock) FetcherOption {
	return func(o *fetcherOptions) {
		o.clock = clock
	}
}

// WithTTLs sets the transaction-count and stablecoin-cap lifetimes. Zero
// keeps the default.
func WithTTLs(txCounts, stablecoinCaps time.Duration) FetcherOption {
	return func(o *fetcherOptions) {
		if txCounts > 0 {
			o.txTTL = txCounts
		}
		if stablecoinCaps > 0 {
			o.capsTTL = stablecoinCaps
		}
	}
}

// WithFetcherLogger sets the logger.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(o *fetcherOptions) {
		o.logger = logger
	}
}

// NewFetcher creates a Fetcher around client.
func NewFetcher(client *Client, opts ...FetcherOption) *Fetcher {
	o := fetcherOptions{
		clock:   cache.SystemClock{},
		logger:  slog.Default(),
		txTTL:   DefaultTxCountsTTL,
		capsTTL: DefaultStablecoinCapsTTL,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Fetcher{
		client:    client,
		logger:    o.logger,
		txTTL:     o.txTTL,
		capsTTL:   o.capsTTL,
		txCache:   cache.New[*table.TimeSeries](o.clock),
		capsCache: cache.New[*table.Caps](o.clock),
	}
}

// TransactionCounts returns daily transaction counts for assets, from cache
// when a fetch for the same asset set happened within the TTL.
func (f *Fetcher) TransactionCounts(ctx context.Context, assets []string) (*table.TimeSeries, error) {
	key := cache.Key(OpTransactionCounts, assets...)
	ts, hit, err := f.txCache.GetOrFetch(key, f.txTTL, func() (*table.TimeSeries, error) {
		return f.client.TransactionCounts(ctx, assets)
	})
	if err != nil {
		return nil, err
	}
	f.logger.Debug("transaction counts served",
		"assets", strings.Join(assets, ","),
		"cache_hit", hit,
		"rows", ts.Len(),
	)
	return ts, nil
}

// StablecoinCaps returns market caps for ids, from cache when a fetch for the
// same id set happened within the TTL.
func (f *Fetcher) StablecoinCaps(ctx context.Context, ids []string) (*table.Caps, error) {
	key := cache.Key(OpStablecoinCaps, ids...)
	caps, hit, err := f.capsCache.GetOrFetch(key, f.capsTTL, func() (*table.Caps, error) {
		return f.client.StablecoinCaps(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	f.logger.Debug("stablecoin caps served",
		"ids", strings.Join(ids, ","),
		"cache_hit", hit,
		"rows", caps.Len(),
	)
	return caps, nil
}
