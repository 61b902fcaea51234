package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultHost                = "127.0.0.1"
	DefaultPort                = 8501
	DefaultShutdownTimeout     = 10 * time.Second
	DefaultDataDir             = "data"
	DefaultCoinMetricsURL      = "https://community-api.coinmetrics.io/v4"
	DefaultCoinGeckoURL        = "https://api.coingecko.com/api/v3"
	DefaultProviderTimeout     = 30 * time.Second
	DefaultPageSize            = 10000
	DefaultTxCountsTTL         = time.Hour
	DefaultStablecoinCapsTTL   = 30 * time.Minute
	DefaultMovingAverageWindow = 7
	DefaultLogLevel            = "info"
	DefaultLogFormat           = "text"
)

// DefaultTxAssets and DefaultStablecoinIDs are what the original dashboard charts.
var (
	DefaultTxAssets      = []string{"btc", "eth"}
	DefaultStablecoinIDs = []string{"tether", "usd-coin", "dai", "true-usd"}
)

func (c *DashboardConfig) applyDefaults() {
	// Server defaults
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if c.Data.Dir == "" {
		c.Data.Dir = DefaultDataDir
	}

	// Provider defaults
	if c.Providers.CoinMetricsURL == "" {
		c.Providers.CoinMetricsURL = DefaultCoinMetricsURL
	}
	if c.Providers.CoinGeckoURL == "" {
		c.Providers.CoinGeckoURL = DefaultCoinGeckoURL
	}
	if c.Providers.Timeout == 0 {
		c.Providers.Timeout = DefaultProviderTimeout
	}
	if c.Providers.PageSize == 0 {
		c.Providers.PageSize = DefaultPageSize
	}

	// Cache defaults
	if c.Cache.TxCountsTTL == 0 {
		c.Cache.TxCountsTTL = DefaultTxCountsTTL
	}
	if c.Cache.StablecoinCapsTTL == 0 {
		c.Cache.StablecoinCapsTTL = DefaultStablecoinCapsTTL
	}

	// Metrics defaults
	if len(c.Metrics.TxAssets) == 0 {
		c.Metrics.TxAssets = append([]string(nil), DefaultTxAssets...)
	}
	if len(c.Metrics.StablecoinIDs) == 0 {
		c.Metrics.StablecoinIDs = append([]string(nil), DefaultStablecoinIDs...)
	}
	if c.Metrics.MovingAverageWindow == 0 {
		c.Metrics.MovingAverageWindow = DefaultMovingAverageWindow
	}

	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
