package config

import "time"

// DashboardConfig is the root configuration for the dashboard data service.
type DashboardConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Data      DataConfig      `yaml:"data"`
	Providers ProvidersConfig `yaml:"providers"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds the HTTP API listener settings.
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DataConfig points at the bundled CSV resources.
type DataConfig struct {
	Dir string `yaml:"dir"`
}

// ProvidersConfig holds the live API endpoints.
type ProvidersConfig struct {
	CoinMetricsURL string        `yaml:"coinmetrics_url"`
	CoinGeckoURL   string        `yaml:"coingecko_url"`
	Timeout        time.Duration `yaml:"timeout"`
	PageSize       int           `yaml:"page_size"` // Coin Metrics page_size; only the first page is read
}

// CacheConfig holds live response lifetimes.
type CacheConfig struct {
	TxCountsTTL       time.Duration `yaml:"tx_counts_ttl"`
	StablecoinCapsTTL time.Duration `yaml:"stablecoin_caps_ttl"`
}

// MetricsConfig selects what the live panels request.
type MetricsConfig struct {
	TxAssets            []string `yaml:"tx_assets"`      // Coin Metrics asset ids
	StablecoinIDs       []string `yaml:"stablecoin_ids"` // CoinGecko coin ids
	MovingAverageWindow int      `yaml:"moving_average_window"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}
