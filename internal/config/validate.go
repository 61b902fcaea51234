package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *DashboardConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Data.Dir == "" {
		return errors.New("data.dir is required")
	}

	if err := validateURL("providers.coinmetrics_url", c.Providers.CoinMetricsURL); err != nil {
		return err
	}
	if err := validateURL("providers.coingecko_url", c.Providers.CoinGeckoURL); err != nil {
		return err
	}
	if c.Providers.Timeout <= 0 {
		return errors.New("providers.timeout must be > 0")
	}
	if c.Providers.PageSize < 1 {
		return errors.New("providers.page_size must be >= 1")
	}

	if c.Cache.TxCountsTTL <= 0 {
		return errors.New("cache.tx_counts_ttl must be > 0")
	}
	if c.Cache.StablecoinCapsTTL <= 0 {
		return errors.New("cache.stablecoin_caps_ttl must be > 0")
	}

	if len(c.Metrics.TxAssets) == 0 {
		return errors.New("metrics.tx_assets must not be empty")
	}
	for _, a := range c.Metrics.TxAssets {
		if strings.TrimSpace(a) == "" {
			return errors.New("metrics.tx_assets must not contain empty ids")
		}
	}
	if len(c.Metrics.StablecoinIDs) == 0 {
		return errors.New("metrics.stablecoin_ids must not be empty")
	}
	for _, id := range c.Metrics.StablecoinIDs {
		if strings.TrimSpace(id) == "" {
			return errors.New("metrics.stablecoin_ids must not contain empty ids")
		}
	}
	if c.Metrics.MovingAverageWindow < 1 {
		return errors.New("metrics.moving_average_window must be >= 1")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", field, raw)
	}
	return nil
}
