package live

import "github.com/Nidhonkar/blockchain-adoption-pro/internal/table"

// AssetMetricsResponse from GET /timeseries/asset-metrics
type AssetMetricsResponse struct {
	// Data is a pointer so a body without "data" can be told apart from an
	// empty result.
	Data          *[]AssetMetricRow `json:"data"`
	NextPageToken string            `json:"next_page_token,omitempty"`
	NextPageURL   string            `json:"next_page_url,omitempty"`
}

// AssetMetricRow is one (time, asset) observation.
type AssetMetricRow struct {
	Asset string          `json:"asset"`
	Time  string          `json:"time"` // RFC 3339 with nanoseconds, e.g. 2024-01-01T00:00:00.000000000Z
	TxCnt table.NullFloat `json:"TxCnt"`
}

// MarketItem is one entry of GET /coins/markets.
type MarketItem struct {
	ID        string          `json:"id"`
	Name      *string         `json:"name"`
	Symbol    *string         `json:"symbol"`
	MarketCap table.NullFloat `json:"market_cap"`
}
