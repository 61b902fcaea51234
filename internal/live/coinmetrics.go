package live

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/table"
)

// Coin Metrics query constants.
const (
	MetricTxCount  = "TxCnt"
	FrequencyDaily = "1d"
)

// OpTransactionCounts names the transaction-count operation in errors and cache keys.
const OpTransactionCounts = "transaction_counts"

// TransactionCounts fetches daily transaction counts for assets and pivots
// them into one column per uppercased asset symbol, dates ascending.
//
// Only the first page of results is read. When the provider reports more
// pages the truncation is logged and the first page is returned.
func (c *Client) TransactionCounts(ctx context.Context, assets []string) (*table.TimeSeries, error) {
	assets = normalizeParams(assets, strings.ToLower)
	if len(assets) == 0 {
		return nil, fmt.Errorf("%s: %w: at least one asset is required", OpTransactionCounts, ErrInvalidParams)
	}

	query := url.Values{}
	query.Set("assets", strings.Join(assets, ","))
	query.Set("metrics", MetricTxCount)
	query.Set("frequency", FrequencyDaily)
	query.Set("page_size", strconv.Itoa(c.pageSize))

	var resp AssetMetricsResponse
	if err := c.get(ctx, c.coinMetricsURL, "/timeseries/asset-metrics", query, &resp); err != nil {
		return nil, &FetchError{Op: OpTransactionCounts, Err: err}
	}

	if resp.NextPageToken != "" || resp.NextPageURL != "" {
		c.logger.Warn("transaction counts truncated to first page",
			"assets", assets,
			"page_size", c.pageSize,
		)
	}

	ts, err := pivotTxCounts(resp, assets)
	if err != nil {
		return nil, &FetchError{Op: OpTransactionCounts, Err: err}
	}
	return ts, nil
}

// pivotTxCounts reshapes the long-form response. The result has exactly one
// column per requested asset; an asset with no rows gets an all-null column.
func pivotTxCounts(resp AssetMetricsResponse, assets []string) (*table.TimeSeries, error) {
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: missing data array", ErrMalformedPayload)
	}

	requested := make(map[string]struct{}, len(assets))
	names := make([]string, 0, len(assets))
	for _, a := range assets {
		requested[a] = struct{}{}
		names = append(names, strings.ToUpper(a))
	}
	slices.Sort(names)

	rows := *resp.Data
	obs := make([]table.Observation, 0, len(rows))
	for i, row := range rows {
		asset := strings.ToLower(row.Asset)
		if _, ok := requested[asset]; !ok {
			return nil, fmt.Errorf("%w: row %d has unrequested asset %q", ErrMalformedPayload, i, row.Asset)
		}
		day, err := parseMetricTime(row.Time)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrMalformedPayload, i, err)
		}
		obs = append(obs, table.Observation{
			Date:   day,
			Series: strings.ToUpper(asset),
			Value:  row.TxCnt,
		})
	}

	wide, err := table.Pivot(obs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	cols := make(map[string][]table.NullFloat, len(names))
	for _, name := range names {
		col, ok := wide.Column(name)
		if !ok {
			col = make([]table.NullFloat, wide.Len())
		}
		cols[name] = col
	}
	return table.NewTimeSeries(wide.Dates(), names, cols)
}

// parseMetricTime reads the calendar date from the leading YYYY-MM-DD of a
// Coin Metrics timestamp.
func parseMetricTime(s string) (time.Time, error) {
	if len(s) < len(table.DateLayout) {
		return time.Time{}, fmt.Errorf("bad time %q", s)
	}
	t, err := time.Parse(table.DateLayout, s[:len(table.DateLayout)])
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q", s)
	}
	return t, nil
}

// normalizeParams trims, transforms and de-duplicates params, keeping the
// first occurrence order. Empty values are dropped.
func normalizeParams(params []string, transform func(string) string) []string {
	out := make([]string, 0, len(params))
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		p = transform(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
