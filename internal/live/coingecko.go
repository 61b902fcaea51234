package live

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/table"
)

// VsCurrency is the reference currency for market caps.
const VsCurrency = "usd"

// OpStablecoinCaps names the stablecoin-caps operation in errors and cache keys.
const OpStablecoinCaps = "stablecoin_caps"

// StablecoinCaps fetches market caps for the CoinGecko coin ids, in USD.
// Each item is projected to {name, SYMBOL, market_cap}; a null market cap is
// kept as null.
func (c *Client) StablecoinCaps(ctx context.Context, ids []string) (*table.Caps, error) {
	ids = normalizeParams(ids, strings.ToLower)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%s: %w: at least one coin id is required", OpStablecoinCaps, ErrInvalidParams)
	}

	query := url.Values{}
	query.Set("vs_currency", VsCurrency)
	query.Set("ids", strings.Join(ids, ","))
	query.Set("per_page", strconv.Itoa(len(ids)))

	var items []MarketItem
	if err := c.get(ctx, c.coinGeckoURL, "/coins/markets", query, &items); err != nil {
		return nil, &FetchError{Op: OpStablecoinCaps, Err: err}
	}

	caps, err := projectCaps(items)
	if err != nil {
		return nil, &FetchError{Op: OpStablecoinCaps, Err: err}
	}
	return caps, nil
}

func projectCaps(items []MarketItem) (*table.Caps, error) {
	if items == nil {
		return nil, fmt.Errorf("%w: expected an array of markets", ErrMalformedPayload)
	}
	rows := make([]table.CapRow, 0, len(items))
	for i, it := range items {
		if it.Name == nil || it.Symbol == nil {
			return nil, fmt.Errorf("%w: item %d lacks name or symbol", ErrMalformedPayload, i)
		}
		rows = append(rows, table.CapRow{
			Name:      *it.Name,
			Symbol:    strings.ToUpper(*it.Symbol),
			MarketCap: it.MarketCap,
		})
	}
	return table.NewCaps(rows), nil
}
