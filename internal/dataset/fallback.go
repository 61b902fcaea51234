package dataset

import (
	"fmt"
	"strings"

	"github.com/Nidhonkar/blockchain-adoption-pro/internal/table"
)

// Column names of the fallback snapshots.
const (
	ColSymbol     = "symbol"
	ColMarketCap  = "market_cap"
	ColName       = "name"
	ColID         = "id"
	ColBTCDailyTx = "btc_daily_tx"
	ColETHDailyTx = "eth_daily_tx"
)

// TxCountsRename maps the fallback CSV columns onto the live series names.
var TxCountsRename = map[string]string{
	ColBTCDailyTx: "BTC",
	ColETHDailyTx: "ETH",
}

// CapsFromDataset converts a stablecoin snapshot into the live caps shape.
// It requires symbol and market_cap; the name comes from "name", else "id".
func CapsFromDataset(ds *table.Dataset) (*table.Caps, error) {
	if !ds.Has(ColSymbol, ColMarketCap) {
		return nil, &UnavailableError{
			Name: ds.Name(),
			Err:  fmt.Errorf("missing columns, need %s and %s", ColSymbol, ColMarketCap),
		}
	}

	symbols, _ := ds.Column(ColSymbol)
	caps, err := ds.Floats(ColMarketCap)
	if err != nil {
		return nil, &UnavailableError{Name: ds.Name(), Err: err}
	}

	var names []string
	switch {
	case ds.Has(ColName):
		names, _ = ds.Column(ColName)
	case ds.Has(ColID):
		names, _ = ds.Column(ColID)
	default:
		names = make([]string, ds.Len())
	}

	rows := make([]table.CapRow, ds.Len())
	for i := range rows {
		rows[i] = table.CapRow{
			Name:      names[i],
			Symbol:    strings.ToUpper(strings.TrimSpace(symbols[i])),
			MarketCap: caps[i],
		}
	}
	return table.NewCaps(rows), nil
}

// TxCountsFromDataset converts the BTC/ETH volume snapshot into the live
// transaction-count shape: columns BTC and ETH indexed by date.
func TxCountsFromDataset(ds *table.Dataset) (*table.TimeSeries, error) {
	ts, err := ds.TimeSeries(ColBTCDailyTx, ColETHDailyTx)
	if err != nil {
		return nil, &UnavailableError{Name: ds.Name(), Err: err}
	}
	renamed, err := ts.Rename(TxCountsRename)
	if err != nil {
		return nil, &UnavailableError{Name: ds.Name(), Err: err}
	}
	return renamed, nil
}
