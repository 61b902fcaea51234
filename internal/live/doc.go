// Package live fetches dashboard metrics from public market-data APIs.
//
// Endpoints:
//   - Coin Metrics Community API: https://community-api.coinmetrics.io/v4
//     GET /timeseries/asset-metrics (metric TxCnt, daily)
//   - CoinGecko: https://api.coingecko.com/api/v3
//     GET /coins/markets (USD)
//
// Every call makes exactly one HTTP attempt. Failures come back as
// *FetchError (errors.Is(err, ErrLiveFetchFailed)); substituting fallback
// data is the caller's job.
package live
