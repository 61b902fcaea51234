// Package table defines the in-memory tabular types shared by the loader,
// the live fetcher and the HTTP API.
//
// Conventions:
//   - Dates: time.Time truncated to the UTC calendar day
//   - Numeric cells: NullFloat, so a missing observation stays null instead of 0
//   - Series names: uppercased asset symbols for live time series (e.g. "BTC")
//
// Tables are immutable once returned. Accessors hand out copies and every
// derivation (Rolling, Rename, Select, Tail) builds a new table, so a value
// held by a cache can be shared by several callers.
package table
