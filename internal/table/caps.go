package table

import (
	"encoding/json"
	"slices"
	"sort"
)

// CapRow is one stablecoin market capitalization.
type CapRow struct {
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	MarketCap NullFloat `json:"market_cap"`
}

// Caps is a {name, symbol, market_cap} table. Rows with a null market cap are
// kept.
type Caps struct {
	rows []CapRow
}

// NewCaps copies rows into a new table.
func NewCaps(rows []CapRow) *Caps {
	return &Caps{rows: slices.Clone(rows)}
}

// Len returns the number of rows.
func (c *Caps) Len() int { return len(c.rows) }

// Rows returns a copy of the rows.
func (c *Caps) Rows() []CapRow { return slices.Clone(c.rows) }

// Symbols returns the symbols in row order.
func (c *Caps) Symbols() []string {
	out := make([]string, len(c.rows))
	for i, r := range c.rows {
		out[i] = r.Symbol
	}
	return out
}

// SortByMarketCapDesc returns a new table sorted by market cap, largest
// first. Null caps sort last; ties keep their original order.
func (c *Caps) SortByMarketCapDesc() *Caps {
	rows := slices.Clone(c.rows)
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].MarketCap, rows[j].MarketCap
		if a.Valid != b.Valid {
			return a.Valid
		}
		return a.Valid && a.Float64 > b.Float64
	})
	return &Caps{rows: rows}
}

// MarshalJSON encodes the rows as an array.
func (c *Caps) MarshalJSON() ([]byte, error) {
	if c.rows == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.rows)
}
