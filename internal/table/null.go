package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NullFloat is a float64 that may be null.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Float returns a valid NullFloat.
func Float(f float64) NullFloat {
	return NullFloat{Float64: f, Valid: true}
}

// Null returns an invalid NullFloat.
func Null() NullFloat {
	return NullFloat{}
}

// ParseNullFloat parses s as a float. Empty strings and "NaN" parse to null.
func ParseNullFloat(s string) (NullFloat, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null") {
		return Null(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Null(), fmt.Errorf("parse float %q: %w", s, err)
	}
	return Float(f), nil
}

// String formats the value, or "" when null.
func (n NullFloat) String() string {
	if !n.Valid {
		return ""
	}
	return strconv.FormatFloat(n.Float64, 'f', -1, 64)
}

// MarshalJSON encodes null for invalid values.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid || math.IsNaN(n.Float64) || math.IsInf(n.Float64, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON accepts a number, a quoted number or null.
// Coin Metrics sends metric values as strings, CoinGecko as numbers.
func (n *NullFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Null()
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := ParseNullFloat(s)
		if err != nil {
			return err
		}
		*n = v
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = Float(f)
	return nil
}
