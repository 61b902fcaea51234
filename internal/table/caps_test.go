package table

import (
	"encoding/json"
	"testing"
)

func TestCaps_SortByMarketCapDesc(t *testing.T) {
	caps := NewCaps([]CapRow{
		{Name: "Dai", Symbol: "DAI", MarketCap: Float(5e9)},
		{Name: "TrueUSD", Symbol: "TUSD", MarketCap: Null()},
		{Name: "Tether", Symbol: "USDT", MarketCap: Float(8e10)},
		{Name: "USD Coin", Symbol: "USDC", MarketCap: Float(2.5e10)},
	})

	sorted := caps.SortByMarketCapDesc()
	got := sorted.Symbols()
	want := []string{"USDT", "USDC", "DAI", "TUSD"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Symbols() = %v, want %v", got, want)
		}
	}
	if sorted.Len() != 4 {
		t.Errorf("null row dropped: Len() = %d", sorted.Len())
	}
	if caps.Symbols()[0] != "DAI" {
		t.Errorf("sort mutated the source table")
	}
}

func TestCaps_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(NewCaps([]CapRow{{Name: "TrueUSD", Symbol: "TUSD"}}))
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"name":"TrueUSD","symbol":"TUSD","market_cap":null}]`
	if string(b) != want {
		t.Errorf("json = %s, want %s", b, want)
	}

	b, _ = json.Marshal(NewCaps(nil))
	if string(b) != `[]` {
		t.Errorf("empty caps json = %s, want []", b)
	}
}
