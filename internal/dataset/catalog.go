package dataset

import "slices"

// Bundled resource names.
const (
	AdoptionInternet       = "adoption_internet"
	AdoptionBlockchain     = "adoption_blockchain"
	TransactionsComparison = "transactions_comparison"
	BTCETHVolumes          = "btc_eth_volumes"
	RemittanceFees         = "remittance_fees"
	TokenizationAssets     = "tokenization_assets"
	RisksOpportunities     = "risks_opportunities"
	CBDCProjects           = "cbdc_projects"
	CBDCMap                = "cbdc_map"
	DeFiTVL                = "defi_tvl"
	VolatilitySeries       = "volatility_series"
	LiquiditySeries        = "liquidity_series"
	EnergyComparison       = "energy_comparison"
	EnergyMix              = "energy_mix"
	RegulationTimeline     = "regulation_timeline"
	NFTsMarket             = "nfts_market"
	StablecoinCapsFallback = "stablecoin_caps_fallback"
)

var catalog = []string{
	AdoptionInternet,
	AdoptionBlockchain,
	TransactionsComparison,
	BTCETHVolumes,
	RemittanceFees,
	TokenizationAssets,
	RisksOpportunities,
	CBDCProjects,
	CBDCMap,
	DeFiTVL,
	VolatilitySeries,
	LiquiditySeries,
	EnergyComparison,
	EnergyMix,
	RegulationTimeline,
	NFTsMarket,
	StablecoinCapsFallback,
}

// Catalog returns the names of all bundled resources.
func Catalog() []string {
	return slices.Clone(catalog)
}

// Known reports whether name is a bundled resource.
func Known(name string) bool {
	return slices.Contains(catalog, name)
}
