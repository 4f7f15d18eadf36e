package models

import "github.com/shopspring/decimal"

// FundBalances is the reduction of the fund movement history: per-currency
// running balances plus the normalized USD-equivalent total.
type FundBalances struct {
	USD      decimal.Decimal `json:"usd"`
	ARS      decimal.Decimal `json:"ars"`
	TotalUSD decimal.Decimal `json:"total_usd"`
}

// BatchSummary is one row of the historical batches list.
type BatchSummary struct {
	BatchId    string          `json:"batch_id"`
	Name       string          `json:"name"`
	Investment decimal.Decimal `json:"investment"`
	Profit     decimal.Decimal `json:"profit"`
	Units      int             `json:"units"`
}

// Metrics is the single recomputed dashboard object served per query. Every
// field is derived from the current snapshot; none of it is ever persisted.
type Metrics struct {
	// Scoped to the selected batch.
	TandaInvestment decimal.Decimal `json:"tanda_investment"`
	TandaProfit     decimal.Decimal `json:"tanda_profit"`
	StockUnits      int             `json:"stock_units"`
	OwedToA         decimal.Decimal `json:"owed_to_a"`
	OwedToB         decimal.Decimal `json:"owed_to_b"`

	// Global, across all batches.
	GlobalInvestment decimal.Decimal `json:"global_investment"`
	GlobalProfit     decimal.Decimal `json:"global_profit"`

	// Where sale proceeds currently sit, by holder marker.
	CashPartnerA        decimal.Decimal `json:"cash_partner_a"`
	CashPartnerB        decimal.Decimal `json:"cash_partner_b"`
	MarketplacePartnerA decimal.Decimal `json:"marketplace_partner_a"`
	MarketplacePartnerB decimal.Decimal `json:"marketplace_partner_b"`

	Fund    FundBalances   `json:"fund"`
	Batches []BatchSummary `json:"batches"`
}
