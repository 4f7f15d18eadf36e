package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit status values. A unit is created in stock and flips to sold by the
// same save operation that supplies the sale fields.
const (
	StatusStock = "STOCK"
	StatusSold  = "SOLD"
)

// Fund movement types.
const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// Supported currencies. USD is the unit-of-account for cross-batch totals.
const (
	CurrencyUSD = "USD"
	CurrencyARS = "ARS"
)

// Proceeds holder markers: which partner custodies sale proceeds, and
// through which rail (cash or marketplace account).
const (
	HolderPartnerACash        = "PARTNER_A_CASH"
	HolderPartnerBCash        = "PARTNER_B_CASH"
	HolderPartnerAMarketplace = "PARTNER_A_MP"
	HolderPartnerBMarketplace = "PARTNER_B_MP"
)

// Unit is one tracked device, the atomic inventory record. The derived
// fields (TotalCost, NetProfit, partner shares) are computed once at save
// time and stored; they are never silently recomputed on read.
type Unit struct {
	Id           string `db:"id" json:"id"`
	BatchId      string `db:"batch_id" json:"batch_id"`
	Model        string `db:"model" json:"model"`
	Storage      string `db:"storage" json:"storage"`
	Memory       string `db:"memory" json:"memory"`
	Color        string `db:"color" json:"color"`
	Imei1        string `db:"imei1" json:"imei1,omitempty"`
	Imei2        string `db:"imei2" json:"imei2,omitempty"`
	PurchaseDate string `db:"purchase_date" json:"purchase_date"`

	CostUSD      decimal.Decimal `db:"cost_usd" json:"cost_usd"`
	ExchangeRate decimal.Decimal `db:"exchange_rate" json:"exchange_rate"`
	ShippingCost decimal.Decimal `db:"shipping_cost" json:"shipping_cost"`
	ExtraCost    decimal.Decimal `db:"extra_cost" json:"extra_cost"`
	TotalCost    decimal.Decimal `db:"total_cost" json:"total_cost"`

	Status string `db:"status" json:"status"`

	SaleDate         string          `db:"sale_date" json:"sale_date,omitempty"`
	SaleChannel      string          `db:"sale_channel" json:"sale_channel,omitempty"`
	ListPrice        decimal.Decimal `db:"list_price" json:"list_price"`
	MLPrice1         decimal.Decimal `db:"ml_price_1" json:"ml_price_1"`
	MLPrice3         decimal.Decimal `db:"ml_price_3" json:"ml_price_3"`
	MLPrice6         decimal.Decimal `db:"ml_price_6" json:"ml_price_6"`
	ProceedsReceived decimal.Decimal `db:"proceeds_received" json:"proceeds_received"`
	ProceedsHolder   string          `db:"proceeds_holder" json:"proceeds_holder,omitempty"`

	SplitA        decimal.Decimal `db:"split_a" json:"split_a"`
	SplitB        decimal.Decimal `db:"split_b" json:"split_b"`
	NetProfit     decimal.Decimal `db:"net_profit" json:"net_profit"`
	PartnerAShare decimal.Decimal `db:"partner_a_share" json:"partner_a_share"`
	PartnerBShare decimal.Decimal `db:"partner_b_share" json:"partner_b_share"`
	PaidPartnerA  bool            `db:"paid_partner_a" json:"paid_partner_a"`
	PaidPartnerB  bool            `db:"paid_partner_b" json:"paid_partner_b"`

	CommissionPaid bool `db:"commission_paid" json:"commission_paid"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Sold reports whether the unit has reached its terminal sold state.
func (u *Unit) Sold() bool {
	return u.Status == StatusSold
}

// Batch ("tanda") is a purchasing round grouping multiple units. Metrics for
// a batch are always computed fresh from its units, never stored here.
type Batch struct {
	Id        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// FundMovement is a single deposit or withdrawal of shared capital.
// AmountUSD is the foreign-currency equivalent frozen at entry time using
// the rate supplied with the movement; it is never recomputed with a
// current rate. Movements are immutable once created, except for deletion.
type FundMovement struct {
	Id          string          `db:"id" json:"id"`
	Type        string          `db:"type" json:"type"`
	Currency    string          `db:"currency" json:"currency"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	AmountUSD   decimal.Decimal `db:"amount_usd" json:"amount_usd"`
	Rate        decimal.Decimal `db:"rate" json:"rate"`
	Responsible string          `db:"responsible" json:"responsible"`
	Date        string          `db:"date" json:"date"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// PartnerLabels maps the two fixed partner slots to display names.
type PartnerLabels struct {
	A string `json:"a"`
	B string `json:"b"`
}

// ModelSpec is the last-used specification for a model name, kept purely to
// pre-fill future entries. Never authoritative, never validated.
type ModelSpec struct {
	Storage string          `json:"storage"`
	Memory  string          `json:"memory"`
	CostUSD decimal.Decimal `json:"cost_usd"`
}

// Snapshot is one consistent read of everything the aggregators consume.
type Snapshot struct {
	Units        []Unit               `json:"units"`
	Batches      []Batch              `json:"batches"`
	Movements    []FundMovement       `json:"fund_movements"`
	Partners     PartnerLabels        `json:"partners"`
	ModelHistory map[string]ModelSpec `json:"model_history"`
}
