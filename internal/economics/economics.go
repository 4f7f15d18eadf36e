package economics

import "github.com/shopspring/decimal"

// Sales channels. The marketplace channel nets out a flat commission; the
// direct channel is fee-free.
const (
	ChannelMarketplace = "ML"
	ChannelDirect      = "DIRECT"
)

// Margin and fee constants. Tuned in one place; not configurable per call.
var (
	// marketplaceNetFactor models the flat marketplace commission: the
	// seller keeps 75% of the listed price.
	marketplaceNetFactor = decimal.NewFromFloat(0.75)

	// Suggested-price margins over total cost.
	marginCash        = decimal.NewFromFloat(1.25)
	marginMarketplace = decimal.NewFromFloat(1.60)

	// Installment surcharges applied on top of the channel base price.
	installments3Factor = decimal.NewFromFloat(1.30)
	installments6Factor = decimal.NewFromFloat(1.40)

	two = decimal.NewFromInt(2)
)

// TotalCost converts a foreign-currency purchase into the local-currency
// total: costUSD*rate + shipping + extra. The caller guarantees rate is the
// correct USD->ARS rate for the acquisition date; zero-value inputs simply
// contribute zero.
func TotalCost(costUSD, rate, shipping, extra decimal.Decimal) decimal.Decimal {
	return costUSD.Mul(rate).Add(shipping).Add(extra)
}

// NetProfit is proceeds actually received minus total cost. A negative
// result is a loss and is reported as-is, never clamped.
func NetProfit(proceeds, totalCost decimal.Decimal) decimal.Decimal {
	return proceeds.Sub(totalCost)
}

// ExpectedProfit estimates the net result of a planned sale. On the
// marketplace channel the net proceeds are the planned price minus the flat
// commission; any other channel is assumed fee-free. This is a planning
// figure only and is never persisted.
func ExpectedProfit(plannedPrice, totalCost decimal.Decimal, channel string) decimal.Decimal {
	estimatedNet := plannedPrice
	if channel == ChannelMarketplace {
		estimatedNet = plannedPrice.Mul(marketplaceNetFactor)
	}
	return estimatedNet.Sub(totalCost)
}

// Split is a profit allocation between the two partners.
type Split struct {
	PartnerA decimal.Decimal `json:"partner_a"`
	PartnerB decimal.Decimal `json:"partner_b"`
}

// SplitProfit allocates profit proportionally to the recorded contributions,
// treated as relative weights (percentages or absolute amounts both work).
// A zero total falls back to an even split instead of dividing by zero.
// Partner B takes the remainder so the two shares always sum to the profit.
func SplitProfit(profit, contributionA, contributionB decimal.Decimal) Split {
	total := contributionA.Add(contributionB)
	if total.IsZero() {
		half := profit.Div(two)
		return Split{PartnerA: half, PartnerB: half}
	}

	shareA := profit.Mul(contributionA).Div(total)
	return Split{PartnerA: shareA, PartnerB: profit.Sub(shareA)}
}

// PriceLadder is one channel's suggested price tiers: single payment, three
// installments, six installments.
type PriceLadder struct {
	Single        decimal.Decimal `json:"single"`
	Installments3 decimal.Decimal `json:"installments_3"`
	Installments6 decimal.Decimal `json:"installments_6"`
}

// SuggestedPrices holds the advisory price ladders for both channels.
type SuggestedPrices struct {
	Cash        PriceLadder `json:"cash"`
	Marketplace PriceLadder `json:"marketplace"`
}

// SuggestPrices derives the advisory price ladders from the total cost.
// Recomputed live on every cost change, never stored.
func SuggestPrices(totalCost decimal.Decimal) SuggestedPrices {
	cashBase := totalCost.Mul(marginCash)
	mpBase := totalCost.Mul(marginMarketplace)

	return SuggestedPrices{
		Cash: PriceLadder{
			Single:        cashBase,
			Installments3: cashBase.Mul(installments3Factor),
			Installments6: cashBase.Mul(installments6Factor),
		},
		Marketplace: PriceLadder{
			Single:        mpBase,
			Installments3: mpBase.Mul(installments3Factor),
			Installments6: mpBase.Mul(installments6Factor),
		},
	}
}
