package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"tanda-tracker-go/internal/models"
)

// InsufficientFundsError reports a withdrawal that exceeds the current
// balance of its currency, in that currency's own units.
type InsufficientFundsError struct {
	Currency  string
	Requested decimal.Decimal
	Balance   decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: requested %s %s, balance is %s %s",
		e.Currency, e.Requested, e.Currency, e.Balance)
}

// Aggregate reduces a fund movement history into per-currency balances and
// the frozen USD-equivalent total. The reduction is commutative, so the
// order of the history is irrelevant. It performs no validation: a history
// that nets out negative (e.g. after a direct data edit bypassed the
// admission check) is reflected as-is.
func Aggregate(movements []models.FundMovement) models.FundBalances {
	var b models.FundBalances

	for _, m := range movements {
		amount := m.Amount
		amountUSD := m.AmountUSD
		if m.Type == models.MovementOut {
			amount = amount.Neg()
			amountUSD = amountUSD.Neg()
		}

		if m.Currency == models.CurrencyUSD {
			b.USD = b.USD.Add(amount)
		} else {
			b.ARS = b.ARS.Add(amount)
		}
		b.TotalUSD = b.TotalUSD.Add(amountUSD)
	}

	return b
}

// ForeignEquivalent expresses an amount in USD terms at entry time. USD
// amounts pass through; ARS amounts are converted with the rate recorded on
// the movement. A missing or zero rate degrades to zero rather than failing.
func ForeignEquivalent(currency string, amount, rate decimal.Decimal) decimal.Decimal {
	if currency == models.CurrencyUSD {
		return amount
	}
	if rate.IsZero() {
		return decimal.Zero
	}
	return amount.Div(rate)
}

// CheckWithdrawal is the advisory admission check performed by the writer
// before a movement is appended: a withdrawal may not drive its own
// currency's balance negative. Balances are currency-siloed; an ARS
// shortfall is not covered by USD reserves.
func CheckWithdrawal(balances models.FundBalances, currency string, amount decimal.Decimal) error {
	balance := balances.ARS
	if currency == models.CurrencyUSD {
		balance = balances.USD
	}

	if amount.GreaterThan(balance) {
		return &InsufficientFundsError{Currency: currency, Requested: amount, Balance: balance}
	}
	return nil
}
