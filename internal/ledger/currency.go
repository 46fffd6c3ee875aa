package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/udisondev/chronicle/internal/model"
)

// Currency is a fungible asset. Amounts are exact decimals truncated to
// DecimalPlaces; floats never touch balances.
type Currency struct {
	Ticker        string
	DecimalPlaces int32
}

// Gold is the in-game currency paid for enhancement.
var Gold = Currency{Ticker: "GOLD", DecimalPlaces: 2}

func (c Currency) String() string { return c.Ticker }

// Amount parses s as an amount of c.
func (c Currency) Amount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q: %v", model.ErrValidation, s, err)
	}
	return c.Normalize(d), nil
}

// Normalize truncates d to the currency precision.
func (c Currency) Normalize(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(c.DecimalPlaces)
}
