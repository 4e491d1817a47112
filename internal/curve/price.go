package curve

import (
	"math"

	"github.com/shopspring/decimal"
)

const priceSignificantDigits = 10

// TickToPrice returns the price of token A in token B at tick, adjusted for mint decimals.
func TickToPrice(tick int32, decimalsA, decimalsB uint8) decimal.Decimal {
	raw := decimal.NewFromFloat(math.Pow(1.0001, float64(tick)))
	return roundSignificant(raw.Shift(int32(decimalsA)-int32(decimalsB)), priceSignificantDigits)
}

func roundSignificant(d decimal.Decimal, digits int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	intDigits := int32(d.NumDigits()) + d.Exponent()
	return d.Round(digits - intDigits)
}
