package edifact

import (
	"github.com/shopspring/decimal"
)

// RoundHalfUp quantizes d to the given number of decimal places with
// ties rounding away from zero.
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// LineTotal computes price × quantity rounded once at the configured
// precision. Lines are rounded individually and then summed, so
// rounding error never compounds across an order.
func LineTotal(price decimal.Decimal, quantity int, places int32) decimal.Decimal {
	return RoundHalfUp(price.Mul(decimal.NewFromInt(int64(quantity))), places)
}

// TaxAmount computes goods × rate / 100 rounded at the configured
// precision. Dividing by 100 is a pure exponent shift, so the
// intermediate value stays exact.
func TaxAmount(goods, rate decimal.Decimal, places int32) decimal.Decimal {
	return RoundHalfUp(goods.Mul(rate).Shift(-2), places)
}

// CheckPrecision rejects a value that carries more precision than the
// configured rounding keeps. The engine never silently rounds away
// precision the caller did not intend to lose.
func CheckPrecision(field string, d decimal.Decimal, places int32) error {
	if d.Equal(RoundHalfUp(d, places)) {
		return nil
	}
	return newError(CodeBadPrecision, "%s %s exceeds the configured precision of %d decimal places", field, d.String(), places).
		withDetail("field", field).
		withDetail("value", d.String()).
		withDetail("places", places)
}
