package entity

import "github.com/shopspring/decimal"

// SpyPerUsd is the fixed conversion ratio: 1 USD = 110 SPY.
// USD is a display value only; all balance arithmetic stays in SPY.
const SpyPerUsd = 110

// UsdFromSpy derives the USD display value for an SPY amount,
// rounded half-up to 2 decimals. Deterministic: re-deriving always
// reproduces the stored value.
func UsdFromSpy(amountSpy int64) string {
	return decimal.NewFromInt(amountSpy).
		Div(decimal.NewFromInt(SpyPerUsd)).
		StringFixed(2)
}
