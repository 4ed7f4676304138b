package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

var maxUint64 = decimal.NewFromUint64(math.MaxUint64)

// FeeToBaseUnits converts a fee in whole token units to base units by
// multiplying by 10^decimals and truncating any fraction of a base unit.
//
// The conversion goes through the shortest decimal representation of fee,
// so 1.5 with 9 decimals yields exactly 1500000000.
func FeeToBaseUnits(fee float64, decimals int32) (uint64, error) {
	if math.IsNaN(fee) || math.IsInf(fee, 0) {
		return 0, errors.New("fee must be a finite number")
	}
	if fee < 0 {
		return 0, fmt.Errorf("fee must not be negative: %v", fee)
	}
	scaled := decimal.NewFromFloat(fee).Shift(decimals).Truncate(0)
	if scaled.GreaterThan(maxUint64) {
		return 0, fmt.Errorf("fee %v overflows base units at %d decimals", fee, decimals)
	}
	return scaled.BigInt().Uint64(), nil
}

// BaseUnitsToFee converts base units back to whole token units.
func BaseUnitsToFee(amount uint64, decimals int32) decimal.Decimal {
	return decimal.NewFromUint64(amount).Shift(-decimals)
}
