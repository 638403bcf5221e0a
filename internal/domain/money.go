package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Balance arithmetic runs on integer minor units (kobo). Amounts are
// normalized to int64 before any add/subtract and converted back after,
// so repeated mutations never accumulate rounding error.

const minorUnitExponent = 2

var ErrAmountPrecision = errors.New("amount has more precision than minor units allow")

// ToMinorUnits converts a major-unit decimal amount to integer minor units.
// 1500.00 -> 150000. Fails if the amount carries sub-kobo precision.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	shifted := amount.Shift(minorUnitExponent)
	if !shifted.IsInteger() {
		return 0, ErrAmountPrecision
	}

	return shifted.IntPart(), nil
}

// FromMinorUnits converts integer minor units back to a major-unit decimal.
func FromMinorUnits(units int64) decimal.Decimal {
	return decimal.NewFromInt(units).Shift(-minorUnitExponent)
}

// ApplyCredit returns balance increased by amount, computed in minor units.
func ApplyCredit(balance, amount decimal.Decimal) (decimal.Decimal, error) {
	b, err := ToMinorUnits(balance)
	if err != nil {
		return decimal.Zero, err
	}

	a, err := ToMinorUnits(amount)
	if err != nil {
		return decimal.Zero, err
	}

	return FromMinorUnits(b + a), nil
}

// ApplyDebit returns balance decreased by amount, computed in minor units.
// Fails with ErrInsufficientFunds when the balance would go negative.
func ApplyDebit(balance, amount decimal.Decimal) (decimal.Decimal, error) {
	b, err := ToMinorUnits(balance)
	if err != nil {
		return decimal.Zero, err
	}

	a, err := ToMinorUnits(amount)
	if err != nil {
		return decimal.Zero, err
	}

	if b < a {
		return decimal.Zero, ErrInsufficientFunds
	}

	return FromMinorUnits(b - a), nil
}
