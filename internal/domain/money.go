// internal/domain/money.go
package domain

import (
	"github.com/shopspring/decimal" // For precise monetary calculations

	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// All money values in this package are int64 amounts of minor currency units
// (cents for USD). Binary floating point never touches a money value; exchange
// rates are applied through shopspring/decimal fixed-point arithmetic.

// ParseRate parses an exchange rate supplied as an opaque decimal string.
// The rate must parse as a decimal and be strictly positive.
func ParseRate(raw string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, util.ErrInvalidRate
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, util.ErrInvalidRate
	}
	return rate, nil
}

// ConvertMinor converts an amount of minor units into another currency using
// the given exchange rate, rounding to the nearest minor unit with ties away
// from zero (decimal.Round's tie rule). Banker's rounding is deliberately not
// used; the result must be reproducible by anyone with the audited rate.
func ConvertMinor(amountMinor int64, rate decimal.Decimal) int64 {
	return decimal.NewFromInt(amountMinor).Mul(rate).Round(0).IntPart()
}

// SplitMinor divides total minor units into n shares that sum exactly to
// total. Each share is floor(total/n); the remainder is handed out one minor
// unit at a time to the earliest shares, so the first (total mod n) entries
// carry one extra unit. Ordering is the caller's and is preserved.
func SplitMinor(total int64, n int) []int64 {
	shares := make([]int64, n)
	base := total / int64(n)
	remainder := total % int64(n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}
