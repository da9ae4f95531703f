// Package amount converts between human-decimal token amounts and the
// integer base-unit representation used on-chain. All math is exact
// big-integer arithmetic; native floats are never involved.
package amount

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidAmount is returned for non-numeric input or amounts that would
// require fractional base units at the given decimal count.
var ErrInvalidAmount = errors.New("invalid amount")

// ToBaseUnits scales a decimal amount string by 10^decimals and returns the
// base-unit integer as a string. "2.5" at 6 decimals becomes "2500000".
func ToBaseUnits(amt string, decimals int) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("%w: negative decimals %d", ErrInvalidAmount, decimals)
	}

	r, ok := new(big.Rat).SetString(amt)
	if !ok || strings.ContainsAny(amt, "/eE") {
		return "", fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, amt)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	r.Mul(r, new(big.Rat).SetInt(scale))
	if !r.IsInt() {
		return "", fmt.Errorf("%w: %s is not representable at %d decimals", ErrInvalidAmount, amt, decimals)
	}

	return r.Num().String(), nil
}

// FromBaseUnits converts a base-unit integer string back to a decimal amount
// string, trimming trailing zeros. "2500000" at 6 decimals becomes "2.5".
func FromBaseUnits(base string, decimals int) (string, error) {
	if decimals < 0 {
		return "", fmt.Errorf("%w: negative decimals %d", ErrInvalidAmount, decimals)
	}

	n, ok := new(big.Int).SetString(base, 10)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a base-unit integer", ErrInvalidAmount, base)
	}

	if decimals == 0 {
		return n.String(), nil
	}

	sign := ""
	if n.Sign() < 0 {
		sign = "-"
		n.Neg(n)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, frac := new(big.Int).QuoRem(n, scale, new(big.Int))

	fracStr := frac.String()
	if len(fracStr) < decimals {
		fracStr = strings.Repeat("0", decimals-len(fracStr)) + fracStr
	}
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		return sign + whole.String(), nil
	}
	return sign + whole.String() + "." + fracStr, nil
}
