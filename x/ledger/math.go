package ledger

import (
	"math/bits"

	"github.com/iov-one/multidist/errors"
)

func add64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return sum, nil
}

func sub64(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d - %d", a, b)
	}
	return diff, nil
}

// mulDiv returns floor(a * b / d). The product is computed on 128 bits.
// A zero divisor or a quotient that does not fit 64 bits is an overflow.
func mulDiv(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, errors.Wrap(errors.ErrOverflow, "division by zero")
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d / %d", a, b, d)
	}
	q, _ := bits.Div64(hi, lo, d)
	return q, nil
}

// Entitlement returns the total amount a depositor is owed by a
// distribution.
func Entitlement(deposited, lifetimeFunded, maxCollectable uint64) (uint64, error) {
	return mulDiv(deposited, lifetimeFunded, maxCollectable)
}
