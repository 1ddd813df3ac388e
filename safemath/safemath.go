package safemath

import (
	"errors"
	"fmt"
	"math/bits"
)

// ErrOverflow is returned when an arithmetic operation on sizes leaves the
// range of a uint64.
var ErrOverflow = errors.New("integer overflow")

// OverflowError describes the operation that overflowed and its operands.
type OverflowError struct {
	// Op is the operator that was applied, one of "+", "-" or "*".
	Op string

	// A is the left hand operand.
	A uint64

	// B is the right hand operand.
	B uint64
}

// Error returns the failed operation in a human readable form.
func (e *OverflowError) Error() string {
	return fmt.Sprintf("%v: %d %v %d", ErrOverflow, e.A, e.Op, e.B)
}

// Unwrap returns ErrOverflow so that callers can match on the sentinel with
// errors.Is.
func (e *OverflowError) Unwrap() error {
	return ErrOverflow
}

// Add returns a + b, or an error if the sum does not fit in a uint64.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, &OverflowError{Op: "+", A: a, B: b}
	}

	return sum, nil
}

// Sub returns a - b, or an error if b is larger than a.
func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, &OverflowError{Op: "-", A: a, B: b}
	}

	return diff, nil
}

// Mul returns a * b, or an error if the product does not fit in a uint64.
func Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, &OverflowError{Op: "*", A: a, B: b}
	}

	return lo, nil
}

// Sum adds all values provided, failing on the first overflow.
func Sum(values ...uint64) (uint64, error) {
	var (
		total uint64
		err   error
	)
	for _, v := range values {
		total, err = Add(total, v)
		if err != nil {
			return 0, err
		}
	}

	return total, nil
}
