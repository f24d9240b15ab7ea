package numtheory

import "errors"

var (
	// ErrZeroOperand is returned by ExtendedEuclid when a is zero and b is not;
	// no pair of non-negative coefficients exists for that input.
	ErrZeroOperand = errors.New("extended euclid: first operand is zero")
	// ErrInvalidBitLength is returned by RandomPrime for bit lengths below 2.
	ErrInvalidBitLength = errors.New("prime bit length must be at least 2")
)
