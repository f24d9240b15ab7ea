package numtheory

import "github.com/helix-rsa/helix/internal/pkg/bignum"

// ExponentMod returns a^b mod c by left-to-right binary exponentiation.
// It panics with bignum.ErrDivisionByZero if c is zero.
func ExponentMod(a, b, c *bignum.Nat) *bignum.Nat {
	result := bignum.New(1).ModAssign(c)
	for i := b.BitLen() - 1; i >= 0; i-- {
		result = result.MulMod(result, c)
		if b.Bit(i) {
			result = result.MulMod(a, c)
		}
	}
	return result
}
