package numtheory

import (
	"context"
	"fmt"
	"io"

	"github.com/helix-rsa/helix/internal/pkg/bignum"
)

// MillerRabinRounds is the number of random bases tried before a candidate
// is accepted as prime.
const MillerRabinRounds = 20

// MillerRabinWitness reports whether a proves n composite. It squares its
// way through the bits of n-1 from the top, failing early on a non-trivial
// square root of 1, and finally checks Fermat's condition.
func MillerRabinWitness(a, n *bignum.Nat) bool {
	one := bignum.New(1)
	nMinus1 := n.Sub(one)

	d := bignum.New(1)
	for i := nMinus1.BitLen() - 1; i >= 0; i-- {
		x := d
		d = d.MulMod(d, n)
		if d.Equal(one) && !x.Equal(one) && !x.Equal(nMinus1) {
			return true
		}
		if nMinus1.Bit(i) {
			d = d.MulMod(a, n)
		}
	}
	return !d.Equal(one)
}

// MillerRabinIsComposite runs the given number of Miller-Rabin rounds with
// bases of n.BitLen()-1 random bits read from rnd. Values below 2 are
// reported composite.
func MillerRabinIsComposite(rnd io.Reader, n *bignum.Nat, rounds int) (bool, error) {
	if n.Less(bignum.New(2)) {
		return true, nil
	}

	for j := 0; j < rounds; j++ {
		a := bignum.Zero()
		for a.IsZero() {
			if err := a.SetRandom(rnd, n.BitLen()-1); err != nil {
				return false, fmt.Errorf("failed to draw witness: %w", err)
			}
		}
		if MillerRabinWitness(a, n) {
			return true, nil
		}
	}
	return false, nil
}

// RandomPrime draws odd random candidates of exactly bitLength bits until
// one passes MillerRabinRounds rounds. It returns the prime and the number
// of candidates tried. ctx is checked before every candidate.
func RandomPrime(ctx context.Context, rnd io.Reader, bitLength int) (*bignum.Nat, int, error) {
	if bitLength < 2 {
		return nil, 0, fmt.Errorf("%w: %d", ErrInvalidBitLength, bitLength)
	}

	for attempts := 1; ; attempts++ {
		if err := ctx.Err(); err != nil {
			return nil, attempts - 1, err
		}

		p, err := bignum.Random(rnd, bitLength)
		if err != nil {
			return nil, attempts, fmt.Errorf("failed to draw prime candidate: %w", err)
		}
		p.SetBit(0)

		composite, err := MillerRabinIsComposite(rnd, p, MillerRabinRounds)
		if err != nil {
			return nil, attempts, err
		}
		if !composite {
			return p, attempts, nil
		}
	}
}
