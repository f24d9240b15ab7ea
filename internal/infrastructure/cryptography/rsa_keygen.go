package cryptography

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/helix-rsa/helix/internal/pkg/bignum"
	"github.com/helix-rsa/helix/internal/pkg/numtheory"
)

// GenerateRSAKeys produces a private exponent d, a public exponent e and a
// modulus n. Both primes have bitLength/2+1 bits, so n is at least
// bitLength bits long. The public exponent is an odd 16-bit random value
// redrawn until it is invertible modulo (p-1)(q-1).
func GenerateRSAKeys(ctx context.Context, rnd io.Reader, bitLength int) (d, e, n *bignum.Nat, err error) {
	defer bignum.Recover(&err)

	primeBits := bitLength/2 + 1
	p, _, err := numtheory.RandomPrime(ctx, rnd, primeBits)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to generate prime p: %w", err)
	}

	var q *bignum.Nat
	for q == nil || q.Equal(p) {
		q, _, err = numtheory.RandomPrime(ctx, rnd, primeBits)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to generate prime q: %w", err)
		}
	}

	one := bignum.New(1)
	n = p.Mul(q)
	phi := p.Sub(one).Mul(q.Sub(one))

	var buf [2]byte
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		if _, err := io.ReadFull(rnd, buf[:]); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to draw public exponent: %w", err)
		}

		e = bignum.New(uint64(binary.LittleEndian.Uint16(buf[:]) | 1))
		if e.Equal(one) {
			continue
		}
		if d, ok := numtheory.MultiplicativeInverse(e, phi); ok {
			return d, e, n, nil
		}
	}
}
