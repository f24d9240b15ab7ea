//go:build unit
// +build unit

package numtheory

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"testing"

	"github.com/helix-rsa/helix/internal/pkg/bignum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toBig(x *bignum.Nat) *big.Int {
	b, ok := new(big.Int).SetString(x.String(), 10)
	if !ok {
		panic("invalid decimal " + x.String())
	}
	return b
}

func randomNat(t *testing.T, bits int) *bignum.Nat {
	t.Helper()
	x, err := bignum.Random(rand.Reader, bits)
	require.NoError(t, err)
	return x
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("entropy exhausted")
}

func TestExponentMod(t *testing.T) {
	t.Run("Small", func(t *testing.T) {
		assert.Equal(t, "445", ExponentMod(bignum.New(4), bignum.New(13), bignum.New(497)).String())
		assert.Equal(t, "1", ExponentMod(bignum.New(9), bignum.Zero(), bignum.New(7)).String())
		assert.True(t, ExponentMod(bignum.New(9), bignum.New(5), bignum.New(1)).IsZero())
	})

	t.Run("RandomAgainstMathBig", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			a, b, c := randomNat(t, 120), randomNat(t, 64), randomNat(t, 128)
			want := new(big.Int).Exp(toBig(a), toBig(b), toBig(c))
			assert.Equal(t, want, toBig(ExponentMod(a, b, c)))
		}
	})
}

func TestExtendedEuclid(t *testing.T) {
	check := func(t *testing.T, a, b *bignum.Nat) {
		t.Helper()
		d, x, y, err := ExtendedEuclid(a, b)
		require.NoError(t, err)
		assert.Equal(t, new(big.Int).GCD(nil, nil, toBig(a), toBig(b)), toBig(d))
		assert.True(t, a.Mul(x).Sub(b.Mul(y)).Equal(d), "d != a*x - b*y for a=%s b=%s", a, b)
		assert.True(t, d.Equal(GCD(a, b)))
	}

	tests := []struct {
		name string
		a, b uint64
	}{
		{"Textbook", 240, 46},
		{"Coprime", 65537, 3120},
		{"SmallerFirst", 46, 240},
		{"Equal", 99, 99},
		{"Divides", 12, 4},
		{"One", 1, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			check(t, bignum.New(tt.a), bignum.New(tt.b))
		})
	}

	t.Run("Random", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			check(t, randomNat(t, 200), randomNat(t, 150))
		}
	})

	t.Run("SecondOperandZero", func(t *testing.T) {
		d, x, y, err := ExtendedEuclid(bignum.New(5), bignum.Zero())
		require.NoError(t, err)
		assert.Equal(t, "5", d.String())
		assert.Equal(t, "1", x.String())
		assert.True(t, y.IsZero())
	})

	t.Run("BothZero", func(t *testing.T) {
		d, _, _, err := ExtendedEuclid(bignum.Zero(), bignum.Zero())
		require.NoError(t, err)
		assert.True(t, d.IsZero())
	})

	t.Run("FirstOperandZero", func(t *testing.T) {
		_, _, _, err := ExtendedEuclid(bignum.Zero(), bignum.New(5))
		assert.ErrorIs(t, err, ErrZeroOperand)
	})

	t.Run("OperandsUntouched", func(t *testing.T) {
		a, b := bignum.New(240), bignum.New(46)
		_, _, _, err := ExtendedEuclid(a, b)
		require.NoError(t, err)
		assert.Equal(t, "240", a.String())
		assert.Equal(t, "46", b.String())
	})
}

func TestMultiplicativeInverse(t *testing.T) {
	inv, ok := MultiplicativeInverse(bignum.New(3), bignum.New(11))
	require.True(t, ok)
	assert.Equal(t, "4", inv.String())

	_, ok = MultiplicativeInverse(bignum.New(6), bignum.New(9))
	assert.False(t, ok)

	_, ok = MultiplicativeInverse(bignum.New(6), bignum.Zero())
	assert.False(t, ok)

	n := randomNat(t, 160)
	for i := 0; i < 20; i++ {
		a := randomNat(t, 150)
		want := new(big.Int).ModInverse(toBig(a), toBig(n))
		inv, ok := MultiplicativeInverse(a, n)
		if want == nil {
			assert.False(t, ok)
			continue
		}
		require.True(t, ok)
		assert.Equal(t, want, toBig(inv))
		assert.Equal(t, "1", a.MulMod(inv, n).String())
	}
}

func TestMillerRabin(t *testing.T) {
	mersenne := func(p uint) *bignum.Nat {
		return bignum.New(1).Lsh(int(p)).Sub(bignum.New(1))
	}

	primes := map[string]*bignum.Nat{
		"2":            bignum.New(2),
		"3":            bignum.New(3),
		"97":           bignum.New(97),
		"65537":        bignum.New(65537),
		"M61":          mersenne(61),
		"M89":          mersenne(89),
		"M127":         mersenne(127),
		"AfterTwoTo32": bignum.New(4294967311),
	}
	for name, p := range primes {
		t.Run("Prime"+name, func(t *testing.T) {
			composite, err := MillerRabinIsComposite(rand.Reader, p, MillerRabinRounds)
			require.NoError(t, err)
			assert.False(t, composite)
			if p.Cmp(bignum.New(2)) > 0 {
				assert.False(t, MillerRabinWitness(bignum.New(2), p))
			}
		})
	}

	composites := map[string]*bignum.Nat{
		"0":          bignum.Zero(),
		"1":          bignum.New(1),
		"4":          bignum.New(4),
		"Carmichael": bignum.New(561),
		"F5":         bignum.New(4294967297),
		"M67":        mersenne(67),
		"Square":     bignum.New(65537).Mul(bignum.New(65537)),
	}
	for name, c := range composites {
		t.Run("Composite"+name, func(t *testing.T) {
			composite, err := MillerRabinIsComposite(rand.Reader, c, MillerRabinRounds)
			require.NoError(t, err)
			assert.True(t, composite)
		})
	}

	t.Run("ReaderFailure", func(t *testing.T) {
		_, err := MillerRabinIsComposite(errReader{}, bignum.New(97), 1)
		assert.Error(t, err)
	})
}

func TestRandomPrime(t *testing.T) {
	t.Run("BitLengthAndPrimality", func(t *testing.T) {
		for _, bits := range []int{2, 17, 65, 128} {
			p, attempts, err := RandomPrime(context.Background(), rand.Reader, bits)
			require.NoError(t, err)
			assert.Positive(t, attempts)
			assert.Equal(t, bits, p.BitLen())
			assert.True(t, p.Bit(0))
			assert.True(t, toBig(p).ProbablyPrime(20))
		}
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := RandomPrime(ctx, rand.Reader, 64)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("InvalidBitLength", func(t *testing.T) {
		_, _, err := RandomPrime(context.Background(), rand.Reader, 1)
		assert.ErrorIs(t, err, ErrInvalidBitLength)
	})

	t.Run("ReaderFailure", func(t *testing.T) {
		_, _, err := RandomPrime(context.Background(), errReader{}, 64)
		assert.Error(t, err)
	})
}
