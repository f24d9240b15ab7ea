package numtheory

import "github.com/helix-rsa/helix/internal/pkg/bignum"

type euclidStep struct {
	a, b, q *bignum.Nat
}

// ExtendedEuclid returns d = gcd(a, b) together with non-negative x and y
// such that d = a*x - b*y.
//
// The division steps are recorded on an explicit stack and unwound
// afterwards, so the depth of the computation does not grow the goroutine
// stack. ErrZeroOperand is returned when a is zero and b is not.
func ExtendedEuclid(a, b *bignum.Nat) (d, x, y *bignum.Nat, err error) {
	if a.IsZero() && !b.IsZero() {
		return nil, nil, nil, ErrZeroOperand
	}

	var steps []euclidStep
	for !b.IsZero() {
		q, r := bignum.DivMod(a, b)
		steps = append(steps, euclidStep{a: a, b: b, q: q})
		a, b = b, r
	}

	d, x, y = a.Clone(), bignum.New(1), bignum.Zero()
	for i := len(steps) - 1; i >= 0; i-- {
		x, y = liftCoefficients(steps[i], x, y)
	}
	return d, x, y, nil
}

// liftCoefficients turns a solution d = b*x - r*y of the inner step into a
// solution d = a*x' - b*y' of the outer one. Since r = a - q*b, any
// multiple k of (b, a) may be added to keep both coefficients non-negative;
// k is the smallest value that does so for both.
func liftCoefficients(s euclidStep, x, y *bignum.Nat) (*bignum.Nat, *bignum.Nat) {
	t := x.Add(s.q.Mul(y))

	k := y.Div(s.b).AddAssign(bignum.New(1))
	if alt := t.Div(s.a).AddAssign(bignum.New(1)); k.Less(alt) {
		k = alt
	}

	return k.Mul(s.b).SubAssign(y), k.Mul(s.a).SubAssign(t)
}

// GCD returns the greatest common divisor of a and b.
func GCD(a, b *bignum.Nat) *bignum.Nat {
	a, b = a.Clone(), b.Clone()
	for !b.IsZero() {
		a, b = b, a.Mod(b)
	}
	return a
}

// MultiplicativeInverse returns x with a*x = 1 mod n, and false when a has
// no inverse modulo n.
func MultiplicativeInverse(a, n *bignum.Nat) (*bignum.Nat, bool) {
	if n.IsZero() {
		return nil, false
	}
	d, x, _, err := ExtendedEuclid(a, n)
	if err != nil || !d.Equal(bignum.New(1)) {
		return nil, false
	}
	return x.ModAssign(n), true
}
