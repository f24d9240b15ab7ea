package bignum

// addShifted adds src, shifted left by the given number of whole segments,
// to z in place. Add and Mul both accumulate through it.
func (z *Nat) addShifted(src *Nat, shift int) {
	if src == z {
		src = src.Clone()
	}
	for len(z.segs) < shift {
		z.segs = append(z.segs, 0)
	}

	var carry uint32
	for i := shift; i-shift < len(src.segs) || carry > 0; i++ {
		pastEnd := i >= len(z.segs)
		if !pastEnd {
			carry += uint32(z.segs[i])
		}
		if i-shift < len(src.segs) {
			carry += uint32(src.segs[i-shift])
		}

		sum := uint16(carry)
		carry >>= 16

		if pastEnd {
			z.segs = append(z.segs, sum)
		} else {
			z.segs[i] = sum
		}
	}
	z.norm()
}

// AddAssign sets z = z + y and returns z.
func (z *Nat) AddAssign(y *Nat) *Nat {
	z.addShifted(y, 0)
	return z
}

// Add returns x + y.
func (x *Nat) Add(y *Nat) *Nat {
	return x.Clone().AddAssign(y)
}

// SubAssign sets z = z - y and returns z. It panics with ErrUnderflow if y > z.
func (z *Nat) SubAssign(y *Nat) *Nat {
	if z == y {
		z.segs = z.segs[:0]
		return z
	}
	if z.Less(y) {
		panic(newError("Sub", ErrUnderflow))
	}

	var borrow uint32
	for i := 0; i < len(z.segs); i++ {
		if i >= len(y.segs) && borrow == 0 {
			break
		}
		operand := borrow
		if i < len(y.segs) {
			operand += uint32(y.segs[i])
		}
		cur := uint32(z.segs[i])
		if cur < operand {
			z.segs[i] = uint16(cur + 1<<16 - operand)
			borrow = 1
		} else {
			z.segs[i] = uint16(cur - operand)
			borrow = 0
		}
	}
	z.norm()
	return z
}

// Sub returns x - y. It panics with ErrUnderflow if y > x.
func (x *Nat) Sub(y *Nat) *Nat {
	return x.Clone().SubAssign(y)
}

// CheckedSub returns x - y, or an error wrapping ErrUnderflow if y > x.
func (x *Nat) CheckedSub(y *Nat) (diff *Nat, err error) {
	defer Recover(&err)
	diff = x.Sub(y)
	return diff, nil
}

// Mul returns x * y using the schoolbook method: every segment product is
// added into the result at offset i+j.
func (x *Nat) Mul(y *Nat) *Nat {
	product := Zero()
	for i, xs := range x.segs {
		for j, ys := range y.segs {
			product.addShifted(New(uint64(xs)*uint64(ys)), i+j)
		}
	}
	return product
}

// MulAssign sets z = z * y and returns z.
func (z *Nat) MulAssign(y *Nat) *Nat {
	z.segs = z.Mul(y).segs
	return z
}

// MulSegment returns x * s without building an intermediate Nat for s.
func (x *Nat) MulSegment(s uint16) *Nat {
	product := &Nat{segs: make([]uint16, 0, len(x.segs)+1)}
	factor := uint32(s)

	var carry uint32
	for _, xs := range x.segs {
		carry += factor * uint32(xs)
		product.segs = append(product.segs, uint16(carry))
		carry >>= 16
	}
	product.segs = append(product.segs, uint16(carry))
	product.norm()
	return product
}

// MulMod returns (x * b) mod n. The running multiple of b is reduced modulo
// n after every segment of x, so intermediate values stay within a segment
// of n. It panics with ErrDivisionByZero if n == 0.
func (x *Nat) MulMod(b, n *Nat) *Nat {
	c := Zero()
	d := b.Clone()
	for _, xs := range x.segs {
		c.AddAssign(d.MulSegment(xs))
		d.LshAssign(16)
		d.ModAssign(n)
	}
	return c.ModAssign(n)
}
