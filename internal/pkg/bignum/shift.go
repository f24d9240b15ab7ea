package bignum

// LshAssign sets z = z << n and returns z. A negative n shifts right.
func (z *Nat) LshAssign(n int) *Nat {
	switch {
	case n == 0 || z.IsZero():
		return z
	case n < 0:
		return z.RshAssign(-n)
	}

	major, minor := n/16, uint(n%16)
	result := make([]uint16, major, major+len(z.segs)+1)

	if minor == 0 {
		result = append(result, z.segs...)
	} else {
		var prev uint16
		for _, next := range z.segs {
			result = append(result, prev>>(16-minor)|next<<minor)
			prev = next
		}
		result = append(result, prev>>(16-minor))
	}

	z.segs = result
	z.norm()
	return z
}

// RshAssign sets z = z >> n and returns z. A negative n shifts left.
func (z *Nat) RshAssign(n int) *Nat {
	switch {
	case n == 0:
		return z
	case n < 0:
		return z.LshAssign(-n)
	}

	major, minor := n/16, uint(n%16)
	if major >= len(z.segs) {
		z.segs = z.segs[:0]
		return z
	}

	if minor == 0 {
		copy(z.segs, z.segs[major:])
		z.segs = z.segs[:len(z.segs)-major]
	} else {
		last := len(z.segs) - major - 1
		for i := 0; i < last; i++ {
			z.segs[i] = z.segs[i+major]>>minor | z.segs[i+major+1]<<(16-minor)
		}
		z.segs[last] = z.segs[last+major] >> minor
		z.segs = z.segs[:last+1]
	}

	z.norm()
	return z
}

// Lsh returns x << n.
func (x *Nat) Lsh(n int) *Nat {
	return x.Clone().LshAssign(n)
}

// Rsh returns x >> n.
func (x *Nat) Rsh(n int) *Nat {
	return x.Clone().RshAssign(n)
}

// ShiftRightBy1 sets z = z >> 1 and returns z. It is the inner step of DivMod.
func (z *Nat) ShiftRightBy1() *Nat {
	if len(z.segs) == 0 {
		return z
	}
	last := len(z.segs) - 1
	for i := 0; i < last; i++ {
		z.segs[i] = z.segs[i]>>1 | z.segs[i+1]<<15
	}
	z.segs[last] >>= 1
	z.norm()
	return z
}
