package bignum

// DivMod returns the quotient and remainder of x / y using binary long
// division. The divisor is aligned with the dividend's top bit and walked
// down one bit at a time; each step that fits is subtracted and sets the
// matching quotient bit. It panics with ErrDivisionByZero if y == 0.
func DivMod(x, y *Nat) (q, r *Nat) {
	if y.IsZero() {
		panic(newError("DivMod", ErrDivisionByZero))
	}

	r = x.Clone()
	q = Zero()
	divisor := y.Clone()

	shift := r.BitLen() - divisor.BitLen()
	if shift > 0 {
		divisor.LshAssign(shift)
	}

	for i := shift; i >= 0; i-- {
		if r.Cmp(divisor) >= 0 {
			r.SubAssign(divisor)
			q.SetBit(i)
		}
		divisor.ShiftRightBy1()
	}
	return q, r
}

// Div returns x / y rounded down.
func (x *Nat) Div(y *Nat) *Nat {
	q, _ := DivMod(x, y)
	return q
}

// Mod returns x mod y.
func (x *Nat) Mod(y *Nat) *Nat {
	_, r := DivMod(x, y)
	return r
}

// DivAssign sets z = z / y and returns z.
func (z *Nat) DivAssign(y *Nat) *Nat {
	z.segs = z.Div(y).segs
	return z
}

// ModAssign sets z = z mod y and returns z.
func (z *Nat) ModAssign(y *Nat) *Nat {
	z.segs = z.Mod(y).segs
	return z
}

// divSegment divides x by a single non-zero segment.
func (x *Nat) divSegment(d uint16) (*Nat, uint16) {
	q := &Nat{segs: make([]uint16, len(x.segs))}
	var rem uint32
	for i := len(x.segs) - 1; i >= 0; i-- {
		cur := rem<<16 | uint32(x.segs[i])
		q.segs[i] = uint16(cur / uint32(d))
		rem = cur % uint32(d)
	}
	q.norm()
	return q, uint16(rem)
}
