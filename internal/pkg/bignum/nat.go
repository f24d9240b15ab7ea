package bignum

import (
	"math/bits"
)

// Nat is a non-negative integer of arbitrary size. The zero value is ready
// to use and represents 0.
type Nat struct {
	segs []uint16 // little-endian, no trailing zero segment
}

// Zero returns a new Nat with value 0.
func Zero() *Nat {
	return &Nat{}
}

// New returns a new Nat with value v.
func New(v uint64) *Nat {
	z := &Nat{}
	for v != 0 {
		z.segs = append(z.segs, uint16(v))
		v >>= 16
	}
	return z
}

// FromSegments returns a new Nat built from little-endian segments.
// The slice is copied; trailing zero segments are discarded.
func FromSegments(segs []uint16) *Nat {
	z := &Nat{segs: append([]uint16(nil), segs...)}
	z.norm()
	return z
}

// Clone returns an independent copy of x.
func (x *Nat) Clone() *Nat {
	return &Nat{segs: append([]uint16(nil), x.segs...)}
}

// Set copies the value of y into z and returns z.
func (z *Nat) Set(y *Nat) *Nat {
	if z != y {
		z.segs = append(z.segs[:0], y.segs...)
	}
	return z
}

// Segments returns a copy of the little-endian segments of x.
func (x *Nat) Segments() []uint16 {
	return append([]uint16(nil), x.segs...)
}

// NumSegments returns the number of significant segments of x.
func (x *Nat) NumSegments() int {
	return len(x.segs)
}

// IsZero reports whether x == 0.
func (x *Nat) IsZero() bool {
	return len(x.segs) == 0
}

// Uint64 returns the value of x and whether it fits in a uint64.
func (x *Nat) Uint64() (uint64, bool) {
	if len(x.segs) > 4 {
		return 0, false
	}
	var v uint64
	for i := len(x.segs) - 1; i >= 0; i-- {
		v = v<<16 | uint64(x.segs[i])
	}
	return v, true
}

// BitLen returns the number of significant bits of x; BitLen of 0 is 0.
func (x *Nat) BitLen() int {
	if len(x.segs) == 0 {
		return 0
	}
	top := x.segs[len(x.segs)-1]
	return 16*len(x.segs) - bits.LeadingZeros16(top)
}

// Bit reports whether bit i of x is set. Negative indices and indices past
// the most significant segment report false.
func (x *Nat) Bit(i int) bool {
	if i < 0 || i/16 >= len(x.segs) {
		return false
	}
	return x.segs[i/16]&(1<<uint(i%16)) != 0
}

// SetBit sets bit i of z, growing z as needed, and returns z.
func (z *Nat) SetBit(i int) *Nat {
	if i < 0 {
		panic(newError("SetBit", ErrNegativeBit))
	}
	seg := i / 16
	for len(z.segs) <= seg {
		z.segs = append(z.segs, 0)
	}
	z.segs[seg] |= 1 << uint(i%16)
	return z
}

// Cmp compares x and y and returns -1, 0 or +1.
func (x *Nat) Cmp(y *Nat) int {
	switch {
	case len(x.segs) < len(y.segs):
		return -1
	case len(x.segs) > len(y.segs):
		return 1
	}
	for i := len(x.segs) - 1; i >= 0; i-- {
		switch {
		case x.segs[i] < y.segs[i]:
			return -1
		case x.segs[i] > y.segs[i]:
			return 1
		}
	}
	return 0
}

// Equal reports whether x == y.
func (x *Nat) Equal(y *Nat) bool {
	if len(x.segs) != len(y.segs) {
		return false
	}
	for i := range x.segs {
		if x.segs[i] != y.segs[i] {
			return false
		}
	}
	return true
}

// Less reports whether x < y.
func (x *Nat) Less(y *Nat) bool {
	return x.Cmp(y) < 0
}

// norm discards trailing zero segments.
func (z *Nat) norm() {
	n := len(z.segs)
	for n > 0 && z.segs[n-1] == 0 {
		n--
	}
	z.segs = z.segs[:n]
}
