package bignum

import "io"

// Obfuscate XORs every segment of z with a 16-bit mask taken from password,
// two bytes at a time with the first byte low, wrapping around the password.
// An empty password leaves z unchanged.
//
// The segment count is kept as is so that a second call with the same
// password restores the original value exactly; the intermediate value may
// therefore carry zero high segments and should only be serialized or
// obfuscated again. This is a reversible scrambling, not encryption.
func (z *Nat) Obfuscate(password string) *Nat {
	if len(password) == 0 {
		return z
	}

	pos := 0
	next := func() uint16 {
		b := password[pos]
		pos = (pos + 1) % len(password)
		return uint16(b)
	}
	for i := range z.segs {
		lo := next()
		hi := next()
		z.segs[i] ^= hi<<8 | lo
	}
	return z
}

// ReadObfuscated reads a value written by WriteTo after Obfuscate and
// reverses the obfuscation before normalizing.
func (z *Nat) ReadObfuscated(r io.Reader, password string) (int64, error) {
	segs, n, err := readSegments(r)
	if err != nil {
		return n, err
	}
	z.segs = segs
	z.Obfuscate(password)
	z.norm()
	return n, nil
}
