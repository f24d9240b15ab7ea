package bignum

import (
	"encoding/binary"
	"fmt"
	"io"
)

// SetRandom sets z to a random value with exactly bitLength significant bits:
// every segment is drawn from rnd, then the bits above bitLength are cleared
// and the top bit is forced on. A non-positive bitLength yields 0.
func (z *Nat) SetRandom(rnd io.Reader, bitLength int) error {
	if bitLength <= 0 {
		z.segs = z.segs[:0]
		return nil
	}

	count := (bitLength + 15) / 16
	buf := make([]byte, 2*count)
	if _, err := io.ReadFull(rnd, buf); err != nil {
		return fmt.Errorf("failed to read random segments: %w", err)
	}

	segs := make([]uint16, count)
	for i := range segs {
		segs[i] = binary.LittleEndian.Uint16(buf[2*i:])
	}

	top := uint16(1) << uint((bitLength-1)%16)
	segs[count-1] &= top - 1
	segs[count-1] |= top

	z.segs = segs
	return nil
}

// Random returns a new random Nat with exactly bitLength significant bits.
func Random(rnd io.Reader, bitLength int) (*Nat, error) {
	z := Zero()
	if err := z.SetRandom(rnd, bitLength); err != nil {
		return nil, err
	}
	return z, nil
}
