package bignum

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteTo writes x as a u16 segment count followed by the segments, all
// little-endian.
func (x *Nat) WriteTo(w io.Writer) (int64, error) {
	if len(x.segs) > math.MaxUint16 {
		return 0, newError("WriteTo", ErrTooManySegments)
	}

	buf := make([]byte, 2+2*len(x.segs))
	binary.LittleEndian.PutUint16(buf, uint16(len(x.segs)))
	for i, s := range x.segs {
		binary.LittleEndian.PutUint16(buf[2+2*i:], s)
	}

	n, err := w.Write(buf)
	if err != nil {
		return int64(n), newError("WriteTo", fmt.Errorf("%w: %w", ErrShortWrite, err))
	}
	if n != len(buf) {
		return int64(n), newError("WriteTo", ErrShortWrite)
	}
	return int64(n), nil
}

// ReadFrom replaces z with one value in the format written by WriteTo.
// Leading zero segments in the stream are discarded.
func (z *Nat) ReadFrom(r io.Reader) (int64, error) {
	segs, n, err := readSegments(r)
	if err != nil {
		return n, err
	}
	z.segs = segs
	z.norm()
	return n, nil
}

func readSegments(r io.Reader) ([]uint16, int64, error) {
	var hdr [2]byte
	n, err := io.ReadFull(r, hdr[:])
	if err != nil {
		return nil, int64(n), newError("ReadFrom", fmt.Errorf("%w: %w", ErrShortRead, err))
	}

	buf := make([]byte, 2*int(binary.LittleEndian.Uint16(hdr[:])))
	m, err := io.ReadFull(r, buf)
	if err != nil {
		return nil, int64(n + m), newError("ReadFrom", fmt.Errorf("%w: %w", ErrShortRead, err))
	}

	segs := make([]uint16, len(buf)/2)
	for i := range segs {
		segs[i] = binary.LittleEndian.Uint16(buf[2*i:])
	}
	return segs, int64(n + m), nil
}
