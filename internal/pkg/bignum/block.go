package bignum

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// BlockHeaderSize is the size of the header preceding every cipher block:
// a u16 plaintext byte count and a u16 segment count.
const BlockHeaderSize = 4

// ReadPlainChunk reads the next chunk of plaintext into buf and sets z to
// its little-endian value. A final partial chunk is zero-padded. It returns
// the number of plaintext bytes consumed, or io.EOF when r has no more data.
// The length of buf must be even and at most 65535.
func (z *Nat) ReadPlainChunk(r io.Reader, buf []byte) (int, error) {
	if len(buf) > math.MaxUint16 {
		return 0, newError("ReadPlainChunk", ErrMalformedBlock)
	}
	clear(buf)

	n, err := io.ReadFull(r, buf)
	switch {
	case errors.Is(err, io.EOF):
		return 0, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
	case err != nil:
		return n, newError("ReadPlainChunk", fmt.Errorf("%w: %w", ErrShortRead, err))
	}

	z.setBytes(buf)
	return n, nil
}

// ReadCipherBlock reads one framed cipher block into z using buf as scratch
// space and returns the plaintext byte count stored in its header. A clean
// end of stream before the header is reported as io.EOF; a truncated header
// or body as ErrShortRead. A block with more segments than buf can hold is
// ErrMalformedBlock.
func (z *Nat) ReadCipherBlock(r io.Reader, buf []byte) (int, error) {
	var hdr [BlockHeaderSize]byte
	n, err := io.ReadFull(r, hdr[:])
	switch {
	case n == 0 && errors.Is(err, io.EOF):
		return 0, io.EOF
	case err != nil:
		return 0, newError("ReadCipherBlock", fmt.Errorf("%w: %w", ErrShortRead, err))
	}

	plainLen := int(binary.LittleEndian.Uint16(hdr[0:]))
	size := 2 * int(binary.LittleEndian.Uint16(hdr[2:]))
	if size > len(buf) {
		return 0, newError("ReadCipherBlock", ErrMalformedBlock)
	}

	body := buf[:size]
	if _, err := io.ReadFull(r, body); err != nil {
		return 0, newError("ReadCipherBlock", fmt.Errorf("%w: %w", ErrShortRead, err))
	}

	z.setBytes(body)
	return plainLen, nil
}

// WriteCipherBlock frames x behind a header carrying plainLen and writes it
// to w, using buf as scratch space.
func (x *Nat) WriteCipherBlock(w io.Writer, buf []byte, plainLen int) error {
	size := BlockHeaderSize + 2*len(x.segs)
	if size > len(buf) || plainLen < 0 || plainLen > math.MaxUint16 {
		return newError("WriteCipherBlock", ErrMalformedBlock)
	}

	out := buf[:size]
	binary.LittleEndian.PutUint16(out[0:], uint16(plainLen))
	binary.LittleEndian.PutUint16(out[2:], uint16(len(x.segs)))
	for i, s := range x.segs {
		binary.LittleEndian.PutUint16(out[BlockHeaderSize+2*i:], s)
	}
	return writeAll(w, out, "WriteCipherBlock")
}

// WritePlainBytes writes the first n little-endian bytes of x to w, padding
// with zeros when x is shorter, using buf as scratch space.
func (x *Nat) WritePlainBytes(w io.Writer, buf []byte, n int) error {
	if n < 0 || n > len(buf) || 2*len(x.segs) > len(buf) {
		return newError("WritePlainBytes", ErrMalformedBlock)
	}

	clear(buf)
	for i, s := range x.segs {
		binary.LittleEndian.PutUint16(buf[2*i:], s)
	}
	return writeAll(w, buf[:n], "WritePlainBytes")
}

func writeAll(w io.Writer, p []byte, op string) error {
	n, err := w.Write(p)
	if err != nil {
		return newError(op, fmt.Errorf("%w: %w", ErrShortWrite, err))
	}
	if n != len(p) {
		return newError(op, ErrShortWrite)
	}
	return nil
}

// setBytes sets z from little-endian bytes. An odd trailing byte is the low
// half of the last segment.
func (z *Nat) setBytes(b []byte) {
	segs := make([]uint16, (len(b)+1)/2)
	for i := range segs {
		lo := uint16(b[2*i])
		var hi uint16
		if 2*i+1 < len(b) {
			hi = uint16(b[2*i+1])
		}
		segs[i] = hi<<8 | lo
	}
	z.segs = segs
	z.norm()
}
