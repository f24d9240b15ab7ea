//go:build unit
// +build unit

package bignum

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestSerialization(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		for _, x := range []*Nat{Zero(), New(1), randomNat(t, 1000)} {
			var buf bytes.Buffer
			n, err := x.WriteTo(&buf)
			require.NoError(t, err)
			assert.Equal(t, int64(2+2*x.NumSegments()), n)

			y := New(99)
			m, err := y.ReadFrom(&buf)
			require.NoError(t, err)
			assert.Equal(t, n, m)
			assert.True(t, x.Equal(y))
		}
	})

	t.Run("LittleEndianLayout", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := New(0x0102_0304).WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x02, 0x00, 0x04, 0x03, 0x02, 0x01}, buf.Bytes())
	})

	t.Run("LeadingZerosDiscarded", func(t *testing.T) {
		x := Zero()
		_, err := x.ReadFrom(bytes.NewReader([]byte{0x03, 0x00, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00}))
		require.NoError(t, err)
		assert.Equal(t, []uint16{7}, x.Segments())
	})

	t.Run("ShortRead", func(t *testing.T) {
		_, err := Zero().ReadFrom(bytes.NewReader([]byte{0x02, 0x00, 0x01}))
		assert.ErrorIs(t, err, ErrShortRead)

		_, err = Zero().ReadFrom(bytes.NewReader(nil))
		assert.ErrorIs(t, err, ErrShortRead)
	})

	t.Run("ShortWrite", func(t *testing.T) {
		_, err := New(5).WriteTo(failingWriter{})
		assert.ErrorIs(t, err, ErrShortWrite)
	})
}

func TestObfuscate(t *testing.T) {
	t.Run("Involution", func(t *testing.T) {
		x := randomNat(t, 700)
		y := x.Clone().Obfuscate("correct horse").Obfuscate("correct horse")
		assert.True(t, x.Equal(y))
	})

	t.Run("MaskLayout", func(t *testing.T) {
		x := &Nat{segs: []uint16{0, 0, 0}}
		x.Obfuscate("abc")
		assert.Equal(t, []uint16{0x6261, 0x6163, 0x6362}, x.segs)
	})

	t.Run("EmptyPassword", func(t *testing.T) {
		x := New(0xABCDEF)
		assert.True(t, x.Clone().Obfuscate("").Equal(x))
	})

	t.Run("TopSegmentCleared", func(t *testing.T) {
		x := FromSegments([]uint16{0x1111, 0x6261})

		var buf bytes.Buffer
		_, err := x.Clone().Obfuscate("ab").WriteTo(&buf)
		require.NoError(t, err)

		y := Zero()
		_, err = y.ReadObfuscated(&buf, "ab")
		require.NoError(t, err)
		assert.True(t, x.Equal(y))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		x := randomNat(t, 256)
		var buf bytes.Buffer
		_, err := x.Clone().Obfuscate("secret").WriteTo(&buf)
		require.NoError(t, err)

		y := Zero()
		_, err = y.ReadObfuscated(&buf, "Secret")
		require.NoError(t, err)
		assert.False(t, x.Equal(y))
	})
}

func TestBlockCodec(t *testing.T) {
	t.Run("PlainChunks", func(t *testing.T) {
		r := bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04, 0x05})
		buf := make([]byte, 4)

		x := Zero()
		n, err := x.ReadPlainChunk(r, buf)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, []uint16{0x0201, 0x0403}, x.Segments())

		n, err = x.ReadPlainChunk(r, buf)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, []uint16{0x0005}, x.Segments())

		_, err = x.ReadPlainChunk(r, buf)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("CipherBlockRoundTrip", func(t *testing.T) {
		x := randomNat(t, 100)
		buf := make([]byte, BlockHeaderSize+2*8)

		var stream bytes.Buffer
		require.NoError(t, x.WriteCipherBlock(&stream, buf, 11))
		assert.Equal(t, BlockHeaderSize+2*x.NumSegments(), stream.Len())

		y := Zero()
		plainLen, err := y.ReadCipherBlock(&stream, make([]byte, 16))
		require.NoError(t, err)
		assert.Equal(t, 11, plainLen)
		assert.True(t, x.Equal(y))

		_, err = y.ReadCipherBlock(&stream, buf)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("TruncatedHeader", func(t *testing.T) {
		_, err := Zero().ReadCipherBlock(bytes.NewReader([]byte{0x01, 0x00}), make([]byte, 16))
		assert.ErrorIs(t, err, ErrShortRead)
	})

	t.Run("TruncatedBody", func(t *testing.T) {
		data := []byte{0x02, 0x00, 0x02, 0x00, 0xAA, 0xBB}
		_, err := Zero().ReadCipherBlock(bytes.NewReader(data), make([]byte, 16))
		assert.ErrorIs(t, err, ErrShortRead)
	})

	t.Run("OversizedBlock", func(t *testing.T) {
		data := []byte{0x02, 0x00, 0xFF, 0x00}
		_, err := Zero().ReadCipherBlock(bytes.NewReader(data), make([]byte, 16))
		assert.ErrorIs(t, err, ErrMalformedBlock)
	})

	t.Run("PlainBytesPadding", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, New(0x0201).WritePlainBytes(&out, make([]byte, 6), 5))
		assert.Equal(t, []byte{0x01, 0x02, 0x00, 0x00, 0x00}, out.Bytes())

		err := New(1).Lsh(64).WritePlainBytes(&out, make([]byte, 6), 6)
		assert.ErrorIs(t, err, ErrMalformedBlock)
	})
}
