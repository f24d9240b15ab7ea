//go:build unit
// +build unit

package crypto

import (
	"bytes"
	"testing"

	"github.com/helix-rsa/helix/internal/pkg/bignum"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "0.1.0", CurrentVersion.String())
		assert.Equal(t, "4.10.300", Version{4, 10, 300}.String())
	})

	t.Run("Compare", func(t *testing.T) {
		tests := []struct {
			a, b Version
			want int
		}{
			{Version{0, 1, 0}, Version{0, 1, 0}, 0},
			{Version{0, 1, 0}, Version{0, 0, 9}, 1},
			{Version{1, 0, 0}, Version{0, 9, 9}, 1},
			{Version{0, 1, 1}, Version{0, 1, 2}, -1},
			{Version{0, 0, 0}, Version{0, 1, 0}, -1},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b), "%s vs %s", tt.a, tt.b)
		}
	})

	t.Run("Parse", func(t *testing.T) {
		v, err := ParseVersion("2.3.4")
		require.NoError(t, err)
		assert.Equal(t, Version{2, 3, 4}, v)

		_, err = ParseVersion("2.3")
		assert.Error(t, err)
		_, err = ParseVersion("2.3.4-beta")
		assert.Error(t, err)
	})

	t.Run("RoundTrip", func(t *testing.T) {
		var buf bytes.Buffer
		n, err := Version{1, 2, 3}.WriteTo(&buf)
		require.NoError(t, err)
		assert.Equal(t, int64(VersionRecordSize), n)
		assert.Equal(t, []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}, buf.Bytes())

		var v Version
		_, err = v.ReadFrom(&buf)
		require.NoError(t, err)
		assert.Equal(t, Version{1, 2, 3}, v)
	})

	t.Run("ShortRead", func(t *testing.T) {
		var v Version
		_, err := v.ReadFrom(bytes.NewReader([]byte{1, 0, 0}))
		assert.ErrorIs(t, err, bignum.ErrShortRead)
	})
}

func TestKey(t *testing.T) {
	tests := []struct {
		name    string
		key     Key
		wantErr error
	}{
		{"Valid", Key{Exponent: bignum.New(3), Modulus: bignum.New(0x10001)}, nil},
		{"MissingModulus", Key{Exponent: bignum.New(3)}, ErrInvalidKey},
		{"ZeroExponent", Key{Exponent: bignum.Zero(), Modulus: bignum.New(0x10001)}, ErrInvalidKey},
		{"SingleSegmentModulus", Key{Exponent: bignum.New(3), Modulus: bignum.New(0xFFFF)}, ErrModulusTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.key.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	pair := NewKeyPair(bignum.New(7), bignum.New(3), bignum.New(1).Lsh(40), 40, CurrentVersion)
	assert.Equal(t, KeyTypePublic, pair.Public.Type())
	assert.Equal(t, KeyTypePrivate, pair.Private.Type())
	assert.Equal(t, 4, pair.Public.ChunkSize())
	assert.True(t, pair.Public.Modulus.Equal(pair.Private.Modulus))
}
