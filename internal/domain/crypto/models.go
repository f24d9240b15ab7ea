package crypto

import (
	"fmt"

	"github.com/helix-rsa/helix/internal/pkg/bignum"
)

// Key is one half of an RSA key pair: the exponent (e or d) and the shared
// modulus n.
type Key struct {
	Version   Version
	IsPrivate bool
	Exponent  *bignum.Nat
	Modulus   *bignum.Nat
}

// Type returns KeyTypePrivate or KeyTypePublic.
func (k *Key) Type() string {
	if k.IsPrivate {
		return KeyTypePrivate
	}
	return KeyTypePublic
}

// ChunkSize is the number of plaintext bytes carried by one cipher block:
// one segment less than the modulus, so every chunk is smaller than n.
func (k *Key) ChunkSize() int {
	return min((k.Modulus.NumSegments()-1)*2, MaxChunkSize)
}

// Validate checks that the key can be used by the block cipher.
func (k *Key) Validate() error {
	if k.Exponent == nil || k.Modulus == nil {
		return fmt.Errorf("%w: missing exponent or modulus", ErrInvalidKey)
	}
	if k.Exponent.IsZero() {
		return fmt.Errorf("%w: zero exponent", ErrInvalidKey)
	}
	if k.Modulus.NumSegments() < MinModulusSegments {
		return fmt.Errorf("%w: %d segment(s)", ErrModulusTooSmall, k.Modulus.NumSegments())
	}
	return nil
}

// KeyPair holds the public key (e, n) and private key (d, n) produced for
// a requested bit length.
type KeyPair struct {
	Public    *Key
	Private   *Key
	BitLength int
}

// NewKeyPair builds a key pair from the three numbers produced by key
// generation, stamped with version.
func NewKeyPair(d, e, n *bignum.Nat, bitLength int, version Version) *KeyPair {
	return &KeyPair{
		Public:    &Key{Version: version, IsPrivate: false, Exponent: e, Modulus: n},
		Private:   &Key{Version: version, IsPrivate: true, Exponent: d, Modulus: n.Clone()},
		BitLength: bitLength,
	}
}
