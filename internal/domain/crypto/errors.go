package crypto

import "errors"

var (
	// ErrModulusTooSmall is returned when a key's modulus has fewer than MinModulusSegments segments.
	ErrModulusTooSmall = errors.New("modulus too small for block encryption")
	// ErrInvalidKey is returned for keys with a zero exponent or a missing component.
	ErrInvalidKey = errors.New("invalid key")
	// ErrKeyValidation is returned when a generated key pair fails the encrypt/decrypt round trip.
	ErrKeyValidation = errors.New("key pair failed round-trip validation")
	// ErrPasswordRequired is returned when a private key is stored or loaded without a password.
	ErrPasswordRequired = errors.New("password required for private key")
	// ErrKeyTypeMismatch is returned when a public key is used where a private key is needed or vice versa.
	ErrKeyTypeMismatch = errors.New("unexpected key type")
)
