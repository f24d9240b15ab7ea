package crypto

import (
	"context"
	"io"
)

// ProgressFunc is called after every processed block with the number of
// blocks and plaintext bytes handled so far.
type ProgressFunc func(blocks int, plaintextBytes int64)

// RSAProcessor generates RSA key pairs and encrypts or decrypts data with them.
type RSAProcessor interface {
	// GenerateKeys creates a key pair whose primes each have bitLength/2+1 bits.
	GenerateKeys(ctx context.Context, bitLength int) (*KeyPair, error)

	// ValidateKeys encrypts and decrypts a random value with the pair and
	// returns ErrKeyValidation if it does not survive the round trip.
	ValidateKeys(pair *KeyPair) error

	// Encrypt writes the version record followed by one cipher block per
	// plaintext chunk read from r.
	Encrypt(ctx context.Context, r io.Reader, w io.Writer, key *Key, progress ProgressFunc) error

	// Decrypt reverses Encrypt and returns the version read from the stream.
	Decrypt(ctx context.Context, r io.Reader, w io.Writer, key *Key, progress ProgressFunc) (Version, error)

	// EncryptFile encrypts the file at srcPath into dstPath.
	EncryptFile(ctx context.Context, srcPath, dstPath string, key *Key, progress ProgressFunc) error

	// DecryptFile decrypts the file at srcPath into dstPath.
	DecryptFile(ctx context.Context, srcPath, dstPath string, key *Key, progress ProgressFunc) (Version, error)
}

// KeyStore reads and writes key records. Private key material is scrambled
// with the password; this is obfuscation, not encryption.
type KeyStore interface {
	WriteKey(w io.Writer, key *Key, password string) error
	ReadKey(r io.Reader, password string) (*Key, error)
	SaveKeyToFile(key *Key, filename, password string) error
	ReadKeyFromFile(filename, password string) (*Key, error)
	ChangePassword(filename, oldPassword, newPassword string) error
}
