package keystore

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cryptoDomain "github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/pkg/bignum"
	"github.com/helix-rsa/helix/internal/pkg/logger"
)

const flagPrivate uint32 = 1 << 0

// File permissions for key records
const (
	PublicKeyFileMode  os.FileMode = 0644
	PrivateKeyFileMode os.FileMode = 0600
)

// keyFileStore struct that implements the KeyStore interface
type keyFileStore struct {
	logger logger.Logger
}

// NewKeyFileStore creates a KeyStore backed by the local file system
func NewKeyFileStore(logger logger.Logger) (cryptoDomain.KeyStore, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	return &keyFileStore{logger: logger.With("component", "key_store")}, nil
}

// WriteKey encodes key into w, scrambling private key material with password
func (s *keyFileStore) WriteKey(w io.Writer, key *cryptoDomain.Key, password string) error {
	if key.Exponent == nil || key.Modulus == nil {
		return fmt.Errorf("%w: missing exponent or modulus", cryptoDomain.ErrInvalidKey)
	}
	if key.IsPrivate && password == "" {
		return cryptoDomain.ErrPasswordRequired
	}

	bw := bufio.NewWriter(w)
	if _, err := key.Version.WriteTo(bw); err != nil {
		return fmt.Errorf("failed to write key version: %w", err)
	}

	var flags [4]byte
	if key.IsPrivate {
		binary.LittleEndian.PutUint32(flags[:], flagPrivate)
	}
	if _, err := bw.Write(flags[:]); err != nil {
		return fmt.Errorf("failed to write key flags: %w: %w", bignum.ErrShortWrite, err)
	}

	exponent, modulus := key.Exponent, key.Modulus
	if key.IsPrivate {
		exponent = exponent.Clone().Obfuscate(password)
		modulus = modulus.Clone().Obfuscate(password)
	}
	if _, err := exponent.WriteTo(bw); err != nil {
		return fmt.Errorf("failed to write exponent: %w", err)
	}
	if _, err := modulus.WriteTo(bw); err != nil {
		return fmt.Errorf("failed to write modulus: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush key record: %w: %w", bignum.ErrShortWrite, err)
	}
	return nil
}

// ReadKey decodes a key record from r. A wrong password is not detected
// here; it yields a key that fails validation or decrypts to garbage.
func (s *keyFileStore) ReadKey(r io.Reader, password string) (*cryptoDomain.Key, error) {
	br := bufio.NewReader(r)

	key := &cryptoDomain.Key{Exponent: bignum.Zero(), Modulus: bignum.Zero()}
	if _, err := key.Version.ReadFrom(br); err != nil {
		return nil, fmt.Errorf("failed to read key version: %w", err)
	}

	var flags [4]byte
	if _, err := io.ReadFull(br, flags[:]); err != nil {
		return nil, fmt.Errorf("failed to read key flags: %w: %w", bignum.ErrShortRead, err)
	}
	key.IsPrivate = binary.LittleEndian.Uint32(flags[:])&flagPrivate != 0

	if key.IsPrivate && password == "" {
		return nil, cryptoDomain.ErrPasswordRequired
	}

	for _, part := range []struct {
		name  string
		value *bignum.Nat
	}{
		{"exponent", key.Exponent},
		{"modulus", key.Modulus},
	} {
		var err error
		if key.IsPrivate {
			_, err = part.value.ReadObfuscated(br, password)
		} else {
			_, err = part.value.ReadFrom(br)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", part.name, err)
		}
	}

	return key, nil
}

// SaveKeyToFile writes key to filename, readable only by the owner for private keys
func (s *keyFileStore) SaveKeyToFile(key *cryptoDomain.Key, filename, password string) (err error) {
	mode := PublicKeyFileMode
	if key.IsPrivate {
		mode = PrivateKeyFileMode
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close key file: %w", cerr)
		}
	}()

	if err := s.WriteKey(file, key, password); err != nil {
		return err
	}

	s.logger.Info("Saved ", key.Type(), " key to ", filename)
	return nil
}

// ReadKeyFromFile reads the key record stored at filename
func (s *keyFileStore) ReadKeyFromFile(filename, password string) (*cryptoDomain.Key, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open key file: %w", err)
	}
	defer file.Close()

	key, err := s.ReadKey(file, password)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file %s: %w", filename, err)
	}

	s.logger.Debug("Read ", key.Type(), " key version ", key.Version, " from ", filename)
	return key, nil
}

// ChangePassword re-scrambles a private key file with a new password. The
// new record is written next to the old one and renamed over it.
func (s *keyFileStore) ChangePassword(filename, oldPassword, newPassword string) error {
	if newPassword == "" {
		return cryptoDomain.ErrPasswordRequired
	}

	key, err := s.ReadKeyFromFile(filename, oldPassword)
	if err != nil {
		return err
	}
	if !key.IsPrivate {
		return fmt.Errorf("%w: only private keys carry a password", cryptoDomain.ErrKeyTypeMismatch)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary key file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := s.WriteKey(tmp, key, newPassword); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(PrivateKeyFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set key file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary key file: %w", err)
	}
	if err := os.Rename(tmpName, filename); err != nil {
		return fmt.Errorf("failed to replace key file: %w", err)
	}

	s.logger.Info("Changed password of ", filename)
	return nil
}
