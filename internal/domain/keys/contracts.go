package keys

import (
	"context"
	"io"

	"github.com/helix-rsa/helix/internal/domain/crypto"
)

// GenerateRequest describes a key pair to generate
type GenerateRequest struct {
	BitLength int    `validate:"rsa_bitlength"`
	Password  string `validate:"required"`
	// SkipValidation disables the encrypt/decrypt round trip run on the new pair
	SkipValidation bool
}

// Validate for validating GenerateRequest struct
func (r *GenerateRequest) Validate() error {
	return validateStruct(r)
}

// KeyGenerationService generates key pairs, stores both halves as key files and records their metadata.
type KeyGenerationService interface {
	// Generate returns the metadata of the public and the private key, in that order.
	Generate(ctx context.Context, req *GenerateRequest) ([]*KeyMeta, error)
}

// KeyMetadataService defines methods for managing key metadata and deleting keys.
type KeyMetadataService interface {
	// List retrieves key metadata matching the query.
	List(ctx context.Context, query *KeyMetaQuery) ([]*KeyMeta, error)

	// GetByID retrieves the metadata of a key by its unique ID.
	GetByID(ctx context.Context, keyID string) (*KeyMeta, error)

	// DeleteByID deletes a key file and its metadata by ID.
	DeleteByID(ctx context.Context, keyID string) error
}

// KeyDownloadService defines methods for downloading key files.
type KeyDownloadService interface {
	// DownloadByID returns the raw key record of a public key.
	DownloadByID(ctx context.Context, keyID string) ([]byte, error)
}

// FileCipherService encrypts and decrypts data with stored keys.
type FileCipherService interface {
	// EncryptFile encrypts srcPath into dstPath with the key file at keyPath.
	EncryptFile(ctx context.Context, keyPath, password, srcPath, dstPath string) error

	// DecryptFile decrypts srcPath into dstPath with the key file at keyPath.
	DecryptFile(ctx context.Context, keyPath, password, srcPath, dstPath string) (crypto.Version, error)

	// EncryptByID encrypts r into w with the key registered under keyID.
	EncryptByID(ctx context.Context, keyID, password string, r io.Reader, w io.Writer) error

	// DecryptByID decrypts r into w with the key registered under keyID.
	DecryptByID(ctx context.Context, keyID, password string, r io.Reader, w io.Writer) (crypto.Version, error)
}

// KeyMetaRepository defines the interface for KeyMeta persistence
type KeyMetaRepository interface {
	Create(ctx context.Context, key *KeyMeta) error
	List(ctx context.Context, query *KeyMetaQuery) ([]*KeyMeta, error)
	GetByID(ctx context.Context, keyID string) (*KeyMeta, error)
	DeleteByID(ctx context.Context, keyID string) error
}
