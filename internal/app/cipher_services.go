package app

import (
	"context"
	"fmt"
	"io"

	"github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/domain/keys"
	"github.com/helix-rsa/helix/internal/pkg/logger"
)

// fileCipherService implements the FileCipherService interface
type fileCipherService struct {
	rsaProcessor crypto.RSAProcessor
	keyStore     crypto.KeyStore
	keyMetaRepo  keys.KeyMetaRepository
	logger       logger.Logger
}

// NewFileCipherService creates a new fileCipherService instance. keyMetaRepo
// may be nil when only the path based methods are used.
func NewFileCipherService(
	rsaProcessor crypto.RSAProcessor,
	keyStore crypto.KeyStore,
	keyMetaRepo keys.KeyMetaRepository,
	logger logger.Logger,
) (keys.FileCipherService, error) {
	return &fileCipherService{
		rsaProcessor: rsaProcessor,
		keyStore:     keyStore,
		keyMetaRepo:  keyMetaRepo,
		logger:       logger,
	}, nil
}

// EncryptFile encrypts srcPath into dstPath with the key file at keyPath
func (s *fileCipherService) EncryptFile(ctx context.Context, keyPath, password, srcPath, dstPath string) error {
	key, err := s.keyStore.ReadKeyFromFile(keyPath, password)
	if err != nil {
		return err
	}
	if err := s.rsaProcessor.EncryptFile(ctx, srcPath, dstPath, key, s.progress("encrypt", srcPath)); err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", srcPath, err)
	}
	return nil
}

// DecryptFile decrypts srcPath into dstPath with the key file at keyPath
func (s *fileCipherService) DecryptFile(ctx context.Context, keyPath, password, srcPath, dstPath string) (crypto.Version, error) {
	key, err := s.keyStore.ReadKeyFromFile(keyPath, password)
	if err != nil {
		return crypto.Version{}, err
	}
	version, err := s.rsaProcessor.DecryptFile(ctx, srcPath, dstPath, key, s.progress("decrypt", srcPath))
	if err != nil {
		return version, fmt.Errorf("failed to decrypt %s: %w", srcPath, err)
	}
	return version, nil
}

// EncryptByID encrypts r into w with the key registered under keyID
func (s *fileCipherService) EncryptByID(ctx context.Context, keyID, password string, r io.Reader, w io.Writer) error {
	key, err := s.loadKey(ctx, keyID, password)
	if err != nil {
		return err
	}
	return s.rsaProcessor.Encrypt(ctx, r, w, key, s.progress("encrypt", keyID))
}

// DecryptByID decrypts r into w with the key registered under keyID
func (s *fileCipherService) DecryptByID(ctx context.Context, keyID, password string, r io.Reader, w io.Writer) (crypto.Version, error) {
	key, err := s.loadKey(ctx, keyID, password)
	if err != nil {
		return crypto.Version{}, err
	}
	return s.rsaProcessor.Decrypt(ctx, r, w, key, s.progress("decrypt", keyID))
}

func (s *fileCipherService) loadKey(ctx context.Context, keyID, password string) (*crypto.Key, error) {
	if s.keyMetaRepo == nil {
		return nil, fmt.Errorf("key lookup by id is not configured")
	}
	meta, err := s.keyMetaRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, err
	}
	return s.keyStore.ReadKeyFromFile(meta.FilePath, password)
}

// progress logs every 256th block at debug level
func (s *fileCipherService) progress(op, subject string) crypto.ProgressFunc {
	return func(blocks int, plaintextBytes int64) {
		if blocks%256 == 0 {
			s.logger.Debug(op, " ", subject, ": ", blocks, " blocks, ", plaintextBytes, " bytes")
		}
	}
}
