package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/domain/keys"
	"github.com/helix-rsa/helix/internal/pkg/logger"

	"github.com/google/uuid"
)

// keyGenerationService implements the KeyGenerationService interface
type keyGenerationService struct {
	rsaProcessor crypto.RSAProcessor
	keyStore     crypto.KeyStore
	keyMetaRepo  keys.KeyMetaRepository
	keyDir       string
	logger       logger.Logger
}

// NewKeyGenerationService creates a new keyGenerationService writing key files into keyDir
func NewKeyGenerationService(
	rsaProcessor crypto.RSAProcessor,
	keyStore crypto.KeyStore,
	keyMetaRepo keys.KeyMetaRepository,
	keyDir string,
	logger logger.Logger,
) (keys.KeyGenerationService, error) {
	if keyDir == "" {
		return nil, fmt.Errorf("key directory cannot be empty")
	}
	return &keyGenerationService{
		rsaProcessor: rsaProcessor,
		keyStore:     keyStore,
		keyMetaRepo:  keyMetaRepo,
		keyDir:       keyDir,
		logger:       logger,
	}, nil
}

// Generate creates a key pair, saves <pair id>.pub and <pair id>.prv and
// records metadata for both. Files are removed again when any step fails.
func (s *keyGenerationService) Generate(ctx context.Context, req *keys.GenerateRequest) (metas []*keys.KeyMeta, err error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	pair, err := s.rsaProcessor.GenerateKeys(ctx, req.BitLength)
	if err != nil {
		return nil, err
	}
	if !req.SkipValidation {
		if err := s.rsaProcessor.ValidateKeys(pair); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(s.keyDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create key directory: %w", err)
	}

	keyPairID := uuid.NewString()
	created := time.Now().UTC()

	var written []string
	defer func() {
		if err == nil {
			return
		}
		for _, path := range written {
			_ = os.Remove(path)
		}
	}()

	for _, half := range []struct {
		key       *crypto.Key
		extension string
		password  string
	}{
		{pair.Public, crypto.PublicKeyExtension, ""},
		{pair.Private, crypto.PrivateKeyExtension, req.Password},
	} {
		path := filepath.Join(s.keyDir, keyPairID+half.extension)
		if err := s.keyStore.SaveKeyToFile(half.key, path, half.password); err != nil {
			return nil, err
		}
		written = append(written, path)

		meta := &keys.KeyMeta{
			ID:              uuid.NewString(),
			KeyPairID:       keyPairID,
			Type:            half.key.Type(),
			BitLength:       pair.BitLength,
			Version:         half.key.Version.String(),
			FilePath:        path,
			DateTimeCreated: created,
		}
		if err := s.keyMetaRepo.Create(ctx, meta); err != nil {
			return nil, err
		}
		metas = append(metas, meta)
	}

	s.logger.Info("Generated key pair ", keyPairID)
	return metas, nil
}

// keyMetadataService implements the KeyMetadataService interface
type keyMetadataService struct {
	keyMetaRepo keys.KeyMetaRepository
	logger      logger.Logger
}

// NewKeyMetadataService creates a new keyMetadataService instance
func NewKeyMetadataService(keyMetaRepo keys.KeyMetaRepository, logger logger.Logger) (keys.KeyMetadataService, error) {
	return &keyMetadataService{
		keyMetaRepo: keyMetaRepo,
		logger:      logger,
	}, nil
}

// List retrieves key metadata matching the query
func (s *keyMetadataService) List(ctx context.Context, query *keys.KeyMetaQuery) ([]*keys.KeyMeta, error) {
	return s.keyMetaRepo.List(ctx, query)
}

// GetByID retrieves the metadata of a key by its ID
func (s *keyMetadataService) GetByID(ctx context.Context, keyID string) (*keys.KeyMeta, error) {
	return s.keyMetaRepo.GetByID(ctx, keyID)
}

// DeleteByID removes the key file and then its metadata
func (s *keyMetadataService) DeleteByID(ctx context.Context, keyID string) error {
	meta, err := s.keyMetaRepo.GetByID(ctx, keyID)
	if err != nil {
		return err
	}

	if err := os.Remove(meta.FilePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove key file: %w", err)
	}

	if err := s.keyMetaRepo.DeleteByID(ctx, keyID); err != nil {
		return err
	}

	s.logger.Info("Deleted ", meta.Type, " key ", keyID)
	return nil
}

// keyDownloadService implements the KeyDownloadService interface
type keyDownloadService struct {
	keyMetaRepo keys.KeyMetaRepository
	logger      logger.Logger
}

// NewKeyDownloadService creates a new keyDownloadService instance
func NewKeyDownloadService(keyMetaRepo keys.KeyMetaRepository, logger logger.Logger) (keys.KeyDownloadService, error) {
	return &keyDownloadService{
		keyMetaRepo: keyMetaRepo,
		logger:      logger,
	}, nil
}

// DownloadByID returns the key record of a public key. Private keys are never served.
func (s *keyDownloadService) DownloadByID(ctx context.Context, keyID string) ([]byte, error) {
	meta, err := s.keyMetaRepo.GetByID(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if meta.Type != crypto.KeyTypePublic {
		return nil, fmt.Errorf("%w: key %s is %s", crypto.ErrKeyTypeMismatch, keyID, meta.Type)
	}

	data, err := os.ReadFile(meta.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	s.logger.Info("Downloaded public key ", keyID)
	return data, nil
}
