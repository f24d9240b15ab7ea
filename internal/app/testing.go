//go:build integration
// +build integration

package app

import (
	"context"
	"path/filepath"
	"testing"

	cryptoDomain "github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/domain/keys"
	"github.com/helix-rsa/helix/internal/infrastructure/cryptography"
	"github.com/helix-rsa/helix/internal/infrastructure/keystore"
	"github.com/helix-rsa/helix/internal/infrastructure/persistence"
	"github.com/helix-rsa/helix/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// TestBitLength keeps key generation fast in service tests
const TestBitLength = 128

// TestServices holds the services under test and their shared dependencies
type TestServices struct {
	KeyDir            string
	KeyStore          cryptoDomain.KeyStore
	KeyMetaRepo       keys.KeyMetaRepository
	GenerationService keys.KeyGenerationService
	MetadataService   keys.KeyMetadataService
	DownloadService   keys.KeyDownloadService
	FileCipherService keys.FileCipherService
}

// SetupTestServices wires all services against a fresh database and key directory
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	tc := persistence.SetupTestDB(t, dbType)
	keyDir := filepath.Join(t.TempDir(), "keys")

	processor, err := cryptography.NewRSAProcessor(logger, cryptoDomain.CurrentVersion, nil)
	require.NoError(t, err, "Error creating RSA processor")

	store, err := keystore.NewKeyFileStore(logger)
	require.NoError(t, err, "Error creating key file store")

	generationService, err := NewKeyGenerationService(processor, store, tc.KeyMetaRepo, keyDir, logger)
	require.NoError(t, err, "Error creating key generation service")

	metadataService, err := NewKeyMetadataService(tc.KeyMetaRepo, logger)
	require.NoError(t, err, "Error creating key metadata service")

	downloadService, err := NewKeyDownloadService(tc.KeyMetaRepo, logger)
	require.NoError(t, err, "Error creating key download service")

	fileCipherService, err := NewFileCipherService(processor, store, tc.KeyMetaRepo, logger)
	require.NoError(t, err, "Error creating file cipher service")

	return &TestServices{
		KeyDir:            keyDir,
		KeyStore:          store,
		KeyMetaRepo:       tc.KeyMetaRepo,
		GenerationService: generationService,
		MetadataService:   metadataService,
		DownloadService:   downloadService,
		FileCipherService: fileCipherService,
	}
}

// GenerateTestKeyPair generates a pair protected by password and returns the public and private metadata
func GenerateTestKeyPair(t *testing.T, services *TestServices, password string) (*keys.KeyMeta, *keys.KeyMeta) {
	t.Helper()

	metas, err := services.GenerationService.Generate(context.Background(), &keys.GenerateRequest{
		BitLength: TestBitLength,
		Password:  password,
	})
	require.NoError(t, err, "Error generating key pair")
	require.Len(t, metas, 2)
	return metas[0], metas[1]
}
