//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/helix-rsa/helix/internal/domain/keys"
	"github.com/helix-rsa/helix/internal/pkg/config"
	"github.com/helix-rsa/helix/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestBitLength512  = 512
	TestBitLength2048 = 2048

	TestPostgresDSN      = "user=postgres password=postgres host=localhost port=5432 sslmode=disable"
	TestPostgresAdminDSN = TestPostgresDSN + " dbname=postgres"
)

// TestContext holds the test database and repository
type TestContext struct {
	DB          *gorm.DB
	KeyMetaRepo keys.KeyMetaRepository
}

// SetupTestDB opens and migrates a throwaway database, cleaned up with the test
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanup := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{Type: config.SqliteDbType, DSN: ":memory:", Name: "helix"}

	case config.PostgresDbType:
		name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{Type: config.PostgresDbType, DSN: TestPostgresDSN, Name: name}
		cleanup = func() { _ = DropDatabase(TestPostgresAdminDSN, name) }

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanup()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	repo, err := NewGormKeyMetaRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create key metadata repository")

	return &TestContext{DB: db, KeyMetaRepo: repo}
}

// CreateTestKeyMeta creates key metadata with the given type and bit length
func CreateTestKeyMeta(t *testing.T, keyPairID, keyType string, bitLength int) *keys.KeyMeta {
	t.Helper()

	id := uuid.NewString()
	return &keys.KeyMeta{
		ID:              id,
		KeyPairID:       keyPairID,
		Type:            keyType,
		BitLength:       bitLength,
		Version:         "0.1.0",
		FilePath:        "keys/" + id,
		DateTimeCreated: time.Now().UTC(),
	}
}
