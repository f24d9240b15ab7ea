package commands

import (
	"fmt"
	"sync"

	"github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/domain/keys"
	"github.com/helix-rsa/helix/internal/infrastructure/cryptography"
	"github.com/helix-rsa/helix/internal/infrastructure/keystore"
	"github.com/helix-rsa/helix/internal/infrastructure/persistence"
	"github.com/helix-rsa/helix/internal/pkg/config"
	"github.com/helix-rsa/helix/internal/pkg/logger"

	"gorm.io/gorm"
)

// ConfigPathEnv names the environment variable holding the optional config file path
const ConfigPathEnv = "HELIX_CONFIG_PATH"

// PasswordEnv is read when a command needs a password and none was passed as a flag
const PasswordEnv = "HELIX_KEY_PASSWORD"

// Environment holds the configuration and dependencies shared by all commands.
// The database is opened on first use so that file-only commands never touch it.
type Environment struct {
	Config       *config.CLIConfig
	Logger       logger.Logger
	RSAProcessor crypto.RSAProcessor
	KeyStore     crypto.KeyStore

	dbOnce sync.Once
	db     *gorm.DB
	repo   keys.KeyMetaRepository
	dbErr  error
}

// NewEnvironment loads the CLI configuration from configPath (may be empty) and sets up logging and crypto
func NewEnvironment(configPath string) (*Environment, error) {
	cfg, err := config.InitializeCLIConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	loggerInstance, err := setupLogger(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	rsaProcessor, err := cryptography.NewRSAProcessor(loggerInstance, crypto.CurrentVersion, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	keyStore, err := keystore.NewKeyFileStore(loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create key store: %w", err)
	}

	return &Environment{
		Config:       cfg,
		Logger:       loggerInstance,
		RSAProcessor: rsaProcessor,
		KeyStore:     keyStore,
	}, nil
}

// KeyMetaRepository opens and migrates the configured database on first call
func (e *Environment) KeyMetaRepository() (keys.KeyMetaRepository, error) {
	e.dbOnce.Do(func() {
		db, err := persistence.NewDBConnection(e.Config.Database)
		if err != nil {
			e.dbErr = fmt.Errorf("failed to create db connection: %w", err)
			return
		}
		if err := persistence.Migrate(db); err != nil {
			e.dbErr = err
			_ = persistence.CloseDB(db)
			return
		}
		e.db = db
		e.repo, e.dbErr = persistence.NewGormKeyMetaRepository(db, e.Logger)
	})
	return e.repo, e.dbErr
}

// Close releases the database connection if one was opened
func (e *Environment) Close() {
	if e.db != nil {
		if err := persistence.CloseDB(e.db); err != nil {
			e.Logger.Warn("failed to close database: ", err)
		}
	}
}

func setupLogger(settings *config.LoggerSettings) (logger.Logger, error) {
	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}
