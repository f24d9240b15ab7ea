// cmd/helix-rest-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/helix-rsa/helix/internal/api/rest/v1"
	"github.com/helix-rsa/helix/internal/app"
	"github.com/helix-rsa/helix/internal/domain/crypto"
	"github.com/helix-rsa/helix/internal/domain/keys"
	"github.com/helix-rsa/helix/internal/infrastructure/cryptography"
	"github.com/helix-rsa/helix/internal/infrastructure/keystore"
	"github.com/helix-rsa/helix/internal/infrastructure/persistence"
	"github.com/helix-rsa/helix/internal/pkg/config"
	"github.com/helix-rsa/helix/internal/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// maxUploadMemory bounds the part of a multipart upload held in memory
const maxUploadMemory = 32 << 20

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := persistence.CloseDB(deps.db); err != nil {
			log.Warn("failed to close database: ", err)
		}
	}()

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	db       *gorm.DB
	services *appServices
}

type appServices struct {
	keyGeneration keys.KeyGenerationService
	keyDownload   keys.KeyDownloadService
	keyMetadata   keys.KeyMetadataService
	fileCipher    keys.FileCipherService
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	keyMetaRepo, err := persistence.NewGormKeyMetaRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key metadata repository: %w", err)
	}

	// Initialize cryptographic processor and key store
	rsaProcessor, err := cryptography.NewRSAProcessor(log, crypto.CurrentVersion, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}

	keyStore, err := keystore.NewKeyFileStore(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key store: %w", err)
	}

	// Initialize services
	services, err := initializeApplicationServices(cfg, rsaProcessor, keyStore, keyMetaRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		db:       db,
		services: services,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()
	r.MaxMultipartMemory = maxUploadMemory

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", v1.VersionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.keyGeneration,
		deps.services.keyDownload,
		deps.services.keyMetadata,
		deps.services.fileCipher,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	cfg *config.RestConfig,
	rsaProcessor crypto.RSAProcessor,
	keyStore crypto.KeyStore,
	keyMetaRepo keys.KeyMetaRepository,
	log logger.Logger,
) (*appServices, error) {
	keyGenerationService, err := app.NewKeyGenerationService(rsaProcessor, keyStore, keyMetaRepo, cfg.Keys.Directory, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key generation service: %w", err)
	}

	keyDownloadService, err := app.NewKeyDownloadService(keyMetaRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key download service: %w", err)
	}

	keyMetadataService, err := app.NewKeyMetadataService(keyMetaRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create key metadata service: %w", err)
	}

	fileCipherService, err := app.NewFileCipherService(rsaProcessor, keyStore, keyMetaRepo, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create file cipher service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		keyGeneration: keyGenerationService,
		keyDownload:   keyDownloadService,
		keyMetadata:   keyMetadataService,
		fileCipher:    fileCipherService,
	}, nil
}
