package testutil

import (
	"testing"

	"github.com/helix-rsa/helix/internal/pkg/config"
	"github.com/helix-rsa/helix/internal/pkg/logger"

	"github.com/stretchr/testify/require"
)

// SetupTestLogger returns the shared console logger tagged with the name of the running test.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	err := logger.InitLogger(&config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	})
	require.NoError(t, err)

	log, err := logger.GetLogger()
	require.NoError(t, err)

	return log.With("test", t.Name())
}
