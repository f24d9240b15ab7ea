package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// CreateTestFile writes content to fileName with owner-only permissions
func CreateTestFile(fileName string, content []byte) error {
	if err := os.WriteFile(fileName, content, 0600); err != nil {
		return fmt.Errorf("failed to create test file: %w", err)
	}
	return nil
}

// TempPath returns a path named name inside a per-test temporary directory
func TempPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
