//go:build integration
// +build integration

package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/helix-rsa/helix/internal/domain/crypto"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `logger:
  log_level: info
  log_type: console
database:
  type: sqlite
  dsn: %s
  name: helix
keys:
  directory: %s
  default_bit_length: 128
`

func setupEnvironment(t *testing.T) (*Environment, string) {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "helix.yaml")
	content := fmt.Sprintf(testConfig, filepath.Join(dir, "helix.db"), filepath.Join(dir, "keys"))
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0600))

	env, err := NewEnvironment(configPath)
	require.NoError(t, err)
	t.Cleanup(env.Close)

	return env, dir
}

func execute(t *testing.T, env *Environment, args ...string) (string, error) {
	t.Helper()

	rootCmd := &cobra.Command{Use: "helix-cli", SilenceUsage: true, SilenceErrors: true}
	require.NoError(t, InitRSACommands(rootCmd, env))
	require.NoError(t, InitKeyCommands(rootCmd, env))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

type generatedKey struct {
	id, keyType, path string
}

func generateKeys(t *testing.T, env *Environment, password string) (public, private generatedKey) {
	t.Helper()

	out, err := execute(t, env, "generate-keys", "--password", password)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	var generated []generatedKey
	for _, line := range lines {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 3)
		generated = append(generated, generatedKey{fields[0], fields[1], fields[2]})
	}
	return generated[0], generated[1]
}

func TestGenerateEncryptDecrypt(t *testing.T) {
	env, dir := setupEnvironment(t)

	public, private := generateKeys(t, env, "secret")
	assert.Equal(t, crypto.KeyTypePublic, public.keyType)
	assert.Equal(t, crypto.KeyTypePrivate, private.keyType)
	assert.Equal(t, filepath.Join(dir, "keys"), filepath.Dir(public.path))

	plainPath := filepath.Join(dir, "plain.txt")
	cipherPath := filepath.Join(dir, "plain.enc")
	outPath := filepath.Join(dir, "plain.out")
	plaintext := []byte("helix encrypts this file in blocks no wider than the modulus")
	require.NoError(t, os.WriteFile(plainPath, plaintext, 0600))

	_, err := execute(t, env, "encrypt", "-i", plainPath, "-o", cipherPath, "--key", public.path)
	require.NoError(t, err)

	_, err = execute(t, env, "decrypt", "-i", cipherPath, "-o", outPath, "--key-id", private.id, "--password", "secret")
	require.NoError(t, err)

	decrypted, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestEncryptKeyFlags(t *testing.T) {
	env, dir := setupEnvironment(t)
	public, _ := generateKeys(t, env, "secret")

	plainPath := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(plainPath, []byte("x"), 0600))

	_, err := execute(t, env, "encrypt", "-i", plainPath, "-o", filepath.Join(dir, "out"))
	assert.ErrorContains(t, err, "--key")

	_, err = execute(t, env, "encrypt", "-i", plainPath, "-o", filepath.Join(dir, "out"), "--key", public.path, "--key-id", public.id)
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestChangeKeyPassword(t *testing.T) {
	env, dir := setupEnvironment(t)
	public, private := generateKeys(t, env, "secret")

	_, err := execute(t, env, "change-key-password", "--key", private.path, "--old-password", "secret", "--new-password", "changed")
	require.NoError(t, err)

	plainPath := filepath.Join(dir, "plain.txt")
	cipherPath := filepath.Join(dir, "plain.enc")
	outPath := filepath.Join(dir, "plain.out")
	require.NoError(t, os.WriteFile(plainPath, []byte("password rotation"), 0600))

	_, err = execute(t, env, "encrypt", "-i", plainPath, "-o", cipherPath, "--key-id", public.id)
	require.NoError(t, err)
	_, err = execute(t, env, "decrypt", "-i", cipherPath, "-o", outPath, "--key", private.path, "--password", "changed")
	require.NoError(t, err)

	decrypted, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "password rotation", string(decrypted))

	_, err = execute(t, env, "change-key-password", "--key", public.path, "--old-password", "x", "--new-password", "y")
	assert.Error(t, err)
}

func TestListAndDeleteKeys(t *testing.T) {
	env, _ := setupEnvironment(t)
	public, private := generateKeys(t, env, "secret")

	out, err := execute(t, env, "list-keys")
	require.NoError(t, err)
	assert.Contains(t, out, public.id)
	assert.Contains(t, out, private.id)

	out, err = execute(t, env, "list-keys", "--type", "private")
	require.NoError(t, err)
	assert.NotContains(t, out, public.id)
	assert.Contains(t, out, private.id)

	_, err = execute(t, env, "list-keys", "--type", "symmetric")
	assert.Error(t, err)

	_, err = execute(t, env, "delete-key", public.id, private.id)
	require.NoError(t, err)

	_, err = os.Stat(public.path)
	assert.True(t, os.IsNotExist(err))

	out, err = execute(t, env, "list-keys")
	require.NoError(t, err)
	assert.NotContains(t, out, public.id)

	_, err = execute(t, env, "delete-key")
	assert.Error(t, err)
}
