package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/helix-rsa/helix/internal/app"
	"github.com/helix-rsa/helix/internal/domain/keys"
	"github.com/helix-rsa/helix/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// RSACommandHandler encapsulates logic for handling RSA operations via CLI.
type RSACommandHandler struct {
	env    *Environment
	logger logger.Logger
}

// NewRSACommandHandler initializes a new RSACommandHandler on the shared environment.
func NewRSACommandHandler(env *Environment) (*RSACommandHandler, error) {
	if env == nil {
		return nil, fmt.Errorf("environment cannot be nil")
	}
	return &RSACommandHandler{
		env:    env,
		logger: env.Logger.With("component", "cli"),
	}, nil
}

// GenerateKeysCmd generates a key pair, stores both halves in the key directory and records their metadata
func (commandHandler *RSACommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	bitLength, err := cmd.Flags().GetInt("bit-length")
	if err != nil {
		return fmt.Errorf("invalid bit-length flag: %w", err)
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		return fmt.Errorf("invalid key-dir flag: %w", err)
	}
	skipValidation, err := cmd.Flags().GetBool("skip-validation")
	if err != nil {
		return fmt.Errorf("invalid skip-validation flag: %w", err)
	}
	password, err := passwordFlag(cmd, "password")
	if err != nil {
		return err
	}

	if bitLength == 0 {
		bitLength = commandHandler.env.Config.Keys.DefaultBitLength
	}
	if keyDir == "" {
		keyDir = commandHandler.env.Config.Keys.Directory
	}

	repo, err := commandHandler.env.KeyMetaRepository()
	if err != nil {
		return err
	}
	service, err := app.NewKeyGenerationService(commandHandler.env.RSAProcessor, commandHandler.env.KeyStore, repo, keyDir, commandHandler.logger)
	if err != nil {
		return fmt.Errorf("failed to create key generation service: %w", err)
	}

	metas, err := service.Generate(cmd.Context(), &keys.GenerateRequest{
		BitLength:      bitLength,
		Password:       password,
		SkipValidation: skipValidation,
	})
	if err != nil {
		return err
	}

	for _, meta := range metas {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", meta.ID, meta.Type, meta.FilePath)
	}
	return nil
}

// EncryptCmd encrypts a file with a public or private key
func (commandHandler *RSACommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	return commandHandler.runCipher(cmd, func(service keys.FileCipherService, keyPath, password, input, output string) error {
		if err := service.EncryptFile(cmd.Context(), keyPath, password, input, output); err != nil {
			return err
		}
		commandHandler.logger.Info("Encrypted data path ", output)
		return nil
	})
}

// DecryptCmd decrypts a file with the counterpart of the key it was encrypted with
func (commandHandler *RSACommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	return commandHandler.runCipher(cmd, func(service keys.FileCipherService, keyPath, password, input, output string) error {
		version, err := service.DecryptFile(cmd.Context(), keyPath, password, input, output)
		if err != nil {
			return err
		}
		commandHandler.logger.Info("Decrypted data path ", output, " (format version ", version, ")")
		return nil
	})
}

type cipherFunc func(service keys.FileCipherService, keyPath, password, input, output string) error

func (commandHandler *RSACommandHandler) runCipher(cmd *cobra.Command, fn cipherFunc) error {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return fmt.Errorf("invalid input-file flag: %w", err)
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return fmt.Errorf("invalid output-file flag: %w", err)
	}
	keyPath, err := commandHandler.resolveKeyPath(cmd)
	if err != nil {
		return err
	}
	password, err := passwordFlag(cmd, "password")
	if err != nil {
		return err
	}

	service, err := app.NewFileCipherService(commandHandler.env.RSAProcessor, commandHandler.env.KeyStore, nil, commandHandler.logger)
	if err != nil {
		return fmt.Errorf("failed to create file cipher service: %w", err)
	}

	return fn(service, keyPath, password, filepath.Clean(inputFile), filepath.Clean(outputFile))
}

// resolveKeyPath returns --key, or the file registered under --key-id
func (commandHandler *RSACommandHandler) resolveKeyPath(cmd *cobra.Command) (string, error) {
	keyPath, err := cmd.Flags().GetString("key")
	if err != nil {
		return "", fmt.Errorf("invalid key flag: %w", err)
	}
	keyID, err := cmd.Flags().GetString("key-id")
	if err != nil {
		return "", fmt.Errorf("invalid key-id flag: %w", err)
	}

	switch {
	case keyPath != "" && keyID != "":
		return "", fmt.Errorf("--key and --key-id are mutually exclusive")
	case keyPath != "":
		return keyPath, nil
	case keyID != "":
		repo, err := commandHandler.env.KeyMetaRepository()
		if err != nil {
			return "", err
		}
		meta, err := repo.GetByID(cmd.Context(), keyID)
		if err != nil {
			return "", err
		}
		return meta.FilePath, nil
	default:
		return "", fmt.Errorf("one of --key or --key-id is required")
	}
}

// ChangePasswordCmd re-scrambles a private key file with a new password
func (commandHandler *RSACommandHandler) ChangePasswordCmd(cmd *cobra.Command, _ []string) error {
	keyPath, err := commandHandler.resolveKeyPath(cmd)
	if err != nil {
		return err
	}
	oldPassword, err := passwordFlag(cmd, "old-password")
	if err != nil {
		return err
	}
	newPassword, err := cmd.Flags().GetString("new-password")
	if err != nil {
		return fmt.Errorf("invalid new-password flag: %w", err)
	}

	return commandHandler.env.KeyStore.ChangePassword(keyPath, oldPassword, newPassword)
}

// passwordFlag reads the named flag and falls back to HELIX_KEY_PASSWORD
func passwordFlag(cmd *cobra.Command, name string) (string, error) {
	password, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("invalid %s flag: %w", name, err)
	}
	if password == "" {
		password = os.Getenv(PasswordEnv)
	}
	return password, nil
}

func addKeyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("key", "k", "", "Path to the key file")
	cmd.Flags().StringP("key-id", "", "", "ID of a registered key, instead of --key")
}

// InitRSACommands registers RSA-related commands
func InitRSACommands(rootCmd *cobra.Command, env *Environment) error {
	handler, err := NewRSACommandHandler(env)
	if err != nil {
		return fmt.Errorf("failed to create RSA command handler: %w", err)
	}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate an RSA key pair",
		Long: `Generate an RSA key pair. The public key is written to <key-dir>/<pair id>.pub and
the private key to <key-dir>/<pair id>.prv, scrambled with the password.`,
		RunE: handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().IntP("bit-length", "b", 0, "Modulus size in bits, even, 128 to 1000000 (default from config)")
	generateKeysCmd.Flags().StringP("key-dir", "", "", "Directory to store the key files (default from config)")
	generateKeysCmd.Flags().StringP("password", "p", "", "Password for the private key (or "+PasswordEnv+")")
	generateKeysCmd.Flags().BoolP("skip-validation", "", false, "Skip the encrypt/decrypt round trip on the new pair")
	rootCmd.AddCommand(generateKeysCmd)

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file with an RSA key",
		RunE:  handler.EncryptCmd,
	}
	encryptCmd.Flags().StringP("input-file", "i", "", "Path to input file which needs to be encrypted")
	encryptCmd.Flags().StringP("output-file", "o", "", "Path to encrypted output file")
	encryptCmd.Flags().StringP("password", "p", "", "Password, when encrypting with a private key")
	addKeyFlags(encryptCmd)
	_ = encryptCmd.MarkFlagRequired("input-file")
	_ = encryptCmd.MarkFlagRequired("output-file")
	rootCmd.AddCommand(encryptCmd)

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file with an RSA key",
		RunE:  handler.DecryptCmd,
	}
	decryptCmd.Flags().StringP("input-file", "i", "", "Path to encrypted file")
	decryptCmd.Flags().StringP("output-file", "o", "", "Path to decrypted output file")
	decryptCmd.Flags().StringP("password", "p", "", "Password, when decrypting with a private key")
	addKeyFlags(decryptCmd)
	_ = decryptCmd.MarkFlagRequired("input-file")
	_ = decryptCmd.MarkFlagRequired("output-file")
	rootCmd.AddCommand(decryptCmd)

	var changePasswordCmd = &cobra.Command{
		Use:   "change-key-password",
		Short: "Change the password of a private key file",
		RunE:  handler.ChangePasswordCmd,
	}
	changePasswordCmd.Flags().StringP("old-password", "", "", "Current password (or "+PasswordEnv+")")
	changePasswordCmd.Flags().StringP("new-password", "", "", "New password")
	addKeyFlags(changePasswordCmd)
	_ = changePasswordCmd.MarkFlagRequired("new-password")
	rootCmd.AddCommand(changePasswordCmd)

	return nil
}
