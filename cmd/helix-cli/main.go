// Package main is the entry point for the helix-cli application.
// It loads the configuration, registers the RSA and key management commands
// and executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/helix-rsa/helix/cmd/helix-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "helix-cli",
		Short: "RSA key generation and file encryption CLI tool",
		Long: `helix-cli generates RSA key pairs and encrypts or decrypts files block by block.

Configuration is read from the YAML file named by HELIX_CONFIG_PATH (optional)
and HELIX_* environment variables, e.g. HELIX_KEYS_DIRECTORY or HELIX_DATABASE_DSN.

Private key files are scrambled with their password, not encrypted. Protect
them with file system permissions.`,
		SilenceUsage: true,
	}

	env, err := commands.NewEnvironment(os.Getenv(commands.ConfigPathEnv))
	if err != nil {
		return fmt.Errorf("failed to set up environment: %w", err)
	}
	defer env.Close()

	if err := initializeCommands(rootCmd, env); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// initializeCommands registers all command groups with the root command.
func initializeCommands(rootCmd *cobra.Command, env *commands.Environment) error {
	if err := commands.InitRSACommands(rootCmd, env); err != nil {
		return fmt.Errorf("failed to initialize RSA commands: %w", err)
	}

	if err := commands.InitKeyCommands(rootCmd, env); err != nil {
		return fmt.Errorf("failed to initialize key commands: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
