package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/helix-rsa/helix/internal/app"
	"github.com/helix-rsa/helix/internal/domain/keys"
	"github.com/helix-rsa/helix/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// KeyCommandHandler lists and deletes registered keys
type KeyCommandHandler struct {
	env    *Environment
	logger logger.Logger
}

// NewKeyCommandHandler initializes a new KeyCommandHandler on the shared environment.
func NewKeyCommandHandler(env *Environment) (*KeyCommandHandler, error) {
	if env == nil {
		return nil, fmt.Errorf("environment cannot be nil")
	}
	return &KeyCommandHandler{
		env:    env,
		logger: env.Logger.With("component", "cli"),
	}, nil
}

func (commandHandler *KeyCommandHandler) metadataService() (keys.KeyMetadataService, error) {
	repo, err := commandHandler.env.KeyMetaRepository()
	if err != nil {
		return nil, err
	}
	return app.NewKeyMetadataService(repo, commandHandler.logger)
}

// ListKeysCmd prints registered keys as a table
func (commandHandler *KeyCommandHandler) ListKeysCmd(cmd *cobra.Command, _ []string) error {
	query := keys.NewKeyMetaQuery()

	var err error
	if query.KeyPairID, err = cmd.Flags().GetString("key-pair-id"); err != nil {
		return fmt.Errorf("invalid key-pair-id flag: %w", err)
	}
	if query.Type, err = cmd.Flags().GetString("type"); err != nil {
		return fmt.Errorf("invalid type flag: %w", err)
	}
	if query.BitLength, err = cmd.Flags().GetInt("bit-length"); err != nil {
		return fmt.Errorf("invalid bit-length flag: %w", err)
	}
	if query.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return fmt.Errorf("invalid limit flag: %w", err)
	}
	if err := query.Validate(); err != nil {
		return err
	}

	service, err := commandHandler.metadataService()
	if err != nil {
		return err
	}
	metas, err := service.List(cmd.Context(), query)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKEY PAIR\tTYPE\tBITS\tVERSION\tCREATED\tFILE")
	for _, meta := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			meta.ID, meta.KeyPairID, meta.Type, meta.BitLength, meta.Version,
			meta.DateTimeCreated.Local().Format(time.RFC3339), meta.FilePath)
	}
	return w.Flush()
}

// DeleteKeyCmd deletes the key file and metadata of each ID given
func (commandHandler *KeyCommandHandler) DeleteKeyCmd(cmd *cobra.Command, args []string) error {
	service, err := commandHandler.metadataService()
	if err != nil {
		return err
	}
	for _, keyID := range args {
		if err := service.DeleteByID(cmd.Context(), keyID); err != nil {
			return fmt.Errorf("failed to delete key %s: %w", keyID, err)
		}
	}
	return nil
}

// InitKeyCommands registers key management commands
func InitKeyCommands(rootCmd *cobra.Command, env *Environment) error {
	handler, err := NewKeyCommandHandler(env)
	if err != nil {
		return fmt.Errorf("failed to create key command handler: %w", err)
	}

	var listKeysCmd = &cobra.Command{
		Use:   "list-keys",
		Short: "List registered keys, newest first",
		RunE:  handler.ListKeysCmd,
	}
	listKeysCmd.Flags().StringP("key-pair-id", "", "", "Only keys of this pair")
	listKeysCmd.Flags().StringP("type", "t", "", "Only public or private keys")
	listKeysCmd.Flags().IntP("bit-length", "b", 0, "Only keys of this size")
	listKeysCmd.Flags().IntP("limit", "n", 0, "Maximum number of keys to list")
	rootCmd.AddCommand(listKeysCmd)

	var deleteKeyCmd = &cobra.Command{
		Use:   "delete-key <key id>...",
		Short: "Delete key files and their metadata",
		Args:  cobra.MinimumNArgs(1),
		RunE:  handler.DeleteKeyCmd,
	}
	rootCmd.AddCommand(deleteKeyCmd)

	return nil
}
