// Package deletecmder provides the delete command for removing sessions
// from the vector index.
package deletecmder

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coachlens/coachlens/pkg/cliui"
	"github.com/coachlens/coachlens/pkg/config"
	"github.com/coachlens/coachlens/pkg/engine"
	"github.com/coachlens/coachlens/pkg/logger"
)

const deleteLongDesc string = `Delete a session from the vector index by its ID.

Removes the record from the configured backend. Deleting an ID that is not
indexed is not an error.

Examples:
  coachlens delete session_001`

const deleteShortDesc string = "Delete a session from the index"

func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <session-id>",
		Short: deleteShortDesc,
		Long:  deleteLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			configDir, _ := cmd.Flags().GetString("config-dir")

			return runDelete(cmd.Context(), args[0], configDir, debug)
		},
	}

	return cmd
}

func runDelete(ctx context.Context, id, configDir string, debug bool) error {
	log := logger.NewLogger(debug)
	defer func() { _ = log.Sync() }()

	cfger, err := config.NewConfiger(configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := cfger.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	eng, err := engine.New(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	if err := eng.Store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	fmt.Printf("  %s Deleted %s\n", cliui.SuccessMark, cliui.KeyStyle.Render(id))
	return nil
}
