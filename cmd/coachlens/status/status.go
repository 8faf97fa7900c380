// Package statuscmder provides the status command for displaying vector
// index statistics.
package statuscmder

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/cliui"
	"github.com/coachlens/coachlens/pkg/config"
	"github.com/coachlens/coachlens/pkg/engine"
	"github.com/coachlens/coachlens/pkg/logger"
)

const statusLongDesc string = `Show statistics for the configured vector index.

Displays the active backend, the number of indexed sessions, and the
embedding dimension. If the remote backend is configured but unreachable,
the local JSON store is reported instead.

Examples:
  coachlens status`

const statusShortDesc string = "Show vector index statistics"

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDesc,
		Long:  statusLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			configDir, _ := cmd.Flags().GetString("config-dir")

			return runStatus(cmd.Context(), configDir, debug)
		},
	}

	return cmd
}

func runStatus(ctx context.Context, configDir string, debug bool) error {
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

	stats, err := eng.Store.Stats(ctx)
	if err != nil {
		log.Error("failed to get index stats", zap.Error(err))
		return fmt.Errorf("getting index stats: %w", err)
	}

	fmt.Printf("\n  %s  %s\n", cliui.KeyStyle.Render("Backend:  "), cliui.ValueStyle.Render(stats.Backend))
	fmt.Printf("  %s  %s\n", cliui.KeyStyle.Render("Sessions: "), cliui.ValueStyle.Render(strconv.Itoa(stats.TotalVectors)))
	fmt.Printf("  %s  %s\n\n", cliui.KeyStyle.Render("Dimension:"), cliui.ValueStyle.Render(strconv.Itoa(stats.Dimension)))

	if cfg.VectorStore.Provider != stats.Backend {
		fmt.Printf("  %s configured backend %q is unavailable, using %q\n\n",
			cliui.WarnMark, cfg.VectorStore.Provider, stats.Backend)
	}

	return nil
}
