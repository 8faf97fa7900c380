// Package coachlenscmder
package coachlenscmder

import (
	"github.com/spf13/cobra"

	configcmder "github.com/coachlens/coachlens/cmd/coachlens/config"
	deletecmder "github.com/coachlens/coachlens/cmd/coachlens/delete"
	ingestcmder "github.com/coachlens/coachlens/cmd/coachlens/ingest"
	searchcmder "github.com/coachlens/coachlens/cmd/coachlens/search"
	servecmder "github.com/coachlens/coachlens/cmd/coachlens/serve"
	statuscmder "github.com/coachlens/coachlens/cmd/coachlens/status"
	versioncmder "github.com/coachlens/coachlens/cmd/version"
)

const coachlensLongDesc string = `Coachlens finds insights across coaching session transcripts.

Extract structured insights from raw transcripts, index them as vector
embeddings, and search them semantically:
  coachlens ingest     Extract insights and build the vector index
  coachlens search     Search indexed sessions by meaning
  coachlens status     Show index statistics
  coachlens serve      Run the HTTP API server`

const coachlensShortDesc string = "Coachlens - Coaching Session Insight Search"

func NewCoachlensCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coachlens",
		Short: coachlensShortDesc,
		Long:  coachlensLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override config directory (default: ./.coachlens or ~/.coachlens)")

	// Add subcommands
	cmd.AddCommand(ingestcmder.NewIngestCmd())
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(statuscmder.NewStatusCmd())
	cmd.AddCommand(deletecmder.NewDeleteCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
