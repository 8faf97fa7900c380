// Package configcmder provides the config command for managing persistent
// coachlens configuration stored in the .coachlens/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent coachlens configuration.

Configuration is stored as config.toml in the .coachlens/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values.

Keys use dotted notation matching the TOML section structure:
  storage.transcripts_path, storage.insights_path, storage.embeddings_path,
  vector_store.provider, vector_store.target, vector_store.collection,
  embedding.provider, embedding.target, embedding.model, embedding.dimensions,
  extraction.provider, extraction.target, extraction.model,
  api.listen, client.api_target, search.top_k

Use subcommands to get, set, or list configuration values:
  coachlens config set <key> <value>    Set a configuration value
  coachlens config get <key>            Get a configuration value
  coachlens config list                 List all configuration values

Examples:
  coachlens config set vector_store.provider qdrant
  coachlens config set vector_store.target localhost:6334
  coachlens config get embedding.model
  coachlens config list`

const configShortDesc string = "Manage persistent coachlens configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
