// Package ingestcmder provides the ingest command for extracting insights
// from transcripts and building the vector index.
package ingestcmder

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/cliui"
	"github.com/coachlens/coachlens/pkg/config"
	"github.com/coachlens/coachlens/pkg/engine"
	"github.com/coachlens/coachlens/pkg/insight"
	"github.com/coachlens/coachlens/pkg/logger"
	"github.com/coachlens/coachlens/pkg/vector"
)

type ingestCommander struct {
	transcriptsPath string
	skipExtraction  bool

	configDir string
	debug     bool
	logger    *zap.Logger
}

const ingestLongDesc string = `Ingest coaching session transcripts into the vector index.

Runs the full pipeline: load transcripts, extract structured insights via
the configured LLM (or the cached insights file when extraction is
unavailable), embed each insight's searchable text, and upsert the records
into the configured vector store.

Re-running ingest is safe: records are matched by session ID, so existing
sessions are updated in place rather than duplicated.

Examples:
  coachlens ingest
  coachlens ingest --transcripts data/sample_transcripts.json
  coachlens ingest --skip-extraction`

const ingestShortDesc string = "Extract insights and build the vector index"

func NewIngestCmd() *cobra.Command {
	cmder := &ingestCommander{}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: ingestShortDesc,
		Long:  ingestLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&cmder.transcriptsPath, "transcripts", "t", "", "Path to the transcripts JSON file (default: from config)")
	cmd.Flags().BoolVar(&cmder.skipExtraction, "skip-extraction", false, "Skip LLM extraction and use the cached insights file")

	return cmd
}

func (c *ingestCommander) run(ctx context.Context) error {
	c.logger = logger.NewLogger(c.debug)
	defer func() { _ = c.logger.Sync() }()

	cfger, err := config.NewConfiger(c.configDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := cfger.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if c.transcriptsPath == "" {
		c.transcriptsPath = cfg.Storage.TranscriptsPath
	}

	eng, err := engine.New(cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	var transcripts []insight.Transcript
	err = cliui.Step(os.Stdout, fmt.Sprintf("Loading transcripts from %s", c.transcriptsPath), func() error {
		var err error
		transcripts, err = insight.LoadTranscripts(c.transcriptsPath)
		return err
	})
	if err != nil {
		return err
	}

	var llmCall insight.LLMCallFunc
	if !c.skipExtraction {
		llmCall = insight.NewOllamaLLM(cfg.Extraction.Target, cfg.Extraction.Model)
	}
	extractor := insight.NewExtractor(llmCall, cfg.Storage.InsightsPath, c.logger)

	var insights []insight.Insight
	var source insight.Source
	err = cliui.Step(os.Stdout, fmt.Sprintf("Extracting insights from %d transcripts", len(transcripts)), func() error {
		var err error
		insights, source, err = extractor.ProcessAll(ctx, transcripts)
		return err
	})
	if err != nil {
		return err
	}
	if source == insight.SourceCache {
		fmt.Printf("  %s Using cached insights from %s\n", cliui.WarnMark, cfg.Storage.InsightsPath)
	}

	builder := insight.NewBuilder(eng.Embedder, c.logger)

	var records []vector.Record
	var degraded int
	err = cliui.Step(os.Stdout, fmt.Sprintf("Embedding %d insights", len(insights)), func() error {
		records, degraded = builder.BuildRecords(ctx, insights)
		return nil
	})
	if err != nil {
		return err
	}
	if degraded > 0 {
		fmt.Printf("  %s %d insight(s) embedded as zero vectors; re-run ingest once the embedding service is reachable\n",
			cliui.WarnMark, degraded)
	}

	err = cliui.Step(os.Stdout, fmt.Sprintf("Indexing %d records (%s backend)", len(records), eng.Store.ActiveBackend()), func() error {
		return eng.Store.Upsert(ctx, records)
	})
	if err != nil {
		return err
	}

	stats, err := eng.Store.Stats(ctx)
	if err == nil {
		fmt.Printf("\n  %s Index ready: %d vectors (%s)\n\n", cliui.SuccessMark, stats.TotalVectors, stats.Backend)
	}

	return nil
}
