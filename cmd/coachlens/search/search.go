// Package searchcmder provides the search command for semantic search over
// coaching session insights.
package searchcmder

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/config"
	"github.com/coachlens/coachlens/pkg/engine"
	"github.com/coachlens/coachlens/pkg/logger"
	"github.com/coachlens/coachlens/pkg/search"
	"github.com/coachlens/coachlens/pkg/vector"
)

var (
	rankStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Bold(true)
	scoreStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	previewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	explainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type searchCommander struct {
	query      string
	topK       int
	businesses []string
	minUrgency int
	similarTo  string
	quiet      bool

	configDir string
	debug     bool
	logger    *zap.Logger
}

const searchLongDesc string = `Search indexed coaching sessions by meaning.

Embeds the query text and returns the most similar sessions, with a short
explanation of why each one matched. Results can be restricted by business
focus and minimum urgency level.

Use --similar-to to skip the query and instead find sessions similar to a
named participant's session. Use --quiet to output only session IDs, one
per line, for piping into other commands.

Examples:
  coachlens search "struggling to find customers"
  coachlens search "pricing anxiety" --top 10
  coachlens search "growth plateau" --business SaaS --business e-commerce
  coachlens search "burnout" --min-urgency 4
  coachlens search --similar-to "Sarah Chen"`

const searchShortDesc string = "Search indexed coaching sessions"

func NewSearchCmd() *cobra.Command {
	cmder := &searchCommander{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: searchShortDesc,
		Long:  searchLongDesc,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cmder.query = args[0]
			}
			if cmder.query == "" && cmder.similarTo == "" {
				return fmt.Errorf("a query argument or --similar-to is required")
			}

			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %w", err)
			}
			cmder.configDir, _ = cmd.Flags().GetString("config-dir")

			return cmder.run(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&cmder.topK, "top", "k", search.DefaultTopK, "Number of results to return")
	cmd.Flags().StringArrayVarP(&cmder.businesses, "business", "b", nil, "Restrict to a business focus (repeatable)")
	cmd.Flags().IntVarP(&cmder.minUrgency, "min-urgency", "u", 0, "Minimum urgency level (1-5)")
	cmd.Flags().StringVar(&cmder.similarTo, "similar-to", "", "Find sessions similar to this participant's session")
	cmd.Flags().BoolVarP(&cmder.quiet, "quiet", "q", false, "Output only session IDs, one per line (for piping)")

	return cmd
}

func (c *searchCommander) run(ctx context.Context) error {
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

	eng, err := engine.New(cfg, c.logger)
	if err != nil {
		return err
	}
	defer func() { _ = eng.Close() }()

	output, err := c.search(ctx, eng.Searcher)
	if err != nil {
		return err
	}

	if output.Count == 0 {
		if !c.quiet {
			fmt.Println("No results found.")
		}
		return nil
	}

	if c.quiet {
		for _, result := range output.Results {
			fmt.Println(result.ID)
		}
		return nil
	}

	header := output.Query
	if c.similarTo != "" {
		header = "sessions similar to " + c.similarTo
	}
	fmt.Printf("\n%s %s\n",
		headerStyle.Render("Search Results for:"),
		nameStyle.Render(fmt.Sprintf("%q", header)),
	)
	if output.Degraded {
		fmt.Printf("%s\n", dimStyle.Render("(embedding service unreachable; results are unranked)"))
	}
	fmt.Println()

	for i, result := range output.Results {
		printResult(i+1, result)
	}

	return nil
}

func (c *searchCommander) search(ctx context.Context, searcher *search.Searcher) (*search.Output, error) {
	if c.similarTo != "" {
		return searcher.SimilarTo(ctx, c.similarTo, c.topK)
	}

	if len(c.businesses) > 0 {
		return searcher.SearchByBusinessTypes(ctx, c.query, c.businesses, c.topK)
	}

	filter := vector.Filter{MinUrgency: c.minUrgency}
	return searcher.Search(ctx, c.query, c.topK, filter)
}

func printResult(rank int, result vector.Result) {
	fmt.Printf("  %s  %s  %s\n",
		rankStyle.Render(fmt.Sprintf("#%d", rank)),
		scoreStyle.Render(fmt.Sprintf("score: %.4f", result.Score)),
		nameStyle.Render(result.Participant),
	)

	preview := strings.ReplaceAll(result.SearchableText, "\n", " ")
	if len(preview) > 100 {
		preview = preview[:97] + "..."
	}
	fmt.Printf("  %s\n", previewStyle.Render(preview))

	fmt.Printf("  %s %s  %s %s\n",
		labelStyle.Render("urgency:"),
		previewStyle.Render(fmt.Sprintf("%d/5", result.Metadata.UrgencyLevel)),
		labelStyle.Render("why:"),
		explainStyle.Render(result.Explanation),
	)
	fmt.Printf("  %s\n\n", dimStyle.Render(result.ID))
}
