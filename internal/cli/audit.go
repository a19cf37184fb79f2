package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xenlixai/aeoscan/internal/model"
	"github.com/xenlixai/aeoscan/internal/pipeline"
)

var (
	outJSON           string
	outMD             string
	keyword           string
	timeout           time.Duration
	userAgent         string
	maxBytes          int64
	noCache           bool
	noFooter          bool
	insecureTLS       bool
	noRobots          bool
	httpProxy         string
	httpsProxy        string
	questionsProvider string
	questionsModel    string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit <url>",
	Short: "Audit a single URL for answer engine readiness",
	Long: `Audit analyzes a single web page to:
- Extract the citations it offers (URLs, reference markers, inline sources)
- Score citation confidence and flag trusted domains
- Extract the questions the page answers (headings and FAQ blocks)
- Compare answered questions against candidate searcher questions
- Report coverage and the content opportunity

Example:
  aeoscan audit https://example.com/guide
  aeoscan audit https://example.com --keyword "seo audit" --json report.json --md report.md
  aeoscan audit https://example.com --keyword "seo audit" --questions openai`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	// Output flags
	auditCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	auditCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// Analysis flags
	auditCmd.Flags().StringVar(&keyword, "keyword", "", "target keyword for question gap analysis")
	auditCmd.Flags().StringVar(&questionsProvider, "questions", "static", "candidate question source (static, openai)")
	auditCmd.Flags().StringVar(&questionsModel, "questions-model", "gpt-4o-mini", "model for the openai question source")

	// HTTP flags
	auditCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall audit timeout")
	auditCmd.Flags().StringVar(&userAgent, "ua", "aeoscan/0.3 (+https://github.com/xenlixai/aeoscan)", "HTTP User-Agent")
	auditCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	auditCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	auditCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	auditCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification (use for self-signed certs)")
	auditCmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt (use only on sites you control)")
	auditCmd.Flags().StringVar(&httpProxy, "http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	auditCmd.Flags().StringVar(&httpsProxy, "https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
}

// auditConfig builds pipeline configuration from the shared audit flags
func auditConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.MaxBodyBytes = maxBytes
	cfg.HTTP.InsecureTLS = insecureTLS
	cfg.HTTP.RespectRobots = !noRobots
	cfg.HTTP.HTTPProxy = httpProxy
	cfg.HTTP.HTTPSProxy = httpsProxy
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter

	cfg.Questions.Provider = questionsProvider
	cfg.Questions.Model = questionsModel
	if questionsProvider == "openai" {
		cfg.Questions.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Questions.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}

func runAudit(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Auditing: %s\n", url)
		fmt.Fprintf(os.Stderr, "Keyword: %s\n", keyword)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	cfg, err := auditConfig()
	if err != nil {
		return err
	}

	// Create pipeline
	p := pipeline.NewPipeline(cfg)

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Fetching HTML...\n")
	}

	report, err := p.AuditURL(ctx, url, keyword)
	if err != nil {
		return fmt.Errorf("audit failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d citations (%d trusted)\n",
			report.CitationStats.TotalCitations, report.CitationStats.TrustedCitations)
		fmt.Fprintf(os.Stderr, "✓ Extracted %d answered questions\n", len(report.Questions))
		if report.Gaps != nil {
			fmt.Fprintf(os.Stderr, "✓ Coverage: %.1f%% (opportunity %d/100)\n",
				report.Gaps.Metrics.CoveragePercentage, report.Gaps.Metrics.OpportunityScore)
		}
		if report.GapError != "" {
			fmt.Fprintf(os.Stderr, "✗ Gap analysis failed: %s\n", report.GapError)
		}
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}
