package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xenlixai/aeoscan/internal/cache"
	"github.com/xenlixai/aeoscan/internal/extract"
	"github.com/xenlixai/aeoscan/internal/gap"
	"github.com/xenlixai/aeoscan/internal/model"
)

// Pipeline orchestrates the complete audit process: fetch, citation
// extraction, question extraction, and gap analysis.
type Pipeline struct {
	fetcher   *Fetcher
	citations *extract.CitationExtractor
	questions *extract.QuestionExtractor
	analyzer  *gap.Analyzer // nil when no question source is configured
	renderer  *Renderer
	config    *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	pages := pageCache(cfg)

	// Create the candidate question source if configured
	var analyzer *gap.Analyzer
	if cfg.Questions.Provider != "" {
		source, err := gap.NewSource(cfg.Questions)
		if err != nil {
			fmt.Printf("Warning: Failed to initialize question source: %v\n", err)
		} else {
			analyzer = gap.NewAnalyzer(gap.NewCachedSource(source, pages, cfg.Questions.CacheTTL))
		}
	}

	return &Pipeline{
		fetcher:   NewFetcher(cfg, pages),
		citations: extract.NewCitationExtractor(cfg.Extraction.TrustedDomains),
		questions: extract.NewQuestionExtractor(),
		analyzer:  analyzer,
		renderer:  NewRenderer(cfg.Output.IncludeFooter),
		config:    cfg,
	}
}

// pageCache builds the shared cache from config. Caching is best-effort:
// a disabled or unconfigurable cache degrades to a no-op.
func pageCache(cfg *model.Config) cache.Cache {
	if !cfg.Cache.Enabled {
		return cache.Nop{}
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		dir = filepath.Join(base, "aeoscan")
	}

	return cache.NewLayeredCache(cfg.Cache.MemoryTTL, dir, cfg.Cache.DiskTTL)
}

// AuditURL audits a single URL and generates a complete report. When a
// keyword is given and a question source is configured, the report also
// carries the gap analysis; a failed analysis is recorded on the report
// rather than discarding the extraction results.
func (p *Pipeline) AuditURL(ctx context.Context, url string, keyword string) (*model.AuditReport, error) {
	// 1. Fetch HTML
	fetchResult, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}

	// 2. Extract citations from the visible text
	text, err := extract.VisibleText(fetchResult.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	opts := extract.Options{
		MaxCitations:        p.config.Extraction.MaxCitations,
		ConfidenceThreshold: p.config.Extraction.ConfidenceThreshold,
		ExtractTitles:       p.config.Extraction.ExtractTitles,
	}
	citations, err := p.citations.Extract(text, opts)
	if err != nil {
		return nil, fmt.Errorf("extract citations: %w", err)
	}

	// 3. Extract answered questions from the page structure
	questions, err := p.questions.Extract(fetchResult.HTML)
	if err != nil {
		return nil, fmt.Errorf("extract questions: %w", err)
	}

	report := &model.AuditReport{
		Subject:       fetchResult.Subject,
		SourceURL:     fetchResult.FinalURL,
		Keyword:       keyword,
		FetchedAt:     time.Now().UTC(),
		FetchMeta:     fetchResult.Meta,
		Citations:     citations,
		CitationStats: extract.Stats(citations),
		Questions:     questions,
	}

	// 4. Gap analysis, when requested. A failure here is recorded on the
	// report so batch runs keep the citation and question results.
	if keyword != "" && p.analyzer != nil {
		gaps, err := p.analyzer.Analyze(ctx, questions, keyword)
		if err != nil {
			report.GapError = err.Error()
		} else {
			report.Gaps = gaps
		}
	}

	return report, nil
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.AuditReport, jsonPath string, mdPath string, verbose bool) error {
	// Render JSON
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	// Render Markdown
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// Print summary to stdout
	p.renderer.RenderSummary(report)

	return nil
}
