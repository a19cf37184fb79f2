package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xenlixai/aeoscan/internal/model"
)

// Renderer renders audit reports to JSON, Markdown, and stdout
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new Renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON to the given path
func (r *Renderer) RenderJSON(report *model.AuditReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as Markdown to the given path
func (r *Renderer) RenderMarkdown(report *model.AuditReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# AEO Audit: %s\n\n", report.Subject)
	fmt.Fprintf(&b, "**Source:** %s\n", report.SourceURL)
	fmt.Fprintf(&b, "**Fetched:** %s\n\n", report.FetchedAt.Format("2006-01-02 15:04:05 UTC"))

	b.WriteString("## Citations\n\n")
	if len(report.Citations) == 0 {
		b.WriteString("No citations found.\n\n")
	} else {
		fmt.Fprintf(&b, "%d citations across %d domains (%d trusted).\n\n",
			report.CitationStats.TotalCitations,
			report.CitationStats.UniqueDomains,
			report.CitationStats.TrustedCitations)
		b.WriteString("| Domain | Type | Confidence | Trusted |\n")
		b.WriteString("|--------|------|------------|---------|\n")
		for _, c := range report.Citations {
			trusted := ""
			if c.IsTrusted {
				trusted = "yes"
			}
			fmt.Fprintf(&b, "| %s | %s | %.2f | %s |\n", c.Domain, c.Type, c.Confidence, trusted)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Answered Questions\n\n")
	if len(report.Questions) == 0 {
		b.WriteString("No questions found on the page.\n\n")
	} else {
		for _, q := range report.Questions {
			fmt.Fprintf(&b, "- %s _(%s)_\n", q.Text, q.Source)
		}
		b.WriteString("\n")
	}

	if report.GapError != "" {
		b.WriteString("## Question Gaps\n\n")
		fmt.Fprintf(&b, "Gap analysis failed: %s\n\n", report.GapError)
	} else if report.Gaps != nil {
		b.WriteString("## Question Gaps\n\n")
		fmt.Fprintf(&b, "**Keyword:** %s\n", report.Gaps.Keyword)
		fmt.Fprintf(&b, "**Coverage:** %.1f%%\n", report.Gaps.Metrics.CoveragePercentage)
		fmt.Fprintf(&b, "**Opportunity score:** %d\n\n", report.Gaps.Metrics.OpportunityScore)
		if len(report.Gaps.MissingQuestions) > 0 {
			b.WriteString("### Missing\n\n")
			for _, q := range report.Gaps.MissingQuestions {
				fmt.Fprintf(&b, "- %s\n", q.Text)
			}
			b.WriteString("\n")
		}
		if len(report.Gaps.AnsweredQuestions) > 0 {
			b.WriteString("### Already Answered\n\n")
			for _, q := range report.Gaps.AnsweredQuestions {
				fmt.Fprintf(&b, "- %s\n", q.Text)
			}
			b.WriteString("\n")
		}
	}

	if r.includeFooter {
		b.WriteString("---\n")
		b.WriteString("Generated by aeoscan\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderSummary prints a short report summary to stdout
func (r *Renderer) RenderSummary(report *model.AuditReport) {
	fmt.Printf("\n%s\n", report.Subject)
	fmt.Printf("  URL:        %s\n", report.SourceURL)
	fmt.Printf("  Citations:  %d (%d trusted, %d domains)\n",
		report.CitationStats.TotalCitations,
		report.CitationStats.TrustedCitations,
		report.CitationStats.UniqueDomains)
	fmt.Printf("  Questions:  %d\n", len(report.Questions))

	switch {
	case report.GapError != "":
		fmt.Printf("  Gaps:       analysis failed (%s)\n", report.GapError)
	case report.Gaps != nil:
		fmt.Printf("  Coverage:   %.1f%% (%d/%d answered, opportunity %d)\n",
			report.Gaps.Metrics.CoveragePercentage,
			report.Gaps.Metrics.AnsweredCount,
			report.Gaps.Metrics.TotalCandidates,
			report.Gaps.Metrics.OpportunityScore)
	}
	fmt.Println()
}
