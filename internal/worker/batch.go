package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xenlixai/aeoscan/internal/model"
)

// Auditor audits a single URL; satisfied by pipeline.Pipeline
type Auditor interface {
	AuditURL(ctx context.Context, url, keyword string) (*model.AuditReport, error)
}

// AuditJob audits one URL as a pool job
type AuditJob struct {
	URL     string
	Keyword string
	Auditor Auditor
}

// AuditResult pairs a URL with its report or failure
type AuditResult struct {
	URL    string
	Report *model.AuditReport
	Error  error
}

// Err returns the job error, satisfying worker.Result
func (r *AuditResult) Err() error { return r.Error }

// Execute runs the audit
func (j *AuditJob) Execute(ctx context.Context) Result {
	report, err := j.Auditor.AuditURL(ctx, j.URL, j.Keyword)
	return &AuditResult{URL: j.URL, Report: report, Error: err}
}

// BatchProcessor audits many URLs concurrently
type BatchProcessor struct {
	auditor     Auditor
	concurrency int
}

// NewBatchProcessor creates a processor with the given worker count
func NewBatchProcessor(auditor Auditor, concurrency int) *BatchProcessor {
	return &BatchProcessor{auditor: auditor, concurrency: concurrency}
}

// ProcessURLs audits the URLs in parallel and returns one result per URL
func (b *BatchProcessor) ProcessURLs(ctx context.Context, urls []string, keyword string) []*AuditResult {
	if len(urls) == 0 {
		return []*AuditResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, u := range urls {
		pool.Submit(&AuditJob{URL: u, Keyword: keyword, Auditor: b.auditor})
	}

	results := pool.Wait()
	out := make([]*AuditResult, len(results))
	for i, r := range results {
		out[i] = r.(*AuditResult)
	}
	return out
}

// ProcessFile reads URLs from a file (one per line) and audits them
func (b *BatchProcessor) ProcessFile(ctx context.Context, path, keyword string) ([]*AuditResult, error) {
	urls, err := ReadURLsFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read URLs: %w", err)
	}
	return b.ProcessURLs(ctx, urls, keyword), nil
}

// ReadURLsFromFile reads one URL per line, skipping blanks and # comments,
// deduplicating as it goes
func ReadURLsFromFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			urls = append(urls, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return urls, nil
}
