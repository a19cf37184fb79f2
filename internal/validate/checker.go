package validate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/xenlixai/aeoscan/internal/model"
	"github.com/xenlixai/aeoscan/internal/util"
	"github.com/xenlixai/aeoscan/internal/worker"
)

// reciprocityReadLimit bounds how much of a profile page body is scanned
// for a backlink to the canonical domain
const reciprocityReadLimit = 512 * 1024

// Candidate is one profile URL to validate
type Candidate struct {
	Platform string
	URL      string
}

// ProfileChecker validates candidate profile URLs with HEAD requests,
// falling back to GET. Checks run in fixed-size batches purely to bound
// outstanding requests; one URL's failure never affects the others.
type ProfileChecker struct {
	httpClient   *http.Client
	limiter      *worker.Limiter
	userAgent    string
	batchSize    int
	checkTimeout time.Duration
}

// NewProfileChecker creates a checker from configuration
func NewProfileChecker(cfg *model.Config) *ProfileChecker {
	batch := cfg.Concurrency.CheckBatch
	if batch <= 0 {
		batch = 5
	}
	checkTimeout := cfg.SameAs.CheckTimeout
	if checkTimeout <= 0 {
		checkTimeout = 8 * time.Second
	}

	return &ProfileChecker{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 5 {
					return fmt.Errorf("stopped after 5 redirects")
				}
				return nil
			},
		},
		limiter:      worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		userAgent:    cfg.HTTP.UserAgent,
		batchSize:    batch,
		checkTimeout: checkTimeout,
	}
}

// CheckAll validates every candidate, preserving input order. canonical is
// the site the profiles should link back to; reciprocity checking is
// skipped when it is empty or checkReciprocity is false.
func (c *ProfileChecker) CheckAll(ctx context.Context, candidates []Candidate, canonical string, checkReciprocity bool) []model.ProfileCheck {
	results := make([]model.ProfileCheck, len(candidates))
	canonicalHost := hostOf(canonical)

	for start := 0; start < len(candidates); start += c.batchSize {
		end := start + c.batchSize
		if end > len(candidates) {
			end = len(candidates)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				results[idx] = c.checkSingle(ctx, candidates[idx], canonicalHost, checkReciprocity)
			}(i)
		}
		wg.Wait()
	}

	return results
}

func (c *ProfileChecker) checkSingle(ctx context.Context, cand Candidate, canonicalHost string, checkReciprocity bool) model.ProfileCheck {
	result := model.ProfileCheck{Platform: cand.Platform, URL: cand.URL}

	if !strings.HasPrefix(strings.ToLower(cand.URL), "https://") {
		result.Warning = "candidate URL is not HTTPS"
	}

	if err := c.limiter.Wait(ctx, cand.URL); err != nil {
		result.Status = model.StatusError
		result.Warning = appendWarning(result.Warning, fmt.Sprintf("rate limit wait: %v", err))
		return result
	}

	checkCtx, cancel := context.WithTimeout(ctx, c.checkTimeout)
	defer cancel()

	// Reciprocity needs the body, so skip straight to GET in that case.
	var resp *http.Response
	var err error
	if checkReciprocity && canonicalHost != "" {
		resp, err = c.do(checkCtx, http.MethodGet, cand.URL)
	} else {
		resp, err = c.do(checkCtx, http.MethodHead, cand.URL)
		if err != nil || resp.StatusCode >= 400 {
			if resp != nil {
				_ = resp.Body.Close()
			}
			resp, err = c.do(checkCtx, http.MethodGet, cand.URL)
		}
	}

	if err != nil {
		if isTimeout(err) {
			result.Status = model.StatusTimeout
			result.Warning = appendWarning(result.Warning, "request timed out")
		} else {
			result.Status = model.StatusError
			result.Warning = appendWarning(result.Warning, fmt.Sprintf("fetch error: %v", err))
		}
		return result
	}
	defer func() { _ = resp.Body.Close() }()

	result.StatusCode = resp.StatusCode
	result.FinalURL = resp.Request.URL.String()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		result.Status = model.StatusValid
	} else {
		result.Status = model.StatusInvalid
		return result
	}

	if checkReciprocity && canonicalHost != "" && resp.Request.Method == http.MethodGet {
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, reciprocityReadLimit))
		if readErr != nil {
			result.Warning = appendWarning(result.Warning, fmt.Sprintf("reciprocity check skipped: %v", readErr))
		} else {
			result.HasReciprocity = strings.Contains(strings.ToLower(string(body)), canonicalHost)
			if !result.HasReciprocity {
				result.Warning = appendWarning(result.Warning, "no reciprocal link to "+canonicalHost)
			}
		}
	}

	return result
}

func (c *ProfileChecker) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	return c.httpClient.Do(req)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func appendWarning(existing, warning string) string {
	if existing == "" {
		return warning
	}
	return existing + "; " + warning
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return strings.ToLower(strings.TrimPrefix(rawURL, "www."))
	}
	host := strings.ToLower(parsed.Host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	return strings.TrimPrefix(host, "www.")
}
