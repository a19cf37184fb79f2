package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/xenlixai/aeoscan/internal/extract"
	"github.com/xenlixai/aeoscan/internal/gap"
	"github.com/xenlixai/aeoscan/internal/model"
	"github.com/xenlixai/aeoscan/internal/sameas"
	"github.com/xenlixai/aeoscan/internal/schema"
	"github.com/xenlixai/aeoscan/internal/validate"
)

// Server exposes the extraction, gap analysis, sameAs, and schema
// operations over HTTP.
type Server struct {
	config    *model.Config
	logger    *log.Logger
	citations *extract.CitationExtractor
	questions *extract.QuestionExtractor
	analyzer  *gap.Analyzer // nil when no question source is configured
	generator *sameas.Generator
}

// New creates a Server from the given configuration
func New(cfg *model.Config, logger *log.Logger) *Server {
	var analyzer *gap.Analyzer
	if cfg.Questions.Provider != "" {
		source, err := gap.NewSource(cfg.Questions)
		if err != nil {
			logger.Warn("question source unavailable", "err", err)
		} else {
			analyzer = gap.NewAnalyzer(source)
		}
	}

	return &Server{
		config:    cfg,
		logger:    logger,
		citations: extract.NewCitationExtractor(cfg.Extraction.TrustedDomains),
		questions: extract.NewQuestionExtractor(),
		analyzer:  analyzer,
		generator: sameas.NewGenerator(validate.NewProfileChecker(cfg)),
	}
}

// Handler builds the route table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /v1/citations/extract", s.handleCitations)
	mux.HandleFunc("POST /v1/gaps/analyze", s.handleGaps)
	mux.HandleFunc("POST /v1/sameas/generate", s.handleSameAs)
	mux.HandleFunc("POST /v1/schema/generate", s.handleSchema)

	return mux
}

// Run serves until the context is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Server.Port),
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("shutdown", "err", err)
		}
	}()

	s.logger.Info("starting server", "port", s.config.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server listen: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type citationsRequest struct {
	Text                string   `json:"text"`
	MaxCitations        int      `json:"max_citations,omitempty"`
	ConfidenceThreshold *float64 `json:"confidence_threshold,omitempty"`
}

type citationsResponse struct {
	Citations []model.Citation    `json:"citations"`
	Stats     model.CitationStats `json:"stats"`
}

func (s *Server) handleCitations(w http.ResponseWriter, r *http.Request) {
	var req citationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	opts := extract.Options{
		MaxCitations:        s.config.Extraction.MaxCitations,
		ConfidenceThreshold: s.config.Extraction.ConfidenceThreshold,
		ExtractTitles:       s.config.Extraction.ExtractTitles,
	}
	if req.MaxCitations > 0 {
		opts.MaxCitations = req.MaxCitations
	}
	if req.ConfidenceThreshold != nil {
		opts.ConfidenceThreshold = *req.ConfidenceThreshold
	}

	start := time.Now()
	citations, err := s.citations.Extract(req.Text, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("citations extracted", "count", len(citations), "took", time.Since(start))
	writeJSON(w, http.StatusOK, citationsResponse{
		Citations: citations,
		Stats:     extract.Stats(citations),
	})
}

type gapsRequest struct {
	HTML    string `json:"html"`
	Keyword string `json:"keyword"`
}

func (s *Server) handleGaps(w http.ResponseWriter, r *http.Request) {
	if s.analyzer == nil {
		writeError(w, http.StatusServiceUnavailable, "question source not configured")
		return
	}

	var req gapsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Keyword == "" {
		writeError(w, http.StatusBadRequest, "keyword is required")
		return
	}

	questions, err := s.questions.Extract(req.HTML)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("extract questions: %v", err))
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), questions, req.Keyword)
	if err != nil {
		// Analysis failure is not "zero gaps": surface it as an upstream error
		s.logger.Error("gap analysis failed", "keyword", req.Keyword, "err", err)
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleSameAs(w http.ResponseWriter, r *http.Request) {
	var req model.SameAsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.RequireMinimum == 0 {
		req.RequireMinimum = s.config.SameAs.RequireMinimum
	}

	start := time.Now()
	result, err := s.generator.Generate(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info("sameAs generated",
		"handle", req.Handle,
		"valid", result.Summary.Valid,
		"took", time.Since(start))
	writeJSON(w, http.StatusOK, result)
}

type schemaRequest struct {
	Type    string                `json:"type"` // local_business, organization, faq_page
	Profile model.BusinessProfile `json:"profile"`
	SameAs  []string              `json:"same_as,omitempty"`
}

type schemaResponse struct {
	Schema   map[string]any        `json:"schema"`
	Findings []model.SchemaFinding `json:"findings,omitempty"`
	HTML     string                `json:"html"`
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	var req schemaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var block map[string]any
	switch req.Type {
	case "", "local_business":
		block = schema.LocalBusiness(req.Profile)
	case "organization":
		block = schema.Organization(req.Profile)
	case "faq_page":
		block = schema.FAQPage(req.Profile.FAQs)
		if block == nil {
			writeError(w, http.StatusBadRequest, "faq_page requires at least one complete FAQ entry")
			return
		}
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown schema type: %s", req.Type))
		return
	}

	if len(req.SameAs) > 0 {
		block, _ = schema.MergeSameAs(block, req.SameAs)
	}

	findings := schema.Validate(block)
	if schema.HasErrors(findings) {
		writeJSON(w, http.StatusUnprocessableEntity, schemaResponse{Schema: block, Findings: findings})
		return
	}

	html, err := schema.HTMLScript(block)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, schemaResponse{Schema: block, Findings: findings, HTML: html})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
