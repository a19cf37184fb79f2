package model

import "time"

// Config is the complete aeoscan configuration
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Extraction  ExtractionConfig  `yaml:"extraction"`
	Questions   QuestionsConfig   `yaml:"questions"`
	SameAs      SameAsConfig      `yaml:"sameas"`
	Server      ServerConfig      `yaml:"server"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls outbound HTTP behavior
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	InsecureTLS   bool          `yaml:"insecure_tls"`
	HTTPProxy     string        `yaml:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots"`
}

// CacheConfig controls the fetch/question caches
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Dir       string        `yaml:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl"`
}

// ConcurrencyConfig bounds parallel work
type ConcurrencyConfig struct {
	Workers      int `yaml:"workers"`       // Batch audit workers
	CheckBatch   int `yaml:"check_batch"`   // Profile checks in flight per batch
	CheckWorkers int `yaml:"check_workers"` // Upper bound on concurrent profile checks
}

// RateLimitConfig controls per-domain request pacing
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// ExtractionConfig tunes the citation extractor
type ExtractionConfig struct {
	MaxCitations        int      `yaml:"max_citations"`
	ConfidenceThreshold float64  `yaml:"confidence_threshold"`
	ExtractTitles       bool     `yaml:"extract_titles"`
	TrustedDomains      []string `yaml:"trusted_domains"`
}

// QuestionsConfig selects and tunes the candidate question source
type QuestionsConfig struct {
	Provider     string        `yaml:"provider"` // static, openai, or empty to disable
	Model        string        `yaml:"model"`
	APIKey       string        `yaml:"api_key"`
	BaseURL      string        `yaml:"base_url"`
	MaxQuestions int           `yaml:"max_questions"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
}

// SameAsConfig tunes profile validation
type SameAsConfig struct {
	RequireMinimum   int           `yaml:"require_minimum"`
	CheckReciprocity bool          `yaml:"check_reciprocity"`
	CheckTimeout     time.Duration `yaml:"check_timeout"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       2 * time.Minute,
			UserAgent:     "aeoscan/0.3 (+https://github.com/xenlixai/aeoscan)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers:      4,
			CheckBatch:   5,
			CheckWorkers: 5,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Extraction: ExtractionConfig{
			MaxCitations:        20,
			ConfidenceThreshold: 0.3,
			TrustedDomains: []string{
				"wikipedia.org", "nih.gov", "cdc.gov", "who.int",
				"nature.com", "sciencedirect.com", "reuters.com", "apnews.com",
			},
		},
		Questions: QuestionsConfig{
			Provider:     "static",
			Model:        "gpt-4o-mini",
			MaxQuestions: 10,
			CacheTTL:     6 * time.Hour,
		},
		SameAs: SameAsConfig{
			RequireMinimum:   3,
			CheckReciprocity: false,
			CheckTimeout:     8 * time.Second,
		},
		Server: ServerConfig{
			Port:            8080,
			ShutdownTimeout: 10 * time.Second,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
