package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Source SourceConfig `yaml:"source" json:"source" jsonschema:"description=Ranking source configuration"`

	Digest DigestConfig `yaml:"digest" json:"digest" jsonschema:"description=Crossing detection and history settings"`

	Feed FeedConfig `yaml:"feed" json:"feed" jsonschema:"description=Published feed configuration"`

	Database struct {
		DSN string `yaml:"dsn" json:"dsn" jsonschema:"default=file:newsdigest.db?mode=rwc&_txlock=immediate,description=State database connection string"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for summaries"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Content extraction configuration"`
}

// SourceConfig holds ranking source settings
type SourceConfig struct {
	Slug          string        `yaml:"slug" json:"slug" jsonschema:"default=hn,description=Short source name, keys persisted state"`
	Name          string        `yaml:"name" json:"name" jsonschema:"default=Hacker News,description=Human readable source name"`
	SiteURL       string        `yaml:"site_url" json:"site_url" jsonschema:"default=https://news.ycombinator.com/,description=Source site URL"`
	APIURL        string        `yaml:"api_url" json:"api_url" jsonschema:"default=https://hacker-news.firebaseio.com/v0,description=Source API URL"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=20s,description=Request timeout"`
	MaxConcurrent int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=8,description=Maximum concurrent item requests"`
	RateLimit     float64       `yaml:"rate_limit" json:"rate_limit" jsonschema:"default=20,description=Maximum requests per second"`
	Retries       int           `yaml:"retries" json:"retries" jsonschema:"default=3,description=Attempts per request"`
}

// DigestConfig holds run parameters for crossing detection, selection and history
type DigestConfig struct {
	Threshold   int `yaml:"threshold" json:"threshold" jsonschema:"default=100,minimum=1,description=Score an item has to cross"`
	ScanLimit   int `yaml:"scan_limit" json:"scan_limit" jsonschema:"default=500,minimum=1,description=Number of ranked items to scan"`
	BatchSize   int `yaml:"batch_size" json:"batch_size" jsonschema:"default=8,minimum=1,description=Maximum new entries per run"`
	HistorySize int `yaml:"history_size" json:"history_size" jsonschema:"default=200,minimum=1,description=Maximum entries kept for rendering"`
	PageSize    int `yaml:"page_size" json:"page_size" jsonschema:"default=200,minimum=1,description=Entries per feed page"`
}

// FeedConfig holds published feed settings
type FeedConfig struct {
	Title     string `yaml:"title" json:"title" jsonschema:"description=Feed title, derived from source and threshold if empty"`
	BaseURL   string `yaml:"base_url" json:"base_url" jsonschema:"description=Base URL for self and archive links"`
	OutputDir string `yaml:"output_dir" json:"output_dir" jsonschema:"default=out,description=Directory for published documents"`
}

// LLMConfig holds LLM configuration for summaries
type LLMConfig struct {
	Endpoint         string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://api.openai.com/v1,description=OpenAI-compatible API endpoint"`
	APIKey           string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model            string        `yaml:"model" json:"model" jsonschema:"default=gpt-4.1-mini,description=Model name"`
	Temperature      float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens        int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=800,description=Maximum tokens in response"`
	Timeout          time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Request timeout"`
	ArticlePrompt    string        `yaml:"article_prompt" json:"article_prompt" jsonschema:"description=System prompt for article summaries (optional)"`
	DiscussionPrompt string        `yaml:"discussion_prompt" json:"discussion_prompt" jsonschema:"description=System prompt for discussion summaries (optional)"`
}

// ExtractionConfig holds content extraction settings
type ExtractionConfig struct {
	Timeout         time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=25s,description=HTTP timeout per page"`
	ItemTimeout     time.Duration `yaml:"item_timeout" json:"item_timeout" jsonschema:"default=3m,description=Total time allowed to enrich one item"`
	UserAgent       string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Mozilla/5.0 (compatible; NewsDigest/1.0),description=User agent for HTTP requests"`
	MaxArticleChars int           `yaml:"max_article_chars" json:"max_article_chars" jsonschema:"default=30000,description=Article text limit sent to the LLM"`
	MaxThreadChars  int           `yaml:"max_thread_chars" json:"max_thread_chars" jsonschema:"default=100000,description=Discussion text limit sent to the LLM"`
	MaxConcurrent   int           `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=4,description=Maximum concurrent enrichments"`
}

// Default returns configuration with all defaults set
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	// validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// source
	if cfg.Source.Slug == "" {
		cfg.Source.Slug = "hn"
	}
	if cfg.Source.Name == "" {
		cfg.Source.Name = "Hacker News"
	}
	if cfg.Source.SiteURL == "" {
		cfg.Source.SiteURL = "https://news.ycombinator.com/"
	}
	if cfg.Source.APIURL == "" {
		cfg.Source.APIURL = "https://hacker-news.firebaseio.com/v0"
	}
	if cfg.Source.Timeout == 0 {
		cfg.Source.Timeout = 20 * time.Second
	}
	if cfg.Source.MaxConcurrent == 0 {
		cfg.Source.MaxConcurrent = 8
	}
	if cfg.Source.RateLimit == 0 {
		cfg.Source.RateLimit = 20
	}
	if cfg.Source.Retries == 0 {
		cfg.Source.Retries = 3
	}

	// digest
	if cfg.Digest.Threshold == 0 {
		cfg.Digest.Threshold = 100
	}
	if cfg.Digest.ScanLimit == 0 {
		cfg.Digest.ScanLimit = 500
	}
	if cfg.Digest.BatchSize == 0 {
		cfg.Digest.BatchSize = 8
	}
	if cfg.Digest.HistorySize == 0 {
		cfg.Digest.HistorySize = 200
	}
	if cfg.Digest.PageSize == 0 {
		cfg.Digest.PageSize = 200
	}

	// feed
	if cfg.Feed.OutputDir == "" {
		cfg.Feed.OutputDir = "out"
	}
	if cfg.Feed.Title == "" {
		cfg.Feed.Title = fmt.Sprintf("News digest (%s %d+ points)", cfg.Source.Name, cfg.Digest.Threshold)
	}

	// database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:newsdigest.db?mode=rwc&_txlock=immediate"
	}

	// llm
	if cfg.LLM.Endpoint == "" {
		cfg.LLM.Endpoint = "https://api.openai.com/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4.1-mini"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 800
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60 * time.Second
	}

	// extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 25 * time.Second
	}
	if cfg.Extraction.ItemTimeout == 0 {
		cfg.Extraction.ItemTimeout = 3 * time.Minute
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = "Mozilla/5.0 (compatible; NewsDigest/1.0)"
	}
	if cfg.Extraction.MaxArticleChars == 0 {
		cfg.Extraction.MaxArticleChars = 30000
	}
	if cfg.Extraction.MaxThreadChars == 0 {
		cfg.Extraction.MaxThreadChars = 100000
	}
	if cfg.Extraction.MaxConcurrent == 0 {
		cfg.Extraction.MaxConcurrent = 4
	}
}

// Validate checks configuration for correctness
func (c *Config) Validate() error {
	if c.Source.Slug == "" {
		return fmt.Errorf("source.slug is required")
	}
	if c.Source.APIURL == "" {
		return fmt.Errorf("source.api_url is required")
	}
	if c.Source.MaxConcurrent < 1 {
		return fmt.Errorf("source.max_concurrent must be at least 1")
	}
	if c.Source.RateLimit < 0 {
		return fmt.Errorf("source.rate_limit must be non-negative")
	}

	// digest parameters drive invariants, all have to be positive
	if c.Digest.Threshold < 1 {
		return fmt.Errorf("digest.threshold must be at least 1")
	}
	if c.Digest.ScanLimit < 1 {
		return fmt.Errorf("digest.scan_limit must be at least 1")
	}
	if c.Digest.BatchSize < 1 {
		return fmt.Errorf("digest.batch_size must be at least 1")
	}
	if c.Digest.HistorySize < 1 {
		return fmt.Errorf("digest.history_size must be at least 1")
	}
	if c.Digest.PageSize < 1 {
		return fmt.Errorf("digest.page_size must be at least 1")
	}

	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}

	if c.Extraction.Timeout < time.Second {
		return fmt.Errorf("extraction timeout must be at least 1 second")
	}
	if c.Extraction.MaxConcurrent < 1 {
		return fmt.Errorf("extraction.max_concurrent must be at least 1")
	}
	if c.Extraction.MaxArticleChars < 0 || c.Extraction.MaxThreadChars < 0 {
		return fmt.Errorf("extraction char limits must be non-negative")
	}

	return nil
}
