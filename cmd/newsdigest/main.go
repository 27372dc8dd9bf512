package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/newsdigest/pkg/config"
	"github.com/umputun/newsdigest/pkg/content"
	"github.com/umputun/newsdigest/pkg/digest"
	"github.com/umputun/newsdigest/pkg/domain"
	"github.com/umputun/newsdigest/pkg/feed"
	"github.com/umputun/newsdigest/pkg/llm"
	"github.com/umputun/newsdigest/pkg/repository"
	"github.com/umputun/newsdigest/pkg/source"
)

// Opts with all CLI options
type Opts struct {
	Config      string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used if not set"`
	BaseURL     string `long:"base-url" env:"FEED_BASE_URL" description:"base URL for feed self and archive links"`
	OutputDir   string `short:"o" long:"out" env:"OUTPUT_DIR" description:"output directory for feed documents"`
	DB          string `long:"db" env:"DB" description:"state database DSN"`
	APIKey      string `long:"api-key" env:"OPENAI_API_KEY" description:"LLM API key"`
	PublishOnly bool   `long:"publish-only" description:"write committed feed documents again without running"`

	Digest struct {
		Threshold   int `long:"threshold" env:"THRESHOLD" description:"score an item has to cross"`
		ScanLimit   int `long:"scan-limit" env:"SCAN_LIMIT" description:"number of ranked items to scan"`
		BatchSize   int `long:"batch-size" env:"BATCH_SIZE" description:"maximum new entries per run"`
		HistorySize int `long:"history-size" env:"HISTORY_SIZE" description:"maximum entries kept in history"`
		PageSize    int `long:"page-size" env:"PAGE_SIZE" description:"entries per feed page"`
	} `group:"digest" namespace:"digest" env-namespace:"DIGEST"`

	// common options
	Dbg     bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Dbg, opts.APIKey)
	log.Printf("[INFO] starting newsdigest version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals, the run is aborted without commit
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[WARN] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		if errors.Is(err, domain.ErrStateCorrupt) {
			log.Print("[ERROR] persisted state is corrupted, fix or remove the database manually")
		}
		os.Exit(1)
	}
	log.Print("[INFO] done")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	store, err := repository.New(ctx, repository.Config{DSN: cfg.Database.DSN, Source: cfg.Source.Slug})
	if err != nil {
		return fmt.Errorf("failed to open state: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("[WARN] failed to close state: %v", err)
		}
	}()

	publisher := feed.NewPublisher(cfg.Feed.OutputDir)

	if opts.PublishOnly {
		runner := digest.NewRunner(digest.RunnerParams{Store: store, Publisher: publisher})
		n, err := runner.Republish(ctx)
		if err != nil {
			return fmt.Errorf("failed to publish: %w", err)
		}
		log.Printf("[INFO] published %d committed documents to %s", n, cfg.Feed.OutputDir)
		return nil
	}

	if last, err := store.LastRun(ctx); err == nil && last != nil {
		log.Printf("[INFO] previous run at %s published %d of %d selected",
			last.FinishedAt.Format(time.RFC3339), last.Published, last.Selected)
	}

	hn := source.NewHackerNews(source.HackerNewsParams{
		APIURL:     cfg.Source.APIURL,
		SiteURL:    cfg.Source.SiteURL,
		Timeout:    cfg.Source.Timeout,
		MaxWorkers: cfg.Source.MaxConcurrent,
		RateLimit:  cfg.Source.RateLimit,
		Retries:    cfg.Source.Retries,
	})

	enricher := digest.NewEnricher(digest.EnricherParams{
		Extractor:   content.NewHTTPExtractor(cfg.Extraction.Timeout, cfg.Extraction.UserAgent, cfg.Extraction.MaxArticleChars),
		Discussions: content.NewDiscussionFetcher(cfg.Extraction.Timeout, cfg.Extraction.UserAgent, cfg.Extraction.MaxThreadChars),
		Summarizer:  llm.NewSummarizer(cfg.LLM),
		MaxWorkers:  cfg.Extraction.MaxConcurrent,
		ItemTimeout: cfg.Extraction.ItemTimeout,
	})

	generator := feed.NewGenerator(feed.GeneratorParams{
		Title:      cfg.Feed.Title,
		SourceName: cfg.Source.Name,
		SiteURL:    cfg.Source.SiteURL,
		Slug:       cfg.Source.Slug,
		BaseURL:    cfg.Feed.BaseURL,
		PageSize:   cfg.Digest.PageSize,
	})

	runner := digest.NewRunner(digest.RunnerParams{
		Store:     store,
		Source:    hn,
		Pipeline:  enricher,
		Renderer:  generator,
		Publisher: publisher,
		Params: digest.Params{
			Threshold:   cfg.Digest.Threshold,
			ScanLimit:   cfg.Digest.ScanLimit,
			BatchSize:   cfg.Digest.BatchSize,
			HistorySize: cfg.Digest.HistorySize,
		},
	})

	res, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	st := res.Stats
	log.Printf("[INFO] run finished in %v: scanned %d, crossed %d, selected %d, published %d, failed %d, evicted %d, %d pages",
		st.FinishedAt.Sub(st.StartedAt).Round(time.Millisecond), st.Scanned, st.Crossed, st.Selected, st.Published, st.Failed,
		st.Evicted, res.Documents)
	return nil
}

// loadConfig reads the config file if set, otherwise uses defaults, and applies CLI overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}

	if opts.BaseURL != "" {
		cfg.Feed.BaseURL = opts.BaseURL
	}
	if opts.OutputDir != "" {
		cfg.Feed.OutputDir = opts.OutputDir
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	if opts.APIKey != "" {
		cfg.LLM.APIKey = opts.APIKey
	}
	if opts.Digest.Threshold != 0 {
		cfg.Digest.Threshold = opts.Digest.Threshold
	}
	if opts.Digest.ScanLimit != 0 {
		cfg.Digest.ScanLimit = opts.Digest.ScanLimit
	}
	if opts.Digest.BatchSize != 0 {
		cfg.Digest.BatchSize = opts.Digest.BatchSize
	}
	if opts.Digest.HistorySize != 0 {
		cfg.Digest.HistorySize = opts.Digest.HistorySize
	}
	if opts.Digest.PageSize != 0 {
		cfg.Digest.PageSize = opts.Digest.PageSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
