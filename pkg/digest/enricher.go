package digest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/newsdigest/pkg/content"
	"github.com/umputun/newsdigest/pkg/domain"
)

//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . ArticleExtractor
//go:generate moq -out mocks/discussion.go -pkg mocks -skip-ensure -fmt goimports . DiscussionFetcher
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer

// ArticleExtractor returns main text of a web page
type ArticleExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// DiscussionFetcher returns flattened text of a discussion thread
type DiscussionFetcher interface {
	FetchDiscussion(ctx context.Context, url string) (string, error)
}

// Summarizer makes short summaries of articles and discussions
type Summarizer interface {
	SummarizeArticle(ctx context.Context, story domain.Story, text string) (string, error)
	SummarizeDiscussion(ctx context.Context, story domain.Story, thread string) (string, error)
}

// Enricher summarizes candidates concurrently. Failure of one candidate never affects others.
type Enricher struct {
	extractor   ArticleExtractor
	discussions DiscussionFetcher
	summarizer  Summarizer
	maxWorkers  int
	itemTimeout time.Duration
}

// EnricherParams holds parameters for NewEnricher
type EnricherParams struct {
	Extractor   ArticleExtractor
	Discussions DiscussionFetcher
	Summarizer  Summarizer
	MaxWorkers  int
	ItemTimeout time.Duration // total time for one candidate, 0 means no limit
}

// NewEnricher makes an enricher
func NewEnricher(params EnricherParams) *Enricher {
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 4
	}
	return &Enricher{
		extractor:   params.Extractor,
		discussions: params.Discussions,
		summarizer:  params.Summarizer,
		maxWorkers:  params.MaxWorkers,
		itemTimeout: params.ItemTimeout,
	}
}

// Enrich runs enrichment for all candidates with bounded concurrency and returns outcomes
// in candidates order, one per candidate
func (e *Enricher) Enrich(ctx context.Context, candidates []domain.Story) []domain.Outcome {
	res := make([]domain.Outcome, len(candidates))
	var g errgroup.Group
	g.SetLimit(e.maxWorkers)
	for i, story := range candidates {
		g.Go(func() error {
			started := time.Now()
			enr, err := e.enrichOne(ctx, story)
			res[i] = domain.Outcome{Story: story, Enrichment: enr, Err: err}
			if err != nil {
				lgr.Printf("[WARN] failed to enrich %s %q: %v", story.ID, story.Title, err)
				return nil // one failed candidate never stops others
			}
			lgr.Printf("[DEBUG] enriched %s %q in %v", story.ID, story.Title, time.Since(started).Round(time.Millisecond))
			return nil
		})
	}
	_ = g.Wait()
	return res
}

// enrichOne makes article and discussion summaries for a single story
func (e *Enricher) enrichOne(ctx context.Context, story domain.Story) (domain.Enrichment, error) {
	if e.itemTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.itemTimeout)
		defer cancel()
	}

	// thread is needed for the discussion summary and as article text of bare self posts
	var thread string
	if story.Comments > 0 || (story.URL == "" && story.Text == "") {
		t, err := e.discussions.FetchDiscussion(ctx, story.CommentsURL)
		if err != nil {
			return domain.Enrichment{}, fmt.Errorf("fetch discussion: %w", err)
		}
		thread = t
	}

	text, err := e.articleText(ctx, story, thread)
	if err != nil {
		return domain.Enrichment{}, err
	}

	var res domain.Enrichment
	if res.Summary, err = e.summarizer.SummarizeArticle(ctx, story, text); err != nil {
		return domain.Enrichment{}, fmt.Errorf("summarize article: %w", err)
	}

	if thread != "" {
		if res.DiscussionSummary, err = e.summarizer.SummarizeDiscussion(ctx, story, thread); err != nil {
			return domain.Enrichment{}, fmt.Errorf("summarize discussion: %w", err)
		}
	}
	return res, nil
}

// articleText returns text to summarize: the linked article, the self post body or the thread
func (e *Enricher) articleText(ctx context.Context, story domain.Story, thread string) (string, error) {
	switch {
	case story.URL != "":
		text, err := e.extractor.Extract(ctx, story.URL)
		if err != nil {
			return "", fmt.Errorf("extract article: %w", err)
		}
		return text, nil
	case story.Text != "":
		if text := content.StripHTML(story.Text); text != "" {
			return text, nil
		}
	}
	if thread == "" {
		return "", errors.New("no article link, post text or discussion")
	}
	return thread, nil
}
