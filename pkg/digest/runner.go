package digest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsdigest/pkg/domain"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/source.go -pkg mocks -skip-ensure -fmt goimports . Source
//go:generate moq -out mocks/pipeline.go -pkg mocks -skip-ensure -fmt goimports . Pipeline
//go:generate moq -out mocks/renderer.go -pkg mocks -skip-ensure -fmt goimports . Renderer
//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher

// Store loads and atomically commits persisted state
type Store interface {
	Load(ctx context.Context) (*domain.State, error)
	Commit(ctx context.Context, c domain.Commit) error
	Documents(ctx context.Context) ([]domain.Document, error)
}

// Source returns the current ranked list, best first
type Source interface {
	TopStories(ctx context.Context, limit int) ([]domain.Story, error)
}

// Pipeline enriches candidates, one outcome per candidate in the same order
type Pipeline interface {
	Enrich(ctx context.Context, candidates []domain.Story) []domain.Outcome
}

// Renderer builds feed documents from history
type Renderer interface {
	Render(history []domain.Entry, now time.Time) ([]domain.Document, error)
}

// Publisher exposes committed documents
type Publisher interface {
	Publish(ctx context.Context, docs []domain.Document) error
}

// Params holds run parameters
type Params struct {
	Threshold   int
	ScanLimit   int
	BatchSize   int
	HistorySize int
}

// Runner coordinates a single run: load, fetch, detect, select, enrich, update history,
// render, commit and publish. Nothing is persisted unless the whole run succeeds up to commit.
type Runner struct {
	store     Store
	source    Source
	pipeline  Pipeline
	renderer  Renderer
	publisher Publisher
	params    Params
	now       func() time.Time
}

// RunnerParams holds dependencies and parameters for NewRunner
type RunnerParams struct {
	Store     Store
	Source    Source
	Pipeline  Pipeline
	Renderer  Renderer
	Publisher Publisher
	Params    Params
}

// RunResult describes a finished run
type RunResult struct {
	Stats     domain.RunStats
	Published []string // ids of new entries, newest first
	Evicted   []string // ids dropped from history
	Withheld  []string // ids failed enrichment, scores not recorded
	Documents int
}

// NewRunner makes a runner
func NewRunner(params RunnerParams) *Runner {
	return &Runner{
		store:     params.Store,
		source:    params.Source,
		pipeline:  params.Pipeline,
		renderer:  params.Renderer,
		publisher: params.Publisher,
		params:    params.Params,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run performs one run. Errors wrap domain.ErrTransientFetch, domain.ErrStateCorrupt or
// domain.ErrRender where applicable; on any error before commit state is left untouched.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	started := r.now()
	res := &RunResult{Stats: domain.RunStats{StartedAt: started}}

	state, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	lgr.Printf("[DEBUG] loaded state: %d scores, %d published, %d in history",
		len(state.Scores), len(state.Published), len(state.History))

	ranked, err := r.source.TopStories(ctx, r.params.ScanLimit)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("run canceled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrTransientFetch, err)
	}
	res.Stats.Scanned = len(ranked)

	crossed := DetectCrossings(ranked, state.Scores, r.params.Threshold)
	candidates := SelectCandidates(crossed, state.Published, r.params.BatchSize)
	res.Stats.Crossed, res.Stats.Selected = len(crossed), len(candidates)
	lgr.Printf("[INFO] scanned %d stories, %d crossed %d points, %d selected",
		len(ranked), len(crossed), r.params.Threshold, len(candidates))

	var outcomes []domain.Outcome
	if len(candidates) > 0 {
		outcomes = r.pipeline.Enrich(ctx, candidates)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run canceled: %w", err)
	}

	now := r.now()
	withheld := map[string]bool{}
	batch := make([]domain.Entry, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err != nil {
			withheld[o.Story.ID] = true
			res.Withheld = append(res.Withheld, o.Story.ID)
			continue
		}
		batch = append(batch, BuildEntry(o.Story, o.Enrichment, now))
		res.Published = append(res.Published, o.Story.ID)
	}
	res.Stats.Published, res.Stats.Failed = len(batch), len(withheld)

	history, evicted := PrependHistory(state.History, batch, r.params.HistorySize)
	for _, e := range evicted {
		res.Evicted = append(res.Evicted, e.ID)
		lgr.Printf("[DEBUG] evicted %s %q from history", e.ID, e.Title)
	}
	res.Stats.Evicted = len(evicted)

	docs, err := r.renderer.Render(history, now)
	if err != nil {
		if !errors.Is(err, domain.ErrRender) {
			err = fmt.Errorf("%w: %w", domain.ErrRender, err)
		}
		return nil, fmt.Errorf("render feed: %w", err)
	}
	res.Documents = len(docs)

	res.Stats.FinishedAt = r.now()
	commit := domain.Commit{
		Scores:    RecordScores(ranked, withheld),
		Published: res.Published,
		History:   history,
		Documents: docs,
		Run:       res.Stats,
	}
	if err := r.store.Commit(ctx, commit); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	lgr.Printf("[INFO] committed %d new entries, %d failed, %d evicted, %d pages",
		len(batch), len(withheld), len(evicted), len(docs))

	if err := r.publisher.Publish(ctx, docs); err != nil {
		return res, fmt.Errorf("publish committed feed: %w", err)
	}
	return res, nil
}

// Republish writes committed documents again without running, returns number of documents
func (r *Runner) Republish(ctx context.Context) (int, error) {
	docs, err := r.store.Documents(ctx)
	if err != nil {
		return 0, fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		return 0, errors.New("nothing committed yet")
	}
	if err := r.publisher.Publish(ctx, docs); err != nil {
		return 0, fmt.Errorf("publish committed feed: %w", err)
	}
	return len(docs), nil
}
