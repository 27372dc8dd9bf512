// Package source provides ranking sources returning ordered story lists
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/umputun/newsdigest/pkg/domain"
)

// errPermanent marks responses that won't get better on retry
var errPermanent = errors.New("permanent error")

// HackerNews reads top stories from the Hacker News firebase API
type HackerNews struct {
	client     *http.Client
	apiURL     string
	siteURL    string
	limiter    *rate.Limiter
	maxWorkers int
	retries    int
	retryDelay time.Duration
}

// HackerNewsParams holds parameters for NewHackerNews
type HackerNewsParams struct {
	APIURL     string
	SiteURL    string
	Timeout    time.Duration
	MaxWorkers int
	RateLimit  float64 // requests per second, 0 means unlimited
	Retries    int
	RetryDelay time.Duration
}

// hnItem is the item representation of the firebase API
type hnItem struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Descendants int    `json:"descendants"`
	Deleted     bool   `json:"deleted"`
	Dead        bool   `json:"dead"`
}

// NewHackerNews makes a Hacker News ranking source
func NewHackerNews(params HackerNewsParams) *HackerNews {
	if params.MaxWorkers <= 0 {
		params.MaxWorkers = 8
	}
	if params.Retries <= 0 {
		params.Retries = 3
	}
	if params.RetryDelay == 0 {
		params.RetryDelay = 500 * time.Millisecond
	}
	if params.Timeout == 0 {
		params.Timeout = 20 * time.Second
	}
	limit := rate.Inf
	if params.RateLimit > 0 {
		limit = rate.Limit(params.RateLimit)
	}
	siteURL := strings.TrimRight(params.SiteURL, "/")
	if siteURL == "" {
		siteURL = "https://news.ycombinator.com"
	}

	return &HackerNews{
		client:     &http.Client{Timeout: params.Timeout},
		apiURL:     strings.TrimRight(params.APIURL, "/"),
		siteURL:    siteURL,
		limiter:    rate.NewLimiter(limit, params.MaxWorkers),
		maxWorkers: params.MaxWorkers,
		retries:    params.Retries,
		retryDelay: params.RetryDelay,
	}
}

// TopStories returns up to limit stories in ranking order. Items which are not stories,
// deleted or dead are skipped. Any failed request fails the whole call.
func (h *HackerNews) TopStories(ctx context.Context, limit int) ([]domain.Story, error) {
	var ids []int64
	if err := h.getJSON(ctx, h.apiURL+"/topstories.json", &ids); err != nil {
		return nil, fmt.Errorf("get top stories: %w", err)
	}
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	lgr.Printf("[DEBUG] fetching %d top stories", len(ids))

	items := make([]*hnItem, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.maxWorkers)
	for i, id := range ids {
		g.Go(func() error {
			var item *hnItem
			if err := h.getJSON(gctx, fmt.Sprintf("%s/item/%d.json", h.apiURL, id), &item); err != nil {
				return fmt.Errorf("get item %d: %w", id, err)
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := make([]domain.Story, 0, len(items))
	for i, item := range items {
		if item == nil || item.Type != "story" || item.Deleted || item.Dead {
			continue
		}
		res = append(res, h.toStory(i+1, item))
	}
	lgr.Printf("[DEBUG] got %d stories out of %d ranked items", len(res), len(ids))
	return res, nil
}

func (h *HackerNews) toStory(rank int, item *hnItem) domain.Story {
	id := strconv.FormatInt(item.ID, 10)
	return domain.Story{
		ID:          id,
		Rank:        rank,
		Score:       item.Score,
		Title:       item.Title,
		URL:         item.URL,
		CommentsURL: h.siteURL + "/item?id=" + id,
		Text:        item.Text,
		Comments:    item.Descendants,
		PostedAt:    time.Unix(item.Time, 0).UTC(),
	}
}

// getJSON fetches url and decodes the response into res, retrying transient failures
func (h *HackerNews) getJSON(ctx context.Context, url string, res any) error {
	retrier := repeater.NewBackoff(h.retries, h.retryDelay, repeater.WithMaxDelay(5*time.Second))
	return retrier.Do(ctx, func() error {
		if err := h.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return fmt.Errorf("%w: create request: %w", errPermanent, err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := h.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", url, err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("%w: unexpected status code %d for %s", errPermanent, resp.StatusCode, url)
		}

		if err := json.NewDecoder(resp.Body).Decode(res); err != nil {
			return fmt.Errorf("decode %s: %w", url, err)
		}
		return nil
	}, errPermanent)
}
