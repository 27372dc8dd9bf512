package content

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DiscussionFetcher loads a discussion thread page and flattens it into indented text
type DiscussionFetcher struct {
	client    *http.Client
	userAgent string
	maxChars  int
}

// NewDiscussionFetcher creates a thread fetcher. maxChars limits returned text, 0 means no limit.
func NewDiscussionFetcher(timeout time.Duration, userAgent string, maxChars int) *DiscussionFetcher {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &DiscussionFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		maxChars:  maxChars,
	}
}

// FetchDiscussion returns the comments of the thread at urlStr, one "- " line per comment,
// nested replies indented by two spaces per level
func (d *DiscussionFetcher) FetchDiscussion(ctx context.Context, urlStr string) (string, error) {
	if _, err := parseURL(urlStr); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	addBrowserHeaders(req)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch discussion %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for discussion %s", resp.StatusCode, urlStr)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse discussion %s: %w", urlStr, err)
	}

	text := flattenThread(doc)
	if text == "" {
		return "", fmt.Errorf("no comments in discussion %s", urlStr)
	}
	return Truncate(text, d.maxChars), nil
}

// flattenThread walks comment rows in page order
func flattenThread(doc *goquery.Document) string {
	var sb strings.Builder
	doc.Find("tr.comtr").Each(func(_ int, row *goquery.Selection) {
		body := row.Find(".commtext").First()
		if body.Length() == 0 {
			return // deleted or flagged comment
		}
		// reply links live inside the comment body
		body.Find(".reply").Remove()
		text := strings.Join(strings.Fields(body.Text()), " ")
		if text == "" {
			return
		}

		level := 0
		if v, ok := row.Find("td.ind").First().Attr("indent"); ok {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				level = n
			}
		}
		sb.WriteString(strings.Repeat("  ", level))
		sb.WriteString("- ")
		sb.WriteString(text)
		sb.WriteString("\n")
	})
	return strings.TrimRight(sb.String(), "\n")
}
