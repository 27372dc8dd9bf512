// Package feed renders feed history into paged Atom documents and publishes them
package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/umputun/newsdigest/pkg/domain"
)

// Generator creates Atom documents from feed history
type Generator struct {
	paginator *Paginator
	title     string
	siteURL   string
	source    string
	feedID    string
}

// GeneratorParams holds parameters for NewGenerator
type GeneratorParams struct {
	Title      string
	SourceName string
	SiteURL    string
	Slug       string // keys the feed id, has to stay the same between runs
	BaseURL    string
	PageSize   int
}

// NewGenerator creates a new feed generator
func NewGenerator(params GeneratorParams) *Generator {
	return &Generator{
		paginator: NewPaginator(params.PageSize, params.BaseURL),
		title:     params.Title,
		siteURL:   params.SiteURL,
		source:    params.SourceName,
		feedID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte(params.SiteURL+"#"+params.Slug)).URN(),
	}
}

// EntryID returns the stable Atom id of an entry, derived from its permalink
func EntryID(e domain.Entry) string {
	permalink := e.CommentsLink
	if permalink == "" {
		permalink = e.Link
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(permalink)).URN()
}

// Render builds all documents for the history, index 0 first. Every document is parsed back
// before it is returned, any failure is reported as domain.ErrRender.
func (g *Generator) Render(history []domain.Entry, now time.Time) ([]domain.Document, error) {
	pages := g.paginator.Paginate(history)
	res := make([]domain.Document, 0, len(pages))
	for _, page := range pages {
		body, err := g.renderPage(page, now)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", domain.ErrRender, page.Index, err)
		}
		if err := validate(body, len(page.Entries)); err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", domain.ErrRender, page.Index, err)
		}
		res = append(res, domain.Document{
			Index:   page.Index,
			Name:    FileName(page.Index),
			Body:    body,
			Entries: len(page.Entries),
		})
	}
	return res, nil
}

func (g *Generator) renderPage(page Page, now time.Time) ([]byte, error) {
	// feed updated is the newest entry of the page, entries are newest first
	updated := now
	if len(page.Entries) > 0 {
		updated = page.Entries[0].UpdatedAt
	}

	title := g.title
	if page.IsArchive() {
		title = fmt.Sprintf("%s (archive %d)", g.title, page.Index)
	}

	links := []AtomLink{
		{Href: page.Self, Rel: "self", Type: "application/atom+xml"},
		{Href: page.Current, Rel: "current", Type: "application/atom+xml"},
	}
	if g.siteURL != "" {
		links = append(links, AtomLink{Href: g.siteURL, Rel: "alternate", Type: "text/html"})
	}
	if page.Next != "" {
		links = append(links, AtomLink{Href: page.Next, Rel: "next-archive", Type: "application/atom+xml"})
	}
	if page.Prev != "" {
		links = append(links, AtomLink{Href: page.Prev, Rel: "prev-archive", Type: "application/atom+xml"})
	}

	feed := &AtomFeed{
		ID:        g.feedID,
		Title:     title,
		Updated:   updated.UTC().Format(time.RFC3339),
		Author:    &AtomAuthor{Name: g.source, URI: g.siteURL},
		Generator: "newsdigest",
		Links:     links,
		Entries:   make([]AtomEntry, 0, len(page.Entries)),
	}
	if page.IsArchive() {
		feed.Archive = &ArchiveMark{}
	}
	for _, e := range page.Entries {
		feed.Entries = append(feed.Entries, g.convertToAtomEntry(e))
	}

	output, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal atom: %w", err)
	}
	return append([]byte(xml.Header), output...), nil
}

// convertToAtomEntry converts a history entry to an Atom entry
func (g *Generator) convertToAtomEntry(e domain.Entry) AtomEntry {
	var links []AtomLink
	if e.Link != "" {
		links = append(links, AtomLink{Href: e.Link, Rel: "alternate", Type: "text/html"})
	}
	if e.CommentsLink != "" && e.CommentsLink != e.Link {
		links = append(links, AtomLink{Href: e.CommentsLink, Rel: "related", Type: "text/html"})
	}

	return AtomEntry{
		ID:        EntryID(e),
		Title:     e.Title,
		Links:     links,
		Published: e.PublishedAt.UTC().Format(time.RFC3339),
		Updated:   e.UpdatedAt.UTC().Format(time.RFC3339),
		Summary:   &AtomText{Type: "text", Body: fmt.Sprintf("%d points, %d comments", e.Score, e.Comments)},
		Content:   &AtomText{Type: "html", Body: e.Content},
	}
}

// validate parses the document back and checks it is a well-formed atom feed with all entries
func validate(body []byte, entries int) error {
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parse back: %w", err)
	}
	if parsed.FeedType != "atom" {
		return fmt.Errorf("unexpected feed type %q", parsed.FeedType)
	}
	if strings.TrimSpace(parsed.Title) == "" {
		return fmt.Errorf("empty feed title")
	}
	if len(parsed.Items) != entries {
		return fmt.Errorf("parsed %d entries, expected %d", len(parsed.Items), entries)
	}
	for i, item := range parsed.Items {
		if item.GUID == "" || item.UpdatedParsed == nil {
			return fmt.Errorf("entry %d missing id or updated", i)
		}
	}
	return nil
}
