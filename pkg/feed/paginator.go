package feed

import (
	"fmt"
	"strings"

	"github.com/umputun/newsdigest/pkg/domain"
)

// CurrentFile is the name of the current (newest) feed document
const CurrentFile = "feed.xml"

// Page is a slice of history rendered as one document
type Page struct {
	Index   int
	Entries []domain.Entry
	Self    string
	Current string
	Next    string // newer archive, RFC 5005 next-archive
	Prev    string // older archive, RFC 5005 prev-archive
}

// IsArchive reports whether the page is an archive document
func (p Page) IsArchive() bool { return p.Index > 0 }

// Paginator splits history into fixed-size pages linked as an RFC 5005 archived feed
type Paginator struct {
	pageSize int
	baseURL  string
}

// NewPaginator makes a paginator. Links are absolute when baseURL is set, bare file names otherwise.
func NewPaginator(pageSize int, baseURL string) *Paginator {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Paginator{pageSize: pageSize, baseURL: strings.TrimRight(baseURL, "/")}
}

// FileName returns document name for the page index, feed.xml for 0 and feed-N.xml otherwise
func FileName(idx int) string {
	if idx == 0 {
		return CurrentFile
	}
	return fmt.Sprintf("feed-%d.xml", idx)
}

// PageCount returns number of pages for history of size n, always at least one
func (p *Paginator) PageCount(n int) int {
	if n <= 0 {
		return 1
	}
	return (n + p.pageSize - 1) / p.pageSize
}

// Paginate splits newest-first history into pages. Page 0 holds the newest entries,
// the last page holds the oldest. Empty history gives a single empty current page.
func (p *Paginator) Paginate(history []domain.Entry) []Page {
	count := p.PageCount(len(history))
	res := make([]Page, 0, count)
	for idx := range count {
		lo := idx * p.pageSize
		hi := min(lo+p.pageSize, len(history))
		page := Page{
			Index:   idx,
			Entries: history[min(lo, len(history)):hi],
			Self:    p.url(idx),
			Current: p.url(0),
		}
		if idx >= 2 {
			page.Next = p.url(idx - 1)
		}
		if idx+1 < count {
			page.Prev = p.url(idx + 1)
		}
		res = append(res, page)
	}
	return res
}

func (p *Paginator) url(idx int) string {
	if p.baseURL == "" {
		return FileName(idx)
	}
	return p.baseURL + "/" + FileName(idx)
}
