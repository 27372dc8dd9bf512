package domain

import "time"

// Story represents a single ranked item returned by the ranking source
type Story struct {
	ID          string
	Rank        int // 1-based position in the source ranking
	Score       int
	Title       string
	URL         string // external article link, empty for self posts
	CommentsURL string
	Text        string // self post body (HTML), if any
	Comments    int
	PostedAt    time.Time
}

// Link returns the primary link of the story, falling back to the discussion page
func (s Story) Link() string {
	if s.URL != "" {
		return s.URL
	}
	return s.CommentsURL
}

// Enrichment holds summaries produced for a story
type Enrichment struct {
	Summary           string
	DiscussionSummary string
}

// Entry represents a published feed entry. Entries are created once and never modified.
type Entry struct {
	ID           string // source item id
	Title        string
	Link         string
	CommentsLink string
	Score        int
	Comments     int
	Content      string // rendered HTML body
	PublishedAt  time.Time
	UpdatedAt    time.Time
}

// Outcome is the result of enriching a single candidate, Err is set when enrichment failed
type Outcome struct {
	Story      Story
	Enrichment Enrichment
	Err        error
}
