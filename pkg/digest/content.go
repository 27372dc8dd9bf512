package digest

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/umputun/newsdigest/pkg/domain"
)

// BuildEntry makes a feed entry from an enriched story. Content is rendered once here
// and never changes afterwards.
func BuildEntry(story domain.Story, enr domain.Enrichment, now time.Time) domain.Entry {
	return domain.Entry{
		ID:           story.ID,
		Title:        story.Title,
		Link:         story.Link(),
		CommentsLink: story.CommentsURL,
		Score:        story.Score,
		Comments:     story.Comments,
		Content:      renderContent(story, enr),
		PublishedAt:  now,
		UpdatedAt:    now,
	}
}

// renderContent builds html body of an entry: stats, links and both summaries
func renderContent(story domain.Story, enr domain.Enrichment) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<p><strong>Points:</strong> %d</p>", story.Score)
	fmt.Fprintf(&sb, "<p><strong>Total comments:</strong> %d</p>", story.Comments)

	if story.URL != "" {
		esc := html.EscapeString(story.URL)
		fmt.Fprintf(&sb, `<p><strong>Link:</strong> <a href="%s">%s</a></p>`, esc, esc)
	} else {
		sb.WriteString("<p><strong>Link:</strong> (none)</p>")
	}

	fmt.Fprintf(&sb, "<p><strong>Article summary:</strong> %s</p>", html.EscapeString(enr.Summary))

	switch {
	case strings.TrimSpace(enr.DiscussionSummary) == "":
		sb.WriteString("<p><strong>Comments summary:</strong> (no comments yet)</p>")
	case !hasBullets(enr.DiscussionSummary):
		fmt.Fprintf(&sb, "<p><strong>Comments summary:</strong> %s</p>", html.EscapeString(enr.DiscussionSummary))
	default:
		sb.WriteString("<p><strong>Comments summary:</strong></p>")
		sb.WriteString(renderLines(enr.DiscussionSummary))
	}

	if story.CommentsURL != "" {
		esc := html.EscapeString(story.CommentsURL)
		fmt.Fprintf(&sb, `<p><strong>HN thread:</strong> <a href="%s">%s</a></p>`, esc, esc)
	}
	return sb.String()
}

// hasBullets reports whether any line of s starts with "-"
func hasBullets(s string) bool {
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "-") {
			return true
		}
	}
	return false
}

// renderLines renders "-" lines as list items, consecutive ones sharing a list, and other
// non-empty lines as paragraphs
func renderLines(s string) string {
	var sb strings.Builder
	inList := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if item, ok := strings.CutPrefix(line, "-"); ok {
			if !inList {
				sb.WriteString("<ul>")
				inList = true
			}
			fmt.Fprintf(&sb, "<li>%s</li>", html.EscapeString(strings.TrimSpace(item)))
			continue
		}
		if inList {
			sb.WriteString("</ul>")
			inList = false
		}
		fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(line))
	}
	if inList {
		sb.WriteString("</ul>")
	}
	return sb.String()
}
