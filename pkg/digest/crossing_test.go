package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/newsdigest/pkg/domain"
)

func story(id string, score int) domain.Story {
	return domain.Story{ID: id, Score: score, Title: "Story " + id, URL: "https://example.com/" + id,
		CommentsURL: "https://news.example.com/item?id=" + id, Comments: 10}
}

func ids(stories []domain.Story) []string {
	res := make([]string, 0, len(stories))
	for _, s := range stories {
		res = append(res, s.ID)
	}
	return res
}

func TestDetectCrossings(t *testing.T) {
	tests := []struct {
		name   string
		ranked []domain.Story
		prev   map[string]int
		want   []string
	}{
		{
			name:   "first sighting above threshold crosses",
			ranked: []domain.Story{story("a", 150)},
			prev:   map[string]int{},
			want:   []string{"a"},
		},
		{
			name:   "exactly at threshold crosses",
			ranked: []domain.Story{story("a", 100)},
			prev:   map[string]int{"a": 99},
			want:   []string{"a"},
		},
		{
			name:   "already above does not cross again",
			ranked: []domain.Story{story("a", 300)},
			prev:   map[string]int{"a": 100},
			want:   nil,
		},
		{
			name:   "below threshold never crosses",
			ranked: []domain.Story{story("a", 99)},
			prev:   map[string]int{},
			want:   nil,
		},
		{
			name:   "drop and recross",
			ranked: []domain.Story{story("a", 101)},
			prev:   map[string]int{"a": 80},
			want:   []string{"a"},
		},
		{
			name:   "ranking order preserved",
			ranked: []domain.Story{story("c", 120), story("a", 500), story("b", 20), story("d", 100)},
			prev:   map[string]int{},
			want:   []string{"c", "a", "d"},
		},
		{
			name:   "repeated id reported once",
			ranked: []domain.Story{story("a", 120), story("a", 130)},
			prev:   nil,
			want:   []string{"a"},
		},
		{
			name:   "empty ranking",
			ranked: nil,
			prev:   map[string]int{"a": 50},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectCrossings(tt.ranked, tt.prev, 100)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestDetectCrossings_Scenario(t *testing.T) {
	// a rises through threshold, b was already above it, c is new above it
	prev := map[string]int{"a": 90, "b": 120}
	ranked := []domain.Story{story("a", 105), story("b", 130), story("c", 150)}

	crossed := DetectCrossings(ranked, prev, 100)
	assert.Equal(t, []string{"a", "c"}, ids(crossed))

	selected := SelectCandidates(crossed, map[string]bool{}, 8)
	assert.Equal(t, []string{"c", "a"}, ids(selected))
}
