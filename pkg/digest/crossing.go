// Package digest runs a single digest pass: detects threshold crossings, selects and enriches
// candidates, maintains the bounded history and commits everything with the rendered feed.
package digest

import (
	"github.com/umputun/newsdigest/pkg/domain"
)

// DetectCrossings returns stories whose score reached threshold since the previous observation,
// in ranking order. A story crosses when its score is >= threshold and it had no previous score
// or the previous score was below threshold. Repeated ids are reported once.
func DetectCrossings(ranked []domain.Story, prev map[string]int, threshold int) []domain.Story {
	var res []domain.Story
	seen := make(map[string]bool, len(ranked))
	for _, s := range ranked {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		if s.Score < threshold {
			continue
		}
		if last, ok := prev[s.ID]; ok && last >= threshold {
			continue
		}
		res = append(res, s)
	}
	return res
}
