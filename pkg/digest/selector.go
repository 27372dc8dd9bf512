package digest

import (
	"sort"

	"github.com/umputun/newsdigest/pkg/domain"
)

// SelectCandidates drops already published stories, orders the rest by score (descending, id
// ascending on ties) and keeps at most batchSize of them. Stories beyond the batch are dropped.
func SelectCandidates(crossed []domain.Story, published map[string]bool, batchSize int) []domain.Story {
	res := make([]domain.Story, 0, len(crossed))
	for _, s := range crossed {
		if published[s.ID] {
			continue
		}
		res = append(res, s)
	}

	sort.SliceStable(res, func(i, j int) bool {
		if res[i].Score != res[j].Score {
			return res[i].Score > res[j].Score
		}
		return res[i].ID < res[j].ID
	})

	if batchSize >= 0 && len(res) > batchSize {
		res = res[:batchSize]
	}
	return res
}
