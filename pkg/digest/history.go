package digest

import (
	"github.com/umputun/newsdigest/pkg/domain"
)

// PrependHistory puts batch in front of history, keeping batch order, and truncates the result
// to bound entries. Evicted entries are the oldest ones. Entries already in history are skipped.
func PrependHistory(history, batch []domain.Entry, bound int) (res, evicted []domain.Entry) {
	known := make(map[string]bool, len(history))
	for _, e := range history {
		known[e.ID] = true
	}

	res = make([]domain.Entry, 0, len(batch)+len(history))
	for _, e := range batch {
		if known[e.ID] {
			continue
		}
		known[e.ID] = true
		res = append(res, e)
	}
	res = append(res, history...)

	if bound >= 0 && len(res) > bound {
		evicted = append(evicted, res[bound:]...)
		res = res[:bound]
	}
	return res, evicted
}

// RecordScores returns score updates for every ranked story except withheld ids.
// Stories outside of the ranked list keep their stored scores.
func RecordScores(ranked []domain.Story, withheld map[string]bool) map[string]int {
	res := make(map[string]int, len(ranked))
	for _, s := range ranked {
		if withheld[s.ID] {
			continue
		}
		if _, ok := res[s.ID]; ok {
			continue // first occurrence wins, same as crossing detection
		}
		res[s.ID] = s.Score
	}
	return res
}
