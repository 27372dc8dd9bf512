package digest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/newsdigest/pkg/domain"
)

func TestSelectCandidates(t *testing.T) {
	crossed := []domain.Story{story("b", 200), story("a", 200), story("c", 300), story("d", 150), story("e", 120)}

	t.Run("sorted by score then id", func(t *testing.T) {
		got := SelectCandidates(crossed, nil, 10)
		assert.Equal(t, []string{"c", "a", "b", "d", "e"}, ids(got))
	})

	t.Run("published are skipped", func(t *testing.T) {
		got := SelectCandidates(crossed, map[string]bool{"c": true, "b": true}, 10)
		assert.Equal(t, []string{"a", "d", "e"}, ids(got))
	})

	t.Run("capped to batch size", func(t *testing.T) {
		got := SelectCandidates(crossed, map[string]bool{"a": true}, 2)
		assert.Equal(t, []string{"c", "b"}, ids(got))
	})

	t.Run("zero batch", func(t *testing.T) {
		assert.Empty(t, SelectCandidates(crossed, nil, 0))
	})

	t.Run("input is not modified", func(t *testing.T) {
		_ = SelectCandidates(crossed, nil, 10)
		assert.Equal(t, []string{"b", "a", "c", "d", "e"}, ids(crossed))
	})
}

func TestSelectCandidates_Deterministic(t *testing.T) {
	var crossed []domain.Story
	for i := range 30 {
		crossed = append(crossed, story(fmt.Sprintf("%02d", 29-i), 100+i%3))
	}
	first := SelectCandidates(crossed, nil, 8)
	for range 5 {
		assert.Equal(t, ids(first), ids(SelectCandidates(crossed, nil, 8)))
	}
	assert.Equal(t, []string{"00", "03", "06", "09", "12", "15", "18", "21"}, ids(first))
}
