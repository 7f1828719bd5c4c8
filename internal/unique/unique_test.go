package unique

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	id    string
	title string
}

func TestBy_ShortInput(t *testing.T) {
	key := func(i item) string { return i.id }
	assert.Empty(t, By(nil, key))
	assert.Equal(t, []item{{id: "a"}}, By([]item{{id: "a"}}, key))
}

func TestBy_FirstOccurrenceWins(t *testing.T) {
	items := []item{
		{id: "a", title: "first a"},
		{id: "b", title: "first b"},
		{id: "a", title: "second a"},
		{id: "c", title: "first c"},
		{id: "b", title: "second b"},
	}

	got := By(items, func(i item) string { return i.id })

	assert.Equal(t, []item{
		{id: "a", title: "first a"},
		{id: "b", title: "first b"},
		{id: "c", title: "first c"},
	}, got)
}

func TestBy_EachKeyExactlyOnce(t *testing.T) {
	var items []item
	for i := 0; i < 50; i++ {
		items = append(items, item{id: string(rune('a' + i%7)), title: "x"})
	}

	got := By(items, func(i item) string { return i.id })

	counts := make(map[string]int)
	for _, it := range got {
		counts[it.id]++
	}
	assert.Len(t, counts, 7)
	for id, n := range counts {
		assert.Equal(t, 1, n, "id %q", id)
	}
}
