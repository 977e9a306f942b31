package catalog

import (
	"fmt"
	"math"
	"mediacatalog/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleItems() []models.MediaItem {
	return []models.MediaItem{
		{ID: 1, Name: "Breaking Bad", Type: models.TypeTVShow, Genres: models.Genres{"Drama", "Crime"}, Author: "alice"},
		{ID: 2, Name: "The Dark Knight", Type: models.TypeMovie, Genres: models.Genres{"Action", "Crime"}, Author: "bob"},
		{ID: 3, Name: "Dark", Type: models.TypeTVShow, Genres: models.Genres{"Sci-Fi"}, Author: "alice"},
		{ID: 4, Name: "Inception", Type: models.TypeMovie, Genres: models.Genres{"Sci-Fi", "Action"}, Author: "carol"},
	}
}

func numbered(n int) []models.MediaItem {
	items := make([]models.MediaItem, n)
	for i := range items {
		items[i] = models.MediaItem{ID: int64(i + 1), Name: fmt.Sprintf("item %d", i+1)}
	}
	return items
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", 1, 8},
		{"2", "5", 2, 5},
		{"0", "-3", 1, 1},
		{"abc", "x", 1, 8},
		{" 3 ", "10", 3, 10},
	}
	for _, tc := range tests {
		page, limit := ParsePagination(tc.page, tc.limit)
		assert.Equal(t, tc.wantPage, page, "page for %q", tc.page)
		assert.Equal(t, tc.wantLimit, limit, "limit for %q", tc.limit)
	}
}

func TestPaginate(t *testing.T) {
	items := numbered(20)

	for page := 1; page <= 5; page++ {
		for limit := 1; limit <= 7; limit++ {
			got := Paginate(items, page, limit)
			assert.LessOrEqual(t, len(got), limit)
			if len(got) > 0 {
				assert.Equal(t, int64(Offset(page, limit)+1), got[0].ID, "page %d limit %d", page, limit)
			}
		}
	}

	t.Run("Last Partial Page", func(t *testing.T) {
		got := Paginate(items, 3, 8)
		assert.Len(t, got, 4)
		assert.Equal(t, int64(17), got[0].ID)
	})

	t.Run("Out Of Range Is Empty", func(t *testing.T) {
		got := Paginate(items, 9, 8)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("No Limit Returns All", func(t *testing.T) {
		assert.Len(t, Paginate(items, 1, 0), 20)
	})

	t.Run("Huge Page Does Not Overflow", func(t *testing.T) {
		page, limit := ParsePagination("1152921504606846977", "8")
		assert.Equal(t, math.MaxInt, Offset(page, limit))

		got, total := Apply(items, Query{Page: page, Limit: limit})
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Equal(t, 20, total)

		assert.Empty(t, Paginate(items, math.MaxInt, math.MaxInt))
	})
}

func TestResolveType(t *testing.T) {
	typ, ok := ResolveType("movies")
	assert.True(t, ok)
	assert.Equal(t, models.TypeMovie, typ)

	typ, ok = ResolveType("tv-shows")
	assert.True(t, ok)
	assert.Equal(t, models.TypeTVShow, typ)

	_, ok = ResolveType("Movie")
	assert.False(t, ok)
	_, ok = ResolveType("documentaries")
	assert.False(t, ok)
}

func TestFilter(t *testing.T) {
	items := sampleItems()

	ids := func(list []models.MediaItem) []int64 {
		out := []int64{}
		for _, it := range list {
			out = append(out, it.ID)
		}
		return out
	}

	tests := []struct {
		name string
		q    Query
		want []int64
	}{
		{"Empty Query", Query{}, []int64{1, 2, 3, 4}},
		{"Search Case Insensitive", Query{Search: "DARK"}, []int64{2, 3}},
		{"Search Ignores Description", Query{Search: "crime"}, []int64{}},
		{"Type", Query{Type: models.TypeMovie}, []int64{2, 4}},
		{"Genre Case Insensitive", Query{Genre: "sci-fi"}, []int64{3, 4}},
		{"Genre Exact Only", Query{Genre: "Sci"}, []int64{}},
		{"Author Exact", Query{Author: "alice"}, []int64{1, 3}},
		{"Author Case Sensitive", Query{Author: "Alice"}, []int64{}},
		{"Combined", Query{Type: models.TypeTVShow, Genre: "crime"}, []int64{1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Filter(items, tc.q)))
		})
	}
}

func TestApply_TotalCountsFilteredSet(t *testing.T) {
	items := sampleItems()
	page, total := Apply(items, Query{Genre: "action", Page: 2, Limit: 1})
	assert.Equal(t, 2, total)
	assert.Len(t, page, 1)
	assert.Equal(t, int64(4), page[0].ID)

	page, total = Apply(items, Query{Page: 5, Limit: 8})
	assert.Equal(t, 4, total)
	assert.Empty(t, page)
}

func TestNormalizeGenres(t *testing.T) {
	assert.Equal(t, models.Genres{"Drama", "Crime"}, NormalizeGenres([]string{"Drama, Crime"}))
	assert.Equal(t, models.Genres{"Drama", "Crime"}, NormalizeGenres([]string{" Drama ", "Crime", ""}))
	assert.Equal(t, models.Genres{}, NormalizeGenres(nil))
}
