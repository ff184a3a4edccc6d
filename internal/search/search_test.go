package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalii-holoienko/MediaBase/internal/domain"
)

func setupIndex(t *testing.T) *SearchIndex {
	t.Helper()
	idx, err := NewSearchIndex(Options{DataPath: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, idx.Close())
	})
	return idx
}

func seedTitles(t *testing.T, idx *SearchIndex) {
	t.Helper()
	ctx := context.Background()
	year := 1979
	titles := []domain.Title{
		{ID: "tt1", PrimaryTitle: "Alien", Genres: []string{"Horror"}, StartYear: &year},
		{ID: "tt2", PrimaryTitle: "Aliens"},
		{ID: "tt3", PrimaryTitle: "Heat"},
	}
	for _, title := range titles {
		require.NoError(t, idx.IndexTitle(ctx, title))
	}
}

func TestSearch_MatchesTitle(t *testing.T) {
	idx := setupIndex(t)
	seedTitles(t, idx)

	hits, err := idx.Search(context.Background(), "alien", 10)
	require.NoError(t, err)
	require.NotEmpty(t, hits)

	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		ids = append(ids, h.ID)
	}
	assert.Contains(t, ids, "tt1")
	assert.NotContains(t, ids, "tt3")
}

func TestSearch_PrefixMatches(t *testing.T) {
	idx := setupIndex(t)
	seedTitles(t, idx)

	hits, err := idx.Search(context.Background(), "hea", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "tt3", hits[0].ID)
	assert.Equal(t, "Heat", hits[0].PrimaryTitle)
}

func TestSearch_EmptyQuery(t *testing.T) {
	idx := setupIndex(t)
	seedTitles(t, idx)

	hits, err := idx.Search(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestDeleteTitle(t *testing.T) {
	idx := setupIndex(t)
	seedTitles(t, idx)
	ctx := context.Background()

	require.NoError(t, idx.DeleteTitle(ctx, "tt3"))

	hits, err := idx.Search(ctx, "heat", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestNewSearchIndex_ReopensExisting(t *testing.T) {
	dir := t.TempDir()

	idx, err := NewSearchIndex(Options{DataPath: dir})
	require.NoError(t, err)
	require.NoError(t, idx.IndexTitle(context.Background(), domain.Title{ID: "tt1", PrimaryTitle: "Alien"}))
	require.NoError(t, idx.Close())

	reopened, err := NewSearchIndex(Options{DataPath: dir})
	require.NoError(t, err)
	defer reopened.Close()

	hits, err := reopened.Search(context.Background(), "alien", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, hits)
}
