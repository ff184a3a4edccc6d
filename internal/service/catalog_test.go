package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalii-holoienko/MediaBase/internal/domain"
	"github.com/vitalii-holoienko/MediaBase/internal/errors"
	"github.com/vitalii-holoienko/MediaBase/internal/search"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

func setupCatalog(t *testing.T) *CatalogService {
	t.Helper()
	index, err := search.NewSearchIndex(search.Options{DataPath: t.TempDir(), Logger: testLogger()})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, index.Close())
	})
	return NewCatalogService(store.NewMemory(), index, testLogger())
}

func TestCatalog_AddGetSearch(t *testing.T) {
	svc := setupCatalog(t)
	ctx := context.Background()

	year := 1979
	title := domain.Title{ID: "tt001", PrimaryTitle: "Alien", Genres: []string{"Horror"}, StartYear: &year}
	require.NoError(t, svc.AddTitle(ctx, title))

	got, err := svc.GetTitle(ctx, "tt001")
	require.NoError(t, err)
	assert.Equal(t, "Alien", got.PrimaryTitle)

	results, err := svc.SearchTitles(ctx, "alien", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "tt001", results[0].ID)
}

func TestCatalog_GetMissing(t *testing.T) {
	svc := setupCatalog(t)

	_, err := svc.GetTitle(context.Background(), "tt404")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestCatalog_AddRequiresID(t *testing.T) {
	svc := setupCatalog(t)
	err := svc.AddTitle(context.Background(), domain.Title{PrimaryTitle: "No ID"})
	assert.ErrorIs(t, err, errors.ErrValidation)
}
