package service

import (
	"context"
	"log/slog"

	"github.com/vitalii-holoienko/MediaBase/internal/domain"
	"github.com/vitalii-holoienko/MediaBase/internal/errors"
	"github.com/vitalii-holoienko/MediaBase/internal/search"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

// catalogCollection holds the global title catalog keyed by title ID.
const catalogCollection = "catalog"

// CatalogService owns the shared title catalog and its search index.
type CatalogService struct {
	store  store.DocumentStore
	index  *search.SearchIndex
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(docs store.DocumentStore, index *search.SearchIndex, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  docs,
		index:  index,
		logger: logger,
	}
}

// AddTitle stores a title in the catalog and indexes it for search.
func (s *CatalogService) AddTitle(ctx context.Context, title domain.Title) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if title.ID == "" {
		return errors.Validation("title id is required")
	}

	if err := s.store.Set(ctx, catalogCollection, title.ID, title.Document()); err != nil {
		return errors.Wrapf(err, errors.CodeUnavailable, "save catalog title %s", title.ID)
	}
	if err := s.index.IndexTitle(ctx, title); err != nil {
		// The catalog copy is authoritative; a stale index entry is
		// recoverable on the next reindex.
		s.logger.Warn("failed to index title", "title_id", title.ID, "error", err)
	}
	return nil
}

// GetTitle fetches one catalog title.
func (s *CatalogService) GetTitle(ctx context.Context, titleID string) (domain.Title, error) {
	if err := ctx.Err(); err != nil {
		return domain.Title{}, err
	}

	doc, err := s.store.Get(ctx, catalogCollection, titleID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Title{}, errors.NotFoundf("title %s is not in the catalog", titleID)
	}
	if err != nil {
		return domain.Title{}, errors.Wrapf(err, errors.CodeUnavailable, "read catalog title %s", titleID)
	}
	return domain.TitleFromDocument(doc), nil
}

// SearchTitles runs a full-text search and resolves hits against the
// catalog. Hits whose catalog document has vanished are dropped.
func (s *CatalogService) SearchTitles(ctx context.Context, query string, limit int) ([]domain.Title, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hits, err := s.index.Search(ctx, query, limit)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeUnavailable, "search titles")
	}

	titles := make([]domain.Title, 0, len(hits))
	for _, hit := range hits {
		title, err := s.GetTitle(ctx, hit.ID)
		if errors.Is(err, errors.ErrNotFound) {
			s.logger.Warn("indexed title missing from catalog", "title_id", hit.ID)
			continue
		}
		if err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, nil
}
