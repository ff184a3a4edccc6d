// Package service implements the application's use cases on top of the
// document store.
package service

import (
	"context"
	"log/slog"

	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/domain"
	"github.com/vitalii-holoienko/MediaBase/internal/errors"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

// WatchlistService enforces single-list membership for titles across the
// five per-user lists.
type WatchlistService struct {
	store    store.DocumentStore
	identity auth.Identity
	history  HistoryRecorder
	logger   *slog.Logger
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(docs store.DocumentStore, identity auth.Identity, history HistoryRecorder, logger *slog.Logger) *WatchlistService {
	return &WatchlistService{
		store:    docs,
		identity: identity,
		history:  history,
		logger:   logger,
	}
}

// MoveTitleToList relocates a title into target: remove from every list,
// insert into target, stamp addedAt, append a history entry. Phases run
// in that order and are not transactional; a later phase failing never
// rolls back an earlier one. Stamp and history failures are logged and
// swallowed so the membership change survives. With no signed-in user
// the call is a silent no-op.
func (s *WatchlistService) MoveTitleToList(ctx context.Context, title domain.Title, target domain.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil
	}
	if title.ID == "" {
		return errors.Validation("title id is required")
	}

	if err := s.removeEverywhere(ctx, userID, title.ID); err != nil {
		return err
	}

	collection := store.UserListPath(userID, string(target))
	if err := s.store.Set(ctx, collection, title.ID, title.Document()); err != nil {
		return errors.Wrapf(err, errors.CodeUnavailable, "insert title %s into %s", title.ID, target)
	}

	// The document is persisted; the stamp and audit entry are best effort.
	if err := s.store.Update(ctx, collection, title.ID, store.Document{"addedAt": store.ServerTimestamp}); err != nil {
		s.logger.Warn("failed to stamp addedAt",
			"user_id", userID,
			"title_id", title.ID,
			"list", target,
			"error", err,
		)
	}

	if err := s.history.Record(ctx, userID, domain.AddedToListMessage(title.PrimaryTitle, target)); err != nil {
		s.logger.Warn("failed to append history entry",
			"user_id", userID,
			"title_id", title.ID,
			"list", target,
			"error", err,
		)
	}

	s.logger.Info("title moved",
		"user_id", userID,
		"title_id", title.ID,
		"list", target,
	)
	return nil
}

// RemoveTitleFromAllLists deletes the title from every list it appears
// in. Idempotent. Silent no-op when no user is signed in.
func (s *WatchlistService) RemoveTitleFromAllLists(ctx context.Context, titleID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil
	}
	return s.removeEverywhere(ctx, userID, titleID)
}

// removeEverywhere checks each list for the title and deletes where present.
func (s *WatchlistService) removeEverywhere(ctx context.Context, userID, titleID string) error {
	for _, list := range domain.AllLists() {
		collection := store.UserListPath(userID, string(list))

		_, err := s.store.Get(ctx, collection, titleID)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return errors.Wrapf(err, errors.CodeUnavailable, "check %s list for title %s", list, titleID)
		}

		if err := s.store.Delete(ctx, collection, titleID); err != nil {
			return errors.Wrapf(err, errors.CodeUnavailable, "remove title %s from %s", titleID, list)
		}
	}
	return nil
}

type probeResult struct {
	list  domain.List
	err   error
	found bool
}

// FindListContainingTitle probes the five lists concurrently and returns
// the first one found to contain the title. Late probe results are
// discarded, not cancelled. A probe failure counts as a miss. Returns
// false when the title is in no list or no user is signed in.
func (s *WatchlistService) FindListContainingTitle(ctx context.Context, titleID string) (domain.List, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return "", false, nil
	}

	lists := domain.AllLists()
	// Buffered so probes resolving after the early return never block.
	results := make(chan probeResult, len(lists))
	for _, list := range lists {
		go func(list domain.List) {
			_, err := s.store.Get(ctx, store.UserListPath(userID, string(list)), titleID)
			results <- probeResult{list: list, err: err, found: err == nil}
		}(list)
	}

	for range lists {
		res := <-results
		if res.found {
			return res.list, true, nil
		}
		if !errors.Is(res.err, store.ErrNotFound) {
			s.logger.Warn("list probe failed",
				"user_id", userID,
				"title_id", titleID,
				"list", res.list,
				"error", res.err,
			)
		}
	}
	return "", false, nil
}

// ListTitles returns the titles in one list. Read failures degrade to an
// empty result with a logged diagnostic. Empty when signed out.
func (s *WatchlistService) ListTitles(ctx context.Context, list domain.List) ([]domain.Title, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, nil
	}

	docs, err := s.store.Query(ctx, store.UserListPath(userID, string(list)), "", store.Ascending)
	if err != nil {
		s.logger.Warn("failed to read list",
			"user_id", userID,
			"list", list,
			"error", err,
		)
		return nil, nil
	}

	titles := make([]domain.Title, 0, len(docs))
	for _, doc := range docs {
		titles = append(titles, domain.TitleFromDocument(doc))
	}
	return titles, nil
}
