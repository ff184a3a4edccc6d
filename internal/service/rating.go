package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/domain"
	"github.com/vitalii-holoienko/MediaBase/internal/errors"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

// RatingService records user ratings on titles already present in a list.
// Ratings arrive on a 0-10 scale and are stored doubled as an integer,
// so half-star values survive without floats.
type RatingService struct {
	store    store.DocumentStore
	identity auth.Identity
	history  HistoryRecorder
	logger   *slog.Logger
}

// NewRatingService creates a new rating service.
func NewRatingService(docs store.DocumentStore, identity auth.Identity, history HistoryRecorder, logger *slog.Logger) *RatingService {
	return &RatingService{
		store:    docs,
		identity: identity,
		history:  history,
		logger:   logger,
	}
}

// SetRating writes round(rating*2) to the title's document in list.
// The title must already be in the list; the update never creates a
// document. The history append is best effort. Silent no-op when
// signed out.
func (s *RatingService) SetRating(ctx context.Context, title domain.Title, rating float64, list domain.List) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil
	}

	stored := int(math.Round(rating * 2))
	if stored < 0 || stored > 20 {
		return errors.Validationf("rating %.1f is outside the 0-10 scale", rating)
	}

	collection := store.UserListPath(userID, string(list))
	err := s.store.Update(ctx, collection, title.ID, store.Document{"userRating": stored})
	if errors.Is(err, store.ErrNotFound) {
		return errors.NotFoundf("title %s is not in the %s list", title.ID, list)
	}
	if err != nil {
		return errors.Wrapf(err, errors.CodeUnavailable, "update rating for title %s", title.ID)
	}

	if err := s.history.Record(ctx, userID, domain.RatedMessage(title.PrimaryTitle, stored)); err != nil {
		s.logger.Warn("failed to append history entry",
			"user_id", userID,
			"title_id", title.ID,
			"error", err,
		)
	}

	s.logger.Info("rating set",
		"user_id", userID,
		"title_id", title.ID,
		"list", list,
		"rating", stored,
	)
	return nil
}

// GetRating reads the stored rating for a title in list. The second
// return is false when the document or the field is absent, and when
// signed out.
func (s *RatingService) GetRating(ctx context.Context, titleID string, list domain.List) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return 0, false, nil
	}

	doc, err := s.store.Get(ctx, store.UserListPath(userID, string(list)), titleID)
	if errors.Is(err, store.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrapf(err, errors.CodeUnavailable, "read title %s", titleID)
	}

	rating, ok := doc.FloatField("userRating")
	if !ok {
		return 0, false, nil
	}
	return int(rating), true, nil
}
