package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/domain"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

// statsWindowMonths is the span of the monthly completion chart: the
// current month and the ten before it.
const statsWindowMonths = 11

// ActivityService aggregates per-user statistics from the list collections.
type ActivityService struct {
	store    store.DocumentStore
	identity auth.Identity
	logger   *slog.Logger
	now      func() time.Time
}

// NewActivityService creates a new activity service.
func NewActivityService(docs store.DocumentStore, identity auth.Identity, logger *slog.Logger) *ActivityService {
	return &ActivityService{
		store:    docs,
		identity: identity,
		logger:   logger,
		now:      time.Now,
	}
}

// MonthlyCompletedStats buckets the user's completed titles by the month
// of their addedAt stamp. Always returns exactly 11 points covering the
// 11 calendar months ending at the current month, chronologically, with
// zero counts where nothing completed. Titles without addedAt are
// skipped. A failed read degrades to an all-zero window.
func (s *ActivityService) MonthlyCompletedStats(ctx context.Context, userID string) ([]domain.ActivityPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	window := domain.MonthWindow(s.now(), statsWindowMonths)
	counts := make(map[string]int, len(window))
	for _, key := range window {
		counts[key] = 0
	}

	docs, err := s.store.Query(ctx, store.UserListPath(userID, string(domain.ListCompleted)), "", store.Ascending)
	if err != nil {
		s.logger.Warn("failed to read completed list, returning empty stats",
			"user_id", userID,
			"error", err,
		)
		docs = nil
	}

	for _, doc := range docs {
		addedAt, ok := doc.TimeField("addedAt")
		if !ok {
			continue
		}
		key := addedAt.UTC().Format(domain.MonthKeyFormat)
		if _, inWindow := counts[key]; inWindow {
			counts[key]++
		}
	}

	points := make([]domain.ActivityPoint, len(window))
	for i, key := range window {
		points[i] = domain.ActivityPoint{Month: key, Count: counts[key]}
	}
	return points, nil
}

type partitionHours struct {
	list  domain.List
	hours int
	err   error
}

// CumulativeWatchHours sums rounded per-title watch hours across all
// five lists. The five reads run concurrently and are all joined before
// a result is produced; a failed partition counts as empty rather than
// failing the aggregate. Zero when signed out.
func (s *ActivityService) CumulativeWatchHours(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return 0, nil
	}

	lists := domain.AllLists()
	results := make(chan partitionHours, len(lists))
	for _, list := range lists {
		go func(list domain.List) {
			docs, err := s.store.Query(ctx, store.UserListPath(userID, string(list)), "", store.Ascending)
			if err != nil {
				results <- partitionHours{list: list, err: err}
				return
			}
			hours := 0
			for _, doc := range docs {
				hours += domain.TitleFromDocument(doc).WatchHours()
			}
			results <- partitionHours{list: list, hours: hours}
		}(list)
	}

	total := 0
	for range lists {
		res := <-results
		if res.err != nil {
			s.logger.Warn("list read failed, treating as empty",
				"user_id", userID,
				"list", res.list,
				"error", res.err,
			)
			continue
		}
		total += res.hours
	}
	return total, nil
}
