package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vitalii-holoienko/MediaBase/internal/domain"
)

func (s *Server) registerStatsRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "monthlyCompletedStats",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats/monthly-completed",
		Summary:     "Monthly completion stats",
		Description: "Returns completed-title counts for the trailing eleven calendar months",
		Tags:        []string{"Stats"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMonthlyCompletedStats)

	huma.Register(s.api, huma.Operation{
		OperationID: "watchHours",
		Method:      http.MethodGet,
		Path:        "/api/v1/stats/watch-hours",
		Summary:     "Cumulative watch hours",
		Description: "Returns total watch hours across all of the user's lists",
		Tags:        []string{"Stats"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleWatchHours)
}

// MonthlyStatsOutput contains one count per month, oldest first.
type MonthlyStatsOutput struct {
	Body struct {
		Points []domain.ActivityPoint `json:"points" doc:"Completed-title counts per month, oldest first"`
	}
}

// WatchHoursOutput contains the cumulative watch hour total.
type WatchHoursOutput struct {
	Body struct {
		Hours int `json:"hours" doc:"Total watch hours across all lists"`
	}
}

func (s *Server) handleMonthlyCompletedStats(ctx context.Context, _ *struct{}) (*MonthlyStatsOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	points, err := s.services.Activity.MonthlyCompletedStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &MonthlyStatsOutput{}
	out.Body.Points = points
	return out, nil
}

func (s *Server) handleWatchHours(ctx context.Context, _ *struct{}) (*WatchHoursOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	hours, err := s.services.Activity.CumulativeWatchHours(ctx)
	if err != nil {
		return nil, err
	}

	out := &WatchHoursOutput{}
	out.Body.Hours = hours
	return out, nil
}
