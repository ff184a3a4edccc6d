package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHistoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getHistory",
		Method:      http.MethodGet,
		Path:        "/api/v1/history",
		Summary:     "Activity history",
		Description: "Returns the user's activity feed, newest first",
		Tags:        []string{"History"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetHistory)
}

// HistoryOutput contains activity feed messages, newest first.
type HistoryOutput struct {
	Body struct {
		Messages []string `json:"messages" doc:"Activity messages, newest first"`
	}
}

func (s *Server) handleGetHistory(ctx context.Context, _ *struct{}) (*HistoryOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	messages, err := s.services.History.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	out := &HistoryOutput{}
	out.Body.Messages = messages
	return out, nil
}
