package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vitalii-holoienko/MediaBase/internal/domain"
	domainerrors "github.com/vitalii-holoienko/MediaBase/internal/errors"
)

func (s *Server) registerRatingRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "setRating",
		Method:      http.MethodPut,
		Path:        "/api/v1/lists/{list}/titles/{id}/rating",
		Summary:     "Rate a title",
		Description: "Records the user's rating for a title already on the given list",
		Tags:        []string{"Ratings"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSetRating)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRating",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{list}/titles/{id}/rating",
		Summary:     "Get a title's rating",
		Description: "Returns the stored rating for a title on the given list",
		Tags:        []string{"Ratings"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetRating)
}

// SetRatingInput wraps the rating request for Huma.
type SetRatingInput struct {
	List string `path:"list" doc:"List name"`
	ID   string `path:"id" doc:"Title ID"`
	Body struct {
		Rating       float64 `json:"rating" minimum:"0" maximum:"10" doc:"Rating on a 10-point scale, half points allowed"`
		PrimaryTitle string  `json:"primaryTitle,omitempty" doc:"Display title used in the activity feed"`
	}
}

// RatingOutput reports a stored rating.
type RatingOutput struct {
	Body struct {
		Rated  bool `json:"rated" doc:"Whether a rating is stored"`
		Rating int  `json:"rating,omitempty" doc:"Stored rating on the doubled 0-20 scale"`
	}
}

func (s *Server) handleSetRating(ctx context.Context, input *SetRatingInput) (*MessageOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	list, err := domain.ParseList(input.List)
	if err != nil {
		return nil, domainerrors.Validationf("unknown list %q", input.List)
	}

	title := domain.Title{ID: input.ID, PrimaryTitle: input.Body.PrimaryTitle}
	if err := s.services.Rating.SetRating(ctx, title, input.Body.Rating, list); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Rating saved"}}, nil
}

func (s *Server) handleGetRating(ctx context.Context, input *struct {
	List string `path:"list" doc:"List name"`
	ID   string `path:"id" doc:"Title ID"`
}) (*RatingOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	list, err := domain.ParseList(input.List)
	if err != nil {
		return nil, domainerrors.Validationf("unknown list %q", input.List)
	}

	rating, rated, err := s.services.Rating.GetRating(ctx, input.ID, list)
	if err != nil {
		return nil, err
	}

	out := &RatingOutput{}
	out.Body.Rated = rated
	out.Body.Rating = rating
	return out, nil
}
