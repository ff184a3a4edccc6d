package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vitalii-holoienko/MediaBase/internal/domain"
	domainerrors "github.com/vitalii-holoienko/MediaBase/internal/errors"
)

func (s *Server) registerListRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTitles",
		Method:      http.MethodGet,
		Path:        "/api/v1/lists/{list}",
		Summary:     "List titles",
		Description: "Returns the titles on one of the user's lists, optionally filtered and sorted",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListTitles)

	huma.Register(s.api, huma.Operation{
		OperationID: "moveTitleToList",
		Method:      http.MethodPut,
		Path:        "/api/v1/lists/{list}/titles",
		Summary:     "Move title to list",
		Description: "Places a title on the given list, removing it from any other list first",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMoveTitleToList)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeTitleFromLists",
		Method:      http.MethodDelete,
		Path:        "/api/v1/titles/{id}/lists",
		Summary:     "Remove title from all lists",
		Description: "Removes a title from every list it appears on. Removing an absent title is a no-op.",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveTitleFromLists)

	huma.Register(s.api, huma.Operation{
		OperationID: "findTitleList",
		Method:      http.MethodGet,
		Path:        "/api/v1/titles/{id}/list",
		Summary:     "Find list containing title",
		Description: "Reports which list a title is on, if any",
		Tags:        []string{"Lists"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleFindTitleList)
}

// === DTOs ===

// TitleRequest carries a catalog title over the wire.
type TitleRequest struct {
	ID             string   `json:"id" validate:"required,max=100" doc:"Title ID"`
	PrimaryTitle   string   `json:"primaryTitle,omitempty" validate:"omitempty,max=500" doc:"Display title"`
	Genres         []string `json:"genres,omitempty" doc:"Genres"`
	StartYear      *int     `json:"startYear,omitempty" doc:"Release year"`
	AverageRating  *float64 `json:"averageRating,omitempty" doc:"Aggregate rating on a 10-point scale"`
	NumVotes       *int     `json:"numVotes,omitempty" doc:"Number of aggregate votes"`
	RuntimeMinutes *int     `json:"runtimeMinutes,omitempty" doc:"Runtime in minutes"`
}

// TitleResponse contains title data in API responses.
type TitleResponse struct {
	ID             string     `json:"id" doc:"Title ID"`
	PrimaryTitle   string     `json:"primaryTitle,omitempty" doc:"Display title"`
	Genres         []string   `json:"genres,omitempty" doc:"Genres"`
	StartYear      *int       `json:"startYear,omitempty" doc:"Release year"`
	AverageRating  *float64   `json:"averageRating,omitempty" doc:"Aggregate rating on a 10-point scale"`
	NumVotes       *int       `json:"numVotes,omitempty" doc:"Number of aggregate votes"`
	RuntimeMinutes *int       `json:"runtimeMinutes,omitempty" doc:"Runtime in minutes"`
	UserRating     *int       `json:"userRating,omitempty" doc:"Stored user rating (doubled scale, 0-20)"`
	AddedAt        *time.Time `json:"addedAt,omitempty" doc:"When the title joined its current list"`
}

func titleFromRequest(req TitleRequest) domain.Title {
	return domain.Title{
		ID:             req.ID,
		PrimaryTitle:   req.PrimaryTitle,
		Genres:         req.Genres,
		StartYear:      req.StartYear,
		AverageRating:  req.AverageRating,
		NumVotes:       req.NumVotes,
		RuntimeMinutes: req.RuntimeMinutes,
	}
}

func titleResponse(t domain.Title) TitleResponse {
	return TitleResponse{
		ID:             t.ID,
		PrimaryTitle:   t.PrimaryTitle,
		Genres:         t.Genres,
		StartYear:      t.StartYear,
		AverageRating:  t.AverageRating,
		NumVotes:       t.NumVotes,
		RuntimeMinutes: t.RuntimeMinutes,
		UserRating:     t.UserRating,
		AddedAt:        t.AddedAt,
	}
}

func titleResponses(titles []domain.Title) []TitleResponse {
	out := make([]TitleResponse, len(titles))
	for i, t := range titles {
		out[i] = titleResponse(t)
	}
	return out
}

// ListTitlesInput contains the list request with filter parameters.
type ListTitlesInput struct {
	List      string `path:"list" doc:"List name (planned, watching, completed, onhold, dropped)"`
	Genres    string `query:"genres" doc:"Comma-separated genres; titles matching any are kept"`
	MinRating *int   `query:"min_rating" doc:"Minimum truncated aggregate rating; unrated titles are dropped"`
	YearFrom  *int   `query:"year_from" doc:"Earliest release year, inclusive"`
	YearTo    *int   `query:"year_to" doc:"Latest release year, inclusive"`
	Sort      string `query:"sort" enum:"popularity,rating,alphabet,release_date,random" doc:"Sort order"`
}

// ListTitlesOutput wraps the list response for Huma.
type ListTitlesOutput struct {
	Body struct {
		Titles []TitleResponse `json:"titles" doc:"Titles on the list"`
	}
}

// MoveTitleInput wraps the move request for Huma.
type MoveTitleInput struct {
	List string       `path:"list" doc:"Target list name"`
	Body TitleRequest `doc:"Title to place on the list"`
}

// TitleIDInput identifies a title by path parameter.
type TitleIDInput struct {
	ID string `path:"id" doc:"Title ID"`
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// FindTitleListOutput reports list membership for a title.
type FindTitleListOutput struct {
	Body struct {
		Found bool   `json:"found" doc:"Whether the title is on any list"`
		List  string `json:"list,omitempty" doc:"The containing list, when found"`
	}
}

// === Handlers ===

func (s *Server) handleListTitles(ctx context.Context, input *ListTitlesInput) (*ListTitlesOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	list, err := domain.ParseList(input.List)
	if err != nil {
		return nil, domainerrors.Validationf("unknown list %q", input.List)
	}

	cfg := domain.FilterConfig{
		MinRating: input.MinRating,
		YearFrom:  input.YearFrom,
		YearTo:    input.YearTo,
	}
	if input.Genres != "" {
		for _, g := range strings.Split(input.Genres, ",") {
			if g = strings.TrimSpace(g); g != "" {
				cfg.Genres = append(cfg.Genres, g)
			}
		}
	}
	if input.Sort != "" {
		mode, ok := domain.ParseSortMode(input.Sort)
		if !ok {
			return nil, domainerrors.Validationf("unknown sort mode %q", input.Sort)
		}
		cfg.SortBy = mode
	}

	titles, err := s.services.Watchlist.ListTitles(ctx, list)
	if err != nil {
		return nil, err
	}

	out := &ListTitlesOutput{}
	out.Body.Titles = titleResponses(domain.ApplyFilters(titles, cfg))
	return out, nil
}

func (s *Server) handleMoveTitleToList(ctx context.Context, input *MoveTitleInput) (*MessageOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	list, err := domain.ParseList(input.List)
	if err != nil {
		return nil, domainerrors.Validationf("unknown list %q", input.List)
	}

	if err := s.services.Watchlist.MoveTitleToList(ctx, titleFromRequest(input.Body), list); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Title moved to " + list.DisplayName()}}, nil
}

func (s *Server) handleRemoveTitleFromLists(ctx context.Context, input *TitleIDInput) (*MessageOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	if err := s.services.Watchlist.RemoveTitleFromAllLists(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Title removed"}}, nil
}

func (s *Server) handleFindTitleList(ctx context.Context, input *TitleIDInput) (*FindTitleListOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}

	list, found, err := s.services.Watchlist.FindListContainingTitle(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	out := &FindTitleListOutput{}
	out.Body.Found = found
	if found {
		out.Body.List = string(list)
	}
	return out, nil
}
