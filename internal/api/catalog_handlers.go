package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchTitles",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Search the catalog",
		Description: "Full-text search over catalog titles",
		Tags:        []string{"Catalog"},
	}, s.handleSearchTitles)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCatalogTitle",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/titles/{id}",
		Summary:     "Get catalog title",
		Description: "Returns a single catalog title by ID",
		Tags:        []string{"Catalog"},
	}, s.handleGetCatalogTitle)

	huma.Register(s.api, huma.Operation{
		OperationID: "addCatalogTitle",
		Method:      http.MethodPost,
		Path:        "/api/v1/catalog/titles",
		Summary:     "Add catalog title",
		Description: "Adds or replaces a title in the catalog and its search index",
		Tags:        []string{"Catalog"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddCatalogTitle)
}

// SearchInput contains the search request parameters.
type SearchInput struct {
	Query string `query:"q" doc:"Search query"`
	Limit int    `query:"limit" minimum:"1" maximum:"100" default:"20" doc:"Maximum number of results"`
}

// SearchOutput wraps search results for Huma.
type SearchOutput struct {
	Body struct {
		Titles []TitleResponse `json:"titles" doc:"Matching titles, best first"`
	}
}

// CatalogTitleOutput wraps a single catalog title for Huma.
type CatalogTitleOutput struct {
	Body TitleResponse
}

// AddCatalogTitleInput wraps the add request for Huma.
type AddCatalogTitleInput struct {
	Body TitleRequest
}

func (s *Server) handleSearchTitles(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	titles, err := s.services.Catalog.SearchTitles(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, err
	}

	out := &SearchOutput{}
	out.Body.Titles = titleResponses(titles)
	return out, nil
}

func (s *Server) handleGetCatalogTitle(ctx context.Context, input *TitleIDInput) (*CatalogTitleOutput, error) {
	title, err := s.services.Catalog.GetTitle(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CatalogTitleOutput{Body: titleResponse(title)}, nil
}

func (s *Server) handleAddCatalogTitle(ctx context.Context, input *AddCatalogTitleInput) (*CatalogTitleOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	title := titleFromRequest(input.Body)
	if err := s.services.Catalog.AddTitle(ctx, title); err != nil {
		return nil, err
	}

	return &CatalogTitleOutput{Body: titleResponse(title)}, nil
}
