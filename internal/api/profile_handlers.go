package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/vitalii-holoienko/MediaBase/internal/domain"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getMyProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get my profile",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetMyProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateMyProfile",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile",
		Summary:     "Update my profile",
		Description: "Replaces the authenticated user's profile",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateMyProfile)
}

// ProfileRequest is the request body for profile updates.
type ProfileRequest struct {
	Nickname    string `json:"nickname,omitempty" validate:"omitempty,max=50" doc:"Display nickname"`
	Description string `json:"description,omitempty" validate:"omitempty,max=300" doc:"Short bio"`
	AvatarURL   string `json:"avatarUrl,omitempty" validate:"omitempty,url,max=500" doc:"Avatar image URL"`
}

// ProfileInput wraps the profile request for Huma.
type ProfileInput struct {
	Body ProfileRequest
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body domain.Profile
}

func (s *Server) handleGetMyProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	profile, err := s.services.Profile.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &ProfileOutput{Body: *profile}, nil
}

func (s *Server) handleUpdateMyProfile(ctx context.Context, input *ProfileInput) (*ProfileOutput, error) {
	if err := s.validate.Validate(input.Body); err != nil {
		return nil, err
	}

	profile := domain.Profile{
		Nickname:    input.Body.Nickname,
		Description: input.Body.Description,
		AvatarURL:   input.Body.AvatarURL,
	}
	if err := s.services.Profile.Update(ctx, profile); err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: profile}, nil
}
