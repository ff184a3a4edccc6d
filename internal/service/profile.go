package service

import (
	"context"
	"log/slog"

	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/domain"
	"github.com/vitalii-holoienko/MediaBase/internal/errors"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

// ProfileService reads and writes the public per-user document at
// users/{uid}. Unlike the list operations, profile access requires a
// signed-in user and reports Unauthorized otherwise.
type ProfileService struct {
	store    store.DocumentStore
	identity auth.Identity
	logger   *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(docs store.DocumentStore, identity auth.Identity, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:    docs,
		identity: identity,
		logger:   logger,
	}
}

// Get returns the current user's profile. A user who never saved one
// gets an empty profile, not an error.
func (s *ProfileService) Get(ctx context.Context) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, errors.ErrUnauthorized
	}

	doc, err := s.store.Get(ctx, store.UsersCollection, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &domain.Profile{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeUnavailable, "read profile for %s", userID)
	}

	profile := &domain.Profile{}
	profile.Nickname, _ = doc.StringField("nickname")
	profile.Description, _ = doc.StringField("description")
	profile.AvatarURL, _ = doc.StringField("avatarUrl")
	return profile, nil
}

// Update replaces the current user's profile document.
func (s *ProfileService) Update(ctx context.Context, profile domain.Profile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return errors.ErrUnauthorized
	}

	doc := store.Document{
		"nickname":    profile.Nickname,
		"description": profile.Description,
		"avatarUrl":   profile.AvatarURL,
	}
	if err := s.store.Set(ctx, store.UsersCollection, userID, doc); err != nil {
		return errors.Wrapf(err, errors.CodeUnavailable, "save profile for %s", userID)
	}

	s.logger.Info("profile updated", "user_id", userID)
	return nil
}
