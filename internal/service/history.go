package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/id"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

// HistoryRecorder appends audit messages to a user's history. Split out
// as an interface so list and rating services can be tested with a fake
// recorder.
type HistoryRecorder interface {
	Record(ctx context.Context, userID, message string) error
}

// NoopHistoryRecorder discards audit messages. For tests.
type NoopHistoryRecorder struct{}

// Record implements HistoryRecorder as a no-op.
func (NoopHistoryRecorder) Record(context.Context, string, string) error { return nil }

// HistoryService stores and reads the append-only per-user audit trail.
type HistoryService struct {
	store    store.DocumentStore
	identity auth.Identity
	logger   *slog.Logger
}

// NewHistoryService creates a new history service.
func NewHistoryService(docs store.DocumentStore, identity auth.Identity, logger *slog.Logger) *HistoryService {
	return &HistoryService{
		store:    docs,
		identity: identity,
		logger:   logger,
	}
}

// Record appends a history entry with a server-assigned timestamp.
// Entries are auto-keyed; nothing ever updates or deletes them.
func (s *HistoryService) Record(ctx context.Context, userID, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entryID, err := id.Generate("hist")
	if err != nil {
		return fmt.Errorf("generate history ID: %w", err)
	}

	doc := store.Document{
		"id":        entryID,
		"message":   message,
		"timestamp": store.ServerTimestamp,
	}
	if err := s.store.Set(ctx, store.UserHistoryPath(userID), entryID, doc); err != nil {
		return fmt.Errorf("append history entry: %w", err)
	}
	return nil
}

// Fetch returns the current user's history messages, newest first.
// Returns nothing when no user is signed in.
func (s *HistoryService) Fetch(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	userID, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, nil
	}

	docs, err := s.store.Query(ctx, store.UserHistoryPath(userID), "timestamp", store.Descending)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	messages := make([]string, 0, len(docs))
	for _, doc := range docs {
		if msg, ok := doc.StringField("message"); ok {
			messages = append(messages, msg)
		}
	}
	return messages, nil
}
