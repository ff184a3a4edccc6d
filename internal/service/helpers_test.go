package service

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// failingRecorder rejects every audit write.
type failingRecorder struct{}

func (failingRecorder) Record(context.Context, string, string) error {
	return errors.New("history write failed")
}

// capturingRecorder remembers every audit message.
type capturingRecorder struct {
	messages []string
}

func (r *capturingRecorder) Record(_ context.Context, _ string, message string) error {
	r.messages = append(r.messages, message)
	return nil
}

// flakyStore passes through to the underlying store but can fail Update,
// to exercise the addedAt stamp phase in isolation.
type flakyStore struct {
	store.DocumentStore
	updateErr error
}

func (f *flakyStore) Update(ctx context.Context, collection, id string, fields store.Document) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.DocumentStore.Update(ctx, collection, id, fields)
}
