package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

func TestHistory_RecordAndFetchNewestFirst(t *testing.T) {
	mem := store.NewMemory()
	svc := NewHistoryService(mem, auth.StaticIdentity{UserID: testUser}, testLogger())
	ctx := context.Background()

	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	mem.SetNow(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	require.NoError(t, svc.Record(ctx, testUser, "Alien was added to 'Planned' list."))
	require.NoError(t, svc.Record(ctx, testUser, "Alien was rated 15."))
	require.NoError(t, svc.Record(ctx, testUser, "Alien was added to 'Completed' list."))

	messages, err := svc.Fetch(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "Alien was added to 'Completed' list.", messages[0])
	assert.Equal(t, "Alien was added to 'Planned' list.", messages[2])
}

func TestHistory_FetchSignedOut(t *testing.T) {
	svc := NewHistoryService(store.NewMemory(), auth.StaticIdentity{}, testLogger())

	messages, err := svc.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestHistory_RecordFailurePropagates(t *testing.T) {
	mem := store.NewMemory()
	mem.FailCollection(store.UserHistoryPath(testUser), errors.New("boom"))
	svc := NewHistoryService(mem, auth.StaticIdentity{UserID: testUser}, testLogger())

	err := svc.Record(context.Background(), testUser, "message")
	assert.Error(t, err)
}
