package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBadger(t *testing.T) *Badger {
	t.Helper()
	db, err := NewBadger(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

// stores returns one of each DocumentStore implementation so the
// semantics tests run against both.
func stores(t *testing.T) map[string]DocumentStore {
	t.Helper()
	return map[string]DocumentStore{
		"badger": setupBadger(t),
		"memory": NewMemory(),
	}
}

func TestSetGet_RoundTrip(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := UserListPath("u1", "planned")

			doc := Document{
				"id":             "tt001",
				"primaryTitle":   "The Thing",
				"runtimeMinutes": float64(109),
			}
			require.NoError(t, s.Set(ctx, coll, "tt001", doc))

			got, err := s.Get(ctx, coll, "tt001")
			require.NoError(t, err)
			assert.Equal(t, "The Thing", got["primaryTitle"])

			mins, ok := got.FloatField("runtimeMinutes")
			require.True(t, ok)
			assert.Equal(t, float64(109), mins)
		})
	}
}

func TestGet_Missing(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), UserListPath("u1", "planned"), "nope")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSet_FullReplace(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := UserListPath("u1", "watching")

			require.NoError(t, s.Set(ctx, coll, "tt001", Document{"a": "1", "b": "2"}))
			require.NoError(t, s.Set(ctx, coll, "tt001", Document{"a": "3"}))

			got, err := s.Get(ctx, coll, "tt001")
			require.NoError(t, err)
			assert.Equal(t, "3", got["a"])
			_, hasB := got["b"]
			assert.False(t, hasB, "Set must replace, not merge")
		})
	}
}

func TestUpdate_MergesAndRequiresExistence(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := UserListPath("u1", "completed")

			err := s.Update(ctx, coll, "tt001", Document{"userRating": 15})
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, coll, "tt001", Document{"primaryTitle": "Heat"}))
			require.NoError(t, s.Update(ctx, coll, "tt001", Document{"userRating": 15}))

			got, err := s.Get(ctx, coll, "tt001")
			require.NoError(t, err)
			assert.Equal(t, "Heat", got["primaryTitle"])
			rating, ok := got.FloatField("userRating")
			require.True(t, ok)
			assert.Equal(t, float64(15), rating)
		})
	}
}

func TestDelete_Idempotent(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := UserListPath("u1", "dropped")

			require.NoError(t, s.Delete(ctx, coll, "never-existed"))

			require.NoError(t, s.Set(ctx, coll, "tt001", Document{"primaryTitle": "Alien"}))
			require.NoError(t, s.Delete(ctx, coll, "tt001"))
			require.NoError(t, s.Delete(ctx, coll, "tt001"))

			_, err := s.Get(ctx, coll, "tt001")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestServerTimestamp_Resolved(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := UserHistoryPath("u1")
			before := time.Now().Add(-time.Second)

			require.NoError(t, s.Set(ctx, coll, "h1", Document{
				"message":   "Heat was added to 'Planned' list.",
				"timestamp": ServerTimestamp,
			}))

			got, err := s.Get(ctx, coll, "h1")
			require.NoError(t, err)

			ts, ok := got.TimeField("timestamp")
			require.True(t, ok, "timestamp should resolve to a parseable instant")
			assert.True(t, ts.After(before))
			assert.True(t, ts.Before(time.Now().Add(time.Second)))
		})
	}
}

func TestQuery_OrderByTimestamp(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			coll := UserHistoryPath("u1")
			base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

			for i, msg := range []string{"first", "second", "third"} {
				ts := base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339Nano)
				require.NoError(t, s.Set(ctx, coll, msg, Document{"message": msg, "timestamp": ts}))
			}

			docs, err := s.Query(ctx, coll, "timestamp", Descending)
			require.NoError(t, err)
			require.Len(t, docs, 3)
			assert.Equal(t, "third", docs[0]["message"])
			assert.Equal(t, "first", docs[2]["message"])

			docs, err = s.Query(ctx, coll, "timestamp", Ascending)
			require.NoError(t, err)
			assert.Equal(t, "first", docs[0]["message"])
		})
	}
}

func TestQuery_DoesNotLeakSubcollections(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			require.NoError(t, s.Set(ctx, UsersCollection, "u1", Document{"nickname": "vh"}))
			require.NoError(t, s.Set(ctx, UserListPath("u1", "planned"), "tt001", Document{"primaryTitle": "Ran"}))
			require.NoError(t, s.Set(ctx, UserListPath("u1", "watching"), "tt002", Document{"primaryTitle": "Akira"}))

			docs, err := s.Query(ctx, UsersCollection, "", Ascending)
			require.NoError(t, err)
			require.Len(t, docs, 1)
			assert.Equal(t, "vh", docs[0]["nickname"])

			docs, err = s.Query(ctx, UserListPath("u1", "planned"), "", Ascending)
			require.NoError(t, err)
			require.Len(t, docs, 1)
			assert.Equal(t, "Ran", docs[0]["primaryTitle"])
		})
	}
}

func TestQuery_EmptyCollection(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			docs, err := s.Query(context.Background(), UserListPath("u1", "onhold"), "", Ascending)
			require.NoError(t, err)
			assert.Empty(t, docs)
		})
	}
}

func TestMemory_FailureInjection(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	coll := UserListPath("u1", "planned")
	boom := errors.New("boom")

	require.NoError(t, m.Set(ctx, coll, "tt001", Document{"primaryTitle": "Heat"}))

	m.FailCollection(coll, boom)
	_, err := m.Get(ctx, coll, "tt001")
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, m.Set(ctx, coll, "tt002", Document{}), boom)
	_, err = m.Query(ctx, coll, "", Ascending)
	assert.ErrorIs(t, err, boom)

	// Other collections are unaffected.
	_, err = m.Query(ctx, UserListPath("u1", "watching"), "", Ascending)
	assert.NoError(t, err)

	m.FailCollection(coll, nil)
	_, err = m.Get(ctx, coll, "tt001")
	assert.NoError(t, err)
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	coll := UserListPath("u1", "planned")

	require.NoError(t, m.Set(ctx, coll, "tt001", Document{"primaryTitle": "Heat"}))

	got, err := m.Get(ctx, coll, "tt001")
	require.NoError(t, err)
	got["primaryTitle"] = "mutated"

	again, err := m.Get(ctx, coll, "tt001")
	require.NoError(t, err)
	assert.Equal(t, "Heat", again["primaryTitle"])
}

func TestCompareValues(t *testing.T) {
	assert.Equal(t, 0, compareValues(nil, nil))
	assert.Equal(t, -1, compareValues(nil, "x"))
	assert.Equal(t, 1, compareValues("x", nil))
	assert.Negative(t, compareValues(float64(1), float64(2)))
	assert.Positive(t, compareValues(float64(10), int(2)))
	assert.Negative(t, compareValues("apple", "banana"))

	// RFC 3339 strings compare as instants, not lexically.
	early := "2026-01-01T00:00:00.5Z"
	late := "2026-01-01T00:00:01Z"
	assert.Negative(t, compareValues(early, late))
}
