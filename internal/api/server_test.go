package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalii-holoienko/MediaBase/internal/auth"
	"github.com/vitalii-holoienko/MediaBase/internal/config"
	"github.com/vitalii-holoienko/MediaBase/internal/search"
	"github.com/vitalii-holoienko/MediaBase/internal/service"
	"github.com/vitalii-holoienko/MediaBase/internal/store"
)

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api    humatest.TestAPI
	tokens *auth.TokenService
	mem    *store.Memory
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()

	mem := store.NewMemory()

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Name: "MediaBase Test",
			Port: "0",
		},
		Auth: config.AuthConfig{
			AccessTokenKey:      authKey,
			AccessTokenDuration: 15 * time.Minute,
		},
	}

	tokens, err := auth.NewTokenService(cfg.Auth.AccessTokenKey, cfg.Auth.AccessTokenDuration)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	index, err := search.NewSearchIndex(search.Options{DataPath: tmpDir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	identity := auth.ContextIdentity{}
	history := service.NewHistoryService(mem, identity, logger)
	services := &Services{
		Auth:      service.NewAuthService(mem, tokens, logger),
		Watchlist: service.NewWatchlistService(mem, identity, history, logger),
		Rating:    service.NewRatingService(mem, identity, history, logger),
		Activity:  service.NewActivityService(mem, identity, logger),
		History:   history,
		Profile:   service.NewProfileService(mem, identity, logger),
		Catalog:   service.NewCatalogService(mem, index, logger),
	}

	s := NewServer(cfg, mem, index, tokens, services, logger)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		tokens: tokens,
		mem:    mem,
	}
}

// createTestUser registers and logs in a user, returning the access token.
func (ts *testServer) createTestUser(t *testing.T, email string) string {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    email,
		"password": "TestPassword123!",
	})
	require.Equal(t, http.StatusOK, resp.Code, "register failed: %s", resp.Body.String())

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": "TestPassword123!",
	})
	require.Equal(t, http.StatusOK, resp.Code, "login failed: %s", resp.Body.String())

	var body AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var body HealthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Components["store"].Status)
	assert.Equal(t, "degraded", body.Components["search"].Status, "empty index is degraded")
}

func TestAuth_RegisterLoginFlow(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "vh@example.com",
		"password": "TestPassword123!",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// Same email again conflicts.
	resp = ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "VH@example.com",
		"password": "AnotherPassword1!",
	})
	assert.Equal(t, http.StatusConflict, resp.Code, resp.Body.String())

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "vh@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.Code, resp.Body.String())

	resp = ts.api.Post("/api/v1/auth/login", map[string]any{
		"email":    "vh@example.com",
		"password": "TestPassword123!",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
}

func TestAuth_RejectsInvalidBody(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "not-an-email",
		"password": "TestPassword123!",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

	resp = ts.api.Post("/api/v1/auth/register", map[string]any{
		"email":    "vh@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestLists_RequireAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/lists/planned")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Get("/api/v1/lists/planned", "Authorization: Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLists_MoveAndMembership(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "vh@example.com")
	authz := "Authorization: Bearer " + token

	title := map[string]any{
		"id":             "tt001",
		"primaryTitle":   "Alien",
		"genres":         []string{"Horror", "Sci-Fi"},
		"startYear":      1979,
		"runtimeMinutes": 117,
	}

	resp := ts.api.Put("/api/v1/lists/planned/titles", authz, title)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/lists/planned", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	var listed ListTitlesOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed.Body))
	require.Len(t, listed.Body.Titles, 1)
	assert.Equal(t, "Alien", listed.Body.Titles[0].PrimaryTitle)
	assert.NotNil(t, listed.Body.Titles[0].AddedAt, "membership is stamped")

	// Moving to completed vacates planned.
	resp = ts.api.Put("/api/v1/lists/completed/titles", authz, title)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/lists/planned", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	listed.Body.Titles = nil
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed.Body))
	assert.Empty(t, listed.Body.Titles)

	resp = ts.api.Get("/api/v1/titles/tt001/list", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	var found FindTitleListOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &found.Body))
	assert.True(t, found.Body.Found)
	assert.Equal(t, "completed", found.Body.List)

	resp = ts.api.Delete("/api/v1/titles/tt001/lists", authz)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/titles/tt001/list", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	found.Body.Found = true
	found.Body.List = ""
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &found.Body))
	assert.False(t, found.Body.Found)
}

func TestLists_UnknownListRejected(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "vh@example.com")

	resp := ts.api.Get("/api/v1/lists/favorites", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())
}

func TestLists_FilterAndSort(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "vh@example.com")
	authz := "Authorization: Bearer " + token

	titles := []map[string]any{
		{"id": "tt001", "primaryTitle": "Alien", "genres": []string{"Horror"}, "startYear": 1979, "averageRating": 8.5},
		{"id": "tt002", "primaryTitle": "Heat", "genres": []string{"Crime"}, "startYear": 1995, "averageRating": 8.3},
		{"id": "tt003", "primaryTitle": "Akira", "genres": []string{"Animation"}, "startYear": 1988, "averageRating": 8.0},
	}
	for _, title := range titles {
		resp := ts.api.Put("/api/v1/lists/planned/titles", authz, title)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	}

	resp := ts.api.Get("/api/v1/lists/planned?genres=horror,crime&sort=alphabet", authz)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var listed ListTitlesOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed.Body))
	require.Len(t, listed.Body.Titles, 2)
	assert.Equal(t, "Alien", listed.Body.Titles[0].PrimaryTitle)
	assert.Equal(t, "Heat", listed.Body.Titles[1].PrimaryTitle)

	resp = ts.api.Get("/api/v1/lists/planned?year_from=1985&year_to=1990", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	listed.Body.Titles = nil
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &listed.Body))
	require.Len(t, listed.Body.Titles, 1)
	assert.Equal(t, "Akira", listed.Body.Titles[0].PrimaryTitle)
}

func TestRating_RoundTrip(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "vh@example.com")
	authz := "Authorization: Bearer " + token

	title := map[string]any{"id": "tt001", "primaryTitle": "Alien"}
	resp := ts.api.Put("/api/v1/lists/completed/titles", authz, title)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Put("/api/v1/lists/completed/titles/tt001/rating", authz, map[string]any{
		"rating":       7.5,
		"primaryTitle": "Alien",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/lists/completed/titles/tt001/rating", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	var rating RatingOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &rating.Body))
	assert.True(t, rating.Body.Rated)
	assert.Equal(t, 15, rating.Body.Rating)
}

func TestRating_NotOnList(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "vh@example.com")

	resp := ts.api.Put("/api/v1/lists/completed/titles/tt999/rating",
		"Authorization: Bearer "+token,
		map[string]any{"rating": 8.0})
	assert.Equal(t, http.StatusNotFound, resp.Code, resp.Body.String())
}

func TestStatsAndHistory(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "vh@example.com")
	authz := "Authorization: Bearer " + token

	title := map[string]any{"id": "tt001", "primaryTitle": "Alien", "runtimeMinutes": 117}
	resp := ts.api.Put("/api/v1/lists/completed/titles", authz, title)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/stats/monthly-completed", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	var stats MonthlyStatsOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &stats.Body))
	require.Len(t, stats.Body.Points, 11)
	assert.Equal(t, 1, stats.Body.Points[10].Count, "completion lands in the current month")

	resp = ts.api.Get("/api/v1/stats/watch-hours", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	var hours WatchHoursOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &hours.Body))
	assert.Equal(t, 2, hours.Body.Hours)

	resp = ts.api.Get("/api/v1/history", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	var history HistoryOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &history.Body))
	require.NotEmpty(t, history.Body.Messages)
	assert.Equal(t, "Alien was added to 'Completed' list.", history.Body.Messages[0])
}

func TestProfile_RoundTrip(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "vh@example.com")
	authz := "Authorization: Bearer " + token

	resp := ts.api.Put("/api/v1/profile", authz, map[string]any{
		"nickname":    "vh",
		"description": "watches too many films",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/profile", authz)
	require.Equal(t, http.StatusOK, resp.Code)
	var profile ProfileOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profile.Body))
	assert.Equal(t, "vh", profile.Body.Nickname)

	resp = ts.api.Get("/api/v1/profile")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCatalog_AddAndSearch(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.createTestUser(t, "vh@example.com")
	authz := "Authorization: Bearer " + token

	resp := ts.api.Post("/api/v1/catalog/titles", authz, map[string]any{
		"id":           "tt001",
		"primaryTitle": "Alien",
		"genres":       []string{"Horror"},
		"startYear":    1979,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = ts.api.Get("/api/v1/catalog/titles/tt001")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/search?q=alien")
	require.Equal(t, http.StatusOK, resp.Code)
	var results SearchOutput
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &results.Body))
	require.Len(t, results.Body.Titles, 1)
	assert.Equal(t, "tt001", results.Body.Titles[0].ID)

	resp = ts.api.Get("/api/v1/catalog/titles/tt404")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
