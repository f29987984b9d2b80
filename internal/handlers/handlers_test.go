package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/auth"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/anhbaysgalan1/balatro/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGameStates struct {
	states map[string]dto.GameState
}

func (s *stubGameStates) Save(ctx context.Context, state dto.GameState) (*dto.SaveGameStateResult, error) {
	if state.UserID == "" {
		return nil, fmt.Errorf("%w: userId is required", services.ErrInvalidRequest)
	}
	_, existed := s.states[state.UserID]
	s.states[state.UserID] = state
	return &dto.SaveGameStateResult{UserID: state.UserID, Created: !existed, Modified: existed}, nil
}

func (s *stubGameStates) Load(ctx context.Context, userID string) (*dto.GameState, error) {
	state, ok := s.states[userID]
	if !ok {
		return nil, services.ErrNotFound
	}
	return &state, nil
}

func (s *stubGameStates) Delete(ctx context.Context, userID string) error {
	if _, ok := s.states[userID]; !ok {
		return services.ErrNotFound
	}
	delete(s.states, userID)
	return nil
}

type stubHighscores struct {
	submitted []dto.CreateHighscoreRequest
	limit     int
	offset    int
	userID    string
}

func (s *stubHighscores) Submit(ctx context.Context, req dto.CreateHighscoreRequest) (*models.Highscore, error) {
	if req.Score == 0 {
		return nil, fmt.Errorf("%w: score is required", services.ErrInvalidRequest)
	}
	s.submitted = append(s.submitted, req)
	return &models.Highscore{ID: uuid.New(), UserID: req.UserID, Score: req.Score}, nil
}

func (s *stubHighscores) List(ctx context.Context, limit, offset int, userID string) (*models.HighscorePage, error) {
	s.limit, s.offset, s.userID = limit, offset, userID
	return &models.HighscorePage{
		Entries:    []models.Highscore{{ID: uuid.New(), UserID: "a", PlayerName: "A", Score: 50}},
		TotalCount: 3,
		Limit:      limit,
		Offset:     offset,
	}, nil
}

func (s *stubHighscores) UserBest(ctx context.Context, userID string) (*models.Highscore, int64, error) {
	if userID != "a" {
		return nil, 0, services.ErrNotFound
	}
	return &models.Highscore{ID: uuid.New(), UserID: "a", PlayerName: "A", Score: 50}, 2, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type stubStatsCache struct{ stubPinger }

func (stubStatsCache) GetCacheStats(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"db_size": 3, "leaderboard_version": 2}, nil
}

func decode(t *testing.T, w *httptest.ResponseRecorder) (dto.APIResponse, map[string]interface{}) {
	t.Helper()
	var raw struct {
		dto.APIResponse
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	data := map[string]interface{}{}
	if len(raw.Data) > 0 {
		require.NoError(t, json.Unmarshal(raw.Data, &data))
	}
	return raw.APIResponse, data
}

func request(h http.Handler, method, path, body string, ctx context.Context) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if ctx != nil {
		req = req.WithContext(ctx)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestGameStateHandler_Lifecycle(t *testing.T) {
	handler := NewGameStateHandler(&stubGameStates{states: map[string]dto.GameState{}})
	r := chi.NewRouter()
	r.Mount("/api/game-state", handler.Routes())

	w := request(r, http.MethodGet, "/api/game-state/player-1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp, _ := decode(t, w)
	assert.False(t, resp.Success)

	w = request(r, http.MethodPost, "/api/game-state/", `{"userId":"player-1","money":12}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp, data := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, true, data["created"])

	w = request(r, http.MethodGet, "/api/game-state/player-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, float64(12), data["money"])
	assert.Equal(t, float64(3), data["lives"])

	w = request(r, http.MethodDelete, "/api/game-state/player-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, float64(1), data["deletedCount"])

	w = request(r, http.MethodDelete, "/api/game-state/player-1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGameStateHandler_BadRequests(t *testing.T) {
	handler := NewGameStateHandler(&stubGameStates{states: map[string]dto.GameState{}})

	w := request(http.HandlerFunc(handler.Save), http.MethodPost, "/", `{not json`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = request(http.HandlerFunc(handler.Save), http.MethodPost, "/", `{"money":1}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameStateHandler_TokenMustMatchUser(t *testing.T) {
	handler := NewGameStateHandler(&stubGameStates{states: map[string]dto.GameState{}})
	owner := uuid.New()
	ctx := auth.WithClaims(context.Background(), &auth.Claims{UserID: owner})

	w := request(http.HandlerFunc(handler.Save), http.MethodPost, "/", `{"userId":"someone-else"}`, ctx)
	assert.Equal(t, http.StatusForbidden, w.Code)

	body := fmt.Sprintf(`{"userId":%q}`, owner.String())
	w = request(http.HandlerFunc(handler.Save), http.MethodPost, "/", body, ctx)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHighscoreHandler_Submit(t *testing.T) {
	stub := &stubHighscores{}
	handler := NewHighscoreHandler(stub)

	w := request(http.HandlerFunc(handler.Submit), http.MethodPost, "/", `{"userId":"a","playerName":"A","score":120}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	resp, data := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, float64(120), data["score"])
	assert.NotEmpty(t, data["insertedId"])

	w = request(http.HandlerFunc(handler.Submit), http.MethodPost, "/", `{"userId":"a","playerName":"A"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, stub.submitted, 1)
}

func TestHighscoreHandler_ListParsesPaging(t *testing.T) {
	stub := &stubHighscores{}
	r := chi.NewRouter()
	r.Mount("/api/highscores", NewHighscoreHandler(stub).Routes())

	w := request(r, http.MethodGet, "/api/highscores?limit=2&offset=1&userId=a", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Equal(t, 2, stub.limit)
	assert.Equal(t, 1, stub.offset)
	assert.Equal(t, "a", stub.userID)
	assert.Equal(t, float64(3), data["totalCount"])
	assert.Equal(t, false, data["hasMore"])
	assert.Len(t, data["highscores"], 1)

	w = request(r, http.MethodGet, "/api/highscores?limit=abc&offset=xyz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dto.DefaultHighscoreLimit, stub.limit)
	assert.Equal(t, 0, stub.offset)
}

func TestHighscoreHandler_UserBest(t *testing.T) {
	r := chi.NewRouter()
	r.Mount("/api/highscores", NewHighscoreHandler(&stubHighscores{}).Routes())

	w := request(r, http.MethodGet, "/api/highscores/user/a", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Equal(t, float64(2), data["rank"])

	w = request(r, http.MethodGet, "/api/highscores/user/b", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthHandler(t *testing.T) {
	w := request(http.HandlerFunc(NewHealthHandler(stubPinger{}, nil).Health), http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "1.0.0", data["version"])

	degraded := NewHealthHandler(stubPinger{err: errors.New("connection refused")}, stubPinger{})
	w = request(http.HandlerFunc(degraded.Health), http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	_, data = decode(t, w)
	assert.Equal(t, "degraded", data["status"])
	svcs := data["services"].(map[string]interface{})
	assert.Equal(t, "error", svcs["database"].(map[string]interface{})["status"])
	assert.Equal(t, "ok", svcs["cache"].(map[string]interface{})["status"])
}

func TestHealthHandler_CacheStats(t *testing.T) {
	h := NewHealthHandler(stubPinger{}, stubStatsCache{})
	w := request(http.HandlerFunc(h.Health), http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	cache := data["services"].(map[string]interface{})["cache"].(map[string]interface{})
	details := cache["details"].(map[string]interface{})
	assert.Equal(t, float64(2), details["leaderboard_version"])
}

func TestHealthHandler_Info(t *testing.T) {
	w := request(http.HandlerFunc(NewHealthHandler(stubPinger{}, nil).Info), http.MethodGet, "/api/info", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	_, data := decode(t, w)
	assert.Equal(t, "Balatro Game Backend API", data["name"])
	assert.Contains(t, data["endpoints"], "highscores")
}

type stubGuests struct{}

func (stubGuests) CreateGuest(ctx context.Context, req dto.GuestRequest) (*dto.GuestSession, error) {
	return &dto.GuestSession{UserID: uuid.NewString(), DisplayName: req.DisplayName, Token: "t", ExpiresAt: time.Now(), RecoveryKey: "k"}, nil
}

func (stubGuests) Resume(ctx context.Context, req dto.ResumeRequest) (*dto.GuestSession, error) {
	return nil, services.ErrInvalidCredentials
}

func TestAuthHandler(t *testing.T) {
	r := chi.NewRouter()
	r.Mount("/api/auth", NewAuthHandler(stubGuests{}).Routes())

	w := request(r, http.MethodPost, "/api/auth/guest", "", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = request(r, http.MethodPost, "/api/auth/guest", `{"displayName":"Ada"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	_, data := decode(t, w)
	assert.Equal(t, "Ada", data["displayName"])

	w = request(r, http.MethodPost, "/api/auth/resume", `{"userId":"x","recoveryKey":"y"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, statusFor(fmt.Errorf("%w: score", services.ErrInvalidRequest)))
	assert.Equal(t, http.StatusUnauthorized, statusFor(services.ErrInvalidCredentials))
	assert.Equal(t, http.StatusNotFound, statusFor(services.ErrNotFound))
	assert.Equal(t, http.StatusConflict, statusFor(fmt.Errorf("create: %w", services.ErrConflict)))
	assert.Equal(t, http.StatusInternalServerError, statusFor(errors.New("boom")))
}

func TestNotFound(t *testing.T) {
	w := request(http.HandlerFunc(NotFound), http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	resp, data := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "/nope", data["path"])
}

func TestHighscoreHandler_SubmitMiddlewareOnlyWrapsSubmit(t *testing.T) {
	blocked := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})
	}
	r := chi.NewRouter()
	r.Mount("/api/highscores", NewHighscoreHandler(&stubHighscores{}).Routes(blocked))

	w := request(r, http.MethodPost, "/api/highscores", `{"userId":"a","playerName":"A","score":1}`, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = request(r, http.MethodGet, "/api/highscores", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
