package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/auth"
	"github.com/anhbaysgalan1/balatro/internal/models"
	"github.com/go-chi/chi/v5"
)

// HighscoreService is the leaderboard behaviour the highscore routes need
type HighscoreService interface {
	Submit(ctx context.Context, req dto.CreateHighscoreRequest) (*models.Highscore, error)
	List(ctx context.Context, limit, offset int, userID string) (*models.HighscorePage, error)
	UserBest(ctx context.Context, userID string) (*models.Highscore, int64, error)
}

type HighscoreHandler struct {
	service HighscoreService
}

func NewHighscoreHandler(service HighscoreService) *HighscoreHandler {
	return &HighscoreHandler{service: service}
}

// Routes mounts the leaderboard. submitMiddlewares only wrap submission.
func (h *HighscoreHandler) Routes(submitMiddlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(submitMiddlewares...).Post("/", h.Submit)
	r.Get("/", h.List)
	r.Get("/user/{userId}", h.UserBest)

	return r
}

func (h *HighscoreHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHighscoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if !auth.CanActFor(r.Context(), req.UserID) {
		writeErrorResponse(w, http.StatusForbidden, "Token does not belong to this user", nil)
		return
	}

	highscore, err := h.service.Submit(r.Context(), req)
	if err != nil {
		writeErrorResponse(w, statusFor(err), "Failed to save highscore", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, "Highscore saved", dto.CreateHighscoreResult{
		InsertedID: highscore.ID.String(),
		Score:      highscore.Score,
	})
}

func (h *HighscoreHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := dto.DefaultHighscoreLimit
	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	offset := 0
	if raw := query.Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			offset = parsed
		}
	}

	page, err := h.service.List(r.Context(), limit, offset, query.Get("userId"))
	if err != nil {
		writeErrorResponse(w, statusFor(err), "Failed to load highscores", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, "Highscores loaded", dto.HighscoreListFromPage(page))
}

func (h *HighscoreHandler) UserBest(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "userId is required", nil)
		return
	}

	best, rank, err := h.service.UserBest(r.Context(), userID)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			writeErrorResponse(w, http.StatusNotFound, "No highscore found for this user", nil)
			return
		}
		writeErrorResponse(w, statusFor(err), "Failed to load highscore", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, "User highscore loaded", dto.UserHighscore{
		Highscore: dto.HighscoreFromModel(*best),
		Rank:      rank,
	})
}
