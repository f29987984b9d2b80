package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/auth"
	"github.com/go-chi/chi/v5"
)

// GameStateService is the persistence behaviour the game state routes need
type GameStateService interface {
	Save(ctx context.Context, state dto.GameState) (*dto.SaveGameStateResult, error)
	Load(ctx context.Context, userID string) (*dto.GameState, error)
	Delete(ctx context.Context, userID string) error
}

type GameStateHandler struct {
	service GameStateService
}

func NewGameStateHandler(service GameStateService) *GameStateHandler {
	return &GameStateHandler{service: service}
}

func (h *GameStateHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Save)
	r.Get("/{userId}", h.Load)
	r.Delete("/{userId}", h.Delete)

	return r
}

func (h *GameStateHandler) Save(w http.ResponseWriter, r *http.Request) {
	var state dto.GameState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if !auth.CanActFor(r.Context(), state.UserID) {
		writeErrorResponse(w, http.StatusForbidden, "Token does not belong to this user", nil)
		return
	}

	result, err := h.service.Save(r.Context(), state)
	if err != nil {
		writeErrorResponse(w, statusFor(err), "Failed to save game state", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, "Game state saved", result)
}

func (h *GameStateHandler) Load(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "userId is required", nil)
		return
	}

	if !auth.CanActFor(r.Context(), userID) {
		writeErrorResponse(w, http.StatusForbidden, "Token does not belong to this user", nil)
		return
	}

	state, err := h.service.Load(r.Context(), userID)
	if err != nil {
		if statusFor(err) == http.StatusNotFound {
			writeErrorResponse(w, http.StatusNotFound, "Game state not found", nil)
			return
		}
		writeErrorResponse(w, statusFor(err), "Failed to load game state", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, "Game state loaded", state)
}

func (h *GameStateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		writeErrorResponse(w, http.StatusBadRequest, "userId is required", nil)
		return
	}

	if !auth.CanActFor(r.Context(), userID) {
		writeErrorResponse(w, http.StatusForbidden, "Token does not belong to this user", nil)
		return
	}

	if err := h.service.Delete(r.Context(), userID); err != nil {
		if statusFor(err) == http.StatusNotFound {
			writeErrorResponse(w, http.StatusNotFound, "No game state to delete", nil)
			return
		}
		writeErrorResponse(w, statusFor(err), "Failed to delete game state", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, "Game state deleted", dto.DeleteResult{DeletedCount: 1})
}
