package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/go-chi/chi/v5"
)

// GuestService issues guest accounts and tokens
type GuestService interface {
	CreateGuest(ctx context.Context, req dto.GuestRequest) (*dto.GuestSession, error)
	Resume(ctx context.Context, req dto.ResumeRequest) (*dto.GuestSession, error)
}

type AuthHandler struct {
	service GuestService
}

func NewAuthHandler(service GuestService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/guest", h.Guest)
	r.Post("/resume", h.Resume)

	return r
}

func (h *AuthHandler) Guest(w http.ResponseWriter, r *http.Request) {
	var req dto.GuestRequest
	// An empty body asks for a generated display name
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	session, err := h.service.CreateGuest(r.Context(), req)
	if err != nil {
		writeErrorResponse(w, statusFor(err), "Failed to create guest account", err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, "Guest account created", session)
}

func (h *AuthHandler) Resume(w http.ResponseWriter, r *http.Request) {
	var req dto.ResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	session, err := h.service.Resume(r.Context(), req)
	if err != nil {
		writeErrorResponse(w, statusFor(err), "Failed to resume guest account", err)
		return
	}

	writeJSONResponse(w, http.StatusOK, "Guest account resumed", session)
}
