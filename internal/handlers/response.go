package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anhbaysgalan1/balatro/internal/application/dto"
	"github.com/anhbaysgalan1/balatro/internal/services"
)

func writeJSONResponse(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(dto.APIResponse{
		Success: statusCode < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	response := dto.APIResponse{Success: false, Message: message}
	if err != nil {
		response.Error = err.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NotFound answers unknown routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusNotFound, "Endpoint not found. See /api/info for the available endpoints", map[string]string{
		"path":   r.URL.Path,
		"method": r.Method,
	})
}
