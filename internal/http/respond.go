package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vadhh/menuweb/internal/repository"
	"github.com/vadhh/menuweb/internal/service"
)

// ErrorResponse is the error envelope: a message field and nothing else.
type ErrorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Message: message})
}

// respondServiceError maps sentinel errors to status codes. Anything
// unrecognized is a storage or driver failure and surfaces as a generic
// 500 so raw driver errors never reach the caller.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrCategoryNameRequired),
		errors.Is(err, service.ErrProductFieldsMissing),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrNoUpdateFields),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrMalformedItem),
		errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrPasswordTooShort):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, repository.ErrOrderNotFound),
		errors.Is(err, repository.ErrUserNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrDuplicateCategory),
		errors.Is(err, repository.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("unexpected error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
