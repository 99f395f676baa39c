package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"simple-gifting/internal/domain"

	"github.com/rs/zerolog"
)

type errorResponse struct {
	Error  string             `json:"error"`
	Field  string             `json:"field,omitempty"`
	Errors []domain.UserError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError maps domain errors to HTTP statuses
func respondError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	var validation *domain.ValidationError
	var userErrs *domain.UserErrorsError

	switch {
	case errors.As(err, &validation):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Message, Field: validation.Field})
	case errors.Is(err, domain.ErrShopRequired):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.As(err, &userErrs):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: userErrs.Operation, Errors: userErrs.Errors})
	case errors.Is(err, domain.ErrAssetNotFound), errors.Is(err, domain.ErrThemeNotFound), errors.Is(err, domain.ErrProductNotFound):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNoAccessToken), errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		logger.Error().Err(err).Msg("Request failed")
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

// decodeJSON decodes an optional JSON body; an empty body leaves v untouched
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return &domain.ValidationError{Message: "invalid JSON body"}
	}
	return nil
}
