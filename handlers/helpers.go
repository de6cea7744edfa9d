package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"tournament/models"
	"tournament/validation"

	"github.com/charmbracelet/log"
)

// payloads checks bodies that decoded with type mismatches so the response
// can list every bad field, not only the mistyped one.
var payloads = validation.New()

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []models.FieldError `json:"errors,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn("failed to encode JSON response", "err", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// writeError maps a service error onto a status code and error body.
// Infrastructure failures pass their message through and are logged.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	var verr *models.ValidationError
	var capErr *models.CapacityError

	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Validation failed", Errors: verr.Fields})
	case errors.As(err, &capErr):
		respondError(w, http.StatusBadRequest, capErr.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, models.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, models.ErrTeamNotFound):
		respondError(w, http.StatusNotFound, "Team not found")
	case errors.Is(err, models.ErrAdminExists):
		respondError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", "err", err)
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// decodeJSON reads a JSON body into dst and writes the error response itself
// when that fails.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		verr := payloads.Check(dst, validation.TypeError(typeErr))
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "Validation failed", Errors: verr.Fields})
	case errors.As(err, &tooLarge):
		respondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
	case errors.Is(err, io.EOF):
		respondError(w, http.StatusBadRequest, "Request body is empty")
	default:
		respondError(w, http.StatusBadRequest, "Invalid request body")
	}
	return false
}
