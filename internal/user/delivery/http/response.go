package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tair/user-service/internal/user/domain"
)

// Response is the uniform envelope wrapping every API response, success and
// error alike.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// genericErrorMessage is what callers see for unexpected failures; internal
// detail never leaks past the boundary.
const genericErrorMessage = "an unexpected error occurred"

// mapError is the single dispatch point from the failure taxonomy to an HTTP
// status and user-visible message.
func mapError(err error) (int, string) {
	var conflict *domain.ConflictError
	var invalid *domain.ValidationError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Error()
	case errors.As(err, &invalid):
		return http.StatusBadRequest, invalid.Error()
	default:
		return http.StatusInternalServerError, genericErrorMessage
	}
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, Response{Success: true, Data: data})
}

func respondError(w http.ResponseWriter, err error) {
	status, message := mapError(err)
	respondJSON(w, status, Response{Success: false, Message: message})
}
