package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/autokeeper/internal/common"
	"github.com/dmitrijs2005/autokeeper/internal/logging"
	"github.com/dmitrijs2005/autokeeper/internal/server/models"
)

const msgInternal = "Internal server error"

type envelope struct {
	Success    bool               `json:"success"`
	Data       any                `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
	Message    string             `json:"message,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithData(w http.ResponseWriter, status int, data any) {
	respondWithJSON(w, status, envelope{Success: true, Data: data})
}

func respondWithMessage(w http.ResponseWriter, status int, msg string) {
	respondWithJSON(w, status, envelope{Success: true, Message: msg})
}

func respondWithFailure(w http.ResponseWriter, status int, msg string) {
	respondWithJSON(w, status, envelope{Success: false, Message: msg})
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch common.KindOf(err) {
	case common.ErrValidation:
		return http.StatusBadRequest
	case common.ErrUnauthenticated, common.ErrInvalidCredentials, common.ErrInvalidToken:
		return http.StatusUnauthorized
	case common.ErrNotFound:
		return http.StatusNotFound
	case common.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError is the single place where service errors become HTTP
// responses. Internal failures are logged and replaced by a generic
// message.
func respondWithError(w http.ResponseWriter, r *http.Request, l logging.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		l.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondWithFailure(w, status, msgInternal)
		return
	}

	var e *common.Error
	msg := http.StatusText(status)
	if errors.As(err, &e) {
		msg = e.Error()
	}
	respondWithFailure(w, status, msg)
}
