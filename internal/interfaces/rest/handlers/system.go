package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
)

const healthTimeout = 2 * time.Second

var errTooManyRequests = &application.ServiceError{
	Code:       "RATE_LIMITED",
	Message:    "Too many requests, please try again later",
	HTTPStatus: http.StatusTooManyRequests,
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, map[string]string{"message": "Animal Shelter API is running..."})
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.health.Ping(ctx); err != nil {
		h.logger.Error("health check failed", "error", err)
		rest.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "unavailable", Database: "down"})
		return
	}
	rest.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Database: "up"})
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusNotFound, rest.ErrorResponse{
		Success: false,
		Message: "Not Found - " + r.URL.Path,
		Code:    application.ErrCodeNotFound,
	})
}
