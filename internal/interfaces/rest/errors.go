package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/shelter-api/internal/application"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Detail  string `json:"detail,omitempty"`
}

// ErrorWriter maps application errors to the JSON error envelope.
type ErrorWriter struct {
	logger        *slog.Logger
	includeDetail bool
}

// NewErrorWriter builds an ErrorWriter. includeDetail exposes the wrapped error text and
// must stay off outside development.
func NewErrorWriter(logger *slog.Logger, includeDetail bool) *ErrorWriter {
	return &ErrorWriter{logger: logger, includeDetail: includeDetail}
}

func (e *ErrorWriter) Write(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := application.ToHTTPStatus(err)

	e.log(r, err, statusCode)

	response := ErrorResponse{
		Success: false,
		Message: application.PublicMessage(err),
		Code:    application.ToErrorCode(err),
	}
	if e.includeDetail {
		response.Detail = err.Error()
	}

	WriteJSON(w, statusCode, response)
}

func (e *ErrorWriter) log(r *http.Request, err error, statusCode int) {
	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status", statusCode,
		"category", application.CategorizeError(err),
		"error", err,
	}
	switch application.CategorizeError(err) {
	case application.CategoryInfrastructure:
		e.logger.Error("request failed", attrs...)
	case application.CategoryTransient:
		e.logger.Warn("request failed", attrs...)
	default:
		e.logger.Debug("request rejected", attrs...)
	}
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteText writes a plain-text body, as the payment gateway expects from IPN endpoints.
func WriteText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
