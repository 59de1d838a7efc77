package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
)

// timeoutBody is the envelope http.TimeoutHandler writes once d elapses.
var timeoutBody = func() string {
	b, _ := json.Marshal(rest.ErrorResponse{
		Message: "Request timeout",
		Code:    application.ErrCodeTimeout,
	})
	return string(b)
}()

// Timeout cancels the request context after d and answers 503. A zero d
// disables the limit.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.TimeoutHandler(next, d, timeoutBody)
	}
}
