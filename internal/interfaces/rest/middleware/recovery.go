package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
	"github.com/DanielPopoola/shelter-api/internal/metrics"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Recovery answers a panicking handler with the INTERNAL_ERROR envelope.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func Recovery(logger *slog.Logger, errs *rest.ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				metrics.RecordPanic(r.Method)
				logger.Error("handler panicked",
					"request_id", chimiddleware.GetReqID(r.Context()),
					"route", r.Method+" "+r.URL.Path,
					"panic", rec,
					"stack", string(debug.Stack()),
				)
				errs.Write(w, r, application.NewInternalError(fmt.Errorf("panic: %v", rec)))
			}()

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(fn)
	}
}
