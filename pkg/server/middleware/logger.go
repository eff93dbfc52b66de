package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Logger seeds each request's context with a request-scoped logger that
// handlers retrieve via zerolog.Ctx. The chi request id is attached when
// RequestID runs earlier in the chain, so one import's log lines correlate.
func Logger(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logCtx := logger.With().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("remote_ip", req.RemoteAddr)
			if reqID := chimiddleware.GetReqID(req.Context()); reqID != "" {
				logCtx = logCtx.Str("request_id", reqID)
			}
			reqLogger := logCtx.Logger()

			ctx := reqLogger.WithContext(req.Context())
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}
