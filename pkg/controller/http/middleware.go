package http

import (
	"net/http"
	"time"

	"github.com/finops-lab/compliancebot/pkg/utils/logging"
)

// loggingMiddleware embeds the default logger into the request context
// and logs one line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.With(r.Context(), logging.Default())
		started := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		logging.From(ctx).Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"elapsed", time.Since(started),
		)
	})
}
