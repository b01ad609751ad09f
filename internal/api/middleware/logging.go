package middleware

import (
	"net/http"
	"time"

	"github.com/blaisecz/sleep-records/pkg/logger"
	"github.com/rs/zerolog"
)

// Logging writes one structured line per request. Server errors log at error
// level, client errors at warn, everything else at info.
func Logging(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sr := newStatusRecorder(w)
			start := time.Now()

			next.ServeHTTP(sr, r)

			var event *zerolog.Event
			switch {
			case sr.status >= http.StatusInternalServerError:
				event = log.Error()
			case sr.status >= http.StatusBadRequest:
				event = log.Warn()
			default:
				event = log.Info()
			}
			event.
				Str("request_id", RequestIDFrom(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sr.status).
				Dur("duration", time.Since(start)).
				Msg("HTTP request")
		})
	}
}
