package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/blaisecz/sleep-records/pkg/logger"
	"github.com/blaisecz/sleep-records/pkg/response"
)

// Recovery turns a panic in a handler into a 500 envelope.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Bytes("stack", debug.Stack()).
						Msg("Panic recovered")
					response.InternalError("예기치 않은 오류가 발생했습니다.").Write(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
