package middleware

import (
	"net/http"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"nutriplan-dashboard/internal/platform/logger"
)

type RequestRecorder interface {
	HTTPRequest(method, code string)
}

// AccessLog loguea cada request al terminar. rec puede ser nil.
func AccessLog(log logger.Logger, rec RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				if rec != nil {
					rec.HTTPRequest(r.Method, strconv.Itoa(status))
				}

				fields := map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"status":     status,
					"bytes":      ww.BytesWritten(),
					"remote":     r.RemoteAddr,
					"elapsed_ms": time.Since(start).Milliseconds(),
				}
				if status >= 500 {
					log.Warn("request completed", fields)
					return
				}
				log.Info("request completed", fields)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
