package middleware

import (
	"net/http"
	"slices"
	"time"

	apperrors "github.com/kbukum/restkit/errors"
	"github.com/kbukum/restkit/logger"
)

// probePaths are served too often to be worth a log line.
var probePaths = []string{"/health", "/live", "/ready"}

// RequestLogger logs every request with method, path, status and duration.
// Probe endpoints are skipped.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if slices.Contains(probePaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			fields := map[string]interface{}{
				logger.FieldMethod:   r.Method,
				logger.FieldPath:     r.URL.Path,
				logger.FieldStatus:   sw.status,
				logger.FieldDuration: duration.Milliseconds(),
				"bytes":              sw.size,
			}
			if id := r.Header.Get(HeaderRequestID); id != "" {
				fields[logger.FieldRequestID] = id
			}
			if !apperrors.IsSuccessStatus(sw.status) {
				fields[logger.FieldErrorCode] = apperrors.CodeForStatus(sw.status)
			}

			l := log
			if l == nil {
				l = logger.GetGlobalLogger()
			}
			logByStatus(l.WithContext(r.Context()), fields, sw.status)
		})
	}
}

// logByStatus logs at error level for 5xx, warn for 4xx and debug otherwise.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
