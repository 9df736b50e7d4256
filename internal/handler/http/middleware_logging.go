package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
)

func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		sw := newStatusRecorder(w)
		next.ServeHTTP(sw, r)

		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Str("route", routePattern(r)).
			Int("status", sw.Status()).
			Dur("duration", time.Since(start)).
			Int("size", sw.size).
			Send()
	})
}
