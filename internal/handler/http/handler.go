package http

import (
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/service"
)

// Handler serves the registry REST API.
type Handler struct {
	services *service.Services
	metrics  *httpMetrics

	logger *logger.Logger
}

// NewHandler builds a Handler over services. Each handler owns its own
// Prometheus registry, exposed on /metrics.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  newHTTPMetrics(),
		logger:   logger,
	}
}
