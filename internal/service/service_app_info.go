package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
)

type appInfoService struct {
	appVersion string
	db         HealthChecker

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, db HealthChecker, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		db:         db,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) CheckHealth(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Err(err).Str("func", "appInfoService.CheckHealth").Msg("database is not reachable")
		return fmt.Errorf("%w: %w", store.ErrTransient, err)
	}
	return nil
}
