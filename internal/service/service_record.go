package service

import (
	"context"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
	"github.com/MKhiriev/go-registry-keeper/models"
)

type recordService struct {
	recordRepository store.RecordRepository

	logger *logger.Logger
}

func NewRecordService(recordRepository store.RecordRepository, logger *logger.Logger) RecordService {
	return &recordService{
		recordRepository: recordRepository,
		logger:           logger,
	}
}

func (r *recordService) List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error) {
	return r.recordRepository.List(ctx, filter)
}

func (r *recordService) Get(ctx context.Context, id int64) (models.Record, error) {
	return r.recordRepository.GetByID(ctx, id)
}

func (r *recordService) Create(ctx context.Context, rec models.Record, idempotencyKey string) (models.Record, bool, error) {
	rec.ID = 0
	stored, created, err := r.recordRepository.Create(ctx, rec, idempotencyKey)
	if err != nil {
		return models.Record{}, false, err
	}

	if created {
		logger.FromContext(ctx).Info().
			Str("func", "recordService.Create").
			Int64("id", stored.ID).
			Msg("record created")
	}

	return stored, created, nil
}

func (r *recordService) Update(ctx context.Context, rec models.Record) (models.Record, error) {
	return r.recordRepository.Update(ctx, rec)
}

func (r *recordService) Delete(ctx context.Context, id int64) error {
	return r.recordRepository.Delete(ctx, id)
}
