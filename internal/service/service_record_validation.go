package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-registry-keeper/internal/validators"
	"github.com/MKhiriev/go-registry-keeper/models"
)

// RecordValidationService checks input against the registry schema before
// handing it to the wrapped RecordService.
type RecordValidationService struct {
	inner     RecordService
	validator validators.Validator
}

func NewRecordValidationService() RecordServiceWrapper {
	return &RecordValidationService{
		validator: validators.NewRecordValidator(),
	}
}

func (v *RecordValidationService) List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error) {
	return v.inner.List(ctx, filter)
}

func (v *RecordValidationService) Get(ctx context.Context, id int64) (models.Record, error) {
	if err := v.validate(ctx, models.Record{ID: id}, validators.FieldID); err != nil {
		return models.Record{}, err
	}

	return v.inner.Get(ctx, id)
}

func (v *RecordValidationService) Create(ctx context.Context, rec models.Record, idempotencyKey string) (models.Record, bool, error) {
	// the id of a new record is assigned by the store
	err := v.validate(ctx, rec,
		validators.FieldName,
		validators.FieldKind,
		validators.FieldStatus,
		validators.FieldYear,
		validators.FieldLocation,
	)
	if err != nil {
		return models.Record{}, false, err
	}

	return v.inner.Create(ctx, rec, idempotencyKey)
}

func (v *RecordValidationService) Update(ctx context.Context, rec models.Record) (models.Record, error) {
	if err := v.validate(ctx, rec); err != nil {
		return models.Record{}, err
	}

	return v.inner.Update(ctx, rec)
}

func (v *RecordValidationService) Delete(ctx context.Context, id int64) error {
	if err := v.validate(ctx, models.Record{ID: id}, validators.FieldID); err != nil {
		return err
	}

	return v.inner.Delete(ctx, id)
}

func (v *RecordValidationService) Wrap(inner RecordService) RecordService {
	v.inner = inner
	return v
}

func (v *RecordValidationService) validate(ctx context.Context, obj any, fields ...string) error {
	if err := v.validator.Validate(ctx, obj, fields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
