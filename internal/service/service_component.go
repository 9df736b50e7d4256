package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
	"github.com/MKhiriev/go-registry-keeper/internal/validators"
	"github.com/MKhiriev/go-registry-keeper/models"
)

type componentService struct {
	componentRepository store.ComponentRepository
	validator           validators.Validator

	logger *logger.Logger
}

func NewComponentService(componentRepository store.ComponentRepository, logger *logger.Logger) ComponentService {
	return &componentService{
		componentRepository: componentRepository,
		validator:           validators.NewRecordValidator(),
		logger:              logger,
	}
}

func (c *componentService) List(ctx context.Context, recordID int64) ([]string, error) {
	if err := c.validate(ctx, models.Component{RecordID: recordID}, validators.FieldID); err != nil {
		return nil, err
	}

	return c.componentRepository.List(ctx, recordID)
}

func (c *componentService) Add(ctx context.Context, recordID int64, name string) error {
	component := models.Component{RecordID: recordID, Name: strings.TrimSpace(name)}
	if err := c.validate(ctx, component); err != nil {
		return err
	}

	return c.componentRepository.Add(ctx, component.RecordID, component.Name)
}

func (c *componentService) Remove(ctx context.Context, recordID int64, name string) error {
	if err := c.validate(ctx, models.Component{RecordID: recordID, Name: name}); err != nil {
		return err
	}

	return c.componentRepository.Remove(ctx, recordID, name)
}

func (c *componentService) validate(ctx context.Context, obj any, fields ...string) error {
	if err := c.validator.Validate(ctx, obj, fields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}
