package validators

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-registry-keeper/models"
)

// Field names accepted by [RecordValidator].
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldKind     = "kind"
	FieldStatus   = "status"
	FieldYear     = "year"
	FieldLocation = "location"

	// FieldComponentName targets models.Component.Name.
	FieldComponentName = "component_name"
)

// Column limits of the registry schema.
const (
	MaxNameLength     = 255
	MaxTagLength      = 64
	MaxLocationLength = 255

	MinYear = 1000
	MaxYear = 2100
)

// RecordValidator checks records and components against the registry
// schema.
type RecordValidator struct{}

// NewRecordValidator constructs a [RecordValidator].
func NewRecordValidator() Validator {
	return &RecordValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms of models.Record and models.Component are accepted; anything else
// yields [ErrUnsupportedType].
func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)

	case models.Component:
		return v.validateComponent(ctx, value, fields...)
	case *models.Component:
		return v.validateComponent(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateRecord checks id, name, kind, status, year and location when no
// fields are given.
func (v *RecordValidator) validateRecord(_ context.Context, rec models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldKind, FieldStatus, FieldYear, FieldLocation}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if rec.ID < 0 {
				return ErrInvalidID
			}
		case FieldName:
			if strings.TrimSpace(rec.Name) == "" {
				return ErrEmptyName
			}
			if utf8.RuneCountInString(rec.Name) > MaxNameLength {
				return ErrNameTooLong
			}
		case FieldKind:
			if utf8.RuneCountInString(rec.Kind) > MaxTagLength {
				return ErrKindTooLong
			}
		case FieldStatus:
			if utf8.RuneCountInString(rec.Status) > MaxTagLength {
				return ErrStatusTooLong
			}
		case FieldYear:
			if rec.Year != 0 && (rec.Year < MinYear || rec.Year > MaxYear) {
				return ErrInvalidYear
			}
		case FieldLocation:
			if utf8.RuneCountInString(rec.Location) > MaxLocationLength {
				return ErrLocationTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateComponent(_ context.Context, c models.Component, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldComponentName}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if c.RecordID < 0 {
				return ErrInvalidID
			}
		case FieldComponentName:
			if strings.TrimSpace(c.Name) == "" {
				return ErrEmptyComponentName
			}
			if utf8.RuneCountInString(c.Name) > MaxNameLength {
				return ErrComponentNameTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
