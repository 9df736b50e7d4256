package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidID            = errors.New("record id must not be negative")
	ErrEmptyName            = errors.New("name is required")
	ErrNameTooLong          = errors.New("name is too long")
	ErrKindTooLong          = errors.New("kind is too long")
	ErrStatusTooLong        = errors.New("status is too long")
	ErrLocationTooLong      = errors.New("location is too long")
	ErrInvalidYear          = errors.New("year must be 0 or between 1000 and 2100")
	ErrEmptyComponentName   = errors.New("component name is required")
	ErrComponentNameTooLong = errors.New("component name is too long")
)
