package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
)

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// DB is a database/sql handle plus the dialect details the repositories need.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	builder            sq.StatementBuilderType
	migrate            func(*sql.DB) error
	logger             *logger.Logger
}

// Migrate applies the schema that belongs to this database kind.
func (db *DB) Migrate() error {
	return db.migrate(db.DB)
}

// IsRetryable reports whether err is a transient database failure.
func (db *DB) IsRetryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

// noRetryClassifier classifies every error as non-retryable.
type noRetryClassifier struct{}

func (noRetryClassifier) Classify(error) ErrorClassification {
	return NonRetryable
}
