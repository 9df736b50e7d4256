package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
)

type componentRepository struct {
	*DB
	logger *logger.Logger
}

// NewComponentRepository constructs a [ComponentRepository] on db.
func NewComponentRepository(db *DB, logger *logger.Logger) ComponentRepository {
	return &componentRepository{
		DB:     db,
		logger: logger,
	}
}

// List implements [ComponentRepository].
func (c *componentRepository) List(ctx context.Context, recordID int64) ([]string, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListComponentsQuery(c.builder, recordID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "componentRepository.List").
			Int64("record_id", recordID).
			Msg("failed to query components")
		return nil, c.wrapDBError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		names = append(names, name)
	}

	if err = rows.Err(); err != nil {
		return nil, c.wrapDBError(ErrScanningRows, err)
	}

	return names, nil
}

// Add implements [ComponentRepository].
func (c *componentRepository) Add(ctx context.Context, recordID int64, name string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildAddComponentQuery(c.builder, recordID, name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrComponentExists
		case isForeignKeyViolation(err):
			return ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "componentRepository.Add").
			Int64("record_id", recordID).
			Str("name", name).
			Msg("failed to add component")
		return c.wrapDBError(ErrExecutingStatement, err)
	}

	return nil
}

// Remove implements [ComponentRepository].
func (c *componentRepository) Remove(ctx context.Context, recordID int64, name string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRemoveComponentQuery(c.builder, recordID, name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := c.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "componentRepository.Remove").
			Int64("record_id", recordID).
			Str("name", name).
			Msg("failed to remove component")
		return c.wrapDBError(ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrComponentNotFound
	}

	return nil
}
