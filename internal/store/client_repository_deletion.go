package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/models"
)

type localDeletionRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewLocalDeletionRepository constructs the SQLite-backed
// [LocalDeletionRepository].
func NewLocalDeletionRepository(db *DB, logger *logger.Logger) LocalDeletionRepository {
	return &localDeletionRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Add implements [LocalDeletionRepository].
func (l *localDeletionRepository) Add(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertDeletionQuery(l.builder, id, l.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localDeletionRepository.Add").
			Int64("id", id).
			Msg("failed to record tombstone")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// List implements [LocalDeletionRepository].
func (l *localDeletionRepository) List(ctx context.Context) ([]models.PendingDeletion, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectDeletionsQuery(l.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "localDeletionRepository.List").Msg("failed to query tombstones")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	deletions := make([]models.PendingDeletion, 0)
	for rows.Next() {
		var (
			d         models.PendingDeletion
			createdAt int64
		)
		if err = rows.Scan(&d.ID, &d.Attempts, &d.LastError, &d.Parked, &createdAt); err != nil {
			log.Err(err).Str("func", "localDeletionRepository.List").Msg("failed to scan tombstone")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		d.CreatedAt = fromUnixMilli(createdAt)
		deletions = append(deletions, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return deletions, nil
}

// RecordAttempt implements [LocalDeletionRepository].
func (l *localDeletionRepository) RecordAttempt(ctx context.Context, id int64, lastErr string, maxAttempts int) (bool, error) {
	return recordAttempt(ctx, l.DB, "localDeletionRepository.RecordAttempt", localDeletionsTable, id, lastErr, maxAttempts)
}

// Requeue implements [LocalDeletionRepository].
func (l *localDeletionRepository) Requeue(ctx context.Context, id int64) error {
	return execByID(ctx, l.DB, "localDeletionRepository.Requeue", id, func() (string, []any, error) {
		return buildRequeueQuery(l.builder, localDeletionsTable, id)
	}, true)
}

// Delete implements [LocalDeletionRepository].
func (l *localDeletionRepository) Delete(ctx context.Context, id int64) error {
	return execByID(ctx, l.DB, "localDeletionRepository.Delete", id, func() (string, []any, error) {
		return buildDeleteByIDQuery(l.builder, localDeletionsTable, id)
	}, false)
}
