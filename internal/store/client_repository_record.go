package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/models"
)

type localRecordRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalRecordRepository constructs the SQLite-backed [LocalRecordRepository].
func NewLocalRecordRepository(db *DB, logger *logger.Logger) LocalRecordRepository {
	return &localRecordRepository{
		DB:     db,
		logger: logger,
	}
}

// GetAll implements [LocalRecordRepository].
func (l *localRecordRepository) GetAll(ctx context.Context) ([]models.PendingRecord, error) {
	return l.selectRecords(ctx, "localRecordRepository.GetAll", nil)
}

// Pending implements [LocalRecordRepository].
func (l *localRecordRepository) Pending(ctx context.Context) ([]models.PendingRecord, error) {
	return l.selectRecords(ctx, "localRecordRepository.Pending", sq.Eq{"parked": false})
}

// Parked implements [LocalRecordRepository].
func (l *localRecordRepository) Parked(ctx context.Context) ([]models.PendingRecord, error) {
	return l.selectRecords(ctx, "localRecordRepository.Parked", sq.Eq{"parked": true})
}

// GetByID implements [LocalRecordRepository].
func (l *localRecordRepository) GetByID(ctx context.Context, id int64) (models.PendingRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLocalRecordsQuery(l.builder, sq.Eq{"id": id})
	if err != nil {
		return models.PendingRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rec, err := scanLocalRecord(l.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.PendingRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.GetByID").
			Int64("id", id).
			Msg("failed to scan replica row")
		return models.PendingRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

// Add implements [LocalRecordRepository].
func (l *localRecordRepository) Add(ctx context.Context, rec models.PendingRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertLocalRecordQuery(l.builder, rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := l.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Add").
			Int64("id", rec.ID).
			Msg("failed to insert replica row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrDuplicateID, rec.ID)
	}

	return nil
}

// Put implements [LocalRecordRepository].
func (l *localRecordRepository) Put(ctx context.Context, rec models.PendingRecord) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertLocalRecordQuery(l.builder, rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Put").
			Int64("id", rec.ID).
			Msg("failed to upsert replica row")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Delete implements [LocalRecordRepository].
func (l *localRecordRepository) Delete(ctx context.Context, id int64) error {
	return execByID(ctx, l.DB, "localRecordRepository.Delete", id, func() (string, []any, error) {
		return buildDeleteByIDQuery(l.builder, localRecordsTable, id)
	}, false)
}

// MinID implements [LocalRecordRepository].
func (l *localRecordRepository) MinID(ctx context.Context) (int64, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildMinLocalIDQuery(l.builder)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var minID sql.NullInt64
	if err = l.DB.QueryRowContext(ctx, query, args...).Scan(&minID); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.MinID").
			Msg("failed to read lowest replica id")
		return 0, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return minID.Int64, minID.Valid, nil
}

// RecordAttempt implements [LocalRecordRepository].
func (l *localRecordRepository) RecordAttempt(ctx context.Context, id int64, lastErr string, maxAttempts int) (bool, error) {
	return recordAttempt(ctx, l.DB, "localRecordRepository.RecordAttempt", localRecordsTable, id, lastErr, maxAttempts)
}

// Requeue implements [LocalRecordRepository].
func (l *localRecordRepository) Requeue(ctx context.Context, id int64) error {
	return execByID(ctx, l.DB, "localRecordRepository.Requeue", id, func() (string, []any, error) {
		return buildRequeueQuery(l.builder, localRecordsTable, id)
	}, true)
}

func (l *localRecordRepository) selectRecords(ctx context.Context, op string, where sq.Sqlizer) ([]models.PendingRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectLocalRecordsQuery(l.builder, where)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := l.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", op).Msg("failed to query replica rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.PendingRecord, 0)
	for rows.Next() {
		rec, scanErr := scanLocalRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", op).Msg("failed to scan replica row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", op).Msg("error iterating replica rows")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLocalRecord(row rowScanner) (models.PendingRecord, error) {
	var (
		rec       models.PendingRecord
		updatedAt int64
	)

	err := row.Scan(
		&rec.ID,
		&rec.Name,
		&rec.Kind,
		&rec.Status,
		&rec.Year,
		&rec.Location,
		&rec.IdempotencyKey,
		&rec.Attempts,
		&rec.LastError,
		&rec.Parked,
		&updatedAt,
	)
	if err != nil {
		return models.PendingRecord{}, err
	}

	rec.UpdatedAt = fromUnixMilli(updatedAt)
	return rec, nil
}

// execByID runs a single-row statement. With mustExist set, zero affected
// rows is reported as [ErrRecordNotFound].
func execByID(ctx context.Context, db *DB, op string, id int64, build func() (string, []any, error), mustExist bool) error {
	log := logger.FromContext(ctx)

	query, args, err := build()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", op).Int64("id", id).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if !mustExist {
		return nil
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

func recordAttempt(ctx context.Context, db *DB, op, table string, id int64, lastErr string, maxAttempts int) (bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRecordAttemptQuery(db.builder, table, id, lastErr, maxAttempts)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var parked bool
	err = db.QueryRowContext(ctx, query, args...).Scan(&parked)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", op).Int64("id", id).Msg("failed to record push attempt")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return parked, nil
}
