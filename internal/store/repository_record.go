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

// recordRepository is the PostgreSQL-backed [RecordRepository] over the
// "records" table.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] on db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// List implements [RecordRepository].
func (r *recordRepository) List(ctx context.Context, filter models.RecordFilter) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(r.builder, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.List").
			Str("kind", filter.Kind).
			Str("status", filter.Status).
			Msg("failed to query records")
		return nil, r.wrapDBError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		rec, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "recordRepository.List").Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "recordRepository.List").Msg("error iterating record rows")
		return nil, r.wrapDBError(ErrScanningRows, err)
	}

	return records, nil
}

// GetByID implements [RecordRepository].
func (r *recordRepository) GetByID(ctx context.Context, id int64) (models.Record, error) {
	return r.getOne(ctx, "recordRepository.GetByID", sq.Eq{"id": id})
}

// Create implements [RecordRepository].
func (r *recordRepository) Create(ctx context.Context, rec models.Record, idempotencyKey string) (models.Record, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateRecordQuery(r.builder, rec, idempotencyKey)
	if err != nil {
		return models.Record{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	created, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) && idempotencyKey != "" {
		existing, getErr := r.getOne(ctx, "recordRepository.Create", sq.Eq{"idempotency_key": idempotencyKey})
		if getErr != nil {
			return models.Record{}, false, getErr
		}
		log.Info().
			Str("func", "recordRepository.Create").
			Str("idempotency_key", idempotencyKey).
			Int64("id", existing.ID).
			Msg("repeated create answered with the existing record")
		return existing, false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Create").
			Str("name", rec.Name).
			Msg("failed to insert record")
		return models.Record{}, false, r.wrapDBError(ErrExecutingStatement, err)
	}

	return created, true, nil
}

// Update implements [RecordRepository].
func (r *recordRepository) Update(ctx context.Context, rec models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateRecordQuery(r.builder, rec)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	updated, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Update").
			Int64("id", rec.ID).
			Msg("failed to update record")
		return models.Record{}, r.wrapDBError(ErrExecutingStatement, err)
	}

	return updated, nil
}

// Delete implements [RecordRepository]. Components go with the record
// (ON DELETE CASCADE).
func (r *recordRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRecordQuery(r.builder, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.Delete").
			Int64("id", id).
			Msg("failed to delete record")
		return r.wrapDBError(ErrExecutingStatement, err)
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

func (r *recordRepository) getOne(ctx context.Context, op string, where sq.Eq) (models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetRecordQuery(r.builder, where)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", op).Msg("failed to get record")
		return models.Record{}, r.wrapDBError(ErrScanningRow, err)
	}

	return rec, nil
}

func scanRecord(row rowScanner) (models.Record, error) {
	var rec models.Record
	err := row.Scan(&rec.ID, &rec.Name, &rec.Kind, &rec.Status, &rec.Year, &rec.Location)
	return rec, err
}
