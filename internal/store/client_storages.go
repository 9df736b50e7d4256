package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
)

// ClientStorages groups the client replica repositories into a single value
// handed to the sync engine.
type ClientStorages struct {
	// RecordRepository holds staged records.
	RecordRepository LocalRecordRepository
	// DeletionRepository holds tombstones of offline deletes.
	DeletionRepository LocalDeletionRepository

	db *DB
}

// NewClientStorages opens the SQLite replica at cfg.DB.DSN, creating the file
// if needed, applies the replica migrations and wires the repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Str("driver", cfg.DB.DriverName).Msg("opening local replica...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		RecordRepository:   NewLocalRecordRepository(db, logger),
		DeletionRepository: NewLocalDeletionRepository(db, logger),
		db:                 db,
	}, nil
}

// Close releases the replica connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
