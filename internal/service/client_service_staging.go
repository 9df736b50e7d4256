package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-registry-keeper/internal/store"
	"github.com/MKhiriev/go-registry-keeper/models"
)

// stageCreate stores rec in the replica under the next free local id.
func (s *registrySyncService) stageCreate(ctx context.Context, rec models.Record, key string) (models.WriteResult, error) {
	s.allocMu.Lock()
	defer s.allocMu.Unlock()

	id, err := s.nextLocalID(ctx)
	if err != nil {
		return models.WriteResult{}, err
	}
	rec.ID = id

	row := models.PendingRecord{
		Record:         rec,
		IdempotencyKey: key,
		UpdatedAt:      s.now().UTC(),
	}
	if err = s.records.Add(ctx, row); err != nil {
		s.logger.Err(err).Int64("id", id).Msg("failed to stage created record")
		return models.WriteResult{}, localStoreError(err)
	}

	s.logger.Info().Int64("id", id).Str("name", rec.Name).Msg("record staged locally")
	s.metrics.RecordStaged(ctx, "create")
	s.view.upsert(models.OriginStagedLocal, rec, true)

	return models.WriteResult{Origin: models.OriginStagedLocal, Record: rec}, nil
}

// nextLocalID returns min(replica ids) - 1, or -1 when the replica holds no
// negative id. The caller holds allocMu.
func (s *registrySyncService) nextLocalID(ctx context.Context) (int64, error) {
	minID, ok, err := s.records.MinID(ctx)
	if err != nil {
		return 0, localStoreError(err)
	}
	if !ok || minID >= 0 {
		return -1, nil
	}

	return minID - 1, nil
}

// stageUpdate upserts rec into the replica. With mustExist set the row has to
// be there already, which is the case for every valid local id.
func (s *registrySyncService) stageUpdate(ctx context.Context, rec models.Record, mustExist bool) (models.WriteResult, error) {
	unlock := s.locks.Lock(rec.ID)
	defer unlock()

	row := models.PendingRecord{
		Record:    rec,
		UpdatedAt: s.now().UTC(),
	}

	existing, err := s.records.GetByID(ctx, rec.ID)
	switch {
	case err == nil:
		row.IdempotencyKey = existing.IdempotencyKey
	case errors.Is(err, store.ErrRecordNotFound):
		if mustExist {
			return models.WriteResult{}, store.ErrRecordNotFound
		}
	default:
		return models.WriteResult{}, localStoreError(err)
	}

	if err = s.records.Put(ctx, row); err != nil {
		s.logger.Err(err).Int64("id", rec.ID).Msg("failed to stage updated record")
		return models.WriteResult{}, localStoreError(err)
	}

	s.logger.Info().Int64("id", rec.ID).Msg("record update staged locally")
	s.metrics.RecordStaged(ctx, "update")
	s.view.upsert(models.OriginStagedLocal, rec, true)

	return models.WriteResult{Origin: models.OriginStagedLocal, Record: rec}, nil
}

// stageLocalDelete drops a record that never reached the registry. Nothing
// is left for the sweep to do.
func (s *registrySyncService) stageLocalDelete(ctx context.Context, id int64) (models.WriteResult, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	_, err := s.records.GetByID(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.WriteResult{}, store.ErrRecordNotFound
	}
	if err != nil {
		return models.WriteResult{}, localStoreError(err)
	}

	if err = s.records.Delete(ctx, id); err != nil {
		return models.WriteResult{}, localStoreError(err)
	}

	s.logger.Info().Int64("id", id).Msg("staged record deleted locally")
	s.metrics.RecordStaged(ctx, "delete")
	s.view.remove(models.OriginStagedLocal, id)

	return models.WriteResult{Origin: models.OriginStagedLocal, Record: models.Record{ID: id}}, nil
}

// stageRemoteDelete drops any staged copy of a registry record and leaves a
// tombstone for the sweep.
func (s *registrySyncService) stageRemoteDelete(ctx context.Context, id int64) (models.WriteResult, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.records.Delete(ctx, id); err != nil {
		return models.WriteResult{}, localStoreError(err)
	}
	if err := s.deletions.Add(ctx, id); err != nil {
		s.logger.Err(err).Int64("id", id).Msg("failed to record tombstone")
		return models.WriteResult{}, localStoreError(err)
	}

	s.logger.Info().Int64("id", id).Msg("record deletion staged locally")
	s.metrics.RecordStaged(ctx, "delete")
	s.view.remove(models.OriginStagedLocal, id)

	return models.WriteResult{Origin: models.OriginStagedLocal, Record: models.Record{ID: id}}, nil
}

// forget drops staged state for a registry id after the registry accepted a
// direct write to it.
func (s *registrySyncService) forget(ctx context.Context, id int64) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.records.Delete(ctx, id); err != nil {
		return localStoreError(err)
	}
	if err := s.deletions.Delete(ctx, id); err != nil {
		return localStoreError(err)
	}

	return nil
}

// Parked implements [RegistryService].
func (s *registrySyncService) Parked(ctx context.Context) (models.ParkedSet, error) {
	rows, err := s.records.Parked(ctx)
	if err != nil {
		return models.ParkedSet{}, localStoreError(err)
	}
	tombstones, err := s.deletions.List(ctx)
	if err != nil {
		return models.ParkedSet{}, localStoreError(err)
	}

	set := models.ParkedSet{
		Records:   rows,
		Deletions: make([]models.PendingDeletion, 0),
	}
	for _, d := range tombstones {
		if d.Parked {
			set.Deletions = append(set.Deletions, d)
		}
	}

	return set, nil
}

// Requeue implements [RegistryService]. It resets both the staged row and
// the tombstone of id, whichever exist.
func (s *registrySyncService) Requeue(ctx context.Context, id int64) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	recErr := s.records.Requeue(ctx, id)
	delErr := s.deletions.Requeue(ctx, id)

	for _, err := range []error{recErr, delErr} {
		if err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return localStoreError(err)
		}
	}
	if recErr != nil && delErr != nil {
		return store.ErrRecordNotFound
	}

	s.logger.Info().Int64("id", id).Msg("parked change re-queued")
	return nil
}
