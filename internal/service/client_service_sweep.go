package service

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"github.com/MKhiriev/go-registry-keeper/internal/adapter"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
	"github.com/MKhiriev/go-registry-keeper/models"
)

const sweepKey = "sweep"

// attemptRecorder is the part of both replica repositories the sweep needs
// to count rejected pushes.
type attemptRecorder interface {
	RecordAttempt(ctx context.Context, id int64, lastErr string, maxAttempts int) (bool, error)
}

// Sweep implements [RegistryService].
func (s *registrySyncService) Sweep(ctx context.Context) (models.SweepReport, error) {
	v, err, _ := s.sweeps.Do(sweepKey, func() (any, error) {
		return s.sweep(ctx)
	})
	if err != nil {
		return models.SweepReport{}, err
	}

	return v.(models.SweepReport), nil
}

// triggerSweep starts a sweep in the background. It outlives ctx but keeps
// its values (logger, trace id).
func (s *registrySyncService) triggerSweep(ctx context.Context) {
	s.closeMu.RLock()
	defer s.closeMu.RUnlock()

	if s.closed {
		return
	}

	_, epoch := s.conn.current()
	s.background.Add(1)
	go func() {
		defer s.background.Done()

		if _, err := s.sweepAfterRemote(context.WithoutCancel(ctx), epoch); err != nil {
			s.logger.Err(err).Msg("background sweep failed")
		}
	}()
}

// sweepAfterRemote runs the sweep that follows a successful registry call
// observed at epoch. That call reached the registry, so the engine goes back
// online unless a push found it unreachable again or the state moved on.
func (s *registrySyncService) sweepAfterRemote(ctx context.Context, epoch uint64) (models.SweepReport, error) {
	report, err := s.Sweep(ctx)
	if err != nil {
		return models.SweepReport{}, err
	}
	if !report.Unreachable {
		s.goOnlineAt(ctx, epoch)
	}

	return report, nil
}

// sweep pushes every pending row and tombstone once. A failed entry stays
// pending and never stops the others.
func (s *registrySyncService) sweep(ctx context.Context) (models.SweepReport, error) {
	started := s.now()
	_, epoch := s.conn.current()

	rows, err := s.records.Pending(ctx)
	if err != nil {
		return models.SweepReport{}, localStoreError(err)
	}
	tombstones, err := s.deletions.List(ctx)
	if err != nil {
		return models.SweepReport{}, localStoreError(err)
	}

	sortForPush(rows)

	var report models.SweepReport
	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}
		s.pushRecord(ctx, row.ID, epoch, &report)
	}
	for _, d := range tombstones {
		if ctx.Err() != nil {
			break
		}
		if !d.Parked {
			s.pushDeletion(ctx, d.ID, epoch, &report)
		}
	}

	if report.Drained() > 0 {
		s.goOnline(ctx)
	}
	s.metrics.RecordSweep(ctx, s.now().Sub(started), report)

	if len(rows)+len(tombstones) > 0 {
		s.logger.Info().
			Int("pushed", report.Pushed).
			Int("deleted", report.Deleted).
			Int("failed", report.Failed).
			Int("parked", report.Parked).
			Bool("unreachable", report.Unreachable).
			Msg("sweep finished")
	}

	return report, nil
}

// pushRecord pushes one staged row: creates for local ids, updates for
// registry ids. The row is read again under its lock since it may have been
// edited or drained after the sweep listed it.
func (s *registrySyncService) pushRecord(ctx context.Context, id int64, epoch uint64, report *models.SweepReport) {
	unlock := s.locks.Lock(id)
	defer unlock()

	row, err := s.records.GetByID(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return
	}
	if err != nil {
		report.Failed++
		s.logger.Err(err).Int64("id", id).Msg("failed to read staged record")
		return
	}
	if row.Parked {
		return
	}

	var pushed models.Record
	if row.IsLocal() {
		pushed, err = s.registry.Create(ctx, row.Record, row.IdempotencyKey)
	} else {
		pushed, err = s.registry.Update(ctx, row.Record)
	}
	if err != nil {
		s.pushFailed(ctx, s.records, id, epoch, err, report)
		return
	}

	// a freed local id may be handed out again by stageCreate, so dropping
	// the row and promoting it in the view happen under allocMu
	if row.IsLocal() {
		s.allocMu.Lock()
		defer s.allocMu.Unlock()
	}

	// a failure here leaves the row for the next sweep; the idempotency key
	// keeps the repeated create from duplicating it
	if err = s.records.Delete(ctx, id); err != nil {
		report.Failed++
		s.logger.Err(err).Int64("id", id).Msg("failed to drop pushed record from replica")
		return
	}

	report.Pushed++
	s.logger.Debug().Int64("local_id", id).Int64("id", pushed.ID).Msg("staged record pushed")
	s.view.promote(id, pushed)
}

// pushDeletion applies one tombstone. A record the registry no longer has
// counts as deleted.
func (s *registrySyncService) pushDeletion(ctx context.Context, id int64, epoch uint64, report *models.SweepReport) {
	unlock := s.locks.Lock(id)
	defer unlock()

	err := s.registry.Delete(ctx, id)
	if err != nil && !errors.Is(err, adapter.ErrNotFound) {
		s.pushFailed(ctx, s.deletions, id, epoch, err, report)
		return
	}

	if err = s.deletions.Delete(ctx, id); err != nil {
		report.Failed++
		s.logger.Err(err).Int64("id", id).Msg("failed to drop applied tombstone")
		return
	}

	report.Deleted++
	s.logger.Debug().Int64("id", id).Msg("staged deletion pushed")
}

// pushFailed classifies a failed push. Only rejections count towards the
// attempt limit.
func (s *registrySyncService) pushFailed(ctx context.Context, repo attemptRecorder, id int64, epoch uint64, cause error, report *models.SweepReport) {
	report.Failed++

	switch {
	case adapter.IsUnreachable(cause):
		report.Unreachable = true
		s.goOffline(ctx, epoch, cause)
	case adapter.IsRejected(cause):
		parked, err := repo.RecordAttempt(ctx, id, cause.Error(), s.maxPushAttempts)
		if err != nil {
			s.logger.Err(err).Int64("id", id).Msg("failed to record push attempt")
			return
		}
		if parked {
			report.Parked++
			s.logger.Warn().Err(cause).Int64("id", id).Msg("staged change parked after repeated rejections")
			return
		}
		s.logger.Warn().Err(cause).Int64("id", id).Msg("registry rejected staged change")
	default:
		s.logger.Debug().Err(cause).Int64("id", id).Msg("push interrupted")
	}
}

// sortForPush orders rows by creation: local ids -1, -2, ... first, then
// registry ids ascending.
func sortForPush(rows []models.PendingRecord) {
	slices.SortFunc(rows, func(a, b models.PendingRecord) int {
		switch {
		case a.IsLocal() && b.IsLocal():
			return cmp.Compare(b.ID, a.ID)
		case a.IsLocal():
			return -1
		case b.IsLocal():
			return 1
		default:
			return cmp.Compare(a.ID, b.ID)
		}
	})
}
