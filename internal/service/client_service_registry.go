package service

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-registry-keeper/internal/adapter"
	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/store"
	"github.com/MKhiriev/go-registry-keeper/internal/telemetry"
	"github.com/MKhiriev/go-registry-keeper/internal/utils"
	"github.com/MKhiriev/go-registry-keeper/models"
)

// keyGenerator produces idempotency keys for creates.
type keyGenerator interface {
	Generate() string
}

type registrySyncService struct {
	records   store.LocalRecordRepository
	deletions store.LocalDeletionRepository
	registry  adapter.RegistryAdapter

	conn  *connectivity
	view  *RegistryView
	locks *keyedMutex

	// allocMu serializes local id allocation with the insert that uses it and
	// with the drain that frees it.
	allocMu sync.Mutex

	sweeps     singleflight.Group
	background sync.WaitGroup
	closeMu    sync.RWMutex
	closed     bool

	keys            keyGenerator
	now             func() time.Time
	maxPushAttempts int

	metrics *telemetry.SyncMetrics
	logger  *logger.Logger
}

// NewRegistrySyncService wires the sync engine over the local replica and the
// registry adapter. metrics may be nil.
func NewRegistrySyncService(
	storages *store.ClientStorages,
	registry adapter.RegistryAdapter,
	cfg config.ClientSync,
	metrics *telemetry.SyncMetrics,
	logger *logger.Logger,
) RegistryService {
	maxAttempts := cfg.MaxPushAttempts
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultMaxPushAttempts
	}

	return &registrySyncService{
		records:         storages.RecordRepository,
		deletions:       storages.DeletionRepository,
		registry:        registry,
		conn:            newConnectivity(),
		view:            NewRegistryView(),
		locks:           newKeyedMutex(),
		keys:            utils.NewUUIDGenerator(),
		now:             time.Now,
		maxPushAttempts: maxAttempts,
		metrics:         metrics,
		logger:          logger.WithComponent("sync"),
	}
}

// List implements [RegistryService].
func (s *registrySyncService) List(ctx context.Context, filter models.RecordFilter) (models.ListResult, error) {
	if err := s.checkOpen(); err != nil {
		return models.ListResult{}, err
	}

	_, epoch := s.conn.current()
	remote, err := s.registry.List(ctx, filter)
	if err != nil {
		return s.listFallback(ctx, filter, epoch, err, 0)
	}

	report, err := s.sweepAfterRemote(ctx, epoch)
	if err != nil {
		return models.ListResult{}, err
	}

	drained := report.Drained()
	if drained > 0 {
		_, epoch = s.conn.current()
		if remote, err = s.registry.List(ctx, filter); err != nil {
			return s.listFallback(ctx, filter, epoch, err, drained)
		}
	}

	records, pending, err := s.overlay(ctx, remote, filter)
	if err != nil {
		return models.ListResult{}, err
	}

	s.view.replace(models.OriginRemote, filter, records, pending)

	return models.ListResult{
		Origin:  models.OriginRemote,
		Records: records,
		Pending: pending,
		Drained: drained,
	}, nil
}

// listFallback serves a listing from the replica when the registry is
// unreachable; rejections are returned as they are.
func (s *registrySyncService) listFallback(ctx context.Context, filter models.RecordFilter, epoch uint64, cause error, drained int) (models.ListResult, error) {
	if !adapter.IsUnreachable(cause) {
		return models.ListResult{}, cause
	}
	s.goOffline(ctx, epoch, cause)

	staged, err := s.records.GetAll(ctx)
	if err != nil {
		return models.ListResult{}, localStoreError(err)
	}

	records := make([]models.Record, 0, len(staged))
	pending := make([]int64, 0, len(staged))
	for _, row := range staged {
		if !filter.Matches(row.Record) {
			continue
		}
		records = append(records, row.Record)
		pending = append(pending, row.ID)
	}
	sortRecords(records)
	slices.Sort(pending)

	s.view.replace(models.OriginLocalFallback, filter, records, pending)

	return models.ListResult{
		Origin:  models.OriginLocalFallback,
		Records: records,
		Pending: pending,
		Drained: drained,
	}, nil
}

// overlay lays the replica over a remote listing: staged creates are added,
// staged edits replace the remote copy and tombstoned ids are hidden.
func (s *registrySyncService) overlay(ctx context.Context, remote []models.Record, filter models.RecordFilter) ([]models.Record, []int64, error) {
	staged, err := s.records.GetAll(ctx)
	if err != nil {
		return nil, nil, localStoreError(err)
	}
	tombstones, err := s.deletions.List(ctx)
	if err != nil {
		return nil, nil, localStoreError(err)
	}

	hidden := make(map[int64]bool, len(tombstones))
	for _, d := range tombstones {
		hidden[d.ID] = true
	}
	shadowed := make(map[int64]bool, len(staged))
	for _, row := range staged {
		shadowed[row.ID] = true
	}

	records := make([]models.Record, 0, len(remote)+len(staged))
	for _, rec := range remote {
		if hidden[rec.ID] || shadowed[rec.ID] {
			continue
		}
		records = append(records, rec)
	}

	pending := make([]int64, 0, len(staged))
	for _, row := range staged {
		if hidden[row.ID] || !filter.Matches(row.Record) {
			continue
		}
		records = append(records, row.Record)
		pending = append(pending, row.ID)
	}

	sortRecords(records)
	slices.Sort(pending)

	return records, pending, nil
}

// Get implements [RegistryService].
func (s *registrySyncService) Get(ctx context.Context, id int64) (models.RecordResult, error) {
	if err := s.checkOpen(); err != nil {
		return models.RecordResult{}, err
	}

	if id < 0 {
		return s.getLocal(ctx, id)
	}

	_, epoch := s.conn.current()
	rec, err := s.registry.Get(ctx, id)
	switch {
	case err == nil:
		s.triggerSweep(ctx)
		return models.RecordResult{Origin: models.OriginRemote, Record: rec}, nil
	case adapter.IsUnreachable(err):
		s.goOffline(ctx, epoch, err)
		return s.getLocal(ctx, id)
	default:
		return models.RecordResult{}, err
	}
}

func (s *registrySyncService) getLocal(ctx context.Context, id int64) (models.RecordResult, error) {
	row, err := s.records.GetByID(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.RecordResult{}, store.ErrRecordNotFound
	}
	if err != nil {
		return models.RecordResult{}, localStoreError(err)
	}

	return models.RecordResult{Origin: models.OriginLocalFallback, Record: row.Record}, nil
}

// Create implements [RegistryService].
func (s *registrySyncService) Create(ctx context.Context, rec models.Record) (models.WriteResult, error) {
	if err := s.checkOpen(); err != nil {
		return models.WriteResult{}, err
	}

	// the same key follows the record into the replica, so a create that
	// reached the registry but lost its answer is not repeated by the sweep
	key := s.keys.Generate()
	rec.ID = 0

	_, epoch := s.conn.current()
	created, err := s.registry.Create(ctx, rec, key)
	switch {
	case err == nil:
		s.view.upsert(models.OriginRemote, created, false)
		s.triggerSweep(ctx)
		return models.WriteResult{Origin: models.OriginRemote, Record: created}, nil
	case adapter.IsUnreachable(err):
		s.goOffline(ctx, epoch, err)
		return s.stageCreate(ctx, rec, key)
	default:
		return models.WriteResult{}, err
	}
}

// Update implements [RegistryService].
func (s *registrySyncService) Update(ctx context.Context, rec models.Record) (models.WriteResult, error) {
	if err := s.checkOpen(); err != nil {
		return models.WriteResult{}, err
	}

	if rec.IsLocal() {
		return s.stageUpdate(ctx, rec, true)
	}

	_, epoch := s.conn.current()
	updated, err := s.registry.Update(ctx, rec)
	switch {
	case err == nil:
		if err = s.forget(ctx, rec.ID); err != nil {
			return models.WriteResult{}, err
		}
		s.view.upsert(models.OriginRemote, updated, false)
		s.triggerSweep(ctx)
		return models.WriteResult{Origin: models.OriginRemote, Record: updated}, nil
	case adapter.IsUnreachable(err):
		s.goOffline(ctx, epoch, err)
		return s.stageUpdate(ctx, rec, false)
	default:
		return models.WriteResult{}, err
	}
}

// Delete implements [RegistryService].
func (s *registrySyncService) Delete(ctx context.Context, id int64) (models.WriteResult, error) {
	if err := s.checkOpen(); err != nil {
		return models.WriteResult{}, err
	}

	if id < 0 {
		return s.stageLocalDelete(ctx, id)
	}

	_, epoch := s.conn.current()
	err := s.registry.Delete(ctx, id)
	switch {
	case err == nil:
		if err = s.forget(ctx, id); err != nil {
			return models.WriteResult{}, err
		}
		s.view.remove(models.OriginRemote, id)
		s.triggerSweep(ctx)
		return models.WriteResult{Origin: models.OriginRemote, Record: models.Record{ID: id}}, nil
	case adapter.IsUnreachable(err):
		s.goOffline(ctx, epoch, err)
		return s.stageRemoteDelete(ctx, id)
	default:
		return models.WriteResult{}, err
	}
}

// ListComponents implements [RegistryService].
func (s *registrySyncService) ListComponents(ctx context.Context, recordID int64) ([]string, error) {
	var names []string
	err := s.componentCall(ctx, recordID, func() error {
		var err error
		names, err = s.registry.ListComponents(ctx, recordID)
		return err
	})
	return names, err
}

// AddComponent implements [RegistryService].
func (s *registrySyncService) AddComponent(ctx context.Context, recordID int64, name string) error {
	return s.componentCall(ctx, recordID, func() error {
		return s.registry.AddComponent(ctx, recordID, name)
	})
}

// RemoveComponent implements [RegistryService].
func (s *registrySyncService) RemoveComponent(ctx context.Context, recordID int64, name string) error {
	return s.componentCall(ctx, recordID, func() error {
		return s.registry.RemoveComponent(ctx, recordID, name)
	})
}

// componentCall runs a registry-only operation. Unreachable still flips the
// state, but the error goes back to the caller.
func (s *registrySyncService) componentCall(ctx context.Context, recordID int64, call func() error) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if recordID < 0 {
		return ErrRecordNotSynced
	}

	_, epoch := s.conn.current()
	err := call()
	switch {
	case err == nil:
		s.triggerSweep(ctx)
	case adapter.IsUnreachable(err):
		s.goOffline(ctx, epoch, err)
	}

	return err
}

// State implements [RegistryService].
func (s *registrySyncService) State() models.ConnectivityState {
	state, _ := s.conn.current()
	return state
}

// View implements [RegistryService].
func (s *registrySyncService) View() *RegistryView {
	return s.view
}

// Close implements [RegistryService].
func (s *registrySyncService) Close() error {
	s.closeMu.Lock()
	s.closed = true
	s.closeMu.Unlock()

	s.background.Wait()
	s.view.close()

	return nil
}

func (s *registrySyncService) checkOpen() error {
	s.closeMu.RLock()
	defer s.closeMu.RUnlock()

	if s.closed {
		return ErrServiceClosed
	}
	return nil
}

func (s *registrySyncService) goOffline(ctx context.Context, observed uint64, cause error) {
	if !s.conn.markOffline(observed) {
		return
	}

	s.logger.Warn().Err(cause).Msg("registry unreachable, switching to offline mode")
	s.view.setState(models.Offline)
	s.metrics.RecordState(ctx, models.Offline)
}

func (s *registrySyncService) goOnline(ctx context.Context) {
	s.wentOnline(ctx, s.conn.markOnline())
}

// goOnlineAt brings the engine online after a registry call that started at
// epoch observed succeeded.
func (s *registrySyncService) goOnlineAt(ctx context.Context, observed uint64) {
	s.wentOnline(ctx, s.conn.markOnlineAt(observed))
}

func (s *registrySyncService) wentOnline(ctx context.Context, changed bool) {
	if !changed {
		return
	}

	s.logger.Info().Msg("registry reachable again, back online")
	s.view.setState(models.Online)
	s.metrics.RecordState(ctx, models.Online)
}
