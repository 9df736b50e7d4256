package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-registry-keeper/internal/config"
	"github.com/MKhiriev/go-registry-keeper/internal/logger"
	"github.com/MKhiriev/go-registry-keeper/internal/service"
)

// RefreshWorker lists the registry periodically with the filter of the
// current view. A listing runs the reconciliation sweep, so staged changes
// drain without user action once the registry is reachable again.
type RefreshWorker struct {
	registry service.RegistryService
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

func NewRefreshWorker(registry service.RegistryService, cfg config.ClientWorkers, logger *logger.Logger) *RefreshWorker {
	return &RefreshWorker{
		registry: registry,
		interval: cfg.SyncInterval,
		logger:   logger.WithComponent("refresh-worker"),
	}
}

// Start launches the refresh loop. A zero interval disables the worker.
func (w *RefreshWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.logger.Info().Msg("refresh worker disabled")
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	ctx, w.cancel = context.WithCancel(ctx)
	w.wg.Add(1)
	go w.loop(ctx)

	w.logger.Info().Dur("interval", w.interval).Msg("refresh worker started")
}

func (w *RefreshWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	w.wg.Wait()

	w.mu.Lock()
	w.cancel = nil
	w.mu.Unlock()
}

func (w *RefreshWorker) loop(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *RefreshWorker) refresh(ctx context.Context) {
	res, err := w.registry.List(ctx, w.registry.View().Filter())
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Str("func", "RefreshWorker.refresh").Msg("periodic refresh failed")
		}
		return
	}

	w.logger.Debug().
		Stringer("origin", res.Origin).
		Int("records", len(res.Records)).
		Int("drained", res.Drained).
		Msg("registry refreshed")
}
