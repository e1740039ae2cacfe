package worker

import (
	"context"
	"time"

	citaService "github.com/danidevdc/calendar-citas-app/internal/service/cita"
	"github.com/danidevdc/calendar-citas-app/pkg/logger"
)

// SyncWorker refreshes the in-memory store from the persistence backend on
// a fixed interval, the periodic auto-refresh behind the calendar. There is
// no retry policy: a failed run waits for the next tick or a manual sync.
type SyncWorker struct {
	citaSvc  *citaService.Service
	interval time.Duration
	logger   *logger.Logger
}

func NewSyncWorker(citaSvc *citaService.Service, interval time.Duration, logger *logger.Logger) *SyncWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SyncWorker{citaSvc: citaSvc, interval: interval, logger: logger}
}

func (w *SyncWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("starting sync worker", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("sync worker stopped")
			return
		case <-ticker.C:
			if _, err := w.citaSvc.Sync(ctx); err != nil {
				w.logger.Error(err, "scheduled sync failed")
			}
		}
	}
}
