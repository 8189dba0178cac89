package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/deptshare/internal/share/blob"
	"github.com/aussiebroadwan/deptshare/internal/share/store"
)

// StaleTempAge is how old an unfinished upload must be before it is swept.
const StaleTempAge = time.Hour

// HousekeepingService periodically drops revocations for tokens that have
// expired anyway and temp files left behind by interrupted uploads.
type HousekeepingService struct {
	Store    store.Store
	Blobs    *blob.LocalStore
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, blobs *blob.LocalStore, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Blobs:    blobs,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs cleanup now and then every Interval until Stop is called.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.RunOnce(context.Background())

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce performs one cleanup pass. Each step is independent; a failure is
// logged and the next step still runs.
func (s *HousekeepingService) RunOnce(ctx context.Context) {
	s.Logger.Debug("starting housekeeping cleanup")

	if n, err := s.Store.RevokedSessions().DeleteExpired(ctx); err != nil {
		s.Logger.Error("failed to delete expired revoked sessions", "error", err)
	} else if n > 0 {
		s.Logger.Info("deleted expired revoked sessions", "count", n)
	}

	if s.Blobs != nil {
		if n, err := s.Blobs.SweepTemp(StaleTempAge); err != nil {
			s.Logger.Error("failed to sweep stale upload temp files", "error", err)
		} else if n > 0 {
			s.Logger.Info("swept stale upload temp files", "count", n)
		}
	}

	s.Logger.Debug("housekeeping cleanup completed")
}
