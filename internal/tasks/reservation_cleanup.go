package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/osa911/teamchat/internal/logging"
	"github.com/osa911/teamchat/internal/repository"
)

// sweepTimeout bounds a single sweep
const sweepTimeout = time.Minute

// ReservationCleanup periodically releases team keys that were reserved by a team
// creation which never completed.
type ReservationCleanup struct {
	teams    repository.TeamRepository
	interval time.Duration
	grace    time.Duration
	now      func() time.Time
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewReservationCleanup creates a new reservation cleanup task. Reservations younger
// than grace may still belong to a creation in flight and are kept.
func NewReservationCleanup(teams repository.TeamRepository, interval, grace time.Duration) *ReservationCleanup {
	return &ReservationCleanup{
		teams:    teams,
		interval: interval,
		grace:    grace,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins the cleanup task in the background
func (rc *ReservationCleanup) Start() {
	rc.wg.Add(1)
	go rc.runPeriodically()
}

// Stop gracefully stops the cleanup task
func (rc *ReservationCleanup) Stop() {
	close(rc.done)
	rc.wg.Wait()
}

// runPeriodically runs the cleanup immediately and then at every interval
func (rc *ReservationCleanup) runPeriodically() {
	defer rc.wg.Done()

	rc.runOnce()

	ticker := time.NewTicker(rc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-rc.done:
			return
		case <-ticker.C:
			rc.runOnce()
		}
	}
}

func (rc *ReservationCleanup) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	go func() {
		select {
		case <-rc.done:
			cancel()
		case <-ctx.Done():
		}
	}()

	if _, err := rc.Cleanup(ctx); err != nil {
		logging.GetGlobalLogger().Error("Reservation cleanup failed: %v", err)
	}
}

// Cleanup performs a single sweep and returns the number of released keys
func (rc *ReservationCleanup) Cleanup(ctx context.Context) (int, error) {
	logger := logging.GetGlobalLogger()

	purged, err := rc.teams.PurgeReservations(ctx, rc.now().Add(-rc.grace))
	if len(purged) > 0 {
		logger.Info("Released %d abandoned team reservations", len(purged))
	}
	if err != nil {
		return len(purged), err
	}
	logger.Debug("Reservation cleanup completed")
	return len(purged), nil
}
