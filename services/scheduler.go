// services/scheduler.go - Periodic sync invocation
package services

import (
	"log"
	"os"
	"strconv"
	"time"
)

// SyncScheduler triggers a full sync on a fixed interval. The interval
// (minutes) comes from SYNC_INTERVAL_MINUTES, default 10. A run that
// overlaps the next tick is not cancelled; the store's non-regression guard
// bounds the damage of interleaved writes.
type SyncScheduler struct {
	sync     *SyncService
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

var syncScheduler *SyncScheduler

// InitSyncScheduler initializes the singleton scheduler.
func InitSyncScheduler(syncService *SyncService) {
	minutes := 10
	if val := os.Getenv("SYNC_INTERVAL_MINUTES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			minutes = n
		}
	}
	syncScheduler = &SyncScheduler{
		sync:     syncService,
		interval: time.Duration(minutes) * time.Minute,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// GetSyncScheduler returns the initialized scheduler.
func GetSyncScheduler() *SyncScheduler {
	return syncScheduler
}

// Start launches the background sync loop.
func (s *SyncScheduler) Start() {
	log.Printf("Sync scheduler started (every %s)", s.interval)
	go s.run()
}

func (s *SyncScheduler) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.sync.SyncAll(nil); err != nil {
				log.Printf("Scheduled sync failed: %v", err)
			}
		case <-s.stop:
			log.Println("Sync scheduler stopped")
			return
		}
	}
}

// Stop halts the loop and waits for it to exit. An in-flight sync run
// finishes on its own goroutines.
func (s *SyncScheduler) Stop() {
	close(s.stop)
	<-s.done
}
