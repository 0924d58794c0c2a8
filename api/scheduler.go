/*
scheduler.go - Automated month-end close scheduler

PURPOSE:
  Periodically checks whether the most recently ended accounting period has
  been closed and, if not, runs the close automatically.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Targets the previous calendar month (the last fully ended period)
  - Skips periods that already have a completed close run
  - Close runs are recorded for audit and UI display

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewCloseScheduler(store, handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - close.go: The close execution shared with the manual endpoint
  - handlers.go: RunClose endpoint (manual close)
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/ledgerkit/schedule-engine/fincal"
	"github.com/ledgerkit/schedule-engine/store/sqlite"
)

// CloseScheduler handles automated month-end closes.
type CloseScheduler struct {
	Store         *sqlite.Store
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewCloseScheduler creates a new scheduler.
func NewCloseScheduler(store *sqlite.Store, handler *Handler) *CloseScheduler {
	return &CloseScheduler{
		Store:         store,
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (cs *CloseScheduler) Start() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if !cs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	cs.ticker = time.NewTicker(cs.CheckInterval)
	cs.wg.Add(1)

	go cs.run()

	log.Printf("[Scheduler] Started with check interval: %v", cs.CheckInterval)
}

// Stop stops the scheduler.
func (cs *CloseScheduler) Stop() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if cs.ticker != nil {
		cs.ticker.Stop()
		close(cs.stop)
		cs.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (cs *CloseScheduler) run() {
	defer cs.wg.Done()

	// Run immediately on start
	cs.checkAndProcess()

	for {
		select {
		case <-cs.ticker.C:
			cs.checkAndProcess()
		case <-cs.stop:
			return
		}
	}
}

func (cs *CloseScheduler) checkAndProcess() {
	ctx := context.Background()

	// The last fully ended period is the previous calendar month.
	period := fincal.PeriodOf(time.Now().UTC()).Previous()

	done, err := cs.Store.IsCloseComplete(ctx, period.String())
	if err != nil {
		log.Printf("[Scheduler] Error checking close status for %s: %v", period, err)
		return
	}
	if done {
		return
	}

	log.Printf("[Scheduler] Running close for %s", period)

	run, lines, err := cs.Handler.executeClose(ctx, period, "scheduler")
	if err != nil {
		log.Printf("[Scheduler] Close for %s failed: %v", period, err)
		return
	}

	log.Printf("[Scheduler] Close %s completed: %d lines", run.ID, len(lines))
}

// RunNow triggers an immediate check (for testing/admin).
func (cs *CloseScheduler) RunNow() {
	cs.checkAndProcess()
}

// GetNextRunTime returns when the next scheduled check will occur.
func (cs *CloseScheduler) GetNextRunTime() time.Time {
	return time.Now().Add(cs.CheckInterval)
}
