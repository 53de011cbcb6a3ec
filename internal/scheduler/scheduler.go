// Package scheduler triggers the monthly billing job on a calendar cadence:
// 00:05 on the 1st of each month in a configurable timezone, with an optional
// extra run at process startup. The same job the scheduler fires is also
// invocable on demand from the admin API.
package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"hostel-backend/internal/billing"
	"hostel-backend/internal/timeutil"
)

// Runner is the billing job surface the scheduler drives.
type Runner interface {
	Run(ctx context.Context, opts billing.Options) (billing.Summary, error)
}

type Scheduler struct {
	runner       Runner
	timezone     string
	eligible     string
	runOnStartup bool

	mu       sync.Mutex
	lastKey  string // month key of the last scheduled fire
	stopCh   chan struct{}
	stopOnce sync.Once
}

func New(runner Runner, timezone, eligibleStatus string, runOnStartup bool) *Scheduler {
	return &Scheduler{
		runner:       runner,
		timezone:     timezone,
		eligible:     eligibleStatus,
		runOnStartup: runOnStartup,
		stopCh:       make(chan struct{}),
	}
}

// Start launches the ticker goroutine. Overlapping runs are not serialized
// against manual triggers; the store's uniqueness constraint makes a
// concurrent duplicate run harmless.
func (s *Scheduler) Start() {
	go func() {
		log.Println("[Scheduler] Started (fires 00:05 on day 1, timezone " + s.timezone + ")")

		if s.runOnStartup {
			s.fire(time.Now())
		}

		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-s.stopCh:
				return
			case now := <-ticker.C:
				if s.due(now) {
					s.fire(now)
				}
			}
		}
	}()
}

// Stop terminates the ticker goroutine.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// due reports whether the trigger minute has been reached for a month that
// has not fired yet. The fired-month guard keeps the minute-granularity
// ticker from double firing within the trigger minute.
func (s *Scheduler) due(now time.Time) bool {
	local := now.In(timeutil.Location(s.timezone))
	if local.Day() != 1 || local.Hour() != 0 || local.Minute() != 5 {
		return false
	}

	key := billing.MonthKey(local)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastKey == key {
		return false
	}
	s.lastKey = key
	return true
}

func (s *Scheduler) fire(now time.Time) {
	log.Println("[Scheduler] Triggering monthly billing run")
	_, err := s.runner.Run(context.Background(), billing.Options{
		Date:           now,
		Timezone:       s.timezone,
		EligibleStatus: s.eligible,
	})
	if err != nil {
		log.Printf("[Scheduler] Billing run failed: %v", err)
	}
}
