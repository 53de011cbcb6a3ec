package scheduler

import (
	"context"
	"testing"
	"time"

	"hostel-backend/internal/billing"
)

type stubRunner struct {
	runs []billing.Options
}

func (s *stubRunner) Run(ctx context.Context, opts billing.Options) (billing.Summary, error) {
	s.runs = append(s.runs, opts)
	return billing.Summary{}, nil
}

func TestDue(t *testing.T) {
	s := New(&stubRunner{}, "UTC", "", false)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"first of month at 00:05", time.Date(2025, 3, 1, 0, 5, 0, 0, time.UTC), true},
		{"first of month wrong minute", time.Date(2025, 3, 1, 0, 4, 0, 0, time.UTC), false},
		{"first of month wrong hour", time.Date(2025, 3, 1, 1, 5, 0, 0, time.UTC), false},
		{"mid-month", time.Date(2025, 3, 15, 0, 5, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.due(tt.at); got != tt.want {
				t.Errorf("due(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestDueFiresOncePerMonth(t *testing.T) {
	s := New(&stubRunner{}, "UTC", "", false)
	trigger := time.Date(2025, 3, 1, 0, 5, 0, 0, time.UTC)

	if !s.due(trigger) {
		t.Fatal("first check should fire")
	}
	if s.due(trigger.Add(10 * time.Second)) {
		t.Error("second check within the trigger minute must not fire again")
	}
	if !s.due(trigger.AddDate(0, 1, 0)) {
		t.Error("next month's trigger should fire")
	}
}

func TestDueHonorsTimezone(t *testing.T) {
	s := New(&stubRunner{}, "Asia/Kolkata", "", false)

	// 00:05 IST on March 1st is 18:35 UTC on February 28th.
	at := time.Date(2025, 2, 28, 18, 35, 0, 0, time.UTC)
	if !s.due(at) {
		t.Errorf("due(%v) = false, want true in Asia/Kolkata", at)
	}
}

func TestFirePassesConfig(t *testing.T) {
	runner := &stubRunner{}
	s := New(runner, "Asia/Kolkata", "approved", false)

	s.fire(time.Date(2025, 3, 1, 0, 5, 0, 0, time.UTC))

	if len(runner.runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runner.runs))
	}
	opts := runner.runs[0]
	if opts.Timezone != "Asia/Kolkata" || opts.EligibleStatus != "approved" {
		t.Errorf("opts = %+v", opts)
	}
}
