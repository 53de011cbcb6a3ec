package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hostel-backend/internal/billing"
	"hostel-backend/internal/config"
	"hostel-backend/internal/metrics"
)

var ErrInvalidDate = errors.New("invalid date: want RFC 3339 or YYYY-MM-DD")

// BillingService runs the monthly debit job with the deployment's configured
// defaults. Both the scheduler and the admin trigger go through here so a
// manual run behaves exactly like a scheduled one.
type BillingService struct {
	Job *billing.Job
	cfg *config.Config
}

func NewBillingService(job *billing.Job, cfg *config.Config) *BillingService {
	return &BillingService{Job: job, cfg: cfg}
}

// Run executes one billing pass with config defaults applied to any option
// left at its zero value.
func (s *BillingService) Run(ctx context.Context, opts billing.Options) (billing.Summary, error) {
	if opts.Timezone == "" {
		opts.Timezone = s.cfg.Billing.Timezone
	}
	if opts.EligibleStatus == "" {
		opts.EligibleStatus = s.cfg.Billing.EligibleStatus
	}

	sum, err := s.Job.Run(ctx, opts)
	if err != nil {
		metrics.BillingRunsTotal.WithLabelValues("error").Inc()
		return sum, err
	}
	metrics.BillingRunsTotal.WithLabelValues("ok").Inc()
	metrics.BillingDebitsCreated.Add(float64(sum.DebitsCreated))
	metrics.BillingStudentsSkipped.Add(float64(sum.Skipped))
	return sum, nil
}

// RunForDate is the admin trigger: date is an optional RFC 3339 or
// YYYY-MM-DD string selecting the billing month to (re-)run.
func (s *BillingService) RunForDate(ctx context.Context, date, remarks string) (billing.Summary, error) {
	opts := billing.Options{Remarks: remarks}
	if date != "" {
		parsed, err := parseDate(date)
		if err != nil {
			return billing.Summary{}, err
		}
		opts.Date = parsed
	}
	return s.Run(ctx, opts)
}

func parseDate(date string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
}
