package billing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"hostel-backend/internal/models"
	"hostel-backend/internal/timeutil"
)

// DefaultEligibleStatus is the status string the job bills. Historically the
// filter checked "active" while enrollment writes "approved"; the value is
// configurable so either interpretation can be deployed (and tested)
// explicitly rather than silently fixed.
const DefaultEligibleStatus = "active"

// UserSource enumerates tenant ids.
type UserSource interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

// HostelSource enumerates a tenant's hostels.
type HostelSource interface {
	ListByOwner(ctx context.Context, ownerUserID string) ([]models.Hostel, error)
}

// StudentSource enumerates a hostel's students.
type StudentSource interface {
	ListByHostel(ctx context.Context, hostelDocID string) ([]models.Student, error)
}

// DebitStore is the write side: the idempotency probe and the transactional
// debit-create plus balance-update.
type DebitStore interface {
	HasMonthlyDebit(ctx context.Context, studentDocID, monthKey string) (bool, error)
	CreateMonthlyDebit(ctx context.Context, studentDocID string, amount float64, monthKey, remarks string, now time.Time) (created bool, newBalance float64, err error)
}

// Options control one billing run. The zero value bills the current month in
// UTC with the default remarks and eligibility status.
type Options struct {
	// Date overrides the run date, so a specific billing month can be re-run
	// or tested. Zero means now.
	Date time.Time
	// Remarks overrides the default "Monthly fee for MM-YYYY" text.
	Remarks string
	// Timezone names the location the run date is interpreted in. Empty
	// means UTC.
	Timezone string
	// EligibleStatus overrides the billable status string.
	EligibleStatus string
}

// Summary reports one run: tree scan counts plus outcome counts. Skipped
// covers ineligible status, zero fee, already billed and failed students
// alike; the job never aborts the scan for one student's failure.
type Summary struct {
	Users         int `json:"users"`
	Hostels       int `json:"hostels"`
	Students      int `json:"students"`
	DebitsCreated int `json:"debitsCreated"`
	Skipped       int `json:"skipped"`
}

// Job is the monthly billing job. It walks every user, hostel and student
// and ensures each eligible student has exactly one debit for the calendar
// month of the run date.
type Job struct {
	users    UserSource
	hostels  HostelSource
	students StudentSource
	debits   DebitStore
}

// NewJob wires the job to an already-connected store. All four sources are
// required; the job does not manage the store's lifecycle.
func NewJob(users UserSource, hostels HostelSource, students StudentSource, debits DebitStore) (*Job, error) {
	if users == nil || hostels == nil || students == nil || debits == nil {
		return nil, errors.New("billing: all store handles are required")
	}
	return &Job{users: users, hostels: hostels, students: students, debits: debits}, nil
}

// MonthKey renders the calendar month of t as the "MM-YYYY" billing month
// key, e.g. March 2025 -> "03-2025".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%02d-%04d", int(t.Month()), t.Year())
}

// Run executes one billing pass. It returns an error only when the top-level
// tenant enumeration fails; everything below is isolated per student and
// reported through the summary.
func (j *Job) Run(ctx context.Context, opts Options) (Summary, error) {
	loc := timeutil.Location(opts.Timezone)
	runDate := opts.Date
	if runDate.IsZero() {
		runDate = time.Now()
	}
	runDate = runDate.In(loc)

	monthKey := MonthKey(runDate)
	remarks := opts.Remarks
	if remarks == "" {
		remarks = "Monthly fee for " + monthKey
	}
	eligible := opts.EligibleStatus
	if eligible == "" {
		eligible = DefaultEligibleStatus
	}

	log.Printf("[Billing] Run started for %s (eligible status %q)", monthKey, eligible)

	var sum Summary
	userIDs, err := j.users.ListUserIDs(ctx)
	if err != nil {
		return sum, fmt.Errorf("billing: failed to enumerate users: %w", err)
	}

	for _, userID := range userIDs {
		sum.Users++

		hostels, err := j.hostels.ListByOwner(ctx, userID)
		if err != nil {
			log.Printf("[Billing] Skipping user %s: %v", userID, err)
			continue
		}

		for _, hostel := range hostels {
			sum.Hostels++

			students, err := j.students.ListByHostel(ctx, hostel.ID)
			if err != nil {
				log.Printf("[Billing] Skipping hostel %s: %v", hostel.ID, err)
				continue
			}

			for i := range students {
				sum.Students++
				j.billStudent(ctx, &students[i], &hostel, monthKey, remarks, eligible, runDate, &sum)
			}
		}
	}

	log.Printf("[Billing] Run complete for %s: users=%d hostels=%d students=%d debits=%d skipped=%d",
		monthKey, sum.Users, sum.Hostels, sum.Students, sum.DebitsCreated, sum.Skipped)
	return sum, nil
}

// billStudent applies the eligibility filter, fee resolution, idempotency
// probe and transactional write for one student. Any failure is logged and
// counted, never propagated.
func (j *Job) billStudent(ctx context.Context, student *models.Student, hostel *models.Hostel, monthKey, remarks, eligible string, now time.Time, sum *Summary) {
	if student.Status != eligible {
		sum.Skipped++
		return
	}

	amount := ResolveDebitAmount(student, hostel)
	if amount <= 0 {
		sum.Skipped++
		return
	}

	billed, err := j.debits.HasMonthlyDebit(ctx, student.ID, monthKey)
	if err != nil {
		log.Printf("[Billing] Probe failed for student %s: %v", student.CombinedID, err)
		sum.Skipped++
		return
	}
	if billed {
		sum.Skipped++
		return
	}

	created, _, err := j.debits.CreateMonthlyDebit(ctx, student.ID, amount, monthKey, remarks, now)
	if err != nil {
		log.Printf("[Billing] Debit failed for student %s: %v", student.CombinedID, err)
		sum.Skipped++
		return
	}
	if !created {
		// Lost the race to a concurrent run; the unique index held.
		sum.Skipped++
		return
	}
	sum.DebitsCreated++
}
