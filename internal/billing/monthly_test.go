package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"hostel-backend/internal/models"
)

// fakeStore is an in-memory stand-in for the repositories, mirroring the
// transactional semantics of the real debit store: one debit per student per
// billing month, balance updated together with the insert.
type fakeStore struct {
	users    []string
	hostels  map[string][]models.Hostel  // ownerUserID -> hostels
	students map[string][]models.Student // hostelDocID -> students

	debits   map[string]map[string]models.Payment // studentDocID -> monthKey -> debit
	balances map[string]*float64

	failStudents map[string]bool // studentDocID -> CreateMonthlyDebit fails
	usersErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		hostels:      map[string][]models.Hostel{},
		students:     map[string][]models.Student{},
		debits:       map[string]map[string]models.Payment{},
		balances:     map[string]*float64{},
		failStudents: map[string]bool{},
	}
}

func (f *fakeStore) ListUserIDs(ctx context.Context) ([]string, error) {
	if f.usersErr != nil {
		return nil, f.usersErr
	}
	return f.users, nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerUserID string) ([]models.Hostel, error) {
	return f.hostels[ownerUserID], nil
}

func (f *fakeStore) ListByHostel(ctx context.Context, hostelDocID string) ([]models.Student, error) {
	return f.students[hostelDocID], nil
}

func (f *fakeStore) HasMonthlyDebit(ctx context.Context, studentDocID, monthKey string) (bool, error) {
	_, ok := f.debits[studentDocID][monthKey]
	return ok, nil
}

func (f *fakeStore) CreateMonthlyDebit(ctx context.Context, studentDocID string, amount float64, monthKey, remarks string, now time.Time) (bool, float64, error) {
	if f.failStudents[studentDocID] {
		return false, 0, errors.New("store contention")
	}
	if _, ok := f.debits[studentDocID][monthKey]; ok {
		base := 0.0
		if b := f.balances[studentDocID]; b != nil {
			base = *b
		}
		return false, base, nil
	}
	base := 0.0
	if b := f.balances[studentDocID]; b != nil {
		base = *b
	}
	newBalance := base + amount
	if f.debits[studentDocID] == nil {
		f.debits[studentDocID] = map[string]models.Payment{}
	}
	f.debits[studentDocID][monthKey] = models.Payment{
		ID:           studentDocID + ":debit-" + monthKey,
		StudentDocID: studentDocID,
		Amount:       amount,
		Type:         models.PaymentTypeDebit,
		PaymentMode:  models.PaymentModeRentDebit,
		Remarks:      remarks,
		BillingMonth: monthKey,
		Timestamp:    now,
	}
	f.balances[studentDocID] = &newBalance
	return true, newBalance, nil
}

func (f *fakeStore) addStudent(owner, hostelDoc string, s models.Student) {
	s.OwnerUserID = owner
	s.OwnerHostelDocID = hostelDoc
	f.students[hostelDoc] = append(f.students[hostelDoc], s)
}

// oneTenantStore builds user u1 with hostel h1 (fee 2000) holding the given
// students.
func oneTenantStore(students ...models.Student) *fakeStore {
	f := newFakeStore()
	f.users = []string{"u1"}
	f.hostels["u1"] = []models.Hostel{{ID: "h1", OwnerUserID: "u1", HostelID: "01", MonthlyFee: 2000}}
	for _, s := range students {
		f.addStudent("u1", "h1", s)
	}
	return f
}

func marchRun() Options {
	return Options{Date: time.Date(2025, 3, 1, 0, 5, 0, 0, time.UTC)}
}

func TestRunCreatesDebitForEligibleStudent(t *testing.T) {
	store := oneTenantStore(models.Student{ID: "s1", CombinedID: "01/0001", Status: "active"})
	job, err := NewJob(store, store, store, store)
	if err != nil {
		t.Fatal(err)
	}

	sum, err := job.Run(context.Background(), marchRun())
	if err != nil {
		t.Fatal(err)
	}

	want := Summary{Users: 1, Hostels: 1, Students: 1, DebitsCreated: 1, Skipped: 0}
	if sum != want {
		t.Fatalf("summary = %+v, want %+v", sum, want)
	}

	debit, ok := store.debits["s1"]["03-2025"]
	if !ok {
		t.Fatal("no debit created for 03-2025")
	}
	if debit.Amount != 2000 || debit.Type != models.PaymentTypeDebit {
		t.Errorf("debit = %+v, want amount 2000 type debit", debit)
	}
	if debit.PaymentMode != "Rent Dr" {
		t.Errorf("payment mode = %q, want %q", debit.PaymentMode, "Rent Dr")
	}
	if debit.Remarks != "Monthly fee for 03-2025" {
		t.Errorf("remarks = %q", debit.Remarks)
	}
	if store.balances["s1"] == nil || *store.balances["s1"] != 2000 {
		t.Errorf("balance = %v, want 2000", store.balances["s1"])
	}
}

func TestRunIsIdempotent(t *testing.T) {
	store := oneTenantStore(models.Student{ID: "s1", CombinedID: "01/0001", Status: "active"})
	job, _ := NewJob(store, store, store, store)

	first, err := job.Run(context.Background(), marchRun())
	if err != nil {
		t.Fatal(err)
	}
	if first.DebitsCreated != 1 {
		t.Fatalf("first run debits = %d, want 1", first.DebitsCreated)
	}

	second, err := job.Run(context.Background(), marchRun())
	if err != nil {
		t.Fatal(err)
	}
	if second.DebitsCreated != 0 {
		t.Errorf("second run debits = %d, want 0", second.DebitsCreated)
	}
	if second.Skipped != 1 {
		t.Errorf("second run skipped = %d, want 1", second.Skipped)
	}
	if len(store.debits["s1"]) != 1 {
		t.Errorf("student has %d debits, want 1", len(store.debits["s1"]))
	}
	if *store.balances["s1"] != 2000 {
		t.Errorf("balance changed on re-run: %v", *store.balances["s1"])
	}
}

func TestRunDifferentMonthsBillSeparately(t *testing.T) {
	store := oneTenantStore(models.Student{ID: "s1", Status: "active"})
	job, _ := NewJob(store, store, store, store)

	ctx := context.Background()
	if _, err := job.Run(ctx, marchRun()); err != nil {
		t.Fatal(err)
	}
	april := Options{Date: time.Date(2025, 4, 1, 0, 5, 0, 0, time.UTC)}
	sum, err := job.Run(ctx, april)
	if err != nil {
		t.Fatal(err)
	}
	if sum.DebitsCreated != 1 {
		t.Errorf("april debits = %d, want 1", sum.DebitsCreated)
	}
	if *store.balances["s1"] != 4000 {
		t.Errorf("balance after two months = %v, want 4000", *store.balances["s1"])
	}
}

func TestRunEligibilityFilter(t *testing.T) {
	store := oneTenantStore(
		models.Student{ID: "s1", Status: "active"},
		models.Student{ID: "s2", Status: models.StatusApproved},
		models.Student{ID: "s3", Status: models.StatusPending},
		models.Student{ID: "s4", Status: models.StatusRejected},
	)
	job, _ := NewJob(store, store, store, store)

	sum, err := job.Run(context.Background(), marchRun())
	if err != nil {
		t.Fatal(err)
	}
	if sum.DebitsCreated != 1 || sum.Skipped != 3 {
		t.Errorf("summary = %+v, want 1 debit and 3 skipped", sum)
	}
	if _, ok := store.debits["s2"]; ok {
		t.Error("approved student billed under default eligibility")
	}
}

func TestRunConfigurableEligibleStatus(t *testing.T) {
	store := oneTenantStore(
		models.Student{ID: "s1", Status: "active"},
		models.Student{ID: "s2", Status: models.StatusApproved},
	)
	job, _ := NewJob(store, store, store, store)

	opts := marchRun()
	opts.EligibleStatus = models.StatusApproved
	sum, err := job.Run(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if sum.DebitsCreated != 1 {
		t.Fatalf("debits = %d, want 1", sum.DebitsCreated)
	}
	if _, ok := store.debits["s2"]["03-2025"]; !ok {
		t.Error("approved student not billed with overridden eligibility")
	}
	if _, ok := store.debits["s1"]; ok {
		t.Error("active student billed with overridden eligibility")
	}
}

func TestRunSkipsZeroFee(t *testing.T) {
	f := newFakeStore()
	f.users = []string{"u1"}
	f.hostels["u1"] = []models.Hostel{{ID: "h1", MonthlyFee: 0}}
	zero := 0.0
	f.addStudent("u1", "h1", models.Student{ID: "s1", Status: "active", MonthlyFee: &zero})
	f.addStudent("u1", "h1", models.Student{ID: "s2", Status: "active"})

	job, _ := NewJob(f, f, f, f)
	sum, err := job.Run(context.Background(), marchRun())
	if err != nil {
		t.Fatal(err)
	}
	if sum.DebitsCreated != 0 || sum.Skipped != 2 {
		t.Errorf("summary = %+v, want 0 debits and 2 skipped", sum)
	}
}

func TestRunFeeFallsBackToHostelDefault(t *testing.T) {
	store := oneTenantStore(models.Student{ID: "s1", Status: "active", AppliedFee: fptr(999)})
	job, _ := NewJob(store, store, store, store)

	if _, err := job.Run(context.Background(), marchRun()); err != nil {
		t.Fatal(err)
	}
	// monthlyFee absent -> hostel default 2000 wins over appliedFee.
	if d := store.debits["s1"]["03-2025"]; d.Amount != 2000 {
		t.Errorf("debit amount = %v, want hostel default 2000", d.Amount)
	}
}

func TestRunIsolatesStudentFailures(t *testing.T) {
	store := oneTenantStore(
		models.Student{ID: "s1", Status: "active"},
		models.Student{ID: "s2", Status: "active"},
		models.Student{ID: "s3", Status: "active"},
	)
	store.failStudents["s2"] = true
	job, _ := NewJob(store, store, store, store)

	sum, err := job.Run(context.Background(), marchRun())
	if err != nil {
		t.Fatalf("one student's failure must not fail the run: %v", err)
	}
	if sum.DebitsCreated != 2 || sum.Skipped != 1 {
		t.Errorf("summary = %+v, want 2 debits and 1 skipped", sum)
	}
}

func TestRunTopLevelEnumerationFailure(t *testing.T) {
	store := newFakeStore()
	store.usersErr = errors.New("store unreachable")
	job, _ := NewJob(store, store, store, store)

	if _, err := job.Run(context.Background(), marchRun()); err == nil {
		t.Fatal("expected error when user enumeration fails")
	}
}

func TestRunRemarksOverride(t *testing.T) {
	store := oneTenantStore(models.Student{ID: "s1", Status: "active"})
	job, _ := NewJob(store, store, store, store)

	opts := marchRun()
	opts.Remarks = "Backfill for March"
	if _, err := job.Run(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if d := store.debits["s1"]["03-2025"]; d.Remarks != "Backfill for March" {
		t.Errorf("remarks = %q", d.Remarks)
	}
}

func TestRunTimezoneAffectsMonthKey(t *testing.T) {
	store := oneTenantStore(models.Student{ID: "s1", Status: "active"})
	job, _ := NewJob(store, store, store, store)

	// 2025-02-28 19:00 UTC is already March 1st in Asia/Kolkata (UTC+5:30).
	opts := Options{
		Date:     time.Date(2025, 2, 28, 19, 0, 0, 0, time.UTC),
		Timezone: "Asia/Kolkata",
	}
	if _, err := job.Run(context.Background(), opts); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.debits["s1"]["03-2025"]; !ok {
		t.Errorf("expected billing month 03-2025 in Asia/Kolkata, got %v", store.debits["s1"])
	}
}

func TestNewJobRequiresStores(t *testing.T) {
	store := newFakeStore()
	if _, err := NewJob(nil, store, store, store); err == nil {
		t.Error("expected error for missing user source")
	}
	if _, err := NewJob(store, store, store, nil); err == nil {
		t.Error("expected error for missing debit store")
	}
}
