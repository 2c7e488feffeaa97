package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"timeos/internal/domain"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 2, 17, 30, 0, 0, time.UTC)
}

func newTrackingForTest(store *memStore) *TrackingUseCase {
	return &TrackingUseCase{Log: testLogger(), Store: store, Now: fixedNow}
}

func TestLoadCompaniesFiltersByAssignment(t *testing.T) {
	store := &memStore{companies: []domain.Company{
		{ID: "acme", Name: "Acme Corp"},
		{ID: "globex", Name: "Globex"},
		{ID: "initech", Name: "Initech"},
	}}
	uc := newTrackingForTest(store)

	employee := domain.User{ID: "u1", Role: domain.RoleEmployee, AssignedCompanyIDs: []string{"acme", "initech"}}
	got, err := uc.LoadCompanies(context.Background(), employee)
	if err != nil {
		t.Fatalf("LoadCompanies: %v", err)
	}
	if len(got) != 2 || got[0].ID != "acme" || got[1].ID != "initech" {
		t.Fatalf("employee companies = %+v", got)
	}

	admin := domain.User{ID: "a1", Role: domain.RoleAdmin}
	got, err = uc.LoadCompanies(context.Background(), admin)
	if err != nil {
		t.Fatalf("LoadCompanies: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("admin sees %d companies, want 3", len(got))
	}
}

func TestSubmitRecordsEntry(t *testing.T) {
	store := &memStore{companies: []domain.Company{{ID: "acme", Name: "Acme Corp"}}}
	uc := newTrackingForTest(store)
	user := domain.User{ID: "u1", Name: "Dana", Title: "Engineer", Role: domain.RoleAdmin}

	if _, err := uc.LoadCompanies(context.Background(), user); err != nil {
		t.Fatalf("LoadCompanies: %v", err)
	}

	entry, err := uc.Submit(context.Background(), user, "acme", "  Fix login bug  ", 125)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.ID == "" {
		t.Fatal("entry has no id")
	}
	if entry.CompanyName != "Acme Corp" {
		t.Fatalf("company name = %q", entry.CompanyName)
	}
	if entry.Description != "Fix login bug" {
		t.Fatalf("description = %q", entry.Description)
	}
	if entry.Seconds != 125 {
		t.Fatalf("seconds = %d", entry.Seconds)
	}
	if entry.Date != "2025-06-02" {
		t.Fatalf("date = %q", entry.Date)
	}
	if entry.UserName != "Dana" || entry.UserTitle != "Engineer" {
		t.Fatalf("denormalized user fields = %q %q", entry.UserName, entry.UserTitle)
	}
	if len(store.entries) != 1 {
		t.Fatalf("store holds %d entries", len(store.entries))
	}
}

func TestSubmitShortInterval(t *testing.T) {
	store := &memStore{}
	uc := newTrackingForTest(store)

	_, err := uc.Submit(context.Background(), domain.User{ID: "u1"}, "acme", "x", 0)
	if !errors.Is(err, ErrShortInterval) {
		t.Fatalf("Submit = %v, want ErrShortInterval", err)
	}
	if len(store.entries) != 0 {
		t.Fatal("short interval was recorded")
	}
}

// A cache miss triggers exactly one refetch before giving up on the name.
func TestSubmitRefetchesOnCacheMiss(t *testing.T) {
	store := &memStore{companies: []domain.Company{{ID: "acme", Name: "Acme Corp"}}}
	uc := newTrackingForTest(store)
	user := domain.User{ID: "u1", Role: domain.RoleAdmin}

	if _, err := uc.LoadCompanies(context.Background(), user); err != nil {
		t.Fatalf("LoadCompanies: %v", err)
	}
	// Another session adds a company after the cache was loaded.
	store.companies = append(store.companies, domain.Company{ID: "globex", Name: "Globex"})
	calls := store.listCompaniesCalls

	entry, err := uc.Submit(context.Background(), user, "globex", "x", 10)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.CompanyName != "Globex" {
		t.Fatalf("company name = %q, want Globex", entry.CompanyName)
	}
	if got := store.listCompaniesCalls - calls; got != 1 {
		t.Fatalf("refetched %d times, want 1", got)
	}
}

func TestSubmitUnknownCompany(t *testing.T) {
	store := &memStore{}
	uc := newTrackingForTest(store)

	entry, err := uc.Submit(context.Background(), domain.User{ID: "u1"}, "ghost", "x", 10)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.CompanyName != UnknownCompanyName {
		t.Fatalf("company name = %q, want %q", entry.CompanyName, UnknownCompanyName)
	}
}

// The refetch failing must not fail the submit; the entry is still
// recorded under the fallback name.
func TestSubmitRecordsDespiteRefetchFailure(t *testing.T) {
	store := &memStore{listCompaniesErr: errors.New("db down")}
	uc := newTrackingForTest(store)

	entry, err := uc.Submit(context.Background(), domain.User{ID: "u1"}, "acme", "x", 10)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if entry.CompanyName != UnknownCompanyName {
		t.Fatalf("company name = %q", entry.CompanyName)
	}
}

func TestSubmitPersistenceFailure(t *testing.T) {
	boom := errors.New("insert failed")
	store := &memStore{createEntryErr: boom}
	uc := newTrackingForTest(store)

	_, err := uc.Submit(context.Background(), domain.User{ID: "u1"}, "acme", "x", 10)
	if !errors.Is(err, boom) {
		t.Fatalf("Submit = %v, want the store error", err)
	}
}

func TestEditEntryValidation(t *testing.T) {
	store := &memStore{entries: []domain.TimeEntry{{ID: "e1", Description: "old", Seconds: 10}}}
	uc := newTrackingForTest(store)

	if err := uc.EditEntry(context.Background(), "e1", "  ", 10); !errors.Is(err, ErrEmptyDescription) {
		t.Fatalf("empty description = %v", err)
	}
	if err := uc.EditEntry(context.Background(), "e1", "new", 0); !errors.Is(err, ErrNonPositiveDuration) {
		t.Fatalf("zero duration = %v", err)
	}
	if err := uc.EditEntry(context.Background(), "e1", "new", 90); err != nil {
		t.Fatalf("EditEntry: %v", err)
	}
	if store.entries[0].Description != "new" || store.entries[0].Seconds != 90 {
		t.Fatalf("entry not updated: %+v", store.entries[0])
	}
}

func TestEntriesScopedToUser(t *testing.T) {
	store := &memStore{entries: []domain.TimeEntry{
		{ID: "e1", UserID: "u1"},
		{ID: "e2", UserID: "u2"},
		{ID: "e3", UserID: "u1"},
	}}
	uc := newTrackingForTest(store)

	got, err := uc.Entries(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
}
