package ports

import (
	"context"

	"timeos/internal/domain"
)

// Directory holds the user records employees authenticate against.
type Directory interface {
	CreateUser(ctx context.Context, u domain.User) (string, error)
	UserByAccessCode(ctx context.Context, code string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) error
	DeleteUser(ctx context.Context, id string) error
}

// CompanyStore manages the client companies time is billed against.
type CompanyStore interface {
	CreateCompany(ctx context.Context, c domain.Company) (string, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	UpdateCompany(ctx context.Context, c domain.Company) error
	DeleteCompany(ctx context.Context, id string) error
}

// EntryStore persists finished time entries. Only description and seconds
// are mutable after creation.
type EntryStore interface {
	CreateTimeEntry(ctx context.Context, e domain.TimeEntry) (string, error)
	ListTimeEntries(ctx context.Context) ([]domain.TimeEntry, error)
	ListTimeEntriesByUser(ctx context.Context, userID string) ([]domain.TimeEntry, error)
	UpdateTimeEntry(ctx context.Context, id, description string, seconds int64) error
	DeleteTimeEntry(ctx context.Context, id string) error
}

// Store is the full persistence collaborator backing the application.
type Store interface {
	Directory
	CompanyStore
	EntryStore
}

// SnapshotStore is a single-slot durable store for the in-progress timer,
// local to one device. Readers must treat an unparsable slot as absent.
type SnapshotStore interface {
	ReadSnapshot() (*domain.TimerSnapshot, error)
	WriteSnapshot(s domain.TimerSnapshot) error
	ClearSnapshot() error
}

// SessionStore persists the logged-in user across process restarts.
type SessionStore interface {
	ReadSession() (*domain.User, error)
	WriteSession(u domain.User) error
	ClearSession() error
}

// Summarizer produces AI-assisted text for descriptions and reports.
type Summarizer interface {
	EnhanceDescription(ctx context.Context, rough string) (string, error)
	ExecutiveSummary(ctx context.Context, entries []domain.TimeEntry) (string, error)
}

// Mailer delivers a rendered timesheet to a client address.
type Mailer interface {
	SendTimesheet(ctx context.Context, to, subject, htmlBody string) error
}
