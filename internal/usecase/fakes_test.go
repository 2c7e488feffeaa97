package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"timeos/internal/domain"
)

// memStore is an in-memory ports.Store for exercising the use cases
// without a database. Per-call error hooks simulate persistence failures.
type memStore struct {
	users     []domain.User
	companies []domain.Company
	entries   []domain.TimeEntry

	listCompaniesErr   error
	createEntryErr     error
	listCompaniesCalls int
	nextID             int
}

func (m *memStore) genID(prefix string) string {
	m.nextID++
	return fmt.Sprintf("%s-%d", prefix, m.nextID)
}

func (m *memStore) CreateUser(_ context.Context, u domain.User) (string, error) {
	u.ID = m.genID("user")
	m.users = append(m.users, u)
	return u.ID, nil
}

func (m *memStore) UserByAccessCode(_ context.Context, code string) (*domain.User, error) {
	for _, u := range m.users {
		if u.AccessCode == code {
			cp := u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListUsers(_ context.Context) ([]domain.User, error) {
	return m.users, nil
}

func (m *memStore) UpdateUser(_ context.Context, u domain.User) error {
	for i := range m.users {
		if m.users[i].ID == u.ID {
			m.users[i] = u
			return nil
		}
	}
	return fmt.Errorf("user %s not found", u.ID)
}

func (m *memStore) DeleteUser(_ context.Context, id string) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) CreateCompany(_ context.Context, c domain.Company) (string, error) {
	c.ID = m.genID("company")
	m.companies = append(m.companies, c)
	return c.ID, nil
}

func (m *memStore) ListCompanies(_ context.Context) ([]domain.Company, error) {
	m.listCompaniesCalls++
	if m.listCompaniesErr != nil {
		return nil, m.listCompaniesErr
	}
	return m.companies, nil
}

func (m *memStore) UpdateCompany(_ context.Context, c domain.Company) error {
	for i := range m.companies {
		if m.companies[i].ID == c.ID {
			m.companies[i] = c
			return nil
		}
	}
	return fmt.Errorf("company %s not found", c.ID)
}

func (m *memStore) DeleteCompany(_ context.Context, id string) error {
	for i := range m.companies {
		if m.companies[i].ID == id {
			m.companies = append(m.companies[:i], m.companies[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memStore) CreateTimeEntry(_ context.Context, e domain.TimeEntry) (string, error) {
	if m.createEntryErr != nil {
		return "", m.createEntryErr
	}
	e.ID = m.genID("entry")
	m.entries = append(m.entries, e)
	return e.ID, nil
}

func (m *memStore) ListTimeEntries(_ context.Context) ([]domain.TimeEntry, error) {
	return m.entries, nil
}

func (m *memStore) ListTimeEntriesByUser(_ context.Context, userID string) ([]domain.TimeEntry, error) {
	var out []domain.TimeEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) UpdateTimeEntry(_ context.Context, id, description string, seconds int64) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries[i].Description = description
			m.entries[i].Seconds = seconds
			return nil
		}
	}
	return fmt.Errorf("entry %s not found", id)
}

func (m *memStore) DeleteTimeEntry(_ context.Context, id string) error {
	for i := range m.entries {
		if m.entries[i].ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

type memSessions struct {
	user *domain.User
}

func (m *memSessions) ReadSession() (*domain.User, error) {
	if m.user == nil {
		return nil, nil
	}
	cp := *m.user
	return &cp, nil
}

func (m *memSessions) WriteSession(u domain.User) error {
	m.user = &u
	return nil
}

func (m *memSessions) ClearSession() error {
	m.user = nil
	return nil
}

type memSnapshots struct {
	snap *domain.TimerSnapshot
}

func (m *memSnapshots) ReadSnapshot() (*domain.TimerSnapshot, error) {
	if m.snap == nil {
		return nil, nil
	}
	cp := *m.snap
	return &cp, nil
}

func (m *memSnapshots) WriteSnapshot(s domain.TimerSnapshot) error {
	m.snap = &s
	return nil
}

func (m *memSnapshots) ClearSnapshot() error {
	m.snap = nil
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
