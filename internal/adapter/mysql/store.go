package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"timeos/internal/domain"
)

// Store implements ports.Store over MySQL.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// NewStore opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
func NewStore(ctx context.Context, dsn string, log *slog.Logger) (*Store, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	// Conservative pool defaults; can be adjusted via env later.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// Close closes the underlying DB. Not wired via interface to keep ports minimal.
func (s *Store) Close() error { return s.db.Close() }

// --- users ---

func (s *Store) CreateUser(ctx context.Context, u domain.User) (string, error) {
	id := uuid.NewString()
	assigned, _ := json.Marshal(u.AssignedCompanyIDs)
	const q = `
INSERT INTO users
  (id, name, title, role, access_code, assigned_company_ids, is_blocked, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, q,
		id, u.Name, u.Title, string(u.Role), u.AccessCode, string(assigned), u.Blocked, time.Now().UTC(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UserByAccessCode(ctx context.Context, code string) (*domain.User, error) {
	const q = `
SELECT id, name, title, role, access_code, assigned_company_ids, is_blocked, created_at
FROM users WHERE access_code = ?;
`
	row := s.db.QueryRowContext(ctx, q, code)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	const q = `
SELECT id, name, title, role, access_code, assigned_company_ids, is_blocked, created_at
FROM users ORDER BY created_at DESC;
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (s *Store) UpdateUser(ctx context.Context, u domain.User) error {
	assigned, _ := json.Marshal(u.AssignedCompanyIDs)
	const q = `
UPDATE users SET
  name=?, title=?, role=?, access_code=?, assigned_company_ids=?, is_blocked=?
WHERE id=?;
`
	_, err := s.db.ExecContext(ctx, q,
		u.Name, u.Title, string(u.Role), u.AccessCode, string(assigned), u.Blocked, u.ID,
	)
	return err
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id=?;`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(r rowScanner) (*domain.User, error) {
	var (
		u        domain.User
		role     string
		assigned string
	)
	if err := r.Scan(&u.ID, &u.Name, &u.Title, &role, &u.AccessCode, &assigned, &u.Blocked, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	if assigned != "" {
		_ = json.Unmarshal([]byte(assigned), &u.AssignedCompanyIDs)
	}
	return &u, nil
}

// --- companies ---

func (s *Store) CreateCompany(ctx context.Context, c domain.Company) (string, error) {
	id := uuid.NewString()
	const q = `
INSERT INTO companies
  (id, name, client_reference, client_email, created_at)
VALUES
  (?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, q, id, c.Name, c.ClientReference, c.ClientEmail, time.Now().UTC())
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	const q = `
SELECT id, name, client_reference, client_email, created_at
FROM companies ORDER BY created_at DESC;
`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Company
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.ClientReference, &c.ClientEmail, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) UpdateCompany(ctx context.Context, c domain.Company) error {
	const q = `
UPDATE companies SET name=?, client_reference=?, client_email=? WHERE id=?;
`
	_, err := s.db.ExecContext(ctx, q, c.Name, c.ClientReference, c.ClientEmail, c.ID)
	return err
}

func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM companies WHERE id=?;`, id)
	return err
}

// --- time entries ---

func (s *Store) CreateTimeEntry(ctx context.Context, e domain.TimeEntry) (string, error) {
	id := uuid.NewString()
	const q = `
INSERT INTO time_entries
  (id, user_id, user_name, user_title, company_id, company_name, description, seconds, date, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, q,
		id, e.UserID, e.UserName, e.UserTitle, e.CompanyID, e.CompanyName,
		e.Description, e.Seconds, e.Date, time.Now().UTC(),
	)
	if err != nil {
		return "", err
	}
	s.log.Debug("time entry inserted", slog.String("id", id))
	return id, nil
}

func (s *Store) ListTimeEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	return s.queryEntries(ctx, `
SELECT id, user_id, user_name, user_title, company_id, company_name, description, seconds, date, created_at
FROM time_entries ORDER BY created_at DESC;
`)
}

func (s *Store) ListTimeEntriesByUser(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	return s.queryEntries(ctx, `
SELECT id, user_id, user_name, user_title, company_id, company_name, description, seconds, date, created_at
FROM time_entries WHERE user_id=? ORDER BY created_at DESC;
`, userID)
}

func (s *Store) queryEntries(ctx context.Context, q string, args ...any) ([]domain.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.UserName, &e.UserTitle, &e.CompanyID, &e.CompanyName,
			&e.Description, &e.Seconds, &e.Date, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) UpdateTimeEntry(ctx context.Context, id, description string, seconds int64) error {
	const q = `UPDATE time_entries SET description=?, seconds=? WHERE id=?;`
	_, err := s.db.ExecContext(ctx, q, description, seconds, id)
	return err
}

func (s *Store) DeleteTimeEntry(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id=?;`, id)
	return err
}
