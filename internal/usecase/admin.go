package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"timeos/internal/domain"
	"timeos/internal/ports"
)

var (
	ErrEmptyName       = errors.New("name is required")
	ErrEmptyAccessCode = errors.New("access code is required")
)

// AdminUseCase covers the management surface: employee and company CRUD
// plus access to every recorded entry for reporting.
type AdminUseCase struct {
	Log   *slog.Logger
	Store ports.Store
}

func (uc *AdminUseCase) Users(ctx context.Context) ([]domain.User, error) {
	return uc.Store.ListUsers(ctx)
}

// SaveUser creates the user when its ID is empty and updates it otherwise.
func (uc *AdminUseCase) SaveUser(ctx context.Context, u domain.User) (string, error) {
	u.Name = strings.TrimSpace(u.Name)
	u.AccessCode = strings.TrimSpace(u.AccessCode)
	if u.Name == "" {
		return "", ErrEmptyName
	}
	if u.AccessCode == "" {
		return "", ErrEmptyAccessCode
	}
	if u.Role == "" {
		u.Role = domain.RoleEmployee
	}
	if u.ID == "" {
		id, err := uc.Store.CreateUser(ctx, u)
		if err != nil {
			return "", err
		}
		uc.Log.Info("employee created", slog.String("user_id", id))
		return id, nil
	}
	return u.ID, uc.Store.UpdateUser(ctx, u)
}

// SetBlocked toggles whether a user can log in.
func (uc *AdminUseCase) SetBlocked(ctx context.Context, u domain.User, blocked bool) error {
	u.Blocked = blocked
	return uc.Store.UpdateUser(ctx, u)
}

func (uc *AdminUseCase) DeleteUser(ctx context.Context, id string) error {
	return uc.Store.DeleteUser(ctx, id)
}

func (uc *AdminUseCase) Companies(ctx context.Context) ([]domain.Company, error) {
	return uc.Store.ListCompanies(ctx)
}

func (uc *AdminUseCase) AddCompany(ctx context.Context, c domain.Company) (string, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return "", ErrEmptyName
	}
	id, err := uc.Store.CreateCompany(ctx, c)
	if err != nil {
		return "", err
	}
	uc.Log.Info("company created", slog.String("company_id", id), slog.String("name", c.Name))
	return id, nil
}

func (uc *AdminUseCase) UpdateCompany(ctx context.Context, c domain.Company) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return uc.Store.UpdateCompany(ctx, c)
}

func (uc *AdminUseCase) DeleteCompany(ctx context.Context, id string) error {
	return uc.Store.DeleteCompany(ctx, id)
}

// AllEntries returns every recorded entry, newest first.
func (uc *AdminUseCase) AllEntries(ctx context.Context) ([]domain.TimeEntry, error) {
	return uc.Store.ListTimeEntries(ctx)
}
