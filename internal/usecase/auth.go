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
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrAccountBlocked    = errors.New("account is blocked")
)

// AuthUseCase authenticates access codes against the user directory and
// keeps the resulting session on local disk so a restart does not force a
// new login.
type AuthUseCase struct {
	Log             *slog.Logger
	Directory       ports.Directory
	Sessions        ports.SessionStore
	Snapshots       ports.SnapshotStore
	AdminAccessCode string
}

// Login exchanges an access code for a user session. The configured admin
// code yields a built-in administrator account without a directory lookup.
func (uc *AuthUseCase) Login(ctx context.Context, accessCode string) (*domain.User, error) {
	accessCode = strings.TrimSpace(accessCode)
	if accessCode == "" {
		return nil, ErrInvalidAccessCode
	}

	if uc.AdminAccessCode != "" && accessCode == uc.AdminAccessCode {
		admin := &domain.User{
			ID:    "admin",
			Name:  "Super Admin",
			Title: "System Administrator",
			Role:  domain.RoleAdmin,
		}
		uc.saveSession(*admin)
		return admin, nil
	}

	user, err := uc.Directory.UserByAccessCode(ctx, accessCode)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidAccessCode
	}
	if user.Blocked {
		return nil, ErrAccountBlocked
	}

	uc.saveSession(*user)
	uc.Log.Info("user logged in", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return user, nil
}

// Resume returns the locally persisted session, if any.
func (uc *AuthUseCase) Resume() (*domain.User, error) {
	return uc.Sessions.ReadSession()
}

// Logout clears the session and any in-progress timer snapshot.
func (uc *AuthUseCase) Logout() error {
	if err := uc.Snapshots.ClearSnapshot(); err != nil {
		uc.Log.Warn("failed to clear timer snapshot on logout", slog.String("error", err.Error()))
	}
	return uc.Sessions.ClearSession()
}

func (uc *AuthUseCase) saveSession(u domain.User) {
	if err := uc.Sessions.WriteSession(u); err != nil {
		uc.Log.Warn("failed to persist session", slog.String("error", err.Error()))
	}
}
