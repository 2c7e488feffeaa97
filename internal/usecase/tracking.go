package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"timeos/internal/domain"
	"timeos/internal/ports"
)

// UnknownCompanyName labels an entry whose company could not be resolved
// even after a fresh fetch. Losing the tracked time would be worse than
// mislabeling it.
const UnknownCompanyName = "Unknown Company"

var (
	// ErrShortInterval reports an interval under one second; nothing was
	// recorded and nothing failed.
	ErrShortInterval = errors.New("interval shorter than one second, not recorded")

	ErrEmptyDescription    = errors.New("description is required")
	ErrNonPositiveDuration = errors.New("duration must be greater than zero")
)

// TrackingUseCase records finished intervals and manages a user's entries.
// It keeps an in-memory cache of the company list for resolving the
// denormalized company name at submit time.
type TrackingUseCase struct {
	Log   *slog.Logger
	Store ports.Store
	Now   func() time.Time

	mu        sync.Mutex
	companies []domain.Company
}

// LoadCompanies fetches the company list and caches it. Employees only see
// their assigned companies; admins see all.
func (uc *TrackingUseCase) LoadCompanies(ctx context.Context, user domain.User) ([]domain.Company, error) {
	all, err := uc.Store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	visible := all
	if user.Role != domain.RoleAdmin {
		visible = visible[:0:0]
		for _, c := range all {
			if user.CanTrack(c.ID) {
				visible = append(visible, c)
			}
		}
	}
	uc.mu.Lock()
	uc.companies = visible
	uc.mu.Unlock()
	return visible, nil
}

// Submit records a finished interval as a time entry. The company name is
// resolved from the cached list; on a miss it refetches the list exactly
// once before falling back to UnknownCompanyName. Persistence failures are
// returned verbatim.
func (uc *TrackingUseCase) Submit(ctx context.Context, user domain.User, companyID, description string, seconds int64) (*domain.TimeEntry, error) {
	if seconds < 1 {
		return nil, ErrShortInterval
	}

	name := uc.cachedCompanyName(companyID)
	if name == "" {
		// The company may have been created or renamed by another session
		// since the cache was loaded.
		if fresh, err := uc.Store.ListCompanies(ctx); err == nil {
			uc.mu.Lock()
			uc.companies = fresh
			uc.mu.Unlock()
			name = uc.cachedCompanyName(companyID)
		} else {
			uc.Log.Warn("company fallback fetch failed", slog.String("error", err.Error()))
		}
	}
	if name == "" {
		name = UnknownCompanyName
	}

	now := uc.clock()
	entry := domain.TimeEntry{
		UserID:      user.ID,
		UserName:    user.Name,
		UserTitle:   user.Title,
		CompanyID:   companyID,
		CompanyName: name,
		Description: strings.TrimSpace(description),
		Seconds:     seconds,
		Date:        now.Format("2006-01-02"),
	}
	id, err := uc.Store.CreateTimeEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id
	uc.Log.Info("time entry recorded",
		slog.String("entry_id", id),
		slog.String("company", name),
		slog.Int64("seconds", seconds),
	)
	return &entry, nil
}

// Entries lists the user's entries, newest first (store order).
func (uc *TrackingUseCase) Entries(ctx context.Context, userID string) ([]domain.TimeEntry, error) {
	return uc.Store.ListTimeEntriesByUser(ctx, userID)
}

// EditEntry updates an entry's description and duration.
func (uc *TrackingUseCase) EditEntry(ctx context.Context, id, description string, seconds int64) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}
	if seconds <= 0 {
		return ErrNonPositiveDuration
	}
	return uc.Store.UpdateTimeEntry(ctx, id, description, seconds)
}

// DeleteEntry removes an entry permanently.
func (uc *TrackingUseCase) DeleteEntry(ctx context.Context, id string) error {
	return uc.Store.DeleteTimeEntry(ctx, id)
}

func (uc *TrackingUseCase) cachedCompanyName(companyID string) string {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, c := range uc.companies {
		if c.ID == companyID {
			return c.Name
		}
	}
	return ""
}

func (uc *TrackingUseCase) clock() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}
