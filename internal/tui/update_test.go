package tui

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"timeos/internal/app"
	"timeos/internal/domain"
	"timeos/internal/timer"
	"timeos/internal/usecase"
)

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

func appWithTimer(snaps *memSnapshots, sessions *memSessions, now func() time.Time) *app.App {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &app.App{
		Auth: &usecase.AuthUseCase{
			Log:       log,
			Sessions:  sessions,
			Snapshots: snaps,
		},
		Tracking: &usecase.TrackingUseCase{Log: log},
		Timer:    timer.NewWithClock(snaps, log, now),
	}
}

// A timer left running by a dead process must come back on the tracker
// screen no matter how the user got there. The session-resume path and a
// fresh access-code login both lead here.
func TestRunningTimerSurvivesFreshLogin(t *testing.T) {
	t0 := time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC)
	snaps := &memSnapshots{snap: &domain.TimerSnapshot{
		Status:             domain.StatusRunning,
		StartedAtMS:        t0.Add(-300 * time.Second).UnixMilli(),
		AccumulatedSeconds: 0,
		CompanyID:          "acme",
		Description:        "Fix login bug",
		SavedAtMS:          t0.Add(-300 * time.Second).UnixMilli(),
	}}
	// No persisted session: the user has to log in again.
	application := appWithTimer(snaps, &memSessions{}, func() time.Time { return t0 })
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	m := newModel(application, log)
	if m.screen != loginScreen {
		t.Fatalf("screen = %v, want login", m.screen)
	}
	if m.running {
		t.Fatal("timer restored before login")
	}

	user := &domain.User{ID: "u1", Name: "Dana", Role: domain.RoleEmployee}
	next, cmd := m.Update(loginResultMsg{User: user})
	m = next.(model)

	if m.screen != trackerScreen {
		t.Fatalf("screen = %v, want tracker", m.screen)
	}
	if !m.running {
		t.Fatal("running timer not restored after login")
	}
	if m.elapsed != 300 {
		t.Fatalf("elapsed = %d, want 300", m.elapsed)
	}
	if got := m.descInput.Value(); got != "Fix login bug" {
		t.Fatalf("description = %q", got)
	}
	if cmd == nil {
		t.Fatal("no follow-up commands after login")
	}
	if !application.Timer.Running() {
		t.Fatal("engine not running after restore")
	}
}

func TestSessionResumeRestoresTimer(t *testing.T) {
	t0 := time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC)
	snaps := &memSnapshots{snap: &domain.TimerSnapshot{
		Status:      domain.StatusRunning,
		StartedAtMS: t0.Add(-120 * time.Second).UnixMilli(),
		CompanyID:   "acme",
		Description: "wip",
		SavedAtMS:   t0.Add(-120 * time.Second).UnixMilli(),
	}}
	sessions := &memSessions{user: &domain.User{ID: "u1", Name: "Dana"}}
	application := appWithTimer(snaps, sessions, func() time.Time { return t0 })
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	m := newModel(application, log)
	if m.screen != trackerScreen {
		t.Fatalf("screen = %v, want tracker", m.screen)
	}
	if !m.running || m.elapsed != 120 {
		t.Fatalf("running=%v elapsed=%d, want running at 120", m.running, m.elapsed)
	}
}
