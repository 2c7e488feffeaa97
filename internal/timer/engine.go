package timer

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"timeos/internal/domain"
	"timeos/internal/ports"
)

var (
	// ErrNoCompany is returned by Start when no company is selected.
	ErrNoCompany = errors.New("timer: company is required")
	// ErrNoDescription is returned by Start when the description is empty.
	ErrNoDescription = errors.New("timer: description is required")
	// ErrAlreadyRunning is returned by Start while a timer is running.
	ErrAlreadyRunning = errors.New("timer: already running")
	// ErrNotRunning is returned by Stop when no timer is running.
	ErrNotRunning = errors.New("timer: not running")
	// ErrTooShort reports an interval under one second; the interval is
	// discarded but the stop itself succeeded.
	ErrTooShort = errors.New("timer: ran for less than one second")
)

// Engine is the single-timer state machine. Elapsed time is always
// recomputed from wall-clock deltas, never accumulated by counting ticks,
// so display cadence has no effect on correctness. While running, every
// state change is mirrored into the snapshot store so a crash or restart
// can resume where the clock left off.
type Engine struct {
	snapshots ports.SnapshotStore
	log       *slog.Logger
	now       func() time.Time

	mu          sync.Mutex
	running     bool
	startedAt   time.Time
	accumulated int64
	companyID   string
	description string
}

func New(snapshots ports.SnapshotStore, log *slog.Logger) *Engine {
	return NewWithClock(snapshots, log, time.Now)
}

// NewWithClock builds an engine with an injected clock for tests.
func NewWithClock(snapshots ports.SnapshotStore, log *slog.Logger, now func() time.Time) *Engine {
	return &Engine{snapshots: snapshots, log: log, now: now}
}

// Start begins a new interval. Both inputs must be non-empty after
// trimming; on failure no state changes.
func (e *Engine) Start(companyID, description string) error {
	companyID = strings.TrimSpace(companyID)
	description = strings.TrimSpace(description)
	if companyID == "" {
		return ErrNoCompany
	}
	if description == "" {
		return ErrNoDescription
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return ErrAlreadyRunning
	}
	e.running = true
	e.startedAt = e.now()
	e.accumulated = 0
	e.companyID = companyID
	e.description = description
	e.persistLocked()
	return nil
}

// Running reports whether an interval is in progress.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// State returns the company and description of the current interval.
func (e *Engine) State() (companyID, description string, running bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.companyID, e.description, e.running
}

// Elapsed returns whole seconds tracked so far, zero when stopped.
func (e *Engine) Elapsed() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return 0
	}
	return e.elapsedLocked()
}

func (e *Engine) elapsedLocked() int64 {
	return e.accumulated + e.now().Sub(e.startedAt).Milliseconds()/1000
}

// UpdateDescription revises the task description mid-interval and
// re-persists the snapshot. A no-op when stopped.
func (e *Engine) UpdateDescription(description string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.description = description
	e.persistLocked()
}

// Stop finalizes the interval and returns its length in whole seconds.
// The snapshot slot is cleared and the engine resets to stopped even when
// the interval is too short, in which case ErrTooShort is returned and the
// caller should not record an entry.
func (e *Engine) Stop() (int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return 0, ErrNotRunning
	}
	final := e.elapsedLocked()

	e.running = false
	e.startedAt = time.Time{}
	e.accumulated = 0
	e.companyID = ""
	e.description = ""
	if err := e.snapshots.ClearSnapshot(); err != nil {
		e.log.Warn("failed to clear timer snapshot", slog.String("error", err.Error()))
	}

	if final < 1 {
		return final, ErrTooShort
	}
	return final, nil
}

// Restore resumes a persisted interval, if any. The restored total is the
// snapshot's accumulated seconds plus the segment that was running when it
// was saved (save time minus start time) plus the gap between the save and
// now (the drift), so the displayed elapsed time carries on as if the
// process had never exited. A fresh running segment starts at the current
// instant. Returns whether a timer was resumed. An empty or corrupt slot
// leaves the engine stopped.
func (e *Engine) Restore() (bool, error) {
	snap, err := e.snapshots.ReadSnapshot()
	if err != nil {
		return false, err
	}
	if snap == nil {
		return false, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return false, ErrAlreadyRunning
	}

	now := e.now()
	segment := (snap.SavedAtMS - snap.StartedAtMS) / 1000
	if segment < 0 {
		segment = 0
	}
	drift := (now.UnixMilli() - snap.SavedAtMS) / 1000
	if drift < 0 {
		// Clock went backwards while unloaded; keep what was counted.
		drift = 0
	}
	e.running = true
	e.startedAt = now
	e.accumulated = snap.AccumulatedSeconds + segment + drift
	e.companyID = snap.CompanyID
	e.description = snap.Description
	e.persistLocked()
	e.log.Info("resumed timer from snapshot",
		slog.String("company_id", e.companyID),
		slog.Int64("drift_seconds", drift),
	)
	return true, nil
}

// persistLocked mirrors the running state into the snapshot slot. Write
// failures are logged and swallowed: tracking must stay usable without
// durable local state.
func (e *Engine) persistLocked() {
	snap := domain.TimerSnapshot{
		Status:             domain.StatusRunning,
		StartedAtMS:        e.startedAt.UnixMilli(),
		AccumulatedSeconds: e.accumulated,
		CompanyID:          e.companyID,
		Description:        e.description,
		SavedAtMS:          e.now().UnixMilli(),
	}
	if err := e.snapshots.WriteSnapshot(snap); err != nil {
		e.log.Warn("failed to persist timer snapshot", slog.String("error", err.Error()))
	}
}
