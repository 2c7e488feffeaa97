package statefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"timeos/internal/domain"
)

// Store keeps per-device local state as JSON files under a base directory:
// one slot for the in-progress timer and one for the login session. The
// device key makes the one-running-timer-per-device scope explicit; two
// Stores with different keys never see each other's timer.
type Store struct {
	dir string
	key string
	log *slog.Logger
	mu  sync.Mutex
}

func New(dir, deviceKey string, log *slog.Logger) (*Store, error) {
	if deviceKey == "" {
		return nil, errors.New("statefile: device key is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("statefile: %w", err)
	}
	return &Store{dir: dir, key: deviceKey, log: log}, nil
}

func (s *Store) timerPath() string {
	return filepath.Join(s.dir, "timer-"+s.key+".json")
}

func (s *Store) sessionPath() string {
	return filepath.Join(s.dir, "session-"+s.key+".json")
}

// ReadSnapshot returns the persisted timer snapshot, or nil if the slot is
// empty. An unparsable slot is deleted and reads as empty; a corrupt file
// must never make the tracker unusable.
func (s *Store) ReadSnapshot() (*domain.TimerSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.timerPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("statefile: %w", err)
	}
	var snap domain.TimerSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("discarding corrupt timer snapshot", slog.String("error", err.Error()))
		_ = os.Remove(s.timerPath())
		return nil, nil
	}
	if snap.Status != domain.StatusRunning {
		_ = os.Remove(s.timerPath())
		return nil, nil
	}
	return &snap, nil
}

func (s *Store) WriteSnapshot(snap domain.TimerSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("statefile: %w", err)
	}
	if err := os.WriteFile(s.timerPath(), data, 0o644); err != nil {
		return fmt.Errorf("statefile: %w", err)
	}
	return nil
}

func (s *Store) ClearSnapshot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.timerPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("statefile: %w", err)
	}
	return nil
}

// ReadSession returns the persisted login session, or nil if none exists.
func (s *Store) ReadSession() (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.sessionPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("statefile: %w", err)
	}
	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.log.Warn("discarding corrupt session", slog.String("error", err.Error()))
		_ = os.Remove(s.sessionPath())
		return nil, nil
	}
	return &u, nil
}

func (s *Store) WriteSession(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("statefile: %w", err)
	}
	if err := os.WriteFile(s.sessionPath(), data, 0o600); err != nil {
		return fmt.Errorf("statefile: %w", err)
	}
	return nil
}

func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.sessionPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("statefile: %w", err)
	}
	return nil
}
