package tui

import (
	"time"

	"timeos/internal/domain"
)

// Message types for async operations
type (
	// tickMsg drives the elapsed-time display refresh. Cadence only
	// affects smoothness; elapsed seconds come from the engine's clock.
	tickMsg time.Time

	// loginResultMsg carries the outcome of an access-code login
	loginResultMsg struct {
		User *domain.User
		Err  error
	}

	// dataLoadedMsg carries the company list and the user's entries
	dataLoadedMsg struct {
		Companies []domain.Company
		Entries   []domain.TimeEntry
		Err       error
	}

	// entrySavedMsg carries the outcome of submitting a stopped interval
	entrySavedMsg struct {
		Entry *domain.TimeEntry
		Err   error
	}

	// enhancedMsg carries the AI-rewritten description
	enhancedMsg struct {
		Text string
		Err  error
	}
)
