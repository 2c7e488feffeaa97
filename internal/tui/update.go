package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"timeos/internal/timer"
	"timeos/internal/usecase"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		if !m.running {
			return m, nil
		}
		m.elapsed = m.app.Timer.Elapsed()
		return m, tickCmd()

	case loginResultMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.user = msg.User
		m.screen = trackerScreen
		m.errMsg = ""
		m.accessInput.Reset()
		m.descInput.Focus()
		m.restoreTimer()
		cmds := []tea.Cmd{m.loadDataCmd()}
		if m.running {
			cmds = append(cmds, tickCmd())
		}
		return m, tea.Batch(cmds...)

	case dataLoadedMsg:
		if msg.Err != nil {
			m.errMsg = "failed to load data: " + msg.Err.Error()
			return m, nil
		}
		m.companies = msg.Companies
		m.entries = msg.Entries
		m.alignCompanyCursor()
		return m, nil

	case entrySavedMsg:
		m.saving = false
		if errors.Is(msg.Err, usecase.ErrShortInterval) {
			m.errMsg = "Timer ran for less than 1 second"
			return m, nil
		}
		if msg.Err != nil {
			// The interval is gone from the timer's perspective; keep
			// the message on screen so the user can re-enter it by hand.
			m.errMsg = "failed to save time entry: " + msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.descInput.Reset()
		return m, m.loadDataCmd()

	case enhancedMsg:
		m.enhancing = false
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.descInput.SetValue(msg.Text)
		return m, nil

	case spinner.TickMsg:
		if !m.saving && !m.enhancing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.screen == loginScreen {
		return m.handleLoginKey(msg)
	}
	return m.handleTrackerKey(msg)
}

func (m model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		code := strings.TrimSpace(m.accessInput.Value())
		if code == "" {
			m.errMsg = "Please enter your access code"
			return m, nil
		}
		m.errMsg = ""
		return m, m.loginCmd(code)
	}
	var cmd tea.Cmd
	m.accessInput, cmd = m.accessInput.Update(msg)
	return m, cmd
}

func (m model) handleTrackerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlS:
		return m.toggleTimer()
	case tea.KeyCtrlE:
		if m.running || m.enhancing {
			return m, nil
		}
		rough := strings.TrimSpace(m.descInput.Value())
		if rough == "" {
			m.errMsg = "Please enter a description first"
			return m, nil
		}
		m.enhancing = true
		m.errMsg = ""
		return m, tea.Batch(m.enhanceCmd(rough), m.spin.Tick)
	case tea.KeyCtrlL:
		if err := m.app.Auth.Logout(); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		return m, tea.Quit
	case tea.KeyUp, tea.KeyDown:
		if m.running || len(m.companies) == 0 {
			return m, nil
		}
		if msg.Type == tea.KeyUp && m.companyCursor > 0 {
			m.companyCursor--
		}
		if msg.Type == tea.KeyDown && m.companyCursor < len(m.companies)-1 {
			m.companyCursor++
		}
		return m, nil
	}

	if m.saving {
		return m, nil
	}
	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)
	if m.running {
		// Mid-interval edits go straight into the snapshot so a crash
		// resumes with the latest text.
		m.app.Timer.UpdateDescription(m.descInput.Value())
	}
	return m, cmd
}

func (m model) toggleTimer() (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	if !m.running {
		if len(m.companies) == 0 {
			m.errMsg = "Please select a company"
			return m, nil
		}
		company := m.companies[m.companyCursor]
		if err := m.app.Timer.Start(company.ID, m.descInput.Value()); err != nil {
			m.errMsg = startErrorMessage(err)
			return m, nil
		}
		m.running = true
		m.elapsed = 0
		m.errMsg = ""
		return m, tickCmd()
	}

	// Capture the interval's identity before Stop resets the engine.
	companyID, description, _ := m.app.Timer.State()
	seconds, err := m.app.Timer.Stop()
	m.running = false
	m.elapsed = 0
	if errors.Is(err, timer.ErrTooShort) {
		m.errMsg = "Timer ran for less than 1 second"
		return m, nil
	}
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}
	m.saving = true
	m.errMsg = ""
	return m, tea.Batch(m.submitCmd(companyID, description, seconds), m.spin.Tick)
}

func startErrorMessage(err error) string {
	switch {
	case errors.Is(err, timer.ErrNoCompany):
		return "Please select a company"
	case errors.Is(err, timer.ErrNoDescription):
		return "Please enter a description"
	default:
		return err.Error()
	}
}

// alignCompanyCursor points the cursor at the restored timer's company
// after the list loads.
func (m *model) alignCompanyCursor() {
	companyID, _, running := m.app.Timer.State()
	if !running {
		if m.companyCursor >= len(m.companies) {
			m.companyCursor = 0
		}
		return
	}
	for i, c := range m.companies {
		if c.ID == companyID {
			m.companyCursor = i
			return
		}
	}
}
