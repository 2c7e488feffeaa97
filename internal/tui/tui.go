package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"timeos/internal/app"
	"timeos/internal/domain"
)

type screen int

const (
	loginScreen screen = iota
	trackerScreen
)

type model struct {
	app *app.App
	log *slog.Logger

	screen screen
	user   *domain.User

	accessInput textinput.Model
	descInput   textinput.Model
	spin        spinner.Model

	companies     []domain.Company
	companyCursor int
	entries       []domain.TimeEntry

	running   bool
	elapsed   int64
	saving    bool
	enhancing bool
	errMsg    string
	width     int
}

func newModel(application *app.App, log *slog.Logger) model {
	access := textinput.New()
	access.Placeholder = "Access code"
	access.EchoMode = textinput.EchoPassword
	access.CharLimit = 10
	access.Focus()

	desc := textinput.New()
	desc.Placeholder = "What are you working on?"
	desc.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		app:         application,
		log:         log,
		screen:      loginScreen,
		accessInput: access,
		descInput:   desc,
		spin:        sp,
	}

	// Resume a persisted session so a restart does not force a new login.
	if user, err := application.Auth.Resume(); err == nil && user != nil {
		m.user = user
		m.screen = trackerScreen
		m.descInput.Focus()
		m.restoreTimer()
	}
	return m
}

// restoreTimer resumes a timer that was running when the process died.
// Runs whenever the tracker screen is entered, whether through a resumed
// session or a fresh login.
func (m *model) restoreTimer() {
	resumed, err := m.app.Timer.Restore()
	if err != nil || !resumed {
		return
	}
	_, description, _ := m.app.Timer.State()
	m.descInput.SetValue(description)
	m.running = true
	m.elapsed = m.app.Timer.Elapsed()
}

func (m model) Init() tea.Cmd {
	if m.screen != trackerScreen {
		return textinput.Blink
	}
	cmds := []tea.Cmd{m.loadDataCmd(), textinput.Blink}
	if m.running {
		cmds = append(cmds, tickCmd())
	}
	return tea.Batch(cmds...)
}

// Run starts the interactive tracker and blocks until the user quits.
func Run(application *app.App, log *slog.Logger) error {
	p := tea.NewProgram(newModel(application, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) loginCmd(code string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		user, err := m.app.Auth.Login(ctx, code)
		return loginResultMsg{User: user, Err: err}
	}
}

func (m model) loadDataCmd() tea.Cmd {
	user := *m.user
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		companies, err := m.app.Tracking.LoadCompanies(ctx, user)
		if err != nil {
			return dataLoadedMsg{Err: err}
		}
		entries, err := m.app.Tracking.Entries(ctx, user.ID)
		return dataLoadedMsg{Companies: companies, Entries: entries, Err: err}
	}
}

func (m model) submitCmd(companyID, description string, seconds int64) tea.Cmd {
	user := *m.user
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		entry, err := m.app.Tracking.Submit(ctx, user, companyID, description, seconds)
		return entrySavedMsg{Entry: entry, Err: err}
	}
}

func (m model) enhanceCmd(rough string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		text, err := m.app.Summarizer.EnhanceDescription(ctx, rough)
		return enhancedMsg{Text: text, Err: err}
	}
}
