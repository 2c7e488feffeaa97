package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	clockStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder())

	runningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	stoppedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

func (m model) View() string {
	if m.screen == loginScreen {
		return m.loginView()
	}
	return m.trackerView()
}

func (m model) loginView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TimeOS") + "\n\n")
	b.WriteString("Enter your access code to sign in.\n\n")
	b.WriteString(m.accessInput.View() + "\n")
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString(helpStyle.Render("enter: sign in • ctrl+c: quit"))
	return b.String()
}

func (m model) trackerView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("TimeOS · Time Tracker"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · %s", m.user.Name, m.user.Title)))
	b.WriteString("\n\n")

	b.WriteString(clockStyle.Render(formatClock(m.elapsed)) + "\n")
	if m.running {
		b.WriteString(runningStyle.Render("● Timer Running") + "\n\n")
	} else {
		b.WriteString(stoppedStyle.Render("○ Timer Stopped") + "\n\n")
	}

	b.WriteString("Company:\n")
	if len(m.companies) == 0 {
		b.WriteString(dimStyle.Render("  (no companies assigned)") + "\n")
	}
	for i, c := range m.companies {
		cursor := "  "
		line := c.Name
		if i == m.companyCursor {
			cursor = "> "
			line = selectStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\nDescription: " + m.descInput.View() + "\n")

	if m.saving {
		b.WriteString("\n" + m.spin.View() + " Saving…\n")
	}
	if m.enhancing {
		b.WriteString("\n" + m.spin.View() + " Enhancing with AI…\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(m.errMsg) + "\n")
	}

	if len(m.entries) > 0 {
		b.WriteString("\nRecent entries:\n")
		for i, e := range m.entries {
			if i >= 5 {
				break
			}
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %s  %-20s %-8s %s\n",
				e.Date, truncate(e.CompanyName, 20), formatDuration(e.Seconds), truncate(e.Description, 40))))
		}
	}

	b.WriteString(helpStyle.Render("ctrl+s: start/stop • ↑/↓: company • ctrl+e: enhance • ctrl+l: logout • ctrl+c: quit"))
	return b.String()
}

func formatClock(seconds int64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

func formatDuration(seconds int64) string {
	h := seconds / 3600
	mnt := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mnt)
	}
	return fmt.Sprintf("%dm", mnt)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
