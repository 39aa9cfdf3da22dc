package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/moodr/internal/domain"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewTasks
	viewJournal
	viewFocus
	viewReports
	viewSettings
)

var viewNames = []string{"Today", "Tasks", "Journal", "Focus", "Reports", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// tasksChangedMsg tells every view holding tasks to reload.
type tasksChangedMsg struct{}

// --- Helpers ---

// errStatus logs err and turns it into a footer message.
func errStatus(op string, err error) tea.Msg {
	slog.Error(op, "err", err)
	return statusMsg{text: fmt.Sprintf("%s: %v", op, err), isError: true}
}

func errCmd(op string, err error) tea.Cmd {
	return func() tea.Msg { return errStatus(op, err) }
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func tasksChanged() tea.Msg { return tasksChangedMsg{} }

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// progressBar renders a fixed-width bar filled to fraction f.
func progressBar(f float64, width int) string {
	if width < 1 {
		return ""
	}
	f = max(0, min(f, 1))
	filled := int(f*float64(width) + 0.5)
	return successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

// dueLabel describes a due date relative to today.
func dueLabel(due *time.Time, today time.Time) string {
	if due == nil {
		return "someday"
	}
	switch n := domain.DaysBetween(today, *due); {
	case n == 0:
		return "today"
	case n == 1:
		return "tomorrow"
	case n == -1:
		return "yesterday"
	case n < 0:
		return fmt.Sprintf("%dd overdue", -n)
	case n < 7:
		return due.Format("Mon")
	default:
		return due.Format("Jan 02")
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
