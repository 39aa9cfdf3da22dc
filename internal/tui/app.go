package tui

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/domain"
	"github.com/sadopc/moodr/internal/export"
	"github.com/sadopc/moodr/internal/schedule"
	"github.com/sadopc/moodr/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	today    todayModel
	tasks    tasksModel
	journal  journalModel
	focus    focusModel
	reports  reportsModel
	settings settingsModel

	help        help.Model
	status      string
	statusError bool

	// exportDir is where exports are written; the home directory by default.
	exportDir string
}

func NewApp(s *store.Store) App {
	h := help.New()
	h.ShowAll = false

	home, _ := os.UserHomeDir()
	return App{
		store:      s,
		activeView: viewToday,
		today:      newTodayModel(s),
		tasks:      newTasksModel(s),
		journal:    newJournalModel(s),
		focus:      newFocusModel(s),
		reports:    newReportsModel(s),
		settings:   newSettingsModel(s),
		help:       h,
		exportDir:  home,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.Sequence(prepareDay(a.store, time.Now()), a.today.Init()),
		a.focus.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// prepareDay moves overdue weekend tasks to the next working day and, when
// enabled, carries the remaining overdue tasks to today.
func prepareDay(s *store.Store, now time.Time) tea.Cmd {
	return func() tea.Msg {
		cfg, err := s.LoadConfig()
		if err != nil {
			return errStatus("load config", err)
		}
		tasks, err := s.ListTasks()
		if err != nil {
			return errStatus("load tasks", err)
		}

		skipped := schedule.SkipWeekends(tasks, now, cfg.Calendar)
		carried := schedule.CarryOverOverdue(tasks, now, cfg.AutoCarry)
		if skipped == 0 && carried == 0 {
			return nil
		}
		if err := s.SaveTasks(tasks); err != nil {
			return errStatus("reschedule tasks", err)
		}
		slog.Info("rescheduled overdue tasks", "carried", carried, "skipped_weekend", skipped)
		if carried > 0 {
			return statusMsg{text: fmt.Sprintf("Carried %d overdue task(s) to today", carried)}
		}
		return statusMsg{text: fmt.Sprintf("Moved %d task(s) off the weekend", skipped)}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.journal.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		a.reports.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchView(viewToday)
		case key.Matches(msg, keys.Tab2):
			return a.switchView(viewTasks)
		case key.Matches(msg, keys.Tab3):
			return a.switchView(viewJournal)
		case key.Matches(msg, keys.Tab4):
			return a.switchView(viewFocus)
		case key.Matches(msg, keys.Tab5):
			return a.switchView(viewReports)
		case key.Matches(msg, keys.Tab6):
			return a.switchView(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchView((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		// The focus countdown runs whichever view is shown.
		cmds = append(cmds, tickCmd())
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case tasksChangedMsg:
		// Every view that derives from tasks reloads.
		var cmd tea.Cmd
		a.today, cmd = a.today.update(msg)
		cmds = append(cmds, cmd)
		a.tasks, cmd = a.tasks.update(msg)
		cmds = append(cmds, cmd)
		a.focus, cmd = a.focus.update(msg)
		cmds = append(cmds, cmd)
		a.reports, cmd = a.reports.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case focusDataMsg:
		var cmd tea.Cmd
		a.focus, cmd = a.focus.update(msg)
		return a, cmd

	case statusMsg:
		a.status = msg.text
		a.statusError = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusError = false
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a App) switchView(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewJournal:
		a.journal, cmd = a.journal.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewReports:
		a.reports, cmd = a.reports.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewToday:
		return a.today.picking
	case viewTasks:
		return a.tasks.formActive
	case viewJournal:
		return a.journal.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewToday:
		return a.today.loadData()
	case viewTasks:
		return a.tasks.refresh()
	case viewJournal:
		return a.journal.refresh()
	case viewFocus:
		return a.focus.refresh()
	case viewReports:
		return a.reports.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewTasks:
		content = a.tasks.view()
	case viewJournal:
		content = a.journal.view()
	case viewFocus:
		content = a.focus.view()
	case viewReports:
		content = a.reports.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("moodr")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusError {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Focus indicator in footer
	focusInfo := ""
	if a.focus.phase != focusIdle {
		remaining := formatCountdown(a.focus.timer.remaining())
		switch {
		case a.focus.timer.paused():
			focusInfo = warningStyle.Render(" ⏸ " + remaining)
		case a.focus.phase == focusBreak:
			focusInfo = successStyle.Render(" ☕ " + remaining)
		default:
			focusInfo = accentStyle.Render(" ● " + remaining)
		}
	}

	left := footerStyle.Render(helpView)
	right := focusInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

var exportFormats = []string{"CSV (tasks)", "JSON (full backup)"}

func (a App) renderExportPicker() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Export Format"))
	rows = append(rows, "")
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, doExport(a.store, a.exportDir, a.exportCursor, time.Now())
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func doExport(s *store.Store, dir string, format int, now time.Time) tea.Cmd {
	return func() tea.Msg {
		tasks, err := s.ListTasks()
		if err != nil {
			return errStatus("export", err)
		}

		dateStr := now.Format(domain.DateLayout)
		if format == 0 {
			path := filepath.Join(dir, fmt.Sprintf("moodr-tasks-%s.csv", dateStr))
			if err := export.ToCSV(tasks, path); err != nil {
				return errStatus("csv export", err)
			}
			return exportDoneMsg{path: path}
		}

		// The backup covers every recorded day.
		plans, err := s.ListDayPlans(time.Time{}, domain.AddDays(now, 3650))
		if err != nil {
			return errStatus("export", err)
		}
		journal, err := s.ListJournalEntries(0)
		if err != nil {
			return errStatus("export", err)
		}
		path := filepath.Join(dir, fmt.Sprintf("moodr-backup-%s.json", dateStr))
		snap := export.Snapshot{Tasks: tasks, Plans: plans, Journal: journal}
		if err := export.ToJSON(snap, path); err != nil {
			return errStatus("json export", err)
		}
		return exportDoneMsg{path: path}
	}
}
