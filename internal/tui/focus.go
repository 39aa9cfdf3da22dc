package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/domain"
	"github.com/sadopc/moodr/internal/recommend"
	"github.com/sadopc/moodr/internal/store"
)

type focusPhase int

const (
	focusIdle focusPhase = iota
	focusWork
	focusBreak
)

var phaseNames = map[focusPhase]string{
	focusIdle:  "IDLE",
	focusWork:  "FOCUS",
	focusBreak: "BREAK",
}

type focusModel struct {
	store  *store.Store
	width  int
	height int

	phase focusPhase
	timer timerModel

	// Durations from settings
	workDuration  time.Duration
	breakDuration time.Duration

	// task is the top recommendation for today's mood, if any.
	task      *domain.Task
	sessionID int64
	completed int // sessions completed since the app started
}

func newFocusModel(s *store.Store) focusModel {
	cfg := store.DefaultConfig()
	return focusModel{
		store:         s,
		phase:         focusIdle,
		timer:         newTimerModel(),
		workDuration:  cfg.FocusDuration,
		breakDuration: cfg.BreakDuration,
	}
}

func (p *focusModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type focusDataMsg struct {
	work time.Duration
	brk  time.Duration
	task *domain.Task
}

// refresh reloads durations and picks the task a new session would bind to.
func (p focusModel) refresh() tea.Cmd {
	return func() tea.Msg {
		cfg, err := p.store.LoadConfig()
		if err != nil {
			return errStatus("load config", err)
		}
		msg := focusDataMsg{work: cfg.FocusDuration, brk: cfg.BreakDuration}

		now := time.Now()
		mood, err := p.store.GetMood(now)
		if err != nil {
			return errStatus("load mood", err)
		}
		if mood == nil {
			return msg
		}
		tasks, err := p.store.ListTasks()
		if err != nil {
			return errStatus("load tasks", err)
		}
		if top := recommend.Top(todayPool(tasks), *mood, now, 1); len(top) == 1 {
			msg.task = &top[0]
		}
		return msg
	}
}

func (p focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case focusDataMsg:
		p.workDuration = msg.work
		p.breakDuration = msg.brk
		// A running session keeps the task it started with.
		if p.phase == focusIdle {
			p.task = msg.task
		}
		return p, nil

	case tasksChangedMsg:
		return p, p.refresh()

	case tickMsg:
		if p.timer.finished() {
			return p.advancePhase()
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Start):
			if p.phase == focusIdle {
				return p.startSession()
			}
		case key.Matches(msg, keys.Stop):
			if p.phase != focusIdle {
				return p.cancelSession()
			}
		case key.Matches(msg, keys.Pause):
			switch p.phase {
			case focusWork:
				p.timer.toggle()
			case focusBreak:
				p.timer.stop()
				p.phase = focusIdle
				return p, p.refresh()
			}
		}
	}
	return p, nil
}

func (p focusModel) startSession() (focusModel, tea.Cmd) {
	var taskID *string
	if p.task != nil {
		taskID = &p.task.ID
	}
	session, err := p.store.StartFocus(taskID, p.workDuration)
	if err != nil {
		return p, errCmd("start focus", err)
	}
	p.sessionID = session.ID
	p.phase = focusWork
	p.timer.start(p.workDuration)
	return p, nil
}

func (p focusModel) advancePhase() (focusModel, tea.Cmd) {
	switch p.phase {
	case focusWork:
		elapsed := p.timer.stop()
		if err := p.store.CompleteFocus(p.sessionID, elapsed); err != nil {
			p.phase = focusIdle
			return p, errCmd("complete focus", err)
		}
		p.completed++
		p.sessionID = 0
		p.phase = focusBreak
		p.timer.start(p.breakDuration)
		return p, statusCmd("Focus session done. Break time! \a")

	case focusBreak:
		p.timer.stop()
		p.phase = focusIdle
		return p, tea.Batch(statusCmd("Break over \a"), p.refresh())
	}
	return p, nil
}

func (p focusModel) cancelSession() (focusModel, tea.Cmd) {
	elapsed := p.timer.stop()
	wasWork := p.phase == focusWork
	p.phase = focusIdle
	if wasWork && p.sessionID > 0 {
		if err := p.store.CancelFocus(p.sessionID, elapsed); err != nil {
			return p, errCmd("cancel focus", err)
		}
		p.sessionID = 0
		return p, statusCmd("Focus session cancelled")
	}
	return p, p.refresh()
}

func (p focusModel) view() string {
	w := p.width - 4

	title := titleStyle.Render("Focus")

	var timeDisplay, phaseLabel string
	switch p.phase {
	case focusIdle:
		timeDisplay = timerStyle.Width(w - 6).Render(formatCountdown(p.workDuration))
		phaseLabel = mutedStyle.Render("Ready to start")
	case focusWork:
		style := timerRunningStyle
		label := accentStyle.Bold(true).Render(phaseNames[focusWork])
		if p.timer.paused() {
			style = timerPausedStyle
			label = warningStyle.Bold(true).Render("PAUSED")
		}
		timeDisplay = style.Width(w - 6).Render(formatCountdown(p.timer.remaining()))
		phaseLabel = label
	case focusBreak:
		timeDisplay = successStyle.Bold(true).Width(w - 6).Align(lipgloss.Center).Render(formatCountdown(p.timer.remaining()))
		phaseLabel = successStyle.Bold(true).Render(phaseNames[focusBreak])
	}

	taskLine := mutedStyle.Render("No task bound. Set today's mood to focus on a recommendation.")
	if p.task != nil {
		taskLine = highlightStyle.Render(iconGlyph(p.task.Icon) + " " + p.task.Title)
	}

	counter := mutedStyle.Render(fmt.Sprintf("%d session(s) completed", p.completed))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		timeDisplay,
		phaseLabel,
		"",
		taskLine,
		counter,
	)

	var controls string
	switch p.phase {
	case focusIdle:
		controls = mutedStyle.Render("s: start  q: quit")
	case focusWork:
		controls = mutedStyle.Render("space: pause/resume  x: cancel")
	case focusBreak:
		controls = mutedStyle.Render("space: skip break  x: end")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}
