package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/domain"
	"github.com/sadopc/moodr/internal/recommend"
	"github.com/sadopc/moodr/internal/schedule"
	"github.com/sadopc/moodr/internal/stats"
	"github.com/sadopc/moodr/internal/store"
)

type todayModel struct {
	store  *store.Store
	width  int
	height int

	limit   int
	mood    *domain.Mood
	tasks   []domain.Task
	recs    []domain.Task
	quick   []domain.Task
	summary domain.DaySummary
	cursor  int

	// Mood picker state
	picking      bool
	pickerCursor int
}

func newTodayModel(s *store.Store) todayModel {
	return todayModel{
		store: s,
		limit: recommend.DefaultLimit,
	}
}

func (d todayModel) Init() tea.Cmd {
	return d.loadData()
}

func (d *todayModel) setSize(w, h int) {
	d.width = w
	d.height = h
}

type todayDataMsg struct {
	limit int
	mood  *domain.Mood
	tasks []domain.Task
	plans []domain.DayPlan
}

func (d todayModel) loadData() tea.Cmd {
	return func() tea.Msg {
		today := domain.StartOfDay(time.Now())
		cfg, err := d.store.LoadConfig()
		if err != nil {
			return errStatus("load config", err)
		}
		tasks, err := d.store.ListTasks()
		if err != nil {
			return errStatus("load tasks", err)
		}
		plan, err := d.store.GetDayPlan(today)
		if err != nil {
			return errStatus("load today", err)
		}
		return todayDataMsg{
			limit: cfg.RecommendLimit,
			mood:  plan.Mood,
			tasks: tasks,
			plans: []domain.DayPlan{plan},
		}
	}
}

// todayPool is what recommendations draw from: every open task, whatever
// its due date. Scoring decides what surfaces.
func todayPool(tasks []domain.Task) []domain.Task {
	var pool []domain.Task
	for _, t := range tasks {
		if !t.Done {
			pool = append(pool, t)
		}
	}
	return pool
}

func (d *todayModel) rank(plans []domain.DayPlan) {
	today := time.Now()
	d.recs, d.quick = nil, nil
	if d.mood != nil {
		pool := todayPool(d.tasks)
		d.recs = recommend.Top(pool, *d.mood, today, d.limit)
		d.quick = recommend.QuickWins(pool, *d.mood, today, recommend.DefaultQuickWinLimit)
	}
	if days := stats.DailySummary(d.tasks, plans, today, today); len(days) == 1 {
		d.summary = days[0]
	}
	if d.cursor >= len(d.recs) {
		d.cursor = max(0, len(d.recs)-1)
	}
}

func (d todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todayDataMsg:
		d.limit = msg.limit
		d.mood = msg.mood
		d.tasks = msg.tasks
		d.rank(msg.plans)
		return d, nil

	case tasksChangedMsg:
		return d, d.loadData()

	case tea.KeyMsg:
		if d.picking {
			return d.updatePicker(msg)
		}

		switch {
		case key.Matches(msg, keys.Mood):
			d.picking = true
			d.pickerCursor = 0
			if d.mood != nil {
				for i, m := range domain.AllMoods {
					if m == *d.mood {
						d.pickerCursor = i
					}
				}
			}
			return d, nil
		case key.Matches(msg, keys.Up):
			if d.cursor > 0 {
				d.cursor--
			}
		case key.Matches(msg, keys.Down):
			if d.cursor < len(d.recs)-1 {
				d.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			if d.cursor < len(d.recs) {
				return d, d.toggleDone(d.recs[d.cursor].ID)
			}
		}
	}
	return d, nil
}

func (d todayModel) updatePicker(msg tea.KeyMsg) (todayModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if d.pickerCursor > 0 {
			d.pickerCursor--
		}
	case key.Matches(msg, keys.Down):
		if d.pickerCursor < len(domain.AllMoods)-1 {
			d.pickerCursor++
		}
	case key.Matches(msg, keys.Enter):
		d.picking = false
		return d, d.setMood(domain.AllMoods[d.pickerCursor])
	case key.Matches(msg, keys.Back):
		d.picking = false
	}
	return d, nil
}

func (d todayModel) setMood(m domain.Mood) tea.Cmd {
	return func() tea.Msg {
		if err := d.store.SetMood(time.Now(), &m); err != nil {
			return errStatus("set mood", err)
		}
		return tasksChangedMsg{}
	}
}

func (d todayModel) toggleDone(id string) tea.Cmd {
	tasks := append([]domain.Task(nil), d.tasks...)
	return func() tea.Msg {
		i := schedule.IndexOf(tasks, id)
		if i < 0 {
			return nil
		}
		schedule.SetCompleted(tasks, []string{id}, !tasks[i].Done)
		if err := d.store.SaveTask(tasks[i]); err != nil {
			return errStatus("save task", err)
		}
		return tasksChangedMsg{}
	}
}

func (d todayModel) view() string {
	if d.width < 20 {
		return "Terminal too small"
	}

	contentWidth := d.width - 4
	top := d.renderMoodPanel(contentWidth)

	var bottom string
	if d.picking {
		bottom = d.renderMoodPicker(contentWidth)
	} else {
		bottom = d.renderRecommendations(contentWidth)
	}

	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (d todayModel) renderMoodPanel(w int) string {
	title := titleStyle.Render(time.Now().Format("Monday, Jan 02"))
	mood := mutedStyle.Render("No mood yet. Press m to pick one.")
	if d.mood != nil {
		mood = "Feeling " + moodLabel(d.mood)
	}

	s := d.summary
	progress := fmt.Sprintf("%s  %d/%d done  %s",
		progressBar(s.Progress, 20), s.Done, s.Total, mutedStyle.Render(formatPercent(s.Progress)))
	if s.Total == 0 {
		progress = mutedStyle.Render("Nothing due today")
	}

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, mood, "", progress))
}

func (d todayModel) renderRecommendations(w int) string {
	title := titleStyle.Render("Recommended")
	if d.mood == nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, mutedStyle.Render("Recommendations appear once today's mood is set"),
		))
	}
	if len(d.recs) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, mutedStyle.Render("Nothing open for today. Press 2 to plan some tasks."),
		))
	}

	today := time.Now()
	rows := []string{title}
	for i, t := range d.recs {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := fmt.Sprintf("%s%s %s %-32s", cursor, taskColorDot(t.Color), iconGlyph(t.Icon), truncate(t.Title, 32))
		rows = append(rows, style.Render(row)+"  "+mutedStyle.Render(dueLabel(t.DueDate, today)))
	}

	if len(d.quick) > 0 {
		rows = append(rows, "", titleStyle.Render("Quick wins"))
		for _, t := range d.quick {
			rows = append(rows, "  "+accentStyle.Render("⚡")+" "+t.Title)
		}
	}

	rows = append(rows, "", mutedStyle.Render("  space: done  m: mood  s (in Focus): start on the top pick"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (d todayModel) renderMoodPicker(w int) string {
	rows := []string{titleStyle.Render("How are you feeling?")}
	for i, m := range domain.AllMoods {
		cursor := "  "
		style := normalItemStyle
		if i == d.pickerCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor)+moodLabel(&m))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: select  esc: cancel"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
