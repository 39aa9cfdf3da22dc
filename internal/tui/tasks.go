package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/domain"
	"github.com/sadopc/moodr/internal/schedule"
	"github.com/sadopc/moodr/internal/store"
)

var taskColors = []string{"#6C63FF", "#2EC4B6", "#FF6B6B", "#F39C12", "#2ECC71", "#E74C3C", "#9B59B6", "#3498DB"}

type tasksModel struct {
	store  *store.Store
	width  int
	height int

	tasks  []domain.Task
	groups []schedule.DayGroup
	rows   []domain.Task // groups flattened in display order
	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle *string
	formNote  *string
	formMood  *string
	formDue   *string
	formIcon  *string
	formColor *string
}

func newTasksModel(s *store.Store) tasksModel {
	title, note, mood, due, icon, color := "", "", "", "", "", taskColors[0]
	return tasksModel{
		store:     s,
		formTitle: &title,
		formNote:  &note,
		formMood:  &mood,
		formDue:   &due,
		formIcon:  &icon,
		formColor: &color,
	}
}

func (p *tasksModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

type tasksDataMsg struct {
	tasks []domain.Task
}

func (p tasksModel) refresh() tea.Cmd {
	return func() tea.Msg {
		tasks, err := p.store.ListTasks()
		if err != nil {
			return errStatus("load tasks", err)
		}
		return tasksDataMsg{tasks: tasks}
	}
}

func (p *tasksModel) setTasks(tasks []domain.Task) {
	p.tasks = tasks
	p.groups = schedule.GroupByDay(tasks)
	p.rows = nil
	for _, g := range p.groups {
		p.rows = append(p.rows, g.Tasks...)
	}
	if p.cursor >= len(p.rows) {
		p.cursor = max(0, len(p.rows)-1)
	}
}

func (p tasksModel) selected() (domain.Task, bool) {
	if p.cursor < len(p.rows) {
		return p.rows[p.cursor], true
	}
	return domain.Task{}, false
}

func (p tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tasksDataMsg:
		p.setTasks(msg.tasks)
		return p, nil

	case tasksChangedMsg:
		return p, p.refresh()

	case tea.KeyMsg:
		return p.updateList(msg)
	}
	return p, nil
}

func (p tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
		return p, nil
	case key.Matches(msg, keys.Down):
		if p.cursor < len(p.rows)-1 {
			p.cursor++
		}
		return p, nil
	case key.Matches(msg, keys.New):
		return p.showNewTaskForm()
	case key.Matches(msg, keys.Normalize):
		return p, p.normalizeTitles()
	}

	t, ok := p.selected()
	if !ok {
		return p, nil
	}
	today := time.Now()
	switch {
	case key.Matches(msg, keys.Toggle):
		return p, p.mutate(t.ID, func(tasks []domain.Task) bool {
			return schedule.SetCompleted(tasks, []string{t.ID}, !t.Done) > 0
		})
	case key.Matches(msg, keys.Today):
		return p, p.mutate(t.ID, func(tasks []domain.Task) bool {
			return schedule.MoveTask(tasks, t.ID, today)
		})
	case key.Matches(msg, keys.Tomorrow):
		return p, p.mutate(t.ID, func(tasks []domain.Task) bool {
			return schedule.MoveTask(tasks, t.ID, domain.NextDay(today))
		})
	case key.Matches(msg, keys.ClearDue):
		return p, p.mutate(t.ID, func(tasks []domain.Task) bool {
			return schedule.ClearDueDate(tasks, t.ID)
		})
	case key.Matches(msg, keys.Delete):
		return p, p.deleteTask(t.ID)
	}
	return p, nil
}

// mutate applies fn to a copy of the task list and saves the task with id
// when fn reports a change.
func (p tasksModel) mutate(id string, fn func([]domain.Task) bool) tea.Cmd {
	tasks := append([]domain.Task(nil), p.tasks...)
	return func() tea.Msg {
		if !fn(tasks) {
			return nil
		}
		i := schedule.IndexOf(tasks, id)
		if i < 0 {
			return nil
		}
		if err := p.store.SaveTask(tasks[i]); err != nil {
			return errStatus("save task", err)
		}
		return tasksChangedMsg{}
	}
}

func (p tasksModel) deleteTask(id string) tea.Cmd {
	return func() tea.Msg {
		if err := p.store.DeleteTask(id); err != nil {
			return errStatus("delete task", err)
		}
		return tasksChangedMsg{}
	}
}

func (p tasksModel) normalizeTitles() tea.Cmd {
	tasks := append([]domain.Task(nil), p.tasks...)
	return func() tea.Msg {
		n := schedule.NormalizeTitles(tasks, schedule.DefaultMaxTitleLength)
		if n == 0 {
			return statusMsg{text: "Titles already tidy"}
		}
		if err := p.store.SaveTasks(tasks); err != nil {
			return errStatus("save tasks", err)
		}
		return tea.BatchMsg{
			statusCmd(fmt.Sprintf("Tidied %d title(s)", n)),
			tasksChanged,
		}
	}
}

func (p tasksModel) showNewTaskForm() (tasksModel, tea.Cmd) {
	*p.formTitle = ""
	*p.formNote = ""
	*p.formMood = ""
	*p.formDue = "0"
	*p.formIcon = ""
	*p.formColor = taskColors[0]

	moodOptions := []huh.Option[string]{huh.NewOption("any", "")}
	for _, m := range domain.AllMoods {
		moodOptions = append(moodOptions, huh.NewOption(moodGlyphs[m]+" "+m.String(), m.String()))
	}
	iconOptions := []huh.Option[string]{huh.NewOption("none", "")}
	for _, ic := range taskIcons {
		iconOptions = append(iconOptions, huh.NewOption(ic.glyph+" "+ic.name, ic.name))
	}
	colorOptions := make([]huh.Option[string], len(taskColors))
	for i, c := range taskColors {
		colorOptions[i] = huh.NewOption(fmt.Sprintf("● %s", c), c)
	}

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(p.formTitle).Validate(validateTitle),
			huh.NewInput().Title("Note").Value(p.formNote),
			huh.NewSelect[string]().Title("Due").
				Options(
					huh.NewOption("Today", "0"),
					huh.NewOption("Tomorrow", "1"),
					huh.NewOption("In 2 days", "2"),
					huh.NewOption("Next week", "7"),
					huh.NewOption("Someday", ""),
				).Value(p.formDue),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Best mood").Options(moodOptions...).Value(p.formMood),
			huh.NewSelect[string]().Title("Icon").Options(iconOptions...).Value(p.formIcon),
			huh.NewSelect[string]().Title("Color").Options(colorOptions...).Value(p.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func validateTitle(s string) error {
	if schedule.NormalizeTitle(s, 0) == "" {
		return errors.New("title is required")
	}
	return nil
}

// newTaskFromForm converts the form's string fields into a store.NewTask.
func newTaskFromForm(title, note, mood, due, icon, color string, today time.Time) (store.NewTask, error) {
	in := store.NewTask{Title: title, Note: strings.TrimSpace(note), Icon: icon, Color: color}
	m, ok := domain.ParseMood(mood)
	if !ok {
		return in, fmt.Errorf("unknown mood %q", mood)
	}
	in.MoodHint = m
	if due != "" {
		n, err := strconv.Atoi(due)
		if err != nil {
			return in, fmt.Errorf("due offset %q: %w", due, err)
		}
		in.DueDate = domain.TimePtr(domain.AddDays(today, n))
	}
	return in, nil
}

func (p tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		in, err := newTaskFromForm(*p.formTitle, *p.formNote, *p.formMood, *p.formDue, *p.formIcon, *p.formColor, time.Now())
		if err != nil {
			return p, errCmd("new task", err)
		}
		return p, func() tea.Msg {
			if _, err := p.store.CreateTask(in); err != nil {
				return errStatus("create task", err)
			}
			return tasksChangedMsg{}
		}
	}

	return p, cmd
}

func (p tasksModel) view() string {
	w := p.width - 4
	if p.formActive && p.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Task"), "", p.form.View())
		return panelStyle.Width(w).Render(content)
	}
	return p.renderList(w)
}

func (p tasksModel) renderList(w int) string {
	title := titleStyle.Render("Tasks")
	if len(p.rows) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	today := time.Now()
	rows := []string{title}
	i := 0
	for _, g := range p.groups {
		heading := "Someday"
		if g.Day != nil {
			heading = g.Day.Format("Mon Jan 02") + "  " + dueLabel(g.Day, today)
		}
		style := subtitleStyle
		if g.Day != nil && domain.DaysBetween(today, *g.Day) < 0 {
			style = warningStyle
		}
		rows = append(rows, "", style.Render(heading))

		for _, t := range g.Tasks {
			cursor := "  "
			itemStyle := normalItemStyle
			if i == p.cursor {
				cursor = "> "
				itemStyle = selectedItemStyle
			}
			check := "[ ]"
			if t.Done {
				check = successStyle.Render("[x]")
			}
			mood := ""
			if t.MoodHint != nil {
				mood = "  " + moodLabel(t.MoodHint)
			}
			row := fmt.Sprintf("%s%s %s %s %s", cursor, check, taskColorDot(t.Color), iconGlyph(t.Icon), truncate(t.Title, 40))
			rows = append(rows, itemStyle.Render(row)+mood)
			i++
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  space: done  t/T: today/tomorrow  c: clear due  d: delete  N: tidy titles"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
