package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/domain"
	"github.com/sadopc/moodr/internal/store"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	cfg        store.Config
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	autoCarry      *bool
	weekend        *[]string
	weekStart      *string
	focusMinutes   *string
	breakMinutes   *string
	recommendLimit *string
}

func newSettingsModel(s *store.Store) settingsModel {
	carry := false
	var weekend []string
	ws, fm, bm, rl := "", "", "", ""
	return settingsModel{
		store:          s,
		cfg:            store.DefaultConfig(),
		autoCarry:      &carry,
		weekend:        &weekend,
		weekStart:      &ws,
		focusMinutes:   &fm,
		breakMinutes:   &bm,
		recommendLimit: &rl,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	cfg store.Config
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		cfg, err := s.store.LoadConfig()
		if err != nil {
			return errStatus("load settings", err)
		}
		return settingsDataMsg{cfg: cfg}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.cfg = msg.cfg
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

func weekdayKey(wd time.Weekday) string {
	return strings.ToLower(wd.String())
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.autoCarry = s.cfg.AutoCarry
	*s.weekend = (*s.weekend)[:0]
	for _, wd := range weekdayOrder {
		if s.cfg.Calendar.Weekend[wd] {
			*s.weekend = append(*s.weekend, weekdayKey(wd))
		}
	}
	*s.weekStart = weekdayKey(s.cfg.Calendar.WeekStart)
	*s.focusMinutes = strconv.Itoa(int(s.cfg.FocusDuration.Minutes()))
	*s.breakMinutes = strconv.Itoa(int(s.cfg.BreakDuration.Minutes()))
	*s.recommendLimit = strconv.Itoa(s.cfg.RecommendLimit)

	dayOptions := make([]huh.Option[string], len(weekdayOrder))
	for i, wd := range weekdayOrder {
		dayOptions[i] = huh.NewOption(wd.String(), weekdayKey(wd))
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Carry overdue tasks to today").Value(s.autoCarry),
			huh.NewMultiSelect[string]().Title("Weekend days").Options(dayOptions...).Value(s.weekend),
			huh.NewSelect[string]().Title("Week starts on").Options(dayOptions...).Value(s.weekStart),
		).Title("Planning"),
		huh.NewGroup(
			huh.NewInput().Title("Focus (min)").Value(s.focusMinutes).Validate(positiveInt),
			huh.NewInput().Title("Break (min)").Value(s.breakMinutes).Validate(positiveInt),
			huh.NewInput().Title("Recommendations shown").Value(s.recommendLimit).Validate(positiveInt),
		).Title("Focus"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func positiveInt(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a whole number above zero")
	}
	return nil
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		cfg, err := s.formConfig()
		if err != nil {
			return s, errCmd("save settings", err)
		}
		return s, func() tea.Msg {
			if err := s.store.SaveConfig(cfg); err != nil {
				return errStatus("save settings", err)
			}
			return tea.BatchMsg{s.refresh(), tasksChanged, statusCmd("Settings saved")}
		}
	}

	return s, cmd
}

// formConfig builds a Config from the form values on top of the current one.
func (s settingsModel) formConfig() (store.Config, error) {
	cfg := s.cfg
	cfg.AutoCarry = *s.autoCarry

	weekend, err := domain.ParseWeekend(strings.Join(*s.weekend, ","))
	if err != nil {
		return cfg, err
	}
	start, err := domain.ParseWeekday(*s.weekStart)
	if err != nil {
		return cfg, err
	}
	cfg.Calendar = domain.Calendar{Weekend: weekend, WeekStart: start}

	minutes := func(v string) (time.Duration, error) {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid minutes %q", v)
		}
		return time.Duration(n) * time.Minute, nil
	}
	if cfg.FocusDuration, err = minutes(*s.focusMinutes); err != nil {
		return cfg, err
	}
	if cfg.BreakDuration, err = minutes(*s.breakMinutes); err != nil {
		return cfg, err
	}
	if cfg.RecommendLimit, err = strconv.Atoi(strings.TrimSpace(*s.recommendLimit)); err != nil || cfg.RecommendLimit <= 0 {
		return cfg, fmt.Errorf("invalid recommendation limit %q", *s.recommendLimit)
	}
	return cfg, nil
}

func (s settingsModel) view() string {
	w := s.width - 4

	title := titleStyle.Render("Settings")
	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	weekend := domain.FormatWeekend(s.cfg.Calendar.Weekend)
	if weekend == "" {
		weekend = "none"
	}
	onOff := "off"
	if s.cfg.AutoCarry {
		onOff = "on"
	}

	rows := []string{title, ""}
	add := func(label, value string) {
		l := lipgloss.NewStyle().Width(24).Render(label)
		rows = append(rows, fmt.Sprintf("  %s %s", l, highlightStyle.Render(value)))
	}
	add("Carry overdue tasks", onOff)
	add("Weekend days", weekend)
	add("Week starts on", s.cfg.Calendar.WeekStart.String())
	add("Focus", fmt.Sprintf("%d min", int(s.cfg.FocusDuration.Minutes())))
	add("Break", fmt.Sprintf("%d min", int(s.cfg.BreakDuration.Minutes())))
	add("Recommendations shown", strconv.Itoa(s.cfg.RecommendLimit))

	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings"))
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
