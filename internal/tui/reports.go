package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/domain"
	"github.com/sadopc/moodr/internal/stats"
	"github.com/sadopc/moodr/internal/store"
)

type reportMode int

const (
	reportWeek reportMode = iota
	reportMonth
)

const monthDays = 30

type reportsModel struct {
	store  *store.Store
	width  int
	height int

	mode   reportMode
	offset int // ranges back from the current one (0 = current)
	cal    domain.Calendar
	report stats.Report

	chart barchart.Model
}

func newReportsModel(s *store.Store) reportsModel {
	return reportsModel{
		store: s,
		cal:   domain.DefaultCalendar(),
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type reportsDataMsg struct {
	cal    domain.Calendar
	report stats.Report
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		cfg, err := r.store.LoadConfig()
		if err != nil {
			return errStatus("load config", err)
		}
		from, to := dateRange(r.mode, r.offset, time.Now(), cfg.Calendar)

		tasks, err := r.store.ListTasks()
		if err != nil {
			return errStatus("load tasks", err)
		}
		plans, err := r.store.ListDayPlans(from, to)
		if err != nil {
			return errStatus("load day plans", err)
		}
		sessions, err := r.store.ListFocusSessions(from, to)
		if err != nil {
			return errStatus("load focus sessions", err)
		}

		return reportsDataMsg{
			cal:    cfg.Calendar,
			report: stats.Summarize(tasks, plans, sessions, from, to, cfg.Calendar, stats.Options{}),
		}
	}
}

// dateRange returns the inclusive day range shown. Weeks start on the
// calendar's first weekday; the 30-day mode ends today.
func dateRange(mode reportMode, offset int, now time.Time, cal domain.Calendar) (time.Time, time.Time) {
	today := domain.StartOfDay(now)
	switch mode {
	case reportMonth:
		end := domain.AddDays(today, -monthDays*offset)
		return domain.AddDays(end, 1-monthDays), end
	default:
		start := domain.AddDays(today, 1-cal.WeekdayNumber(today))
		start = domain.AddDays(start, -7*offset)
		return start, domain.AddDays(start, 6)
	}
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case reportsDataMsg:
		r.cal = msg.cal
		r.report = msg.report
		r.buildChart()
		return r, nil

	case tasksChangedMsg:
		return r, r.refresh()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			return r, r.refresh()
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			return r, r.refresh()
		case key.Matches(msg, keys.Range):
			if r.mode == reportWeek {
				r.mode = reportMonth
			} else {
				r.mode = reportWeek
			}
			r.offset = 0
			return r, r.refresh()
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if r.height > 36 {
		chartHeight = 14
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	labelFormat := "Mon 02"
	if r.mode == reportMonth {
		labelFormat = "02"
	}

	var bars []barchart.BarData
	for _, d := range r.report.Days {
		style := lipgloss.NewStyle().Foreground(colorSubtle)
		if d.Mood != nil {
			style = moodStyle(*d.Mood)
		}
		open := d.Total - d.Done
		bars = append(bars, barchart.BarData{
			Label: d.Date.Format(labelFormat),
			Values: []barchart.BarValue{
				{Name: "done", Value: float64(d.Done), Style: style},
				{Name: "open", Value: float64(open), Style: lipgloss.NewStyle().Foreground(colorSubtle)},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4

	weekTab := inactiveTabStyle.Render("Week")
	monthTab := inactiveTabStyle.Render("30 days")
	if r.mode == reportWeek {
		weekTab = activeTabStyle.Render("Week")
	} else {
		monthTab = activeTabStyle.Render("30 days")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, weekTab, monthTab)

	rep := r.report
	dateLabel := ""
	if !rep.Start.IsZero() {
		dateLabel = mutedStyle.Render(fmt.Sprintf("%s to %s", rep.Start.Format("Jan 02"), rep.End.Format("Jan 02, 2006")))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", dateLabel,
	)

	nav := mutedStyle.Render("  ←/→: navigate  r: week/30 days")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "",
			r.chart.View(), "",
			r.renderTotals(), "",
			r.renderMoodShares(), "",
			r.renderWeekdays(), "",
			nav,
		),
	)
}

func (r reportsModel) renderTotals() string {
	rep := r.report
	line := func(label, value string) string {
		return fmt.Sprintf("  %-18s %s", label, highlightStyle.Render(value))
	}
	rows := []string{
		line("Completion", formatPercent(rep.CompletionRate)+"  "+progressBar(rep.CompletionRate, 16)),
		line("Longest streak", fmt.Sprintf("%d day(s)", rep.LongestStreak)),
		line("Current streak", fmt.Sprintf("%d day(s)", rep.CurrentStreak)),
		line("Created per day", fmt.Sprintf("%.1f", rep.CreatedPerDay)),
		line("Done per day", fmt.Sprintf("%.1f", rep.DonePerDay)),
		line("Focus", fmt.Sprintf("%d session(s), %s", rep.Focus.Sessions, formatDuration(rep.Focus.Elapsed))),
	}
	return strings.Join(rows, "\n")
}

func (r reportsModel) renderMoodShares() string {
	var items []string
	for _, s := range r.report.MoodShares {
		if s.Count == 0 {
			continue
		}
		items = append(items, fmt.Sprintf("%s %s", moodLabel(&s.Mood), mutedStyle.Render(formatPercent(s.Share))))
	}
	if len(items) == 0 {
		return mutedStyle.Render("  No moods recorded in this range")
	}
	return "  " + strings.Join(items, "   ")
}

// renderWeekdays draws the completion histogram as one row per weekday,
// starting on the calendar's first day.
func (r reportsModel) renderWeekdays() string {
	peak := 0
	for _, n := range r.report.Weekdays {
		peak = max(peak, n)
	}
	if peak == 0 {
		return mutedStyle.Render("  No completions in this range")
	}

	var rows []string
	for i := 1; i <= 7; i++ {
		wd := time.Weekday((int(r.cal.WeekStart) + i - 1) % 7)
		n := r.report.Weekdays[i]
		bar := successStyle.Render(strings.Repeat("▇", n*20/peak))
		rows = append(rows, fmt.Sprintf("  %s %s %d", wd.String()[:3], bar, n))
	}
	return strings.Join(rows, "\n")
}
