package stats

import (
	"time"

	"github.com/sadopc/moodr/internal/domain"
)

// Report bundles every aggregate for one range.
type Report struct {
	Start time.Time
	End   time.Time

	Days           []domain.DaySummary
	MoodShares     []domain.MoodShare
	CompletionRate float64
	LongestStreak  int
	CurrentStreak  int
	Weekdays       map[int]int
	CreatedPerDay  float64
	DonePerDay     float64
	Focus          FocusTotal
}

// Summarize computes a Report for [start, end]. The current streak is
// measured back from end.
func Summarize(tasks []domain.Task, plans []domain.DayPlan, sessions []domain.FocusSession,
	start, end time.Time, cal domain.Calendar, opts Options) Report {
	w := newWindow(start, end)
	return Report{
		Start:          w.start,
		End:            w.end,
		Days:           DailySummary(tasks, plans, start, end),
		MoodShares:     MoodShares(plans, start, end),
		CompletionRate: CompletionRate(tasks, start, end, opts),
		LongestStreak:  LongestStreak(tasks, start, end),
		CurrentStreak:  CurrentStreak(tasks, end),
		Weekdays:       WeekdayCompletions(tasks, start, end, cal),
		CreatedPerDay:  AverageCreatedPerDay(tasks, start, end),
		DonePerDay:     AverageDonePerDay(tasks, start, end),
		Focus:          FocusTotals(sessions, start, end),
	}
}

type FocusTotal struct {
	Sessions int
	Elapsed  time.Duration
}

// FocusTotals counts completed focus sessions started in range.
func FocusTotals(sessions []domain.FocusSession, start, end time.Time) FocusTotal {
	w := newWindow(start, end)
	var total FocusTotal
	for _, s := range sessions {
		if s.Status != domain.FocusCompleted || !w.contains(s.StartedAt) {
			continue
		}
		total.Sessions++
		total.Elapsed += s.Elapsed
	}
	return total
}
