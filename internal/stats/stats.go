// Package stats aggregates tasks and day plans over inclusive date ranges.
//
// Every function is pure: inputs are read, never modified, and a range
// whose start is after its end yields zero values instead of an error.
package stats

import (
	"time"

	"github.com/sadopc/moodr/internal/domain"
)

// Options tunes CompletionRate.
type Options struct {
	// IncludeUndated counts undated tasks created inside the range.
	IncludeUndated bool
}

// window is a normalized [start, end] range of calendar days. Like
// domain.DaysBetween, it reads every instant as a day in its own location.
type window struct {
	start time.Time
	end   time.Time
}

func newWindow(start, end time.Time) window {
	return window{start: domain.StartOfDay(start), end: domain.StartOfDay(end)}
}

func (w window) contains(t time.Time) bool {
	n := domain.DaysBetween(w.start, t)
	return n >= 0 && n <= domain.DaysBetween(w.start, w.end)
}

func (w window) empty() bool {
	return w.end.Before(w.start)
}

// days is the inclusive number of calendar days, floored at 1.
func (w window) days() int {
	return max(1, domain.DaysBetween(w.start, w.end)+1)
}

// MoodHistogram counts plans in range per mood. Plans without a known mood
// are skipped. Every mood is present in the result.
func MoodHistogram(plans []domain.DayPlan, start, end time.Time) map[domain.Mood]int {
	hist := make(map[domain.Mood]int, len(domain.AllMoods))
	for _, m := range domain.AllMoods {
		hist[m] = 0
	}
	w := newWindow(start, end)
	for _, p := range plans {
		if p.Mood == nil || !p.Mood.Valid() || !w.contains(p.Date) {
			continue
		}
		hist[*p.Mood]++
	}
	return hist
}

// MoodShares normalizes MoodHistogram in AllMoods order. Shares are all
// zero when no day in range has a mood.
func MoodShares(plans []domain.DayPlan, start, end time.Time) []domain.MoodShare {
	hist := MoodHistogram(plans, start, end)
	total := 0
	for _, n := range hist {
		total += n
	}
	shares := make([]domain.MoodShare, 0, len(domain.AllMoods))
	for _, m := range domain.AllMoods {
		s := domain.MoodShare{Mood: m, Count: hist[m]}
		if total > 0 {
			s.Share = float64(hist[m]) / float64(total)
		}
		shares = append(shares, s)
	}
	return shares
}

// CompletionRate is the done fraction of the tasks due in range, plus
// undated tasks created in range when opts.IncludeUndated is set.
func CompletionRate(tasks []domain.Task, start, end time.Time, opts Options) float64 {
	w := newWindow(start, end)
	relevant, done := 0, 0
	for _, t := range tasks {
		var in bool
		if t.DueDate != nil {
			in = w.contains(*t.DueDate)
		} else if opts.IncludeUndated {
			in = w.contains(t.CreatedAt)
		}
		if !in {
			continue
		}
		relevant++
		if t.Done {
			done++
		}
	}
	if relevant == 0 {
		return 0
	}
	return float64(done) / float64(relevant)
}

// DailySummary walks every day in range and summarizes the tasks that
// belong to it along with that day's mood.
func DailySummary(tasks []domain.Task, plans []domain.DayPlan, start, end time.Time) []domain.DaySummary {
	w := newWindow(start, end)
	if w.empty() {
		return nil
	}
	n := domain.DaysBetween(w.start, w.end) + 1
	out := make([]domain.DaySummary, n)
	for i := range out {
		out[i].Date = domain.AddDays(w.start, i)
	}

	for _, t := range tasks {
		i, ok := w.index(t.ReferenceTime())
		if !ok {
			continue
		}
		out[i].Total++
		if t.Done {
			out[i].Done++
		}
	}

	moods := moodsByDay(plans)
	for i := range out {
		if m, ok := moods[domain.DayKey(out[i].Date)]; ok {
			out[i].Mood = domain.MoodPtr(m)
		}
		if out[i].Total > 0 {
			out[i].Progress = float64(out[i].Done) / float64(out[i].Total)
		}
	}
	return out
}

// index returns the offset of t's day within w.
func (w window) index(t time.Time) (int, bool) {
	if !w.contains(t) {
		return 0, false
	}
	return domain.DaysBetween(w.start, t), true
}

// completionDays marks which days of w have at least one completed task.
func completionDays(tasks []domain.Task, w window) []bool {
	if w.empty() {
		return nil
	}
	marks := make([]bool, domain.DaysBetween(w.start, w.end)+1)
	for _, t := range tasks {
		if !t.Done {
			continue
		}
		if i, ok := w.index(t.ReferenceTime()); ok {
			marks[i] = true
		}
	}
	return marks
}

// LongestStreak is the longest run of consecutive days in range that each
// have a completed task.
func LongestStreak(tasks []domain.Task, start, end time.Time) int {
	best, run := 0, 0
	for _, hit := range completionDays(tasks, newWindow(start, end)) {
		if !hit {
			run = 0
			continue
		}
		run++
		best = max(best, run)
	}
	return best
}

// CurrentStreak counts consecutive days with a completion ending at ref.
// An empty ref day does not break a run that ended yesterday.
func CurrentStreak(tasks []domain.Task, ref time.Time) int {
	today := domain.StartOfDay(ref)
	done := make(map[string]bool)
	earliest := today
	for _, t := range tasks {
		if !t.Done {
			continue
		}
		rt := t.ReferenceTime()
		done[domain.DayKey(rt)] = true
		if domain.DaysBetween(earliest, rt) < 0 {
			earliest = domain.AddDays(today, domain.DaysBetween(today, rt))
		}
	}

	day := today
	if !done[domain.DayKey(day)] {
		day = domain.AddDays(day, -1)
	}
	streak := 0
	for !day.Before(earliest) && done[domain.DayKey(day)] {
		streak++
		day = domain.AddDays(day, -1)
	}
	return streak
}

// WeekdayCompletions counts completed tasks in range per weekday number
// (1..7, 1 being cal.WeekStart). All seven keys are present.
func WeekdayCompletions(tasks []domain.Task, start, end time.Time, cal domain.Calendar) map[int]int {
	hist := make(map[int]int, 7)
	for i := 1; i <= 7; i++ {
		hist[i] = 0
	}
	w := newWindow(start, end)
	for _, t := range tasks {
		if !t.Done {
			continue
		}
		rt := t.ReferenceTime()
		if !w.contains(rt) {
			continue
		}
		hist[cal.WeekdayNumber(rt)]++
	}
	return hist
}

// AverageCreatedPerDay divides the tasks created in range by the number of
// days in range.
func AverageCreatedPerDay(tasks []domain.Task, start, end time.Time) float64 {
	w := newWindow(start, end)
	n := 0
	for _, t := range tasks {
		if w.contains(t.CreatedAt) {
			n++
		}
	}
	return float64(n) / float64(w.days())
}

// AverageDonePerDay divides the completed tasks in range by the number of
// days in range.
func AverageDonePerDay(tasks []domain.Task, start, end time.Time) float64 {
	w := newWindow(start, end)
	n := 0
	for _, t := range tasks {
		if t.Done && w.contains(t.ReferenceTime()) {
			n++
		}
	}
	return float64(n) / float64(w.days())
}

func moodsByDay(plans []domain.DayPlan) map[string]domain.Mood {
	out := make(map[string]domain.Mood, len(plans))
	for _, p := range plans {
		if p.Mood == nil || !p.Mood.Valid() {
			continue
		}
		key := domain.DayKey(p.Date)
		if _, seen := out[key]; !seen {
			out[key] = *p.Mood
		}
	}
	return out
}
