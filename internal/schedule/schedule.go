// Package schedule holds task maintenance operations: carrying overdue
// tasks forward, moving and grouping tasks by day, and tidying titles.
//
// Functions that change tasks modify the given slice in place and report
// how many tasks they touched. Callers persist the slice afterwards.
package schedule

import (
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/sadopc/moodr/internal/domain"
)

const DefaultMaxTitleLength = 120

// maxWeekendSkip bounds the forward scan in SkipWeekends.
const maxWeekendSkip = 7

var whitespaceRun = regexp.MustCompile(`\s{2,}`)

// CarryOverOverdue moves every open task due before ref's day onto ref's
// day. It does nothing unless enabled.
func CarryOverOverdue(tasks []domain.Task, ref time.Time, enabled bool) int {
	if !enabled {
		return 0
	}
	today := domain.StartOfDay(ref)
	moved := 0
	for i := range tasks {
		t := &tasks[i]
		if t.Done || t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(today) {
			t.DueDate = domain.TimePtr(today)
			moved++
		}
	}
	return moved
}

// TasksOn returns the tasks due on day's calendar day, in input order.
func TasksOn(tasks []domain.Task, day time.Time) []domain.Task {
	start := domain.StartOfDay(day)
	end := domain.NextDay(start)
	var out []domain.Task
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		if !t.DueDate.Before(start) && t.DueDate.Before(end) {
			out = append(out, t)
		}
	}
	return out
}

// MoveTask sets the due date of task id to the start of day.
func MoveTask(tasks []domain.Task, id string, day time.Time) bool {
	i := IndexOf(tasks, id)
	if i < 0 {
		return false
	}
	tasks[i].DueDate = domain.TimePtr(domain.StartOfDay(day))
	return true
}

func ClearDueDate(tasks []domain.Task, id string) bool {
	i := IndexOf(tasks, id)
	if i < 0 {
		return false
	}
	tasks[i].DueDate = nil
	return true
}

// SetCompleted applies done to every task listed in ids whose flag differs.
func SetCompleted(tasks []domain.Task, ids []string, done bool) int {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	changed := 0
	for i := range tasks {
		if want[tasks[i].ID] && tasks[i].Done != done {
			tasks[i].Done = done
			changed++
		}
	}
	return changed
}

// NormalizeTitle trims s, collapses whitespace runs to a single space and
// cuts the result to maxLen runes.
func NormalizeTitle(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxTitleLength
	}
	s = strings.TrimSpace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	if r := []rune(s); len(r) > maxLen {
		s = string(r[:maxLen])
	}
	return s
}

func NormalizeTitles(tasks []domain.Task, maxLen int) int {
	changed := 0
	for i := range tasks {
		if n := NormalizeTitle(tasks[i].Title, maxLen); n != tasks[i].Title {
			tasks[i].Title = n
			changed++
		}
	}
	return changed
}

// DayGroup is a bucket of tasks sharing a due day. Day is nil for the
// undated bucket.
type DayGroup struct {
	Day   *time.Time
	Tasks []domain.Task
}

// GroupByDay buckets tasks by due day, oldest day first, with undated tasks
// last. Within a bucket open tasks precede done ones, then due date, then
// creation time.
func GroupByDay(tasks []domain.Task) []DayGroup {
	byKey := make(map[string]*DayGroup)
	var undated []domain.Task
	for _, t := range tasks {
		if t.DueDate == nil {
			undated = append(undated, t)
			continue
		}
		day := domain.StartOfDay(*t.DueDate)
		key := domain.DayKey(day)
		g, ok := byKey[key]
		if !ok {
			g = &DayGroup{Day: &day}
			byKey[key] = g
		}
		g.Tasks = append(g.Tasks, t)
	}

	groups := make([]DayGroup, 0, len(byKey)+1)
	for _, g := range byKey {
		groups = append(groups, *g)
	}
	slices.SortFunc(groups, func(a, b DayGroup) int { return a.Day.Compare(*b.Day) })
	if len(undated) > 0 {
		groups = append(groups, DayGroup{Tasks: undated})
	}
	for i := range groups {
		slices.SortStableFunc(groups[i].Tasks, compareWithinDay)
	}
	return groups
}

func compareWithinDay(a, b domain.Task) int {
	if a.Done != b.Done {
		if !a.Done {
			return -1
		}
		return 1
	}
	if a.DueDate != nil && b.DueDate != nil {
		if c := a.DueDate.Compare(*b.DueDate); c != 0 {
			return c
		}
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

// SkipWeekends pushes open overdue tasks that fall on a weekend day to the
// next working day according to cal.
func SkipWeekends(tasks []domain.Task, ref time.Time, cal domain.Calendar) int {
	today := domain.StartOfDay(ref)
	adjusted := 0
	for i := range tasks {
		t := &tasks[i]
		if t.Done || t.DueDate == nil || !t.DueDate.Before(today) || !cal.IsWeekend(*t.DueDate) {
			continue
		}
		day := *t.DueDate
		for n := 0; n < maxWeekendSkip && cal.IsWeekend(day); n++ {
			day = domain.NextDay(day)
		}
		t.DueDate = &day
		adjusted++
	}
	return adjusted
}

// IndexOf returns the position of the task with id, or -1.
func IndexOf(tasks []domain.Task, id string) int {
	return slices.IndexFunc(tasks, func(t domain.Task) bool { return t.ID == id })
}
