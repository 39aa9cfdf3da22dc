package schedule

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/moodr/internal/domain"
)

// ref is Friday 2026-10-16, mid-afternoon.
var ref = time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC)

func day(offset int) *time.Time {
	d := domain.AddDays(ref, offset)
	return &d
}

func created(h int) time.Time {
	return time.Date(2026, 10, 1, h, 0, 0, 0, time.UTC)
}

// ============================================================
// Auto-carry
// ============================================================

func TestCarryOverOverdue(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Title: "A", DueDate: day(-3)},
		{ID: "b", Title: "B", DueDate: day(-1)},
		{ID: "done", Title: "C", DueDate: day(-2), Done: true},
		{ID: "today", Title: "D", DueDate: day(0)},
		{ID: "undated", Title: "E"},
	}

	if n := CarryOverOverdue(tasks, ref, true); n != 2 {
		t.Fatalf("first run moved %d, want 2", n)
	}
	if n := CarryOverOverdue(tasks, ref, true); n != 0 {
		t.Fatalf("second run moved %d, want 0", n)
	}

	today := domain.StartOfDay(ref)
	if !tasks[0].DueDate.Equal(today) || !tasks[1].DueDate.Equal(today) {
		t.Fatal("overdue tasks should land on today's start")
	}
	if !tasks[2].DueDate.Equal(*day(-2)) {
		t.Fatal("completed task must not move")
	}
	if tasks[4].DueDate != nil {
		t.Fatal("undated task must stay undated")
	}
}

func TestCarryOverDisabled(t *testing.T) {
	tasks := []domain.Task{{ID: "a", DueDate: day(-3)}}
	if n := CarryOverOverdue(tasks, ref, false); n != 0 {
		t.Fatalf("disabled carry moved %d tasks", n)
	}
	if !tasks[0].DueDate.Equal(*day(-3)) {
		t.Fatal("task moved while disabled")
	}
}

// ============================================================
// Day lookup, move, clear
// ============================================================

func TestTasksOn(t *testing.T) {
	tasks := []domain.Task{
		{ID: "y", DueDate: day(-1)},
		{ID: "t1", DueDate: day(0)},
		{ID: "n"},
		{ID: "t2", DueDate: day(0)},
		{ID: "tm", DueDate: day(1)},
	}
	got := TasksOn(tasks, ref)
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t2" {
		t.Fatalf("unexpected tasks: %+v", got)
	}
	if got := TasksOn(nil, ref); len(got) != 0 {
		t.Fatal("empty input should give empty output")
	}
}

func TestMoveTask(t *testing.T) {
	tasks := []domain.Task{{ID: "a"}, {ID: "b", DueDate: day(-4)}}
	target := time.Date(2026, 10, 20, 18, 45, 0, 0, time.UTC)

	if !MoveTask(tasks, "b", target) {
		t.Fatal("expected move to succeed")
	}
	want := time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	if !tasks[1].DueDate.Equal(want) {
		t.Fatalf("due date not normalized: %v", tasks[1].DueDate)
	}
	if MoveTask(tasks, "missing", target) {
		t.Fatal("missing id should report not found")
	}
}

func TestClearDueDate(t *testing.T) {
	tasks := []domain.Task{{ID: "a", DueDate: day(2)}}
	if !ClearDueDate(tasks, "a") {
		t.Fatal("expected clear to succeed")
	}
	if tasks[0].DueDate != nil {
		t.Fatal("due date should be cleared")
	}
	if ClearDueDate(tasks, "zzz") {
		t.Fatal("missing id should report not found")
	}
}

func TestIndexOf(t *testing.T) {
	tasks := []domain.Task{{ID: "a"}, {ID: "b"}}
	if IndexOf(tasks, "b") != 1 {
		t.Fatal("expected index 1")
	}
	if IndexOf(tasks, "zzz") != -1 || IndexOf(nil, "a") != -1 {
		t.Fatal("missing id should give -1")
	}
}

// ============================================================
// Bulk completion
// ============================================================

func TestSetCompleted(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a"},
		{ID: "b", Done: true},
		{ID: "c"},
	}
	if n := SetCompleted(tasks, []string{"a", "b", "missing"}, true); n != 1 {
		t.Fatalf("changed %d, want 1 (b already done)", n)
	}
	if !tasks[0].Done || !tasks[1].Done || tasks[2].Done {
		t.Fatalf("unexpected flags: %+v", tasks)
	}
	if n := SetCompleted(tasks, []string{"a", "c"}, false); n != 1 {
		t.Fatalf("changed %d, want 1", n)
	}
}

// ============================================================
// Title normalization
// ============================================================

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"  Buy   milk  ", 0, "Buy milk"},
		{"Call\t\tmom", 0, "Call mom"},
		{"single\ttab", 0, "single\ttab"},
		{"abcdef", 3, "abc"},
		{"héllo wörld", 4, "héll"},
		{"clean", 0, "clean"},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.in, tt.max); got != tt.want {
			t.Fatalf("NormalizeTitle(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}

	long := strings.Repeat("x", 200)
	if got := NormalizeTitle(long, 0); len(got) != DefaultMaxTitleLength {
		t.Fatalf("default max not applied: %d", len(got))
	}
}

func TestNormalizeTitles(t *testing.T) {
	tasks := []domain.Task{
		{ID: "a", Title: "Fine"},
		{ID: "b", Title: " padded "},
		{ID: "c", Title: "two  spaces"},
	}
	if n := NormalizeTitles(tasks, 0); n != 2 {
		t.Fatalf("changed %d, want 2", n)
	}
	if tasks[1].Title != "padded" || tasks[2].Title != "two spaces" {
		t.Fatalf("unexpected titles: %q %q", tasks[1].Title, tasks[2].Title)
	}
	if n := NormalizeTitles(tasks, 0); n != 0 {
		t.Fatal("second pass should change nothing")
	}
}

// ============================================================
// Grouping
// ============================================================

func TestGroupByDay(t *testing.T) {
	tasks := []domain.Task{
		{ID: "u2", CreatedAt: created(5)},
		{ID: "tomorrow", DueDate: day(1), CreatedAt: created(1)},
		{ID: "today-done", DueDate: day(0), Done: true, CreatedAt: created(1)},
		{ID: "today-late", DueDate: day(0), CreatedAt: created(9)},
		{ID: "today-early", DueDate: day(0), CreatedAt: created(2)},
		{ID: "u1", CreatedAt: created(3)},
		{ID: "yesterday", DueDate: day(-1), CreatedAt: created(1)},
	}
	groups := GroupByDay(tasks)
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}

	if !groups[0].Day.Equal(*day(-1)) || !groups[1].Day.Equal(*day(0)) || !groups[2].Day.Equal(*day(1)) {
		t.Fatal("dated groups should be in ascending day order")
	}
	if groups[3].Day != nil {
		t.Fatal("undated group should be last")
	}

	today := groups[1].Tasks
	if today[0].ID != "today-early" || today[1].ID != "today-late" || today[2].ID != "today-done" {
		t.Fatalf("unexpected in-day order: %s %s %s", today[0].ID, today[1].ID, today[2].ID)
	}

	undated := groups[3].Tasks
	if undated[0].ID != "u1" || undated[1].ID != "u2" {
		t.Fatal("undated tasks should sort by creation time")
	}
}

func TestGroupByDayNoUndated(t *testing.T) {
	groups := GroupByDay([]domain.Task{{ID: "a", DueDate: day(0)}})
	if len(groups) != 1 || groups[0].Day == nil {
		t.Fatal("no undated bucket expected when every task is dated")
	}
	if len(GroupByDay(nil)) != 0 {
		t.Fatal("empty input should give no groups")
	}
}

// ============================================================
// Weekend skip
// ============================================================

func TestSkipWeekends(t *testing.T) {
	// ref is Friday the 16th; the 10th and 11th were Saturday and Sunday.
	sat := time.Date(2026, 10, 10, 0, 0, 0, 0, time.UTC)
	sun := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)
	wed := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	nextSat := time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: "sat", DueDate: &sat},
		{ID: "sun", DueDate: &sun},
		{ID: "wed", DueDate: &wed},
		{ID: "done", DueDate: domain.TimePtr(sat), Done: true},
		{ID: "future-sat", DueDate: &nextSat},
	}

	if n := SkipWeekends(tasks, ref, domain.DefaultCalendar()); n != 2 {
		t.Fatalf("adjusted %d, want 2", n)
	}
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	if !tasks[0].DueDate.Equal(monday) || !tasks[1].DueDate.Equal(monday) {
		t.Fatalf("weekend tasks should move to Monday: %v %v", tasks[0].DueDate, tasks[1].DueDate)
	}
	if !tasks[2].DueDate.Equal(wed) || !tasks[3].DueDate.Equal(sat) || !tasks[4].DueDate.Equal(nextSat) {
		t.Fatal("weekday, completed and future tasks must not move")
	}
}

func TestSkipWeekendsCustomCalendar(t *testing.T) {
	cal := domain.Calendar{Weekend: map[time.Weekday]bool{time.Friday: true, time.Saturday: true}, WeekStart: time.Sunday}
	fri := time.Date(2026, 10, 9, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{{ID: "fri", DueDate: &fri}}
	if n := SkipWeekends(tasks, ref, cal); n != 1 {
		t.Fatalf("adjusted %d, want 1", n)
	}
	sunday := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)
	if !tasks[0].DueDate.Equal(sunday) {
		t.Fatalf("expected Sunday, got %v", tasks[0].DueDate)
	}
}

func TestSkipWeekendsAllWeekendIsBounded(t *testing.T) {
	all := map[time.Weekday]bool{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		all[wd] = true
	}
	d := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{{ID: "a", DueDate: &d}}
	SkipWeekends(tasks, ref, domain.Calendar{Weekend: all})
	if got := domain.DaysBetween(d, *tasks[0].DueDate); got != maxWeekendSkip {
		t.Fatalf("expected scan to stop after %d days, moved %d", maxWeekendSkip, got)
	}
}
