package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/moodr/internal/domain"
	"github.com/sadopc/moodr/internal/export"
	"github.com/sadopc/moodr/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreate(t *testing.T, s *store.Store, in store.NewTask) *domain.Task {
	t.Helper()
	task, err := s.CreateTask(in)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

// fakeClock is a manually advanced clock for the countdown.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local)}
}

func keyMsg(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// ============================================================
// Countdown timer
// ============================================================

func TestTimerStartStop(t *testing.T) {
	clock := newFakeClock()
	tm := newTimerModel()
	tm.now = clock.now

	if tm.running() {
		t.Fatal("timer should start stopped")
	}
	tm.start(25 * time.Minute)
	if !tm.running() || tm.paused() {
		t.Fatal("timer should be running after start")
	}

	clock.advance(10 * time.Minute)
	if tm.remaining() != 15*time.Minute {
		t.Fatalf("remaining = %v", tm.remaining())
	}

	elapsed := tm.stop()
	if elapsed != 10*time.Minute {
		t.Fatalf("stop should report elapsed, got %v", elapsed)
	}
	if tm.running() {
		t.Fatal("timer should be stopped")
	}
	if tm.stop() != 0 {
		t.Fatal("stopping a stopped timer reports nothing")
	}
}

func TestTimerPauseExcludesGap(t *testing.T) {
	clock := newFakeClock()
	tm := newTimerModel()
	tm.now = clock.now
	tm.start(25 * time.Minute)

	clock.advance(5 * time.Minute)
	tm.toggle()
	if !tm.paused() || !tm.running() {
		t.Fatal("toggle should pause")
	}

	clock.advance(time.Hour)
	if tm.elapsed() != 5*time.Minute {
		t.Fatalf("elapsed grew while paused: %v", tm.elapsed())
	}

	tm.toggle()
	clock.advance(time.Minute)
	if tm.elapsed() != 6*time.Minute {
		t.Fatalf("elapsed after resume = %v", tm.elapsed())
	}
}

func TestTimerPauseResumeNoops(t *testing.T) {
	tm := newTimerModel()
	tm.pause()
	tm.toggle()
	if tm.paused() || tm.running() {
		t.Fatal("stopped timer should ignore pause and toggle")
	}

	tm.start(time.Minute)
	tm.resume()
	if tm.paused() {
		t.Fatal("resume on a running timer is a no-op")
	}
}

func TestTimerFinished(t *testing.T) {
	clock := newFakeClock()
	tm := newTimerModel()
	tm.now = clock.now
	tm.start(time.Minute)

	clock.advance(59 * time.Second)
	if tm.finished() {
		t.Fatal("not finished yet")
	}
	clock.advance(5 * time.Second)
	if !tm.finished() {
		t.Fatal("should be finished")
	}
	if tm.elapsed() != time.Minute {
		t.Fatalf("elapsed should cap at duration, got %v", tm.elapsed())
	}

	tm.pause()
	if tm.finished() {
		t.Fatal("a paused countdown never reports finished")
	}
}

// ============================================================
// Helpers
// ============================================================

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Hour + time.Minute + time.Second, "01:01:01"},
		{25 * time.Hour, "25:00:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{time.Second, "00:01"},
		{25 * time.Minute, "25:00"},
		{5*time.Minute + 30*time.Second, "05:30"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatCountdown(tt.d); got != tt.want {
			t.Errorf("formatCountdown(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(0.666); got != "67%" {
		t.Fatalf("got %q", got)
	}
	if got := formatPercent(0); got != "0%" {
		t.Fatalf("got %q", got)
	}
}

func TestDueLabel(t *testing.T) {
	today := time.Date(2026, 10, 16, 15, 0, 0, 0, time.Local)
	day := func(n int) *time.Time { return domain.TimePtr(domain.AddDays(domain.StartOfDay(today), n)) }

	tests := []struct {
		due  *time.Time
		want string
	}{
		{nil, "someday"},
		{day(0), "today"},
		{day(1), "tomorrow"},
		{day(-1), "yesterday"},
		{day(-3), "3d overdue"},
		{day(3), "Mon"},
		{day(10), "Oct 26"},
	}
	for _, tt := range tests {
		if got := dueLabel(tt.due, today); got != tt.want {
			t.Errorf("dueLabel(%v) = %q, want %q", tt.due, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("héllo wörld", 6); got != "héllo…" {
		t.Fatalf("got %q", got)
	}
	if got := truncate("abc", 0); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestViewNames(t *testing.T) {
	if len(viewNames) != int(viewSettings)+1 {
		t.Fatalf("expected %d view names, got %d", int(viewSettings)+1, len(viewNames))
	}
}

// ============================================================
// Today
// ============================================================

func TestTodayPool(t *testing.T) {
	today := domain.StartOfDay(time.Now())
	yesterday := domain.AddDays(today, -1)
	tomorrow := domain.AddDays(today, 1)
	tasks := []domain.Task{
		{ID: "due", DueDate: &today},
		{ID: "undated"},
		{ID: "overdue", DueDate: &yesterday},
		{ID: "later", DueDate: &tomorrow},
		{ID: "done", Done: true},
	}
	pool := todayPool(tasks)
	if len(pool) != 4 {
		t.Fatalf("expected every open task, got %+v", pool)
	}
	for _, p := range pool {
		if p.ID == "done" {
			t.Fatal("completed tasks must stay out of the pool")
		}
	}
}

func TestTodayRecommendsOverdueWithoutAutoCarry(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("auto_carry", "false")
	now := time.Now()
	yesterday := domain.AddDays(now, -1)
	mustCreate(t, s, store.NewTask{Title: "Walk", MoodHint: domain.MoodPtr(domain.MoodCalm), DueDate: &now})
	mustCreate(t, s, store.NewTask{Title: "Report", MoodHint: domain.MoodPtr(domain.MoodFocused), DueDate: &yesterday})

	// Startup leaves a weekday overdue task where it is when carry is off.
	prepareDay(s, now)()
	s.SetMood(now, domain.MoodPtr(domain.MoodFocused))

	d := newTodayModel(s)
	d, _ = d.update(d.loadData()())
	if len(d.recs) != 2 || d.recs[0].Title != "Report" {
		t.Fatalf("overdue task should rank first: %+v", d.recs)
	}
}

func TestTodayRankNeedsMood(t *testing.T) {
	s := newTestStore(t)
	mustCreate(t, s, store.NewTask{Title: "Something"})

	d := newTodayModel(s)
	d, _ = d.update(d.loadData()())
	if len(d.recs) != 0 {
		t.Fatal("no recommendations without a mood")
	}

	s.SetMood(time.Now(), domain.MoodPtr(domain.MoodCalm))
	d, _ = d.update(d.loadData()())
	if len(d.recs) != 1 || len(d.quick) != 1 {
		t.Fatalf("expected 1 rec and 1 quick win, got %d/%d", len(d.recs), len(d.quick))
	}
}

func TestTodayRecommendationsFollowMood(t *testing.T) {
	s := newTestStore(t)
	today := time.Now()
	mustCreate(t, s, store.NewTask{Title: "Refactor parser", MoodHint: domain.MoodPtr(domain.MoodFocused), DueDate: &today})
	mustCreate(t, s, store.NewTask{Title: "Nap", MoodHint: domain.MoodPtr(domain.MoodTired), DueDate: &today})
	s.SetMood(today, domain.MoodPtr(domain.MoodTired))

	d := newTodayModel(s)
	d, _ = d.update(d.loadData()())
	if len(d.recs) != 2 || d.recs[0].Title != "Nap" {
		t.Fatalf("tired mood should rank Nap first: %+v", d.recs)
	}
	if d.summary.Total != 2 || d.summary.Done != 0 {
		t.Fatalf("unexpected summary: %+v", d.summary)
	}
}

func TestTodayRespectsRecommendLimit(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		mustCreate(t, s, store.NewTask{Title: "Task"})
	}
	s.SetSetting("recommend_limit", "2")
	s.SetMood(time.Now(), domain.MoodPtr(domain.MoodCalm))

	d := newTodayModel(s)
	d, _ = d.update(d.loadData()())
	if len(d.recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(d.recs))
	}
}

func TestTodayToggleDone(t *testing.T) {
	s := newTestStore(t)
	task := mustCreate(t, s, store.NewTask{Title: "Water plants"})
	s.SetMood(time.Now(), domain.MoodPtr(domain.MoodCalm))

	d := newTodayModel(s)
	d, _ = d.update(d.loadData()())
	d, cmd := d.update(keyMsg(" "))
	if cmd == nil {
		t.Fatal("toggle should return a command")
	}
	if _, ok := cmd().(tasksChangedMsg); !ok {
		t.Fatal("toggle should report changed tasks")
	}

	got, _ := s.GetTask(task.ID)
	if !got.Done {
		t.Fatal("task should be done")
	}
}

func TestTodayMoodPicker(t *testing.T) {
	s := newTestStore(t)
	d := newTodayModel(s)

	d, _ = d.update(keyMsg("m"))
	if !d.picking {
		t.Fatal("m should open the picker")
	}
	d, _ = d.update(keyMsg("j"))
	d, cmd := d.update(keyMsg("enter"))
	if d.picking {
		t.Fatal("enter should close the picker")
	}
	cmd()

	m, _ := s.GetMood(time.Now())
	if m == nil || *m != domain.AllMoods[1] {
		t.Fatalf("expected %s, got %v", domain.AllMoods[1], m)
	}
}

// ============================================================
// Tasks
// ============================================================

func TestTasksGroupedRows(t *testing.T) {
	s := newTestStore(t)
	today := time.Now()
	tomorrow := domain.AddDays(today, 1)
	mustCreate(t, s, store.NewTask{Title: "Someday"})
	mustCreate(t, s, store.NewTask{Title: "Tomorrow", DueDate: &tomorrow})
	mustCreate(t, s, store.NewTask{Title: "Today", DueDate: &today})

	p := newTasksModel(s)
	p, _ = p.update(p.refresh()())
	if len(p.groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(p.groups))
	}
	want := []string{"Today", "Tomorrow", "Someday"}
	for i, w := range want {
		if p.rows[i].Title != w {
			t.Fatalf("row %d = %q, want %q", i, p.rows[i].Title, w)
		}
	}
}

func TestTasksKeyMutations(t *testing.T) {
	s := newTestStore(t)
	task := mustCreate(t, s, store.NewTask{Title: "Pay rent"})

	p := newTasksModel(s)
	p, _ = p.update(p.refresh()())

	run := func(k string) {
		t.Helper()
		var cmd tea.Cmd
		p, cmd = p.update(keyMsg(k))
		if cmd == nil {
			t.Fatalf("%q returned no command", k)
		}
		if _, ok := cmd().(tasksChangedMsg); !ok {
			t.Fatalf("%q did not change tasks", k)
		}
		p, _ = p.update(p.refresh()())
	}

	run("t")
	got, _ := s.GetTask(task.ID)
	if got.DueDate == nil || !domain.SameDay(*got.DueDate, time.Now()) {
		t.Fatal("t should move the task to today")
	}

	run("T")
	got, _ = s.GetTask(task.ID)
	if got.DueDate == nil || domain.DaysBetween(time.Now(), *got.DueDate) != 1 {
		t.Fatal("T should move the task to tomorrow")
	}

	run("c")
	got, _ = s.GetTask(task.ID)
	if got.DueDate != nil {
		t.Fatal("c should clear the due date")
	}

	run(" ")
	got, _ = s.GetTask(task.ID)
	if !got.Done {
		t.Fatal("space should complete the task")
	}

	run("d")
	if _, err := s.GetTask(task.ID); err == nil {
		t.Fatal("d should delete the task")
	}
}

func TestTasksNormalizeTitles(t *testing.T) {
	s := newTestStore(t)
	task := mustCreate(t, s, store.NewTask{Title: "tidy"})
	messy := *task
	messy.Title = "  too    many   spaces "
	s.SaveTask(messy)

	p := newTasksModel(s)
	p, _ = p.update(p.refresh()())
	_, cmd := p.update(keyMsg("N"))
	if _, ok := cmd().(tea.BatchMsg); !ok {
		t.Fatal("normalizing should report status and changes")
	}

	got, _ := s.GetTask(task.ID)
	if got.Title != "too many spaces" {
		t.Fatalf("title not normalized: %q", got.Title)
	}

	p, _ = p.update(p.refresh()())
	_, cmd = p.update(keyMsg("N"))
	if msg, ok := cmd().(statusMsg); !ok || msg.isError {
		t.Fatal("second pass should only report status")
	}
}

func TestNewTaskFromForm(t *testing.T) {
	today := time.Date(2026, 10, 16, 20, 0, 0, 0, time.Local)

	in, err := newTaskFromForm("Call mom", "  after dinner ", "calm", "1", "phone", "#FF6B6B", today)
	if err != nil {
		t.Fatal(err)
	}
	if in.Note != "after dinner" || in.Icon != "phone" || in.Color != "#FF6B6B" {
		t.Fatalf("unexpected task: %+v", in)
	}
	if in.MoodHint == nil || *in.MoodHint != domain.MoodCalm {
		t.Fatal("mood hint lost")
	}
	if in.DueDate == nil || !in.DueDate.Equal(time.Date(2026, 10, 17, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("due = %v", in.DueDate)
	}

	in, err = newTaskFromForm("Later", "", "", "", "", "", today)
	if err != nil {
		t.Fatal(err)
	}
	if in.DueDate != nil || in.MoodHint != nil {
		t.Fatal("empty selections should leave fields unset")
	}

	if _, err := newTaskFromForm("x", "", "grumpy", "", "", "", today); err == nil {
		t.Fatal("expected error for unknown mood")
	}
}

func TestValidateTitle(t *testing.T) {
	if validateTitle("   ") == nil {
		t.Fatal("blank title should fail")
	}
	if validateTitle("ok") != nil {
		t.Fatal("title should pass")
	}
}

// ============================================================
// Journal
// ============================================================

func TestJournalRefreshAndDelete(t *testing.T) {
	s := newTestStore(t)
	s.AddJournalEntry(time.Now(), nil, "first")

	j := newJournalModel(s)
	j, _ = j.update(j.refresh()())
	if len(j.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(j.entries))
	}

	j, cmd := j.update(keyMsg("d"))
	j, _ = j.update(cmd())
	if len(j.entries) != 0 {
		t.Fatal("entry should be deleted")
	}
}

func TestJournalFormEscCancels(t *testing.T) {
	s := newTestStore(t)
	j := newJournalModel(s)
	j, _ = j.update(keyMsg("n"))
	if !j.formActive {
		t.Fatal("n should open the form")
	}
	j, _ = j.update(keyMsg("esc"))
	if j.formActive {
		t.Fatal("esc should close the form")
	}
}

// ============================================================
// Focus
// ============================================================

func TestFocusDefaults(t *testing.T) {
	s := newTestStore(t)
	fm := newFocusModel(s)
	if fm.phase != focusIdle {
		t.Fatal("should start idle")
	}
	if fm.workDuration != 25*time.Minute || fm.breakDuration != 5*time.Minute {
		t.Fatalf("unexpected durations %v/%v", fm.workDuration, fm.breakDuration)
	}
}

func TestFocusLoadsSettingsAndTask(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("focus_minutes", "50")
	s.SetSetting("break_minutes", "10")
	task := mustCreate(t, s, store.NewTask{Title: "Write", MoodHint: domain.MoodPtr(domain.MoodInspired)})
	s.SetMood(time.Now(), domain.MoodPtr(domain.MoodInspired))

	fm := newFocusModel(s)
	fm, _ = fm.update(fm.refresh()())
	if fm.workDuration != 50*time.Minute || fm.breakDuration != 10*time.Minute {
		t.Fatalf("settings not loaded: %v/%v", fm.workDuration, fm.breakDuration)
	}
	if fm.task == nil || fm.task.ID != task.ID {
		t.Fatal("focus should bind the top recommendation")
	}
}

func TestFocusFullCycle(t *testing.T) {
	s := newTestStore(t)
	clock := newFakeClock()
	fm := newFocusModel(s)
	fm.timer.now = clock.now

	fm, _ = fm.update(keyMsg("s"))
	if fm.phase != focusWork || fm.sessionID == 0 {
		t.Fatal("s should start a work phase")
	}
	id := fm.sessionID

	clock.advance(fm.workDuration + time.Second)
	fm, _ = fm.update(tickMsg(clock.t))
	if fm.phase != focusBreak {
		t.Fatalf("expected break, got %s", phaseNames[fm.phase])
	}
	if fm.completed != 1 {
		t.Fatal("completed count should increase")
	}

	session, _ := s.GetFocus(id)
	if session.Status != domain.FocusCompleted || session.Elapsed != 25*time.Minute {
		t.Fatalf("unexpected session: %+v", session)
	}

	clock.advance(fm.breakDuration + time.Second)
	fm, _ = fm.update(tickMsg(clock.t))
	if fm.phase != focusIdle {
		t.Fatal("break should end in idle")
	}
}

func TestFocusCancel(t *testing.T) {
	s := newTestStore(t)
	clock := newFakeClock()
	fm := newFocusModel(s)
	fm.timer.now = clock.now

	fm, _ = fm.update(keyMsg("s"))
	id := fm.sessionID
	clock.advance(3 * time.Minute)

	fm, _ = fm.update(keyMsg("x"))
	if fm.phase != focusIdle {
		t.Fatal("x should cancel")
	}
	session, _ := s.GetFocus(id)
	if session.Status != domain.FocusCancelled || session.Elapsed != 3*time.Minute {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestFocusSkipBreak(t *testing.T) {
	s := newTestStore(t)
	clock := newFakeClock()
	fm := newFocusModel(s)
	fm.timer.now = clock.now

	fm, _ = fm.update(keyMsg("s"))
	clock.advance(fm.workDuration)
	fm, _ = fm.update(tickMsg(clock.t))
	fm, _ = fm.update(keyMsg(" "))
	if fm.phase != focusIdle {
		t.Fatal("space should skip the break")
	}
}

func TestFocusPhaseNames(t *testing.T) {
	for _, p := range []focusPhase{focusIdle, focusWork, focusBreak} {
		if phaseNames[p] == "" {
			t.Fatalf("missing phase name for %d", p)
		}
	}
}

// ============================================================
// Reports
// ============================================================

func TestDateRangeWeek(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local) // Friday
	cal := domain.DefaultCalendar()

	from, to := dateRange(reportWeek, 0, now, cal)
	if !from.Equal(time.Date(2026, 10, 12, 0, 0, 0, 0, time.Local)) || !to.Equal(time.Date(2026, 10, 18, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("current week = %v..%v", from, to)
	}

	from, _ = dateRange(reportWeek, 1, now, cal)
	if !from.Equal(time.Date(2026, 10, 5, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("previous week starts %v", from)
	}

	cal.WeekStart = time.Sunday
	from, _ = dateRange(reportWeek, 0, now, cal)
	if from.Weekday() != time.Sunday || !from.Equal(time.Date(2026, 10, 11, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("sunday week starts %v", from)
	}
}

func TestDateRangeMonth(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)
	from, to := dateRange(reportMonth, 0, now, domain.DefaultCalendar())
	if domain.DaysBetween(from, to) != monthDays-1 || !domain.SameDay(to, now) {
		t.Fatalf("30-day range = %v..%v", from, to)
	}
}

func TestReportsRefresh(t *testing.T) {
	s := newTestStore(t)
	today := time.Now()
	task := mustCreate(t, s, store.NewTask{Title: "Done today", DueDate: &today})
	task.Done = true
	s.SaveTask(*task)
	s.SetMood(today, domain.MoodPtr(domain.MoodFocused))

	r := newReportsModel(s)
	r.setSize(100, 40)
	r, _ = r.update(r.refresh()())
	if r.report.CompletionRate != 1 {
		t.Fatalf("completion rate = %v", r.report.CompletionRate)
	}
	if len(r.report.Days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(r.report.Days))
	}
	if out := r.view(); !strings.Contains(out, "focused") {
		t.Fatal("view should show the mood share")
	}
}

// ============================================================
// Settings
// ============================================================

func TestSettingsFormConfig(t *testing.T) {
	s := newTestStore(t)
	sm := newSettingsModel(s)
	sm, _ = sm.update(sm.refresh()())
	sm, _ = sm.showForm()

	if !*sm.autoCarry || *sm.weekStart != "monday" || *sm.focusMinutes != "25" {
		t.Fatal("form should start from the stored config")
	}
	if len(*sm.weekend) != 2 {
		t.Fatalf("expected 2 weekend days, got %v", *sm.weekend)
	}

	*sm.autoCarry = false
	*sm.weekend = []string{"friday", "saturday"}
	*sm.weekStart = "sunday"
	*sm.focusMinutes = "45"
	*sm.recommendLimit = "4"

	cfg, err := sm.formConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AutoCarry || cfg.FocusDuration != 45*time.Minute || cfg.RecommendLimit != 4 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Calendar.WeekStart != time.Sunday || !cfg.Calendar.Weekend[time.Friday] || cfg.Calendar.Weekend[time.Sunday] {
		t.Fatalf("unexpected calendar: %+v", cfg.Calendar)
	}

	*sm.breakMinutes = "soon"
	if _, err := sm.formConfig(); err == nil {
		t.Fatal("expected error for bad minutes")
	}
}

func TestPositiveInt(t *testing.T) {
	for _, v := range []string{"0", "-1", "x", ""} {
		if positiveInt(v) == nil {
			t.Errorf("%q should be rejected", v)
		}
	}
	if positiveInt(" 5 ") != nil {
		t.Fatal("5 should pass")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewToday {
		t.Fatal("default view should be today")
	}
	if app.showHelp || app.exportPicking {
		t.Fatal("help and export picker should be hidden by default")
	}
	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	for i := range viewNames {
		app.activeView = viewState(i)
		if app.View() == "" {
			t.Fatalf("view %d rendered empty", i)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !strings.Contains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	if output := app.View(); output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	model, _ := app.Update(statusMsg{text: "test status", isError: true})
	app = model.(App)
	if !app.statusError {
		t.Fatal("error flag lost")
	}
	if !strings.Contains(app.renderFooter(), "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppTabSwitching(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	model, _ := app.Update(keyMsg("5"))
	app = model.(App)
	if app.activeView != viewReports {
		t.Fatalf("expected reports, got %d", app.activeView)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewSettings {
		t.Fatalf("tab should advance to settings, got %d", app.activeView)
	}

	model, _ = app.Update(tea.KeyMsg{Type: tea.KeyTab})
	app = model.(App)
	if app.activeView != viewToday {
		t.Fatal("tab should wrap around")
	}
}

func TestPrepareDay(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local) // Friday
	weekday := time.Date(2026, 10, 13, 0, 0, 0, 0, time.Local)
	a := mustCreate(t, s, store.NewTask{Title: "Overdue", DueDate: &weekday})

	msg := prepareDay(s, now)()
	status, ok := msg.(statusMsg)
	if !ok || !strings.Contains(status.text, "Carried 1") {
		t.Fatalf("unexpected message: %#v", msg)
	}
	got, _ := s.GetTask(a.ID)
	if !domain.SameDay(*got.DueDate, now) {
		t.Fatal("overdue task should move to today")
	}

	if msg := prepareDay(s, now)(); msg != nil {
		t.Fatalf("second run should change nothing, got %#v", msg)
	}
}

func TestPrepareDayWithoutAutoCarry(t *testing.T) {
	s := newTestStore(t)
	s.SetSetting("auto_carry", "false")
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local)
	saturday := time.Date(2026, 10, 10, 0, 0, 0, 0, time.Local)
	task := mustCreate(t, s, store.NewTask{Title: "Weekend chore", DueDate: &saturday})

	prepareDay(s, now)()
	got, _ := s.GetTask(task.ID)
	if !got.DueDate.Equal(time.Date(2026, 10, 12, 0, 0, 0, 0, time.Local)) {
		t.Fatalf("weekend task should move to Monday, got %v", got.DueDate)
	}
}

func TestDoExport(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2026, 10, 16, 9, 0, 0, 0, time.Local)
	mustCreate(t, s, store.NewTask{Title: "Export me"})
	s.SetMood(now, domain.MoodPtr(domain.MoodCalm))
	s.AddJournalEntry(now, nil, "note")
	dir := t.TempDir()

	msg := doExport(s, dir, 0, now)()
	done, ok := msg.(exportDoneMsg)
	if !ok || done.path != filepath.Join(dir, "moodr-tasks-2026-10-16.csv") {
		t.Fatalf("unexpected message: %#v", msg)
	}
	if _, err := os.Stat(done.path); err != nil {
		t.Fatal(err)
	}

	msg = doExport(s, dir, 1, now)()
	done, ok = msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("unexpected message: %#v", msg)
	}
	snap, err := export.FromJSON(done.path)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Tasks) != 1 || len(snap.Plans) != 1 || len(snap.Journal) != 1 {
		t.Fatalf("backup incomplete: %d/%d/%d", len(snap.Tasks), len(snap.Plans), len(snap.Journal))
	}
}

// ============================================================
// Key bindings and styles
// ============================================================

func TestKeyMapHelp(t *testing.T) {
	if len(keys.ShortHelp()) == 0 {
		t.Fatal("short help should have bindings")
	}
	for i, g := range keys.FullHelp() {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

func TestMoodPaletteComplete(t *testing.T) {
	for _, m := range domain.AllMoods {
		if _, ok := moodColors[m]; !ok {
			t.Fatalf("no color for %s", m)
		}
		if moodGlyphs[m] == "" {
			t.Fatalf("no glyph for %s", m)
		}
	}
	if moodLabel(nil) == "" {
		t.Fatal("unset mood should still render")
	}
}

func TestIconGlyph(t *testing.T) {
	if iconGlyph("code") != "</>" {
		t.Fatal("known icon should map to its glyph")
	}
	if iconGlyph("unknown") != "·" {
		t.Fatal("unknown icon should fall back")
	}
}

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"timer", func() string { return timerStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"progress", func() string { return progressBar(0.5, 10) }},
	}

	for _, s := range styles {
		if s.fn() == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
