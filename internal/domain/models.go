package domain

import "time"

type Task struct {
	ID        string
	Title     string
	Note      string
	MoodHint  *Mood
	DueDate   *time.Time // start of day when set
	Done      bool
	Color     string
	Icon      string
	CreatedAt time.Time
}

// ReferenceTime is the instant analytics bucket a task by: its due date
// when set, otherwise its creation time.
func (t Task) ReferenceTime() time.Time {
	if t.DueDate != nil {
		return *t.DueDate
	}
	return t.CreatedAt
}

// DayPlan is one calendar day's selected mood plus the tasks due that day.
type DayPlan struct {
	Date  time.Time
	Mood  *Mood
	Tasks []Task
}

type JournalEntry struct {
	ID        string
	Date      time.Time
	Mood      *Mood
	Body      string
	CreatedAt time.Time
}

type FocusStatus string

const (
	FocusRunning   FocusStatus = "running"
	FocusCompleted FocusStatus = "completed"
	FocusCancelled FocusStatus = "cancelled"
)

type FocusSession struct {
	ID          int64
	TaskID      *string
	Planned     time.Duration
	Elapsed     time.Duration
	Status      FocusStatus
	StartedAt   time.Time
	CompletedAt *time.Time
}

// DaySummary aggregates one calendar day. It is computed, never stored.
type DaySummary struct {
	Date     time.Time
	Mood     *Mood
	Total    int
	Done     int
	Progress float64
}

type MoodShare struct {
	Mood  Mood
	Count int
	Share float64
}
