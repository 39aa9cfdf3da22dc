package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/moodr/internal/domain"
	"github.com/sadopc/moodr/internal/schedule"
)

// NewTask holds the user-supplied fields of a task.
type NewTask struct {
	Title    string
	Note     string
	MoodHint *domain.Mood
	DueDate  *time.Time
	Color    string
	Icon     string
}

const taskColumns = `id, title, note, mood_hint, due_date, done, color, icon, created_at`

func (s *Store) CreateTask(in NewTask) (*domain.Task, error) {
	title := schedule.NormalizeTitle(in.Title, 0)
	if title == "" {
		return nil, fmt.Errorf("create task: %w", ErrEmptyTitle)
	}
	t := domain.Task{
		ID:        uuid.NewString(),
		Title:     title,
		Note:      in.Note,
		MoodHint:  in.MoodHint,
		Color:     in.Color,
		Icon:      in.Icon,
		CreatedAt: time.Now(),
	}
	if in.DueDate != nil {
		t.DueDate = domain.TimePtr(domain.StartOfDay(*in.DueDate))
	}

	_, err := s.db.Exec(
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		taskArgs(t)...,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return s.GetTask(t.ID)
}

func (s *Store) GetTask(id string) (*domain.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return &t, nil
}

// ListTasks returns every task, oldest first.
func (s *Store) ListTasks() ([]domain.Task, error) {
	return s.queryTasks(`SELECT ` + taskColumns + ` FROM tasks ORDER BY created_at, id`)
}

// ListTasksDue returns tasks due in [from, to] by calendar day.
func (s *Store) ListTasksDue(from, to time.Time) ([]domain.Task, error) {
	return s.queryTasks(
		`SELECT `+taskColumns+` FROM tasks WHERE due_date >= ? AND due_date <= ? ORDER BY due_date, created_at`,
		domain.DayKey(from), domain.DayKey(to),
	)
}

// SaveTask overwrites an existing task.
func (s *Store) SaveTask(t domain.Task) error {
	res, err := s.db.Exec(
		`UPDATE tasks SET title = ?, note = ?, mood_hint = ?, due_date = ?, done = ?, color = ?, icon = ?
		 WHERE id = ?`,
		t.Title, t.Note, moodValue(t.MoodHint), dueValue(t.DueDate), boolInt(t.Done), t.Color, t.Icon, t.ID,
	)
	if err != nil {
		return fmt.Errorf("save task %s: %w", t.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("save task %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// SaveTasks writes the whole collection in one transaction, inserting
// tasks that do not exist yet.
func (s *Store) SaveTasks(tasks []domain.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save tasks: begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO tasks (` + taskColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, note = excluded.note, mood_hint = excluded.mood_hint,
			due_date = excluded.due_date, done = excluded.done, color = excluded.color,
			icon = excluded.icon`,
	)
	if err != nil {
		return fmt.Errorf("save tasks: prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		if _, err := stmt.Exec(taskArgs(t)...); err != nil {
			return fmt.Errorf("save tasks: %s: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save tasks: commit: %w", err)
	}
	return nil
}

func (s *Store) DeleteTask(id string) error {
	res, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete task %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *Store) queryTasks(query string, args ...any) ([]domain.Task, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(sc scanner) (domain.Task, error) {
	var t domain.Task
	var mood, due sql.NullString
	var done int
	var createdAt string
	if err := sc.Scan(&t.ID, &t.Title, &t.Note, &mood, &due, &done, &t.Color, &t.Icon, &createdAt); err != nil {
		return t, err
	}
	t.MoodHint = parseMood(mood)
	t.DueDate = parseDay(due)
	t.Done = done == 1
	t.CreatedAt = parseTime(createdAt)
	return t, nil
}

func taskArgs(t domain.Task) []any {
	return []any{
		t.ID, t.Title, t.Note, moodValue(t.MoodHint), dueValue(t.DueDate),
		boolInt(t.Done), t.Color, t.Icon, formatTime(t.CreatedAt),
	}
}
