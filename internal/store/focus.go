package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/moodr/internal/domain"
)

const focusColumns = `id, task_id, planned_seconds, elapsed_seconds, status, started_at, completed_at`

// StartFocus opens a running focus session, optionally bound to a task.
func (s *Store) StartFocus(taskID *string, planned time.Duration) (*domain.FocusSession, error) {
	res, err := s.db.Exec(
		`INSERT INTO focus_sessions (task_id, planned_seconds, status, started_at) VALUES (?, ?, ?, ?)`,
		taskID, int64(planned.Seconds()), string(domain.FocusRunning), formatTime(time.Now()),
	)
	if err != nil {
		return nil, fmt.Errorf("start focus: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetFocus(id)
}

func (s *Store) GetFocus(id int64) (*domain.FocusSession, error) {
	row := s.db.QueryRow(`SELECT `+focusColumns+` FROM focus_sessions WHERE id = ?`, id)
	f, err := scanFocus(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get focus %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get focus %d: %w", id, err)
	}
	return &f, nil
}

func (s *Store) CompleteFocus(id int64, elapsed time.Duration) error {
	return s.finishFocus(id, domain.FocusCompleted, elapsed)
}

func (s *Store) CancelFocus(id int64, elapsed time.Duration) error {
	return s.finishFocus(id, domain.FocusCancelled, elapsed)
}

func (s *Store) finishFocus(id int64, status domain.FocusStatus, elapsed time.Duration) error {
	res, err := s.db.Exec(
		`UPDATE focus_sessions SET status = ?, elapsed_seconds = ?, completed_at = ? WHERE id = ? AND status = ?`,
		string(status), int64(elapsed.Seconds()), formatTime(time.Now()), id, string(domain.FocusRunning),
	)
	if err != nil {
		return fmt.Errorf("%s focus %d: %w", status, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s focus %d: %w", status, id, ErrNotFound)
	}
	return nil
}

// ListFocusSessions returns sessions started in [from, to] by calendar day.
func (s *Store) ListFocusSessions(from, to time.Time) ([]domain.FocusSession, error) {
	rows, err := s.db.Query(
		`SELECT `+focusColumns+` FROM focus_sessions WHERE started_at >= ? AND started_at < ? ORDER BY started_at`,
		formatTime(domain.StartOfDay(from)), formatTime(domain.NextDay(to)),
	)
	if err != nil {
		return nil, fmt.Errorf("list focus sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.FocusSession
	for rows.Next() {
		f, err := scanFocus(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, f)
	}
	return sessions, rows.Err()
}

func scanFocus(sc scanner) (domain.FocusSession, error) {
	var f domain.FocusSession
	var taskID, completedAt sql.NullString
	var planned, elapsed int64
	var status, startedAt string
	if err := sc.Scan(&f.ID, &taskID, &planned, &elapsed, &status, &startedAt, &completedAt); err != nil {
		return f, err
	}
	if taskID.Valid {
		f.TaskID = &taskID.String
	}
	f.Planned = time.Duration(planned) * time.Second
	f.Elapsed = time.Duration(elapsed) * time.Second
	f.Status = domain.FocusStatus(status)
	f.StartedAt = parseTime(startedAt)
	f.CompletedAt = parseTimePtr(completedAt)
	return f, nil
}
