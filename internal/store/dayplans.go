package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/moodr/internal/domain"
)

// SetMood records the mood for date's calendar day. A nil mood clears it.
func (s *Store) SetMood(date time.Time, mood *domain.Mood) error {
	_, err := s.db.Exec(
		`INSERT INTO day_plans (date, mood) VALUES (?, ?) ON CONFLICT(date) DO UPDATE SET mood = excluded.mood`,
		domain.DayKey(date), moodValue(mood),
	)
	if err != nil {
		return fmt.Errorf("set mood %s: %w", domain.DayKey(date), err)
	}
	return nil
}

// GetMood returns the mood recorded for date, or nil.
func (s *Store) GetMood(date time.Time) (*domain.Mood, error) {
	var mood sql.NullString
	err := s.db.QueryRow(`SELECT mood FROM day_plans WHERE date = ?`, domain.DayKey(date)).Scan(&mood)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get mood %s: %w", domain.DayKey(date), err)
	}
	return parseMood(mood), nil
}

// GetDayPlan returns date's mood together with the tasks due that day.
func (s *Store) GetDayPlan(date time.Time) (domain.DayPlan, error) {
	day := domain.StartOfDay(date)
	plan := domain.DayPlan{Date: day}

	mood, err := s.GetMood(day)
	if err != nil {
		return plan, err
	}
	plan.Mood = mood

	plan.Tasks, err = s.ListTasksDue(day, day)
	if err != nil {
		return plan, fmt.Errorf("get day plan %s: %w", domain.DayKey(day), err)
	}
	return plan, nil
}

// ListDayPlans returns the recorded plans in [from, to], oldest first,
// each with the tasks due that day.
func (s *Store) ListDayPlans(from, to time.Time) ([]domain.DayPlan, error) {
	rows, err := s.db.Query(
		`SELECT date, mood FROM day_plans WHERE date >= ? AND date <= ? ORDER BY date`,
		domain.DayKey(from), domain.DayKey(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list day plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.DayPlan
	for rows.Next() {
		var date string
		var mood sql.NullString
		if err := rows.Scan(&date, &mood); err != nil {
			return nil, err
		}
		d := parseDay(sql.NullString{String: date, Valid: true})
		if d == nil {
			continue
		}
		plans = append(plans, domain.DayPlan{Date: *d, Mood: parseMood(mood)})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	tasks, err := s.ListTasksDue(from, to)
	if err != nil {
		return nil, err
	}
	index := make(map[string]int, len(plans))
	for i, p := range plans {
		index[domain.DayKey(p.Date)] = i
	}
	for _, t := range tasks {
		if i, ok := index[domain.DayKey(*t.DueDate)]; ok {
			plans[i].Tasks = append(plans[i].Tasks, t)
		}
	}
	return plans, nil
}
