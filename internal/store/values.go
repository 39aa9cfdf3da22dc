package store

import (
	"database/sql"
	"time"

	"github.com/sadopc/moodr/internal/domain"
)

// Instants are stored as UTC RFC3339Nano and read back in local time.
// Calendar days are stored as YYYY-MM-DD and read back as local midnight.

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t.Local()
}

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTimePtr(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t := parseTime(ns.String)
	return &t
}

func dueValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return domain.DayKey(*t)
}

func parseDay(ns sql.NullString) *time.Time {
	if !ns.Valid {
		return nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, ns.String, time.Local)
	if err != nil {
		return nil
	}
	return &t
}

func moodValue(m *domain.Mood) any {
	if m == nil {
		return nil
	}
	return string(*m)
}

func parseMood(ns sql.NullString) *domain.Mood {
	if !ns.Valid {
		return nil
	}
	m, ok := domain.ParseMood(ns.String)
	if !ok {
		return nil
	}
	return m
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
