package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/moodr/internal/domain"
)

func (s *Store) AddJournalEntry(date time.Time, mood *domain.Mood, body string) (*domain.JournalEntry, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("add journal entry: body is empty")
	}
	e := domain.JournalEntry{
		ID:        uuid.NewString(),
		Date:      domain.StartOfDay(date),
		Mood:      mood,
		Body:      body,
		CreatedAt: time.Now(),
	}
	_, err := s.db.Exec(
		`INSERT INTO journal_entries (id, date, mood, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.ID, domain.DayKey(e.Date), moodValue(e.Mood), e.Body, formatTime(e.CreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("add journal entry: %w", err)
	}
	return &e, nil
}

// ListJournalEntries returns entries newest first. limit <= 0 means all.
func (s *Store) ListJournalEntries(limit int) ([]domain.JournalEntry, error) {
	query := `SELECT id, date, mood, body, created_at FROM journal_entries ORDER BY date DESC, created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		var date, createdAt string
		var mood sql.NullString
		if err := rows.Scan(&e.ID, &date, &mood, &e.Body, &createdAt); err != nil {
			return nil, err
		}
		if d := parseDay(sql.NullString{String: date, Valid: true}); d != nil {
			e.Date = *d
		}
		e.Mood = parseMood(mood)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) DeleteJournalEntry(id string) error {
	res, err := s.db.Exec(`DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete journal entry %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete journal entry %s: %w", id, ErrNotFound)
	}
	return nil
}

// RestoreJournal upserts entries by ID.
func (s *Store) RestoreJournal(entries []domain.JournalEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("restore journal: begin: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		_, err := tx.Exec(
			`INSERT INTO journal_entries (id, date, mood, body, created_at) VALUES (?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET date = excluded.date, mood = excluded.mood, body = excluded.body`,
			e.ID, domain.DayKey(e.Date), moodValue(e.Mood), e.Body, formatTime(e.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("restore journal %s: %w", e.ID, err)
		}
	}
	return tx.Commit()
}
