package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/moodr/internal/domain"
)

const backupVersion = 1

// Snapshot is the whole collection written by ToJSON.
type Snapshot struct {
	Tasks   []domain.Task
	Plans   []domain.DayPlan
	Journal []domain.JournalEntry
}

type jsonExport struct {
	Version    int           `json:"version"`
	ExportedAt string        `json:"exported_at"`
	Tasks      []jsonTask    `json:"tasks"`
	Days       []jsonDay     `json:"days"`
	Journal    []jsonJournal `json:"journal"`
}

type jsonTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Note      string `json:"note,omitempty"`
	MoodHint  string `json:"mood_hint,omitempty"`
	Due       string `json:"due,omitempty"`
	Done      bool   `json:"done"`
	Color     string `json:"color,omitempty"`
	Icon      string `json:"icon,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Plan tasks are not duplicated; they are recovered from due dates.
type jsonDay struct {
	Date string `json:"date"`
	Mood string `json:"mood,omitempty"`
}

type jsonJournal struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Mood      string `json:"mood,omitempty"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

var ErrUnsupportedVersion = errors.New("unsupported backup version")

func ToJSON(snap Snapshot, path string) error {
	export := jsonExport{
		Version:    backupVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	}

	for _, t := range snap.Tasks {
		export.Tasks = append(export.Tasks, jsonTask{
			ID:        t.ID,
			Title:     t.Title,
			Note:      t.Note,
			MoodHint:  moodString(t.MoodHint),
			Due:       dayString(t.DueDate),
			Done:      t.Done,
			Color:     t.Color,
			Icon:      t.Icon,
			CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	for _, p := range snap.Plans {
		export.Days = append(export.Days, jsonDay{
			Date: domain.DayKey(p.Date),
			Mood: moodString(p.Mood),
		})
	}
	for _, e := range snap.Journal {
		export.Journal = append(export.Journal, jsonJournal{
			ID:        e.ID,
			Date:      domain.DayKey(e.Date),
			Mood:      moodString(e.Mood),
			Body:      e.Body,
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// FromJSON reads a backup written by ToJSON. Each plan gets the tasks
// due on its day.
func FromJSON(path string) (Snapshot, error) {
	var snap Snapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snap, fmt.Errorf("read json file: %w", err)
	}

	var in jsonExport
	if err := json.Unmarshal(data, &in); err != nil {
		return snap, fmt.Errorf("unmarshal json: %w", err)
	}
	if in.Version != backupVersion {
		return snap, fmt.Errorf("import %s: %w: %d", path, ErrUnsupportedVersion, in.Version)
	}

	for _, jt := range in.Tasks {
		t := domain.Task{
			ID:    jt.ID,
			Title: jt.Title,
			Note:  jt.Note,
			Done:  jt.Done,
			Color: jt.Color,
			Icon:  jt.Icon,
		}
		if t.MoodHint, err = parseMood(jt.MoodHint); err != nil {
			return snap, fmt.Errorf("task %s: %w", jt.ID, err)
		}
		if t.DueDate, err = parseDay(jt.Due); err != nil {
			return snap, fmt.Errorf("task %s: %w", jt.ID, err)
		}
		if t.CreatedAt, err = time.Parse(time.RFC3339Nano, jt.CreatedAt); err != nil {
			return snap, fmt.Errorf("task %s: created_at: %w", jt.ID, err)
		}
		t.CreatedAt = t.CreatedAt.Local()
		snap.Tasks = append(snap.Tasks, t)
	}

	for _, jd := range in.Days {
		day, err := parseDay(jd.Date)
		if err != nil || day == nil {
			return snap, fmt.Errorf("day %q: invalid date", jd.Date)
		}
		p := domain.DayPlan{Date: *day}
		if p.Mood, err = parseMood(jd.Mood); err != nil {
			return snap, fmt.Errorf("day %s: %w", jd.Date, err)
		}
		for _, t := range snap.Tasks {
			if t.DueDate != nil && t.DueDate.Equal(p.Date) {
				p.Tasks = append(p.Tasks, t)
			}
		}
		snap.Plans = append(snap.Plans, p)
	}

	for _, jj := range in.Journal {
		e := domain.JournalEntry{ID: jj.ID, Body: jj.Body}
		day, err := parseDay(jj.Date)
		if err != nil || day == nil {
			return snap, fmt.Errorf("journal %s: invalid date %q", jj.ID, jj.Date)
		}
		e.Date = *day
		if e.Mood, err = parseMood(jj.Mood); err != nil {
			return snap, fmt.Errorf("journal %s: %w", jj.ID, err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, jj.CreatedAt); err != nil {
			return snap, fmt.Errorf("journal %s: created_at: %w", jj.ID, err)
		}
		e.CreatedAt = e.CreatedAt.Local()
		snap.Journal = append(snap.Journal, e)
	}
	return snap, nil
}

func moodString(m *domain.Mood) string {
	if m == nil {
		return ""
	}
	return m.String()
}

func dayString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return domain.DayKey(*t)
}

func parseMood(s string) (*domain.Mood, error) {
	m, ok := domain.ParseMood(s)
	if !ok {
		return nil, fmt.Errorf("unknown mood %q", s)
	}
	return m, nil
}

func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, s, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
