package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sadopc/moodr/internal/domain"
)

type Setting struct {
	Key   string
	Value string
}

// Config is the typed view of the settings table.
type Config struct {
	AutoCarry      bool
	Calendar       domain.Calendar
	FocusDuration  time.Duration
	BreakDuration  time.Duration
	RecommendLimit int
}

func DefaultConfig() Config {
	return Config{
		AutoCarry:      true,
		Calendar:       domain.DefaultCalendar(),
		FocusDuration:  25 * time.Minute,
		BreakDuration:  5 * time.Minute,
		RecommendLimit: 7,
	}
}

func (s *Store) GetSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

func (s *Store) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// LoadConfig reads the settings table. Missing or malformed values keep
// their defaults and are logged.
func (s *Store) LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	settings, err := s.GetAllSettings()
	if err != nil {
		return cfg, err
	}

	for _, kv := range settings {
		var perr error
		switch kv.Key {
		case "auto_carry":
			var on bool
			if on, perr = strconv.ParseBool(kv.Value); perr == nil {
				cfg.AutoCarry = on
			}
		case "weekend_days":
			var days map[time.Weekday]bool
			if days, perr = domain.ParseWeekend(kv.Value); perr == nil {
				cfg.Calendar.Weekend = days
			}
		case "week_start":
			var wd time.Weekday
			if wd, perr = domain.ParseWeekday(kv.Value); perr == nil {
				cfg.Calendar.WeekStart = wd
			}
		case "focus_minutes":
			cfg.FocusDuration, perr = parseMinutes(kv.Value, cfg.FocusDuration)
		case "break_minutes":
			cfg.BreakDuration, perr = parseMinutes(kv.Value, cfg.BreakDuration)
		case "recommend_limit":
			var n int
			if n, perr = strconv.Atoi(kv.Value); perr == nil && n > 0 {
				cfg.RecommendLimit = n
			}
		}
		if perr != nil {
			s.log.Warn("ignoring malformed setting", "key", kv.Key, "value", kv.Value, "err", perr)
		}
	}
	return cfg, nil
}

// SaveConfig writes cfg back to the settings table.
func (s *Store) SaveConfig(cfg Config) error {
	values := map[string]string{
		"auto_carry":      strconv.FormatBool(cfg.AutoCarry),
		"weekend_days":    domain.FormatWeekend(cfg.Calendar.Weekend),
		"week_start":      strings.ToLower(cfg.Calendar.WeekStart.String()),
		"focus_minutes":   strconv.Itoa(int(cfg.FocusDuration.Minutes())),
		"break_minutes":   strconv.Itoa(int(cfg.BreakDuration.Minutes())),
		"recommend_limit": strconv.Itoa(cfg.RecommendLimit),
	}
	for k, v := range values {
		if err := s.SetSetting(k, v); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	return nil
}

func parseMinutes(v string, fallback time.Duration) (time.Duration, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, err
	}
	if n <= 0 {
		return fallback, fmt.Errorf("minutes must be positive, got %d", n)
	}
	return time.Duration(n) * time.Minute, nil
}
