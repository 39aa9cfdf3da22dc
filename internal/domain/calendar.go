package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Calendar carries the locale-dependent rules the engines need: which
// weekdays are weekend days and which weekday starts the week.
type Calendar struct {
	Weekend   map[time.Weekday]bool
	WeekStart time.Weekday
}

// DefaultCalendar is a Monday-first week with a Saturday/Sunday weekend.
func DefaultCalendar() Calendar {
	return Calendar{
		Weekend:   map[time.Weekday]bool{time.Saturday: true, time.Sunday: true},
		WeekStart: time.Monday,
	}
}

func (c Calendar) IsWeekend(t time.Time) bool {
	return c.Weekend[t.Weekday()]
}

// WeekdayNumber maps t's weekday to 1..7 where 1 is WeekStart.
func (c Calendar) WeekdayNumber(t time.Time) int {
	return (int(t.Weekday())-int(c.WeekStart)+7)%7 + 1
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return wd, nil
}

// ParseWeekend parses a comma separated weekday list such as "sat,sun".
// An empty list means no weekend days.
func ParseWeekend(s string) (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		wd, err := ParseWeekday(part)
		if err != nil {
			return nil, err
		}
		days[wd] = true
	}
	return days, nil
}

// FormatWeekend is the inverse of ParseWeekend, ordered Sunday first.
func FormatWeekend(days map[time.Weekday]bool) string {
	var list []time.Weekday
	for wd, on := range days {
		if on {
			list = append(list, wd)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	names := make([]string, len(list))
	for i, wd := range list {
		names[i] = strings.ToLower(wd.String()[:3])
	}
	return strings.Join(names, ",")
}
