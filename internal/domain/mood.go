package domain

import "strings"

// Mood is a tag a user assigns to a day or a task.
type Mood string

const (
	MoodCalm     Mood = "calm"
	MoodFocused  Mood = "focused"
	MoodTired    Mood = "tired"
	MoodInspired Mood = "inspired"
	MoodAnxious  Mood = "anxious"
)

// AllMoods lists every mood in display order.
var AllMoods = []Mood{MoodCalm, MoodFocused, MoodTired, MoodInspired, MoodAnxious}

func (m Mood) Valid() bool {
	switch m {
	case MoodCalm, MoodFocused, MoodTired, MoodInspired, MoodAnxious:
		return true
	}
	return false
}

func (m Mood) String() string { return string(m) }

// ParseMood accepts a mood name in any case. An empty string yields nil.
func ParseMood(s string) (*Mood, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return nil, true
	}
	m := Mood(s)
	if !m.Valid() {
		return nil, false
	}
	return &m, true
}

// MoodPtr returns a pointer to a copy of m.
func MoodPtr(m Mood) *Mood { return &m }
