// Package recommend ranks tasks against a mood and picks quick wins.
package recommend

import (
	"math"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sadopc/moodr/internal/domain"
)

const (
	DefaultLimit         = 7
	DefaultQuickWinLimit = 3

	// CompletedScore is lower than any score an open task can reach.
	CompletedScore = math.MinInt32

	moodMatchBonus  = 50
	overdueBonus    = 40
	dueTodayBonus   = 30
	futureHorizon   = 20
	undatedBonus    = 5
	iconBonus       = 8
	shortTitleBonus = 4
	freshBonus      = 3

	shortTitleLen    = 24
	quickWinTitleLen = 20
	freshDays        = 2
)

// iconAffinity lists the icons that suit each mood.
var iconAffinity = map[domain.Mood]map[string]bool{
	domain.MoodCalm:     {"leaf": true, "home": true, "heart": true, "book": true, "tea": true},
	domain.MoodFocused:  {"code": true, "doc": true, "briefcase": true, "chart": true, "target": true},
	domain.MoodTired:    {"bed": true, "cart": true, "inbox": true, "phone": true, "laundry": true},
	domain.MoodInspired: {"bulb": true, "paint": true, "music": true, "camera": true, "pen": true},
	domain.MoodAnxious:  {"walk": true, "list": true, "broom": true, "phone": true, "heart": true},
}

// Score rates how well t fits mood on the day of ref. Higher is better.
func Score(t domain.Task, mood domain.Mood, ref time.Time) int {
	if t.Done {
		return CompletedScore
	}

	score := 0
	if t.MoodHint != nil && *t.MoodHint == mood {
		score += moodMatchBonus
	}

	if t.DueDate == nil {
		score += undatedBonus
	} else {
		switch days := domain.DaysBetween(ref, *t.DueDate); {
		case days < 0:
			score += overdueBonus
		case days == 0:
			score += dueTodayBonus
		default:
			score += max(0, futureHorizon-days)
		}
	}

	if t.Icon != "" && iconAffinity[mood][t.Icon] {
		score += iconBonus
	}
	if titleLen(t.Title) <= shortTitleLen {
		score += shortTitleBonus
	}
	if age := domain.DaysBetween(t.CreatedAt, ref); age >= -freshDays && age <= freshDays {
		score += freshBonus
	}
	return score
}

// Ordered returns a copy of tasks sorted best first. Equal scores fall back
// to the earlier due date (undated last), then the earlier creation time.
// The sort is stable, so applying it twice changes nothing.
func Ordered(tasks []domain.Task, mood domain.Mood, ref time.Time) []domain.Task {
	type scored struct {
		task  domain.Task
		score int
	}
	items := make([]scored, len(tasks))
	for i, t := range tasks {
		items[i] = scored{task: t, score: Score(t, mood, ref)}
	}

	slices.SortStableFunc(items, func(a, b scored) int {
		if a.score != b.score {
			if a.score > b.score {
				return -1
			}
			return 1
		}
		if c := compareDue(a.task.DueDate, b.task.DueDate); c != 0 {
			return c
		}
		return a.task.CreatedAt.Compare(b.task.CreatedAt)
	})

	out := make([]domain.Task, len(items))
	for i, it := range items {
		out[i] = it.task
	}
	return out
}

// Top returns at most limit tasks from the front of Ordered.
func Top(tasks []domain.Task, mood domain.Mood, ref time.Time, limit int) []domain.Task {
	if limit <= 0 {
		return nil
	}
	ordered := Ordered(tasks, mood, ref)
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}
	return ordered
}

// IsQuickWin reports whether t is open, short, not overdue and compatible
// with mood.
func IsQuickWin(t domain.Task, mood domain.Mood, ref time.Time) bool {
	if t.Done {
		return false
	}
	if titleLen(t.Title) > quickWinTitleLen {
		return false
	}
	if t.DueDate != nil && domain.DaysBetween(ref, *t.DueDate) < 0 {
		return false
	}
	return t.MoodHint == nil || *t.MoodHint == mood
}

// QuickWins filters pool down to quick wins, ranks them and keeps at most
// limit. Filtering happens before ranking.
func QuickWins(pool []domain.Task, mood domain.Mood, ref time.Time, limit int) []domain.Task {
	var wins []domain.Task
	for _, t := range pool {
		if IsQuickWin(t, mood, ref) {
			wins = append(wins, t)
		}
	}
	return Top(wins, mood, ref, limit)
}

func compareDue(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return a.Compare(*b)
}

func titleLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
