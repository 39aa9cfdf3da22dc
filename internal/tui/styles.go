package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/domain"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorSecondary = lipgloss.Color("#2EC4B6")
	colorAccent    = lipgloss.Color("#FF6B6B")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Focus countdown
	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Align(lipgloss.Center)

	timerRunningStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorSuccess).
				Align(lipgloss.Center)

	timerPausedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWarning).
				Align(lipgloss.Center)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	accentStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)
)

// Mood palette. Moods carry no presentation of their own.
var moodColors = map[domain.Mood]lipgloss.Color{
	domain.MoodCalm:     lipgloss.Color("#2EC4B6"),
	domain.MoodFocused:  lipgloss.Color("#7AA2F7"),
	domain.MoodTired:    lipgloss.Color("#9AA5CE"),
	domain.MoodInspired: lipgloss.Color("#F39C12"),
	domain.MoodAnxious:  lipgloss.Color("#FF6B6B"),
}

var moodGlyphs = map[domain.Mood]string{
	domain.MoodCalm:     "~",
	domain.MoodFocused:  "◎",
	domain.MoodTired:    "z",
	domain.MoodInspired: "✦",
	domain.MoodAnxious:  "!",
}

func moodStyle(m domain.Mood) lipgloss.Style {
	c, ok := moodColors[m]
	if !ok {
		c = colorMuted
	}
	return lipgloss.NewStyle().Foreground(c)
}

// moodLabel renders m with its glyph, or a dash when unset.
func moodLabel(m *domain.Mood) string {
	if m == nil {
		return mutedStyle.Render("–")
	}
	return moodStyle(*m).Render(moodGlyphs[*m] + " " + m.String())
}

// taskIcons are the icons offered in the task form, in display order.
var taskIcons = []struct {
	name  string
	glyph string
}{
	{"code", "</>"},
	{"doc", "▤"},
	{"chart", "▥"},
	{"target", "◎"},
	{"briefcase", "▣"},
	{"leaf", "❦"},
	{"home", "⌂"},
	{"book", "❐"},
	{"tea", "☕"},
	{"heart", "♥"},
	{"bed", "☾"},
	{"cart", "⛟"},
	{"inbox", "✉"},
	{"phone", "☏"},
	{"laundry", "≋"},
	{"bulb", "✧"},
	{"paint", "✎"},
	{"music", "♪"},
	{"camera", "◙"},
	{"pen", "✐"},
	{"walk", "⇢"},
	{"list", "☰"},
	{"broom", "⌇"},
}

func iconGlyph(name string) string {
	for _, ic := range taskIcons {
		if ic.name == name {
			return ic.glyph
		}
	}
	return "·"
}

func taskColorDot(color string) string {
	if color == "" {
		return mutedStyle.Render("●")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}
