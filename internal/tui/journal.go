package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/moodr/internal/domain"
	"github.com/sadopc/moodr/internal/store"
)

const journalPageSize = 50

type journalModel struct {
	store  *store.Store
	width  int
	height int

	entries []domain.JournalEntry
	cursor  int

	formActive bool
	form       *huh.Form
	formBody   *string
}

func newJournalModel(s *store.Store) journalModel {
	body := ""
	return journalModel{store: s, formBody: &body}
}

func (j *journalModel) setSize(w, h int) {
	j.width = w
	j.height = h
}

type journalDataMsg struct {
	entries []domain.JournalEntry
}

func (j journalModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := j.store.ListJournalEntries(journalPageSize)
		if err != nil {
			return errStatus("load journal", err)
		}
		return journalDataMsg{entries: entries}
	}
}

func (j journalModel) update(msg tea.Msg) (journalModel, tea.Cmd) {
	if j.formActive && j.form != nil {
		return j.updateForm(msg)
	}

	switch msg := msg.(type) {
	case journalDataMsg:
		j.entries = msg.entries
		if j.cursor >= len(j.entries) {
			j.cursor = max(0, len(j.entries)-1)
		}
		return j, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if j.cursor > 0 {
				j.cursor--
			}
		case key.Matches(msg, keys.Down):
			if j.cursor < len(j.entries)-1 {
				j.cursor++
			}
		case key.Matches(msg, keys.New):
			return j.showForm()
		case key.Matches(msg, keys.Delete):
			if j.cursor < len(j.entries) {
				id := j.entries[j.cursor].ID
				return j, func() tea.Msg {
					if err := j.store.DeleteJournalEntry(id); err != nil {
						return errStatus("delete entry", err)
					}
					return j.refresh()()
				}
			}
		}
	}
	return j, nil
}

func (j journalModel) showForm() (journalModel, tea.Cmd) {
	*j.formBody = ""
	j.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("How did today go?").Value(j.formBody).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("write something first")
				}
				return nil
			}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	j.formActive = true
	return j, j.form.Init()
}

func (j journalModel) updateForm(msg tea.Msg) (journalModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			j.formActive = false
			j.form = nil
			return j, nil
		}
	}

	form, cmd := j.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		j.form = f
	}

	if j.form.State == huh.StateCompleted {
		j.formActive = false
		body := *j.formBody
		return j, func() tea.Msg {
			// The entry takes the day's mood when one is set.
			now := time.Now()
			mood, err := j.store.GetMood(now)
			if err != nil {
				return errStatus("add entry", err)
			}
			if _, err := j.store.AddJournalEntry(now, mood, body); err != nil {
				return errStatus("add entry", err)
			}
			return j.refresh()()
		}
	}

	return j, cmd
}

func (j journalModel) view() string {
	w := j.width - 4
	if j.formActive && j.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Entry"), "", j.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Journal")
	if len(j.entries) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No entries yet. Press n to write one."),
		))
	}

	rows := []string{title, ""}
	bodyWidth := max(20, w-30)
	for i, e := range j.entries {
		cursor := "  "
		style := normalItemStyle
		if i == j.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		firstLine, _, _ := strings.Cut(e.Body, "\n")
		row := fmt.Sprintf("%s%s  ", cursor, e.Date.Format("Mon Jan 02"))
		rows = append(rows, style.Render(row)+moodLabel(e.Mood)+"  "+truncate(firstLine, bodyWidth))
	}

	if j.cursor < len(j.entries) {
		rows = append(rows, "", lipgloss.NewStyle().Foreground(colorSecondary).Width(w-6).Render(j.entries[j.cursor].Body))
	}

	rows = append(rows, "", mutedStyle.Render("  n: new entry  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
