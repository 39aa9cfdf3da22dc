package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/moodr/internal/domain"
)

var csvHeader = []string{"ID", "Title", "Due", "Done", "Mood", "Icon", "Created", "Note"}

// ToCSV writes one row per task. Missing due dates and moods are empty cells.
func ToCSV(tasks []domain.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = domain.DayKey(*t.DueDate)
		}
		mood := ""
		if t.MoodHint != nil {
			mood = t.MoodHint.String()
		}
		done := "no"
		if t.Done {
			done = "yes"
		}

		row := []string{
			t.ID,
			t.Title,
			due,
			done,
			mood,
			t.Icon,
			t.CreatedAt.Local().Format(time.RFC3339),
			t.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
