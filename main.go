package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/moodr/internal/export"
	"github.com/sadopc/moodr/internal/store"
	"github.com/sadopc/moodr/internal/tui"
)

func main() {
	dbFlag := flag.String("db", "", "path to the database (default ~/.config/moodr/moodr.db)")
	importFlag := flag.String("import", "", "restore a JSON backup before starting")
	flag.Parse()

	dbPath := *dbFlag
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	// The TUI owns the terminal, so logs go to a file next to the database.
	logFile, err := openLog(filepath.Join(filepath.Dir(dbPath), "moodr.log"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelInfo})))

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if *importFlag != "" {
		if err := restore(s, *importFlag); err != nil {
			slog.Error("restore failed", "path", *importFlag, "err", err)
			fmt.Fprintf(os.Stderr, "error restoring backup: %v\n", err)
			os.Exit(1)
		}
	}

	app := tui.NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		slog.Error("program exited", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

// restore upserts a backup's tasks, day moods and journal entries.
func restore(s *store.Store, path string) error {
	snap, err := export.FromJSON(path)
	if err != nil {
		return err
	}
	if err := s.SaveTasks(snap.Tasks); err != nil {
		return err
	}
	for _, p := range snap.Plans {
		if err := s.SetMood(p.Date, p.Mood); err != nil {
			return err
		}
	}
	if err := s.RestoreJournal(snap.Journal); err != nil {
		return err
	}
	slog.Info("restored backup", "path", path,
		"tasks", len(snap.Tasks), "days", len(snap.Plans), "journal", len(snap.Journal))
	return nil
}
