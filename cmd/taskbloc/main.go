package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/taskbloc/taskbloc-go/internal/config"
	"github.com/taskbloc/taskbloc-go/internal/messages"
	"github.com/taskbloc/taskbloc-go/internal/repository"
	"github.com/taskbloc/taskbloc-go/internal/service"
	"github.com/taskbloc/taskbloc-go/internal/ui"
)

// requiredMessageKeys are the keys the services and screens render; an
// external catalog missing any of them is rejected at startup.
var requiredMessageKeys = []string{
	"auth_ok", "auth_fail", "user_exists", "invalid_input",
	"task_added", "task_updated", "task_not_found", "due_date_invalid",
	"section_today", "section_upcoming", "section_past",
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	// The TUI owns the terminal, so logs go to a file next to the database.
	if err := setupLogging(cfg.DBPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}

	msgs, err := loadCatalog(cfg.MessagesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading message catalog: %v\n", err)
		os.Exit(1)
	}

	db, err := repository.NewDB(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	authService := service.NewAuthService(
		repository.NewUserRepository(db),
		cfg.SessionSecret,
		cfg.SessionExpiry,
		cfg.AllowLegacyPlaintext,
	)
	taskService := service.NewTaskService(repository.NewTaskRepository(db))

	p := tea.NewProgram(ui.New(authService, taskService, msgs), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func loadCatalog(path string) (*messages.Catalog, error) {
	msgs := messages.Default()
	if path != "" {
		var err error
		msgs, err = messages.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if missing := msgs.Missing(requiredMessageKeys); len(missing) > 0 {
		return nil, fmt.Errorf("catalog missing keys: %v", missing)
	}
	return msgs, nil
}

func setupLogging(dbPath string) error {
	if dbPath == "" {
		var err error
		dbPath, err = repository.DefaultDBPath()
		if err != nil {
			return err
		}
	}

	logPath := filepath.Join(filepath.Dir(dbPath), "taskbloc.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return nil
}
