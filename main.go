package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"stockroom/cmd"
	"stockroom/internal/api"
	"stockroom/internal/db"
	"stockroom/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
)

// version is set at build time via -ldflags
var version = "dev"

func main() {
	// Parse CLI flags
	config, err := cmd.ParseFlags(version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if config.ShowVersion {
		fmt.Println("stockroom", version)
		return
	}

	// The alt screen owns the terminal, so logs go to a file or nowhere.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if config.LogPath != "" {
		f, err := tea.LogToFile(config.LogPath, "stockroom")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	logger = logger.With("version", version)

	// Open database
	database, err := db.Open(config.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if !config.NoSeed {
		seeded, err := db.Seed(database, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load demo data: %v\n", err)
			os.Exit(1)
		}
		if seeded {
			logger.Info("loaded demo data", "db", config.DBPath)
		}
	}

	var source ui.DataSource
	if config.APIURL != "" {
		source = api.NewClient(config.APIURL, api.WithLogger(logger))
		logger.Info("using inventory service", "url", config.APIURL)
	}

	app := ui.New(ui.Config{
		DB:           database,
		Source:       source,
		Terminal:     ui.DetectTerminalCapabilities(),
		ExportDir:    config.ExportDir,
		ExportFormat: config.ExportFormat,
		PageSize:     config.PageSize,
		Logger:       logger,
	})

	// Create and run Bubble Tea app
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}
