package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stockroom/internal/export"
	"stockroom/internal/table"
)

// Config holds CLI configuration.
type Config struct {
	DBPath       string
	ConfigDir    string
	APIURL       string
	PageSize     int
	LogPath      string
	NoSeed       bool
	ExportDir    string
	ExportFormat string
	ShowVersion  bool
}

// ParseFlags parses command-line flags and returns configuration.
func ParseFlags(version string) (*Config, error) {
	config := &Config{}

	// Load .env files first so env-based defaults work with existing flag parsing.
	loadDotEnv(".env")
	loadDotEnv(".env.local")

	flag.StringVar(&config.DBPath, "db", "", "Path to SQLite database file (default: ~/.stockroom/stockroom.db)")
	flag.StringVar(&config.APIURL, "api", "", "Base URL of the inventory REST service (or set STOCKROOM_API_URL)")
	flag.IntVar(&config.PageSize, "page-size", 0, "Rows per table page: 10, 20, 30, 40 or 50")
	flag.StringVar(&config.LogPath, "log", "", "Write debug logs to this file (or set STOCKROOM_LOG)")
	flag.BoolVar(&config.NoSeed, "no-seed", false, "Do not load demo data into an empty database")
	flag.StringVar(&config.ExportFormat, "export", "csv", "Table export format: "+strings.Join(export.Formats, ", "))
	flag.BoolVar(&config.ShowVersion, "version", false, "Print the version and exit")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "stockroom %s\n\nUsage: stockroom [flags]\n\n", version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if config.ShowVersion {
		return config, nil
	}

	if config.APIURL == "" {
		config.APIURL = os.Getenv("STOCKROOM_API_URL")
	}
	if config.LogPath == "" {
		config.LogPath = os.Getenv("STOCKROOM_LOG")
	}

	if config.PageSize != 0 && !table.ValidPageSize(config.PageSize) {
		return nil, fmt.Errorf("invalid page size %d: choose one of %v", config.PageSize, table.PageSizes)
	}
	format, err := export.Format(config.ExportFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid -export: %w", err)
	}
	config.ExportFormat = format

	// Set default DB path if not specified
	if config.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		config.ConfigDir = filepath.Join(home, ".stockroom")
		if err := os.MkdirAll(config.ConfigDir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		config.DBPath = filepath.Join(config.ConfigDir, "stockroom.db")
	} else {
		config.ConfigDir = filepath.Dir(config.DBPath)
	}
	config.ExportDir = filepath.Join(config.ConfigDir, "exports")

	settings, err := loadOnboardingSettings(config.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarding settings: %w", err)
	}

	if shouldRunOnboarding(settings) {
		settings, err = runOnboarding(config.ConfigDir, config.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to run onboarding: %w", err)
		}
	}

	if config.APIURL == "" {
		config.APIURL = settings.APIURL
	}
	if settings.SkipSeed {
		config.NoSeed = true
	}

	return config, nil
}

func loadDotEnv(path string) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		value = strings.Trim(strings.TrimSpace(value), `"'`)
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
}
