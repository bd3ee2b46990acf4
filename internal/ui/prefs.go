package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stockroom/internal/forecast"
	"stockroom/internal/model"
	"stockroom/internal/table"
)

// UIPreferences stores persisted app preferences. Table sort, filter and
// visibility are not persisted.
type UIPreferences struct {
	InitialTab   string `json:"initial_tab"`
	ForecastDays int    `json:"forecast_days"`
	PageSize     int    `json:"page_size"`
}

var tabNames = map[model.Screen]string{
	model.ScreenDashboard:      "dashboard",
	model.ScreenInventory:      "inventory",
	model.ScreenSales:          "sales",
	model.ScreenPurchaseOrders: "purchase_orders",
	model.ScreenVendors:        "vendors",
	model.ScreenCustomers:      "customers",
	model.ScreenAccount:        "account",
}

func defaultUIPreferences() UIPreferences {
	return UIPreferences{
		InitialTab:   tabNames[model.ScreenDashboard],
		ForecastDays: 0,
		PageSize:     table.DefaultPageSize,
	}
}

// normalize replaces out-of-range values with defaults.
func (p UIPreferences) normalize() UIPreferences {
	def := defaultUIPreferences()
	if _, ok := screenForTab(p.InitialTab); !ok {
		p.InitialTab = def.InitialTab
	}
	if !table.ValidPageSize(p.PageSize) {
		p.PageSize = def.PageSize
	}
	valid := false
	for _, w := range forecast.Windows {
		if w == p.ForecastDays {
			valid = true
			break
		}
	}
	if !valid {
		p.ForecastDays = def.ForecastDays
	}
	return p
}

func screenForTab(name string) (model.Screen, bool) {
	for s, n := range tabNames {
		if n == name {
			return s, true
		}
	}
	return model.ScreenDashboard, false
}

func prefsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, ".stockroom", "ui_prefs.json"), nil
}

func loadUIPreferencesFrom(path string) UIPreferences {
	data, err := os.ReadFile(path)
	if err != nil {
		return defaultUIPreferences()
	}

	var prefs UIPreferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return defaultUIPreferences()
	}
	return prefs.normalize()
}

func saveUIPreferencesTo(path string, prefs UIPreferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := json.MarshalIndent(prefs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}
