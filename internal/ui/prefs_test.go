package ui

import (
	"os"
	"path/filepath"
	"testing"

	"stockroom/internal/model"
)

func TestUIPreferencesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui_prefs.json")
	want := UIPreferences{InitialTab: "purchase_orders", ForecastDays: 30, PageSize: 20}

	if err := saveUIPreferencesTo(path, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := loadUIPreferencesFrom(path); got != want {
		t.Errorf("load = %+v, want %+v", got, want)
	}
}

func TestUIPreferencesFallbacks(t *testing.T) {
	dir := t.TempDir()

	if got := loadUIPreferencesFrom(filepath.Join(dir, "missing.json")); got != defaultUIPreferences() {
		t.Errorf("missing file = %+v, want defaults", got)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := loadUIPreferencesFrom(bad); got != defaultUIPreferences() {
		t.Errorf("bad json = %+v, want defaults", got)
	}

	odd := filepath.Join(dir, "odd.json")
	if err := os.WriteFile(odd, []byte(`{"initial_tab":"reports","forecast_days":45,"page_size":25}`), 0644); err != nil {
		t.Fatal(err)
	}
	if got := loadUIPreferencesFrom(odd); got != defaultUIPreferences() {
		t.Errorf("out of range values = %+v, want defaults", got)
	}
}

func TestScreenForTab(t *testing.T) {
	for screen, name := range tabNames {
		got, ok := screenForTab(name)
		if !ok || got != screen {
			t.Errorf("screenForTab(%q) = %v, %v; want %v", name, got, ok, screen)
		}
	}
	if _, ok := screenForTab("reports"); ok {
		t.Error("unknown tab accepted")
	}
	if s, _ := screenForTab(""); s != model.ScreenDashboard {
		t.Errorf("empty tab = %v, want dashboard", s)
	}
}
