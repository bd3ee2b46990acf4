package cmd

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestValidateAPIURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://inventory.example.com/", "https://inventory.example.com", false},
		{"  http://localhost:8000 ", "http://localhost:8000", false},
		{"ftp://example.com", "", true},
		{"inventory.example.com", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := validateAPIURL(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateAPIURL(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("validateAPIURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOnboardingSettingsRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")

	got, err := loadOnboardingSettings(dir)
	if err != nil || got != (OnboardingSettings{}) {
		t.Fatalf("missing file = %+v, %v", got, err)
	}

	want := OnboardingSettings{Completed: true, APIURL: "https://api.test", SkipSeed: true}
	if err := saveOnboardingSettings(dir, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, err := loadOnboardingSettings(dir); err != nil || got != want {
		t.Errorf("load = %+v, %v; want %+v", got, err, want)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestOnboardingFlow(t *testing.T) {
	var m tea.Model = newOnboardingModel("")

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("enter"))
	if got := m.(onboardingModel).step; got != stepURL {
		t.Fatalf("step = %v, want URL", got)
	}

	for _, r := range "nope" {
		m, _ = m.Update(key(string(r)))
	}
	m, _ = m.Update(key("enter"))
	if om := m.(onboardingModel); om.step != stepURL || om.err == "" {
		t.Fatalf("invalid URL accepted: step %v err %q", om.step, om.err)
	}

	om := m.(onboardingModel)
	om.urlInput.SetValue("https://inventory.example.com/")
	m, _ = om.Update(key("enter"))
	m, cmd := m.Update(key("n"))
	if cmd == nil {
		t.Fatal("finishing should quit the program")
	}

	settings := m.(onboardingModel).settings
	want := OnboardingSettings{Completed: true, APIURL: "https://inventory.example.com", SkipSeed: true}
	if settings != want {
		t.Errorf("settings = %+v, want %+v", settings, want)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nSTOCKROOM_TEST_A=\"quoted\"\nSTOCKROOM_TEST_B = plain\nnot a pair\nSTOCKROOM_TEST_C=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("STOCKROOM_TEST_C", "from-env")
	t.Setenv("STOCKROOM_TEST_A", "")
	t.Setenv("STOCKROOM_TEST_B", "")

	loadDotEnv(path)

	if got := os.Getenv("STOCKROOM_TEST_A"); got != "quoted" {
		t.Errorf("A = %q", got)
	}
	if got := os.Getenv("STOCKROOM_TEST_B"); got != "plain" {
		t.Errorf("B = %q", got)
	}
	if got := os.Getenv("STOCKROOM_TEST_C"); got != "from-env" {
		t.Errorf("C = %q, environment should win", got)
	}
}
