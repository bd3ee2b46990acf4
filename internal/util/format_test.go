package util

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := map[float64]string{
		0:           "$0.00",
		4.5:         "$4.50",
		1200:        "$1,200.00",
		6610:        "$6,610.00",
		1234567.891: "$1,234,567.89",
		-25:         "-$25.00",
	}
	for in, want := range tests {
		if got := FormatMoney(in); got != want {
			t.Errorf("FormatMoney(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC), "May 10th, 2025"},
		{time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), "June 1st, 2025"},
		{time.Date(2025, 4, 22, 0, 0, 0, 0, time.UTC), "April 22nd, 2025"},
		{time.Date(2025, 5, 23, 0, 0, 0, 0, time.UTC), "May 23rd, 2025"},
		{time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC), "May 11th, 2025"},
		{time.Time{}, ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDateHuman(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	tests := []struct {
		in   time.Time
		want string
	}{
		{now, "Today"},
		{now.AddDate(0, 0, -1), "Yesterday"},
		{now.AddDate(0, 0, -3), "3d ago"},
		{time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "Jan 15"},
		{time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "Jan 15 '24"},
		{time.Time{}, "Never"},
	}
	for _, tt := range tests {
		if got := FormatDateHuman(tt.in, now); got != tt.want {
			t.Errorf("FormatDateHuman(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAgo(t *testing.T) {
	now := time.Date(2025, 5, 10, 15, 0, 0, 0, time.UTC)
	if got := FormatAgo(now.Add(-3*24*time.Hour), now); got != "3 days ago" {
		t.Errorf("FormatAgo() = %q", got)
	}
	if got := FormatAgo(time.Time{}, now); got != "never" {
		t.Errorf("FormatAgo(zero) = %q", got)
	}
}

func TestSmallFormatters(t *testing.T) {
	if got := FormatPercent(10); got != "10%" {
		t.Errorf("FormatPercent(10) = %q", got)
	}
	if got := FormatPercent(12.5); got != "12.5%" {
		t.Errorf("FormatPercent(12.5) = %q", got)
	}
	if got := FormatQuantity(12000); got != "12,000" {
		t.Errorf("FormatQuantity() = %q", got)
	}
	if FormatYesNo(true) != "Yes" || FormatYesNo(false) != "No" {
		t.Error("FormatYesNo")
	}
}

func TestParseDateInput(t *testing.T) {
	tests := map[string]string{
		"2025-05-10":   "2025-05-10",
		"May 10, 2025": "2025-05-10",
		"5/10/2025":    "2025-05-10",
		"05/10/2025":   "2025-05-10",
		"  ":           "",
	}
	for in, want := range tests {
		got, err := ParseDateInput(in)
		if err != nil || got != want {
			t.Errorf("ParseDateInput(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseDateInput("tomorrow"); err == nil {
		t.Error("ParseDateInput(tomorrow) should fail")
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Desk Chair", 20, "Desk Chair"},
		{"Office Essentials", 10, "Office ..."},
		{"Office", 2, "Of"},
	}
	for _, tt := range tests {
		if got := TruncateString(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
	if got := PadRight("ab", 4); got != "ab  " {
		t.Errorf("PadRight() = %q", got)
	}
}
