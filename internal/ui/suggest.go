package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"

	"stockroom/internal/util"
)

const maxSuggestions = 6

// suggestions is the dropdown under an input that completes from a known
// list of names.
type suggestions struct {
	options []string
	matches []string
	cursor  int
	open    bool
}

func (s *suggestions) setOptions(options []string) {
	s.options = options
}

// update recomputes the matches for query. The dropdown closes when the
// query is empty or already names an option exactly.
func (s *suggestions) update(query string) {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	s.matches = s.matches[:0]
	s.cursor = 0
	if q == "" {
		s.open = false
		return
	}
	for _, o := range s.options {
		f := fold.String(o)
		if f == q {
			s.open = false
			s.matches = s.matches[:0]
			return
		}
		if strings.Contains(f, q) && len(s.matches) < maxSuggestions {
			s.matches = append(s.matches, o)
		}
	}
	s.open = len(s.matches) > 0
}

func (s *suggestions) close() {
	s.open = false
}

// handleKey moves through or picks from the open dropdown. handled is false
// for keys the dropdown does not use.
func (s *suggestions) handleKey(msg tea.KeyMsg) (picked string, handled bool) {
	if !s.open {
		return "", false
	}
	switch msg.String() {
	case "ctrl+n":
		if s.cursor < len(s.matches)-1 {
			s.cursor++
		}
		return "", true
	case "ctrl+p":
		if s.cursor > 0 {
			s.cursor--
		}
		return "", true
	case "enter":
		s.open = false
		return s.matches[s.cursor], true
	case "esc":
		s.open = false
		return "", true
	}
	return "", false
}

func (s *suggestions) view(width int) string {
	if !s.open {
		return ""
	}
	var items []string
	for i, name := range s.matches {
		style := NormalRowStyle
		if i == s.cursor {
			style = SelectedRowStyle
		}
		items = append(items, style.Width(max(10, width-4)).Render(util.TruncateString(name, max(8, width-6))))
	}
	return BorderStyle.Width(width).Render(strings.Join(items, "\n"))
}

// lookupFold finds the option equal to name ignoring case.
func lookupFold(options map[string]string, name string) (string, bool) {
	v, ok := options[cases.Fold().String(strings.TrimSpace(name))]
	return v, ok
}
