package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// toastTTL is how long a notice stays on screen.
const toastTTL = 4 * time.Second

type toastKind int

const (
	toastInfo toastKind = iota
	toastError
)

type toast struct {
	kind toastKind
	text string
	seq  int
}

type toastExpiredMsg struct {
	seq int
}

// notify shows an info toast and schedules its expiry.
func (m *Model) notify(text string) tea.Cmd {
	return m.showToast(toastInfo, text)
}

// fail shows an error toast and schedules its expiry.
func (m *Model) fail(text string) tea.Cmd {
	return m.showToast(toastError, text)
}

func (m *Model) showToast(kind toastKind, text string) tea.Cmd {
	m.toastSeq++
	seq := m.toastSeq
	m.toast = &toast{kind: kind, text: text, seq: seq}
	return tea.Tick(toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// expireToast clears the toast unless a newer one replaced it.
func (m *Model) expireToast(msg toastExpiredMsg) {
	if m.toast != nil && m.toast.seq == msg.seq {
		m.toast = nil
	}
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	if m.toast.kind == toastError {
		return ErrorStyle.Width(m.width).Render("Error: " + m.toast.text)
	}
	return SuccessStyle.Width(m.width).Render(m.toast.text)
}

func (m Model) toastHeight() int {
	if m.toast == nil {
		return 0
	}
	return lipgloss.Height(m.renderToast())
}
