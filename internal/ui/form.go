package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockroom/internal/model"
	"stockroom/internal/validate"
)

type formAction int

const (
	formNone formAction = iota
	formMoved
	formSave
	formCancel
)

// formField is one labelled input. key matches the validate field name.
type formField struct {
	key   string
	label string
	input textinput.Model
}

func newField(key, label, placeholder string, limit int) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	return formField{key: key, label: label, input: in}
}

// fieldSet holds a form's inputs, focus and inline errors.
type fieldSet struct {
	fields  []formField
	focused int
	errs    *validate.FieldErrors
	keys    FormKeyMap
}

func newFieldSet(fields ...formField) fieldSet {
	fs := fieldSet{fields: fields, keys: DefaultFormKeyMap()}
	if len(fs.fields) > 0 {
		fs.fields[0].input.Focus()
	}
	return fs
}

func (f *fieldSet) index(key string) int {
	for i, fd := range f.fields {
		if fd.key == key {
			return i
		}
	}
	return -1
}

func (f *fieldSet) value(key string) string {
	if i := f.index(key); i >= 0 {
		return f.fields[i].input.Value()
	}
	return ""
}

func (f *fieldSet) setValue(key, v string) {
	if i := f.index(key); i >= 0 {
		f.fields[i].input.SetValue(v)
	}
}

func (f *fieldSet) focusedKey() string {
	return f.fields[f.focused].key
}

func (f *fieldSet) focus(i int) {
	f.fields[f.focused].input.Blur()
	f.focused = i
	f.fields[f.focused].input.Focus()
}

func (f *fieldSet) nextField() {
	f.focus((f.focused + 1) % len(f.fields))
}

func (f *fieldSet) prevField() {
	i := f.focused - 1
	if i < 0 {
		i = len(f.fields) - 1
	}
	f.focus(i)
}

// focusFirstError moves focus to the first field with an error.
func (f *fieldSet) focusFirstError() {
	for _, k := range f.errs.Fields() {
		if i := f.index(k); i >= 0 {
			f.focus(i)
			return
		}
	}
}

// handleKey applies the shared form bindings and otherwise feeds the
// focused input.
func (f *fieldSet) handleKey(msg tea.KeyMsg) (tea.Cmd, formAction) {
	switch {
	case key.Matches(msg, f.keys.Cancel):
		return func() tea.Msg { return model.FormCancelledMsg{} }, formCancel
	case key.Matches(msg, f.keys.Save):
		return nil, formSave
	case key.Matches(msg, f.keys.NextField):
		f.nextField()
		return nil, formMoved
	case key.Matches(msg, f.keys.PrevField):
		f.prevField()
		return nil, formMoved
	}

	var cmd tea.Cmd
	f.fields[f.focused].input, cmd = f.fields[f.focused].input.Update(msg)
	return cmd, formNone
}

// view renders every field with its inline error.
func (f *fieldSet) view() []string {
	out := make([]string, 0, len(f.fields))
	for i, fd := range f.fields {
		out = append(out, renderFormField(fd.label, fd.input, i == f.focused, f.errs.Get(fd.key)))
	}
	return out
}

func renderFormField(label string, input textinput.Model, focused bool, errMsg string) string {
	style := BorderStyle
	switch {
	case errMsg != "":
		style = ErrorBorderStyle
	case focused:
		style = ActiveBorderStyle
	}

	parts := []string{LabelStyle.Render(label), input.View()}
	if errMsg != "" {
		parts = append(parts, FieldErrorStyle.Render(errMsg))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func renderFormPanel(title string, fields []string, footer string, width, height int) string {
	body := strings.Join(fields, "\n")
	if footer != "" {
		body += "\n\n" + footer
	}
	return PanelStyle.
		Width(max(20, width-4)).
		Height(max(5, height-4)).
		Render(lipgloss.JoinVertical(lipgloss.Left, LabelStyle.Render(title), "", body))
}
