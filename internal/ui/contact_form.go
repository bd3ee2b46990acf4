package ui

import (
	"database/sql"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"stockroom/internal/db"
	"stockroom/internal/model"
	"stockroom/internal/validate"
)

// ContactFormModel creates or edits a vendor or customer.
type ContactFormModel struct {
	db        *sql.DB
	kind      string
	contactID int64
	fields    fieldSet
}

// NewContactFormModel creates the form for one contact kind.
func NewContactFormModel(database *sql.DB, kind string) *ContactFormModel {
	return &ContactFormModel{
		db:   database,
		kind: kind,
		fields: newFieldSet(
			newField("company", "Company *", "Acme Supply Co.", 100),
			newField("name", "Contact name *", "Jane Doe", 100),
			newField("email", "Email", "jane@example.com", 100),
			newField("phone", "Phone", "555-0100", 30),
			newField("notes", "Notes", "", 500),
		),
	}
}

// LoadContact fills the form for editing.
func (m *ContactFormModel) LoadContact(c model.Contact) {
	m.contactID = c.ID
	m.kind = c.Kind
	m.fields.setValue("company", c.Company)
	m.fields.setValue("name", c.Name)
	m.fields.setValue("email", c.Email)
	m.fields.setValue("phone", c.Phone)
	m.fields.setValue("notes", c.Notes)
}

// Update handles key input.
func (m *ContactFormModel) Update(msg tea.KeyMsg) tea.Cmd {
	cmd, action := m.fields.handleKey(msg)
	if action == formSave {
		return m.save()
	}
	return cmd
}

func (m *ContactFormModel) save() tea.Cmd {
	c := model.NewContact{
		Kind:    m.kind,
		Company: strings.TrimSpace(m.fields.value("company")),
		Name:    strings.TrimSpace(m.fields.value("name")),
		Email:   strings.TrimSpace(m.fields.value("email")),
		Phone:   strings.TrimSpace(m.fields.value("phone")),
		Notes:   strings.TrimSpace(m.fields.value("notes")),
	}
	errs := validate.Contact(c)
	m.fields.errs = errs
	if errs.Len() > 0 {
		m.fields.focusFirstError()
		return nil
	}

	database := m.db
	id := m.contactID
	noun := kindNoun(m.kind)
	return func() tea.Msg {
		if id == 0 {
			newID, err := db.InsertContact(database, c)
			if err != nil {
				return model.ErrorMsg{Err: err}
			}
			after, err := db.GetContact(database, newID)
			if err != nil {
				return model.ErrorMsg{Err: fmt.Errorf("failed to load saved %s: %w", noun, err)}
			}
			return model.ContactSavedMsg{ID: newID, Operation: "insert", After: after}
		}

		before, err := db.GetContact(database, id)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load %s before update: %w", noun, err)}
		}
		err = db.UpdateContact(database, model.UpdateContact{
			ID:      id,
			Company: c.Company,
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Notes:   c.Notes,
		})
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		after, err := db.GetContact(database, id)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load saved %s: %w", noun, err)}
		}
		return model.ContactSavedMsg{ID: id, Operation: "update", Before: &before, After: after}
	}
}

// View renders the form.
func (m *ContactFormModel) View(width, height int) string {
	title := "New " + kindNoun(m.kind)
	if m.contactID != 0 {
		title = "Edit " + kindNoun(m.kind)
	}
	return renderFormPanel(title, m.fields.view(), "", width, height)
}
