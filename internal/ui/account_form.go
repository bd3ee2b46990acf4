package ui

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stockroom/internal/db"
	"stockroom/internal/model"
	"stockroom/internal/util"
	"stockroom/internal/validate"
)

// AccountFormModel edits the account settings.
type AccountFormModel struct {
	db     *sql.DB
	before model.Account
	fields fieldSet
	now    time.Time
}

// NewAccountFormModel creates the form filled from the current account.
func NewAccountFormModel(database *sql.DB, current model.Account, now time.Time) *AccountFormModel {
	fs := newFieldSet(
		newField("name", "Name *", "Your name", 100),
		newField("dateOfBirth", "Date of birth *", "YYYY-MM-DD", 10),
	)
	fs.setValue("name", current.Name)
	fs.setValue("dateOfBirth", util.FormatDateShort(current.DateOfBirth))
	return &AccountFormModel{db: database, before: current, fields: fs, now: now}
}

// Update handles key input.
func (m *AccountFormModel) Update(msg tea.KeyMsg) tea.Cmd {
	cmd, action := m.fields.handleKey(msg)
	if action == formSave {
		return m.save()
	}
	return cmd
}

func (m *AccountFormModel) save() tea.Cmd {
	after, errs := validate.Account(m.fields.value("name"), m.fields.value("dateOfBirth"), m.now)
	m.fields.errs = errs
	if errs.Len() > 0 {
		m.fields.focusFirstError()
		return nil
	}
	database, before := m.db, m.before
	return func() tea.Msg {
		if err := db.SaveAccount(database, after); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.AccountSavedMsg{Before: before, After: after}
	}
}

// View renders the form.
func (m *AccountFormModel) View(width, height int) string {
	return renderFormPanel("Edit account", m.fields.view(), "", width, height)
}

// ProfileFormModel edits the public profile.
type ProfileFormModel struct {
	db     *sql.DB
	before model.Profile
	fields fieldSet
}

// NewProfileFormModel creates the form filled from the current profile.
func NewProfileFormModel(database *sql.DB, current model.Profile) *ProfileFormModel {
	fs := newFieldSet(
		newField("firstName", "First name *", "", 100),
		newField("lastName", "Last name *", "", 100),
		newField("bio", fmt.Sprintf("Bio (max %d characters)", validate.MaxBioLength), "", validate.MaxBioLength+50),
		newField("emails", "Emails * (comma separated)", "me@example.com, work@example.com", 500),
		newField("picture", "Picture (PNG or JPEG path)", "~/Pictures/me.png", 300),
	)
	fs.setValue("firstName", current.FirstName)
	fs.setValue("lastName", current.LastName)
	fs.setValue("bio", current.Bio)
	fs.setValue("emails", strings.Join(current.Emails, ", "))
	fs.setValue("picture", current.PicturePath)
	return &ProfileFormModel{db: database, before: current, fields: fs}
}

// Update handles key input.
func (m *ProfileFormModel) Update(msg tea.KeyMsg) tea.Cmd {
	cmd, action := m.fields.handleKey(msg)
	if action == formSave {
		return m.save()
	}
	return cmd
}

// splitEmailList splits on commas. Blank entries are kept so they are
// reported, but a blank list is empty.
func splitEmailList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (m *ProfileFormModel) profile() model.Profile {
	return model.Profile{
		FirstName:   strings.TrimSpace(m.fields.value("firstName")),
		LastName:    strings.TrimSpace(m.fields.value("lastName")),
		Bio:         strings.TrimSpace(m.fields.value("bio")),
		Emails:      splitEmailList(m.fields.value("emails")),
		PicturePath: expandHome(strings.TrimSpace(m.fields.value("picture"))),
	}
}

func (m *ProfileFormModel) save() tea.Cmd {
	after := m.profile()
	errs := validate.Profile(after)
	m.fields.errs = errs
	if errs.Len() > 0 {
		m.fields.focusFirstError()
		if strings.HasPrefix(errs.Fields()[0], "emails.") {
			m.fields.focus(m.fields.index("emails"))
		}
		return nil
	}
	database, before := m.db, m.before
	return func() tea.Msg {
		if err := db.SaveProfile(database, after); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ProfileSavedMsg{Before: before, After: after}
	}
}

// View renders the form. Per-address email errors are listed under the
// fields.
func (m *ProfileFormModel) View(width, height int) string {
	var footer []string
	for _, k := range m.fields.errs.Fields() {
		if !strings.HasPrefix(k, "emails.") {
			continue
		}
		var n int
		fmt.Sscanf(strings.TrimPrefix(k, "emails."), "%d", &n)
		footer = append(footer, FieldErrorStyle.Render(fmt.Sprintf("Email %d: %s", n+1, m.fields.errs.Get(k))))
	}
	return renderFormPanel("Edit profile", m.fields.view(), strings.Join(footer, "\n"), width, height)
}
