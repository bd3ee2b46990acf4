package ui

import (
	"strconv"
	"time"

	"stockroom/internal/model"
	"stockroom/internal/table"
	"stockroom/internal/util"
)

// ContactsModel is the vendors or customers list.
type ContactsModel struct {
	kind     string
	contacts []model.Contact
	table    *TableView
}

func kindTitle(kind string) string {
	if kind == model.KindCustomer {
		return "Customers"
	}
	return "Vendors"
}

func kindNoun(kind string) string {
	if kind == model.KindCustomer {
		return "customer"
	}
	return "vendor"
}

func contactColumns() []table.Column {
	return []table.Column{
		{Key: "company", Header: "Company", Width: 22},
		{Key: "name", Header: "Contact", Width: 18},
		{Key: "email", Header: "Email", Width: 24},
		{Key: "phone", Header: "Phone", Width: 12},
		{Key: "notes", Header: "Notes", Width: 20},
		{
			Key: "createdAt", Header: "Added", Width: 12,
			Format: func(_ table.Row, v any) string {
				return util.FormatDateShort(v.(time.Time))
			},
		},
	}
}

func contactRows(contacts []model.Contact) []table.Row {
	rows := make([]table.Row, len(contacts))
	for i, c := range contacts {
		row := table.Row{
			"id":      c.ID,
			"company": c.Company,
			"name":    c.Name,
			"email":   nilIfEmpty(c.Email),
			"phone":   nilIfEmpty(c.Phone),
			"notes":   nilIfEmpty(c.Notes),
		}
		if !c.CreatedAt.IsZero() {
			row["createdAt"] = c.CreatedAt
		}
		rows[i] = row
	}
	return rows
}

// nilIfEmpty keeps blank optional fields out of the value space so they sort
// last.
func nilIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// NewContactsModel builds the list for one contact kind.
func NewContactsModel(kind string, contacts []model.Contact, pageSize int) (*ContactsModel, error) {
	tv, err := NewTableView(kindTitle(kind), contactColumns(), contactRows(contacts), pageSize,
		"Press a to add a "+kindNoun(kind)+".")
	if err != nil {
		return nil, err
	}
	return &ContactsModel{kind: kind, contacts: contacts, table: tv}, nil
}

// SetContacts replaces the rows after a reload.
func (m *ContactsModel) SetContacts(contacts []model.Contact) {
	m.contacts = contacts
	m.table.SetRows(contactRows(contacts))
}

// Selected returns the contact under the cursor.
func (m *ContactsModel) Selected() (model.Contact, bool) {
	id, ok := m.table.SelectedID()
	if !ok {
		return model.Contact{}, false
	}
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return model.Contact{}, false
	}
	for _, c := range m.contacts {
		if c.ID == n {
			return c, true
		}
	}
	return model.Contact{}, false
}

// View renders the contact list.
func (m *ContactsModel) View(width, height int) string {
	return m.table.View(width, height)
}
