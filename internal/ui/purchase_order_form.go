package ui

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockroom/internal/db"
	"stockroom/internal/model"
	"stockroom/internal/util"
	"stockroom/internal/validate"
)

// PurchaseOrderFormModel creates or edits a purchase order.
type PurchaseOrderFormModel struct {
	db      *sql.DB
	orderID string
	fields  fieldSet
	suggest suggestions
}

// NewPurchaseOrderFormModel creates the form. suppliers feeds the supplier
// suggestions.
func NewPurchaseOrderFormModel(database *sql.DB, suppliers []string, now time.Time) *PurchaseOrderFormModel {
	fs := newFieldSet(
		newField("supplierName", "Supplier *", "Start typing a vendor...", 100),
		newField("orderDate", "Order date *", "YYYY-MM-DD", 10),
		newField("expectedDeliveryDate", "Expected delivery (optional)", "YYYY-MM-DD", 10),
		newField("status", "Status", model.StatusOrdered+" or "+model.StatusReceived, 8),
		newField("items", "Items * (name:qty:price, comma separated)", "Desk Lamp:10:24.99, Chair:4:89", 500),
		newField("notes", "Notes", "", 500),
	)
	fs.setValue("orderDate", now.Format(util.ISODate))
	fs.setValue("status", model.StatusOrdered)

	m := &PurchaseOrderFormModel{db: database, fields: fs}
	m.suggest.setOptions(suppliers)
	return m
}

// LoadOrder fills the form for editing.
func (m *PurchaseOrderFormModel) LoadOrder(o model.PurchaseOrder) {
	m.orderID = o.ID
	m.fields.setValue("supplierName", o.SupplierName)
	m.fields.setValue("orderDate", util.FormatDateShort(o.OrderDate))
	m.fields.setValue("expectedDeliveryDate", util.FormatDateShort(o.ExpectedDeliveryDate))
	m.fields.setValue("status", o.Status)
	m.fields.setValue("items", validate.FormatItems(o.Items))
	m.fields.setValue("notes", o.Notes)
}

// Update handles all messages.
func (m *PurchaseOrderFormModel) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if m.fields.focusedKey() == "supplierName" {
		if picked, handled := m.suggest.handleKey(keyMsg); handled {
			if picked != "" {
				m.fields.setValue("supplierName", picked)
				m.fields.nextField()
			}
			return nil
		}
	}

	cmd, action := m.fields.handleKey(keyMsg)
	switch action {
	case formSave:
		return m.save()
	case formMoved, formCancel:
		m.suggest.close()
		return cmd
	}
	if m.fields.focusedKey() == "supplierName" {
		m.suggest.update(m.fields.value("supplierName"))
	}
	return cmd
}

func (m *PurchaseOrderFormModel) save() tea.Cmd {
	po, errs := validate.PurchaseOrder(validate.PurchaseOrderInput{
		ID:                   m.orderID,
		SupplierName:         m.fields.value("supplierName"),
		OrderDate:            m.fields.value("orderDate"),
		ExpectedDeliveryDate: m.fields.value("expectedDeliveryDate"),
		Status:               normalizeStatus(m.fields.value("status")),
		Items:                m.fields.value("items"),
		Notes:                m.fields.value("notes"),
	})
	m.fields.errs = errs
	if errs.Len() > 0 {
		m.fields.focusFirstError()
		return nil
	}

	database := m.db
	return func() tea.Msg {
		if po.ID == "" {
			id, err := db.InsertPurchaseOrder(database, po)
			if err != nil {
				return model.ErrorMsg{Err: err}
			}
			after, err := db.GetPurchaseOrder(database, id)
			if err != nil {
				return model.ErrorMsg{Err: fmt.Errorf("failed to load saved purchase order: %w", err)}
			}
			return model.PurchaseOrderSavedMsg{ID: id, Operation: "insert", After: after}
		}

		before, err := db.GetPurchaseOrder(database, po.ID)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load purchase order before update: %w", err)}
		}
		if err := db.UpdatePurchaseOrder(database, po); err != nil {
			return model.ErrorMsg{Err: err}
		}
		after, err := db.GetPurchaseOrder(database, po.ID)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load saved purchase order: %w", err)}
		}
		return model.PurchaseOrderSavedMsg{ID: po.ID, Operation: "update", Before: &before, After: after}
	}
}

// normalizeStatus accepts any casing of a known status.
func normalizeStatus(s string) string {
	for _, st := range []string{model.StatusOrdered, model.StatusReceived} {
		if strings.EqualFold(strings.TrimSpace(s), st) {
			return st
		}
	}
	return s
}

// View renders the form.
func (m *PurchaseOrderFormModel) View(width, height int) string {
	title := "New purchase order"
	if m.orderID != "" {
		title = "Edit " + m.orderID
	}

	fields := m.fields.view()
	if i := m.fields.index("supplierName"); i >= 0 && m.fields.focused == i && m.suggest.open {
		fields[i] = lipgloss.JoinVertical(lipgloss.Left, fields[i], m.suggest.view(min(50, width-8)))
	}

	var footer string
	if items, msg := validate.ParseItems(m.fields.value("items")); msg == "" {
		footer = LabelStyle.Render("Total: ") + util.FormatMoney(model.PurchaseOrder{Items: items}.Total())
	}
	return renderFormPanel(title, fields, footer, width, height)
}
