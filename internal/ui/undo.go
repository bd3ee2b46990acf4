package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"stockroom/internal/db"
	"stockroom/internal/model"
)

type undoAction struct {
	label string
	undo  func() error
	redo  func() error
}

type undoAppliedMsg struct {
	err       error
	action    undoAction
	direction string // undo, redo
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

func (m *Model) undoCmd() tea.Cmd {
	if len(m.undoStack) == 0 {
		return nil
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return func() tea.Msg {
		err := action.undo()
		return undoAppliedMsg{err: err, action: action, direction: "undo"}
	}
}

func (m *Model) redoCmd() tea.Cmd {
	if len(m.redoStack) == 0 {
		return nil
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return func() tea.Msg {
		err := action.redo()
		return undoAppliedMsg{err: err, action: action, direction: "redo"}
	}
}

func (m *Model) buildContactSaveAction(msg model.ContactSavedMsg) *undoAction {
	noun := kindNoun(msg.After.Kind)
	switch msg.Operation {
	case "insert":
		after := msg.After
		return &undoAction{
			label: noun + " added",
			undo: func() error {
				return db.DeleteContact(m.db, after.ID)
			},
			redo: func() error {
				return db.InsertContactWithID(m.db, after)
			},
		}
	case "update":
		if msg.Before == nil {
			return nil
		}
		before := *msg.Before
		after := msg.After
		return &undoAction{
			label: noun + " updated",
			undo: func() error {
				return db.UpdateContact(m.db, contactToUpdate(before))
			},
			redo: func() error {
				return db.UpdateContact(m.db, contactToUpdate(after))
			},
		}
	default:
		return nil
	}
}

func (m *Model) buildDeleteContactAction(msg model.DeleteContactMsg) undoAction {
	deleted := msg.Deleted
	return undoAction{
		label: kindNoun(deleted.Kind) + " deleted",
		undo: func() error {
			return db.InsertContactWithID(m.db, deleted)
		},
		redo: func() error {
			return db.DeleteContact(m.db, deleted.ID)
		},
	}
}

func (m *Model) buildPurchaseOrderSaveAction(msg model.PurchaseOrderSavedMsg) *undoAction {
	switch msg.Operation {
	case "insert":
		after := msg.After
		return &undoAction{
			label: after.ID + " created",
			undo: func() error {
				return db.DeletePurchaseOrder(m.db, after.ID)
			},
			redo: func() error {
				return db.InsertPurchaseOrderWithID(m.db, after)
			},
		}
	case "update":
		if msg.Before == nil {
			return nil
		}
		before := *msg.Before
		after := msg.After
		return &undoAction{
			label: after.ID + " updated",
			undo: func() error {
				return db.UpdatePurchaseOrder(m.db, purchaseOrderToUpdate(before))
			},
			redo: func() error {
				return db.UpdatePurchaseOrder(m.db, purchaseOrderToUpdate(after))
			},
		}
	default:
		return nil
	}
}

func (m *Model) buildPurchaseOrderStatusAction(msg model.PurchaseOrderStatusMsg) undoAction {
	id, before, after := msg.ID, msg.Before, msg.After
	return undoAction{
		label: fmt.Sprintf("%s marked %s", id, after),
		undo: func() error {
			return db.SetPurchaseOrderStatus(m.db, id, before)
		},
		redo: func() error {
			return db.SetPurchaseOrderStatus(m.db, id, after)
		},
	}
}

func (m *Model) buildDeletePurchaseOrderAction(msg model.DeletePurchaseOrderMsg) undoAction {
	deleted := msg.Deleted
	return undoAction{
		label: deleted.ID + " deleted",
		undo: func() error {
			return db.InsertPurchaseOrderWithID(m.db, deleted)
		},
		redo: func() error {
			return db.DeletePurchaseOrder(m.db, deleted.ID)
		},
	}
}

// buildSalesRecordSaveAction is nil for records created through the REST
// service, which has no delete endpoint.
func (m *Model) buildSalesRecordSaveAction(msg model.SalesRecordSavedMsg) *undoAction {
	if !msg.Local {
		return nil
	}
	rec := msg.Record
	return &undoAction{
		label: rec.ID + " recorded",
		undo: func() error {
			return db.DeleteSalesRecord(m.db, rec.ID)
		},
		redo: func() error {
			return db.InsertSalesRecordWithID(m.db, rec)
		},
	}
}

func (m *Model) buildDeleteSalesRecordAction(msg model.DeleteSalesRecordMsg) undoAction {
	deleted := msg.Deleted
	return undoAction{
		label: deleted.ID + " deleted",
		undo: func() error {
			return db.InsertSalesRecordWithID(m.db, deleted)
		},
		redo: func() error {
			return db.DeleteSalesRecord(m.db, deleted.ID)
		},
	}
}

func (m *Model) buildAccountAction(msg model.AccountSavedMsg) undoAction {
	before, after := msg.Before, msg.After
	return undoAction{
		label: "account updated",
		undo: func() error {
			return db.SaveAccount(m.db, before)
		},
		redo: func() error {
			return db.SaveAccount(m.db, after)
		},
	}
}

func (m *Model) buildProfileAction(msg model.ProfileSavedMsg) undoAction {
	before, after := msg.Before, msg.After
	return undoAction{
		label: "profile updated",
		undo: func() error {
			return db.SaveProfile(m.db, before)
		},
		redo: func() error {
			return db.SaveProfile(m.db, after)
		},
	}
}

func (m *Model) reloadCurrentTopLevelCmd() tea.Cmd {
	switch m.screen {
	case model.ScreenInventory:
		return m.loadInventoryCmds()
	case model.ScreenSales, model.ScreenSalesForm:
		return loadSalesCmd(m.source)
	case model.ScreenPurchaseOrders, model.ScreenPurchaseOrderForm:
		return loadPurchaseOrdersCmd(m.db)
	case model.ScreenPurchaseOrderDetail:
		if m.poDetail != nil {
			return tea.Batch(loadPurchaseOrdersCmd(m.db), loadPurchaseOrderDetailCmd(m.db, m.poDetail.order.ID))
		}
		return loadPurchaseOrdersCmd(m.db)
	case model.ScreenVendors:
		return loadContactsCmd(m.db, model.KindVendor)
	case model.ScreenCustomers:
		return loadContactsCmd(m.db, model.KindCustomer)
	case model.ScreenContactForm:
		if m.contactForm != nil {
			return loadContactsCmd(m.db, m.contactForm.kind)
		}
		return nil
	case model.ScreenAccount, model.ScreenAccountForm, model.ScreenProfileForm:
		return loadSettingsCmd(m.db)
	default:
		return loadDashboardCmd(m.db, m.source)
	}
}

func contactToUpdate(c model.Contact) model.UpdateContact {
	return model.UpdateContact{
		ID:      c.ID,
		Company: c.Company,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Notes:   c.Notes,
	}
}

func purchaseOrderToUpdate(p model.PurchaseOrder) model.NewPurchaseOrder {
	return model.NewPurchaseOrder{
		ID:                   p.ID,
		SupplierName:         p.SupplierName,
		OrderDate:            p.OrderDate,
		ExpectedDeliveryDate: p.ExpectedDeliveryDate,
		Status:               p.Status,
		Items:                p.Items,
		Notes:                p.Notes,
	}
}

func (m *Model) applyUndoResult(msg undoAppliedMsg) tea.Cmd {
	if msg.err != nil {
		return m.fail(fmt.Sprintf("%s failed: %v", msg.direction, msg.err))
	}

	var text string
	if msg.direction == "undo" {
		m.redoStack = append(m.redoStack, msg.action)
		text = "Undid: " + msg.action.label
	} else {
		m.undoStack = append(m.undoStack, msg.action)
		text = "Redid: " + msg.action.label
	}
	return tea.Batch(m.notify(text), m.reloadCurrentTopLevelCmd())
}
