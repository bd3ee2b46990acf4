package ui

import (
	"time"

	"stockroom/internal/model"
	"stockroom/internal/table"
	"stockroom/internal/util"
)

// PurchaseOrdersModel lists purchase orders.
type PurchaseOrdersModel struct {
	orders []model.PurchaseOrder
	table  *TableView
}

func dateFormat(_ table.Row, v any) string {
	return util.FormatDateShort(v.(time.Time))
}

func statusBadge(status string) string {
	if status == model.StatusReceived {
		return ReceivedBadgeStyle.Render(status)
	}
	return OrderedBadgeStyle.Render(status)
}

func purchaseOrderColumns() []table.Column {
	return []table.Column{
		{Key: "id", Header: "PO", Width: 7, DisableHide: true},
		{Key: "supplier", Header: "Supplier", Width: 20},
		{Key: "orderDate", Header: "Ordered", Width: 10, Format: dateFormat},
		{Key: "delivery", Header: "Delivery", Width: 10, Format: dateFormat},
		{Key: "status", Header: "Status", Width: 9},
		{
			Key: "items", Header: "Items", Width: 22, DisableSort: true,
			Format: func(r table.Row, _ any) string {
				items, _ := r["items"].([]model.POItem)
				return model.PurchaseOrder{Items: items}.ItemsSummary()
			},
		},
		{
			Key: "total", Header: "Total", Width: 11, Format: moneyFormat,
			Value: func(r table.Row) any {
				items, _ := r["items"].([]model.POItem)
				return model.PurchaseOrder{Items: items}.Total()
			},
		},
		{Key: "notes", Header: "Notes", Width: 18},
	}
}

func purchaseOrderRows(orders []model.PurchaseOrder) []table.Row {
	rows := make([]table.Row, len(orders))
	for i, o := range orders {
		row := table.Row{
			"id":        o.ID,
			"supplier":  o.SupplierName,
			"orderDate": o.OrderDate,
			"status":    o.Status,
			"items":     o.Items,
			"notes":     nilIfEmpty(o.Notes),
		}
		if !o.ExpectedDeliveryDate.IsZero() {
			row["delivery"] = o.ExpectedDeliveryDate
		}
		rows[i] = row
	}
	return rows
}

// NewPurchaseOrdersModel creates the purchase order list.
func NewPurchaseOrdersModel(orders []model.PurchaseOrder, pageSize int) (*PurchaseOrdersModel, error) {
	tv, err := NewTableView("Purchase Orders", purchaseOrderColumns(), purchaseOrderRows(orders), pageSize,
		"Press a to create a purchase order.")
	if err != nil {
		return nil, err
	}
	tv.decorate = func(cell table.Cell, text string) string {
		if cell.Key == "status" {
			return statusBadge(text)
		}
		return text
	}
	return &PurchaseOrdersModel{orders: orders, table: tv}, nil
}

// SetOrders replaces the rows after a reload.
func (m *PurchaseOrdersModel) SetOrders(orders []model.PurchaseOrder) {
	m.orders = orders
	m.table.SetRows(purchaseOrderRows(orders))
}

// Selected returns the order under the cursor.
func (m *PurchaseOrdersModel) Selected() (model.PurchaseOrder, bool) {
	id, ok := m.table.SelectedID()
	if !ok {
		return model.PurchaseOrder{}, false
	}
	for _, o := range m.orders {
		if o.ID == id {
			return o, true
		}
	}
	return model.PurchaseOrder{}, false
}

// View renders the purchase order list.
func (m *PurchaseOrdersModel) View(width, height int) string {
	return m.table.View(width, height)
}
