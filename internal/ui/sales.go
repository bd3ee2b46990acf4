package ui

import (
	"time"

	"stockroom/internal/model"
	"stockroom/internal/sales"
	"stockroom/internal/table"
	"stockroom/internal/util"
)

// SalesModel lists recorded sales.
type SalesModel struct {
	records []model.SalesRecord
	table   *TableView
}

func salesColumns() []table.Column {
	return []table.Column{
		{Key: "id", Header: "Order", Width: 8, DisableHide: true},
		{
			Key: "date", Header: "Date", Width: 10,
			Format: func(_ table.Row, v any) string {
				return util.FormatDateShort(v.(time.Time))
			},
		},
		{Key: "product", Header: "Product", Width: 22},
		{
			Key: "quantity", Header: "Qty", Width: 5,
			Format: func(_ table.Row, v any) string {
				return util.FormatQuantity(v.(int))
			},
		},
		{Key: "unitPrice", Header: "Price", Width: 9, Format: moneyFormat},
		{
			Key: "discount", Header: "Discount", Width: 8,
			Format: func(_ table.Row, v any) string {
				return util.FormatPercent(v.(float64))
			},
		},
		{
			Key: "promotion", Header: "Promo", Width: 5,
			Format: func(_ table.Row, v any) string {
				return util.FormatYesNo(v.(bool))
			},
		},
		{
			Key: "total", Header: "Total", Width: 10,
			Value: func(r table.Row) any {
				q, _ := r["quantity"].(int)
				p, _ := r["unitPrice"].(float64)
				d, _ := r["discount"].(float64)
				return sales.Total(q, p, d)
			},
			Format: moneyFormat,
		},
	}
}

func salesRows(records []model.SalesRecord) []table.Row {
	rows := make([]table.Row, len(records))
	for i, r := range records {
		product := r.ProductName
		if product == "" {
			product = r.ProductID
		}
		rows[i] = table.Row{
			"id":        r.ID,
			"date":      r.TransactionDate,
			"product":   product,
			"quantity":  r.QuantitySold,
			"unitPrice": r.UnitPrice,
			"discount":  r.Discount,
			"promotion": r.Promotion,
		}
	}
	return rows
}

// NewSalesModel creates the sales list.
func NewSalesModel(records []model.SalesRecord, pageSize int) (*SalesModel, error) {
	tv, err := NewTableView("Sales", salesColumns(), salesRows(records), pageSize, "Press a to record a sale.")
	if err != nil {
		return nil, err
	}
	return &SalesModel{records: records, table: tv}, nil
}

// SetRecords replaces the rows after a reload.
func (m *SalesModel) SetRecords(records []model.SalesRecord) {
	m.records = records
	m.table.SetRows(salesRows(records))
}

// Selected returns the record under the cursor.
func (m *SalesModel) Selected() (model.SalesRecord, bool) {
	id, ok := m.table.SelectedID()
	if !ok {
		return model.SalesRecord{}, false
	}
	for _, r := range m.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.SalesRecord{}, false
}

// View renders the sales list.
func (m *SalesModel) View(width, height int) string {
	return m.table.View(width, height)
}
