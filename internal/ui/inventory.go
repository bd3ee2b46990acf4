package ui

import (
	"stockroom/internal/db"
	"stockroom/internal/forecast"
	"stockroom/internal/model"
	"stockroom/internal/table"
	"stockroom/internal/util"
)

// InventoryModel lists products with their demand forecast for the selected
// window.
type InventoryModel struct {
	items []model.InventoryItem
	days  int
	table *TableView
}

func moneyFormat(_ table.Row, v any) string {
	return util.FormatMoney(v.(float64))
}

func inventoryColumns() []table.Column {
	return []table.Column{
		{Key: "id", Header: "Product ID", Width: 10, DisableHide: true},
		{Key: "name", Header: "Name", Width: 24},
		{Key: "category", Header: "Category", Width: 12},
		{Key: "unitPrice", Header: "Price", Width: 9, Format: moneyFormat},
		{Key: "competitorPrice", Header: "Competitor", Width: 10, Format: moneyFormat},
		{
			Key: "stock", Header: "Stock", Width: 7,
			Format: func(_ table.Row, v any) string {
				return util.FormatQuantity(v.(int))
			},
		},
		{Key: "forecast", Header: "Forecast", Width: 22},
	}
}

func inventoryRows(items []model.InventoryItem) []table.Row {
	rows := make([]table.Row, len(items))
	for i, it := range items {
		rows[i] = table.Row{
			"id":              it.ID,
			"name":            it.Name,
			"category":        it.Category,
			"unitPrice":       it.UnitPrice,
			"competitorPrice": it.CompetitorPrice,
			"stock":           it.CurrentStock,
			"forecast":        it.Forecast,
		}
	}
	return rows
}

// NewInventoryModel creates the inventory list. days is the starting
// forecast window; zero means none.
func NewInventoryModel(days, pageSize int) (*InventoryModel, error) {
	tv, err := NewTableView("Inventory", inventoryColumns(), nil, pageSize, "The catalogue is empty.")
	if err != nil {
		return nil, err
	}
	tv.decorate = func(cell table.Cell, text string) string {
		if cell.Key == "stock" {
			if n, ok := cell.Value.(int); ok && n < db.LowStockThreshold {
				return LowStockStyle.Render(text)
			}
		}
		return text
	}
	return &InventoryModel{days: days, table: tv}, nil
}

// Days is the selected forecast window.
func (m *InventoryModel) Days() int {
	return m.days
}

// SetProducts replaces the catalogue. It reports whether a forecast fetch
// is needed for the current window.
func (m *InventoryModel) SetProducts(products []model.Product) bool {
	m.items = forecast.Rows(products)
	if m.days == 0 {
		m.items = forecast.Clear(m.items)
	}
	m.refresh()
	return m.days > 0
}

// CycleWindow moves to the next forecast window and reports whether a
// fetch is needed for it.
func (m *InventoryModel) CycleWindow() bool {
	m.days = forecast.NextWindow(m.days)
	if m.days == 0 {
		m.items = forecast.Clear(m.items)
	} else {
		m.items = forecast.Pending(m.items)
	}
	m.refresh()
	return m.days > 0
}

// ApplyForecasts merges a fetch result. Results for a window other than the
// selected one are ignored and false is returned.
func (m *InventoryModel) ApplyForecasts(msg model.ForecastsLoadedMsg) bool {
	if msg.Days != m.days {
		return false
	}
	if msg.Err != nil {
		m.items = forecast.Fail(m.items)
	} else {
		m.items = forecast.Merge(m.items, msg.Forecasts)
	}
	m.refresh()
	return true
}

func (m *InventoryModel) refresh() {
	m.table.SetRows(inventoryRows(m.items))
}

// View renders the window selector and the table.
func (m *InventoryModel) View(width, height int) string {
	selector := LabelStyle.Render("Forecast: ") + forecast.WindowLabel(m.days) +
		HelpDescStyle.Render("  (w to change)")
	return selector + "\n" + m.table.View(width, height-1)
}
