package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockroom/internal/model"
	"stockroom/internal/util"
)

// PurchaseOrderDetailModel shows one purchase order and its line items in a
// scrollable viewport.
type PurchaseOrderDetailModel struct {
	order    model.PurchaseOrder
	viewport viewport.Model
}

// NewPurchaseOrderDetailModel creates a detail view.
func NewPurchaseOrderDetailModel(order model.PurchaseOrder) *PurchaseOrderDetailModel {
	m := &PurchaseOrderDetailModel{order: order, viewport: viewport.New(72, 16)}
	m.viewport.SetContent(m.body(72))
	return m
}

// Update scrolls the viewport.
func (m *PurchaseOrderDetailModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

func (m *PurchaseOrderDetailModel) body(width int) string {
	o := m.order

	var b strings.Builder
	b.WriteString(renderField("Supplier", o.SupplierName))
	b.WriteString(renderField("Status", statusBadge(o.Status)))
	b.WriteString(renderField("Order date", util.FormatDate(o.OrderDate)))
	b.WriteString(renderField("Expected delivery", util.FormatDate(o.ExpectedDeliveryDate)))
	b.WriteString(renderField("Notes", o.Notes))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Items"))
	b.WriteString("\n")

	nameWidth := max(12, width-40)
	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%s %8s %11s %12s",
		util.PadRight("ITEM", nameWidth), "QTY", "PRICE", "SUBTOTAL")))
	b.WriteString("\n")
	for _, it := range o.Items {
		b.WriteString(fmt.Sprintf("%s %8s %11s %12s\n",
			util.PadRight(util.TruncateString(it.Name, nameWidth), nameWidth),
			util.FormatQuantity(it.Quantity),
			util.FormatMoney(it.Price),
			util.FormatMoney(it.Subtotal())))
	}
	b.WriteString(HelpDescStyle.Render(strings.Repeat("─", max(0, nameWidth+34))))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %33s", util.PadRight("Total", nameWidth), LabelStyle.Render(util.FormatMoney(o.Total()))))
	return b.String()
}

// View renders the detail panel.
func (m *PurchaseOrderDetailModel) View(width, height int) string {
	innerW := max(20, width-8)
	innerH := max(3, height-6)
	m.viewport.Width = innerW
	m.viewport.Height = innerH
	m.viewport.SetContent(m.body(innerW))

	title := LabelStyle.Render(m.order.ID)
	scroll := HelpDescStyle.Render(fmt.Sprintf("%3.f%%", m.viewport.ScrollPercent()*100))
	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.viewport.View(), scroll))
}

func renderField(label, value string) string {
	if value == "" {
		value = HelpDescStyle.Render("—")
	}
	return LabelStyle.Render(label+":") + " " + value + "\n"
}
