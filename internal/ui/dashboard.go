package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"stockroom/internal/db"
	"stockroom/internal/model"
	"stockroom/internal/sales"
	"stockroom/internal/util"
)

// DashboardModel shows summary cards, low stock and recent sales.
type DashboardModel struct {
	stats    model.DashboardStats
	lowStock []model.Product
	recent   []model.SalesRecord
	now      time.Time
}

// NewDashboardModel creates the dashboard from a loaded summary.
func NewDashboardModel(msg model.DashboardLoadedMsg, now time.Time) *DashboardModel {
	return &DashboardModel{
		stats:    msg.Stats,
		lowStock: msg.LowStock,
		recent:   msg.Recent,
		now:      now,
	}
}

const dashboardListLen = 5

// summarize replaces the catalogue and sales figures in stats with ones
// computed from fetched data.
func summarize(stats model.DashboardStats, products []model.Product, records []model.SalesRecord) model.DashboardStats {
	stats.Products = len(products)
	stats.LowStock = len(lowStock(products, len(products)))
	stats.SalesCount = len(records)
	stats.Revenue = 0
	stats.LastSale = time.Time{}
	for _, r := range records {
		stats.Revenue += sales.RecordTotal(r)
		if r.TransactionDate.After(stats.LastSale) {
			stats.LastSale = r.TransactionDate
		}
	}
	return stats
}

// lowStock returns up to n products below the low stock threshold, lowest
// first.
func lowStock(products []model.Product, n int) []model.Product {
	var out []model.Product
	for _, p := range products {
		if p.CurrentStock < db.LowStockThreshold {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Product) int {
		return cmp.Compare(a.CurrentStock, b.CurrentStock)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// recentSales returns the n latest sales, newest first.
func recentSales(records []model.SalesRecord, n int) []model.SalesRecord {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b model.SalesRecord) int {
		return b.TransactionDate.Compare(a.TransactionDate)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func renderCard(title, value, sub string) string {
	lines := []string{LabelStyle.Render(title), TableHeaderStyle.Render(value)}
	if sub != "" {
		lines = append(lines, HelpDescStyle.Render(sub))
	}
	return CardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// View renders the dashboard.
func (m *DashboardModel) View(width, height int) string {
	s := m.stats

	lastSale := "no sales yet"
	if !s.LastSale.IsZero() {
		lastSale = "last " + util.FormatAgo(s.LastSale, m.now)
	}

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		renderCard("Products", util.FormatQuantity(s.Products), fmt.Sprintf("%d low on stock", s.LowStock)),
		renderCard("Revenue", util.FormatMoney(s.Revenue), fmt.Sprintf("%s sales, %s", util.FormatQuantity(s.SalesCount), lastSale)),
		renderCard("Open orders", util.FormatQuantity(s.OpenOrders), util.FormatMoney(s.OpenOrderValue)+" on order"),
	)

	half := max(30, (width-6)/2)

	var low []string
	if len(m.lowStock) == 0 {
		low = append(low, EmptyStateStyle.Render("Everything is stocked."))
	}
	for _, p := range m.lowStock {
		low = append(low, fmt.Sprintf("%s %s",
			util.PadRight(util.TruncateString(p.Name, half-14), half-12),
			LowStockStyle.Render(util.FormatQuantity(p.CurrentStock)+" left")))
	}

	var recent []string
	if len(m.recent) == 0 {
		recent = append(recent, EmptyStateStyle.Render("No sales recorded."))
	}
	for _, r := range m.recent {
		name := r.ProductName
		if name == "" {
			name = r.ProductID
		}
		recent = append(recent, fmt.Sprintf("%s %s %s",
			util.PadRight(util.FormatDateShort(r.TransactionDate), 8),
			util.PadRight(util.TruncateString(name, half-26), half-24),
			util.FormatMoney(sales.RecordTotal(r))))
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		PanelStyle.Width(half).Render(LabelStyle.Render("Low stock")+"\n\n"+strings.Join(low, "\n")),
		PanelStyle.Width(half).Render(LabelStyle.Render("Recent sales")+"\n\n"+strings.Join(recent, "\n")),
	)

	return lipgloss.NewStyle().MaxHeight(height).Render(
		lipgloss.JoinVertical(lipgloss.Left, cards, "", panels),
	)
}
