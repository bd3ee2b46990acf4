package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stockroom/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, mode model.Mode, width int) string {
	switch mode {
	case model.ModeInsert:
		if screen == model.ScreenSalesForm || screen == model.ScreenPurchaseOrderForm {
			return renderSuggestFormHelp(width)
		}
		return renderFormHelp(width)
	case model.ModeFilter:
		return renderFilterHelp(width)
	}

	switch screen {
	case model.ScreenDashboard:
		return renderDashboardHelp(width)
	case model.ScreenInventory:
		return renderInventoryHelp(width)
	case model.ScreenSales:
		return renderSalesHelp(width)
	case model.ScreenPurchaseOrders:
		return renderPurchaseOrdersHelp(width)
	case model.ScreenVendors, model.ScreenCustomers:
		return renderContactsHelp(width)
	case model.ScreenAccount:
		return renderAccountHelp(width)
	case model.ScreenPurchaseOrderDetail:
		return renderPurchaseOrderDetailHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderDashboardHelp(width int) string {
	keys := []string{
		helpKey("←/→", "tabs"),
		helpKey("1-7", "jump tab"),
		helpKey("ctrl+l", "reload"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderInventoryHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("tab", "next col"),
		helpKey("s/S/o", "sort"),
		helpKey("f/F", "filter"),
		helpKey("[/]", "page"),
		helpKey("w", "forecast"),
		helpKey("x", "export"),
		helpKey("y/Y", "copy"),
	}
	return renderHelpLine(keys, width)
}

func renderSalesHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("tab", "next col"),
		helpKey("s/S/o", "sort"),
		helpKey("f/F", "filter"),
		helpKey("[/]", "page"),
		helpKey("a", "new order"),
		helpKey("d", "delete"),
		helpKey("x", "export"),
		helpKey("u/ctrl+r", "undo/redo"),
	}
	return renderHelpLine(keys, width)
}

func renderPurchaseOrdersHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("s/S/o", "sort"),
		helpKey("f/F", "filter"),
		helpKey("a", "add"),
		helpKey("enter", "details"),
		helpKey("e", "edit"),
		helpKey("r", "received"),
		helpKey("d", "delete"),
		helpKey("u/ctrl+r", "undo/redo"),
	}
	return renderHelpLine(keys, width)
}

func renderContactsHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("tab", "next col"),
		helpKey("s/S/o", "sort"),
		helpKey("c/C", "hide/show col"),
		helpKey("f/F", "filter"),
		helpKey("a", "add"),
		helpKey("e", "edit"),
		helpKey("d", "delete"),
		helpKey("u/ctrl+r", "undo/redo"),
	}
	return renderHelpLine(keys, width)
}

func renderAccountHelp(width int) string {
	keys := []string{
		helpKey("e", "edit account"),
		helpKey("P", "edit profile"),
		helpKey("u/ctrl+r", "undo/redo"),
		helpKey("←/→", "tabs"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderPurchaseOrderDetailHelp(width int) string {
	keys := []string{
		helpKey("h/esc", "back"),
		helpKey("j/k", "scroll"),
		helpKey("e", "edit"),
		helpKey("r", "received/reopen"),
		helpKey("d", "delete"),
	}
	return renderHelpLine(keys, width)
}

func renderFormHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("shift+tab", "prev field"),
		helpKey("ctrl+s", "save"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderSuggestFormHelp(width int) string {
	keys := []string{
		helpKey("tab", "next field"),
		helpKey("ctrl+n/ctrl+p", "suggestions"),
		helpKey("enter", "pick"),
		helpKey("ctrl+s", "save"),
		helpKey("esc", "cancel"),
	}
	return renderHelpLine(keys, width)
}

func renderFilterHelp(width int) string {
	keys := []string{
		helpKey("type", "filter all columns"),
		helpKey("enter/esc", "done"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("h/l", "back/select"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	left := strings.Join([]string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"← / →", "Previous / next tab"},
			{"1-7", "Jump to tab"},
			{"l / enter", "Open / select"},
			{"h / esc / b", "Go back"},
			{"gg / G", "Jump to top / bottom"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"ctrl+l", "Reload"},
			{"u / ctrl+r", "Undo / redo"},
			{"q", "Quit (from top-level)"},
			{"?", "Toggle help"},
		}),
		titleSection("Tables"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Cycle active column"},
			{"/ then 1-9", "Jump to column"},
			{"s / S", "Sort active column asc / desc"},
			{"o", "Cycle sort: asc, desc, off"},
			{"c / C", "Hide active column / show all"},
			{"f / F", "Edit filter / clear filter"},
			{"] / [", "Next / previous page"},
			{"p", "Cycle page size"},
			{"x", "Export filtered rows"},
			{"y / Y", "Copy row / page to clipboard"},
		}),
	}, "\n\n")

	right := strings.Join([]string{
		titleSection("Inventory"),
		helpSection([]helpItem{
			{"w", "Cycle forecast window"},
		}),
		titleSection("Sales"),
		helpSection([]helpItem{
			{"a", "New sales order"},
			{"d", "Delete record (local store)"},
		}),
		titleSection("Purchase Orders"),
		helpSection([]helpItem{
			{"a / e / d", "Add / edit / delete"},
			{"r", "Mark received / reopen"},
			{"enter / l", "Open detail"},
		}),
		titleSection("Vendors / Customers"),
		helpSection([]helpItem{
			{"a / e / d", "Add / edit / delete"},
		}),
		titleSection("Account"),
		helpSection([]helpItem{
			{"e", "Edit account"},
			{"P", "Edit profile"},
		}),
		titleSection("Forms"),
		helpSection([]helpItem{
			{"tab / shift+tab", "Next / previous field"},
			{"ctrl+n / ctrl+p", "Move through suggestions"},
			{"ctrl+s", "Save"},
			{"esc", "Cancel"},
		}),
	}, "\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(max(30, (width-8)/2)).Render(left),
		right,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		content.Render(body),
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
