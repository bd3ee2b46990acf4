package ui

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"stockroom/internal/db"
	"stockroom/internal/export"
	"stockroom/internal/model"
)

// fetchTimeout bounds one DataSource round trip.
const fetchTimeout = 10 * time.Second

type yankedMsg struct {
	rows int
}

func loadDashboardCmd(database *sql.DB, src DataSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		stats, err := db.GetDashboardStats(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		products, err := src.ListProducts(ctx)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load products: %w", err)}
		}
		records, err := src.ListSalesRecords(ctx)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load sales: %w", err)}
		}
		if !isLocal(src) {
			stats = summarize(stats, products, records)
		}
		return model.DashboardLoadedMsg{
			Stats:    stats,
			LowStock: lowStock(products, dashboardListLen),
			Recent:   recentSales(records, dashboardListLen),
		}
	}
}

func loadProductsCmd(src DataSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		products, err := src.ListProducts(ctx)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load products: %w", err)}
		}
		return model.ProductsLoadedMsg{Products: products}
	}
}

// loadForecastsCmd tags the result with days so a late reply for an older
// window can be recognised.
func loadForecastsCmd(src DataSource, days int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		forecasts, err := src.ListForecasts(ctx, days)
		return model.ForecastsLoadedMsg{Days: days, Forecasts: forecasts, Err: err}
	}
}

func loadSalesCmd(src DataSource) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		records, err := src.ListSalesRecords(ctx)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load sales: %w", err)}
		}
		return model.SalesLoadedMsg{Records: records}
	}
}

func loadPurchaseOrdersCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		orders, err := db.ListPurchaseOrders(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.PurchaseOrdersLoadedMsg{Orders: orders}
	}
}

func loadPurchaseOrderDetailCmd(database *sql.DB, id string) tea.Cmd {
	return func() tea.Msg {
		order, err := db.GetPurchaseOrder(database, id)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load purchase order: %w", err)}
		}
		return model.PurchaseOrderDetailLoadedMsg{Order: order}
	}
}

func loadContactsCmd(database *sql.DB, kind string) tea.Cmd {
	return func() tea.Msg {
		contacts, err := db.ListContacts(database, kind, "")
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ContactsLoadedMsg{Kind: kind, Contacts: contacts}
	}
}

func loadSettingsCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		account, err := db.GetAccount(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		profile, err := db.GetProfile(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.SettingsLoadedMsg{Account: account, Profile: profile}
	}
}

func deletePurchaseOrderCmd(database *sql.DB, id string) tea.Cmd {
	return func() tea.Msg {
		order, err := db.GetPurchaseOrder(database, id)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load purchase order before delete: %w", err)}
		}
		if err := db.DeletePurchaseOrder(database, id); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.DeletePurchaseOrderMsg{ID: id, Deleted: order}
	}
}

// togglePurchaseOrderStatusCmd marks an ordered purchase order received and
// reopens a received one.
func togglePurchaseOrderStatusCmd(database *sql.DB, id, current string) tea.Cmd {
	next := model.StatusReceived
	if current == model.StatusReceived {
		next = model.StatusOrdered
	}
	return func() tea.Msg {
		if err := db.SetPurchaseOrderStatus(database, id, next); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.PurchaseOrderStatusMsg{ID: id, Before: current, After: next}
	}
}

func deleteContactCmd(database *sql.DB, id int64) tea.Cmd {
	return func() tea.Msg {
		contact, err := db.GetContact(database, id)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load contact before delete: %w", err)}
		}
		if err := db.DeleteContact(database, id); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.DeleteContactMsg{ID: id, Deleted: contact}
	}
}

func deleteSalesRecordCmd(database *sql.DB, id string) tea.Cmd {
	return func() tea.Msg {
		rec, err := db.GetSalesRecord(database, id)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load sales record before delete: %w", err)}
		}
		if err := db.DeleteSalesRecord(database, id); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.DeleteSalesRecordMsg{ID: id, Deleted: rec}
	}
}

func exportCmd(t export.Table, path string) tea.Cmd {
	return func() tea.Msg {
		if err := export.Write(path, t); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ExportedMsg{Path: path, Rows: len(t.Rows)}
	}
}

func yankCmd(t export.Table) tea.Cmd {
	return func() tea.Msg {
		if err := clipboard.WriteAll(export.TSV(t)); err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to copy to clipboard: %w", err)}
		}
		return yankedMsg{rows: len(t.Rows)}
	}
}
