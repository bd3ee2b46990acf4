package ui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stockroom/internal/db"
	"stockroom/internal/forecast"
	"stockroom/internal/model"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) Model {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "stockroom.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })

	m := New(Config{
		DB:        database,
		PrefsPath: filepath.Join(t.TempDir(), "ui_prefs.json"),
		Now:       func() time.Time { return testNow },
	})
	m.width, m.height = 120, 40
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return got, cmd
}

func TestTabSwitching(t *testing.T) {
	m := newTestModel(t)
	if m.screen != model.ScreenDashboard {
		t.Fatalf("initial screen = %v, want dashboard", m.screen)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.screen != model.ScreenInventory {
		t.Errorf("right: screen = %v, want inventory", m.screen)
	}
	if cmd == nil || !m.loading[model.ScreenInventory] {
		t.Error("first visit to inventory should start a load")
	}

	m, _ = update(t, m, runes("3"))
	if m.screen != model.ScreenSales {
		t.Errorf("3: screen = %v, want sales", m.screen)
	}

	m, _ = update(t, m, runes("1"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.screen != model.ScreenAccount {
		t.Errorf("left from dashboard: screen = %v, want account", m.screen)
	}

	if got := loadUIPreferencesFrom(m.prefsPath).InitialTab; got != "account" {
		t.Errorf("saved initial tab = %q, want account", got)
	}
}

func TestStaleForecastIsDropped(t *testing.T) {
	m := newTestModel(t)
	m.screen = model.ScreenInventory

	products := []model.Product{
		{ID: "P1", Name: "Widget", CurrentStock: 40},
		{ID: "P2", Name: "Gadget", CurrentStock: 3},
	}
	m, cmd := update(t, m, model.ProductsLoadedMsg{Products: products})
	if cmd != nil {
		t.Error("no forecast window selected, expected no fetch")
	}

	m, cmd = update(t, m, runes("w"))
	if m.inventory.Days() != 7 {
		t.Fatalf("days = %d, want 7", m.inventory.Days())
	}
	if cmd == nil {
		t.Fatal("selecting a window should fetch its forecast")
	}
	m.toast = nil

	m, _ = update(t, m, model.ForecastsLoadedMsg{Days: 30, Err: errors.New("late")})
	if m.toast != nil {
		t.Errorf("stale result produced toast %q", m.toast.text)
	}
	for _, item := range m.inventory.items {
		if item.Forecast != forecast.LabelLoading {
			t.Errorf("%s forecast = %q, want still pending", item.ID, item.Forecast)
		}
	}

	m, _ = update(t, m, model.ForecastsLoadedMsg{Days: 7, Err: errors.New("timeout")})
	if m.toast == nil || m.toast.kind != toastError {
		t.Fatal("failed fetch for the selected window should show an error toast")
	}
}

func TestToastExpiry(t *testing.T) {
	m := newTestModel(t)

	m.notify("first")
	firstSeq := m.toast.seq
	m.notify("second")

	m, _ = update(t, m, toastExpiredMsg{seq: firstSeq})
	if m.toast == nil || m.toast.text != "second" {
		t.Fatalf("older expiry cleared a newer toast: %+v", m.toast)
	}

	m, _ = update(t, m, toastExpiredMsg{seq: m.toast.seq})
	if m.toast != nil {
		t.Errorf("toast = %+v, want cleared", m.toast)
	}
}

func TestUndoRedoContactDelete(t *testing.T) {
	m := newTestModel(t)

	id, err := db.InsertContact(m.db, model.NewContact{
		Kind:    model.KindVendor,
		Company: "Acme Supply",
		Name:    "Ada",
		Email:   "ada@acme.test",
	})
	if err != nil {
		t.Fatalf("InsertContact() error = %v", err)
	}

	msg := deleteContactCmd(m.db, id)()
	deleted, ok := msg.(model.DeleteContactMsg)
	if !ok {
		t.Fatalf("delete returned %T: %+v", msg, msg)
	}
	m, _ = update(t, m, deleted)
	if len(m.undoStack) != 1 {
		t.Fatalf("undo stack = %d, want 1", len(m.undoStack))
	}
	if _, err := db.GetContact(m.db, id); err == nil {
		t.Fatal("contact still present after delete")
	}

	m, cmd := update(t, m, runes("u"))
	if cmd == nil {
		t.Fatal("u returned no command")
	}
	m, _ = update(t, m, cmd())
	got, err := db.GetContact(m.db, id)
	if err != nil {
		t.Fatalf("contact not restored: %v", err)
	}
	if got.Company != "Acme Supply" || got.Email != "ada@acme.test" {
		t.Errorf("restored contact = %+v", got)
	}
	if len(m.undoStack) != 0 || len(m.redoStack) != 1 {
		t.Errorf("stacks = %d/%d, want 0/1", len(m.undoStack), len(m.redoStack))
	}

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if cmd == nil {
		t.Fatal("ctrl+r returned no command")
	}
	m, _ = update(t, m, cmd())
	if _, err := db.GetContact(m.db, id); err == nil {
		t.Error("contact present after redo")
	}
	if len(m.undoStack) != 1 {
		t.Errorf("undo stack = %d after redo, want 1", len(m.undoStack))
	}
}

func TestFormCancelReturnsToList(t *testing.T) {
	m := newTestModel(t)
	m, _ = update(t, m, model.ContactsLoadedMsg{Kind: model.KindCustomer})
	m.screen = model.ScreenCustomers

	m, _ = update(t, m, runes("a"))
	if m.screen != model.ScreenContactForm || m.mode != model.ModeInsert {
		t.Fatalf("a: screen = %v mode = %v", m.screen, m.mode)
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc returned no command")
	}
	m, _ = update(t, m, cmd())
	if m.screen != model.ScreenCustomers || m.mode != model.ModeNav {
		t.Errorf("after cancel: screen = %v mode = %v", m.screen, m.mode)
	}
	if m.contactForm != nil {
		t.Error("form not discarded")
	}
}

func TestSummarize(t *testing.T) {
	products := []model.Product{
		{ID: "P1", CurrentStock: 100},
		{ID: "P2", CurrentStock: 10},
		{ID: "P3", CurrentStock: 2},
	}
	records := []model.SalesRecord{
		{ID: "SO-001", QuantitySold: 2, UnitPrice: 10, TransactionDate: testNow.AddDate(0, 0, -3)},
		{ID: "SO-002", QuantitySold: 1, UnitPrice: 50, Discount: 10, TransactionDate: testNow.AddDate(0, 0, -1)},
	}
	stats := summarize(model.DashboardStats{OpenOrders: 4, Revenue: 999}, products, records)

	if stats.Products != 3 || stats.LowStock != 2 || stats.SalesCount != 2 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.Revenue != 65 {
		t.Errorf("revenue = %v, want 65", stats.Revenue)
	}
	if !stats.LastSale.Equal(testNow.AddDate(0, 0, -1)) {
		t.Errorf("last sale = %v", stats.LastSale)
	}
	if stats.OpenOrders != 4 {
		t.Errorf("open orders = %d, want untouched 4", stats.OpenOrders)
	}
}

func TestLowStockAndRecentSales(t *testing.T) {
	products := []model.Product{
		{ID: "P1", CurrentStock: 20},
		{ID: "P2", CurrentStock: 500},
		{ID: "P3", CurrentStock: 1},
		{ID: "P4", CurrentStock: 7},
	}
	low := lowStock(products, 2)
	if len(low) != 2 || low[0].ID != "P3" || low[1].ID != "P4" {
		t.Errorf("lowStock = %+v", low)
	}

	records := []model.SalesRecord{
		{ID: "a", TransactionDate: testNow.AddDate(0, 0, -5)},
		{ID: "b", TransactionDate: testNow},
		{ID: "c", TransactionDate: testNow.AddDate(0, 0, -1)},
	}
	recent := recentSales(records, 2)
	if len(recent) != 2 || recent[0].ID != "b" || recent[1].ID != "c" {
		t.Errorf("recentSales = %+v", recent)
	}
	if records[0].ID != "a" {
		t.Error("recentSales reordered its input")
	}
}

func TestSuggestions(t *testing.T) {
	s := suggestions{}
	s.setOptions([]string{"Acme Supply", "Bolt Works", "acme outlet", "Cargo"})

	s.update("ACME")
	if !s.open || len(s.matches) != 2 {
		t.Fatalf("matches = %v open = %v", s.matches, s.open)
	}

	if _, handled := s.handleKey(tea.KeyMsg{Type: tea.KeyCtrlN}); !handled {
		t.Error("ctrl+n not handled")
	}
	picked, handled := s.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if !handled || picked != "acme outlet" {
		t.Errorf("picked = %q, %v", picked, handled)
	}
	if s.open {
		t.Error("dropdown still open after pick")
	}

	s.update("bolt works")
	if s.open {
		t.Error("exact match should close the dropdown")
	}

	s.update("")
	if _, handled := s.handleKey(tea.KeyMsg{Type: tea.KeyEnter}); handled {
		t.Error("closed dropdown consumed enter")
	}
}
