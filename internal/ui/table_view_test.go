package ui

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"stockroom/internal/table"
)

func newTestTable(t *testing.T, n int) *TableView {
	t.Helper()
	columns := []table.Column{
		{Key: "id", Header: "ID", DisableHide: true},
		{Key: "name", Header: "Name"},
		{Key: "qty", Header: "Qty"},
	}
	rows := make([]table.Row, n)
	for i := range rows {
		rows[i] = table.Row{"id": fmt.Sprintf("R%02d", i+1), "name": fmt.Sprintf("item %02d", i+1), "qty": i % 4}
	}
	tv, err := NewTableView("Items", columns, rows, 10, "Press a to add one.")
	if err != nil {
		t.Fatalf("NewTableView: %v", err)
	}
	return tv
}

func TestTableViewEmptyFooter(t *testing.T) {
	tv := newTestTable(t, 0)
	if got, want := tv.Footer(), "Page 0 of 0  ·  0 of 0 rows  ·  10 per page"; got != want {
		t.Errorf("Footer = %q, want %q", got, want)
	}
	if out := tv.View(80, 20); !strings.Contains(out, "No results.") {
		t.Errorf("empty view missing \"No results.\":\n%s", out)
	}
	if _, ok := tv.SelectedID(); ok {
		t.Error("SelectedID on empty table reported a row")
	}
}

func TestTableViewCursorCrossesPages(t *testing.T) {
	tv := newTestTable(t, 23)
	for i := 0; i < 10; i++ {
		tv.MoveDown()
	}
	if id, _ := tv.SelectedID(); id != "R11" {
		t.Errorf("after 10 moves selected %q, want R11", id)
	}
	if got := tv.Engine().State().PageIndex; got != 1 {
		t.Errorf("PageIndex = %d, want 1", got)
	}
	tv.MoveUp()
	if id, _ := tv.SelectedID(); id != "R10" {
		t.Errorf("after move up selected %q, want R10", id)
	}

	tv.JumpToBottom()
	if id, _ := tv.SelectedID(); id != "R23" {
		t.Errorf("bottom = %q, want R23", id)
	}
	if tv.NextPage() {
		t.Error("NextPage on last page succeeded")
	}
	tv.JumpToTop()
	if id, _ := tv.SelectedID(); id != "R01" {
		t.Errorf("top = %q, want R01", id)
	}
	if !strings.HasPrefix(tv.Footer(), "Page 1 of 3  ·  23 of 23 rows") {
		t.Errorf("Footer = %q", tv.Footer())
	}
}

func TestTableViewHideGuards(t *testing.T) {
	tv := newTestTable(t, 3)

	// id cannot be hidden
	if tv.HideActiveColumn() {
		t.Fatal("hid a column with DisableHide")
	}
	tv.NextColumn()
	if !tv.HideActiveColumn() {
		t.Fatal("could not hide name")
	}
	if tv.activeKey() == "name" {
		t.Error("active column still points at hidden name")
	}
	if !tv.JumpToColumn(2) || tv.activeKey() != "qty" {
		t.Errorf("JumpToColumn(2) active = %q, want qty", tv.activeKey())
	}
	if !tv.HideActiveColumn() {
		t.Fatal("could not hide qty")
	}
	if got := tv.Engine().VisibleCount(); got != 1 {
		t.Fatalf("VisibleCount = %d, want 1", got)
	}
	if tv.HideActiveColumn() {
		t.Error("hid the last visible column")
	}
	if tv.JumpToColumn(2) {
		t.Error("JumpToColumn past the visible columns succeeded")
	}

	tv.ShowAllColumns()
	if got := tv.Engine().VisibleCount(); got != 3 {
		t.Errorf("VisibleCount after show all = %d, want 3", got)
	}
}

func TestTableViewSortCycle(t *testing.T) {
	tv := newTestTable(t, 5)
	tv.JumpToColumn(3)

	want := []string{"Sorted QTY ascending", "Sorted QTY descending", "Sorting cleared"}
	for i, w := range want {
		if got := tv.CycleSortActiveColumn(); got != w {
			t.Errorf("cycle %d = %q, want %q", i, got, w)
		}
	}

	if !tv.SortActiveColumn(true) {
		t.Fatal("SortActiveColumn(desc) failed")
	}
	if id, _ := tv.SelectedID(); id != "R04" {
		t.Errorf("top after qty desc = %q, want R04", id)
	}
}

func TestTableViewFilterInput(t *testing.T) {
	tv := newTestTable(t, 23)
	tv.NextPage()

	tv.StartFilter()
	if !tv.Filtering() {
		t.Fatal("StartFilter did not focus the input")
	}
	tv.UpdateFilter(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ITEM 2")})
	if got := tv.Engine().FilterText(); got != "ITEM 2" {
		t.Fatalf("FilterText = %q", got)
	}
	if got := tv.Engine().State().PageIndex; got != 0 {
		t.Errorf("PageIndex = %d, want reset to 0", got)
	}
	if got := tv.Engine().Derive().FilteredCount; got != 4 {
		t.Errorf("FilteredCount = %d, want 4 (item 20..23)", got)
	}

	if _, done := tv.UpdateFilter(tea.KeyMsg{Type: tea.KeyEsc}); !done || tv.Filtering() {
		t.Error("esc did not leave the filter input")
	}
	if got := tv.Engine().FilterText(); got != "ITEM 2" {
		t.Errorf("esc dropped the filter: %q", got)
	}

	if !tv.ClearFilter() || tv.Engine().FilterText() != "" {
		t.Error("ClearFilter did not clear")
	}
	if tv.ClearFilter() {
		t.Error("ClearFilter on empty filter reported a change")
	}
}

func TestTableViewCyclePageSize(t *testing.T) {
	tv := newTestTable(t, 45)
	tv.JumpToBottom()

	for _, want := range []int{20, 30, 40, 50, 10} {
		if got := tv.CyclePageSize(); got != want {
			t.Fatalf("CyclePageSize = %d, want %d", got, want)
		}
	}
	if _, ok := tv.SelectedID(); !ok {
		t.Error("cursor lost its row after page size changes")
	}
}

func TestTableViewExports(t *testing.T) {
	tv := newTestTable(t, 12)
	tv.MoveDown()

	sel, ok := tv.SelectedExport()
	if !ok || len(sel.Rows) != 1 || sel.Rows[0][0] != "R02" {
		t.Errorf("SelectedExport = %+v", sel)
	}
	if page := tv.PageExport(); len(page.Rows) != 10 {
		t.Errorf("PageExport rows = %d, want 10", len(page.Rows))
	}
	all := tv.Export()
	if len(all.Rows) != 12 || strings.Join(all.Headers, ",") != "ID,Name,Qty" {
		t.Errorf("Export = %d rows, headers %v", len(all.Rows), all.Headers)
	}
}
