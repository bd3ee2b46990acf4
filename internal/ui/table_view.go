package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stockroom/internal/export"
	"stockroom/internal/table"
	"stockroom/internal/util"
)

// TableView is a paginated, sortable, filterable grid over one table engine.
type TableView struct {
	name      string
	emptyHint string
	engine    *table.Engine

	cursor int
	active int

	filter    textinput.Model
	filtering bool

	schemaErr error

	// decorate styles a cell's padded text on unselected rows.
	decorate func(cell table.Cell, text string) string
}

// NewTableView builds a view over rows. pageSize falls back to the default
// when it is not one of table.PageSizes.
func NewTableView(name string, columns []table.Column, rows []table.Row, pageSize int, emptyHint string) (*TableView, error) {
	engine, err := table.New(columns, rows, table.WithIDKey("id"), table.WithPageSize(pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to build %s table: %w", name, err)
	}

	fi := textinput.New()
	fi.Prompt = "Filter: "
	fi.Placeholder = "type to filter all columns"
	fi.CharLimit = 100
	fi.PromptStyle = FilterPromptStyle

	t := &TableView{
		name:      name,
		emptyHint: emptyHint,
		engine:    engine,
		filter:    fi,
	}
	t.checkSchema(rows)
	return t, nil
}

func (t *TableView) checkSchema(rows []table.Row) {
	t.schemaErr = table.CheckSchema(t.engine.Columns(), rows)
}

// SchemaErr reports column keys the loaded rows never carry.
func (t *TableView) SchemaErr() error {
	return t.schemaErr
}

// Engine exposes the underlying engine.
func (t *TableView) Engine() *table.Engine {
	return t.engine
}

// Name is the table's display name.
func (t *TableView) Name() string {
	return t.name
}

// SetRows swaps the data source and keeps sort, filter and visibility.
func (t *TableView) SetRows(rows []table.Row) {
	t.engine.SetRows(rows)
	t.checkSchema(rows)
	t.clampCursor()
}

func (t *TableView) pageRows() []table.RowView {
	return t.engine.Derive().Rows
}

func (t *TableView) clampCursor() {
	n := len(t.pageRows())
	if t.cursor >= n {
		t.cursor = n - 1
	}
	if t.cursor < 0 {
		t.cursor = 0
	}
}

// Selected returns the row under the cursor.
func (t *TableView) Selected() (table.RowView, bool) {
	rows := t.pageRows()
	if t.cursor < 0 || t.cursor >= len(rows) {
		return table.RowView{}, false
	}
	return rows[t.cursor], true
}

// SelectedID returns the id of the row under the cursor.
func (t *TableView) SelectedID() (string, bool) {
	rv, ok := t.Selected()
	if !ok {
		return "", false
	}
	return rv.ID, true
}

// Column navigation

func (t *TableView) activeKey() string {
	cols := t.engine.Columns()
	if t.active < 0 || t.active >= len(cols) {
		return ""
	}
	return cols[t.active].Key
}

func (t *TableView) activeLabel() string {
	c, ok := t.engine.Column(t.activeKey())
	if !ok {
		return ""
	}
	if c.Header != "" {
		return c.Header
	}
	return c.Key
}

func (t *TableView) ensureVisibleActiveColumn() {
	cols := t.engine.Columns()
	if t.active < len(cols) && t.engine.IsVisible(cols[t.active].Key) {
		return
	}
	for i, c := range cols {
		if t.engine.IsVisible(c.Key) {
			t.active = i
			return
		}
	}
}

func (t *TableView) NextColumn() {
	cols := t.engine.Columns()
	start := t.active
	for {
		t.active = (t.active + 1) % len(cols)
		if t.engine.IsVisible(cols[t.active].Key) || t.active == start {
			return
		}
	}
}

func (t *TableView) PrevColumn() {
	cols := t.engine.Columns()
	start := t.active
	for {
		t.active--
		if t.active < 0 {
			t.active = len(cols) - 1
		}
		if t.engine.IsVisible(cols[t.active].Key) || t.active == start {
			return
		}
	}
}

// JumpToColumn activates the number-th visible column, counting from 1.
func (t *TableView) JumpToColumn(number int) bool {
	if number < 1 {
		return false
	}
	n := 0
	for i, c := range t.engine.Columns() {
		if !t.engine.IsVisible(c.Key) {
			continue
		}
		n++
		if n == number {
			t.active = i
			return true
		}
	}
	return false
}

// Sorting

func (t *TableView) SortActiveColumn(desc bool) bool {
	dir := table.Ascending
	if desc {
		dir = table.Descending
	}
	if !t.engine.SetSort(t.activeKey(), dir) {
		return false
	}
	t.cursor = 0
	return true
}

// CycleSortActiveColumn toggles the active column through ascending,
// descending and unsorted and describes the result.
func (t *TableView) CycleSortActiveColumn() string {
	key := t.activeKey()
	label := strings.ToUpper(t.activeLabel())
	if !t.engine.ToggleSort(key) {
		return fmt.Sprintf("%s cannot be sorted", label)
	}
	t.cursor = 0
	switch dir, _ := t.engine.State().SortOf(key); dir {
	case table.Ascending:
		return fmt.Sprintf("Sorted %s ascending", label)
	case table.Descending:
		return fmt.Sprintf("Sorted %s descending", label)
	default:
		return "Sorting cleared"
	}
}

// Visibility

// HideActiveColumn hides the active column unless it is the last visible one
// or cannot be hidden.
func (t *TableView) HideActiveColumn() bool {
	if t.engine.VisibleCount() <= 1 {
		return false
	}
	if !t.engine.HideColumn(t.activeKey()) {
		return false
	}
	t.ensureVisibleActiveColumn()
	return true
}

func (t *TableView) ShowAllColumns() {
	t.engine.ShowAllColumns()
}

// Filtering

// StartFilter focuses the filter input.
func (t *TableView) StartFilter() {
	t.filtering = true
	t.filter.SetValue(t.engine.FilterText())
	t.filter.CursorEnd()
	t.filter.Focus()
}

// Filtering reports whether the filter input has focus.
func (t *TableView) Filtering() bool {
	return t.filtering
}

// UpdateFilter feeds a key to the filter input. It returns true once the
// input gives focus back.
func (t *TableView) UpdateFilter(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "esc", "enter":
		t.filtering = false
		t.filter.Blur()
		return nil, true
	}

	var cmd tea.Cmd
	t.filter, cmd = t.filter.Update(msg)
	if t.filter.Value() != t.engine.FilterText() {
		t.engine.SetFilterText(t.filter.Value())
		t.cursor = 0
	}
	return cmd, false
}

// ClearFilter drops the filter text.
func (t *TableView) ClearFilter() bool {
	if t.engine.FilterText() == "" {
		return false
	}
	t.engine.SetFilterText("")
	t.filter.SetValue("")
	t.cursor = 0
	return true
}

// Pagination

func (t *TableView) NextPage() bool {
	if !t.engine.NextPage() {
		return false
	}
	t.cursor = 0
	return true
}

func (t *TableView) PrevPage() bool {
	if !t.engine.PreviousPage() {
		return false
	}
	t.cursor = 0
	return true
}

// CyclePageSize switches to the next page size and returns it.
func (t *TableView) CyclePageSize() int {
	current := t.engine.State().PageSize
	next := table.PageSizes[0]
	for i, n := range table.PageSizes {
		if n == current {
			next = table.PageSizes[(i+1)%len(table.PageSizes)]
			break
		}
	}
	_ = t.engine.SetPageSize(next)
	t.clampCursor()
	return next
}

// Cursor

func (t *TableView) MoveDown() {
	if t.cursor < len(t.pageRows())-1 {
		t.cursor++
		return
	}
	if t.engine.NextPage() {
		t.cursor = 0
	}
}

func (t *TableView) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
		return
	}
	if t.engine.PreviousPage() {
		t.cursor = len(t.pageRows()) - 1
	}
}

func (t *TableView) JumpToTop() {
	t.engine.SetPageIndex(0)
	t.cursor = 0
}

func (t *TableView) JumpToBottom() {
	if n := t.engine.PageCount(); n > 0 {
		t.engine.SetPageIndex(n - 1)
	}
	t.cursor = len(t.pageRows()) - 1
	t.clampCursor()
}

func (t *TableView) HalfPageDown() {
	t.cursor += max(1, t.engine.State().PageSize/2)
	t.clampCursor()
}

func (t *TableView) HalfPageUp() {
	t.cursor -= max(1, t.engine.State().PageSize/2)
	t.clampCursor()
}

// Export

// Export returns every filtered, sorted row.
func (t *TableView) Export() export.Table {
	return export.FromEngine(t.engine)
}

// PageExport returns the rows of the current page.
func (t *TableView) PageExport() export.Table {
	view := t.engine.Derive()
	out := export.Table{Headers: headerLabels(view)}
	for _, rv := range view.Rows {
		out.Rows = append(out.Rows, cellTexts(rv))
	}
	return out
}

// SelectedExport returns the row under the cursor.
func (t *TableView) SelectedExport() (export.Table, bool) {
	rv, ok := t.Selected()
	if !ok {
		return export.Table{}, false
	}
	return export.Table{Headers: headerLabels(t.engine.Derive()), Rows: [][]string{cellTexts(rv)}}, true
}

func headerLabels(view table.View) []string {
	if len(view.HeaderGroups) == 0 {
		return nil
	}
	out := make([]string, 0, len(view.HeaderGroups[0].Headers))
	for _, h := range view.HeaderGroups[0].Headers {
		out = append(out, h.Label)
	}
	return out
}

func cellTexts(rv table.RowView) []string {
	out := make([]string, len(rv.Cells))
	for i, c := range rv.Cells {
		out[i] = c.Text
	}
	return out
}

// TableMeta summarizes the active column, sort and filter.
func (t *TableView) TableMeta() string {
	parts := []string{fmt.Sprintf("col %s", strings.ToUpper(t.activeLabel()))}
	state := t.engine.State()
	if len(state.Sort) > 0 {
		var keys []string
		for _, s := range state.Sort {
			keys = append(keys, fmt.Sprintf("%s %s", strings.ToUpper(s.Column), s.Direction))
		}
		parts = append(parts, "sort "+strings.Join(keys, ", "))
	}
	if state.Filter != "" {
		parts = append(parts, fmt.Sprintf("filter %q", state.Filter))
	}
	return strings.Join(parts, "  ·  ")
}

// Footer is the pagination line: "Page X of Y  ·  N of M rows".
func (t *TableView) Footer() string {
	view := t.engine.Derive()
	current := view.PageIndex + 1
	if view.PageCount == 0 {
		current = 0
	}
	return fmt.Sprintf("Page %d of %d  ·  %d of %d rows  ·  %d per page",
		current, view.PageCount, view.FilteredCount, view.TotalCount, view.PageSize)
}

// View renders the grid, the filter line and the status footer.
func (t *TableView) View(width, height int) string {
	view := t.engine.Derive()

	var headers []table.Header
	if len(view.HeaderGroups) > 0 {
		headers = view.HeaderGroups[0].Headers
	}

	widths := make([]int, len(headers))
	labels := make([]string, len(headers))
	total := 0
	for i, h := range headers {
		label := strings.ToUpper(h.Label)
		switch h.Sort {
		case table.Ascending:
			label += " ↑"
		case table.Descending:
			label += " ↓"
		}
		if h.Sort != table.Unsorted && len(t.engine.State().Sort) > 1 {
			label += fmt.Sprintf("%d", h.SortIndex+1)
		}
		w := max(h.Width, lipgloss.Width(label)) + 2
		if h.Key == t.activeKey() {
			label = lipgloss.NewStyle().Underline(true).Render(label)
		}
		widths[i] = w
		labels[i] = label
		total += w
	}
	if n := len(widths); n > 0 && width > total {
		widths[n-1] += width - total
	}

	lines := []string{
		renderTableRow(labels, widths, TableHeaderStyle),
		HelpDescStyle.Render(strings.Repeat("─", max(0, width))),
	}

	if len(view.Rows) == 0 {
		msg := "No results."
		if view.TotalCount == 0 && t.emptyHint != "" {
			msg = "No results.\n" + t.emptyHint
		}
		lines = append(lines, EmptyStateStyle.Render(msg))
	}

	for i, rv := range view.Rows {
		style := NormalRowStyle
		selected := i == t.cursor
		if selected {
			style = SelectedRowStyle
		}
		cells := make([]string, len(rv.Cells))
		for j, c := range rv.Cells {
			text := util.TruncateString(c.Text, max(1, widths[j]-2))
			if !selected && t.decorate != nil {
				text = t.decorate(c, text)
			}
			cells[j] = text
		}
		lines = append(lines, renderTableRow(cells, widths, style))
	}

	grid := strings.Join(lines, "\n")

	var bottom []string
	if t.filtering {
		bottom = append(bottom, t.filter.View())
	} else if f := t.engine.FilterText(); f != "" {
		bottom = append(bottom, HelpDescStyle.Render(fmt.Sprintf("Filter: %s  (f edit, F clear)", f)))
	}
	bottom = append(bottom, StatusBarStyle.Render(t.Footer()+"  ·  "+t.TableMeta()))
	status := lipgloss.JoinVertical(lipgloss.Left, bottom...)

	spacer := max(0, height-lipgloss.Height(grid)-lipgloss.Height(status))
	return lipgloss.JoinVertical(
		lipgloss.Left,
		grid,
		lipgloss.NewStyle().Height(spacer).Render(""),
		status,
	)
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).MaxHeight(1).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}
