package table

import "fmt"

// Engine owns the state of one table instance and exposes mutators for it.
// It is not safe for concurrent use; each table has its own Engine.
type Engine struct {
	columns []Column
	rows    []Row
	idKey   string
	state   State
}

// Option configures an Engine.
type Option func(*Engine)

// WithIDKey designates the row field used as row identity.
func WithIDKey(key string) Option {
	return func(e *Engine) { e.idKey = key }
}

// WithPageSize sets the initial page size. Invalid sizes are ignored.
func WithPageSize(n int) Option {
	return func(e *Engine) {
		if ValidPageSize(n) {
			e.state.PageSize = n
		}
	}
}

// New creates an engine with default state. Column keys must be non-empty
// and unique.
func New(columns []Column, rows []Row, opts ...Option) (*Engine, error) {
	if err := validateColumns(columns); err != nil {
		return nil, err
	}
	e := &Engine{
		columns: append([]Column(nil), columns...),
		rows:    rows,
		state:   DefaultState(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Columns returns the column model.
func (e *Engine) Columns() []Column {
	return append([]Column(nil), e.columns...)
}

// Column looks up a column by key.
func (e *Engine) Column(key string) (Column, bool) {
	for _, c := range e.columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// State returns a copy of the current state.
func (e *Engine) State() State {
	return e.state.Clone()
}

// Len returns the number of source rows.
func (e *Engine) Len() int {
	return len(e.rows)
}

// SetRows replaces the data source, e.g. after a re-fetch.
func (e *Engine) SetRows(rows []Row) {
	e.rows = rows
	e.clamp()
}

// Derive returns the current page.
func (e *Engine) Derive() View {
	return Derive(e.columns, e.rows, e.idKey, e.state)
}

// Sorted returns every filtered row in sort order with visible cells only,
// ignoring pagination.
func (e *Engine) Sorted() []RowView {
	order := process(e.columns, e.rows, e.state)
	visible := visibleColumns(e.columns, e.state)
	out := make([]RowView, 0, len(order))
	for _, i := range order {
		out = append(out, renderRow(visible, e.rows, i, e.idKey))
	}
	return out
}

// ToggleSort cycles a column through ascending, descending and unsorted.
// Toggling a column that is not sorted replaces the spec with a single
// ascending sort on it.
func (e *Engine) ToggleSort(key string) bool {
	c, ok := e.Column(key)
	if !ok || !c.CanSort() {
		return false
	}
	switch dir, _ := e.state.SortOf(key); dir {
	case Ascending:
		e.state.Sort = []SortKey{{Column: key, Direction: Descending}}
	case Descending:
		e.state.Sort = nil
	default:
		e.state.Sort = []SortKey{{Column: key, Direction: Ascending}}
	}
	return true
}

// SetSort replaces the spec with a single-column sort.
func (e *Engine) SetSort(key string, dir Direction) bool {
	c, ok := e.Column(key)
	if !ok || !c.CanSort() {
		return false
	}
	if dir == Unsorted {
		e.state.Sort = nil
		return true
	}
	e.state.Sort = []SortKey{{Column: key, Direction: dir}}
	return true
}

// SetSortSpec installs a multi-column spec. Unknown, unsortable, unsorted
// and repeated keys are dropped.
func (e *Engine) SetSortSpec(spec []SortKey) {
	seen := make(map[string]bool, len(spec))
	out := make([]SortKey, 0, len(spec))
	for _, k := range spec {
		c, ok := e.Column(k.Column)
		if !ok || !c.CanSort() || k.Direction == Unsorted || seen[k.Column] {
			continue
		}
		seen[k.Column] = true
		out = append(out, k)
	}
	if len(out) == 0 {
		out = nil
	}
	e.state.Sort = out
}

// ClearSort removes any sort.
func (e *Engine) ClearSort() {
	e.state.Sort = nil
}

// HideColumn is the "Hide" entry of a header's sort menu.
func (e *Engine) HideColumn(key string) bool {
	return e.SetColumnVisibility(key, false)
}

// SetColumnVisibility shows or hides a column. Hiding a column that
// disables hiding is refused.
func (e *Engine) SetColumnVisibility(key string, visible bool) bool {
	c, ok := e.Column(key)
	if !ok {
		return false
	}
	if visible {
		delete(e.state.Visibility, key)
		return true
	}
	if !c.CanHide() {
		return false
	}
	if e.state.Visibility == nil {
		e.state.Visibility = make(map[string]bool)
	}
	e.state.Visibility[key] = false
	return true
}

// ShowAllColumns clears every visibility override.
func (e *Engine) ShowAllColumns() {
	e.state.Visibility = nil
}

// IsVisible reports whether a column is currently shown.
func (e *Engine) IsVisible(key string) bool {
	return e.state.Visible(key)
}

// VisibleCount returns the number of shown columns.
func (e *Engine) VisibleCount() int {
	return len(visibleColumns(e.columns, e.state))
}

// SetFilterText replaces the global filter. The page index resets to the
// first page when the current one no longer exists.
func (e *Engine) SetFilterText(text string) {
	e.state.Filter = text
	count := pageCount(len(filter(e.columns, e.rows, text)), e.pageSize())
	if e.state.PageIndex > max(count-1, 0) {
		e.state.PageIndex = 0
	}
}

// FilterText returns the current global filter.
func (e *Engine) FilterText() string {
	return e.state.Filter
}

// SetPageSize changes the page size, keeping the first row of the current
// page on screen where possible.
func (e *Engine) SetPageSize(n int) error {
	if !ValidPageSize(n) {
		return fmt.Errorf("%w: %d", ErrInvalidPageSize, n)
	}
	top := e.state.PageIndex * e.pageSize()
	e.state.PageSize = n
	e.state.PageIndex = top / n
	e.clamp()
	return nil
}

// PageCount returns ceil(filtered rows / page size).
func (e *Engine) PageCount() int {
	return pageCount(len(filter(e.columns, e.rows, e.state.Filter)), e.pageSize())
}

// CanNextPage reports whether NextPage would move.
func (e *Engine) CanNextPage() bool {
	return e.state.PageIndex < e.PageCount()-1
}

// CanPreviousPage reports whether PreviousPage would move.
func (e *Engine) CanPreviousPage() bool {
	return e.state.PageIndex > 0
}

// NextPage advances one page. It is a no-op returning false on the last page.
func (e *Engine) NextPage() bool {
	if !e.CanNextPage() {
		return false
	}
	e.state.PageIndex++
	return true
}

// PreviousPage goes back one page. It is a no-op returning false on the
// first page.
func (e *Engine) PreviousPage() bool {
	if !e.CanPreviousPage() {
		return false
	}
	e.state.PageIndex--
	return true
}

// SetPageIndex jumps to a page. Out-of-range indexes are refused.
func (e *Engine) SetPageIndex(i int) bool {
	if i < 0 || i > max(e.PageCount()-1, 0) {
		return false
	}
	e.state.PageIndex = i
	return true
}

func (e *Engine) pageSize() int {
	if e.state.PageSize <= 0 {
		return DefaultPageSize
	}
	return e.state.PageSize
}

func (e *Engine) clamp() {
	e.state.PageIndex = clampPage(e.state.PageIndex, e.PageCount())
}
