package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"stockroom/internal/export"
)

// tableController is what the root model drives on any table screen.
type tableController interface {
	NextColumn()
	PrevColumn()
	JumpToColumn(number int) bool
	SortActiveColumn(desc bool) bool
	CycleSortActiveColumn() string
	HideActiveColumn() bool
	ShowAllColumns()
	StartFilter()
	UpdateFilter(msg tea.KeyMsg) (tea.Cmd, bool)
	ClearFilter() bool
	NextPage() bool
	PrevPage() bool
	CyclePageSize() int
	MoveDown()
	MoveUp()
	JumpToTop()
	JumpToBottom()
	HalfPageDown()
	HalfPageUp()
	Filtering() bool
	SelectedID() (string, bool)
	Export() export.Table
	PageExport() export.Table
	SelectedExport() (export.Table, bool)
	TableMeta() string
}

var _ tableController = (*TableView)(nil)
