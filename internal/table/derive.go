package table

import (
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// View is everything the presentation layer needs to draw one page.
type View struct {
	HeaderGroups    []HeaderGroup
	Rows            []RowView
	PageIndex       int
	PageSize        int
	PageCount       int
	CanPreviousPage bool
	CanNextPage     bool
	FilteredCount   int
	TotalCount      int
}

// HeaderGroup is one header row.
type HeaderGroup struct {
	ID      string
	Headers []Header
}

// Header is one visible column header.
type Header struct {
	Key       string
	Label     string
	Width     int
	CanSort   bool
	CanHide   bool
	Sort      Direction
	SortIndex int
}

// RowView is one rendered row. Index is the row's position in the source.
type RowView struct {
	ID     string
	Index  int
	Source Row
	Cells  []Cell
}

// Cell is one visible cell.
type Cell struct {
	Key   string
	Value any
	Text  string
}

// Derive computes the page described by state. It filters, sorts, slices and
// then builds headers and cells for the visible columns.
func Derive(columns []Column, rows []Row, idKey string, state State) View {
	order := process(columns, rows, state)

	size := state.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	count := pageCount(len(order), size)
	index := clampPage(state.PageIndex, count)

	start := min(index*size, len(order))
	end := min(start+size, len(order))

	visible := visibleColumns(columns, state)

	v := View{
		HeaderGroups:    []HeaderGroup{{ID: "0", Headers: headers(visible, state)}},
		Rows:            make([]RowView, 0, end-start),
		PageIndex:       index,
		PageSize:        size,
		PageCount:       count,
		CanPreviousPage: index > 0,
		CanNextPage:     index < count-1,
		FilteredCount:   len(order),
		TotalCount:      len(rows),
	}
	for _, i := range order[start:end] {
		v.Rows = append(v.Rows, renderRow(visible, rows, i, idKey))
	}
	return v
}

// process returns the source indexes that pass the filter, in sort order.
func process(columns []Column, rows []Row, state State) []int {
	order := filter(columns, rows, state.Filter)
	sortRows(columns, rows, order, state.Sort)
	return order
}

func filter(columns []Column, rows []Row, text string) []int {
	out := make([]int, 0, len(rows))
	if text == "" {
		for i := range rows {
			out = append(out, i)
		}
		return out
	}

	fold := cases.Fold()
	needle := fold.String(text)
	for i, r := range rows {
		for _, c := range columns {
			if strings.Contains(fold.String(String(c.value(r))), needle) {
				out = append(out, i)
				break
			}
		}
	}
	return out
}

func sortRows(columns []Column, rows []Row, order []int, spec []SortKey) {
	type key struct {
		col  Column
		desc bool
	}
	keys := make([]key, 0, len(spec))
	for _, s := range spec {
		if s.Direction == Unsorted {
			continue
		}
		for _, c := range columns {
			if c.Key == s.Column && c.CanSort() {
				keys = append(keys, key{col: c, desc: s.Direction == Descending})
				break
			}
		}
	}
	if len(keys) == 0 {
		return
	}

	slices.SortStableFunc(order, func(a, b int) int {
		for _, k := range keys {
			va, vb := k.col.value(rows[a]), k.col.value(rows[b])
			na, nb := IsNull(va), IsNull(vb)
			switch {
			case na && nb:
				continue
			case na:
				return 1
			case nb:
				return -1
			}
			c := k.col.compare(va, vb)
			if k.desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
}

func pageCount(rows, size int) int {
	if rows == 0 {
		return 0
	}
	return (rows + size - 1) / size
}

func clampPage(index, count int) int {
	if index >= count {
		index = count - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

func visibleColumns(columns []Column, state State) []Column {
	out := make([]Column, 0, len(columns))
	for _, c := range columns {
		if state.Visible(c.Key) {
			out = append(out, c)
		}
	}
	return out
}

func headers(visible []Column, state State) []Header {
	out := make([]Header, 0, len(visible))
	for _, c := range visible {
		dir, idx := state.SortOf(c.Key)
		label := c.Header
		if label == "" {
			label = c.Key
		}
		out = append(out, Header{
			Key:       c.Key,
			Label:     label,
			Width:     c.Width,
			CanSort:   c.CanSort(),
			CanHide:   c.CanHide(),
			Sort:      dir,
			SortIndex: idx,
		})
	}
	return out
}

func renderRow(visible []Column, rows []Row, i int, idKey string) RowView {
	r := rows[i]
	id := strconv.Itoa(i)
	if idKey != "" {
		if v, ok := r[idKey]; ok && !IsNull(v) {
			id = String(v)
		}
	}
	cells := make([]Cell, 0, len(visible))
	for _, c := range visible {
		v := c.value(r)
		cells = append(cells, Cell{Key: c.Key, Value: v, Text: c.text(r, v)})
	}
	return RowView{ID: id, Index: i, Source: r, Cells: cells}
}
