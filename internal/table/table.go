// Package table derives the rows and cells a data grid should render from a
// column model, a row set and transient UI state (sort, filter, page and
// column visibility).
//
// Rows are never mutated. Every mutator on Engine only touches State, and
// Derive is a pure function of columns, rows and state.
package table

import (
	"errors"
	"fmt"
)

// PageSizes lists the page sizes a table may be switched to.
var PageSizes = []int{10, 20, 30, 40, 50}

// DefaultPageSize is the page size a new table starts with.
const DefaultPageSize = 10

var (
	// ErrEmptyColumnKey is returned when a column has no key.
	ErrEmptyColumnKey = errors.New("column key is empty")

	// ErrDuplicateColumn is returned when two columns share a key.
	ErrDuplicateColumn = errors.New("duplicate column key")

	// ErrUnknownColumn is returned when a column key is not present in the rows.
	ErrUnknownColumn = errors.New("column not found in rows")

	// ErrInvalidPageSize is returned for a page size outside PageSizes.
	ErrInvalidPageSize = errors.New("invalid page size")
)

// Row is one record: column key to raw value.
type Row map[string]any

// Column describes how one field is read, displayed, sorted and hidden.
type Column struct {
	Key    string
	Header string

	// Value reads the raw value from a row. Nil means row[Key].
	Value func(Row) any

	// Format turns a non-nil raw value into display text. Nil means
	// String(value). Missing values always render as "".
	Format func(row Row, value any) string

	// Compare orders two non-nil raw values. Nil means Compare.
	Compare func(a, b any) int

	DisableSort bool
	DisableHide bool

	// Width is a rendering hint for the presentation layer.
	Width int
}

// CanSort reports whether the column accepts a sort.
func (c Column) CanSort() bool { return !c.DisableSort }

// CanHide reports whether the column may be hidden.
func (c Column) CanHide() bool { return !c.DisableHide }

func (c Column) value(r Row) any {
	if c.Value != nil {
		return c.Value(r)
	}
	if r == nil {
		return nil
	}
	return r[c.Key]
}

func (c Column) text(r Row, v any) string {
	if IsNull(v) {
		return ""
	}
	if c.Format != nil {
		return c.Format(r, v)
	}
	return String(v)
}

func (c Column) compare(a, b any) int {
	if c.Compare != nil {
		return c.Compare(a, b)
	}
	return Compare(a, b)
}

// Direction is the sort direction of a column.
type Direction int

const (
	Unsorted Direction = iota
	Ascending
	Descending
)

func (d Direction) String() string {
	switch d {
	case Unsorted:
		return "none"
	case Ascending:
		return "asc"
	case Descending:
		return "desc"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// SortKey is one entry of a sort spec.
type SortKey struct {
	Column    string
	Direction Direction
}

// State is the transient, serializable UI state of one table.
type State struct {
	Sort       []SortKey
	Filter     string
	PageIndex  int
	PageSize   int
	Visibility map[string]bool
}

// DefaultState returns the state a table is mounted with.
func DefaultState() State {
	return State{PageSize: DefaultPageSize}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Sort = append([]SortKey(nil), s.Sort...)
	if s.Visibility != nil {
		out.Visibility = make(map[string]bool, len(s.Visibility))
		for k, v := range s.Visibility {
			out.Visibility[k] = v
		}
	}
	return out
}

// Visible reports whether a column is visible; absent entries are visible.
func (s State) Visible(key string) bool {
	v, ok := s.Visibility[key]
	return !ok || v
}

// SortOf returns the direction and position of key in the sort spec.
// The position is -1 when the column is not sorted.
func (s State) SortOf(key string) (Direction, int) {
	for i, k := range s.Sort {
		if k.Column == key {
			return k.Direction, i
		}
	}
	return Unsorted, -1
}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

func validateColumns(columns []Column) error {
	seen := make(map[string]bool, len(columns))
	for i, c := range columns {
		if c.Key == "" {
			return fmt.Errorf("column %d: %w", i, ErrEmptyColumnKey)
		}
		if seen[c.Key] {
			return fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Key)
		}
		seen[c.Key] = true
	}
	return nil
}

// CheckSchema reports column keys that no row carries. Columns with a Value
// accessor are skipped. An empty row set passes.
func CheckSchema(columns []Column, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	var missing []string
	for _, c := range columns {
		if c.Value != nil {
			continue
		}
		found := false
		for _, r := range rows {
			if _, ok := r[c.Key]; ok {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, c.Key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, missing)
	}
	return nil
}
