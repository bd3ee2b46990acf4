// Package export writes the rows a table currently shows to CSV, XLSX or an
// aligned text table.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/xuri/excelize/v2"

	"stockroom/internal/table"
)

// ErrUnsupportedFormat is returned for a file extension with no writer.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Formats lists the extensions Write understands.
var Formats = []string{"csv", "xlsx", "txt", "md"}

// Sheet is the worksheet name used for XLSX exports.
const Sheet = "Export"

// Table is a header row plus display-text rows.
type Table struct {
	Headers []string
	Rows    [][]string
}

// FromEngine captures every filtered, sorted row of e with its visible
// columns, ignoring pagination.
func FromEngine(e *table.Engine) Table {
	var t Table
	view := e.Derive()
	if len(view.HeaderGroups) > 0 {
		for _, h := range view.HeaderGroups[0].Headers {
			t.Headers = append(t.Headers, h.Label)
		}
	}
	for _, rv := range e.Sorted() {
		row := make([]string, len(rv.Cells))
		for i, c := range rv.Cells {
			row[i] = c.Text
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Format returns the normalised format for a path or bare extension.
func Format(pathOrExt string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(pathOrExt), "."))
	if ext == "" {
		ext = strings.ToLower(strings.TrimPrefix(pathOrExt, "."))
	}
	for _, f := range Formats {
		if f == ext {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, pathOrExt)
}

// Filename builds "<dir>/<name>-<timestamp>.<ext>".
func Filename(dir, name, ext string, now time.Time) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", slug, now.Format("20060102-150405"), ext))
}

// Write exports t to path, picking the writer from the file extension.
func Write(path string, t Table) error {
	format, err := Format(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	switch format {
	case "csv":
		err = WriteCSV(file, t)
	case "xlsx":
		err = WriteXLSX(file, t)
	case "txt":
		err = WriteText(file, t, false)
	case "md":
		err = WriteText(file, t, true)
	}
	if err != nil {
		return err
	}
	return file.Close()
}

// WriteCSV writes the header and rows as CSV.
func WriteCSV(w io.Writer, t Table) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(t.Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// WriteXLSX writes a single-sheet workbook with a bold header row.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), Sheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(Sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write XLSX header: %w", err)
	}

	for i, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address XLSX row: %w", err)
		}
		if err := f.SetSheetRow(Sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write XLSX row: %w", err)
		}
	}

	if len(t.Headers) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("failed to create XLSX style: %w", err)
		}
		last, err := excelize.CoordinatesToCellName(len(t.Headers), 1)
		if err != nil {
			return fmt.Errorf("failed to address XLSX header: %w", err)
		}
		if err := f.SetCellStyle(Sheet, "A1", last, bold); err != nil {
			return fmt.Errorf("failed to style XLSX header: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write XLSX: %w", err)
	}
	return nil
}

// WriteText writes an aligned text table, or a Markdown table when markdown
// is set.
func WriteText(w io.Writer, t Table, markdown bool) error {
	var tw *tablewriter.Table
	if markdown {
		tw = tablewriter.NewTable(w, tablewriter.WithRenderer(renderer.NewMarkdown()))
	} else {
		tw = tablewriter.NewWriter(w)
	}

	tw.Header(t.Headers)
	for _, row := range t.Rows {
		if err := tw.Append(row); err != nil {
			return fmt.Errorf("failed to append text row: %w", err)
		}
	}
	if err := tw.Render(); err != nil {
		return fmt.Errorf("failed to render text table: %w", err)
	}
	return nil
}

// TSV joins the header and rows with tabs and newlines, for the clipboard.
func TSV(t Table) string {
	var b strings.Builder
	b.WriteString(strings.Join(t.Headers, "\t"))
	for _, row := range t.Rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String()
}
