package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"stockroom/internal/table"
)

func sample() Table {
	return Table{
		Headers: []string{"Order ID", "Supplier", "Total"},
		Rows: [][]string{
			{"PO-001", "ABC Supplier", "$6,610.00"},
			{"PO-004", "Tech Wholesale, Inc", "$5,550.00"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sample()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "Order ID,Supplier,Total\n" +
		"PO-001,ABC Supplier,\"$6,610.00\"\n" +
		"PO-004,\"Tech Wholesale, Inc\",\"$5,550.00\"\n"
	if buf.String() != want {
		t.Errorf("csv =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sample()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer func() { _ = f.Close() }()

	if got := f.GetSheetName(0); got != Sheet {
		t.Errorf("sheet = %q, want %q", got, Sheet)
	}
	rows, err := f.GetRows(Sheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	want := append([][]string{sample().Headers}, sample().Rows...)
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %v, want %v", rows, want)
	}
}

func TestWriteText(t *testing.T) {
	for _, markdown := range []bool{false, true} {
		var buf bytes.Buffer
		if err := WriteText(&buf, sample(), markdown); err != nil {
			t.Fatalf("WriteText(markdown=%v): %v", markdown, err)
		}
		out := buf.String()
		for _, s := range []string{"PO-001", "ABC Supplier", "$5,550.00"} {
			if !strings.Contains(out, s) {
				t.Errorf("markdown=%v: output missing %q:\n%s", markdown, s, out)
			}
		}
		if !strings.Contains(strings.ToUpper(out), "SUPPLIER") {
			t.Errorf("markdown=%v: header missing:\n%s", markdown, out)
		}
		if markdown && !strings.Contains(out, "|") {
			t.Errorf("markdown output has no pipes:\n%s", out)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"orders.csv", "csv", false},
		{"/tmp/Orders.XLSX", "xlsx", false},
		{"md", "md", false},
		{".txt", "txt", false},
		{"orders.pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Format(tt.in)
		if tt.err {
			if !errors.Is(err, ErrUnsupportedFormat) {
				t.Errorf("Format(%q) err = %v, want ErrUnsupportedFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("Format(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 5, 31, 9, 30, 5, 0, time.UTC)
	got := Filename("/exports", "Purchase Orders", "csv", now)
	want := filepath.Join("/exports", "purchase-orders-20250531-093005.csv")
	if got != want {
		t.Errorf("Filename = %q, want %q", got, want)
	}
}

func TestWriteByExtension(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "nested", "orders.csv")
	if err := Write(path, sample()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "Order ID,Supplier,Total\n") {
		t.Errorf("csv file = %q", data)
	}

	if err := Write(filepath.Join(dir, "orders.pdf"), sample()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Write(.pdf) err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFromEngine(t *testing.T) {
	columns := []table.Column{
		{Key: "id", Header: "ID"},
		{Key: "name", Header: "Name"},
		{Key: "stock", Header: "Stock"},
	}
	var rows []table.Row
	for i := 0; i < 25; i++ {
		name := fmt.Sprintf("Lamp %02d", i)
		if i%2 == 1 {
			name = fmt.Sprintf("chair %02d", i)
		}
		rows = append(rows, table.Row{"id": i + 1, "name": name, "stock": 100 - i})
	}
	e, err := table.New(columns, rows)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.SetFilterText("lamp")
	e.SetSort("stock", table.Ascending)
	e.HideColumn("id")

	got := FromEngine(e)
	if want := []string{"Name", "Stock"}; !reflect.DeepEqual(got.Headers, want) {
		t.Errorf("headers = %v, want %v", got.Headers, want)
	}
	if len(got.Rows) != 13 {
		t.Fatalf("rows = %d, want 13", len(got.Rows))
	}
	if got.Rows[0][0] != "Lamp 24" || got.Rows[12][0] != "Lamp 00" {
		t.Errorf("first/last = %q/%q, want Lamp 24/Lamp 00", got.Rows[0][0], got.Rows[12][0])
	}
	if got.Rows[0][1] != "76" {
		t.Errorf("stock = %q, want 76", got.Rows[0][1])
	}
}

func TestTSV(t *testing.T) {
	got := TSV(Table{Headers: []string{"a", "b"}, Rows: [][]string{{"1", "2"}, {"3", ""}}})
	if want := "a\tb\n1\t2\n3\t"; got != want {
		t.Errorf("TSV = %q, want %q", got, want)
	}
}
