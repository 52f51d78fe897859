package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// InventoryHeader and SalesHeader are the source headers used by fixtures
var (
	InventoryHeader = []string{"product_id", "product_name", "unit_cost", "stock_on_hand", "reorder_level"}
	SalesHeader     = []string{"product_id", "quantity", "unit_price", "sale_date"}
)

// WriteFile writes content to name under dir and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
	return path
}

// WriteCSV writes a header and rows as comma-separated lines. Cells are
// written verbatim, so fixtures must not need quoting.
func WriteCSV(t *testing.T, dir, name string, header []string, rows ...[]string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return WriteFile(t, dir, name, b.String())
}

// WriteWorkbook writes a header and rows to the first sheet of a new .xlsx
func WriteWorkbook(t *testing.T, dir, name string, header []string, rows ...[]string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f := excelize.NewFile()
	defer f.Close()

	all := append([][]string{header}, rows...)
	for r, row := range all {
		values := make([]interface{}, len(row))
		for c, v := range row {
			values[c] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &values); err != nil {
			t.Fatalf("write workbook row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
	return path
}
