package dataprocessing

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "invetl/internal/errors"
	"invetl/pkg/contracts/domain"
)

// Stats describes what cleaning did to one source table
type Stats struct {
	Source      string `json:"source"`
	InputRows   int    `json:"input_rows"`
	KeptRows    int    `json:"kept_rows"`
	DroppedRows int    `json:"dropped_rows"`

	// CoercionFailures counts, per column, present values that could not
	// be coerced and became null
	CoercionFailures map[string]int `json:"coercion_failures"`

	// DropReasons counts dropped rows by the first key column found null
	DropReasons map[string]int `json:"drop_reasons"`
}

func newStats(table *domain.Table) Stats {
	return Stats{
		Source:           table.Name,
		InputRows:        table.Len(),
		CoercionFailures: make(map[string]int),
		DropReasons:      make(map[string]int),
	}
}

func (s *Stats) drop(column string) {
	s.DroppedRows++
	s.DropReasons[column]++
}

// TotalCoercionFailures sums coercion failures across columns
func (s Stats) TotalCoercionFailures() int {
	total := 0
	for _, n := range s.CoercionFailures {
		total += n
	}
	return total
}

// InventoryColumns are the columns CleanInventory reads
var InventoryColumns = []string{
	domain.ColumnProductID,
	domain.ColumnProductName,
	domain.ColumnUnitCost,
	domain.ColumnStockOnHand,
	domain.ColumnReorderLevel,
}

// SalesColumns are the columns CleanSales reads
var SalesColumns = []string{
	domain.ColumnProductID,
	domain.ColumnQuantity,
	domain.ColumnUnitPrice,
	domain.ColumnSaleDate,
}

// CleanInventory coerces the inventory table and drops rows without a
// product_id
func CleanInventory(table *domain.Table) ([]domain.InventoryRecord, Stats, error) {
	cols, err := columnIndexes(table, InventoryColumns)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := newStats(table)
	records := make([]domain.InventoryRecord, 0, table.Len())

	for row := range table.Rows {
		cell := func(column string) string { return table.Cell(row, cols[column]) }

		unitCost := coerceDecimal(&stats, domain.ColumnUnitCost, cell(domain.ColumnUnitCost))
		stock := coerceDecimal(&stats, domain.ColumnStockOnHand, cell(domain.ColumnStockOnHand))
		reorder := coerceDecimal(&stats, domain.ColumnReorderLevel, cell(domain.ColumnReorderLevel))

		productID := ParseText(cell(domain.ColumnProductID))
		if productID == nil {
			stats.drop(domain.ColumnProductID)
			continue
		}

		records = append(records, domain.InventoryRecord{
			ProductID:    *productID,
			ProductName:  ParseText(cell(domain.ColumnProductName)),
			UnitCost:     unitCost,
			StockOnHand:  stock,
			ReorderLevel: reorder,
		})
	}

	stats.KeptRows = len(records)
	return records, stats, nil
}

// CleanSales coerces the sales table and drops rows without a product_id
// or a quantity. A quantity that failed coercion counts as missing.
func CleanSales(table *domain.Table) ([]domain.SaleRecord, Stats, error) {
	cols, err := columnIndexes(table, SalesColumns)
	if err != nil {
		return nil, Stats{}, err
	}

	stats := newStats(table)
	records := make([]domain.SaleRecord, 0, table.Len())

	for row := range table.Rows {
		cell := func(column string) string { return table.Cell(row, cols[column]) }

		quantity := coerceDecimal(&stats, domain.ColumnQuantity, cell(domain.ColumnQuantity))
		unitPrice := coerceDecimal(&stats, domain.ColumnUnitPrice, cell(domain.ColumnUnitPrice))
		saleDate := coerceDate(&stats, domain.ColumnSaleDate, cell(domain.ColumnSaleDate))

		productID := ParseText(cell(domain.ColumnProductID))
		switch {
		case productID == nil:
			stats.drop(domain.ColumnProductID)
			continue
		case !quantity.Valid:
			stats.drop(domain.ColumnQuantity)
			continue
		}

		records = append(records, domain.SaleRecord{
			ProductID: *productID,
			Quantity:  quantity.Decimal,
			UnitPrice: unitPrice,
			SaleDate:  saleDate,
		})
	}

	stats.KeptRows = len(records)
	return records, stats, nil
}

// columnIndexes resolves each required column to its header position
func columnIndexes(table *domain.Table, columns []string) (map[string]int, error) {
	if table == nil {
		return nil, apperrors.NewAppValidationError("table is nil")
	}
	indexes := make(map[string]int, len(columns))
	for _, column := range columns {
		idx, ok := table.ColumnIndex(column)
		if !ok {
			return nil, apperrors.NewParsingError("required column missing", apperrors.NewNotFoundError("column "+column)).
				WithContext("source", table.Name).
				WithContext("column", column)
		}
		indexes[column] = idx
	}
	return indexes, nil
}

func coerceDecimal(stats *Stats, column, raw string) decimal.NullDecimal {
	v := ParseDecimal(raw)
	if !v.Valid && !IsMissing(raw) {
		stats.CoercionFailures[column]++
	}
	return v
}

func coerceDate(stats *Stats, column, raw string) *time.Time {
	v := ParseDate(raw)
	if v == nil && !IsMissing(raw) {
		stats.CoercionFailures[column]++
	}
	return v
}
