package exporter

import (
	"invetl/pkg/contracts/domain"
)

// MergedHeaders is the column order of the merged dataset
var MergedHeaders = []string{
	domain.ColumnProductID,
	domain.ColumnQuantity,
	domain.ColumnUnitPrice,
	domain.ColumnSaleDate,
	domain.ColumnProductName,
	domain.ColumnUnitCost,
	domain.ColumnStockOnHand,
	domain.ColumnReorderLevel,
	domain.ColumnRevenue,
	domain.ColumnCost,
	domain.ColumnProfit,
}

// SalesByProductHeaders is the column order of the sales summary
var SalesByProductHeaders = []string{
	domain.ColumnProductID,
	domain.ColumnProductName,
	domain.ColumnTotalQuantitySold,
	domain.ColumnTotalRevenue,
	domain.ColumnTotalProfit,
}

// InventoryStatusHeaders is the column order of the stock summary
var InventoryStatusHeaders = []string{
	domain.ColumnProductID,
	domain.ColumnProductName,
	domain.ColumnStockOnHand,
	domain.ColumnReorderLevel,
	domain.ColumnTotalQuantitySold,
	domain.ColumnEstimatedStockAfterSales,
}

// mergedRow converts one merged record to CSV cells
func mergedRow(r domain.MergedRecord) []string {
	return []string{
		r.ProductID,
		formatQuantity(r.Quantity),
		formatNullMoney(r.UnitPrice),
		formatDate(r.SaleDate),
		formatText(r.ProductName),
		formatNullMoney(r.UnitCost),
		formatNullQuantity(r.StockOnHand),
		formatNullQuantity(r.ReorderLevel),
		formatNullMoney(r.Revenue),
		formatNullMoney(r.Cost),
		formatNullMoney(r.Profit),
	}
}

func salesByProductRow(s domain.SalesByProduct) []string {
	return []string{
		s.ProductID,
		s.ProductName,
		formatQuantity(s.TotalQuantitySold),
		formatMoney(s.TotalRevenue),
		formatMoney(s.TotalProfit),
	}
}

func inventoryStatusRow(s domain.InventoryStatus) []string {
	return []string{
		s.ProductID,
		s.ProductName,
		formatQuantity(s.StockOnHand),
		formatQuantity(s.ReorderLevel),
		formatQuantity(s.TotalQuantitySold),
		formatQuantity(s.EstimatedStockAfterSales),
	}
}

// MergedRows renders the merged dataset in input order
func MergedRows(records []domain.MergedRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, mergedRow(r))
	}
	return rows
}

// SalesByProductRows renders the sales summary
func SalesByProductRows(summaries []domain.SalesByProduct) [][]string {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, salesByProductRow(s))
	}
	return rows
}

// InventoryStatusRows renders the stock summary
func InventoryStatusRows(statuses []domain.InventoryStatus) [][]string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, inventoryStatusRow(s))
	}
	return rows
}
