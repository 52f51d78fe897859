package domain

import (
	"github.com/shopspring/decimal"
)

// Summary columns
const (
	ColumnTotalQuantitySold        = "total_quantity_sold"
	ColumnTotalRevenue             = "total_revenue"
	ColumnTotalProfit              = "total_profit"
	ColumnEstimatedStockAfterSales = "estimated_stock_after_sales"
)

// SalesByProduct aggregates merged sales per (product_id, product_name)
type SalesByProduct struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	TotalQuantitySold decimal.Decimal `json:"total_quantity_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
}

// InventoryStatus compares stock on hand with the quantity sold per
// (product_id, product_name, stock_on_hand, reorder_level). The estimate is
// not floored and goes negative when more was sold than stocked.
type InventoryStatus struct {
	ProductID                string          `json:"product_id"`
	ProductName              string          `json:"product_name"`
	StockOnHand              decimal.Decimal `json:"stock_on_hand"`
	ReorderLevel             decimal.Decimal `json:"reorder_level"`
	TotalQuantitySold        decimal.Decimal `json:"total_quantity_sold"`
	EstimatedStockAfterSales decimal.Decimal `json:"estimated_stock_after_sales"`
}

// BelowReorderLevel reports whether the estimated stock has fallen to or
// under the reorder level
func (s InventoryStatus) BelowReorderLevel() bool {
	return s.EstimatedStockAfterSales.LessThanOrEqual(s.ReorderLevel)
}
