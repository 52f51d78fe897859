package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory source columns
const (
	ColumnProductID    = "product_id"
	ColumnProductName  = "product_name"
	ColumnUnitCost     = "unit_cost"
	ColumnStockOnHand  = "stock_on_hand"
	ColumnReorderLevel = "reorder_level"
)

// Sales source columns
const (
	ColumnQuantity  = "quantity"
	ColumnUnitPrice = "unit_price"
	ColumnSaleDate  = "sale_date"
)

// InventoryRecord is one cleaned inventory row. ProductID is always set;
// every other field may be null when the source value was missing or
// could not be coerced.
type InventoryRecord struct {
	ProductID    string              `json:"product_id"`
	ProductName  *string             `json:"product_name,omitempty"`
	UnitCost     decimal.NullDecimal `json:"unit_cost"`
	StockOnHand  decimal.NullDecimal `json:"stock_on_hand"`
	ReorderLevel decimal.NullDecimal `json:"reorder_level"`
}

// SaleRecord is one cleaned sales transaction. ProductID and Quantity are
// guaranteed present after cleaning. Quantity keeps whatever numeric value
// the source held, fractional ones included.
type SaleRecord struct {
	ProductID string              `json:"product_id"`
	Quantity  decimal.Decimal     `json:"quantity"`
	UnitPrice decimal.NullDecimal `json:"unit_price"`
	SaleDate  *time.Time          `json:"sale_date,omitempty"`
}
