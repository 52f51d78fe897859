package domain

import (
	"github.com/shopspring/decimal"
)

// Derived columns of the merged dataset
const (
	ColumnRevenue = "revenue"
	ColumnCost    = "cost"
	ColumnProfit  = "profit"
)

// MergedRecord is a sale enriched with the matching inventory fields and
// the derived financial metrics. Inventory fields are null when the sale
// had no inventory match. InventoryMatched records the join result itself,
// since a matched inventory row may carry nothing but its product_id.
type MergedRecord struct {
	SaleRecord

	InventoryMatched bool                `json:"inventory_matched"`
	ProductName      *string             `json:"product_name,omitempty"`
	UnitCost         decimal.NullDecimal `json:"unit_cost"`
	StockOnHand      decimal.NullDecimal `json:"stock_on_hand"`
	ReorderLevel     decimal.NullDecimal `json:"reorder_level"`

	Revenue decimal.NullDecimal `json:"revenue"`
	Cost    decimal.NullDecimal `json:"cost"`
	Profit  decimal.NullDecimal `json:"profit"`
}
