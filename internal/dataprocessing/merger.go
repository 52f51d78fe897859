package dataprocessing

import (
	"github.com/shopspring/decimal"

	"invetl/pkg/contracts/domain"
)

// Merge left-joins sales onto inventory by product_id. Every sale yields
// exactly one merged row, in sales order; a sale without an inventory
// match keeps null inventory fields. When inventory repeats a product_id
// the first occurrence is used.
func Merge(inventory []domain.InventoryRecord, sales []domain.SaleRecord) []domain.MergedRecord {
	index := make(map[string]int, len(inventory))
	for i, item := range inventory {
		if _, seen := index[item.ProductID]; !seen {
			index[item.ProductID] = i
		}
	}

	merged := make([]domain.MergedRecord, 0, len(sales))
	for _, sale := range sales {
		record := domain.MergedRecord{SaleRecord: sale}
		if i, ok := index[sale.ProductID]; ok {
			item := inventory[i]
			record.InventoryMatched = true
			record.ProductName = item.ProductName
			record.UnitCost = item.UnitCost
			record.StockOnHand = item.StockOnHand
			record.ReorderLevel = item.ReorderLevel
		}
		deriveMetrics(&record)
		merged = append(merged, record)
	}

	return merged
}

// deriveMetrics fills revenue, cost and profit. A null operand makes the
// result null; no default is substituted.
func deriveMetrics(record *domain.MergedRecord) {
	quantity := record.Quantity

	if record.UnitPrice.Valid {
		record.Revenue = decimal.NewNullDecimal(quantity.Mul(record.UnitPrice.Decimal))
	}
	if record.UnitCost.Valid {
		record.Cost = decimal.NewNullDecimal(quantity.Mul(record.UnitCost.Decimal))
	}
	if record.Revenue.Valid && record.Cost.Valid {
		record.Profit = decimal.NewNullDecimal(record.Revenue.Decimal.Sub(record.Cost.Decimal))
	}
}
