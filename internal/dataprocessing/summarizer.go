package dataprocessing

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"invetl/pkg/contracts/domain"
)

type salesKey struct {
	productID   string
	productName string
}

// statusKey holds stock_on_hand and reorder_level in canonical decimal
// text so that 100 and 100.0 fall in the same group
type statusKey struct {
	productID    string
	productName  string
	stockOnHand  string
	reorderLevel string
}

// SalesByProduct totals quantity, revenue and profit per
// (product_id, product_name). Null revenue or profit adds nothing to a
// sum. Rows without a product_name (unmatched sales) form no group.
// Results are ordered by product_id, then product_name.
func SalesByProduct(merged []domain.MergedRecord) []domain.SalesByProduct {
	groups := make(map[salesKey]*domain.SalesByProduct)

	for _, record := range merged {
		if record.ProductName == nil {
			continue
		}
		key := salesKey{productID: record.ProductID, productName: *record.ProductName}

		group, ok := groups[key]
		if !ok {
			group = &domain.SalesByProduct{
				ProductID:         key.productID,
				ProductName:       key.productName,
				TotalQuantitySold: decimal.Zero,
				TotalRevenue:      decimal.Zero,
				TotalProfit:       decimal.Zero,
			}
			groups[key] = group
		}

		group.TotalQuantitySold = group.TotalQuantitySold.Add(record.Quantity)
		if record.Revenue.Valid {
			group.TotalRevenue = group.TotalRevenue.Add(record.Revenue.Decimal)
		}
		if record.Profit.Valid {
			group.TotalProfit = group.TotalProfit.Add(record.Profit.Decimal)
		}
	}

	result := make([]domain.SalesByProduct, 0, len(groups))
	for _, group := range groups {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		if c := strings.Compare(result[i].ProductID, result[j].ProductID); c != 0 {
			return c < 0
		}
		return result[i].ProductName < result[j].ProductName
	})

	return result
}

// InventoryStatus totals quantity sold per (product_id, product_name,
// stock_on_hand, reorder_level) and estimates the stock left after those
// sales. Rows with any null key field form no group, so unmatched sales
// never appear. The estimate is not floored at zero.
func InventoryStatus(merged []domain.MergedRecord) []domain.InventoryStatus {
	groups := make(map[statusKey]*domain.InventoryStatus)

	for _, record := range merged {
		if record.ProductName == nil || !record.StockOnHand.Valid || !record.ReorderLevel.Valid {
			continue
		}
		key := statusKey{
			productID:    record.ProductID,
			productName:  *record.ProductName,
			stockOnHand:  record.StockOnHand.Decimal.String(),
			reorderLevel: record.ReorderLevel.Decimal.String(),
		}

		group, ok := groups[key]
		if !ok {
			group = &domain.InventoryStatus{
				ProductID:         key.productID,
				ProductName:       key.productName,
				StockOnHand:       record.StockOnHand.Decimal,
				ReorderLevel:      record.ReorderLevel.Decimal,
				TotalQuantitySold: decimal.Zero,
			}
			groups[key] = group
		}
		group.TotalQuantitySold = group.TotalQuantitySold.Add(record.Quantity)
	}

	result := make([]domain.InventoryStatus, 0, len(groups))
	for _, group := range groups {
		group.EstimatedStockAfterSales = group.StockOnHand.Sub(group.TotalQuantitySold)
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		if a.ProductName != b.ProductName {
			return a.ProductName < b.ProductName
		}
		if c := a.StockOnHand.Cmp(b.StockOnHand); c != 0 {
			return c < 0
		}
		return a.ReorderLevel.LessThan(b.ReorderLevel)
	})

	return result
}

// LowStock returns the statuses whose estimated stock is at or below the
// reorder level, in input order
func LowStock(statuses []domain.InventoryStatus) []domain.InventoryStatus {
	var low []domain.InventoryStatus
	for _, status := range statuses {
		if status.BelowReorderLevel() {
			low = append(low, status)
		}
	}
	return low
}
