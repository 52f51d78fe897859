package dataprocessing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invetl/pkg/contracts/domain"
)

// widgetScenario is the single-product example: one good sale and one with
// an unparsable quantity
func widgetScenario(t *testing.T) []domain.MergedRecord {
	t.Helper()

	inventory, _, err := CleanInventory(inventoryTable(
		[]string{"P1", "Widget", "2.00", "100", "10"},
	))
	require.NoError(t, err)

	sales, _, err := CleanSales(salesTable(
		[]string{"P1", "5", "9.99", "2025-01-01"},
		[]string{"P1", "bad", "9.99", "2025-01-02"},
	))
	require.NoError(t, err)

	return Merge(inventory, sales)
}

func TestWidgetScenario(t *testing.T) {
	merged := widgetScenario(t)
	require.Len(t, merged, 1)
	assert.Equal(t, "49.95", merged[0].Revenue.Decimal.String())
	assert.Equal(t, "10", merged[0].Cost.Decimal.String())
	assert.Equal(t, "39.95", merged[0].Profit.Decimal.String())

	byProduct := SalesByProduct(merged)
	require.Len(t, byProduct, 1)
	assert.Equal(t, "P1", byProduct[0].ProductID)
	assert.Equal(t, "Widget", byProduct[0].ProductName)
	assert.Equal(t, "5", byProduct[0].TotalQuantitySold.String())
	assert.Equal(t, "49.95", byProduct[0].TotalRevenue.String())
	assert.Equal(t, "39.95", byProduct[0].TotalProfit.String())

	status := InventoryStatus(merged)
	require.Len(t, status, 1)
	assert.Equal(t, "P1", status[0].ProductID)
	assert.Equal(t, "Widget", status[0].ProductName)
	assert.Equal(t, "100", status[0].StockOnHand.String())
	assert.Equal(t, "10", status[0].ReorderLevel.String())
	assert.Equal(t, "5", status[0].TotalQuantitySold.String())
	assert.Equal(t, "95", status[0].EstimatedStockAfterSales.String())
}

func TestSummariesExcludeUnmatchedSales(t *testing.T) {
	merged := Merge(
		[]domain.InventoryRecord{{ProductID: "P1", ProductName: strPtr("Widget"), StockOnHand: dec("3"), ReorderLevel: dec("1")}},
		[]domain.SaleRecord{
			{ProductID: "P9", Quantity: qty("2"), UnitPrice: dec("1")},
			{ProductID: "P1", Quantity: qty("1"), UnitPrice: dec("1")},
		},
	)
	require.Len(t, merged, 2)

	byProduct := SalesByProduct(merged)
	require.Len(t, byProduct, 1)
	assert.Equal(t, "P1", byProduct[0].ProductID)

	status := InventoryStatus(merged)
	require.Len(t, status, 1)
	assert.Equal(t, "P1", status[0].ProductID)
}

func TestSalesByProductSumsTreatNullAsZero(t *testing.T) {
	merged := Merge(
		[]domain.InventoryRecord{{ProductID: "P1", ProductName: strPtr("Widget"), UnitCost: dec("1")}},
		[]domain.SaleRecord{
			{ProductID: "P1", Quantity: qty("2"), UnitPrice: dec("3")},
			{ProductID: "P1", Quantity: qty("4")},
		},
	)

	byProduct := SalesByProduct(merged)
	require.Len(t, byProduct, 1)
	assert.Equal(t, "6", byProduct[0].TotalQuantitySold.String())
	assert.True(t, byProduct[0].TotalRevenue.Equal(decimal.NewFromInt(6)))
	assert.True(t, byProduct[0].TotalProfit.Equal(decimal.NewFromInt(4)))
}

func TestSalesByProductAllNullMetrics(t *testing.T) {
	merged := Merge(
		[]domain.InventoryRecord{{ProductID: "P1", ProductName: strPtr("Widget")}},
		[]domain.SaleRecord{{ProductID: "P1", Quantity: qty("2")}},
	)

	byProduct := SalesByProduct(merged)
	require.Len(t, byProduct, 1)
	assert.True(t, byProduct[0].TotalRevenue.IsZero())
	assert.True(t, byProduct[0].TotalProfit.IsZero())
}

func TestSummariesAreSortedAndCoverMatchedQuantity(t *testing.T) {
	inventory := []domain.InventoryRecord{
		{ProductID: "P3", ProductName: strPtr("Gizmo"), StockOnHand: dec("1"), ReorderLevel: dec("0")},
		{ProductID: "P1", ProductName: strPtr("Widget"), StockOnHand: dec("10"), ReorderLevel: dec("2")},
		{ProductID: "P2", ProductName: strPtr("Gadget"), StockOnHand: dec("5"), ReorderLevel: dec("1")},
	}
	sales := []domain.SaleRecord{
		{ProductID: "P3", Quantity: qty("4")},
		{ProductID: "P1", Quantity: qty("1")},
		{ProductID: "P2", Quantity: qty("2")},
		{ProductID: "P1", Quantity: qty("3")},
	}

	merged := Merge(inventory, sales)
	byProduct := SalesByProduct(merged)
	status := InventoryStatus(merged)

	require.Len(t, byProduct, 3)
	require.Len(t, status, 3)
	assert.Equal(t, []string{"P1", "P2", "P3"}, []string{byProduct[0].ProductID, byProduct[1].ProductID, byProduct[2].ProductID})
	assert.Equal(t, []string{"P1", "P2", "P3"}, []string{status[0].ProductID, status[1].ProductID, status[2].ProductID})

	matched, summed := decimal.Zero, decimal.Zero
	for _, m := range merged {
		if m.ProductName != nil {
			matched = matched.Add(m.Quantity)
		}
	}
	for _, s := range byProduct {
		summed = summed.Add(s.TotalQuantitySold)
	}
	assert.True(t, matched.Equal(summed), "matched %s, summed %s", matched, summed)

	for _, s := range status {
		assert.True(t, s.StockOnHand.Sub(s.TotalQuantitySold).Equal(s.EstimatedStockAfterSales))
	}
	assert.Equal(t, "-3", status[2].EstimatedStockAfterSales.String())
}

func TestInventoryStatusSkipsNullKeys(t *testing.T) {
	merged := Merge(
		[]domain.InventoryRecord{
			{ProductID: "P1", ProductName: strPtr("Widget"), ReorderLevel: dec("1")},
			{ProductID: "P2", StockOnHand: dec("4"), ReorderLevel: dec("1")},
		},
		[]domain.SaleRecord{{ProductID: "P1", Quantity: qty("1")}, {ProductID: "P2", Quantity: qty("1")}},
	)

	assert.Empty(t, InventoryStatus(merged))
	assert.Len(t, SalesByProduct(merged), 1)
}

func TestInventoryStatusFractionalAndLargeCounts(t *testing.T) {
	merged := Merge(
		[]domain.InventoryRecord{
			{ProductID: "P1", ProductName: strPtr("Widget"), StockOnHand: dec("100.5"), ReorderLevel: dec("10")},
			{ProductID: "P2", ProductName: strPtr("Gadget"), StockOnHand: dec("9223372036854775807"), ReorderLevel: dec("0")},
		},
		[]domain.SaleRecord{
			{ProductID: "P1", Quantity: qty("2.5")},
			{ProductID: "P2", Quantity: qty("9223372036854775807")},
			{ProductID: "P2", Quantity: qty("9223372036854775807")},
		},
	)

	status := InventoryStatus(merged)
	require.Len(t, status, 2)
	assert.Equal(t, "2.5", status[0].TotalQuantitySold.String())
	assert.Equal(t, "98", status[0].EstimatedStockAfterSales.String())
	assert.Equal(t, "18446744073709551614", status[1].TotalQuantitySold.String())
	assert.Equal(t, "-9223372036854775807", status[1].EstimatedStockAfterSales.String())

	byProduct := SalesByProduct(merged)
	require.Len(t, byProduct, 2)
	assert.Equal(t, "2.5", byProduct[0].TotalQuantitySold.String())
	assert.Equal(t, "18446744073709551614", byProduct[1].TotalQuantitySold.String())
}

func TestInventoryStatusGroupsEqualStockValues(t *testing.T) {
	merged := Merge(
		[]domain.InventoryRecord{{ProductID: "P1", ProductName: strPtr("Widget"), StockOnHand: dec("100.0"), ReorderLevel: dec("10")}},
		[]domain.SaleRecord{{ProductID: "P1", Quantity: qty("1")}, {ProductID: "P1", Quantity: qty("2")}},
	)

	status := InventoryStatus(merged)
	require.Len(t, status, 1)
	assert.Equal(t, "3", status[0].TotalQuantitySold.String())
}

func TestLowStock(t *testing.T) {
	statuses := []domain.InventoryStatus{
		{ProductID: "P1", ReorderLevel: qty("10"), EstimatedStockAfterSales: qty("95")},
		{ProductID: "P2", ReorderLevel: qty("10"), EstimatedStockAfterSales: qty("10")},
		{ProductID: "P3", ReorderLevel: qty("0"), EstimatedStockAfterSales: qty("-2")},
	}

	low := LowStock(statuses)
	require.Len(t, low, 2)
	assert.Equal(t, "P2", low[0].ProductID)
	assert.Equal(t, "P3", low[1].ProductID)
	assert.Empty(t, LowStock(nil))
}
