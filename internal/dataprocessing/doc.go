// Package dataprocessing turns the raw inventory and sales tables into the
// reconciled record set and its summaries.
//
// # Architecture
//
// The package holds three pipeline components, each a pure function of
// the previous one's output:
//
// 1. Cleaner: coerces column types and drops structurally invalid rows
// 2. Merger: left-joins sales onto inventory and derives revenue, cost and profit
// 3. Summarizer: groups the merged rows into SalesByProduct and InventoryStatus
//
// # Coercion
//
// Every typed column goes through an explicit parse function returning an
// optional value (ParseDecimal, ParseDate, ParseText). A value
// that is missing or cannot be parsed becomes null; it is never replaced
// by zero and never reported as an error. Row filtering happens afterwards
// in the cleaner, on the coerced values.
//
// # Usage
//
//	inventory, invStats, err := dataprocessing.CleanInventory(rawInventory)
//	sales, salesStats, err := dataprocessing.CleanSales(rawSales)
//	merged := dataprocessing.Merge(inventory, sales)
//	byProduct := dataprocessing.SalesByProduct(merged)
//	status := dataprocessing.InventoryStatus(merged)
//
// Money and the count columns (quantity, stock_on_hand, reorder_level) are
// carried as shopspring/decimal values, so revenue equals
// quantity × unit_price exactly and a fractional quantity such as 2.5 is
// kept as read. Sums cannot overflow.
package dataprocessing
