package report

import "time"

// DateRange bounds a report query. Zero values mean unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// SalesSummary aggregates submitted sales invoices over a date range.
// Monetary figures are decimal strings to keep full precision on the wire.
type SalesSummary struct {
	InvoiceCount    int64            `json:"invoice_count"`
	TotalRevenue    string           `json:"total_revenue"`
	TotalTax        string           `json:"total_tax"`
	TotalDiscount   string           `json:"total_discount"`
	StatusBreakdown map[string]int64 `json:"status_breakdown"`
}

// TopItem is one row of the best-sellers report
type TopItem struct {
	ItemName     string `json:"item_name"`
	TotalQty     string `json:"total_quantity"`
	TotalRevenue string `json:"total_revenue"`
}

// InventoryValuation is the stock value report
type InventoryValuation struct {
	TotalItems    int64  `json:"total_items"`
	TotalQuantity string `json:"total_quantity"`
	TotalValue    string `json:"total_value"`
	LowStockCount int64  `json:"low_stock_count"`
}

// Dashboard holds the headline KPIs for the landing page
type Dashboard struct {
	TotalSales     string `json:"total_sales"`
	TotalPurchases string `json:"total_purchases"`
	GrossProfit    string `json:"gross_profit"`
	InventoryValue string `json:"inventory_value"`
	SalesCount     int64  `json:"sales_count"`
	PurchaseCount  int64  `json:"purchase_count"`
	PendingSales   int64  `json:"pending_sales"`
	LowStockCount  int64  `json:"low_stock_count"`
}
