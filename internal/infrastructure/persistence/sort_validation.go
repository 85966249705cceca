package persistence

import "strings"

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Anything unrecognized becomes DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField checks a sort field against a whitelist and falls back
// to defaultField on anything unknown. Keeps user input out of ORDER BY.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// SalesInvoiceSortFields are the allowed sort columns for sales invoices
var SalesInvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"customer_name":  true,
	"sale_date":      true,
	"grand_total":    true,
	"payment_status": true,
	"status":         true,
}

// PurchaseInvoiceSortFields are the allowed sort columns for purchase invoices
var PurchaseInvoiceSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"invoice_number":  true,
	"supplier_name":   true,
	"purchase_date":   true,
	"grand_total":     true,
	"purchase_status": true,
	"status":          true,
}

// ItemSortFields are the allowed sort columns for inventory items
var ItemSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"item_name":      true,
	"category":       true,
	"sku":            true,
	"quantity":       true,
	"unit_price":     true,
	"last_restocked": true,
}

// CustomerSortFields are the allowed sort columns for customers
var CustomerSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"phone_number": true,
	"email":        true,
}

// SupplierSortFields are the allowed sort columns for suppliers
var SupplierSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"company":    true,
	"email":      true,
}

// UserSortFields are the allowed sort columns for users
var UserSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"email":      true,
	"role":       true,
	"active":     true,
}
