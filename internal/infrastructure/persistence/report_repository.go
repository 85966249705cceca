package persistence

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/application/report"
	"github.com/retailops/backend/internal/domain/trade"
)

// GormReportRepository implements the report read model with aggregate
// queries over invoices and inventory
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

func (r *GormReportRepository) rangedSales(ctx context.Context, dr report.DateRange) *gorm.DB {
	query := r.db.WithContext(ctx).Table("sales_invoices si").
		Where("si.status = ?", trade.DocStatusSubmitted)
	if !dr.From.IsZero() {
		query = query.Where("si.sale_date >= ?", dr.From)
	}
	if !dr.To.IsZero() {
		query = query.Where("si.sale_date <= ?", dr.To)
	}
	return query
}

// SalesSummary aggregates submitted sales invoices over the range
func (r *GormReportRepository) SalesSummary(ctx context.Context, dr report.DateRange) (*report.SalesSummary, error) {
	type summaryRow struct {
		InvoiceCount  int64
		TotalRevenue  decimal.Decimal
		TotalTax      decimal.Decimal
		TotalDiscount decimal.Decimal
	}
	var row summaryRow
	if err := r.rangedSales(ctx, dr).
		Select(`COUNT(*) AS invoice_count,
			COALESCE(SUM(si.grand_total), 0) AS total_revenue,
			COALESCE(SUM(si.tax_amount), 0) AS total_tax,
			COALESCE(SUM(si.discount_amount), 0) AS total_discount`).
		Scan(&row).Error; err != nil {
		return nil, err
	}

	type statusRow struct {
		PaymentStatus string
		Count         int64
	}
	var statusRows []statusRow
	if err := r.rangedSales(ctx, dr).
		Select("si.payment_status, COUNT(*) AS count").
		Group("si.payment_status").
		Scan(&statusRows).Error; err != nil {
		return nil, err
	}

	breakdown := make(map[string]int64, len(statusRows))
	for _, s := range statusRows {
		breakdown[s.PaymentStatus] = s.Count
	}

	return &report.SalesSummary{
		InvoiceCount:    row.InvoiceCount,
		TotalRevenue:    row.TotalRevenue.StringFixed(2),
		TotalTax:        row.TotalTax.StringFixed(2),
		TotalDiscount:   row.TotalDiscount.StringFixed(2),
		StatusBreakdown: breakdown,
	}, nil
}

// TopItems returns the best-selling line items by quantity
func (r *GormReportRepository) TopItems(ctx context.Context, dr report.DateRange, limit int) ([]report.TopItem, error) {
	type itemRow struct {
		ItemName     string
		TotalQty     decimal.Decimal
		TotalRevenue decimal.Decimal
	}
	var rows []itemRow

	query := r.db.WithContext(ctx).Table("sales_invoice_lines sil").
		Select(`sil.item_name,
			COALESCE(SUM(sil.quantity), 0) AS total_qty,
			COALESCE(SUM(sil.line_total), 0) AS total_revenue`).
		Joins("JOIN sales_invoices si ON si.id = sil.sales_invoice_id").
		Where("si.status = ?", trade.DocStatusSubmitted)
	if !dr.From.IsZero() {
		query = query.Where("si.sale_date >= ?", dr.From)
	}
	if !dr.To.IsZero() {
		query = query.Where("si.sale_date <= ?", dr.To)
	}
	err := query.
		Group("sil.item_name").
		Order("total_qty DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]report.TopItem, len(rows))
	for i, row := range rows {
		items[i] = report.TopItem{
			ItemName:     row.ItemName,
			TotalQty:     row.TotalQty.String(),
			TotalRevenue: row.TotalRevenue.StringFixed(2),
		}
	}
	return items, nil
}

// InventoryValuation returns the current stock value report
func (r *GormReportRepository) InventoryValuation(ctx context.Context) (*report.InventoryValuation, error) {
	type valuationRow struct {
		TotalItems    int64
		TotalQuantity decimal.Decimal
		TotalValue    decimal.Decimal
		LowStockCount int64
	}
	var row valuationRow
	if err := r.db.WithContext(ctx).Table("inventory_items").
		Select(`COUNT(*) AS total_items,
			COALESCE(SUM(quantity), 0) AS total_quantity,
			COALESCE(SUM(quantity * unit_price), 0) AS total_value,
			COALESCE(SUM(CASE WHEN low_stock_threshold > 0 AND quantity <= low_stock_threshold THEN 1 ELSE 0 END), 0) AS low_stock_count`).
		Scan(&row).Error; err != nil {
		return nil, err
	}
	return &report.InventoryValuation{
		TotalItems:    row.TotalItems,
		TotalQuantity: row.TotalQuantity.String(),
		TotalValue:    row.TotalValue.StringFixed(2),
		LowStockCount: row.LowStockCount,
	}, nil
}

// Dashboard returns the headline KPIs for the landing page
func (r *GormReportRepository) Dashboard(ctx context.Context, dr report.DateRange) (*report.Dashboard, error) {
	type salesRow struct {
		Count   int64
		Total   decimal.Decimal
		Pending int64
	}
	var sales salesRow
	if err := r.rangedSales(ctx, dr).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(si.grand_total), 0) AS total,
			COALESCE(SUM(CASE WHEN si.payment_status = ? THEN 1 ELSE 0 END), 0) AS pending`,
			trade.PaymentStatusPending).
		Scan(&sales).Error; err != nil {
		return nil, err
	}

	type purchaseRow struct {
		Count int64
		Total decimal.Decimal
	}
	var purchases purchaseRow
	query := r.db.WithContext(ctx).Table("purchase_invoices pi").
		Where("pi.status = ?", trade.DocStatusSubmitted).
		Where("pi.purchase_status <> ?", trade.PurchaseStatusCancelled)
	if !dr.From.IsZero() {
		query = query.Where("pi.purchase_date >= ?", dr.From)
	}
	if !dr.To.IsZero() {
		query = query.Where("pi.purchase_date <= ?", dr.To)
	}
	if err := query.
		Select("COUNT(*) AS count, COALESCE(SUM(pi.grand_total), 0) AS total").
		Scan(&purchases).Error; err != nil {
		return nil, err
	}

	valuation, err := r.InventoryValuation(ctx)
	if err != nil {
		return nil, err
	}

	// Gross proxy: sales minus purchases over the same range. True cost
	// of goods sold would need per-item cost tracking.
	gross := sales.Total.Sub(purchases.Total)

	return &report.Dashboard{
		TotalSales:     sales.Total.StringFixed(2),
		TotalPurchases: purchases.Total.StringFixed(2),
		GrossProfit:    gross.StringFixed(2),
		InventoryValue: valuation.TotalValue,
		SalesCount:     sales.Count,
		PurchaseCount:  purchases.Count,
		PendingSales:   sales.Pending,
		LowStockCount:  valuation.LowStockCount,
	}, nil
}

var _ report.Repository = (*GormReportRepository)(nil)
