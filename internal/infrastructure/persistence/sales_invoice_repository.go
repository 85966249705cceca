package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retailops/backend/internal/domain/shared"
	"github.com/retailops/backend/internal/domain/trade"
)

// GormSalesInvoiceRepository implements SalesInvoiceRepository using GORM
type GormSalesInvoiceRepository struct {
	db *gorm.DB
}

// NewGormSalesInvoiceRepository creates a GormSalesInvoiceRepository
func NewGormSalesInvoiceRepository(db *gorm.DB) *GormSalesInvoiceRepository {
	return &GormSalesInvoiceRepository{db: db}
}

// FindByID finds a sales invoice with its lines
func (r *GormSalesInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesInvoice, error) {
	var invoice trade.SalesInvoice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber finds a sales invoice by its invoice number
func (r *GormSalesInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*trade.SalesInvoice, error) {
	var invoice trade.SalesInvoice
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("invoice_number = ?", invoiceNumber).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// Find returns a page of sales invoices matching the filter
func (r *GormSalesInvoiceRepository) Find(ctx context.Context, filter shared.Filter) ([]*trade.SalesInvoice, error) {
	var invoices []*trade.SalesInvoice
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.SalesInvoice{}).Preload("Lines"), filter)
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Count returns the number of sales invoices matching the filter
func (r *GormSalesInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&trade.SalesInvoice{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an invoice together with its lines. Lines no
// longer on the aggregate are removed.
func (r *GormSalesInvoiceRepository) Save(ctx context.Context, invoice *trade.SalesInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(invoice).Error; err != nil {
			return err
		}
		return r.saveLines(tx, invoice)
	})
}

// SaveWithLock saves with an optimistic version check
func (r *GormSalesInvoiceRepository) SaveWithLock(ctx context.Context, invoice *trade.SalesInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := invoice.Version
		invoice.Version++
		invoice.UpdatedAt = time.Now()

		result := tx.Model(&trade.SalesInvoice{}).
			Where("id = ? AND version = ?", invoice.ID, currentVersion).
			Updates(map[string]interface{}{
				"customer_id":     invoice.CustomerID,
				"customer_name":   invoice.CustomerName,
				"sale_date":       invoice.SaleDate,
				"tax_rate":        invoice.TaxRate,
				"discount_amount": invoice.DiscountAmount,
				"subtotal":        invoice.Subtotal,
				"tax_amount":      invoice.TaxAmount,
				"grand_total":     invoice.GrandTotal,
				"payment_status":  invoice.PaymentStatus,
				"status":          invoice.Status,
				"notes":           invoice.Notes,
				"version":         invoice.Version,
				"updated_at":      invoice.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			invoice.Version = currentVersion
			return shared.NewDomainError(shared.ErrConcurrencyConflict.Code,
				"the invoice has been modified by another user")
		}
		return r.saveLines(tx, invoice)
	})
}

// Delete removes an invoice and its lines
func (r *GormSalesInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sales_invoice_id = ?", id).Delete(&trade.SalesInvoiceLine{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.SalesInvoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextInvoiceNumber returns the next free number, INV-YYYY-NNNNN
func (r *GormSalesInvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("INV-%d-", time.Now().Year())

	var last trade.SalesInvoice
	err := r.db.WithContext(ctx).
		Model(&trade.SalesInvoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	next := int64(1)
	if err == nil {
		if n, ok := parseInvoiceSeq(last.InvoiceNumber); ok {
			next = n + 1
		}
	}

	// The string DESC sort misorders sequences past five digits, and a
	// concurrent create may have taken the candidate already. Bump until
	// a free number is found instead of dying on the unique index.
	number := fmt.Sprintf("%s%05d", prefix, next)
	for i := 0; i < 100; i++ {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&trade.SalesInvoice{}).
			Where("invoice_number = ?", number).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
		next++
		number = fmt.Sprintf("%s%05d", prefix, next)
	}
	return "", fmt.Errorf("no free invoice number after %s", number)
}

func (r *GormSalesInvoiceRepository) saveLines(tx *gorm.DB, invoice *trade.SalesInvoice) error {
	lineIDs := make([]uuid.UUID, len(invoice.Lines))
	for i, line := range invoice.Lines {
		lineIDs[i] = line.ID
	}

	if len(lineIDs) > 0 {
		if err := tx.Where("sales_invoice_id = ? AND id NOT IN ?", invoice.ID, lineIDs).
			Delete(&trade.SalesInvoiceLine{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("sales_invoice_id = ?", invoice.ID).
			Delete(&trade.SalesInvoiceLine{}).Error; err != nil {
			return err
		}
	}

	for i := range invoice.Lines {
		invoice.Lines[i].SalesInvoiceID = invoice.ID
		if err := tx.Save(&invoice.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormSalesInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SalesInvoiceSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormSalesInvoiceRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("invoice_number ILIKE ? OR customer_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("sale_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("sale_date <= ?", t)
			}
		}
	}
	return query
}

// parseInvoiceSeq extracts the numeric suffix of PREFIX-YYYY-NNNNN numbers
func parseInvoiceSeq(number string) (int64, bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		return 0, false
	}
	var n int64
	if _, err := fmt.Sscanf(parts[2], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}

var _ trade.SalesInvoiceRepository = (*GormSalesInvoiceRepository)(nil)
