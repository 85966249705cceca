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

// GormPurchaseInvoiceRepository implements PurchaseInvoiceRepository using GORM
type GormPurchaseInvoiceRepository struct {
	db *gorm.DB
}

// NewGormPurchaseInvoiceRepository creates a GormPurchaseInvoiceRepository
func NewGormPurchaseInvoiceRepository(db *gorm.DB) *GormPurchaseInvoiceRepository {
	return &GormPurchaseInvoiceRepository{db: db}
}

// FindByID finds a purchase invoice with its lines
func (r *GormPurchaseInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.PurchaseInvoice, error) {
	var invoice trade.PurchaseInvoice
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

// FindByNumber finds a purchase invoice by its invoice number
func (r *GormPurchaseInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*trade.PurchaseInvoice, error) {
	var invoice trade.PurchaseInvoice
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

// Find returns a page of purchase invoices matching the filter
func (r *GormPurchaseInvoiceRepository) Find(ctx context.Context, filter shared.Filter) ([]*trade.PurchaseInvoice, error) {
	var invoices []*trade.PurchaseInvoice
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.PurchaseInvoice{}).Preload("Lines"), filter)
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Count returns the number of purchase invoices matching the filter
func (r *GormPurchaseInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&trade.PurchaseInvoice{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an invoice together with its lines
func (r *GormPurchaseInvoiceRepository) Save(ctx context.Context, invoice *trade.PurchaseInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(invoice).Error; err != nil {
			return err
		}
		return r.saveLines(tx, invoice)
	})
}

// SaveWithLock saves with an optimistic version check
func (r *GormPurchaseInvoiceRepository) SaveWithLock(ctx context.Context, invoice *trade.PurchaseInvoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := invoice.Version
		invoice.Version++
		invoice.UpdatedAt = time.Now()

		result := tx.Model(&trade.PurchaseInvoice{}).
			Where("id = ? AND version = ?", invoice.ID, currentVersion).
			Updates(map[string]interface{}{
				"supplier_id":     invoice.SupplierID,
				"supplier_name":   invoice.SupplierName,
				"purchase_date":   invoice.PurchaseDate,
				"tax_rate":        invoice.TaxRate,
				"discount_amount": invoice.DiscountAmount,
				"subtotal":        invoice.Subtotal,
				"tax_amount":      invoice.TaxAmount,
				"grand_total":     invoice.GrandTotal,
				"purchase_status": invoice.PurchaseStatus,
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
func (r *GormPurchaseInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_invoice_id = ?", id).Delete(&trade.PurchaseInvoiceLine{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.PurchaseInvoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextInvoiceNumber returns the next free number, PUR-YYYY-NNNNN
func (r *GormPurchaseInvoiceRepository) NextInvoiceNumber(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("PUR-%d-", time.Now().Year())

	var last trade.PurchaseInvoice
	err := r.db.WithContext(ctx).
		Model(&trade.PurchaseInvoice{}).
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

	// Same guard as the sales side: the string DESC sort misorders
	// sequences past five digits and a concurrent create may have taken
	// the candidate, so bump until a free number is found.
	number := fmt.Sprintf("%s%05d", prefix, next)
	for i := 0; i < 100; i++ {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&trade.PurchaseInvoice{}).
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

func (r *GormPurchaseInvoiceRepository) saveLines(tx *gorm.DB, invoice *trade.PurchaseInvoice) error {
	lineIDs := make([]uuid.UUID, len(invoice.Lines))
	for i, line := range invoice.Lines {
		lineIDs[i] = line.ID
	}

	if len(lineIDs) > 0 {
		if err := tx.Where("purchase_invoice_id = ? AND id NOT IN ?", invoice.ID, lineIDs).
			Delete(&trade.PurchaseInvoiceLine{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("purchase_invoice_id = ?", invoice.ID).
			Delete(&trade.PurchaseInvoiceLine{}).Error; err != nil {
			return err
		}
	}

	for i := range invoice.Lines {
		invoice.Lines[i].PurchaseInvoiceID = invoice.ID
		if err := tx.Save(&invoice.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormPurchaseInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyConditions(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PurchaseInvoiceSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormPurchaseInvoiceRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("invoice_number ILIKE ? OR supplier_name ILIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "purchase_status":
			query = query.Where("purchase_status = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("purchase_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("purchase_date <= ?", t)
			}
		}
	}
	return query
}

var _ trade.PurchaseInvoiceRepository = (*GormPurchaseInvoiceRepository)(nil)
