package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	tradeapp "github.com/retailops/backend/internal/application/trade"
	"github.com/retailops/backend/internal/domain/trade"
	"github.com/retailops/backend/internal/interfaces/http/dto"
)

// IdempotencyKeyHeader carries the client's duplicate-submission guard key
const IdempotencyKeyHeader = "Idempotency-Key"

// parseDateTime parses a datetime string in the accepted formats
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// SalesHandler handles sales invoice API endpoints
type SalesHandler struct {
	BaseHandler
	salesService *tradeapp.SalesInvoiceService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(salesService *tradeapp.SalesInvoiceService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

// InvoiceLineRequest is one requested invoice line. Either inventory_id
// or item_name must be given; when inventory_id is set the catalog
// name and price are snapshotted and the stock cap applies.
type InvoiceLineRequest struct {
	ItemName    string  `json:"item_name" binding:"max=200"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"gte=0"`
	InventoryID *string `json:"inventory_id" binding:"omitempty,uuid"`
}

// CreateSalesInvoiceRequest is the request body for creating a sale
type CreateSalesInvoiceRequest struct {
	CustomerID    *string              `json:"customer_id" binding:"omitempty,uuid"`
	CustomerName  string               `json:"customer_name" binding:"max=200"`
	SaleDate      string               `json:"sale_date"`
	Lines         []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
	TaxRate       *float64             `json:"tax_rate" binding:"omitempty,gte=0"`
	Discount      *float64             `json:"discount" binding:"omitempty,gte=0"`
	Notes         string               `json:"notes" binding:"max=1000"`
	PaymentStatus *string              `json:"payment_status" binding:"omitempty,oneof=Paid Pending Overdue"`
}

// UpdatePaymentStatusRequest is the request body for the payment PATCH
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=Paid Pending Overdue"`
}

func toLineInputs(lines []InvoiceLineRequest) ([]tradeapp.InvoiceLineInput, error) {
	inputs := make([]tradeapp.InvoiceLineInput, len(lines))
	for i, line := range lines {
		input := tradeapp.InvoiceLineInput{
			ItemName:  line.ItemName,
			Quantity:  decimal.NewFromFloat(line.Quantity),
			UnitPrice: decimal.NewFromFloat(line.UnitPrice),
		}
		if line.InventoryID != nil {
			id, err := uuid.Parse(*line.InventoryID)
			if err != nil {
				return nil, err
			}
			input.InventoryID = &id
		}
		inputs[i] = input
	}
	return inputs, nil
}

// Create creates and submits a sales invoice
func (h *SalesHandler) Create(c *gin.Context) {
	var req CreateSalesInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	appReq := tradeapp.CreateSalesInvoiceRequest{
		CustomerName:   req.CustomerName,
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	}

	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID format")
			return
		}
		appReq.CustomerID = &id
	}

	appReq.SaleDate = time.Now()
	if req.SaleDate != "" {
		saleDate, err := parseDateTime(req.SaleDate)
		if err != nil {
			h.BadRequest(c, "Invalid sale date format")
			return
		}
		appReq.SaleDate = saleDate
	}

	lines, err := toLineInputs(req.Lines)
	if err != nil {
		h.BadRequest(c, "Invalid inventory ID format")
		return
	}
	appReq.Lines = lines

	if req.TaxRate != nil {
		rate := decimal.NewFromFloat(*req.TaxRate)
		appReq.TaxRate = &rate
	}
	if req.Discount != nil {
		discount := decimal.NewFromFloat(*req.Discount)
		appReq.Discount = &discount
	}
	if req.PaymentStatus != nil {
		status := trade.PaymentStatus(*req.PaymentStatus)
		appReq.PaymentStatus = &status
	}

	invoice, err := h.salesService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, dto.NewSalesInvoiceResponse(invoice))
}

// List returns a page of sales invoices
func (h *SalesHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.salesService.List(c.Request.Context(), tradeapp.ListInvoicesRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Status:   c.Query("payment_status"),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewSalesInvoiceListResponse(result.Invoices), result.Total, req.Page, req.PageSize)
}

// GetByID returns one sales invoice with its lines
func (h *SalesHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.salesService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewSalesInvoiceResponse(invoice))
}

// UpdatePaymentStatus is the only mutation accepted after submission
func (h *SalesHandler) UpdatePaymentStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	invoice, err := h.salesService.UpdatePaymentStatus(c.Request.Context(), id, trade.PaymentStatus(req.PaymentStatus))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewSalesInvoiceResponse(invoice))
}

// Delete removes a sales invoice
func (h *SalesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	if err := h.salesService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers the sales invoice endpoints
func (h *SalesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/sales")
	{
		sales.GET("", h.List)
		sales.POST("", h.Create)
		sales.GET("/:id", h.GetByID)
		sales.PATCH("/:id", h.UpdatePaymentStatus)
		sales.DELETE("/:id", h.Delete)
	}
}
