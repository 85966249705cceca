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

// PurchasesHandler handles purchase invoice API endpoints
type PurchasesHandler struct {
	BaseHandler
	purchaseService *tradeapp.PurchaseInvoiceService
}

// NewPurchasesHandler creates a new PurchasesHandler
func NewPurchasesHandler(purchaseService *tradeapp.PurchaseInvoiceService) *PurchasesHandler {
	return &PurchasesHandler{purchaseService: purchaseService}
}

// CreatePurchaseInvoiceRequest is the request body for recording a purchase
type CreatePurchaseInvoiceRequest struct {
	SupplierID   *string              `json:"supplier_id" binding:"omitempty,uuid"`
	SupplierName string               `json:"supplier_name" binding:"max=200"`
	PurchaseDate string               `json:"purchase_date"`
	Lines        []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
	TaxRate      *float64             `json:"tax_rate" binding:"omitempty,gte=0"`
	Discount     *float64             `json:"discount" binding:"omitempty,gte=0"`
	Notes        string               `json:"notes" binding:"max=1000"`
	Status       *string              `json:"status" binding:"omitempty,oneof=Ordered Received Cancelled"`
}

// UpdatePurchaseStatusRequest is the request body for the status PATCH
type UpdatePurchaseStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Ordered Received Cancelled"`
}

// Create creates and submits a purchase invoice
func (h *PurchasesHandler) Create(c *gin.Context) {
	var req CreatePurchaseInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	appReq := tradeapp.CreatePurchaseInvoiceRequest{
		SupplierName:   req.SupplierName,
		Notes:          req.Notes,
		IdempotencyKey: c.GetHeader(IdempotencyKeyHeader),
	}

	if req.SupplierID != nil {
		id, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			h.BadRequest(c, "Invalid supplier ID format")
			return
		}
		appReq.SupplierID = &id
	}

	appReq.PurchaseDate = time.Now()
	if req.PurchaseDate != "" {
		purchaseDate, err := parseDateTime(req.PurchaseDate)
		if err != nil {
			h.BadRequest(c, "Invalid purchase date format")
			return
		}
		appReq.PurchaseDate = purchaseDate
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
	if req.Status != nil {
		status := trade.PurchaseStatus(*req.Status)
		appReq.Status = &status
	}

	invoice, err := h.purchaseService.Create(c.Request.Context(), appReq)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, dto.NewPurchaseInvoiceResponse(invoice))
}

// List returns a page of purchase invoices
func (h *PurchasesHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.purchaseService.List(c.Request.Context(), tradeapp.ListInvoicesRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Status:   c.Query("status"),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, dto.NewPurchaseInvoiceListResponse(result.Invoices), result.Total, req.Page, req.PageSize)
}

// GetByID returns one purchase invoice with its lines
func (h *PurchasesHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	invoice, err := h.purchaseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewPurchaseInvoiceResponse(invoice))
}

// UpdateStatus moves the purchase along Ordered -> Received/Cancelled.
// Receiving restocks the bound items inside the same transaction.
func (h *PurchasesHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	var req UpdatePurchaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	invoice, err := h.purchaseService.UpdateStatus(c.Request.Context(), id, trade.PurchaseStatus(req.Status))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dto.NewPurchaseInvoiceResponse(invoice))
}

// Delete removes a purchase invoice
func (h *PurchasesHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID format")
		return
	}

	if err := h.purchaseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers the purchase invoice endpoints
func (h *PurchasesHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.GET("", h.List)
		purchases.POST("", h.Create)
		purchases.GET("/:id", h.GetByID)
		purchases.PATCH("/:id", h.UpdateStatus)
		purchases.DELETE("/:id", h.Delete)
	}
}
