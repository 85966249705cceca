package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventoryapp "github.com/retailops/backend/internal/application/inventory"
	"github.com/retailops/backend/internal/domain/inventory"
	"github.com/retailops/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles inventory API endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.Service
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.Service) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateItemRequest is the request body for adding a catalog item
type CreateItemRequest struct {
	ItemName          string  `json:"item_name" binding:"required,min=1,max=200"`
	Category          string  `json:"category" binding:"max=100"`
	Size              string  `json:"size" binding:"max=50"`
	Color             string  `json:"color" binding:"max=50"`
	SKU               string  `json:"sku" binding:"required,min=1,max=100"`
	Quantity          float64 `json:"quantity" binding:"gte=0"`
	UnitPrice         float64 `json:"unit_price" binding:"gte=0"`
	LowStockThreshold float64 `json:"low_stock_threshold" binding:"gte=0"`
	SupplierID        *string `json:"supplier_id" binding:"omitempty,uuid"`
}

// UpdateItemRequest is the request body for editing a catalog item.
// Quantity is deliberately absent; stock moves only through the
// quantity endpoint.
type UpdateItemRequest struct {
	ItemName          string  `json:"item_name" binding:"required,min=1,max=200"`
	Category          string  `json:"category" binding:"max=100"`
	Size              string  `json:"size" binding:"max=50"`
	Color             string  `json:"color" binding:"max=50"`
	UnitPrice         float64 `json:"unit_price" binding:"gte=0"`
	LowStockThreshold float64 `json:"low_stock_threshold" binding:"gte=0"`
	SupplierID        *string `json:"supplier_id" binding:"omitempty,uuid"`
}

// AdjustQuantityRequest is the request body for a stock adjustment
type AdjustQuantityRequest struct {
	Operation string  `json:"operation" binding:"required,oneof=add subtract"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0"`
}

func parseSupplierID(raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Create adds a catalog item
func (h *InventoryHandler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	supplierID, err := parseSupplierID(req.SupplierID)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), inventoryapp.CreateItemRequest{
		ItemName:          req.ItemName,
		Category:          req.Category,
		Size:              req.Size,
		Color:             req.Color,
		SKU:               req.SKU,
		Quantity:          decimal.NewFromFloat(req.Quantity),
		UnitPrice:         decimal.NewFromFloat(req.UnitPrice),
		LowStockThreshold: decimal.NewFromFloat(req.LowStockThreshold),
		SupplierID:        supplierID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, item)
}

// List returns a page of catalog items
func (h *InventoryHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	result, err := h.inventoryService.List(c.Request.Context(), inventoryapp.ListItemsRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
		Category: c.Query("category"),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, req.Page, req.PageSize)
}

// Stats returns inventory-wide totals
func (h *InventoryHandler) Stats(c *gin.Context) {
	stats, err := h.inventoryService.Stats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, stats)
}

// GetByID returns one catalog item
func (h *InventoryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	item, err := h.inventoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Update edits descriptive item fields
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	supplierID, err := parseSupplierID(req.SupplierID)
	if err != nil {
		h.BadRequest(c, "Invalid supplier ID format")
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), id, inventoryapp.UpdateItemRequest{
		ItemName:          req.ItemName,
		Category:          req.Category,
		Size:              req.Size,
		Color:             req.Color,
		UnitPrice:         decimal.NewFromFloat(req.UnitPrice),
		LowStockThreshold: decimal.NewFromFloat(req.LowStockThreshold),
		SupplierID:        supplierID,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// AdjustQuantity adds or subtracts stock
func (h *InventoryHandler) AdjustQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	item, err := h.inventoryService.Adjust(c.Request.Context(), id,
		inventory.AdjustOperation(req.Operation), decimal.NewFromFloat(req.Quantity))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete removes a catalog item
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.BadRequest(c, "Invalid item ID format")
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RegisterRoutes registers the inventory endpoints
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	items := rg.Group("/inventory")
	{
		items.GET("", h.List)
		items.POST("", h.Create)
		items.GET("/stats", h.Stats)
		items.GET("/:id", h.GetByID)
		items.PATCH("/:id", h.Update)
		items.PATCH("/:id/quantity", h.AdjustQuantity)
		items.DELETE("/:id", h.Delete)
	}
}
