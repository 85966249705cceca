package handler

import (
	"github.com/gin-gonic/gin"

	settingsapp "github.com/retailops/backend/internal/application/settings"
	"github.com/retailops/backend/internal/domain/settings"
)

// SettingsHandler handles company settings API endpoints
type SettingsHandler struct {
	BaseHandler
	settingsService *settingsapp.Service
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService *settingsapp.Service) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest is the patch body; only present fields change
type UpdateSettingsRequest struct {
	CompanyName            *string `json:"company_name" binding:"omitempty,max=200"`
	Address                *string `json:"address" binding:"omitempty,max=500"`
	PhoneNumber            *string `json:"phone_number" binding:"omitempty,max=50"`
	Email                  *string `json:"email" binding:"omitempty,email,max=200"`
	TaxID                  *string `json:"tax_id" binding:"omitempty,max=100"`
	PaperSize              *string `json:"paper_size" binding:"omitempty,oneof=A4 Letter Thermal"`
	DefaultInvoiceTemplate *string `json:"default_invoice_template" binding:"omitempty,max=100"`
	ShowCompanyDetails     *bool   `json:"show_company_details"`
	DarkMode               *bool   `json:"dark_mode"`
}

// Get returns the company settings, creating defaults on first read
func (h *SettingsHandler) Get(c *gin.Context) {
	current, err := h.settingsService.Get(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, current)
}

// Update applies a partial settings patch
func (h *SettingsHandler) Update(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	updated, err := h.settingsService.Update(c.Request.Context(), settings.Patch{
		CompanyName:            req.CompanyName,
		Address:                req.Address,
		PhoneNumber:            req.PhoneNumber,
		Email:                  req.Email,
		TaxID:                  req.TaxID,
		PaperSize:              req.PaperSize,
		DefaultInvoiceTemplate: req.DefaultInvoiceTemplate,
		ShowCompanyDetails:     req.ShowCompanyDetails,
		DarkMode:               req.DarkMode,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, updated)
}

// RegisterRoutes registers the settings endpoints
func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/settings")
	{
		group.GET("", h.Get)
		group.PATCH("", h.Update)
	}
}
