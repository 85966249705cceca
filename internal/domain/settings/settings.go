package settings

import (
	"context"

	"github.com/retailops/backend/internal/domain/shared"
)

// Allowed paper sizes for printed invoices
const (
	PaperSizeA4      = "A4"
	PaperSizeLetter  = "Letter"
	PaperSizeThermal = "Thermal"
)

// CompanySettings is the singleton company profile used on invoices
// and in the UI.
type CompanySettings struct {
	shared.BaseAggregateRoot
	CompanyName            string `gorm:"size:200" json:"company_name"`
	Address                string `gorm:"size:500" json:"address"`
	PhoneNumber            string `gorm:"size:50" json:"phone_number"`
	Email                  string `gorm:"size:200" json:"email"`
	TaxID                  string `gorm:"size:100" json:"tax_id"`
	PaperSize              string `gorm:"size:20;default:'A4'" json:"paper_size"`
	DefaultInvoiceTemplate string `gorm:"size:50;default:'standard'" json:"default_invoice_template"`
	ShowCompanyDetails     bool   `gorm:"default:true" json:"show_company_details"`
	DarkMode               bool   `gorm:"default:false" json:"dark_mode"`
}

// TableName returns the table name for CompanySettings
func (CompanySettings) TableName() string {
	return "company_settings"
}

// DefaultSettings returns the settings row created on first access
func DefaultSettings() *CompanySettings {
	return &CompanySettings{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		PaperSize:              PaperSizeA4,
		DefaultInvoiceTemplate: "standard",
		ShowCompanyDetails:     true,
	}
}

// Patch holds the updatable fields; nil means leave unchanged
type Patch struct {
	CompanyName            *string
	Address                *string
	PhoneNumber            *string
	Email                  *string
	TaxID                  *string
	PaperSize              *string
	DefaultInvoiceTemplate *string
	ShowCompanyDetails     *bool
	DarkMode               *bool
}

// Apply merges a patch into the settings
func (s *CompanySettings) Apply(p Patch) error {
	if p.PaperSize != nil {
		switch *p.PaperSize {
		case PaperSizeA4, PaperSizeLetter, PaperSizeThermal:
		default:
			return shared.NewDomainErrorf(shared.ErrCodeValidation, "unknown paper size %q", *p.PaperSize)
		}
		s.PaperSize = *p.PaperSize
	}
	if p.CompanyName != nil {
		s.CompanyName = *p.CompanyName
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
	if p.PhoneNumber != nil {
		s.PhoneNumber = *p.PhoneNumber
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.TaxID != nil {
		s.TaxID = *p.TaxID
	}
	if p.DefaultInvoiceTemplate != nil {
		s.DefaultInvoiceTemplate = *p.DefaultInvoiceTemplate
	}
	if p.ShowCompanyDetails != nil {
		s.ShowCompanyDetails = *p.ShowCompanyDetails
	}
	if p.DarkMode != nil {
		s.DarkMode = *p.DarkMode
	}
	s.Touch()
	return nil
}

// Repository is the persistence contract for the settings singleton
type Repository interface {
	// Get returns the settings row, creating the default one if missing
	Get(ctx context.Context) (*CompanySettings, error)
	Save(ctx context.Context, settings *CompanySettings) error
}
