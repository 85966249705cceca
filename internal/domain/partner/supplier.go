package partner

import (
	"github.com/retailops/backend/internal/domain/shared"
)

// Supplier is a vendor record referenced by purchase invoices and
// inventory items
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string `gorm:"size:200;not null;index" json:"name"`
	Company       string `gorm:"size:200" json:"company"`
	ContactNumber string `gorm:"size:50" json:"contact_number"`
	Email         string `gorm:"size:200;index" json:"email"`
	Address       string `gorm:"size:500" json:"address"`
}

// TableName returns the table name for Supplier
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name, company, contactNumber, email, address string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "supplier name is required")
	}
	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Company:           company,
		ContactNumber:     contactNumber,
		Email:             email,
		Address:           address,
	}, nil
}

// Update changes the supplier details
func (s *Supplier) Update(name, company, contactNumber, email, address string) error {
	if name == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "supplier name is required")
	}
	s.Name = name
	s.Company = company
	s.ContactNumber = contactNumber
	s.Email = email
	s.Address = address
	s.Touch()
	return nil
}
