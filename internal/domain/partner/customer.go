package partner

import (
	"github.com/retailops/backend/internal/domain/shared"
)

// Customer is a buyer record referenced by sales invoices
type Customer struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"size:200;not null;index" json:"name"`
	PhoneNumber string `gorm:"size:50" json:"phone_number"`
	Email       string `gorm:"size:200;index" json:"email"`
	Address     string `gorm:"size:500" json:"address"`
}

// TableName returns the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer
func NewCustomer(name, phoneNumber, email, address string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "customer name is required")
	}
	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		PhoneNumber:       phoneNumber,
		Email:             email,
		Address:           address,
	}, nil
}

// Update changes the customer details
func (c *Customer) Update(name, phoneNumber, email, address string) error {
	if name == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "customer name is required")
	}
	c.Name = name
	c.PhoneNumber = phoneNumber
	c.Email = email
	c.Address = address
	c.Touch()
	return nil
}
