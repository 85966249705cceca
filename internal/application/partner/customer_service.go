package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/partner"
	"github.com/retailops/backend/internal/domain/shared"
)

// CustomerInput carries the writable customer fields
type CustomerInput struct {
	Name        string
	PhoneNumber string
	Email       string
	Address     string
}

// ListRequest carries list query options for partners
type ListRequest struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

func (r ListRequest) toFilter() shared.Filter {
	filter := shared.Filter{
		Page:     r.Page,
		PageSize: r.PageSize,
		OrderBy:  r.OrderBy,
		OrderDir: r.OrderDir,
		Search:   r.Search,
	}
	filter.Normalize()
	return filter
}

// CustomerList is a page of customers with the total count
type CustomerList struct {
	Customers []*partner.Customer
	Total     int64
}

// CustomerService coordinates customer CRUD
type CustomerService struct {
	repo   partner.CustomerRepository
	logger *zap.Logger
}

// NewCustomerService creates a CustomerService
func NewCustomerService(repo partner.CustomerRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{repo: repo, logger: logger}
}

// Create adds a customer
func (s *CustomerService) Create(ctx context.Context, input CustomerInput) (*partner.Customer, error) {
	customer, err := partner.NewCustomer(input.Name, input.PhoneNumber, input.Email, input.Address)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.logger.Info("customer created", zap.String("customer_id", customer.ID.String()))
	return customer, nil
}

// GetByID returns one customer
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of customers and the total count
func (s *CustomerService) List(ctx context.Context, req ListRequest) (*CustomerList, error) {
	filter := req.toFilter()

	customers, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &CustomerList{Customers: customers, Total: total}, nil
}

// Update changes a customer's details
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, input CustomerInput) (*partner.Customer, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(input.Name, input.PhoneNumber, input.Email, input.Address); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
