package partner

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/partner"
)

// SupplierInput carries the writable supplier fields
type SupplierInput struct {
	Name          string
	Company       string
	ContactNumber string
	Email         string
	Address       string
}

// SupplierList is a page of suppliers with the total count
type SupplierList struct {
	Suppliers []*partner.Supplier
	Total     int64
}

// SupplierService coordinates supplier CRUD
type SupplierService struct {
	repo   partner.SupplierRepository
	logger *zap.Logger
}

// NewSupplierService creates a SupplierService
func NewSupplierService(repo partner.SupplierRepository, logger *zap.Logger) *SupplierService {
	return &SupplierService{repo: repo, logger: logger}
}

// Create adds a supplier
func (s *SupplierService) Create(ctx context.Context, input SupplierInput) (*partner.Supplier, error) {
	supplier, err := partner.NewSupplier(input.Name, input.Company, input.ContactNumber, input.Email, input.Address)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	s.logger.Info("supplier created", zap.String("supplier_id", supplier.ID.String()))
	return supplier, nil
}

// GetByID returns one supplier
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns a page of suppliers and the total count
func (s *SupplierService) List(ctx context.Context, req ListRequest) (*SupplierList, error) {
	filter := req.toFilter()

	suppliers, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &SupplierList{Suppliers: suppliers, Total: total}, nil
}

// Update changes a supplier's details
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, input SupplierInput) (*partner.Supplier, error) {
	supplier, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(input.Name, input.Company, input.ContactNumber, input.Email, input.Address); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete removes a supplier
func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
