package settings

import (
	"context"

	"go.uber.org/zap"

	"github.com/retailops/backend/internal/domain/settings"
)

// Service reads and updates the company settings singleton
type Service struct {
	repo   settings.Repository
	logger *zap.Logger
}

// NewService creates a settings Service
func NewService(repo settings.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Get returns the current settings, creating the defaults on first access
func (s *Service) Get(ctx context.Context) (*settings.CompanySettings, error) {
	return s.repo.Get(ctx)
}

// Update applies a partial patch and persists the result
func (s *Service) Update(ctx context.Context, patch settings.Patch) (*settings.CompanySettings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := current.Apply(patch); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}
	s.logger.Info("company settings updated")
	return current, nil
}
