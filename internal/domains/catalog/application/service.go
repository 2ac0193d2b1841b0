package application

import (
	"context"
	"errors"

	"github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	"github.com/thinkfashz/Osart/internal/domains/catalog/ports"
	"github.com/thinkfashz/Osart/internal/shared/projection"
)

// Service orchestrates the catalog bounded context use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filter ports.Filter) ([]*projection.Projection[*domain.Product], error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Product], error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) Update(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if _, err := s.repo.GetByID(ctx, product.ID); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// AdjustStock applies a delta to the stored stock level, clamped at zero.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta int) (*projection.Projection[*domain.Product], error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Entity.AdjustStock(delta)
	return s.repo.Save(ctx, current.Entity)
}

// SetLowStockThreshold stores the per-product alerting threshold.
func (s *Service) SetLowStockThreshold(ctx context.Context, id int64, threshold int) (*projection.Projection[*domain.Product], error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := current.Entity.SetLowStockThreshold(threshold); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Save(ctx, current.Entity)
}

var _ ports.Service = (*Service)(nil)
