package ports

import (
	"context"

	"github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	"github.com/thinkfashz/Osart/internal/shared/projection"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	List(ctx context.Context, filter Filter) ([]*projection.Projection[*domain.Product], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Product], error)
	Create(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error)
	Update(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error)
	Delete(ctx context.Context, id int64) error
	AdjustStock(ctx context.Context, id int64, delta int) (*projection.Projection[*domain.Product], error)
	SetLowStockThreshold(ctx context.Context, id int64, threshold int) (*projection.Projection[*domain.Product], error)
}
