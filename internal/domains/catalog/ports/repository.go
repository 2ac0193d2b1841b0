package ports

import (
	"context"
	"errors"

	"github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	"github.com/thinkfashz/Osart/internal/shared/projection"
)

var ErrNotFound = errors.New("product not found")

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Category domain.Category
}

// Repository persists catalog products.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error)
	GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Product], error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter Filter) ([]*projection.Projection[*domain.Product], error)
}
