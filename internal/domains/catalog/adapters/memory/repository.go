package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	"github.com/thinkfashz/Osart/internal/domains/catalog/ports"
	"github.com/thinkfashz/Osart/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type entry struct {
	product   domain.Product
	createdAt time.Time
	updatedAt time.Time
}

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*entry
	nextID   int64
}

func NewRepository() *Repository {
	return &Repository{products: map[int64]*entry{}}
}

// NewSeededRepository preloads the initial catalog, used when no database is configured.
func NewSeededRepository(seed []*domain.Product) *Repository {
	repo := NewRepository()
	for _, product := range seed {
		if product == nil {
			continue
		}
		_, _ = repo.Save(context.Background(), product)
	}
	return repo
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := cloneProduct(product)
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		r.nextID++
		clone.ID = r.nextID
	} else if clone.ID > r.nextID {
		r.nextID = clone.ID
	}
	now := time.Now()
	existing, ok := r.products[clone.ID]
	createdAt := now
	if ok {
		createdAt = existing.createdAt
	}
	r.products[clone.ID] = &entry{product: *clone, createdAt: createdAt, updatedAt: now}
	return project(r.products[clone.ID]), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return project(stored), nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.Filter) ([]*projection.Projection[*domain.Product], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*projection.Projection[*domain.Product], 0, len(r.products))
	for _, stored := range r.products {
		if filter.Category != "" && stored.product.Category != filter.Category {
			continue
		}
		list = append(list, project(stored))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Entity.ID < list[j].Entity.ID })
	return list, nil
}

func project(stored *entry) *projection.Projection[*domain.Product] {
	clone := cloneProduct(&stored.product)
	return &projection.Projection[*domain.Product]{
		Entity:   clone,
		Metadata: projection.Metadata{CreatedAt: stored.createdAt, UpdatedAt: stored.updatedAt},
	}
}

func cloneProduct(product *domain.Product) *domain.Product {
	clone := *product
	if len(product.Specs) > 0 {
		clone.Specs = make(map[string]string, len(product.Specs))
		for k, v := range product.Specs {
			clone.Specs[k] = v
		}
	}
	clone.Tags = append([]string(nil), product.Tags...)
	return &clone
}
