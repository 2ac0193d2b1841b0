package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	"github.com/thinkfashz/Osart/internal/domains/catalog/ports"
	"github.com/thinkfashz/Osart/internal/shared/projection"
)

type fakeCatalogRepo struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{products: map[int64]*domain.Product{}}
}

func (f *fakeCatalogRepo) Save(_ context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	copy := *product
	if copy.ID == 0 {
		f.nextID++
		copy.ID = f.nextID
	}
	f.products[copy.ID] = &copy
	return wrap(&copy), nil
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id int64) (*projection.Projection[*domain.Product], error) {
	if p, ok := f.products[id]; ok {
		copy := *p
		return wrap(&copy), nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeCatalogRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeCatalogRepo) List(_ context.Context, filter ports.Filter) ([]*projection.Projection[*domain.Product], error) {
	var list []*projection.Projection[*domain.Product]
	for _, p := range f.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		copy := *p
		list = append(list, wrap(&copy))
	}
	return list, nil
}

func wrap(p *domain.Product) *projection.Projection[*domain.Product] {
	now := time.Now()
	return &projection.Projection[*domain.Product]{Entity: p, Metadata: projection.Metadata{CreatedAt: now, UpdatedAt: now}}
}

func TestCreate_ValidatesAndPersists(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewService(repo)

	product, err := domain.NewProduct(0, "Arduino Uno R3 Original", 12500, 15, domain.CategoryMicrocontrollers)
	require.NoError(t, err)

	saved, err := svc.Create(context.Background(), product)
	require.NoError(t, err)
	require.NotZero(t, saved.Entity.ID)
	require.Equal(t, int64(12500), saved.Entity.Price)
}

func TestCreate_InvalidPrice(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewService(repo)

	product := &domain.Product{Name: "Sensor PIR", Price: 0, Stock: 3, Category: domain.CategorySensors}
	_, err := svc.Create(context.Background(), product)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestCreate_UnknownCategory(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewService(repo)

	product := &domain.Product{Name: "Sensor PIR", Price: 3500, Stock: 3, Category: "Cables"}
	_, err := svc.Create(context.Background(), product)
	require.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestUpdate_MissingProduct(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewService(repo)

	product := &domain.Product{ID: 99, Name: "Sensor PIR", Price: 3500, Stock: 3, Category: domain.CategorySensors}
	_, err := svc.Update(context.Background(), product)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestList_FiltersByCategory(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewService(repo)

	for _, seed := range domain.SeedProducts() {
		_, err := svc.Create(context.Background(), seed)
		require.NoError(t, err)
	}

	tools, err := svc.List(context.Background(), ports.Filter{Category: domain.CategoryTools})
	require.NoError(t, err)
	require.Len(t, tools, 2)
	for _, p := range tools {
		require.Equal(t, domain.CategoryTools, p.Entity.Category)
	}

	all, err := svc.List(context.Background(), ports.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 6)
}

func TestAdjustStock_ClampsAtZero(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewService(repo)

	product, err := domain.NewProduct(0, "Transistor NPN 2N2222", 800, 10, domain.CategorySemiconductors)
	require.NoError(t, err)
	saved, err := svc.Create(context.Background(), product)
	require.NoError(t, err)

	updated, err := svc.AdjustStock(context.Background(), saved.Entity.ID, -25)
	require.NoError(t, err)
	require.Equal(t, 0, updated.Entity.Stock)
	require.True(t, updated.Entity.IsCritical())
}

func TestSetLowStockThreshold_RejectsNegative(t *testing.T) {
	repo := newFakeCatalogRepo()
	svc := NewService(repo)

	product, err := domain.NewProduct(0, "Multímetro Digital Pro", 24990, 8, domain.CategoryTools)
	require.NoError(t, err)
	saved, err := svc.Create(context.Background(), product)
	require.NoError(t, err)

	_, err = svc.SetLowStockThreshold(context.Background(), saved.Entity.ID, -1)
	require.ErrorIs(t, err, ErrInvalidInput)

	updated, err := svc.SetLowStockThreshold(context.Background(), saved.Entity.ID, 10)
	require.NoError(t, err)
	require.Equal(t, 10, updated.Entity.LowStockThreshold)
	require.True(t, updated.Entity.IsCritical())
}
