package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	"github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository keeps settled orders in process memory.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: map[string]domain.Order{}}
}

func (r *OrderRepository) Save(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, domain.ErrEmptyOrderID
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneOrder(order)
	r.orders[order.ID] = *clone
	return cloneOrder(clone), nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrOrderNotFound
	}
	return cloneOrder(&order), nil
}

func (r *OrderRepository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		list = append(list, cloneOrder(&order))
	}
	sortByPlacedAt(list)
	return list, nil
}

func (r *OrderRepository) ListByEmail(_ context.Context, email string) ([]*domain.Order, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.Order
	for _, order := range r.orders {
		if strings.ToLower(order.Profile.Email) == email {
			list = append(list, cloneOrder(&order))
		}
	}
	sortByPlacedAt(list)
	return list, nil
}

func sortByPlacedAt(list []*domain.Order) {
	sort.Slice(list, func(i, j int) bool { return list[i].PlacedAt.After(list[j].PlacedAt) })
}

func cloneOrder(order *domain.Order) *domain.Order {
	copy := *order
	copy.Lines = append([]domain.OrderLine(nil), order.Lines...)
	return &copy
}
