package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/thinkfashz/Osart/internal/domains/cart/domain"
	"github.com/thinkfashz/Osart/internal/domains/cart/ports"
	catalogports "github.com/thinkfashz/Osart/internal/domains/catalog/ports"
)

// ErrInvalidInput signals the request violated a cart invariant.
var ErrInvalidInput = errors.New("invalid cart input")

// Service orchestrates cart use cases. Stock is validated against the
// catalog at add time; the line keeps a price snapshot from that moment.
type Service struct {
	store   ports.Store
	catalog catalogports.Service
}

func NewService(store ports.Store, catalog catalogports.Service) *Service {
	return &Service{store: store, catalog: catalog}
}

// Get returns the session cart, creating an empty one on first touch.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if errors.Is(err, ports.ErrNotFound) {
		return s.freshCart(sessionID)
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem snapshots the product and adds quantity to the session cart.
// The combined quantity may never exceed the product's current stock.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.ErrInvalidQuantity)
	}
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	product, err := s.catalog.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if cart.Quantity(productID)+quantity > product.Entity.Stock {
		return nil, fmt.Errorf("%w: product %d has %d units", domain.ErrOutOfStock, productID, product.Entity.Stock)
	}
	if err := cart.Upsert(domain.LineItem{
		ProductID: product.Entity.ID,
		Name:      product.Entity.Name,
		UnitPrice: product.Entity.Price,
		Quantity:  quantity,
		ImageURL:  product.Entity.ImageURL,
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity replaces a line's quantity. Zero removes the line.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error) {
	cart, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if quantity > 0 {
		product, err := s.catalog.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if quantity > product.Entity.Stock {
			return nil, fmt.Errorf("%w: product %d has %d units", domain.ErrOutOfStock, productID, product.Entity.Stock)
		}
	}
	if err := cart.SetQuantity(productID, quantity); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a line from the cart.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error) {
	return s.SetQuantity(ctx, sessionID, productID, 0)
}

// Clear deletes the session cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	err := s.store.Delete(ctx, sessionID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Service) freshCart(sessionID string) (*domain.Cart, error) {
	cart, err := domain.NewCart(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return cart, nil
}

var _ ports.Service = (*Service)(nil)
