package domain

import (
	"errors"
	"strings"
)

// Category groups products in the storefront catalog.
type Category string

const (
	CategoryMicrocontrollers Category = "Microcontroladores"
	CategoryPassives         Category = "Pasivos"
	CategoryTools            Category = "Herramientas"
	CategorySemiconductors   Category = "Semiconductores"
	CategorySensors          Category = "Sensores"
	CategoryRobotics         Category = "Robótica"
	CategorySecurity         Category = "Seguridad"
)

// DefaultLowStockThreshold applies when a product does not declare its own.
const DefaultLowStockThreshold = 5

var (
	ErrEmptyName       = errors.New("product name is required")
	ErrInvalidPrice    = errors.New("product price must be greater than zero")
	ErrInvalidStock    = errors.New("product stock cannot be negative")
	ErrInvalidCategory = errors.New("product category is unknown")
	ErrInvalidRating   = errors.New("product rating must be between 0 and 5")
)

// Product is the aggregate managed by the catalog bounded context.
// Price is expressed in whole Chilean pesos; monetary math stays integral.
type Product struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Price             int64             `json:"price"`
	Stock             int               `json:"stock"`
	LowStockThreshold int               `json:"lowStockThreshold"`
	Category          Category          `json:"category"`
	Rating            float64           `json:"rating"`
	ImageURL          string            `json:"imageUrl,omitempty"`
	Description       string            `json:"description,omitempty"`
	Guide             string            `json:"guide,omitempty"`
	ProTip            string            `json:"proTip,omitempty"`
	Specs             map[string]string `json:"specs,omitempty"`
	Installments      int               `json:"installments,omitempty"`
	DeliveryDays      string            `json:"deliveryDays,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
}

// NewProduct validates the invariants and builds a new Product aggregate.
func NewProduct(id int64, name string, price int64, stock int, category Category) (*Product, error) {
	p := &Product{ID: id}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.Reprice(price); err != nil {
		return nil, err
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	p.Stock = stock
	if err := p.Recategorize(category); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename mutates the product name ensuring the invariant.
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice sets a new unit price. Prices are whole-currency integers.
func (p *Product) Reprice(price int64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}
	p.Price = price
	return nil
}

// Recategorize validates the category against the known set.
func (p *Product) Recategorize(category Category) error {
	if !IsValidCategory(category) {
		return ErrInvalidCategory
	}
	p.Category = category
	return nil
}

// Rate stores the latest aggregate rating.
func (p *Product) Rate(rating float64) error {
	if rating < 0 || rating > 5 {
		return ErrInvalidRating
	}
	p.Rating = rating
	return nil
}

// AdjustStock applies a delta, clamping at zero so inventory never goes negative.
func (p *Product) AdjustStock(delta int) {
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
}

// SetLowStockThreshold stores the alerting threshold, rejecting negatives.
func (p *Product) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return ErrInvalidStock
	}
	p.LowStockThreshold = threshold
	return nil
}

// IsCritical reports whether the product sits at or below its low-stock threshold.
func (p *Product) IsCritical() bool {
	threshold := p.LowStockThreshold
	if threshold == 0 {
		threshold = DefaultLowStockThreshold
	}
	return p.Stock <= threshold
}

// InStock reports whether at least one unit can be sold.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// Validate re-applies core invariants for persistence.
func (p *Product) Validate() error {
	if err := p.Rename(p.Name); err != nil {
		return err
	}
	if err := p.Reprice(p.Price); err != nil {
		return err
	}
	if p.Stock < 0 {
		return ErrInvalidStock
	}
	if err := p.Recategorize(p.Category); err != nil {
		return err
	}
	return p.Rate(p.Rating)
}

// IsValidCategory reports membership in the fixed category set.
func IsValidCategory(category Category) bool {
	switch category {
	case CategoryMicrocontrollers, CategoryPassives, CategoryTools,
		CategorySemiconductors, CategorySensors, CategoryRobotics, CategorySecurity:
		return true
	default:
		return false
	}
}
