package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptySessionID  = errors.New("cart session id is required")
	ErrInvalidQuantity = errors.New("cart quantity must be positive")
	ErrOutOfStock      = errors.New("requested quantity exceeds available stock")
	ErrLineNotFound    = errors.New("cart line not found")
)

// LineItem is a snapshot of a product at the moment it entered the cart.
type LineItem struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// Cart holds a shopper's pending line items, keyed by browser session.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Lines     []LineItem `json:"lines"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func NewCart(sessionID string) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrEmptySessionID
	}
	return &Cart{SessionID: sessionID, UpdatedAt: time.Now()}, nil
}

// Upsert adds quantity to an existing line or appends a new one.
func (c *Cart) Upsert(item LineItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == item.ProductID {
			c.Lines[i].Quantity += item.Quantity
			c.touch()
			return nil
		}
	}
	c.Lines = append(c.Lines, item)
	c.touch()
	return nil
}

// SetQuantity replaces the quantity of a line. Zero or less removes the line.
func (c *Cart) SetQuantity(productID int64, quantity int) error {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			if quantity <= 0 {
				c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			} else {
				c.Lines[i].Quantity = quantity
			}
			c.touch()
			return nil
		}
	}
	return ErrLineNotFound
}

// Remove drops a line entirely.
func (c *Cart) Remove(productID int64) error {
	return c.SetQuantity(productID, 0)
}

// Clear empties the cart, keeping the session binding.
func (c *Cart) Clear() {
	c.Lines = nil
	c.touch()
}

// Quantity reports how many units of a product the cart already holds.
func (c *Cart) Quantity(productID int64) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return c.Lines[i].Quantity
		}
	}
	return 0
}

// Subtotal is the sum of unit price times quantity across lines, in whole pesos.
func (c *Cart) Subtotal() int64 {
	var total int64
	for i := range c.Lines {
		total += c.Lines[i].UnitPrice * int64(c.Lines[i].Quantity)
	}
	return total
}

// ItemCount is the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for i := range c.Lines {
		count += c.Lines[i].Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no sellable lines.
func (c *Cart) IsEmpty() bool {
	return c.ItemCount() == 0
}

func (c *Cart) touch() {
	c.UpdatedAt = time.Now()
}
