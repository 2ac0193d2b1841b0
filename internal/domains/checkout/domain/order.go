package domain

import (
	"errors"
	"strings"
	"time"
)

// Status tracks an order through fulfilment. Orders settle as paid; later
// states are driven from the back-office.
type Status string

const (
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
)

var (
	ErrEmptyOrderID      = errors.New("order id is required")
	ErrNoOrderLines      = errors.New("order must carry at least one line")
	ErrTotalMismatch     = errors.New("order total must equal subtotal plus shipping fee")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrOrderNotAdvancing = errors.New("order status can only move forward")
)

// OrderLine is a snapshot of a purchased product, decoupled from any later
// catalog mutation.
type OrderLine struct {
	ProductID int64  `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// Order is the immutable record of a completed purchase.
type Order struct {
	ID          string          `json:"id"`
	Profile     ShippingProfile `json:"profile"`
	Lines       []OrderLine     `json:"lines"`
	Subtotal    int64           `json:"subtotal"`
	ShippingFee int64           `json:"shippingFee"`
	Total       int64           `json:"total"`
	Status      Status          `json:"status"`
	PlacedAt    time.Time       `json:"placedAt"`
}

// NewOrder seals a purchase. The total is derived once, here, and never
// recomputed afterwards.
func NewOrder(id string, profile ShippingProfile, lines []OrderLine, subtotal, shippingFee int64) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyOrderID
	}
	if len(lines) == 0 {
		return nil, ErrNoOrderLines
	}
	return &Order{
		ID:          id,
		Profile:     profile,
		Lines:       append([]OrderLine(nil), lines...),
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       subtotal + shippingFee,
		Status:      StatusPaid,
		PlacedAt:    time.Now().UTC(),
	}, nil
}

// Validate re-checks the sealed invariants before persistence.
func (o *Order) Validate() error {
	if strings.TrimSpace(o.ID) == "" {
		return ErrEmptyOrderID
	}
	if len(o.Lines) == 0 {
		return ErrNoOrderLines
	}
	if o.Total != o.Subtotal+o.ShippingFee {
		return ErrTotalMismatch
	}
	switch o.Status {
	case StatusPaid, StatusShipped, StatusDelivered:
		return nil
	default:
		return ErrInvalidStatus
	}
}

// Advance moves the status forward along paid → shipped → delivered.
func (o *Order) Advance(next Status) error {
	rank := map[Status]int{StatusPaid: 0, StatusShipped: 1, StatusDelivered: 2}
	current, ok := rank[o.Status]
	if !ok {
		return ErrInvalidStatus
	}
	target, ok := rank[next]
	if !ok {
		return ErrInvalidStatus
	}
	if target <= current {
		return ErrOrderNotAdvancing
	}
	o.Status = next
	return nil
}
