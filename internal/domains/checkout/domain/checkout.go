package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Step is a stage of the checkout pipeline.
type Step string

const (
	StepIdentity  Step = "identity"
	StepShipping  Step = "shipping"
	StepPayment   Step = "payment"
	StepCompleted Step = "completed"
)

// PaymentMethod is one of the enumerated payment options.
type PaymentMethod string

const (
	// PaymentWebpay is the only active payment method.
	PaymentWebpay PaymentMethod = "webpay"
	// PaymentCrypto is listed but deliberately disabled.
	PaymentCrypto PaymentMethod = "crypto"
)

var (
	ErrEmptySessionID        = errors.New("checkout session id is required")
	ErrInvalidStep           = errors.New("action not allowed in current checkout step")
	ErrAlreadyCompleted      = errors.New("checkout already completed")
	ErrEmailNotVerified      = errors.New("email ownership not verified")
	ErrEmptyCart             = errors.New("cannot confirm an empty cart")
	ErrUnknownPaymentMethod  = errors.New("unknown payment method")
	ErrPaymentMethodDisabled = errors.New("payment method not yet available")
)

// ValidationError names the required fields a submission left empty.
// Transitions blocked by it leave the checkout state untouched.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Identity is the contact block captured in the first step.
type Identity struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ShippingProfile is the full recipient record an order carries.
type ShippingProfile struct {
	Identity
	Address string `json:"address"`
	City    string `json:"city"`
	Region  Region `json:"region"`
}

// Checkout is the session-scoped state machine driving a purchase:
// identity → shipping → payment → completed, with back-navigation and no
// forward skipping.
type Checkout struct {
	SessionID     string    `json:"sessionId"`
	Step          Step      `json:"step"`
	Identity      Identity  `json:"identity"`
	VerifiedEmail string    `json:"verifiedEmail,omitempty"`
	Address       string    `json:"address,omitempty"`
	City          string    `json:"city,omitempty"`
	Region        Region    `json:"region,omitempty"`
	ShippingFee   int64     `json:"shippingFee"`
	OrderID       string    `json:"orderId,omitempty"`
	StartedAt     time.Time `json:"startedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewCheckout(sessionID string) (*Checkout, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrEmptySessionID
	}
	now := time.Now()
	return &Checkout{SessionID: sessionID, Step: StepIdentity, StartedAt: now, UpdatedAt: now}, nil
}

// MarkEmailVerified records a successfully confirmed challenge destination.
func (c *Checkout) MarkEmailVerified(email string) {
	c.VerifiedEmail = normalizeEmail(email)
	c.touch()
}

// SubmitIdentity fills the contact block and advances to the shipping step.
// When requireVerification is set, the email must match the verified one.
func (c *Checkout) SubmitIdentity(identity Identity, requireVerification bool) error {
	if c.Step == StepCompleted {
		return ErrAlreadyCompleted
	}
	if c.Step != StepIdentity {
		return ErrInvalidStep
	}
	var missing []string
	if strings.TrimSpace(identity.FullName) == "" {
		missing = append(missing, "fullName")
	}
	if strings.TrimSpace(identity.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(identity.Phone) == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	if requireVerification && normalizeEmail(identity.Email) != c.VerifiedEmail {
		return ErrEmailNotVerified
	}
	c.Identity = identity
	c.Step = StepShipping
	c.touch()
	return nil
}

// SubmitShipping fills the delivery block, records the computed fee, and
// advances to the payment step.
func (c *Checkout) SubmitShipping(address, city string, region Region, fee int64) error {
	if c.Step == StepCompleted {
		return ErrAlreadyCompleted
	}
	if c.Step != StepShipping {
		return ErrInvalidStep
	}
	var missing []string
	if strings.TrimSpace(address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(city) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(string(region)) == "" {
		missing = append(missing, "region")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	c.Address = address
	c.City = city
	c.Region = region
	c.ShippingFee = fee
	c.Step = StepPayment
	c.touch()
	return nil
}

// ValidatePayment checks the chosen method without mutating state.
func ValidatePayment(method PaymentMethod) error {
	switch method {
	case PaymentWebpay:
		return nil
	case PaymentCrypto:
		return ErrPaymentMethodDisabled
	default:
		return ErrUnknownPaymentMethod
	}
}

// Complete seals the checkout against the produced order.
func (c *Checkout) Complete(orderID string) error {
	if c.Step == StepCompleted {
		return ErrAlreadyCompleted
	}
	if c.Step != StepPayment {
		return ErrInvalidStep
	}
	c.OrderID = orderID
	c.Step = StepCompleted
	c.touch()
	return nil
}

// Back navigates one step toward identity. Completed checkouts are sealed.
func (c *Checkout) Back() error {
	switch c.Step {
	case StepShipping:
		c.Step = StepIdentity
	case StepPayment:
		c.Step = StepShipping
	case StepCompleted:
		return ErrAlreadyCompleted
	default:
		return ErrInvalidStep
	}
	c.touch()
	return nil
}

// Profile assembles the shipping profile for the final order.
func (c *Checkout) Profile() ShippingProfile {
	return ShippingProfile{Identity: c.Identity, Address: c.Address, City: c.City, Region: c.Region}
}

func (c *Checkout) touch() {
	c.UpdatedAt = time.Now()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
