package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	cartports "github.com/thinkfashz/Osart/internal/domains/cart/ports"
	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	"github.com/thinkfashz/Osart/internal/domains/checkout/ports"
	verificationports "github.com/thinkfashz/Osart/internal/domains/verification/ports"
)

// ErrInvalidInput signals the request violated a checkout invariant.
var ErrInvalidInput = errors.New("invalid checkout input")

// Service drives the checkout pipeline: it owns the session state machine,
// computes shipping, gates identity on OTP verification, and hands settled
// orders to the orchestrator.
type Service struct {
	store        ports.Store
	orders       ports.OrderRepository
	carts        cartports.Service
	verifier     verificationports.Service
	orchestrator ports.Orchestrator
	requireOTP   bool
}

type Option func(*Service)

// WithoutVerification disables the OTP gate on the identity step.
func WithoutVerification() Option {
	return func(s *Service) { s.requireOTP = false }
}

func NewService(
	store ports.Store,
	orders ports.OrderRepository,
	carts cartports.Service,
	verifier verificationports.Service,
	orchestrator ports.Orchestrator,
	opts ...Option,
) *Service {
	s := &Service{
		store:        store,
		orders:       orders,
		carts:        carts,
		verifier:     verifier,
		orchestrator: orchestrator,
		requireOTP:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Start opens a checkout for the session, returning the existing one when the
// shopper resumes.
func (s *Service) Start(ctx context.Context, sessionID string) (*domain.Checkout, error) {
	existing, err := s.store.Get(ctx, sessionID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	checkout, err := domain.NewCheckout(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, checkout); err != nil {
		return nil, err
	}
	return checkout, nil
}

func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Checkout, error) {
	return s.store.Get(ctx, sessionID)
}

// RequestVerification issues an OTP challenge for the shopper's email.
// Re-requesting supersedes the previous code.
func (s *Service) RequestVerification(ctx context.Context, sessionID, email string) error {
	if _, err := s.store.Get(ctx, sessionID); err != nil {
		return err
	}
	_, err := s.verifier.Issue(ctx, email)
	return err
}

// ConfirmVerification validates the submitted code and records the verified
// email on the checkout.
func (s *Service) ConfirmVerification(ctx context.Context, sessionID, email, code string) error {
	checkout, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.verifier.Confirm(ctx, email, code); err != nil {
		return err
	}
	checkout.MarkEmailVerified(email)
	return s.store.Save(ctx, checkout)
}

// SubmitIdentity advances identity → shipping.
func (s *Service) SubmitIdentity(ctx context.Context, sessionID string, identity domain.Identity) (*domain.Checkout, error) {
	checkout, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkout.SubmitIdentity(identity, s.requireOTP); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, checkout); err != nil {
		return nil, err
	}
	return checkout, nil
}

// SubmitShipping advances shipping → payment, quoting the fee from the chosen
// region and the current cart size.
func (s *Service) SubmitShipping(ctx context.Context, sessionID, address, city string, region domain.Region) (*domain.Checkout, error) {
	checkout, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	fee, err := domain.Quote(region, cart.ItemCount())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := checkout.SubmitShipping(address, city, region, fee); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, checkout); err != nil {
		return nil, err
	}
	return checkout, nil
}

// Back navigates one step toward identity.
func (s *Service) Back(ctx context.Context, sessionID string) (*domain.Checkout, error) {
	checkout, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkout.Back(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, checkout); err != nil {
		return nil, err
	}
	return checkout, nil
}

// Confirm seals the purchase: it snapshots the cart, derives the total once,
// settles the order through the orchestrator, and clears the cart. Settlement
// failure is terminal for the attempt; the checkout stays at the payment step
// so the shopper may retry.
func (s *Service) Confirm(ctx context.Context, sessionID string, method domain.PaymentMethod) (*domain.Order, error) {
	checkout, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePayment(method); err != nil {
		return nil, err
	}
	if checkout.Step != domain.StepPayment {
		if checkout.Step == domain.StepCompleted {
			return nil, domain.ErrAlreadyCompleted
		}
		return nil, domain.ErrInvalidStep
	}
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}
	lines := make([]domain.OrderLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	order, err := domain.NewOrder(uuid.NewString(), checkout.Profile(), lines, cart.Subtotal(), checkout.ShippingFee)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.orchestrator.SettleOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("settle order: %w", err)
	}
	if err := checkout.Complete(order.ID); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, checkout); err != nil {
		return nil, err
	}
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.List(ctx)
}

// AdvanceOrder moves a settled order forward through fulfilment.
func (s *Service) AdvanceOrder(ctx context.Context, id string, next domain.Status) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Advance(next); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return s.orders.Save(ctx, order)
}

var _ ports.Service = (*Service)(nil)
