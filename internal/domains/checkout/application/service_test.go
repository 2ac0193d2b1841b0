package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	cartmemory "github.com/thinkfashz/Osart/internal/domains/cart/adapters/memory"
	cartapp "github.com/thinkfashz/Osart/internal/domains/cart/application"
	catalogmemory "github.com/thinkfashz/Osart/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/thinkfashz/Osart/internal/domains/catalog/application"
	catalogdomain "github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	"github.com/thinkfashz/Osart/internal/domains/checkout/adapters/memory"
	"github.com/thinkfashz/Osart/internal/domains/checkout/adapters/workflows"
	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	"github.com/thinkfashz/Osart/internal/domains/checkout/ports"
	verificationmemory "github.com/thinkfashz/Osart/internal/domains/verification/adapters/memory"
	verificationapp "github.com/thinkfashz/Osart/internal/domains/verification/application"
)

type recordingSink struct {
	published []*domain.Order
	fail      bool
}

func (s *recordingSink) Publish(_ context.Context, order *domain.Order) error {
	if s.fail {
		return errors.New("sink unavailable")
	}
	s.published = append(s.published, order)
	return nil
}

type capturingSender struct {
	code string
}

func (s *capturingSender) Send(_ context.Context, _, code string) error {
	s.code = code
	return nil
}

type pipeline struct {
	checkout *Service
	carts    *cartapp.Service
	sender   *capturingSender
	sink     *recordingSink
	orders   ports.OrderRepository
}

func newPipeline(t *testing.T, opts ...Option) *pipeline {
	t.Helper()
	catalog := catalogapp.NewService(catalogmemory.NewSeededRepository([]*catalogdomain.Product{
		{ID: 1, Name: "Estación de Soldadura", Price: 10000, Stock: 50, Category: catalogdomain.CategoryTools, Rating: 4.5},
		{ID: 2, Name: "Kit Sensores", Price: 5000, Stock: 50, Category: catalogdomain.CategorySensors, Rating: 4.5},
	}))
	carts := cartapp.NewService(cartmemory.NewStore(), catalog)
	sender := &capturingSender{}
	verifier := verificationapp.NewService(verificationmemory.NewStore(), sender)
	sink := &recordingSink{}
	orders := memory.NewOrderRepository()
	orchestrator := workflows.NewInlineOrderWorkflows(orders, sink, nil)
	svc := NewService(memory.NewStore(), orders, carts, verifier, orchestrator, opts...)
	return &pipeline{checkout: svc, carts: carts, sender: sender, sink: sink, orders: orders}
}

func (p *pipeline) advanceToPayment(t *testing.T, sessionID string) {
	t.Helper()
	ctx := context.Background()
	_, err := p.checkout.Start(ctx, sessionID)
	require.NoError(t, err)
	require.NoError(t, p.checkout.RequestVerification(ctx, sessionID, "ana@osart.cl"))
	require.NoError(t, p.checkout.ConfirmVerification(ctx, sessionID, "ana@osart.cl", p.sender.code))
	_, err = p.checkout.SubmitIdentity(ctx, sessionID, domain.Identity{
		FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911111111",
	})
	require.NoError(t, err)
	_, err = p.checkout.SubmitShipping(ctx, sessionID, "Av. Providencia 1234", "Santiago", domain.RegionMetropolitana)
	require.NoError(t, err)
}

func TestConfirm_CapitalZoneScenario(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	_, err := p.carts.AddItem(ctx, "sess-1", 1, 2)
	require.NoError(t, err)
	_, err = p.carts.AddItem(ctx, "sess-1", 2, 1)
	require.NoError(t, err)

	p.advanceToPayment(t, "sess-1")

	order, err := p.checkout.Confirm(ctx, "sess-1", domain.PaymentWebpay)
	require.NoError(t, err)
	require.Equal(t, int64(25000), order.Subtotal)
	require.Equal(t, int64(1500), order.ShippingFee)
	require.Equal(t, int64(26500), order.Total)
	require.Equal(t, order.Total, order.Subtotal+order.ShippingFee)
	require.Equal(t, domain.StatusPaid, order.Status)

	// order persisted and handed to the sink
	stored, err := p.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, order.Total, stored.Total)
	require.Len(t, p.sink.published, 1)

	// cart cleared on completion
	cart, err := p.carts.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
}

func TestConfirm_EmptyCartRejected(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	// start with an empty cart: the shopper can fill identity and shipping,
	// but confirmation must refuse to mint an order
	p.advanceToPayment(t, "sess-1")
	_, err := p.checkout.Confirm(ctx, "sess-1", domain.PaymentWebpay)
	require.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestConfirm_DisabledPaymentMethod(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	_, err := p.carts.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)
	p.advanceToPayment(t, "sess-1")

	_, err = p.checkout.Confirm(ctx, "sess-1", domain.PaymentCrypto)
	require.ErrorIs(t, err, domain.ErrPaymentMethodDisabled)
}

func TestConfirm_SinkFailureDoesNotBlockPurchase(t *testing.T) {
	p := newPipeline(t)
	p.sink.fail = true
	ctx := context.Background()

	_, err := p.carts.AddItem(ctx, "sess-1", 2, 3)
	require.NoError(t, err)
	p.advanceToPayment(t, "sess-1")

	order, err := p.checkout.Confirm(ctx, "sess-1", domain.PaymentWebpay)
	require.NoError(t, err)
	_, err = p.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
}

func TestConfirm_OrderImmutableAfterCatalogChanges(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	_, err := p.carts.AddItem(ctx, "sess-1", 1, 1)
	require.NoError(t, err)
	p.advanceToPayment(t, "sess-1")
	order, err := p.checkout.Confirm(ctx, "sess-1", domain.PaymentWebpay)
	require.NoError(t, err)

	stored, err := p.orders.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.Equal(t, int64(10000), stored.Lines[0].UnitPrice)
	require.Equal(t, "Estación de Soldadura", stored.Lines[0].Name)
}

func TestSubmitIdentity_WithoutVerificationOption(t *testing.T) {
	p := newPipeline(t, WithoutVerification())
	ctx := context.Background()

	_, err := p.checkout.Start(ctx, "sess-1")
	require.NoError(t, err)
	_, err = p.checkout.SubmitIdentity(ctx, "sess-1", domain.Identity{
		FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911111111",
	})
	require.NoError(t, err)
}

func TestSubmitIdentity_RequiresOTPByDefault(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	_, err := p.checkout.Start(ctx, "sess-1")
	require.NoError(t, err)
	_, err = p.checkout.SubmitIdentity(ctx, "sess-1", domain.Identity{
		FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911111111",
	})
	require.ErrorIs(t, err, domain.ErrEmailNotVerified)
}
