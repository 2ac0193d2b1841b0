package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func startedCheckout(t *testing.T) *Checkout {
	t.Helper()
	checkout, err := NewCheckout("sess-1")
	require.NoError(t, err)
	return checkout
}

func TestSubmitIdentity_RequiresAllFields(t *testing.T) {
	checkout := startedCheckout(t)

	err := checkout.SubmitIdentity(Identity{FullName: "Ana Rojas"}, false)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.ElementsMatch(t, []string{"email", "phone"}, validation.Fields)
	require.Equal(t, StepIdentity, checkout.Step)
}

func TestSubmitIdentity_RequiresVerifiedEmail(t *testing.T) {
	checkout := startedCheckout(t)
	identity := Identity{FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911111111"}

	err := checkout.SubmitIdentity(identity, true)
	require.ErrorIs(t, err, ErrEmailNotVerified)

	checkout.MarkEmailVerified("ANA@osart.cl")
	require.NoError(t, checkout.SubmitIdentity(identity, true))
	require.Equal(t, StepShipping, checkout.Step)
}

func TestSubmitShipping_NoForwardSkipping(t *testing.T) {
	checkout := startedCheckout(t)

	err := checkout.SubmitShipping("Av. Providencia 1234", "Santiago", RegionMetropolitana, 1000)
	require.ErrorIs(t, err, ErrInvalidStep)
}

func TestSubmitShipping_BlocksOnMissingFields(t *testing.T) {
	checkout := startedCheckout(t)
	require.NoError(t, checkout.SubmitIdentity(Identity{FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911111111"}, false))

	err := checkout.SubmitShipping("", "", "", 0)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	require.ElementsMatch(t, []string{"address", "city", "region"}, validation.Fields)
	require.Equal(t, StepShipping, checkout.Step)
}

func TestBack_WalksTowardIdentity(t *testing.T) {
	checkout := startedCheckout(t)
	require.NoError(t, checkout.SubmitIdentity(Identity{FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911111111"}, false))
	require.NoError(t, checkout.SubmitShipping("Av. Providencia 1234", "Santiago", RegionMetropolitana, 1000))
	require.Equal(t, StepPayment, checkout.Step)

	require.NoError(t, checkout.Back())
	require.Equal(t, StepShipping, checkout.Step)
	require.NoError(t, checkout.Back())
	require.Equal(t, StepIdentity, checkout.Step)
	require.ErrorIs(t, checkout.Back(), ErrInvalidStep)
}

func TestValidatePayment(t *testing.T) {
	require.NoError(t, ValidatePayment(PaymentWebpay))
	require.ErrorIs(t, ValidatePayment(PaymentCrypto), ErrPaymentMethodDisabled)
	require.ErrorIs(t, ValidatePayment("efectivo"), ErrUnknownPaymentMethod)
}

func TestComplete_SealsCheckout(t *testing.T) {
	checkout := startedCheckout(t)
	require.NoError(t, checkout.SubmitIdentity(Identity{FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911111111"}, false))
	require.NoError(t, checkout.SubmitShipping("Av. Providencia 1234", "Santiago", RegionMetropolitana, 1000))
	require.NoError(t, checkout.Complete("order-1"))
	require.Equal(t, StepCompleted, checkout.Step)

	require.ErrorIs(t, checkout.Back(), ErrAlreadyCompleted)
	require.ErrorIs(t, checkout.Complete("order-2"), ErrAlreadyCompleted)
}

func TestNewOrder_TotalIsDerivedOnce(t *testing.T) {
	profile := ShippingProfile{
		Identity: Identity{FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911111111"},
		Address:  "Av. Providencia 1234", City: "Santiago", Region: RegionMetropolitana,
	}
	lines := []OrderLine{{ProductID: 1, Name: "Arduino", UnitPrice: 10000, Quantity: 2}}
	order, err := NewOrder("order-1", profile, lines, 20000, 1000)
	require.NoError(t, err)
	require.Equal(t, int64(21000), order.Total)
	require.Equal(t, StatusPaid, order.Status)
	require.NoError(t, order.Validate())
}

func TestOrderAdvance_OnlyForward(t *testing.T) {
	order := &Order{ID: "order-1", Lines: []OrderLine{{ProductID: 1, Name: "x", UnitPrice: 1, Quantity: 1}}, Status: StatusPaid}
	require.NoError(t, order.Advance(StatusShipped))
	require.ErrorIs(t, order.Advance(StatusPaid), ErrOrderNotAdvancing)
	require.NoError(t, order.Advance(StatusDelivered))
}
