package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thinkfashz/Osart/internal/domains/cart/adapters/memory"
	"github.com/thinkfashz/Osart/internal/domains/cart/domain"
	catalogmemory "github.com/thinkfashz/Osart/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/thinkfashz/Osart/internal/domains/catalog/application"
	catalogdomain "github.com/thinkfashz/Osart/internal/domains/catalog/domain"
)

func newCartService(t *testing.T) *Service {
	t.Helper()
	catalog := catalogapp.NewService(catalogmemory.NewSeededRepository(catalogdomain.SeedProducts()))
	return NewService(memory.NewStore(), catalog)
}

func TestAddItem_SnapshotsPriceAndName(t *testing.T) {
	svc := newCartService(t)

	cart, err := svc.AddItem(context.Background(), "sess-1", 1, 2)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, "Arduino Uno R3 Original", cart.Lines[0].Name)
	require.Equal(t, int64(12500), cart.Lines[0].UnitPrice)
	require.Equal(t, int64(25000), cart.Subtotal())
	require.Equal(t, 2, cart.ItemCount())
}

func TestAddItem_AccumulatesQuantity(t *testing.T) {
	svc := newCartService(t)

	_, err := svc.AddItem(context.Background(), "sess-1", 5, 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), "sess-1", 5, 3)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	require.Equal(t, 4, cart.Lines[0].Quantity)
}

func TestAddItem_RejectsBeyondStock(t *testing.T) {
	svc := newCartService(t)

	// product 3 has 8 units in stock
	_, err := svc.AddItem(context.Background(), "sess-1", 3, 6)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "sess-1", 3, 3)
	require.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestSetQuantity_ZeroRemovesLine(t *testing.T) {
	svc := newCartService(t)

	_, err := svc.AddItem(context.Background(), "sess-1", 2, 2)
	require.NoError(t, err)
	cart, err := svc.SetQuantity(context.Background(), "sess-1", 2, 0)
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
}

func TestSetQuantity_UnknownLine(t *testing.T) {
	svc := newCartService(t)

	_, err := svc.SetQuantity(context.Background(), "sess-1", 42, 0)
	require.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestGet_ReturnsEmptyCartForNewSession(t *testing.T) {
	svc := newCartService(t)

	cart, err := svc.Get(context.Background(), "fresh")
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())
	require.Zero(t, cart.Subtotal())
}

func TestClear_IsIdempotent(t *testing.T) {
	svc := newCartService(t)

	_, err := svc.AddItem(context.Background(), "sess-1", 6, 10)
	require.NoError(t, err)
	require.NoError(t, svc.Clear(context.Background(), "sess-1"))
	require.NoError(t, svc.Clear(context.Background(), "sess-1"))
}
