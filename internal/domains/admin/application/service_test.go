package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thinkfashz/Osart/internal/clients/genai"
	"github.com/thinkfashz/Osart/internal/domains/admin/adapters/memory"
	"github.com/thinkfashz/Osart/internal/domains/admin/domain"
	catalogmemory "github.com/thinkfashz/Osart/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/thinkfashz/Osart/internal/domains/catalog/application"
	catalogdomain "github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	checkoutmemory "github.com/thinkfashz/Osart/internal/domains/checkout/adapters/memory"
	checkoutdomain "github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	checkoutports "github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

func newAdminFixture(t *testing.T) (*Service, checkoutports.OrderRepository) {
	t.Helper()
	catalog := catalogapp.NewService(catalogmemory.NewSeededRepository(catalogdomain.SeedProducts()))
	orders := checkoutmemory.NewOrderRepository()
	svc := NewService(catalog, orders, memory.NewExpenseStore(), memory.NewConfigStore(), nil)
	return svc, orders
}

func placeOrder(t *testing.T, orders checkoutports.OrderRepository, id string, subtotal, fee int64) {
	t.Helper()
	order, err := checkoutdomain.NewOrder(id, checkoutdomain.ShippingProfile{
		Identity: checkoutdomain.Identity{FullName: "Ana Rojas", Email: "ana@osart.cl", Phone: "+56911112222"},
		Address:  "Av. Providencia 1234", City: "Santiago", Region: checkoutdomain.RegionMetropolitana,
	}, []checkoutdomain.OrderLine{{ProductID: 1, Name: "Arduino Uno R3 Original", UnitPrice: subtotal, Quantity: 1}}, subtotal, fee)
	require.NoError(t, err)
	_, err = orders.Save(context.Background(), order)
	require.NoError(t, err)
}

func TestInventory_QueryFilterAndDefaultSort(t *testing.T) {
	svc, _ := newAdminFixture(t)

	items, err := svc.Inventory(context.Background(), domain.InventoryFilter{})
	require.NoError(t, err)
	require.Len(t, items, len(catalogdomain.SeedProducts()))
	require.Equal(t, "Arduino Uno R3 Original", items[0].Product.Name)

	items, err = svc.Inventory(context.Background(), domain.InventoryFilter{Query: "  MULTÍMETRO "})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Multímetro Digital Pro", items[0].Product.Name)
}

func TestInventory_SortByPriceDesc(t *testing.T) {
	svc, _ := newAdminFixture(t)

	items, err := svc.Inventory(context.Background(), domain.InventoryFilter{
		SortBy:    domain.SortByPrice,
		Direction: domain.SortDesc,
	})
	require.NoError(t, err)
	require.Equal(t, "Multímetro Digital Pro", items[0].Product.Name)
	require.Equal(t, "Transistor NPN 2N2222", items[len(items)-1].Product.Name)
}

func TestInventory_CriticalOnly(t *testing.T) {
	svc, _ := newAdminFixture(t)

	items, err := svc.Inventory(context.Background(), domain.InventoryFilter{CriticalOnly: true})
	require.NoError(t, err)
	require.Empty(t, items)

	_, err = svc.SetLowStockThreshold(context.Background(), 3, 10)
	require.NoError(t, err)

	items, err = svc.Inventory(context.Background(), domain.InventoryFilter{CriticalOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(3), items[0].Product.ID)
	require.True(t, items[0].Critical)
}

func TestInventory_UnknownSortField(t *testing.T) {
	svc, _ := newAdminFixture(t)

	_, err := svc.Inventory(context.Background(), domain.InventoryFilter{SortBy: "rating"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSales_NetMargin(t *testing.T) {
	svc, orders := newAdminFixture(t)
	placeOrder(t, orders, "order-1", 25000, 1500)
	placeOrder(t, orders, "order-2", 10000, 5000)

	_, err := svc.AddExpense(context.Background(), domain.ExpenseLogistics, "Despachos de la semana", 12000)
	require.NoError(t, err)

	summary, err := svc.Sales(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Orders, 2)
	require.Equal(t, int64(41500), summary.Revenue)
	require.Equal(t, int64(12000), summary.TotalExpense)
	require.Equal(t, int64(29500), summary.NetMargin)
}

func TestAddExpense_Validation(t *testing.T) {
	svc, _ := newAdminFixture(t)

	_, err := svc.AddExpense(context.Background(), "Viajes", "Pasajes", 5000)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddExpense(context.Background(), domain.ExpenseMarketing, "Campaña", 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	expense, err := svc.AddExpense(context.Background(), domain.ExpenseMarketing, "  Campaña de agosto  ", 8000)
	require.NoError(t, err)
	require.NotEmpty(t, expense.ID)
	require.Equal(t, "Campaña de agosto", expense.Description)
	require.False(t, expense.SpentAt.IsZero())
}

func TestConfig_DefaultsAndUpdate(t *testing.T) {
	svc, _ := newAdminFixture(t)

	config, err := svc.Config(context.Background())
	require.NoError(t, err)
	require.Equal(t, domain.DefaultStoreConfig(), *config)

	_, err = svc.UpdateConfig(context.Background(), domain.StoreConfig{StoreName: " "})
	require.ErrorIs(t, err, ErrInvalidInput)

	updated, err := svc.UpdateConfig(context.Background(), domain.StoreConfig{
		StoreName:    "OSART ELITE",
		PaymentURL:   "https://pagos.osart.cl",
		ContactEmail: "ventas@osart.cl",
	})
	require.NoError(t, err)

	config, err = svc.Config(context.Background())
	require.NoError(t, err)
	require.Equal(t, updated, config)
}

func TestAudit_OfflineWithoutModel(t *testing.T) {
	svc, orders := newAdminFixture(t)
	placeOrder(t, orders, "order-1", 25000, 1500)

	report, err := svc.Audit(context.Background())
	require.NoError(t, err)
	require.Equal(t, genai.OfflineAudit(), report)
}
