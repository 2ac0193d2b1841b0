//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	"github.com/thinkfashz/Osart/internal/domains/checkout/ports"
	"github.com/thinkfashz/Osart/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("osart_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func placedOrder(t *testing.T, id, email string) *domain.Order {
	t.Helper()
	profile := domain.ShippingProfile{
		Identity: domain.Identity{FullName: "Ana Rojas", Email: email, Phone: "+56911112222"},
		Address:  "Av. Providencia 1234",
		City:     "Santiago",
		Region:   domain.RegionMetropolitana,
	}
	lines := []domain.OrderLine{
		{ProductID: 1, Name: "Arduino Uno R3", UnitPrice: 12500, Quantity: 2},
	}
	order, err := domain.NewOrder(id, profile, lines, 25000, 0)
	require.NoError(t, err)
	return order
}

func TestOrderRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := placedOrder(t, "ORD-1001", "ana@osart.cl")
	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, order.ID, saved.ID)
	assert.Equal(t, domain.StatusPaid, saved.Status)

	fetched, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.Total, fetched.Total)
	assert.Equal(t, order.Profile.Email, fetched.Profile.Email)
	require.Len(t, fetched.Lines, 1)
	assert.Equal(t, int64(12500), fetched.Lines[0].UnitPrice)
}

func TestOrderRepository_SavePreservesLinesOnStatusUpdate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := placedOrder(t, "ORD-2001", "ana@osart.cl")
	_, err := repo.Save(ctx, order)
	require.NoError(t, err)

	require.NoError(t, order.Advance(domain.StatusShipped))
	updated, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, int64(25000), updated.Subtotal)
}

func TestOrderRepository_ListByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	repo := NewOrderRepository(db)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		email := "ana@osart.cl"
		if i == 3 {
			email = "otro@osart.cl"
		}
		_, err := repo.Save(ctx, placedOrder(t, fmt.Sprintf("ORD-300%d", i), email))
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.ListByEmail(ctx, "ana@osart.cl")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	_, err = repo.GetByID(ctx, "ORD-9999")
	assert.ErrorIs(t, err, ports.ErrOrderNotFound)
}
