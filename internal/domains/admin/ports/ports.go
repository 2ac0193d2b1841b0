package ports

import (
	"context"

	"github.com/thinkfashz/Osart/internal/clients/genai"
	"github.com/thinkfashz/Osart/internal/domains/admin/domain"
	catalogdomain "github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	checkoutdomain "github.com/thinkfashz/Osart/internal/domains/checkout/domain"
)

// ExpenseStore persists the spending ledger.
type ExpenseStore interface {
	Save(ctx context.Context, expense *domain.Expense) error
	List(ctx context.Context) ([]*domain.Expense, error)
}

// ConfigStore persists the single storefront configuration.
type ConfigStore interface {
	Get(ctx context.Context) (*domain.StoreConfig, error)
	Put(ctx context.Context, config *domain.StoreConfig) error
}

// InventoryItem is a product enriched with the critical-stock verdict.
type InventoryItem struct {
	Product  *catalogdomain.Product `json:"product"`
	Critical bool                   `json:"critical"`
}

// SalesSummary is the back-office revenue view.
type SalesSummary struct {
	Orders       []*checkoutdomain.Order `json:"orders"`
	Revenue      int64                   `json:"revenue"`
	TotalExpense int64                   `json:"totalExpense"`
	NetMargin    int64                   `json:"netMargin"`
}

// Service exposes the back-office use cases.
type Service interface {
	Inventory(ctx context.Context, filter domain.InventoryFilter) ([]InventoryItem, error)
	AdjustStock(ctx context.Context, productID int64, delta int) (*catalogdomain.Product, error)
	SetLowStockThreshold(ctx context.Context, productID int64, threshold int) (*catalogdomain.Product, error)
	Sales(ctx context.Context) (*SalesSummary, error)
	AddExpense(ctx context.Context, category domain.ExpenseCategory, description string, amount int64) (*domain.Expense, error)
	ListExpenses(ctx context.Context) ([]*domain.Expense, error)
	Config(ctx context.Context) (*domain.StoreConfig, error)
	UpdateConfig(ctx context.Context, config domain.StoreConfig) (*domain.StoreConfig, error)
	Audit(ctx context.Context) (*genai.AuditReport, error)
}
