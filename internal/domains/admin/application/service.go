package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/thinkfashz/Osart/internal/clients/genai"
	"github.com/thinkfashz/Osart/internal/domains/admin/domain"
	"github.com/thinkfashz/Osart/internal/domains/admin/ports"
	catalogdomain "github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	catalogports "github.com/thinkfashz/Osart/internal/domains/catalog/ports"
	checkoutports "github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

// ErrInvalidInput signals the request violated a back-office invariant.
var ErrInvalidInput = errors.New("invalid admin input")

// Auditor produces a structured security verdict over a serialized snapshot.
// Implemented by the genai client, including its disabled offline variant.
type Auditor interface {
	Audit(ctx context.Context, snapshot string) *genai.AuditReport
}

// Service implements the back-office: inventory curation over the catalog,
// the sales and expenses view over settled orders, storefront configuration,
// and the model-driven security audit.
type Service struct {
	catalog  catalogports.Service
	orders   checkoutports.OrderRepository
	expenses ports.ExpenseStore
	config   ports.ConfigStore
	auditor  Auditor
}

func NewService(
	catalog catalogports.Service,
	orders checkoutports.OrderRepository,
	expenses ports.ExpenseStore,
	config ports.ConfigStore,
	auditor Auditor,
) *Service {
	return &Service{catalog: catalog, orders: orders, expenses: expenses, config: config, auditor: auditor}
}

// Inventory lists products through the back-office lens: substring search,
// category and critical-stock filters, and a keyed sort.
func (s *Service) Inventory(ctx context.Context, filter domain.InventoryFilter) ([]ports.InventoryItem, error) {
	if err := filter.Normalize(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	projections, err := s.catalog.List(ctx, catalogports.Filter{Category: catalogdomain.Category(filter.Category)})
	if err != nil {
		return nil, err
	}
	items := make([]ports.InventoryItem, 0, len(projections))
	for _, projection := range projections {
		product := projection.Entity
		if filter.Query != "" && !strings.Contains(strings.ToLower(product.Name), filter.Query) {
			continue
		}
		critical := product.IsCritical()
		if filter.CriticalOnly && !critical {
			continue
		}
		items = append(items, ports.InventoryItem{Product: product, Critical: critical})
	}
	sortInventory(items, filter.SortBy, filter.Direction)
	return items, nil
}

// AdjustStock applies a delta through the catalog service.
func (s *Service) AdjustStock(ctx context.Context, productID int64, delta int) (*catalogdomain.Product, error) {
	projection, err := s.catalog.AdjustStock(ctx, productID, delta)
	if err != nil {
		return nil, err
	}
	return projection.Entity, nil
}

// SetLowStockThreshold stores a per-product alert threshold.
func (s *Service) SetLowStockThreshold(ctx context.Context, productID int64, threshold int) (*catalogdomain.Product, error) {
	projection, err := s.catalog.SetLowStockThreshold(ctx, productID, threshold)
	if err != nil {
		return nil, err
	}
	return projection.Entity, nil
}

// Sales summarizes settled orders against the expense ledger.
func (s *Service) Sales(ctx context.Context) (*ports.SalesSummary, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	summary := &ports.SalesSummary{Orders: orders}
	for _, order := range orders {
		summary.Revenue += order.Total
	}
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, expense := range expenses {
		summary.TotalExpense += expense.Amount
	}
	summary.NetMargin = summary.Revenue - summary.TotalExpense
	return summary, nil
}

// AddExpense appends a ledger entry.
func (s *Service) AddExpense(ctx context.Context, category domain.ExpenseCategory, description string, amount int64) (*domain.Expense, error) {
	expense := &domain.Expense{
		ID:          uuid.NewString(),
		Category:    category,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		SpentAt:     time.Now().UTC(),
	}
	if err := expense.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.expenses.Save(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *Service) ListExpenses(ctx context.Context) ([]*domain.Expense, error) {
	return s.expenses.List(ctx)
}

// Config returns the storefront configuration, falling back to defaults.
func (s *Service) Config(ctx context.Context) (*domain.StoreConfig, error) {
	return s.config.Get(ctx)
}

// UpdateConfig validates and stores the storefront configuration.
func (s *Service) UpdateConfig(ctx context.Context, config domain.StoreConfig) (*domain.StoreConfig, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.config.Put(ctx, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// Audit serializes a store snapshot and asks the model for a verdict. The
// auditor never fails: without a model it answers with the offline report.
func (s *Service) Audit(ctx context.Context) (*genai.AuditReport, error) {
	snapshot, err := s.buildSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	if s.auditor == nil {
		return genai.OfflineAudit(), nil
	}
	return s.auditor.Audit(ctx, snapshot), nil
}

type auditSnapshot struct {
	ProductCount  int   `json:"productCount"`
	CriticalStock int   `json:"criticalStock"`
	OrderCount    int   `json:"orderCount"`
	Revenue       int64 `json:"revenue"`
	ExpenseCount  int   `json:"expenseCount"`
}

func (s *Service) buildSnapshot(ctx context.Context) (string, error) {
	products, err := s.catalog.List(ctx, catalogports.Filter{})
	if err != nil {
		return "", err
	}
	snapshot := auditSnapshot{ProductCount: len(products)}
	for _, projection := range products {
		if projection.Entity.IsCritical() {
			snapshot.CriticalStock++
		}
	}
	orders, err := s.orders.List(ctx)
	if err != nil {
		return "", err
	}
	snapshot.OrderCount = len(orders)
	for _, order := range orders {
		snapshot.Revenue += order.Total
	}
	expenses, err := s.expenses.List(ctx)
	if err != nil {
		return "", err
	}
	snapshot.ExpenseCount = len(expenses)
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("marshal audit snapshot: %w", err)
	}
	return string(payload), nil
}

func sortInventory(items []ports.InventoryItem, field domain.SortField, direction domain.SortDirection) {
	less := func(i, j int) bool {
		a, b := items[i].Product, items[j].Product
		switch field {
		case domain.SortByPrice:
			return a.Price < b.Price
		case domain.SortByStock:
			return a.Stock < b.Stock
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	if direction == domain.SortDesc {
		original := less
		less = func(i, j int) bool { return original(j, i) }
	}
	sort.SliceStable(items, less)
}

var _ ports.Service = (*Service)(nil)
