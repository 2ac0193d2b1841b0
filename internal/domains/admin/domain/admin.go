package domain

import (
	"errors"
	"strings"
	"time"
)

// ExpenseCategory classifies a back-office expense.
type ExpenseCategory string

const (
	ExpenseLogistics ExpenseCategory = "Logística"
	ExpenseMarketing ExpenseCategory = "Marketing"
	ExpenseSupplies  ExpenseCategory = "Suministros"
	ExpenseServices  ExpenseCategory = "Servicios"
	ExpenseOther     ExpenseCategory = "Otros"
)

var (
	ErrInvalidExpenseCategory = errors.New("unknown expense category")
	ErrInvalidExpenseAmount   = errors.New("expense amount must be positive")
	ErrInvalidSortField       = errors.New("unknown inventory sort field")
	ErrEmptyStoreName         = errors.New("store name is required")
	ErrInvalidContactEmail    = errors.New("contact email must contain '@'")
)

// Expense is one entry of the spending ledger, in whole pesos.
type Expense struct {
	ID          string          `json:"id"`
	Category    ExpenseCategory `json:"category"`
	Description string          `json:"description"`
	Amount      int64           `json:"amount"`
	SpentAt     time.Time       `json:"spentAt"`
}

// Validate checks the ledger invariants.
func (e *Expense) Validate() error {
	if !IsValidExpenseCategory(e.Category) {
		return ErrInvalidExpenseCategory
	}
	if e.Amount <= 0 {
		return ErrInvalidExpenseAmount
	}
	return nil
}

// IsValidExpenseCategory reports membership in the fixed category set.
func IsValidExpenseCategory(category ExpenseCategory) bool {
	switch category {
	case ExpenseLogistics, ExpenseMarketing, ExpenseSupplies, ExpenseServices, ExpenseOther:
		return true
	default:
		return false
	}
}

// StoreConfig is the storefront's editable configuration.
type StoreConfig struct {
	StoreName    string `json:"storeName"`
	PaymentURL   string `json:"paymentUrl"`
	ShippingURL  string `json:"shippingUrl"`
	ContactEmail string `json:"contactEmail"`
}

// DefaultStoreConfig is the configuration a fresh deployment starts with.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		StoreName:    "OSART ELITE",
		ContactEmail: "contacto@osart.cl",
	}
}

// Validate checks the editable configuration.
func (c *StoreConfig) Validate() error {
	if strings.TrimSpace(c.StoreName) == "" {
		return ErrEmptyStoreName
	}
	if c.ContactEmail != "" && !strings.Contains(c.ContactEmail, "@") {
		return ErrInvalidContactEmail
	}
	return nil
}

// SortField orders the inventory view.
type SortField string

const (
	SortByName  SortField = "name"
	SortByPrice SortField = "price"
	SortByStock SortField = "stock"
)

// SortDirection is asc or desc.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// InventoryFilter narrows and orders the back-office product view.
type InventoryFilter struct {
	Query        string
	Category     string
	CriticalOnly bool
	SortBy       SortField
	Direction    SortDirection
}

// Normalize applies defaults and validates the sort field.
func (f *InventoryFilter) Normalize() error {
	f.Query = strings.ToLower(strings.TrimSpace(f.Query))
	if f.SortBy == "" {
		f.SortBy = SortByName
	}
	switch f.SortBy {
	case SortByName, SortByPrice, SortByStock:
	default:
		return ErrInvalidSortField
	}
	if f.Direction != SortDesc {
		f.Direction = SortAsc
	}
	return nil
}
