package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thinkfashz/Osart/internal/domains/admin/domain"
	"github.com/thinkfashz/Osart/internal/domains/admin/ports"
	checkoutdomain "github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	checkoutports "github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

// errMissingStockField flags a stock mutation without delta or threshold.
var errMissingStockField = errors.New("either delta or threshold is required")

// AdminAPI wires HTTP transport with the back-office use cases.
type AdminAPI struct {
	service  ports.Service
	checkout checkoutports.Service
}

func NewAdminAPI(service ports.Service, checkout checkoutports.Service) *AdminAPI {
	return &AdminAPI{service: service, checkout: checkout}
}

type stockPayload struct {
	Delta     *int `json:"delta"`
	Threshold *int `json:"threshold"`
}

type expensePayload struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Amount      int64  `json:"amount"`
}

type orderStatusPayload struct {
	Status string `json:"status"`
}

// Get /v1/admin/inventory
// Back-office product view: ?q=&category=&critical=&sort=&dir=
func (api *AdminAPI) Inventory(c *gin.Context) {
	critical, _ := strconv.ParseBool(c.Query("critical"))
	filter := domain.InventoryFilter{
		Query:        c.Query("q"),
		Category:     c.Query("category"),
		CriticalOnly: critical,
		SortBy:       domain.SortField(c.Query("sort")),
		Direction:    domain.SortDirection(c.Query("dir")),
	}
	items, err := api.service.Inventory(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Post /v1/admin/products/:id/stock
// Apply a stock delta or set the low-stock threshold, one per call.
func (api *AdminAPI) UpdateStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload stockPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	switch {
	case payload.Threshold != nil:
		product, err := api.service.SetLowStockThreshold(c.Request.Context(), id, *payload.Threshold)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	case payload.Delta != nil:
		product, err := api.service.AdjustStock(c.Request.Context(), id, *payload.Delta)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	default:
		respondBadRequest(c, errMissingStockField)
	}
}

// Get /v1/admin/sales
func (api *AdminAPI) Sales(c *gin.Context) {
	summary, err := api.service.Sales(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Patch /v1/admin/orders/:id/status
// Move an order forward through fulfilment.
func (api *AdminAPI) AdvanceOrder(c *gin.Context) {
	var payload orderStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	order, err := api.checkout.AdvanceOrder(c.Request.Context(), c.Param("id"), checkoutdomain.Status(payload.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// Get /v1/admin/expenses
func (api *AdminAPI) ListExpenses(c *gin.Context) {
	expenses, err := api.service.ListExpenses(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if expenses == nil {
		expenses = []*domain.Expense{}
	}
	c.JSON(http.StatusOK, expenses)
}

// Post /v1/admin/expenses
func (api *AdminAPI) AddExpense(c *gin.Context) {
	var payload expensePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	expense, err := api.service.AddExpense(c.Request.Context(),
		domain.ExpenseCategory(payload.Category), payload.Description, payload.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

// Get /v1/admin/config
func (api *AdminAPI) GetConfig(c *gin.Context) {
	config, err := api.service.Config(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// Put /v1/admin/config
func (api *AdminAPI) UpdateConfig(c *gin.Context) {
	var payload domain.StoreConfig
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	config, err := api.service.UpdateConfig(c.Request.Context(), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, config)
}

// Post /v1/admin/audit
// Run the model-backed security audit over a store snapshot.
func (api *AdminAPI) Audit(c *gin.Context) {
	report, err := api.service.Audit(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
