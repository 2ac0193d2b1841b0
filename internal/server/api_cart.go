package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thinkfashz/Osart/internal/domains/cart/domain"
	"github.com/thinkfashz/Osart/internal/domains/cart/ports"
)

// CartAPI wires HTTP transport with the cart bounded context.
type CartAPI struct {
	service ports.Service
}

func NewCartAPI(service ports.Service) *CartAPI {
	return &CartAPI{service: service}
}

type cartView struct {
	SessionID string            `json:"sessionId"`
	Lines     []domain.LineItem `json:"lines"`
	Subtotal  int64             `json:"subtotal"`
	ItemCount int               `json:"itemCount"`
}

type addItemPayload struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type adjustItemPayload struct {
	Delta int `json:"delta"`
}

// Get /v1/carts/:sessionId
// Cart contents plus the derived subtotal.
func (api *CartAPI) GetCart(c *gin.Context) {
	cart, err := api.service.Get(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

// Post /v1/carts/:sessionId/items
// Add quantity of a product, capped by current stock.
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload addItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	cart, err := api.service.AddItem(c.Request.Context(), c.Param("sessionId"), payload.ProductID, payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

// Patch /v1/carts/:sessionId/items/:productId
// Apply a quantity delta; reaching zero removes the line.
func (api *CartAPI) AdjustItem(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload adjustItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	sessionID := c.Param("sessionId")
	cart, err := api.service.Get(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	next := cart.Quantity(productID) + payload.Delta
	if next < 0 {
		next = 0
	}
	cart, err = api.service.SetQuantity(c.Request.Context(), sessionID, productID, next)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

// Delete /v1/carts/:sessionId/items/:productId
func (api *CartAPI) RemoveItem(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	cart, err := api.service.RemoveItem(c.Request.Context(), c.Param("sessionId"), productID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartView(cart))
}

func toCartView(cart *domain.Cart) cartView {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.LineItem{}
	}
	return cartView{
		SessionID: cart.SessionID,
		Lines:     lines,
		Subtotal:  cart.Subtotal(),
		ItemCount: cart.ItemCount(),
	}
}
