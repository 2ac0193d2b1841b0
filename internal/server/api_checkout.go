package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	"github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

// CheckoutAPI wires HTTP transport with the checkout state machine.
type CheckoutAPI struct {
	service ports.Service
}

func NewCheckoutAPI(service ports.Service) *CheckoutAPI {
	return &CheckoutAPI{service: service}
}

type identityPayload struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type verificationRequestPayload struct {
	Email string `json:"email"`
}

type verificationConfirmPayload struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type shippingPayload struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Region  string `json:"region"`
}

type confirmPayload struct {
	Method string `json:"method"`
}

// Post /v1/checkout/:sessionId/start
func (api *CheckoutAPI) Start(c *gin.Context) {
	checkout, err := api.service.Start(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// Get /v1/checkout/:sessionId
func (api *CheckoutAPI) Get(c *gin.Context) {
	checkout, err := api.service.Get(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// Post /v1/checkout/:sessionId/identity
func (api *CheckoutAPI) SubmitIdentity(c *gin.Context) {
	var payload identityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	identity := domain.Identity{FullName: payload.FullName, Email: payload.Email, Phone: payload.Phone}
	checkout, err := api.service.SubmitIdentity(c.Request.Context(), c.Param("sessionId"), identity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// Post /v1/checkout/:sessionId/verification/request
// Issue an OTP for the shopper's email. Re-requesting supersedes the code.
func (api *CheckoutAPI) RequestVerification(c *gin.Context) {
	var payload verificationRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.service.RequestVerification(c.Request.Context(), c.Param("sessionId"), payload.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// Post /v1/checkout/:sessionId/verification/confirm
func (api *CheckoutAPI) ConfirmVerification(c *gin.Context) {
	var payload verificationConfirmPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.service.ConfirmVerification(c.Request.Context(), c.Param("sessionId"), payload.Email, payload.Code); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/checkout/:sessionId/shipping
func (api *CheckoutAPI) SubmitShipping(c *gin.Context) {
	var payload shippingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	checkout, err := api.service.SubmitShipping(c.Request.Context(),
		c.Param("sessionId"), payload.Address, payload.City, domain.Region(payload.Region))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// Post /v1/checkout/:sessionId/back
func (api *CheckoutAPI) Back(c *gin.Context) {
	checkout, err := api.service.Back(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

// Post /v1/checkout/:sessionId/confirm
// Seal the purchase and return the immutable order.
func (api *CheckoutAPI) Confirm(c *gin.Context) {
	var payload confirmPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	order, err := api.service.Confirm(c.Request.Context(), c.Param("sessionId"), domain.PaymentMethod(payload.Method))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// Get /v1/orders/:id
func (api *CheckoutAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
