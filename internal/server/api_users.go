package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	checkoutdomain "github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	checkoutports "github.com/thinkfashz/Osart/internal/domains/checkout/ports"
	"github.com/thinkfashz/Osart/internal/domains/users/domain"
	"github.com/thinkfashz/Osart/internal/domains/users/ports"
	apierrors "github.com/thinkfashz/Osart/internal/shared/errors"
)

// UserAPI wires HTTP transport with the users bounded context. The profile
// view is enriched with the customer's order history.
type UserAPI struct {
	service ports.Service
	orders  checkoutports.OrderRepository
}

func NewUserAPI(service ports.Service, orders checkoutports.OrderRepository) *UserAPI {
	return &UserAPI{service: service, orders: orders}
}

type userView struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	LearningPoints int64  `json:"learningPoints"`
}

type profileView struct {
	userView
	Orders []*checkoutdomain.Order `json:"orders"`
}

type registerPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Post /v1/users
// Register a storefront account.
func (api *UserAPI) Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	user, err := api.service.Register(c.Request.Context(), payload.Name, payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserView(user))
}

// Post /v1/users/login
// Exchange credentials for a session token.
func (api *UserAPI) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	token, user, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": toUserView(user)})
}

// Post /v1/users/logout
// Drop the caller's stored session.
func (api *UserAPI) Logout(c *gin.Context) {
	claims, ok := sessionClaims(c)
	if !ok {
		apierrors.Respond(c, apierrors.ErrUnauthorized.WithDetail("missing session"))
		return
	}
	api.service.Logout(c.Request.Context(), claims.Subject)
	c.Status(http.StatusNoContent)
}

// Get /v1/users/:email
// Profile plus order history.
func (api *UserAPI) GetProfile(c *gin.Context) {
	email := c.Param("email")
	user, err := api.service.GetByEmail(c.Request.Context(), email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	orders, err := api.orders.ListByEmail(c.Request.Context(), user.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if orders == nil {
		orders = []*checkoutdomain.Order{}
	}
	c.JSON(http.StatusOK, profileView{userView: toUserView(user), Orders: orders})
}

func toUserView(user *domain.User) userView {
	return userView{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		Role:           string(user.Role),
		LearningPoints: user.LearningPoints,
	}
}
