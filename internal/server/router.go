// Package server carries the gin transport layer: one API type per bounded
// context plus the router that binds them under /v1.
package server

import "github.com/gin-gonic/gin"

// APIs groups the per-context handler sets the router mounts.
type APIs struct {
	Catalog   *CatalogAPI
	Users     *UserAPI
	Carts     *CartAPI
	Checkout  *CheckoutAPI
	Quiz      *QuizAPI
	Admin     *AdminAPI
	Assistant *AssistantAPI
}

// NewRouter mounts every route of the storefront surface. Admin routes sit
// behind the JWT middleware; everything else is session-scoped and public.
func NewRouter(apis APIs, auth *AuthMiddleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/v1")

	v1.GET("/products", apis.Catalog.ListProducts)
	v1.GET("/products/:id", apis.Catalog.GetProduct)
	v1.POST("/products", auth.RequireAdmin(), apis.Catalog.CreateProduct)
	v1.PUT("/products/:id", auth.RequireAdmin(), apis.Catalog.UpdateProduct)

	v1.POST("/users", apis.Users.Register)
	v1.POST("/users/login", apis.Users.Login)
	v1.POST("/users/logout", auth.RequireSession(), apis.Users.Logout)
	v1.GET("/users/:email", apis.Users.GetProfile)

	v1.GET("/carts/:sessionId", apis.Carts.GetCart)
	v1.POST("/carts/:sessionId/items", apis.Carts.AddItem)
	v1.PATCH("/carts/:sessionId/items/:productId", apis.Carts.AdjustItem)
	v1.DELETE("/carts/:sessionId/items/:productId", apis.Carts.RemoveItem)

	v1.POST("/checkout/:sessionId/start", apis.Checkout.Start)
	v1.GET("/checkout/:sessionId", apis.Checkout.Get)
	v1.POST("/checkout/:sessionId/identity", apis.Checkout.SubmitIdentity)
	v1.POST("/checkout/:sessionId/verification/request", apis.Checkout.RequestVerification)
	v1.POST("/checkout/:sessionId/verification/confirm", apis.Checkout.ConfirmVerification)
	v1.POST("/checkout/:sessionId/shipping", apis.Checkout.SubmitShipping)
	v1.POST("/checkout/:sessionId/back", apis.Checkout.Back)
	v1.POST("/checkout/:sessionId/confirm", apis.Checkout.Confirm)
	v1.GET("/orders/:id", apis.Checkout.GetOrder)

	v1.GET("/quiz/:sessionId/question", apis.Quiz.CurrentQuestion)
	v1.POST("/quiz/:sessionId/answer", apis.Quiz.Answer)

	admin := v1.Group("/admin", auth.RequireAdmin())
	admin.GET("/inventory", apis.Admin.Inventory)
	admin.POST("/products/:id/stock", apis.Admin.UpdateStock)
	admin.GET("/sales", apis.Admin.Sales)
	admin.PATCH("/orders/:id/status", apis.Admin.AdvanceOrder)
	admin.GET("/expenses", apis.Admin.ListExpenses)
	admin.POST("/expenses", apis.Admin.AddExpense)
	admin.GET("/config", apis.Admin.GetConfig)
	admin.PUT("/config", apis.Admin.UpdateConfig)
	admin.POST("/audit", apis.Admin.Audit)

	v1.POST("/assistant/ask", apis.Assistant.Ask)

	return router
}
