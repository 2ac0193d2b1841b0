package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	"github.com/thinkfashz/Osart/internal/domains/catalog/ports"
	"github.com/thinkfashz/Osart/internal/shared/projection"
)

// CatalogAPI wires HTTP transport with the catalog bounded context.
type CatalogAPI struct {
	service ports.Service
}

func NewCatalogAPI(service ports.Service) *CatalogAPI {
	return &CatalogAPI{service: service}
}

type productView struct {
	ID                int64             `json:"id"`
	Name              string            `json:"name"`
	Price             int64             `json:"price"`
	Stock             int               `json:"stock"`
	LowStockThreshold int               `json:"lowStockThreshold"`
	Category          string            `json:"category"`
	Rating            float64           `json:"rating"`
	ImageURL          string            `json:"imageUrl,omitempty"`
	Description       string            `json:"description,omitempty"`
	Guide             string            `json:"guide,omitempty"`
	ProTip            string            `json:"proTip,omitempty"`
	Specs             map[string]string `json:"specs,omitempty"`
	Installments      int               `json:"installments,omitempty"`
	DeliveryDays      string            `json:"deliveryDays,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	Critical          bool              `json:"critical"`
	CreatedAt         time.Time         `json:"createdAt,omitempty"`
	UpdatedAt         time.Time         `json:"updatedAt,omitempty"`
}

type productPayload struct {
	Name              string            `json:"name"`
	Price             int64             `json:"price"`
	Stock             int               `json:"stock"`
	LowStockThreshold int               `json:"lowStockThreshold"`
	Category          string            `json:"category"`
	Rating            float64           `json:"rating"`
	ImageURL          string            `json:"imageUrl"`
	Description       string            `json:"description"`
	Guide             string            `json:"guide"`
	ProTip            string            `json:"proTip"`
	Specs             map[string]string `json:"specs"`
	Installments      int               `json:"installments"`
	DeliveryDays      string            `json:"deliveryDays"`
	Tags              []string          `json:"tags"`
}

// Get /v1/products
// List the catalog, optionally narrowed to one category.
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	filter := ports.Filter{Category: domain.Category(c.Query("category"))}
	result, err := api.service.List(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	views := make([]productView, 0, len(result))
	for _, item := range result {
		views = append(views, toProductView(item))
	}
	c.JSON(http.StatusOK, views)
}

// Get /v1/products/:id
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := api.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductView(product))
}

// Post /v1/products
// Create a product (admin).
func (api *CatalogAPI) CreateProduct(c *gin.Context) {
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	saved, err := api.service.Create(c.Request.Context(), payload.toProduct(0))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProductView(saved))
}

// Put /v1/products/:id
// Update a product (admin).
func (api *CatalogAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload productPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), payload.toProduct(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProductView(updated))
}

func (p productPayload) toProduct(id int64) *domain.Product {
	return &domain.Product{
		ID:                id,
		Name:              p.Name,
		Price:             p.Price,
		Stock:             p.Stock,
		LowStockThreshold: p.LowStockThreshold,
		Category:          domain.Category(p.Category),
		Rating:            p.Rating,
		ImageURL:          p.ImageURL,
		Description:       p.Description,
		Guide:             p.Guide,
		ProTip:            p.ProTip,
		Specs:             p.Specs,
		Installments:      p.Installments,
		DeliveryDays:      p.DeliveryDays,
		Tags:              p.Tags,
	}
}

func toProductView(item *projection.Projection[*domain.Product]) productView {
	product := item.Entity
	return productView{
		ID:                product.ID,
		Name:              product.Name,
		Price:             product.Price,
		Stock:             product.Stock,
		LowStockThreshold: product.LowStockThreshold,
		Category:          string(product.Category),
		Rating:            product.Rating,
		ImageURL:          product.ImageURL,
		Description:       product.Description,
		Guide:             product.Guide,
		ProTip:            product.ProTip,
		Specs:             product.Specs,
		Installments:      product.Installments,
		DeliveryDays:      product.DeliveryDays,
		Tags:              product.Tags,
		Critical:          product.IsCritical(),
		CreatedAt:         item.Metadata.CreatedAt,
		UpdatedAt:         item.Metadata.UpdatedAt,
	}
}

// parseIDParam reads a numeric path parameter, answering 400 on garbage.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return id, true
}
