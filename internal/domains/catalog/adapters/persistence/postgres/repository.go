package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thinkfashz/Osart/internal/domains/catalog/domain"
	"github.com/thinkfashz/Osart/internal/domains/catalog/ports"
	"github.com/thinkfashz/Osart/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord maps the product aggregate to a relational table.
type productRecord struct {
	ID                int64             `gorm:"primaryKey;column:id"`
	Name              string            `gorm:"column:name;index"`
	Price             int64             `gorm:"column:price"`
	Stock             int               `gorm:"column:stock"`
	LowStockThreshold int               `gorm:"column:low_stock_threshold"`
	Category          string            `gorm:"column:category;type:varchar(32);index"`
	Rating            float64           `gorm:"column:rating"`
	ImageURL          string            `gorm:"column:image_url"`
	Description       string            `gorm:"column:description"`
	Guide             string            `gorm:"column:guide"`
	ProTip            string            `gorm:"column:pro_tip"`
	Specs             map[string]string `gorm:"column:specs;serializer:json"`
	Installments      int               `gorm:"column:installments"`
	DeliveryDays      string            `gorm:"column:delivery_days"`
	Tags              pq.StringArray    `gorm:"column:tags;type:text[]"`
	CreatedAt         time.Time         `gorm:"column:created_at"`
	UpdatedAt         time.Time         `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a product.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":                record.Name,
				"price":               record.Price,
				"stock":               record.Stock,
				"low_stock_threshold": record.LowStockThreshold,
				"category":            record.Category,
				"rating":              record.Rating,
				"image_url":           record.ImageURL,
				"description":         record.Description,
				"guide":               record.Guide,
				"pro_tip":             record.ProTip,
				"specs":               record.Specs,
				"installments":        record.Installments,
				"delivery_days":       record.DeliveryDays,
				"tags":                record.Tags,
				"updated_at":          gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

// Delete removes a product by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns products matching the filter, ordered by id.
func (r *Repository) List(ctx context.Context, filter ports.Filter) ([]*projection.Projection[*domain.Product], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("id")
	if filter.Category != "" {
		query = query.Where("category = ?", string(filter.Category))
	}
	var records []productRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*projection.Projection[*domain.Product], 0, len(records))
	for i := range records {
		products = append(products, records[i].toProjection())
	}
	return products, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
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
		Tags:              pq.StringArray(product.Tags),
	}
}

func (r productRecord) toProjection() *projection.Projection[*domain.Product] {
	product := &domain.Product{
		ID:                r.ID,
		Name:              r.Name,
		Price:             r.Price,
		Stock:             r.Stock,
		LowStockThreshold: r.LowStockThreshold,
		Category:          domain.Category(r.Category),
		Rating:            r.Rating,
		ImageURL:          r.ImageURL,
		Description:       r.Description,
		Guide:             r.Guide,
		ProTip:            r.ProTip,
		Specs:             r.Specs,
		Installments:      r.Installments,
		DeliveryDays:      r.DeliveryDays,
		Tags:              []string(r.Tags),
	}
	return &projection.Projection[*domain.Product]{
		Entity:   product,
		Metadata: projection.Metadata{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	}
}
