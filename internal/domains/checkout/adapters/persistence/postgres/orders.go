package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thinkfashz/Osart/internal/domains/checkout/domain"
	"github.com/thinkfashz/Osart/internal/domains/checkout/ports"
)

var _ ports.OrderRepository = (*OrderRepository)(nil)

// OrderRepository persists settled orders in PostgreSQL using GORM.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// orderRecord stores line items as a JSON snapshot; they never change after
// purchase, so there is nothing to normalize.
type orderRecord struct {
	ID            string    `gorm:"primaryKey;column:id;size:64"`
	CustomerEmail string    `gorm:"column:customer_email;index"`
	CustomerPhone string    `gorm:"column:customer_phone"`
	FullName      string    `gorm:"column:full_name"`
	Address       string    `gorm:"column:address"`
	City          string    `gorm:"column:city"`
	Region        string    `gorm:"column:region;type:varchar(32)"`
	Lines         []byte    `gorm:"column:lines;type:jsonb"`
	Subtotal      int64     `gorm:"column:subtotal"`
	ShippingFee   int64     `gorm:"column:shipping_fee"`
	Total         int64     `gorm:"column:total"`
	Status        string    `gorm:"column:status;type:varchar(32);index"`
	PlacedAt      time.Time `gorm:"column:placed_at;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

func (r *OrderRepository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrEmptyOrderID
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record, err := toRecord(order)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":     record.Status,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrOrderNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

func (r *OrderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.list(ctx, nil)
}

func (r *OrderRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Order, error) {
	return r.list(ctx, func(query *gorm.DB) *gorm.DB {
		return query.Where("customer_email = ?", email)
	})
}

func (r *OrderRepository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Order("placed_at DESC")
	if scope != nil {
		query = scope(query)
	}
	var records []orderRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		order, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *OrderRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) (orderRecord, error) {
	lines, err := json.Marshal(order.Lines)
	if err != nil {
		return orderRecord{}, fmt.Errorf("marshal order lines: %w", err)
	}
	return orderRecord{
		ID:            order.ID,
		CustomerEmail: order.Profile.Email,
		CustomerPhone: order.Profile.Phone,
		FullName:      order.Profile.FullName,
		Address:       order.Profile.Address,
		City:          order.Profile.City,
		Region:        string(order.Profile.Region),
		Lines:         lines,
		Subtotal:      order.Subtotal,
		ShippingFee:   order.ShippingFee,
		Total:         order.Total,
		Status:        string(order.Status),
		PlacedAt:      order.PlacedAt,
	}, nil
}

func (r orderRecord) toDomain() (*domain.Order, error) {
	var lines []domain.OrderLine
	if len(r.Lines) > 0 {
		if err := json.Unmarshal(r.Lines, &lines); err != nil {
			return nil, fmt.Errorf("decode order lines: %w", err)
		}
	}
	return &domain.Order{
		ID: r.ID,
		Profile: domain.ShippingProfile{
			Identity: domain.Identity{FullName: r.FullName, Email: r.CustomerEmail, Phone: r.CustomerPhone},
			Address:  r.Address,
			City:     r.City,
			Region:   domain.Region(r.Region),
		},
		Lines:       lines,
		Subtotal:    r.Subtotal,
		ShippingFee: r.ShippingFee,
		Total:       r.Total,
		Status:      domain.Status(r.Status),
		PlacedAt:    r.PlacedAt,
	}, nil
}
