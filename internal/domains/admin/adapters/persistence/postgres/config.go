package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thinkfashz/Osart/internal/domains/admin/domain"
	"github.com/thinkfashz/Osart/internal/domains/admin/ports"
)

var _ ports.ConfigStore = (*ConfigStore)(nil)

// configRowID pins the storefront configuration to a single row.
const configRowID = 1

// ConfigStore persists the storefront configuration in PostgreSQL.
type ConfigStore struct {
	db *gorm.DB
}

func NewConfigStore(db *gorm.DB) *ConfigStore {
	return &ConfigStore{db: db}
}

type storeConfigRecord struct {
	ID           int64     `gorm:"primaryKey;column:id"`
	StoreName    string    `gorm:"column:store_name"`
	PaymentURL   string    `gorm:"column:payment_url"`
	ShippingURL  string    `gorm:"column:shipping_url"`
	ContactEmail string    `gorm:"column:contact_email"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (storeConfigRecord) TableName() string { return "store_config" }

func (s *ConfigStore) Get(ctx context.Context) (*domain.StoreConfig, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record storeConfigRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", configRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		config := domain.DefaultStoreConfig()
		return &config, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.StoreConfig{
		StoreName:    record.StoreName,
		PaymentURL:   record.PaymentURL,
		ShippingURL:  record.ShippingURL,
		ContactEmail: record.ContactEmail,
	}, nil
}

func (s *ConfigStore) Put(ctx context.Context, config *domain.StoreConfig) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := storeConfigRecord{
		ID:           configRowID,
		StoreName:    config.StoreName,
		PaymentURL:   config.PaymentURL,
		ShippingURL:  config.ShippingURL,
		ContactEmail: config.ContactEmail,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&record).Error
}

func (s *ConfigStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres config store not configured")
	}
	return nil
}
