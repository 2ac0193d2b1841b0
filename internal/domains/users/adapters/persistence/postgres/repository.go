package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thinkfashz/Osart/internal/domains/users/domain"
	"github.com/thinkfashz/Osart/internal/domains/users/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type userRecord struct {
	ID             int64     `gorm:"primaryKey;column:id"`
	Name           string    `gorm:"column:name"`
	Email          string    `gorm:"column:email;uniqueIndex"`
	PasswordHash   string    `gorm:"column:password_hash"`
	Role           string    `gorm:"column:role;type:varchar(16)"`
	LearningPoints int64     `gorm:"column:learning_points"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

func (r *Repository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	record := userRecord{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		Role:           string(user.Role),
		LearningPoints: user.LearningPoints,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "email"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":            record.Name,
				"password_hash":   record.PasswordHash,
				"role":            record.Role,
				"learning_points": record.LearningPoints,
				"updated_at":      gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByEmail(ctx, user.Email)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return &domain.User{
		ID:             record.ID,
		Name:           record.Name,
		Email:          record.Email,
		PasswordHash:   record.PasswordHash,
		Role:           domain.Role(record.Role),
		LearningPoints: record.LearningPoints,
	}, nil
}

func (r *Repository) Delete(ctx context.Context, email string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&userRecord{}, "email = ?", email)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}
